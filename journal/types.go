// Package journal is the orchestrator's append-only audit trail. Every
// lifecycle transition worth reconciling against lands here; losing an
// event must never fail the signing step that produced it, so callers log
// append errors and move on.
package journal

import (
	"encoding/json"
	"time"
)

type Kind string

const (
	KindSessionCreated       Kind = "session_created"
	KindSignatoryIntercepted Kind = "signatory_intercepted"
	KindOTPSent              Kind = "otp_sent"
	KindEnrollmentStarted    Kind = "enrollment_started"
	KindArtifactSigned       Kind = "artifact_signed"
	KindArtifactVerified     Kind = "artifact_verified"
	KindSessionCompleted     Kind = "session_completed"
	KindSigningFailed        Kind = "signing_failed"
	// A signature was applied but the ledger write failed, reconcile by hand.
	KindLedgerWriteFailed Kind = "ledger_write_failed"
)

type Event struct {
	ID         string          `json:"id"`
	Kind       Kind            `json:"kind"`
	BatchID    string          `json:"batch_id,omitempty"`
	ContractID string          `json:"contract_id,omitempty"`
	SignerID   string          `json:"signer_id,omitempty"`
	Payload    json.RawMessage `json:"payload,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

type Journal interface {
	Append(event Event) error
	Close() error
}

// Nop discards every event. Used when journaling is disabled by config.
type Nop struct{}

func (Nop) Append(Event) error { return nil }
func (Nop) Close() error       { return nil }
