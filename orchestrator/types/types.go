package types

import (
	"errors"
	"fmt"
	"time"

	"github.com/Malcan-Technologies/creditxpress-aws-sub009/fsm/fsm"
	"github.com/Malcan-Technologies/creditxpress-aws-sub009/fsm/state_machines/signatory_fsm"
)

// Session errors returned by the session store and the workflow engine.
// Handlers map them onto distinct HTTP statuses.
var (
	ErrSessionNotFound  = errors.New("signing session not found")
	ErrSessionExpired   = errors.New("signing session expired")
	ErrSessionCompleted = errors.New("signing session already completed")
)

type SessionStatus string

const (
	SessionInProgress SessionStatus = "in_progress"
	SessionAllSigned  SessionStatus = "all_signed"
	SessionFailed     SessionStatus = "failed"
)

type SignatoryRole string

const (
	RolePrimaryBorrower SignatoryRole = "primary-borrower"
	RoleWitness         SignatoryRole = "witness"
	RoleCounterParty    SignatoryRole = "counter-party"
)

func ParseRole(role string) (SignatoryRole, error) {
	switch SignatoryRole(role) {
	case RolePrimaryBorrower, RoleWitness, RoleCounterParty:
		return SignatoryRole(role), nil
	default:
		return "", fmt.Errorf("unknown signatory role \"%s\"", role)
	}
}

// Signatory is one party of a co-signing session. Status holds the current
// signatory_fsm state and is persisted verbatim.
type Signatory struct {
	Role        SignatoryRole `json:"role"`
	FullName    string        `json:"full_name"`
	Contact     string        `json:"contact"`
	SignerID    string        `json:"signer_id"`
	CertStatus  string        `json:"cert_status,omitempty"`
	SubmitterID string        `json:"submitter_id,omitempty"`
	Status      fsm.State     `json:"status"`
}

func (s *Signatory) Terminal() bool {
	return signatory_fsm.IsTerminal(s.Status)
}

// SigningSession tracks one document batch through all of its signatories.
// Mutated only by the workflow engine, persisted keyed by BatchID.
type SigningSession struct {
	ID               string      `json:"id"` // UUID4
	BatchID          string      `json:"batch_id"`
	TemplateID       string      `json:"template_id"`
	ContractID       string      `json:"contract_id"`
	Signatories      []Signatory `json:"signatories"`
	CurrentIdx       int         `json:"current_idx"`
	Total            int         `json:"total"`
	OriginalArtifact string      `json:"original_artifact,omitempty"`
	CurrentArtifact  string      `json:"current_artifact,omitempty"`

	Status SessionStatus `json:"status"`

	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (s *SigningSession) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// Current returns the signatory whose turn is in progress.
func (s *SigningSession) Current() (*Signatory, error) {
	if s.CurrentIdx < 0 || s.CurrentIdx >= len(s.Signatories) {
		return nil, fmt.Errorf("session %s has no signatory at index %d", s.BatchID, s.CurrentIdx)
	}
	return &s.Signatories[s.CurrentIdx], nil
}

// BySignerID returns the signatory with the given authority identifier and
// its index in signing order.
func (s *SigningSession) BySignerID(signerID string) (*Signatory, int, error) {
	for idx := range s.Signatories {
		if s.Signatories[idx].SignerID == signerID {
			return &s.Signatories[idx], idx, nil
		}
	}
	return nil, 0, fmt.Errorf("session %s has no signatory with id \"%s\"", s.BatchID, signerID)
}

// BySubmitterID returns the signatory owning the given envelope-platform
// party identifier.
func (s *SigningSession) BySubmitterID(submitterID string) (*Signatory, int, error) {
	for idx := range s.Signatories {
		if s.Signatories[idx].SubmitterID == submitterID {
			return &s.Signatories[idx], idx, nil
		}
	}
	return nil, 0, fmt.Errorf("session %s has no signatory for submitter \"%s\"", s.BatchID, submitterID)
}

// AllSigned reports whether every signatory reached the signed state.
func (s *SigningSession) AllSigned() bool {
	if len(s.Signatories) == 0 {
		return false
	}
	for idx := range s.Signatories {
		if s.Signatories[idx].Status != signatory_fsm.StateSigned {
			return false
		}
	}
	return true
}

// SignedCount reports signing progress for status endpoints.
func (s *SigningSession) SignedCount() int {
	var n int
	for idx := range s.Signatories {
		if s.Signatories[idx].Status == signatory_fsm.StateSigned {
			n++
		}
	}
	return n
}

type ArtifactStatus string

const (
	ArtifactUnsigned        ArtifactStatus = "unsigned"
	ArtifactAuthoritySigned ArtifactStatus = "authority_signed"
)

// SignedArtifactRecord is the durable ledger row for a contract's latest
// authority-signed artifact. One row per contract, upserted on each
// signature.
type SignedArtifactRecord struct {
	ContractID      string         `json:"contract_id"`
	AuthorityTxnID  string         `json:"authority_txn_id"`
	SignerID        string         `json:"signer_id"`
	SignedAt        time.Time      `json:"signed_at"`
	AuthorityStatus string         `json:"authority_status"`
	ArtifactPath    string         `json:"artifact_path"`
	ContentHash     string         `json:"content_hash"` // sha256 hex of the stored bytes
	SizeBytes       int64          `json:"size_bytes"`
	Status          ArtifactStatus `json:"status"`
}
