// Package signatory_fsm defines the lifecycle of a single signatory inside a
// co-signing session. State values are stored verbatim in session records, so
// they double as the signatory status strings the operator API reports.
package signatory_fsm

import (
	"github.com/Malcan-Technologies/creditxpress-aws-sub009/fsm/fsm"
)

const (
	fsmName = "signatory_fsm"

	// Waiting for the envelope provider to report this signatory's turn.
	StatePending = fsm.State("pending")
	// Completion webhook received, turn intercepted before provider sealing.
	StateIntercepted = fsm.State("intercepted")
	// Signing authority confirmed an active certificate.
	StateCertChecked = fsm.State("cert_checked")
	// One-time password issued to the signatory's contact.
	StateOTPSent = fsm.State("otp_sent")
	// Code verified, signing may proceed.
	StateReadyToSign = fsm.State("ready_to_sign")

	StateSigned = fsm.State("signed")
	StateFailed = fsm.State("failed")

	EventIntercept    = fsm.Event("event_signatory_intercept")
	EventCertValid    = fsm.Event("event_signatory_cert_valid")
	EventOTPSent      = fsm.Event("event_signatory_otp_sent")
	EventCodeAccepted = fsm.Event("event_signatory_code_accepted")
	EventSigned       = fsm.Event("event_signatory_signed")
	EventFail         = fsm.Event("event_signatory_fail")
)

type SignatoryFSM struct {
	*fsm.FSM
}

var template = fsm.MustNewFSM(
	fsmName,
	StatePending,
	[]fsm.EventDesc{
		// Webhook interception. Self-transition absorbs duplicate deliveries.
		{Name: EventIntercept, SrcState: []fsm.State{StatePending, StateIntercepted}, DstState: StateIntercepted},

		// Certificate gate. The only way out of intercepted besides failure,
		// so no later step can run against an unchecked certificate.
		{Name: EventCertValid, SrcState: []fsm.State{StateIntercepted}, DstState: StateCertChecked},

		// OTP issue and re-issue.
		{Name: EventOTPSent, SrcState: []fsm.State{StateCertChecked, StateOTPSent}, DstState: StateOTPSent},

		// Code verification. Allowed again from ready_to_sign so a fresh code
		// can be submitted after a failed signing attempt.
		{Name: EventCodeAccepted, SrcState: []fsm.State{StateOTPSent, StateReadyToSign}, DstState: StateReadyToSign},

		{Name: EventSigned, SrcState: []fsm.State{StateReadyToSign}, DstState: StateSigned},

		{Name: EventFail, SrcState: []fsm.State{
			StateIntercepted,
			StateCertChecked,
			StateOTPSent,
			StateReadyToSign,
		}, DstState: StateFailed},
	},
)

// New returns a machine positioned at the initial pending state.
func New() *SignatoryFSM {
	return &SignatoryFSM{FSM: template.MustCopyWithState("")}
}

// FromState resumes a machine at the state persisted in a session record.
// Panics on a state the lifecycle does not know, which means the stored
// record was corrupted outside this package.
func FromState(state fsm.State) *SignatoryFSM {
	return &SignatoryFSM{FSM: template.MustCopyWithState(state)}
}

// IsTerminal reports whether the state ends the signatory lifecycle.
func IsTerminal(state fsm.State) bool {
	return template.IsFinState(state)
}
