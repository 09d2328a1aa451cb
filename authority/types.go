package authority

import (
	"encoding/json"
	"fmt"
)

// Business status codes embedded in authority responses. The transport may
// succeed while the operation failed; these codes are the true outcome.
const (
	StatusSuccess = "000"

	// One-time code failures. These release the guard entry so the
	// signatory can retry with a fresh code.
	StatusInvalidOTP  = "101"
	StatusExpiredOTP  = "102"
	StatusConsumedOTP = "103"

	// Signing failures outside the code's fault.
	StatusCertNotValid   = "201"
	StatusMalformedInput = "202"
)

// Certificate states reported by CertificateStatus.
const (
	CertStatusValid    = "VALID"
	CertStatusRevoked  = "REVOKED"
	CertStatusExpired  = "EXPIRED"
	CertStatusNotFound = "NOT_FOUND"
)

// Result is the normalized authority answer. Raw keeps the untouched body
// for journaling and support tickets.
type Result struct {
	StatusCode string
	Message    string
	TxnID      string
	SignedPDF  []byte
	CertStatus string
	Raw        json.RawMessage
}

func (r *Result) OK() bool {
	return r.StatusCode == StatusSuccess
}

// CodeAttributable reports whether the failure is the submitted one-time
// code's own fault. Only then may the guard entry be released for a retry.
func (r *Result) CodeAttributable() bool {
	switch r.StatusCode {
	case StatusInvalidOTP, StatusExpiredOTP, StatusConsumedOTP:
		return true
	}
	return false
}

// CertValid reports whether the signer holds a certificate usable for
// signing right now.
func (r *Result) CertValid() bool {
	return r.OK() && r.CertStatus == CertStatusValid
}

// TransportError is returned once every attempt failed on the transport
// level. Business failures never produce it.
type TransportError struct {
	Method   string
	Attempts int
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("authority %s: max retries (%d) exceeded: %v", e.Method, e.Attempts, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// SignRect is the absolute signature placement in PDF points, origin at the
// page's bottom-left corner, page 1-based.
type SignRect struct {
	X1   float64 `json:"x1"`
	Y1   float64 `json:"y1"`
	X2   float64 `json:"x2"`
	Y2   float64 `json:"y2"`
	Page int     `json:"page"`
}

type OTPRequest struct {
	SignerID   string `json:"signer_id"`
	Contact    string `json:"contact"`
	DocumentID string `json:"document_id"`
}

// Evidence carries optional identity-verification scores gathered before
// certificate enrollment.
type Evidence struct {
	FaceMatchScore float64           `json:"face_match_score,omitempty"`
	LivenessScore  float64           `json:"liveness_score,omitempty"`
	OCRFields      map[string]string `json:"ocr_fields,omitempty"`
}

type EnrollmentRequest struct {
	SignerID string    `json:"signer_id"`
	FullName string    `json:"full_name"`
	Contact  string    `json:"contact"`
	Evidence *Evidence `json:"evidence,omitempty"`
}

type SignRequest struct {
	SignerID   string   `json:"signer_id"`
	Code       string   `json:"code"`
	DocumentID string   `json:"document_id"`
	PDF        []byte   `json:"pdf"`
	Rect       SignRect `json:"rect"`
	Reason     string   `json:"reason,omitempty"`
	Location   string   `json:"location,omitempty"`
}

// The authority answers either wrapped ({"result": {...}}) or flat,
// depending on the gateway in front of it. Both normalize to Result.
type wireResult struct {
	StatusCode string `json:"status_code"`
	Message    string `json:"message"`
	TxnID      string `json:"txn_id"`
	SignedPDF  []byte `json:"signed_pdf"`
	CertStatus string `json:"cert_status"`
}

type wireEnvelope struct {
	Result *wireResult `json:"result"`
}

func normalize(body []byte) (*Result, error) {
	var envelope wireEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	wire := envelope.Result
	if wire == nil || wire.StatusCode == "" {
		var flat wireResult
		if err := json.Unmarshal(body, &flat); err != nil {
			return nil, fmt.Errorf("failed to unmarshal response: %w", err)
		}
		wire = &flat
	}

	if wire.StatusCode == "" {
		return nil, fmt.Errorf("response carries no status code")
	}

	return &Result{
		StatusCode: wire.StatusCode,
		Message:    wire.Message,
		TxnID:      wire.TxnID,
		SignedPDF:  wire.SignedPDF,
		CertStatus: wire.CertStatus,
		Raw:        json.RawMessage(body),
	}, nil
}
