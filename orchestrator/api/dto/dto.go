package dto

// This package contains DTO (Data Transfer Object) structures
// for providing validated and sanitized values to service layer

type WebhookDTO struct {
	EventType   string
	SubmitterID string
}

type BatchIdDTO struct {
	BatchID string
}

type SignerIdDTO struct {
	SignerID string
}

type SignerAtBatchDTO struct {
	BatchID  string
	SignerID string
}

type SubmitCodeDTO struct {
	BatchID  string
	SignerID string
	Code     string
}

type EnrollSignerDTO struct {
	BatchID    string
	SignerID   string
	ICFrontURL string
	ICBackURL  string
	SelfieURL  string
}
