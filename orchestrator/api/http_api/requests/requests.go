package requests

// WebhookForm mirrors the envelope platform's notification payload. Only
// event_type and data.id matter to the router, the rest rides along for the
// journal.
type WebhookForm struct {
	EventType string          `json:"event_type" validate:"attr=event_type,min=1"`
	Data      WebhookDataForm `json:"data"`
}

type WebhookDataForm struct {
	ID    string `json:"id"`
	Role  string `json:"role,omitempty"`
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
}

type BatchIdForm struct {
	BatchID string `query:"batchId" json:"batchId" validate:"attr=batchId,min=1"`
}

type SignerIdForm struct {
	SignerID string `query:"signerId" json:"signerId" validate:"attr=signerId,min=1"`
}

type SignerAtBatchForm struct {
	BatchID  string `json:"batchId" validate:"attr=batchId,min=1"`
	SignerID string `json:"signerId" validate:"attr=signerId,min=1"`
}

type SubmitCodeForm struct {
	BatchID  string `json:"batchId" validate:"attr=batchId,min=1"`
	SignerID string `json:"signerId" validate:"attr=signerId,min=1"`
	Code     string `json:"code" validate:"attr=code,min=4"`
}

type EnrollSignerForm struct {
	BatchID    string `json:"batchId" validate:"attr=batchId,min=1"`
	SignerID   string `json:"signerId" validate:"attr=signerId,min=1"`
	ICFrontURL string `json:"icFrontUrl,omitempty"`
	ICBackURL  string `json:"icBackUrl,omitempty"`
	SelfieURL  string `json:"selfieUrl,omitempty"`
}
