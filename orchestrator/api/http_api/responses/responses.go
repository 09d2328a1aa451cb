package responses

type BaseResponse struct {
	ErrorMessage  string      `json:"error_message,omitempty"`
	Result        interface{} `json:"result"`
	CorrelationID string      `json:"correlation_id,omitempty"`
}

// WebhookAck is what the envelope platform sees. Always 200: the platform
// retries on anything else and cannot act on our internal failures anyway.
type WebhookAck struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	CorrelationID string `json:"correlationId"`
}

// HealthReport enumerates dependency probes for /healthz.
type HealthReport struct {
	ArtifactStore string `json:"artifact_store"`
	Ledger        string `json:"ledger"`
}

const StatusOK = "ok"

type SubmitCodeResult struct {
	AuthorityTxnID string `json:"authority_txn_id"`
	ArtifactPath   string `json:"artifact_path"`
	ContentHash    string `json:"content_hash"`
	SizeBytes      int64  `json:"size_bytes"`
	SessionStatus  string `json:"session_status"`
	SignedCount    int    `json:"signed_count"`
	Total          int    `json:"total"`
	LedgerDegraded bool   `json:"ledger_degraded,omitempty"`
}

type CertificateStatusResult struct {
	SignerID   string `json:"signer_id"`
	CertStatus string `json:"cert_status"`
	StatusCode string `json:"status_code"`
	Message    string `json:"message,omitempty"`
}

type ArtifactListResult struct {
	BatchID   string   `json:"batch_id"`
	Artifacts []string `json:"artifacts"`
}

type VerifyArtifactResult struct {
	BatchID        string `json:"batch_id"`
	ExportName     string `json:"export_name"`
	ContentHash    string `json:"content_hash"`
	AuthorityTxnID string `json:"authority_txn_id"`
}
