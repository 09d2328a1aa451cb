package main

import (
	"github.com/Malcan-Technologies/creditxpress-aws-sub009/orchestrator/api/http_api/responses"
	"github.com/Malcan-Technologies/creditxpress-aws-sub009/orchestrator/types"
)

type SessionResponse struct {
	ErrorMessage  string                `json:"error_message,omitempty"`
	Result        *types.SigningSession `json:"result"`
	CorrelationID string                `json:"correlation_id,omitempty"`
}

type StatusResponse struct {
	ErrorMessage  string `json:"error_message,omitempty"`
	Result        string `json:"result"`
	CorrelationID string `json:"correlation_id,omitempty"`
}

type SubmitCodeResponse struct {
	ErrorMessage  string                      `json:"error_message,omitempty"`
	Result        *responses.SubmitCodeResult `json:"result"`
	CorrelationID string                      `json:"correlation_id,omitempty"`
}

type CertificateStatusResponse struct {
	ErrorMessage  string                             `json:"error_message,omitempty"`
	Result        *responses.CertificateStatusResult `json:"result"`
	CorrelationID string                             `json:"correlation_id,omitempty"`
}

type ArtifactsResponse struct {
	ErrorMessage  string                        `json:"error_message,omitempty"`
	Result        *responses.ArtifactListResult `json:"result"`
	CorrelationID string                        `json:"correlation_id,omitempty"`
}

type VerifyArtifactResponse struct {
	ErrorMessage  string                          `json:"error_message,omitempty"`
	Result        *responses.VerifyArtifactResult `json:"result"`
	CorrelationID string                          `json:"correlation_id,omitempty"`
}
