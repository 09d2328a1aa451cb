package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	. "github.com/Malcan-Technologies/creditxpress-aws-sub009/orchestrator/api/dto"
	cs "github.com/Malcan-Technologies/creditxpress-aws-sub009/orchestrator/api/http_api/context_service"
	req "github.com/Malcan-Technologies/creditxpress-aws-sub009/orchestrator/api/http_api/requests"
	"github.com/Malcan-Technologies/creditxpress-aws-sub009/orchestrator/api/http_api/responses"
	"github.com/Malcan-Technologies/creditxpress-aws-sub009/orchestrator/services/workflow"
)

func (a *HTTPApp) RequestCode(c echo.Context) error {
	stx := c.(*cs.ContextService)
	formDTO := &SignerAtBatchDTO{}
	if err := stx.BindToDTO(&req.SignerAtBatchForm{}, formDTO); err != nil {
		return err
	}

	if err := a.workflow.RequestCode(stx.Request().Context(), formDTO.BatchID, formDTO.SignerID); err != nil {
		return a.serviceError(stx, err)
	}
	return stx.Json(http.StatusOK, responses.StatusOK)
}

func (a *HTTPApp) SubmitCode(c echo.Context) error {
	stx := c.(*cs.ContextService)
	formDTO := &SubmitCodeDTO{}
	if err := stx.BindToDTO(&req.SubmitCodeForm{}, formDTO); err != nil {
		return err
	}

	outcome, err := a.workflow.SubmitCode(stx.Request().Context(), formDTO.BatchID, formDTO.SignerID, formDTO.Code)
	if err != nil {
		return a.serviceError(stx, err)
	}

	return stx.Json(http.StatusOK, &responses.SubmitCodeResult{
		AuthorityTxnID: outcome.AuthorityTxnID,
		ArtifactPath:   outcome.Artifact.Path,
		ContentHash:    outcome.Artifact.Hash,
		SizeBytes:      outcome.Artifact.Size,
		SessionStatus:  string(outcome.Session.Status),
		SignedCount:    outcome.Session.SignedCount(),
		Total:          outcome.Session.Total,
		LedgerDegraded: outcome.LedgerDegraded,
	})
}

func (a *HTTPApp) EnrollSigner(c echo.Context) error {
	stx := c.(*cs.ContextService)
	formDTO := &EnrollSignerDTO{}
	if err := stx.BindToDTO(&req.EnrollSignerForm{}, formDTO); err != nil {
		return err
	}

	err := a.workflow.EnrollSigner(stx.Request().Context(), &workflow.EnrollmentEntry{
		BatchID:    formDTO.BatchID,
		SignerID:   formDTO.SignerID,
		ICFrontURL: formDTO.ICFrontURL,
		ICBackURL:  formDTO.ICBackURL,
		SelfieURL:  formDTO.SelfieURL,
	})
	if err != nil {
		// The happy path is itself a business answer (enrollment_initiated).
		return a.serviceError(stx, err)
	}
	return stx.Json(http.StatusOK, responses.StatusOK)
}

func (a *HTTPApp) VerifyArtifact(c echo.Context) error {
	stx := c.(*cs.ContextService)
	formDTO := &BatchIdDTO{}
	if err := stx.BindToDTO(&req.BatchIdForm{}, formDTO); err != nil {
		return err
	}

	outcome, err := a.workflow.VerifyArtifact(stx.Request().Context(), formDTO.BatchID)
	if err != nil {
		return a.serviceError(stx, err)
	}

	return stx.Json(http.StatusOK, &responses.VerifyArtifactResult{
		BatchID:        formDTO.BatchID,
		ExportName:     outcome.ExportName,
		ContentHash:    outcome.ContentHash,
		AuthorityTxnID: outcome.TxnID,
	})
}

func (a *HTTPApp) GetCertificateStatus(c echo.Context) error {
	stx := c.(*cs.ContextService)
	formDTO := &SignerIdDTO{}
	if err := stx.BindToDTO(&req.SignerIdForm{}, formDTO); err != nil {
		return err
	}

	result, err := a.workflow.CertificateStatus(stx.Request().Context(), formDTO.SignerID)
	if err != nil {
		return a.serviceError(stx, err)
	}

	return stx.Json(http.StatusOK, &responses.CertificateStatusResult{
		SignerID:   formDTO.SignerID,
		CertStatus: result.CertStatus,
		StatusCode: result.StatusCode,
		Message:    result.Message,
	})
}
