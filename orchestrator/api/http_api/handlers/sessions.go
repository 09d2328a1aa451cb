package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	. "github.com/Malcan-Technologies/creditxpress-aws-sub009/orchestrator/api/dto"
	cs "github.com/Malcan-Technologies/creditxpress-aws-sub009/orchestrator/api/http_api/context_service"
	req "github.com/Malcan-Technologies/creditxpress-aws-sub009/orchestrator/api/http_api/requests"
	"github.com/Malcan-Technologies/creditxpress-aws-sub009/orchestrator/api/http_api/responses"
)

func (a *HTTPApp) GetSession(c echo.Context) error {
	stx := c.(*cs.ContextService)
	formDTO := &BatchIdDTO{}
	if err := stx.BindToDTO(&req.BatchIdForm{}, formDTO); err != nil {
		return err
	}

	sess, err := a.workflow.GetSession(formDTO.BatchID)
	if err != nil {
		return a.serviceError(stx, err)
	}
	return stx.Json(http.StatusOK, sess)
}

func (a *HTTPApp) GetArtifacts(c echo.Context) error {
	stx := c.(*cs.ContextService)
	formDTO := &BatchIdDTO{}
	if err := stx.BindToDTO(&req.BatchIdForm{}, formDTO); err != nil {
		return err
	}

	names, err := a.workflow.ListArtifacts(formDTO.BatchID)
	if err != nil {
		return a.serviceError(stx, err)
	}
	return stx.Json(http.StatusOK, &responses.ArtifactListResult{
		BatchID:   formDTO.BatchID,
		Artifacts: names,
	})
}
