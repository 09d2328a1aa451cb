package handlers

import (
	"errors"
	"net/http"

	"github.com/Malcan-Technologies/creditxpress-aws-sub009/authority"
	cs "github.com/Malcan-Technologies/creditxpress-aws-sub009/orchestrator/api/http_api/context_service"
	"github.com/Malcan-Technologies/creditxpress-aws-sub009/orchestrator/modules/logger"
	"github.com/Malcan-Technologies/creditxpress-aws-sub009/orchestrator/repositories/ledger"
	"github.com/Malcan-Technologies/creditxpress-aws-sub009/orchestrator/services"
	"github.com/Malcan-Technologies/creditxpress-aws-sub009/orchestrator/services/artifact"
	"github.com/Malcan-Technologies/creditxpress-aws-sub009/orchestrator/services/workflow"
	"github.com/Malcan-Technologies/creditxpress-aws-sub009/orchestrator/types"
)

type HTTPApp struct {
	workflow  workflow.WorkflowService
	artifacts artifact.Store
	ledger    ledger.LedgerRepo
	logger    logger.Logger
}

func NewHTTPApp(wf workflow.WorkflowService, sp *services.ServiceProvider) *HTTPApp {
	return &HTTPApp{
		workflow:  wf,
		artifacts: sp.GetArtifacts(),
		ledger:    sp.GetLedgerRepo(),
		logger:    sp.GetLogger(),
	}
}

// serviceError maps engine errors onto the operator surface: session
// lifecycle errors carry their own statuses, well-formed business rejections
// are 422, authority transport trouble is 502, the rest stays 500.
func (a *HTTPApp) serviceError(stx *cs.ContextService, err error) error {
	switch {
	case errors.Is(err, types.ErrSessionNotFound):
		return stx.JsonError(http.StatusNotFound, err)
	case errors.Is(err, types.ErrSessionExpired):
		return stx.JsonError(http.StatusGone, err)
	case errors.Is(err, types.ErrSessionCompleted):
		return stx.JsonError(http.StatusConflict, err)
	}

	var businessErr *workflow.BusinessError
	if errors.As(err, &businessErr) {
		return stx.JsonError(http.StatusUnprocessableEntity, businessErr)
	}

	var transportErr *authority.TransportError
	if errors.As(err, &transportErr) {
		return stx.JsonError(http.StatusBadGateway, err)
	}

	return stx.JsonError(http.StatusInternalServerError, err)
}
