package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	cs "github.com/Malcan-Technologies/creditxpress-aws-sub009/orchestrator/api/http_api/context_service"
	"github.com/Malcan-Technologies/creditxpress-aws-sub009/orchestrator/api/http_api/responses"
)

func (a *HTTPApp) Healthz(c echo.Context) error {
	stx := c.(*cs.ContextService)

	report := &responses.HealthReport{
		ArtifactStore: responses.StatusOK,
		Ledger:        responses.StatusOK,
	}
	code := http.StatusOK

	if err := a.artifacts.Health(); err != nil {
		report.ArtifactStore = err.Error()
		code = http.StatusServiceUnavailable
	}
	if err := a.ledger.Ping(stx.Request().Context()); err != nil {
		report.Ledger = err.Error()
		code = http.StatusServiceUnavailable
	}

	return stx.Json(code, report)
}
