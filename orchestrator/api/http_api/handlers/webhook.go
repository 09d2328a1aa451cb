package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	. "github.com/Malcan-Technologies/creditxpress-aws-sub009/orchestrator/api/dto"
	cs "github.com/Malcan-Technologies/creditxpress-aws-sub009/orchestrator/api/http_api/context_service"
	req "github.com/Malcan-Technologies/creditxpress-aws-sub009/orchestrator/api/http_api/requests"
	"github.com/Malcan-Technologies/creditxpress-aws-sub009/orchestrator/api/http_api/responses"
)

const eventFormCompleted = "form.completed"

// EnvelopeWebhook receives the platform's notifications. It acknowledges
// with 200 no matter what happens inside: the platform's retry cycle cannot
// fix our failures and would only duplicate deliveries.
func (a *HTTPApp) EnvelopeWebhook(c echo.Context) error {
	stx := c.(*cs.ContextService)

	request := &req.WebhookForm{}
	if err := stx.Bind(request); err != nil {
		a.logger.Log("Dropped malformed envelope notification: %v", err)
		return a.ack(stx, false, "malformed payload")
	}

	formDTO := &WebhookDTO{
		EventType:   request.EventType,
		SubmitterID: request.Data.ID,
	}

	if formDTO.EventType != eventFormCompleted {
		return a.ack(stx, true, "event ignored")
	}
	if formDTO.SubmitterID == "" {
		a.logger.Log("Dropped %s notification without data.id", formDTO.EventType)
		return a.ack(stx, false, "missing data.id")
	}

	if _, err := a.workflow.Intercept(stx.Request().Context(), formDTO.SubmitterID); err != nil {
		a.logger.Log("Failed to intercept submitter %s: %v", formDTO.SubmitterID, err)
		return a.ack(stx, false, "interception failed")
	}

	return a.ack(stx, true, "intercepted")
}

func (a *HTTPApp) ack(stx *cs.ContextService, success bool, message string) error {
	return stx.JSON(http.StatusOK, &responses.WebhookAck{
		Success:       success,
		Message:       message,
		CorrelationID: stx.CorrelationID(),
	})
}
