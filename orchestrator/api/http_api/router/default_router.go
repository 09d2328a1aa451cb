package router

import (
	"github.com/labstack/echo/v4"

	"github.com/Malcan-Technologies/creditxpress-aws-sub009/orchestrator/api/http_api/handlers"
	"github.com/Malcan-Technologies/creditxpress-aws-sub009/orchestrator/services"
	"github.com/Malcan-Technologies/creditxpress-aws-sub009/orchestrator/services/workflow"
)

// SetRouter wires the public surface (webhook + health) and the
// authenticated operator surface.
func SetRouter(e *echo.Echo, authHandler echo.MiddlewareFunc, wf workflow.WorkflowService, sp *services.ServiceProvider) {
	h := handlers.NewHTTPApp(wf, sp)

	e.POST("/webhooks/envelope", h.EnvelopeWebhook)
	e.GET("/healthz", h.Healthz)

	operator := e.Group("")
	if authHandler != nil {
		operator.Use(authHandler)
	}

	operator.GET("/getCertificateStatus", h.GetCertificateStatus)
	operator.GET("/getSession", h.GetSession)
	operator.GET("/getArtifacts", h.GetArtifacts)

	operator.POST("/requestCode", h.RequestCode)
	operator.POST("/submitCode", h.SubmitCode)
	operator.POST("/enrollSigner", h.EnrollSigner)
	operator.POST("/verifyArtifact", h.VerifyArtifact)
}
