package http_api

import (
	"context"

	"github.com/labstack/echo/v4"
	echo_middleware "github.com/labstack/echo/v4/middleware"

	"github.com/Malcan-Technologies/creditxpress-aws-sub009/orchestrator/api/http_api/router"
	"github.com/Malcan-Technologies/creditxpress-aws-sub009/orchestrator/config"
	"github.com/Malcan-Technologies/creditxpress-aws-sub009/orchestrator/services"
	"github.com/Malcan-Technologies/creditxpress-aws-sub009/orchestrator/services/workflow"
)

type RESTApiProvider struct {
	config       *config.HttpApiConfig
	echoInstance *echo.Echo
}

func (p *RESTApiProvider) NewServer(cfg *config.Config, wf workflow.WorkflowService, sp *services.ServiceProvider) error {
	p.config = cfg.HttpApiConfig

	p.echoInstance = echo.New()

	p.echoInstance.HideBanner = true
	p.echoInstance.Debug = p.config.Debug

	p.echoInstance.HTTPErrorHandler = customHTTPErrorHandler

	// Middlewares

	p.echoInstance.Use(echo_middleware.Logger())

	p.echoInstance.Use(contextServiceMiddleware)

	var authHandler echo.MiddlewareFunc
	if p.config.APIKeyHash != "" {
		authHandler = apiKeyAuthMiddleware(p.config.APIKeyHash)
	}

	router.SetRouter(p.echoInstance, authHandler, wf, sp)

	return nil
}

func (p *RESTApiProvider) Start() error {
	return p.echoInstance.Start(p.config.ListenAddr)
}

func (p *RESTApiProvider) Stop(ctx context.Context) error {
	return p.echoInstance.Shutdown(ctx)
}
