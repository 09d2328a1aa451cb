package http_api

import (
	"errors"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	. "github.com/labstack/echo/v4"

	cs "github.com/Malcan-Technologies/creditxpress-aws-sub009/orchestrator/api/http_api/context_service"
)

var errUnauthorized = errors.New("missing or invalid X-Api-Key")

func contextServiceMiddleware(next HandlerFunc) HandlerFunc {
	return func(ctx Context) error {
		return next(cs.New(ctx))
	}
}

// apiKeyAuthMiddleware guards the operator surface. The config stores only
// a bcrypt hash of the shared key, comparison cost hides timing.
func apiKeyAuthMiddleware(apiKeyHash string) MiddlewareFunc {
	hash := []byte(apiKeyHash)

	return func(next HandlerFunc) HandlerFunc {
		return func(c Context) error {
			stx := c.(*cs.ContextService)

			key := stx.Request().Header.Get("X-Api-Key")
			if key == "" {
				return stx.JsonError(http.StatusUnauthorized, errUnauthorized)
			}
			if err := bcrypt.CompareHashAndPassword(hash, []byte(key)); err != nil {
				return stx.JsonError(http.StatusUnauthorized, errUnauthorized)
			}
			return next(stx)
		}
	}
}

// Custom error handler
func customHTTPErrorHandler(err error, c Context) {
	code := http.StatusInternalServerError

	csError, ok := err.(*cs.CSErrorResp)
	if !ok {
		if he, ok := err.(*HTTPError); ok {
			code = he.Code
			csError = &cs.CSErrorResp{
				Result:       struct{}{},
				ErrorMessage: http.StatusText(he.Code),
			}
		} else {
			csError = &cs.CSErrorResp{
				Result:       struct{}{},
				ErrorMessage: http.StatusText(http.StatusInternalServerError),
			}
		}
	}

	// Send response
	if !c.Response().Committed {
		if c.Request().Method == http.MethodHead {
			err = c.NoContent(code)
		} else {
			err = c.JSON(code, csError)
		}
		if err != nil {
			c.Logger().Error(err)
		}
	}
}
