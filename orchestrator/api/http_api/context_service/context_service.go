package context_service

import (
	"fmt"
	"net/http"

	"github.com/censync/go-dto"
	"github.com/censync/go-validator"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type ContextService struct {
	echo.Context

	correlationID string
}

func New(c echo.Context) *ContextService {
	correlationID := c.Request().Header.Get("X-Correlation-ID")
	if correlationID == "" {
		correlationID = uuid.New().String()
	}
	c.Response().Header().Set("X-Correlation-ID", correlationID)

	return &ContextService{
		Context:       c,
		correlationID: correlationID,
	}
}

func (cs *ContextService) CorrelationID() string {
	return cs.correlationID
}

type CSJsonResp struct {
	Result        interface{} `json:"result"`
	CorrelationID string      `json:"correlation_id,omitempty"`
}

// Custom error
type CSErrorResp struct {
	Result        interface{} `json:"result"`
	ErrorMessage  string      `json:"error_message,omitempty"`
	CorrelationID string      `json:"correlation_id,omitempty"`
}

func (e *CSErrorResp) Error() string {
	if e == nil {
		return ""
	}
	return e.ErrorMessage
}

// BindToRequest populates the request fields based on the context path and query parameters and body
// and validates the result. The 400 response is written here; the returned
// error only tells the handler to stop.
func (cs *ContextService) BindToRequest(request interface{}) error {
	if err := cs.Bind(request); err != nil {
		bindErr := fmt.Errorf("failed to read request body: %v", err)
		cs.JsonError(http.StatusBadRequest, bindErr)
		return bindErr
	}
	if err := validator.Validate(request); !err.IsEmpty() {
		cs.JsonError(http.StatusBadRequest, err.Error())
		return err.Error()
	}
	return nil
}

// BindToDTO builds a request of the given form based on the context and converts it to a DTO.
func (cs *ContextService) BindToDTO(requestForm, dtoForm interface{}) error {
	if err := cs.BindToRequest(requestForm); err != nil {
		return err
	}
	if err := dto.RequestToDTO(dtoForm, requestForm); err != nil {
		cs.JsonError(http.StatusBadRequest, err)
		return err
	}
	return nil
}

func (cs *ContextService) Json(code int, data interface{}) error {
	if data != nil {
		return cs.JSON(code, &CSJsonResp{
			Result:        data,
			CorrelationID: cs.correlationID,
		})
	} else {
		return cs.JSON(code, &CSJsonResp{
			Result:        struct{}{},
			CorrelationID: cs.correlationID,
		})
	}
}

func (cs *ContextService) JsonEmpty(code int) error {
	return cs.JSON(code, &CSJsonResp{
		Result:        struct{}{},
		CorrelationID: cs.correlationID,
	})
}

func (cs *ContextService) JsonError(code int, err error) error {
	if err == nil {
		return cs.JSON(code, &CSErrorResp{
			Result:        struct{}{},
			ErrorMessage:  "undefined error",
			CorrelationID: cs.correlationID,
		})
	} else {
		return cs.JSON(code, &CSErrorResp{
			Result:        struct{}{},
			ErrorMessage:  err.Error(),
			CorrelationID: cs.correlationID,
		})
	}
}
