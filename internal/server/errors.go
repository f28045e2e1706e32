package server

import (
	"errors"
	"net/http"

	"github.com/adsretail/billdesk/internal/auth"
	"github.com/adsretail/billdesk/internal/billing/calc"
	"github.com/adsretail/billdesk/internal/billing/domain"
	"github.com/adsretail/billdesk/internal/providers/pdf"
	"github.com/gin-gonic/gin"
)

type errorPayload struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

// ErrorHandlingMiddleware maps domain errors to HTTP responses in one place;
// handlers only record errors.
func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func abortBadRequest(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{
		Error: errorPayload{Type: "invalid_request", Message: message},
	})
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func mapError(err error) (int, errorPayload) {
	switch {
	case calc.InvalidInput(err),
		errors.Is(err, domain.ErrInvalidDate),
		errors.Is(err, domain.ErrInvalidPaymentMode),
		errors.Is(err, domain.ErrInvalidBillNumber):
		return http.StatusBadRequest, errorPayload{Type: "invalid_request", Message: err.Error()}
	case errors.Is(err, domain.ErrBillNotFound):
		return http.StatusNotFound, errorPayload{Type: "not_found", Message: err.Error()}
	case errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized, errorPayload{Type: "unauthorized", Message: err.Error()}
	case errors.Is(err, auth.ErrLoginDisabled):
		return http.StatusServiceUnavailable, errorPayload{Type: "service_unavailable", Message: err.Error()}
	case errors.Is(err, domain.ErrBillNumberExhausted):
		return http.StatusServiceUnavailable, errorPayload{Type: "service_unavailable", Message: err.Error()}
	case errors.Is(err, pdf.ErrTemplateUnavailable),
		errors.Is(err, pdf.ErrPageClone):
		return http.StatusInternalServerError, errorPayload{Type: "render_failed", Message: err.Error()}
	default:
		return http.StatusInternalServerError, errorPayload{Type: "internal_error", Message: "internal error"}
	}
}
