package helpers

import (
	"errors"
	"net/http"

	"github.com/farellandr/skatefund/internal/apperr"
	"github.com/gin-gonic/gin"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

func HTTPStatusText(code int) string {
	return http.StatusText(code)
}

func RespondWithError(c *gin.Context, statusCode int, customMessage string) {
	c.JSON(statusCode, ErrorResponse{
		Error:   HTTPStatusText(statusCode),
		Message: customMessage,
	})
}

// ErrorMapper turns typed errors into HTTP statuses. DomainInvariantStatus is a
// deployment choice between 400 and 500.
type ErrorMapper struct {
	DomainInvariantStatus int
}

func (m ErrorMapper) Status(err error) int {
	switch apperr.KindOf(err) {
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindInvalidInput, apperr.KindPreconditionFailed, apperr.KindConflict:
		return http.StatusBadRequest
	case apperr.KindDomainInvariant:
		if m.DomainInvariantStatus != 0 {
			return m.DomainInvariantStatus
		}
		return http.StatusInternalServerError
	}
	return http.StatusInternalServerError
}

func (m ErrorMapper) Respond(c *gin.Context, err error) {
	status := m.Status(err)
	msg := err.Error()
	var ae *apperr.Error
	if errors.As(err, &ae) && ae.Kind == apperr.KindStore {
		msg = "Storage failure."
	}
	c.JSON(status, ErrorResponse{
		Error:   HTTPStatusText(status),
		Message: msg,
		Code:    apperr.CodeOf(err),
	})
}
