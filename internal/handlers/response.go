package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	errs "github.com/clausedesk/clausedesk-backend/internal/pkg/errors"
	"gorm.io/gorm"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// statusFor maps the error taxonomy to HTTP codes: validation 400, not-found
// 404, duplicate 409, everything else 500.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, errs.ErrInvalidArgument):
		return http.StatusBadRequest, "validation_error"
	case errors.Is(err, errs.ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, errs.ErrDuplicate):
		return http.StatusConflict, "duplicate"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

func RespondErrorAuto(c *gin.Context, err error) {
	status, code := statusFor(err)
	RespondError(c, status, code, err)
}
