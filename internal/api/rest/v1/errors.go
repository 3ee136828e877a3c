package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/turrs/bank-skd/internal/pkg/apperrors"
	"github.com/turrs/bank-skd/internal/pkg/validators"
)

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// statusOf maps an error kind to an HTTP status
func statusOf(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrInvalid):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrConflict):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// respondError writes err with the status of its kind. Unclassified errors
// are attached to the context for logging and answered with a generic message.
func respondError(ctx *gin.Context, err error) {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		_ = ctx.Error(err)
		ctx.AbortWithStatusJSON(status, ErrorResponse{Message: "internal server error"})
		return
	}

	response := ErrorResponse{Message: err.Error()}
	var validationErr *validators.ValidationError
	if errors.As(err, &validationErr) {
		response.Message = "validation failed"
		response.Fields = validationErr.Fields
	}
	ctx.AbortWithStatusJSON(status, response)
}

// badRequest answers malformed input that never reached a service
func badRequest(ctx *gin.Context, message string) {
	ctx.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{Message: message})
}
