package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/CorretorBrazza/docu-flow-automato/internal/common"
)

// ErrorBody is the standardized error object.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps the error body.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

func respondError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, ErrorResponse{Error: ErrorBody{Code: code, Message: message}})
}

// respondAppError maps the error taxonomy onto HTTP statuses.
func respondAppError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, common.ErrNotFound):
		respondError(c, http.StatusNotFound, "NOT_FOUND", "case not found")
	case errors.Is(err, common.ErrInvalidInput):
		respondError(c, http.StatusBadRequest, "INVALID_INPUT", err.Error())
	case errors.Is(err, common.ErrBackendUnavailable):
		respondError(c, http.StatusBadGateway, "BACKEND_UNAVAILABLE", "extraction backend unreachable")
	default:
		respondError(c, http.StatusInternalServerError, "INTERNAL", "internal error")
	}
}
