package handlers

import (
	"net/http"

	"gatepass/internal/domain"
	"gatepass/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// RespondDomainError maps domain errors to HTTP responses following the
// error taxonomy: validation 400, invalid/expired pass 404, unauthorized
// device 403, everything else a generic 500.
func RespondDomainError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
	case domain.IsNotFound(err):
		respondError(c, http.StatusNotFound, "not_found", "invalid or expired QR code")
	case domain.IsUnauthorized(err):
		respondError(c, http.StatusForbidden, "unauthorized", err.Error())
	default:
		respondError(c, http.StatusInternalServerError, "internal_error", "something went wrong")
	}
}

func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"error":      message,
		"code":       code,
		"request_id": middleware.GetRequestID(c),
	})
}
