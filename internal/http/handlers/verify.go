package handlers

import (
	"net/http"
	"strings"

	"gatepass/internal/http/middleware"
	"gatepass/internal/repositories"
	"gatepass/internal/services"

	"github.com/gin-gonic/gin"
)

type verifyRequest struct {
	Token string `json:"token"`
}

// POST /verify_qr — behind the PoliceAuth middleware.
func VerifyQR(c *gin.Context) {
	var req verifyRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if strings.TrimSpace(req.Token) == "" {
		RespondError(c, http.StatusBadRequest, "token is required", nil)
		return
	}

	svc := services.VerifyService{
		Repo:      repositories.TripRepository{},
		JWTSecret: []byte(envCfg().JWTSecret),
		RequestID: middleware.GetRequestID(c),
	}

	result, err := svc.Verify(req.Token)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
