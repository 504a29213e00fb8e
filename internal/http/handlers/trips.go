package handlers

import (
	"net/http"

	"gatepass/internal/domain/models"
	"gatepass/internal/http/middleware"
	"gatepass/internal/repositories"
	"gatepass/internal/services"

	"github.com/gin-gonic/gin"
)

// POST /create_trip_qr (legacy) and /api/trips/qr
func CreateTripQR(c *gin.Context) {
	var req models.TripRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	svc := services.TripService{
		Repo:      repositories.TripRepository{},
		JWTSecret: []byte(envCfg().JWTSecret),
		RequestID: middleware.GetRequestID(c),
	}

	pass, err := svc.Issue(req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"trip_ref":  pass.TripRef,
		"qr_base64": pass.QRBase64,
	})
}

// GET /get_all_trips (legacy) and /api/trips
func GetAllTrips(c *gin.Context) {
	svc := services.TripService{
		Repo:      repositories.TripRepository{},
		RequestID: middleware.GetRequestID(c),
	}

	trips, err := svc.ListRecent()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, trips)
}
