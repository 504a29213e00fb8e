package services

import (
	"fmt"
	"time"

	"gatepass/internal/domain"
	"gatepass/internal/domain/models"
	"gatepass/internal/repositories"
	"gatepass/internal/utils"

	"github.com/golang-jwt/jwt/v5"
)

// VerifyService resolves a scanned token back to the trip it was minted for.
type VerifyService struct {
	Repo      repositories.TripRepository
	JWTSecret []byte
	RequestID string

	Now func() time.Time
}

// Verify parses the scanned token and builds the verification result.
// Invalid and expired tokens both come back as NotFoundError: the scanner
// shows one "invalid or expired" alert for either case.
func (s VerifyService) Verify(token string) (models.VerificationResult, error) {
	var out models.VerificationResult

	ref, err := s.parseToken(token)
	if err != nil {
		return out, domain.NotFoundError{Resource: "pass", Err: err}
	}

	trip, err := s.Repo.GetByRef(ref)
	if err != nil {
		return out, err
	}

	docs, err := s.Repo.DocumentsByTripID(trip.ID)
	if err != nil {
		return out, err
	}

	uploaded := map[string]string{}
	for _, d := range docs {
		uploaded[d.Kind] = d.Payload
	}

	checklist := make([]models.DocumentStatus, 0, len(models.DocumentKinds))
	for _, kind := range models.DocumentKinds {
		line := models.DocumentStatus{Name: models.DocumentLabels[kind], Status: "MISSING"}
		if payload, ok := uploaded[kind]; ok {
			line.Status = "VALID"
			line.Image = payload
		}
		checklist = append(checklist, line)
	}

	utils.LogEvent(s.RequestID, "verify", "verify_qr", fmt.Sprintf("trip_id=%d ref=%s", trip.ID, trip.TripRef))

	out = models.VerificationResult{
		Status:     "APPROVED",
		Driver:     trip.DriverName,
		Phone:      trip.DriverPhone,
		Vehicle:    trip.VehicleNumber,
		Route:      trip.RouteFrom + " -> " + trip.RouteTo,
		Photo:      trip.DriverPhoto,
		Documents:  checklist,
		VerifiedAt: s.now().Format("2006-01-02 15:04:05"),
	}
	return out, nil
}

func (s VerifyService) parseToken(token string) (string, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		return s.JWTSecret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return "", err
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return "", fmt.Errorf("unexpected claims type")
	}
	ref, _ := claims["trip_ref"].(string)
	if ref == "" {
		return "", fmt.Errorf("token has no trip reference")
	}
	return ref, nil
}

func (s VerifyService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
