package services

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"gatepass/internal/domain"
	"gatepass/internal/domain/models"
	"gatepass/internal/repositories"
	"gatepass/internal/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"
)

const (
	tokenTTL   = 48 * time.Hour
	qrPixels   = 256
	tripLogMax = 10
)

// TripService validates a pass request, stores it and mints the QR artifact.
type TripService struct {
	Repo      repositories.TripRepository
	JWTSecret []byte
	RequestID string

	// NewRef overrides reference generation in tests.
	NewRef func() string
	// Now overrides the clock in tests.
	Now func() time.Time
}

// Issue runs the full issuance path. Validation failures come back as
// domain.ValidationError for the first failing field, in the fixed order
// phone, vehicle number, mandatory document.
func (s TripService) Issue(req models.TripRequest) (models.IssuedPass, error) {
	var pass models.IssuedPass

	req.DriverName = utils.TrimOrEmpty(req.DriverName)
	req.DriverPhone = utils.TrimOrEmpty(req.DriverPhone)
	req.RouteFrom = utils.TrimOrEmpty(req.RouteFrom)
	req.RouteTo = utils.TrimOrEmpty(req.RouteTo)

	if err := ValidateTripRequest(&req); err != nil {
		return pass, err
	}

	ref := s.newRef()
	tripID, err := s.Repo.Insert(req, ref)
	if err != nil {
		return pass, err
	}

	token, err := s.mintToken(ref, req.VehicleNumber)
	if err != nil {
		return pass, domain.InternalError{Msg: "failed to sign pass token", Err: err}
	}

	png, err := qrcode.Encode(token, qrcode.Medium, qrPixels)
	if err != nil {
		return pass, domain.InternalError{Msg: "failed to render QR", Err: err}
	}

	utils.LogEvent(s.RequestID, "trip", "issue", fmt.Sprintf("trip_id=%d ref=%s vehicle=%s", tripID, ref, req.VehicleNumber))

	pass.TripRef = ref
	pass.QRBase64 = base64.StdEncoding.EncodeToString(png)
	return pass, nil
}

// ListRecent returns the trip log, newest first.
func (s TripService) ListRecent() ([]models.Trip, error) {
	return s.Repo.ListRecent(tripLogMax)
}

// ValidateTripRequest checks submittability and canonicalizes the vehicle
// number in place. The relaxed plate form (separators optional) is accepted
// and normalized to the dashed form before storage.
func ValidateTripRequest(req *models.TripRequest) error {
	if !utils.ValidPhone(req.DriverPhone) {
		return domain.ValidationError{Field: "driver_phone", Msg: "phone must be exactly 10 digits"}
	}

	plate, ok := utils.CanonicalVehicleNumber(req.VehicleNumber)
	if !ok {
		return domain.ValidationError{Field: "vehicle_number", Msg: "invalid format, expected TN-01-AB-1234"}
	}
	req.VehicleNumber = plate

	if strings.TrimSpace(req.Documents[models.DocRCBook]) == "" {
		return domain.ValidationError{Field: "documents", Msg: "RC book proof is mandatory"}
	}
	return nil
}

func (s TripService) mintToken(ref, vehicle string) (string, error) {
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"trip_ref": ref,
		"vehicle":  vehicle,
		"iat":      now.Unix(),
		"exp":      now.Add(tokenTTL).Unix(),
	})
	return token.SignedString(s.JWTSecret)
}

func (s TripService) newRef() string {
	if s.NewRef != nil {
		return s.NewRef()
	}
	return uuid.NewString()
}

func (s TripService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
