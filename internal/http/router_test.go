package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	intconfig "gatepass/internal/config"

	"github.com/gin-gonic/gin"
)

func testRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return NewRouter(intconfig.Env{
		JWTSecret:    "test-secret",
		PoliceSecret: "device-secret",
	})
}

func TestHealthEndpoint(t *testing.T) {
	r := testRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestVerifyRequiresPoliceAuth(t *testing.T) {
	r := testRouter()

	body := strings.NewReader(`{"token":"whatever"}`)
	req := httptest.NewRequest(http.MethodPost, "/verify_qr", body)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("status without header = %d, want 403", w.Code)
	}
}

func TestVerifyWrongSecretForbidden(t *testing.T) {
	r := testRouter()

	req := httptest.NewRequest(http.MethodPost, "/verify_qr", strings.NewReader(`{"token":"whatever"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-police-auth", "not-the-secret")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("status with wrong secret = %d, want 403", w.Code)
	}
}

func TestVerifyInvalidTokenNotFound(t *testing.T) {
	r := testRouter()

	req := httptest.NewRequest(http.MethodPost, "/verify_qr", strings.NewReader(`{"token":"garbage"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-police-auth", "device-secret")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status for garbage token = %d, want 404", w.Code)
	}
}

func TestCreateTripValidationError(t *testing.T) {
	r := testRouter()

	// invalid phone is reported before anything touches the database
	req := httptest.NewRequest(http.MethodPost, "/create_trip_qr", strings.NewReader(`{
		"driver_name": "Ravi Kumar",
		"driver_phone": "123",
		"vehicle_number": "TN-01-AB-1234",
		"documents": {"rc_book": "rc-data"}
	}`))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if !strings.Contains(w.Body.String(), "driver_phone") {
		t.Errorf("body should name the failing field: %s", w.Body.String())
	}
}
