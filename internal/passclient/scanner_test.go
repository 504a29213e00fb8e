package passclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"gatepass/internal/domain"
	"gatepass/internal/domain/models"
)

func verifierServer(t *testing.T, secret string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(domain.PoliceAuthHeader) != secret {
			http.Error(w, "access denied", http.StatusForbidden)
			return
		}
		var body struct {
			Token string `json:"token"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Token != "good-token" {
			http.Error(w, "invalid or expired", http.StatusNotFound)
			return
		}
		_ = json.NewEncoder(w).Encode(models.VerificationResult{
			Status:  "APPROVED",
			Driver:  "Ravi Kumar",
			Vehicle: "TN-01-AB-1234",
			Route:   "Chennai -> Vizag",
		})
	}))
}

func TestScannerHappyPath(t *testing.T) {
	srv := verifierServer(t, "secret")
	defer srv.Close()

	s := NewScanner(NewVerifier(srv.URL, "secret"))
	res, err := s.HandleScan(context.Background(), "good-token")
	if err != nil {
		t.Fatalf("HandleScan error: %v", err)
	}
	if res.Vehicle != "TN-01-AB-1234" {
		t.Errorf("vehicle = %q", res.Vehicle)
	}
	if s.State() != ScanResult {
		t.Errorf("state = %s, want result", s.State())
	}

	// blocked until the operator dismisses the result
	if _, err := s.HandleScan(context.Background(), "good-token"); !errors.Is(err, ErrScannerBusy) {
		t.Fatalf("scan while displaying result = %v, want ErrScannerBusy", err)
	}

	s.Dismiss()
	if s.State() != ScanArmed {
		t.Errorf("state after dismiss = %s, want armed", s.State())
	}
	if _, ok := s.Result(); ok {
		t.Errorf("result must be cleared on dismiss")
	}
}

func TestScannerUnauthorizedDevice(t *testing.T) {
	srv := verifierServer(t, "secret")
	defer srv.Close()

	s := NewScanner(NewVerifier(srv.URL, "wrong-secret"))
	_, err := s.HandleScan(context.Background(), "good-token")
	if !errors.Is(err, ErrUnauthorizedDevice) {
		t.Fatalf("error = %v, want ErrUnauthorizedDevice", err)
	}
	if s.State() != ScanArmed {
		t.Errorf("scanner must re-arm after failure, state = %s", s.State())
	}
}

func TestScannerInvalidPassRearms(t *testing.T) {
	srv := verifierServer(t, "secret")
	defer srv.Close()

	s := NewScanner(NewVerifier(srv.URL, "secret"))
	_, err := s.HandleScan(context.Background(), "bogus")
	if !errors.Is(err, ErrInvalidPass) {
		t.Fatalf("error = %v, want ErrInvalidPass", err)
	}
	if s.State() != ScanArmed {
		t.Errorf("scanner must re-arm after invalid pass, state = %s", s.State())
	}
}

type blockingVerifier struct {
	started chan struct{}
	release chan struct{}
}

func (b *blockingVerifier) VerifyToken(ctx context.Context, token string) (models.VerificationResult, error) {
	close(b.started)
	<-b.release
	return models.VerificationResult{Status: "APPROVED"}, nil
}

func TestScannerBlockedWhileRequestOutstanding(t *testing.T) {
	v := &blockingVerifier{started: make(chan struct{}), release: make(chan struct{})}
	s := NewScanner(v)

	done := make(chan struct{})
	go func() {
		defer close(done)
		if _, err := s.HandleScan(context.Background(), "tok"); err != nil {
			t.Errorf("first scan error: %v", err)
		}
	}()

	<-v.started
	if _, err := s.HandleScan(context.Background(), "tok"); !errors.Is(err, ErrScannerBusy) {
		t.Fatalf("scan while pending = %v, want ErrScannerBusy", err)
	}

	close(v.release)
	<-done
}
