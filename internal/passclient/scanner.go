package passclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"gatepass/internal/domain"
	"gatepass/internal/domain/models"
)

// ScanState of the checkpoint scanner.
type ScanState string

const (
	ScanArmed   ScanState = "armed"
	ScanPending ScanState = "pending"
	ScanResult  ScanState = "result"
)

var (
	// ErrUnauthorizedDevice surfaces the distinct 403 alert.
	ErrUnauthorizedDevice = errors.New("passclient: unauthorized device")
	// ErrInvalidPass covers every other verification failure.
	ErrInvalidPass = errors.New("passclient: invalid or expired pass")
	// ErrScannerBusy rejects a scan while a request is outstanding or a
	// result is still displayed.
	ErrScannerBusy = errors.New("passclient: scanner busy")
)

// Verifier resolves a scanned token.
type Verifier interface {
	VerifyToken(ctx context.Context, token string) (models.VerificationResult, error)
}

// VerifierClient talks to the verification service with the device secret.
type VerifierClient struct {
	BaseURL string
	Secret  string
	HTTP    *http.Client
}

func NewVerifier(baseURL, secret string) *VerifierClient {
	return &VerifierClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		Secret:  secret,
		HTTP:    &http.Client{Timeout: 15 * time.Second},
	}
}

func (vc *VerifierClient) VerifyToken(ctx context.Context, token string) (models.VerificationResult, error) {
	var out models.VerificationResult

	body, err := json.Marshal(map[string]string{"token": token})
	if err != nil {
		return out, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, vc.BaseURL+"/verify_qr", bytes.NewReader(body))
	if err != nil {
		return out, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(domain.PoliceAuthHeader, vc.Secret)

	resp, err := vc.httpClient().Do(req)
	if err != nil {
		return out, ErrInvalidPass
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusForbidden:
		return out, ErrUnauthorizedDevice
	case resp.StatusCode != http.StatusOK:
		return out, ErrInvalidPass
	}

	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return out, ErrInvalidPass
	}
	return out, nil
}

func (vc *VerifierClient) httpClient() *http.Client {
	if vc.HTTP != nil {
		return vc.HTTP
	}
	return http.DefaultClient
}

// Scanner latches after one scan: re-scanning is blocked while a request
// is outstanding or a result is displayed, until Dismiss.
type Scanner struct {
	mu       sync.Mutex
	state    ScanState
	result   *models.VerificationResult
	verifier Verifier
}

func NewScanner(verifier Verifier) *Scanner {
	return &Scanner{state: ScanArmed, verifier: verifier}
}

func (s *Scanner) State() ScanState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Result returns the displayed verification, if any.
func (s *Scanner) Result() (models.VerificationResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.result == nil {
		return models.VerificationResult{}, false
	}
	return *s.result, true
}

// HandleScan sends the raw scanned payload for verification. On failure
// the scanner re-arms itself; on success it holds the result until the
// operator dismisses it.
func (s *Scanner) HandleScan(ctx context.Context, token string) (models.VerificationResult, error) {
	s.mu.Lock()
	if s.state != ScanArmed {
		s.mu.Unlock()
		return models.VerificationResult{}, ErrScannerBusy
	}
	s.state = ScanPending
	s.mu.Unlock()

	result, err := s.verifier.VerifyToken(ctx, token)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.state = ScanArmed
		s.result = nil
		return models.VerificationResult{}, err
	}

	s.state = ScanResult
	s.result = &result
	return result, nil
}

// Dismiss clears the displayed result and re-arms scanning.
func (s *Scanner) Dismiss() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != ScanResult {
		return
	}
	s.state = ScanArmed
	s.result = nil
}
