package passclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"gatepass/internal/domain/models"
)

// IssuerClient talks to the pass issuance service. The response convention
// is the JSON body with a base64 PNG field; the raw-blob variant is not
// supported.
type IssuerClient struct {
	BaseURL string
	HTTP    *http.Client
}

func NewIssuer(baseURL string) *IssuerClient {
	return &IssuerClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTP:    &http.Client{Timeout: 30 * time.Second},
	}
}

// CreateTrip submits the request and returns the issued pass. Any non-OK
// status or a response without a QR payload is a failure: issuance either
// fully succeeds with a usable artifact or fully fails.
func (ic *IssuerClient) CreateTrip(ctx context.Context, req models.TripRequest) (models.IssuedPass, error) {
	var pass models.IssuedPass

	body, err := json.Marshal(req)
	if err != nil {
		return pass, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, ic.BaseURL+"/create_trip_qr", bytes.NewReader(body))
	if err != nil {
		return pass, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := ic.httpClient().Do(httpReq)
	if err != nil {
		return pass, err
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return pass, fmt.Errorf("issuance failed (%d): %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	if err := json.Unmarshal(raw, &pass); err != nil {
		return pass, fmt.Errorf("issuance: failed to parse response: %w", err)
	}
	if strings.TrimSpace(pass.QRBase64) == "" {
		return models.IssuedPass{}, fmt.Errorf("issuance: response has no QR payload")
	}
	return pass, nil
}

func (ic *IssuerClient) httpClient() *http.Client {
	if ic.HTTP != nil {
		return ic.HTTP
	}
	return http.DefaultClient
}
