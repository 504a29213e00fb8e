package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// ErrNoCandidates means the geocoder answered but knows no such place.
// Callers treat it as a silent no-route, not a failure.
var ErrNoCandidates = errors.New("geocode: no candidates")

// Point is a resolved coordinate pair in plain degrees.
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type candidate struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Client talks to a Nominatim-style geocoding service:
// GET /search?format=json&q=<name> returning an array of candidates.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Lookup resolves a place name to its first candidate coordinate.
func (c *Client) Lookup(ctx context.Context, name string) (Point, error) {
	var p Point

	params := url.Values{}
	params.Set("format", "json")
	params.Set("q", name)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return p, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return p, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return p, fmt.Errorf("geocoder error (%d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var candidates []candidate
	if err := json.Unmarshal(body, &candidates); err != nil {
		return p, fmt.Errorf("geocode: failed to parse response: %w", err)
	}
	if len(candidates) == 0 {
		return p, ErrNoCandidates
	}

	// first candidate is authoritative
	p.Lat, err = strconv.ParseFloat(candidates[0].Lat, 64)
	if err != nil {
		return p, fmt.Errorf("geocode: bad lat %q: %w", candidates[0].Lat, err)
	}
	p.Lon, err = strconv.ParseFloat(candidates[0].Lon, 64)
	if err != nil {
		return p, fmt.Errorf("geocode: bad lon %q: %w", candidates[0].Lon, err)
	}
	return p, nil
}

// ResolvePair looks up both route endpoints concurrently. Both must
// resolve before a route is considered ready.
func (c *Client) ResolvePair(ctx context.Context, from, to string) (Point, Point, error) {
	type result struct {
		p   Point
		err error
	}

	fromCh := make(chan result, 1)
	toCh := make(chan result, 1)

	go func() {
		p, err := c.Lookup(ctx, from)
		fromCh <- result{p, err}
	}()
	go func() {
		p, err := c.Lookup(ctx, to)
		toCh <- result{p, err}
	}()

	fr := <-fromCh
	tr := <-toCh
	if fr.err != nil {
		return Point{}, Point{}, fr.err
	}
	if tr.err != nil {
		return Point{}, Point{}, tr.err
	}
	return fr.p, tr.p, nil
}

func (c *Client) httpClient() *http.Client {
	if c.HTTP != nil {
		return c.HTTP
	}
	return http.DefaultClient
}
