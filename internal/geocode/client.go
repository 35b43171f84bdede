// Package geocode implements the client for the Nominatim-compatible
// geocoding service.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/nikhilsingh/trackemdown/internal/core/model"
	"github.com/nikhilsingh/trackemdown/internal/core/observability"
)

const pingTimeout = 3 * time.Second

// RequestError is a transport-level search failure: a connection error, a
// timeout, or a non-2xx response from the geocoding service. Decode failures
// of a 2xx body are deliberately not RequestErrors.
type RequestError struct {
	Status int // zero when the request never completed
	Body   string
	Err    error
}

func (e *RequestError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("geocoder status %d: %s", e.Status, e.Body)
	}
	return fmt.Sprintf("geocoder request: %v", e.Err)
}

func (e *RequestError) Unwrap() error { return e.Err }

type Client struct {
	logger    *slog.Logger
	client    *http.Client
	searchURL *url.URL
	statusURL *url.URL
	userAgent string
	timeout   time.Duration
}

// New builds a client for a Nominatim-compatible base URL. The timeout
// bounds each search call; the user agent identifies this service upstream.
func New(logger *slog.Logger, client *http.Client, base, userAgent string, timeout time.Duration) (*Client, error) {
	trimmed := strings.TrimRight(base, "/")
	searchURL, err := url.Parse(trimmed + "/search")
	if err != nil {
		return nil, fmt.Errorf("parse geocoder url: %w", err)
	}
	statusURL, err := url.Parse(trimmed + "/status")
	if err != nil {
		return nil, fmt.Errorf("parse geocoder url: %w", err)
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		logger:    logger,
		client:    client,
		searchURL: searchURL,
		statusURL: statusURL,
		userAgent: userAgent,
		timeout:   timeout,
	}, nil
}

// Search runs one forward-geocoding request and returns the raw candidate
// records. A 2xx empty array is ([], nil); emptiness is the caller's concern.
func (c *Client) Search(ctx context.Context, query string) ([]model.Candidate, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	params := url.Values{}
	params.Set("format", "json")
	params.Set("q", query)

	u := *c.searchURL
	u.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	c.logger.Debug("geocode search", "q", query)

	start := time.Now()
	resp, err := c.client.Do(req)
	dur := time.Since(start)
	observability.ObserveUpstreamLatency("geocoder", dur.Seconds())
	if err != nil {
		return nil, &RequestError{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 8<<10))
		return nil, &RequestError{Status: resp.StatusCode, Body: strings.TrimSpace(string(b))}
	}

	var candidates []model.Candidate
	if err := json.NewDecoder(resp.Body).Decode(&candidates); err != nil {
		return nil, fmt.Errorf("decode geocoder response: %w", err)
	}

	c.logger.Debug("geocode search done",
		"q", query,
		"candidates", len(candidates),
		"duration", dur.String())
	return candidates, nil
}

// Ping reports transport-level reachability of the geocoding service. Any
// HTTP response counts as reachable, including error statuses.
func (c *Client) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.statusURL.String(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("geocoder unreachable: %w", err)
	}
	_ = resp.Body.Close()
	return nil
}
