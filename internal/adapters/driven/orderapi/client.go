// Package orderapi provides driven adapters for the order-processing
// backend: PDF extraction, batch catalog matching, interactive catalog
// search, and the draft/final save endpoints.
package orderapi

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// Default configuration values.
const (
	DefaultTimeout     = 30 * time.Second
	DefaultSearchRate  = 5 // catalog searches per second
	DefaultSearchBurst = 5
)

// Config holds configuration for the backend client.
type Config struct {
	// BaseURL is the backend base URL (required), e.g. http://localhost:8000.
	BaseURL string

	// Timeout is the per-request timeout (default: 30s). Extraction uses
	// ExtractTimeout instead, since model-backed extraction is slow.
	Timeout time.Duration

	// ExtractTimeout is the timeout for /extract (default: 4x Timeout).
	ExtractTimeout time.Duration

	// SearchRate limits interactive catalog searches per second
	// (default: 5). Search traffic is keystroke-driven, so the client
	// throttles rather than trusting the UI to debounce.
	SearchRate int
}

// Client talks to the order-processing backend.
type Client struct {
	http        *http.Client
	extractHTTP *http.Client
	baseURL     string
	limiter     *rate.Limiter
}

// NewClient creates a backend client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("orderapi: base URL is required")
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.ExtractTimeout == 0 {
		cfg.ExtractTimeout = 4 * cfg.Timeout
	}
	if cfg.SearchRate <= 0 {
		cfg.SearchRate = DefaultSearchRate
	}

	return &Client{
		http:        &http.Client{Timeout: cfg.Timeout},
		extractHTTP: &http.Client{Timeout: cfg.ExtractTimeout},
		baseURL:     cfg.BaseURL,
		limiter:     rate.NewLimiter(rate.Limit(cfg.SearchRate), DefaultSearchBurst),
	}, nil
}

// checkStatus turns a non-200 response into an error carrying the body.
func checkStatus(resp *http.Response) error {
	if resp.StatusCode == http.StatusOK {
		return nil
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
	return fmt.Errorf("orderapi: %s returned status %d: %s",
		resp.Request.URL.Path, resp.StatusCode, string(body))
}
