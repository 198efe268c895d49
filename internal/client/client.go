// Package client talks to the contract analyzer service over HTTP.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/clauselens/clauselens/internal/result"
)

// ErrNotFound is returned when the service has no analysis under the
// requested id.
var ErrNotFound = errors.New("analysis result not found")

// Client is a client for the analyzer's history API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures the Client during construction.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.httpClient = c
	}
}

// WithTimeout sets a timeout on the HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(cl *Client) {
		cl.httpClient.Timeout = d
	}
}

// New creates a Client for the analyzer at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("client: baseURL is required")
	}
	c := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// APIError is a non-2xx response from the analyzer service.
type APIError struct {
	Operation  string
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: analyzer returned %d: %s", e.Operation, e.StatusCode, e.Detail)
}

// Is maps missing results onto ErrNotFound so callers can test with
// errors.Is without inspecting status codes.
func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

// HistoryEntry is the lightweight summary the history listing returns
// for each stored analysis.
type HistoryEntry struct {
	ID              string  `json:"id"`
	DocumentName    string  `json:"document_name"`
	Language        string  `json:"language"`
	RiskScore       float64 `json:"risk_score"`
	ComplianceScore float64 `json:"compliance_score"`
	Summary         string  `json:"summary"`
	CreatedAt       string  `json:"created_at"`
}

// History lists stored analyses, newest first.
func (c *Client) History(ctx context.Context) ([]HistoryEntry, error) {
	var env struct {
		Success bool           `json:"success"`
		Count   int            `json:"count"`
		Results []HistoryEntry `json:"results"`
	}
	if err := c.getJSON(ctx, "/api/history", "list history", &env); err != nil {
		return nil, err
	}
	if !env.Success {
		return nil, fmt.Errorf("list history: analyzer reported failure")
	}
	return env.Results, nil
}

// Fetch retrieves a single stored analysis with its full clause breakdown.
func (c *Client) Fetch(ctx context.Context, id string) (*result.Analysis, error) {
	if id == "" {
		return nil, fmt.Errorf("fetch analysis: id is required")
	}
	var env struct {
		Success bool            `json:"success"`
		Result  result.Analysis `json:"result"`
	}
	if err := c.getJSON(ctx, "/api/history/"+id, "fetch analysis", &env); err != nil {
		return nil, err
	}
	if !env.Success {
		return nil, fmt.Errorf("fetch analysis: analyzer reported failure")
	}
	return &env.Result, nil
}

// getJSON executes a GET and decodes the JSON response into dst. Error
// statuses become an *APIError carrying the service's detail message.
func (c *Client) getJSON(ctx context.Context, path, operation string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("%s: create request: %w", operation, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: do request: %w", operation, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		var detail struct {
			Detail string `json:"detail"`
		}
		msg := resp.Status
		if json.Unmarshal(respBody, &detail) == nil && detail.Detail != "" {
			msg = detail.Detail
		} else if len(respBody) > 0 {
			msg = string(respBody)
		}
		return &APIError{Operation: operation, StatusCode: resp.StatusCode, Detail: msg}
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("%s: decode response: %w", operation, err)
	}
	return nil
}
