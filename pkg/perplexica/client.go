package perplexica

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"
)

const (
	searchPath    = "/api/search"
	providersPath = "/api/providers"

	defaultTimeout = 30 * time.Second
)

// StatusError is returned when the backend responds with a non-2xx status.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.Status, e.Body)
}

// Client performs HTTP calls against a Perplexica deployment. It issues one
// synchronous request per call, never retries, and never caches. The zero
// HTTPClient falls back to a shared client with a 30-second timeout.
type Client struct {
	BaseURL    string            // API base URL (no trailing slash).
	HTTPClient *http.Client      // HTTP client; falls back to a default when nil.
	Headers    map[string]string // Extra headers applied to every request.

	clientOnce    sync.Once
	defaultClient *http.Client
}

// NewClient creates a Client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{BaseURL: strings.TrimRight(baseURL, "/")}
}

// ListProviders fetches the providers listing and returns the raw JSON body.
func (c *Client) ListProviders(ctx context.Context) (json.RawMessage, error) {
	raw, err := c.getJSON(ctx, providersPath)
	if err != nil {
		return nil, fmt.Errorf("perplexica: list providers: %w", err)
	}

	return raw, nil
}

// Search submits a fully resolved search request and returns the raw JSON
// body. The request is consumed whole; streaming is never used even when
// the backend supports it.
func (c *Client) Search(ctx context.Context, req SearchRequest) (json.RawMessage, error) {
	raw, err := c.postJSON(ctx, searchPath, req)
	if err != nil {
		return nil, fmt.Errorf("perplexica: search: %w", err)
	}

	return raw, nil
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}

	c.clientOnce.Do(func() {
		c.defaultClient = &http.Client{Timeout: defaultTimeout}
	})

	return c.defaultClient
}

// newRequest builds an *http.Request with the base URL and custom headers
// applied.
func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	url := c.BaseURL + path

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}

	for k, v := range c.Headers {
		req.Header.Set(k, v)
	}

	return req, nil
}

func (c *Client) getJSON(ctx context.Context, path string) (json.RawMessage, error) {
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	return c.do(req)
}

func (c *Client) postJSON(ctx context.Context, path string, payload any) (json.RawMessage, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	return c.do(req)
}

// do sends the request, checks for a 2xx status, and returns the raw body.
func (c *Client) do(req *http.Request) (json.RawMessage, error) {
	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{Status: resp.StatusCode, Body: string(respBody)}
	}

	return respBody, nil
}
