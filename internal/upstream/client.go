package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/adwyte/synergysphere-web/internal/config"
	"golang.org/x/time/rate"
)

const apiPrefix = "/api/v1"

// Client is the typed REST client for the SynergySphere backend. Every call
// is a fresh network read; nothing is cached on this side.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient creates a backend client from config.
func NewClient(cfg *config.UpstreamConfig) *Client {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		limiter: rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst),
	}
}

// do performs one request against the backend. token may be empty for the
// auth endpoints. out receives the decoded JSON body when non-nil; 204
// responses decode into nothing.
func (c *Client) do(ctx context.Context, op, method, path, token, contentType string, body io.Reader, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return &Error{Kind: KindNetwork, Op: op, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+apiPrefix+path, body)
	if err != nil {
		return &Error{Kind: KindNetwork, Op: op, Err: err}
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &Error{Kind: KindNetwork, Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, readErr := io.ReadAll(resp.Body)
		text := strings.TrimSpace(string(raw))
		if readErr != nil || text == "" {
			text = resp.Status
		}
		return &Error{
			Kind:   classify(resp.StatusCode, text),
			Op:     op,
			Status: resp.StatusCode,
			Body:   text,
		}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{Kind: KindNetwork, Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func (c *Client) getJSON(ctx context.Context, op, path, token string, out interface{}) error {
	return c.do(ctx, op, http.MethodGet, path, token, "", nil, out)
}

func (c *Client) sendJSON(ctx context.Context, op, method, path, token string, payload, out interface{}) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return &Error{Kind: KindNetwork, Op: op, Err: err}
		}
		body = bytes.NewReader(data)
	}
	return c.do(ctx, op, method, path, token, "application/json", body, out)
}
