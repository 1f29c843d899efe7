// Package api implements the auth and profile service contracts over the
// backend's JSON envelope API. Application-level failures travel inside the
// envelope (non-zero code or success=false plus a message); only transport
// failures (no response, or a reply that is not the envelope) surface as
// errors.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Client is a thin HTTP client for the session backend.
type Client struct {
	baseURL string
	http    *http.Client
	logger  zerolog.Logger

	mu     sync.RWMutex
	tokens func() string
}

func NewClient(baseURL string, timeout time.Duration, logger zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// SetTokenSource wires the bearer token provider. Set after the session
// store exists; requests sent without a source (or with an empty token)
// simply omit the Authorization header.
func (c *Client) SetTokenSource(fn func() string) {
	c.mu.Lock()
	c.tokens = fn
	c.mu.Unlock()
}

func (c *Client) bearer() string {
	c.mu.RLock()
	fn := c.tokens
	c.mu.RUnlock()
	if fn == nil {
		return ""
	}
	return fn()
}

// doJSON executes one request and decodes the response body into out. The
// envelope is decoded regardless of HTTP status: the backend reports
// application failures inside the body, and those are not transport errors.
func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request %s %s: %w", method, path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if tok := c.bearer(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug().Err(err).Str("method", method).Str("path", path).Msg("backend unreachable")
		return fmt.Errorf("backend request %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response %s %s: %w", method, path, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response %s %s (status %d): %w", method, path, resp.StatusCode, err)
	}
	return nil
}
