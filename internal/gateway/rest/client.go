// Package rest implements the storefront gateways over HTTP. It is the
// single owner of the wire contract: every request/response shape, header,
// and path convention lives here so callers cannot drift apart on it.
package rest

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"storefront-client/internal/cookies"
	"storefront-client/internal/domain"
	"storefront-client/pkg/logger"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// Paths are the server-defined endpoint constants, the same values the
// backend injects into its pages.
type Paths struct {
	Cart             string
	Reviews          string
	ComparisonAdd    string
	ComparisonRemove string
}

// Client is a typed client for the storefront API. It attaches the session
// cookies to every call and the anti-forgery token to every mutating one.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Timeout    time.Duration

	paths  Paths
	tokens *cookies.TokenSource
}

// NewClient creates a storefront API client. timeout bounds each
// individual call; a hung request fails instead of blocking forever.
func NewClient(baseURL string, paths Paths, tokens *cookies.TokenSource, timeout time.Duration) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{},
		Timeout:    timeout,
		paths:      paths,
		tokens:     tokens,
	}
}

func (c *Client) url(path string) string {
	return c.BaseURL + path
}

// do runs one round-trip: marshal body, attach headers, bound by the
// configured timeout, decode into out on 2xx. Non-2xx becomes a typed
// *domain.APIError; transport failures wrap the cause.
func (c *Client) do(ctx context.Context, op, method, rawURL string, body, out interface{}) error {
	start := time.Now()
	status, err := c.roundTrip(ctx, op, method, rawURL, body, out)
	logger.APICall(op, method, status, time.Since(start), err)
	return err
}

func (c *Client) roundTrip(ctx context.Context, op, method, rawURL string, body, out interface{}) (int, error) {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("%s: encode request: %w", op, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return 0, fmt.Errorf("%s: build request: %w", op, err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(domain.HeaderRequestID, uuid.NewString())
	if raw := c.tokens.Raw(); raw != "" {
		req.Header.Set("Cookie", raw)
	}

	// Mutating calls must carry the anti-forgery token. Omission is a
	// contract violation, caught here before any network I/O.
	if method != http.MethodGet {
		token, err := c.tokens.Token()
		if err != nil {
			return 0, fmt.Errorf("%s: %w", op, err)
		}
		req.Header.Set(domain.HeaderCSRFToken, token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		io.Copy(io.Discard, resp.Body)
		return resp.StatusCode, &domain.APIError{Op: op, Status: resp.StatusCode}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, fmt.Errorf("%s: decode response: %w", op, err)
		}
	}
	return resp.StatusCode, nil
}
