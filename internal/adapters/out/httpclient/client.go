// Package httpclient is the JSON-over-HTTP caller shared by the outbound
// adapters. Any non-2xx answer becomes a *fault.RemoteError carrying the
// decoded body.
package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"checkout/internal/core/domain/model/fault"
)

const (
	defaultTimeout = 15 * time.Second
	maxErrorBody   = 64 << 10
)

var ErrBaseURLIsRequired = errors.New("base URL is required")

// Config configures a Client.
type Config struct {
	// Service names the remote side in errors and logs.
	Service string
	BaseURL string

	// APIKey is sent as a bearer token when set.
	APIKey string

	// HTTPClient replaces the default client, mostly in tests.
	HTTPClient *http.Client
	Timeout    time.Duration
}

// Client calls one remote JSON service.
type Client struct {
	service string
	baseURL string
	apiKey  string
	http    *http.Client
}

func New(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, fmt.Errorf("%s: %w", cfg.Service, ErrBaseURLIsRequired)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		service: cfg.Service,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		http:    httpClient,
	}, nil
}

// Service returns the configured service name.
func (c *Client) Service() string {
	return c.service
}

// Do sends body as JSON (nil sends no body) and decodes a 2xx answer into
// out (nil discards it). headers are added to the request.
func (c *Client) Do(ctx context.Context, method, path string, body, out any, headers map[string]string) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", c.service, err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%s: create request: %w", c.service, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", c.service, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.remoteError(resp)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decode response: %w", c.service, err)
	}
	return nil
}

func (c *Client) remoteError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	var payload any
	if err := json.Unmarshal(raw, &payload); err != nil {
		payload = strings.TrimSpace(string(raw))
	}
	return &fault.RemoteError{Service: c.service, StatusCode: resp.StatusCode, Payload: payload}
}
