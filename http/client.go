package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	nanoid "github.com/matoous/go-nanoid/v2"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 10 * time.Second

// RequestIDHeader carries the per-request correlation ID.
const RequestIDHeader = "X-Request-Id"

// ErrorParser converts a non-2xx response into an error. The body has
// already been read in full. Without one, responses become *APIError.
type ErrorParser func(resp *http.Response, body []byte, endpoint string) error

// Client executes JSON requests against one service. Each call is a single
// round trip: there are no retries.
type Client struct {
	client      *http.Client
	baseURL     string
	serviceName string
	logger      *slog.Logger

	// beforeRequest is called before each request (for auth headers, etc.)
	beforeRequest func(req *http.Request) error
	parseError    ErrorParser
}

// ClientConfig holds configuration for Client.
type ClientConfig struct {
	// Client is used as-is when set. Otherwise a pooled client with its
	// own transport is created.
	Client *http.Client

	// Timeout applies only when Client is nil.
	Timeout time.Duration

	BaseURL       string
	ServiceName   string
	Logger        *slog.Logger
	BeforeRequest func(req *http.Request) error
	ErrorParser   ErrorParser
}

// NewClient creates a new Client with the given configuration.
func NewClient(cfg ClientConfig) *Client {
	c := &Client{
		client:        cfg.Client,
		baseURL:       cfg.BaseURL,
		serviceName:   cfg.ServiceName,
		logger:        cfg.Logger,
		beforeRequest: cfg.BeforeRequest,
		parseError:    cfg.ErrorParser,
	}

	if c.client == nil {
		// Pooled, but never shares http.DefaultTransport with other clients.
		c.client = cleanhttp.DefaultPooledClient()
		c.client.Timeout = cfg.Timeout
		if c.client.Timeout <= 0 {
			c.client.Timeout = DefaultTimeout
		}
	}
	if c.logger == nil {
		c.logger = slog.New(slog.DiscardHandler)
	}
	if c.parseError == nil {
		c.parseError = func(resp *http.Response, body []byte, endpoint string) error {
			return NewAPIError(c.serviceName, resp, body, endpoint)
		}
	}

	return c
}

// HTTPClient returns the underlying *http.Client.
func (c *Client) HTTPClient() *http.Client {
	return c.client
}

// Do sends one request and decodes a 2xx JSON body into result.
//
// Transport failures are returned exactly as http.Client.Do reports them.
// Non-2xx responses go through the ErrorParser. A 2xx body that does not
// decode yields a *DecodeError. When result is nil or the body is empty,
// nothing is decoded.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body, result any) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, bodyReader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	requestID, err := nanoid.New()
	if err != nil {
		return fmt.Errorf("generate request id: %w", err)
	}
	req.Header.Set(RequestIDHeader, requestID)

	if c.beforeRequest != nil {
		if err := c.beforeRequest(req); err != nil {
			return fmt.Errorf("%s authenticate request: %w", c.serviceName, err)
		}
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.DebugContext(ctx, "request failed",
			"service", c.serviceName,
			"method", method,
			"path", path,
			"request_id", requestID,
			"error", err,
		)
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s response: %w", c.serviceName, err)
	}

	c.logger.DebugContext(ctx, "request completed",
		"service", c.serviceName,
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration", time.Since(start),
		"request_id", requestID,
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.parseError(resp, respBody, path)
	}

	if result == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}

	if err := json.Unmarshal(respBody, result); err != nil {
		return newDecodeError(c.serviceName, path, respBody, err)
	}

	return nil
}

// Get performs a GET request and decodes the response into result.
func (c *Client) Get(ctx context.Context, path string, query url.Values, result any) error {
	return c.Do(ctx, http.MethodGet, path, query, nil, result)
}

// Post performs a POST request and decodes the response into result.
func (c *Client) Post(ctx context.Context, path string, body, result any) error {
	return c.Do(ctx, http.MethodPost, path, nil, body, result)
}

// Put performs a PUT request and decodes the response into result.
func (c *Client) Put(ctx context.Context, path string, body, result any) error {
	return c.Do(ctx, http.MethodPut, path, nil, body, result)
}
