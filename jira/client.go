package jira

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/randalmurphal/jiracloud/auth"
	devhttp "github.com/randalmurphal/jiracloud/http"
)

// Client provides access to the Jira Cloud REST API. It holds no mutable
// state after construction and is safe for concurrent use.
type Client struct {
	cfg     *Config
	api     *devhttp.Client
	baseURL string
}

// ClientOption configures the client.
type ClientOption func(*clientOptions)

type clientOptions struct {
	httpClient    *http.Client
	baseURL       string
	logger        *slog.Logger
	authenticator auth.Authenticator
}

// WithHTTPClient sets a custom HTTP client. Config.Timeout is not applied
// to it.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(o *clientOptions) {
		o.httpClient = httpClient
	}
}

// WithBaseURL replaces https://{domain}.atlassian.net, for example with the
// OAuth gateway https://api.atlassian.com/ex/jira/{cloudId} or a test server.
func WithBaseURL(baseURL string) ClientOption {
	return func(o *clientOptions) {
		o.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// WithLogger sets the logger for request tracing. Requests are logged at
// Debug level. The default logger discards everything.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(o *clientOptions) {
		o.logger = logger
	}
}

// WithAuthenticator replaces the default basic authentication built from
// Config.Username and Config.APIToken.
func WithAuthenticator(a auth.Authenticator) ClientOption {
	return func(o *clientOptions) {
		o.authenticator = a
	}
}

// NewClient creates a new Jira client. It validates cfg and copies it; no
// request is sent. Username and APIToken are only required when no
// authenticator is supplied with WithAuthenticator.
func NewClient(cfg *Config, opts ...ClientOption) (*Client, error) {
	if cfg == nil {
		return nil, ErrConfigDomainRequired
	}

	o := clientOptions{baseURL: cfg.BaseURL()}
	for _, opt := range opts {
		opt(&o)
	}

	validate := cfg.Validate
	if o.authenticator != nil {
		validate = cfg.validateSite
	}
	if err := validate(); err != nil {
		return nil, err
	}

	cfg = cfg.withDefaults()
	if o.authenticator == nil {
		o.authenticator = auth.Basic{Username: cfg.Username, Token: cfg.APIToken}
	}

	c := &Client{
		cfg:     cfg,
		baseURL: o.baseURL,
	}
	c.api = devhttp.NewClient(devhttp.ClientConfig{
		Client:        o.httpClient,
		Timeout:       cfg.Timeout,
		BaseURL:       o.baseURL,
		ServiceName:   "jira",
		Logger:        o.logger,
		BeforeRequest: o.authenticator.Authenticate,
		ErrorParser:   parseAPIError,
	})

	return c, nil
}

// Config returns a copy of the client's configuration.
func (c *Client) Config() *Config {
	return c.cfg.Clone()
}

// BaseURL returns the URL requests are sent to, without the API root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// apiPath returns the full API path for the given endpoint.
func (c *Client) apiPath(endpoint string) string {
	return fmt.Sprintf("/rest/api/%d%s", c.cfg.APIVersion, endpoint)
}

// issuePath returns the API path for an issue sub-resource.
func (c *Client) issuePath(issueIDOrKey, suffix string) string {
	return c.apiPath("/issue/" + url.PathEscape(issueIDOrKey) + suffix)
}

// ServerInfo fetches /serverInfo. It is a cheap way to check the base URL
// and credentials.
func (c *Client) ServerInfo(ctx context.Context) (Object, error) {
	var info Object
	if err := c.api.Get(ctx, c.apiPath("/serverInfo"), nil, &info); err != nil {
		return nil, err
	}
	return info, nil
}
