package errors

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/randalmurphal/jiracloud/auth"
	devhttp "github.com/randalmurphal/jiracloud/http"
	"github.com/randalmurphal/jiracloud/jira"
)

// CLIError wraps an error with user-friendly context and suggestions.
type CLIError struct {
	// Err is the category sentinel, such as ErrNotAuthenticated.
	Err error

	// Cause is the error that was classified.
	Cause error

	// Message is a user-friendly description of what went wrong
	Message string

	// Suggestion is an actionable hint for the user
	Suggestion string

	// Details provides additional context (optional)
	Details string
}

func (e *CLIError) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Message)

	if e.Details != "" {
		sb.WriteString("\n")
		sb.WriteString(e.Details)
	}

	if e.Suggestion != "" {
		sb.WriteString("\n\n")
		sb.WriteString(e.Suggestion)
	}

	return sb.String()
}

// Unwrap exposes both the category and the original error.
func (e *CLIError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Err}
	}
	return []error{e.Err, e.Cause}
}

// ErrorMessenger provides customizable error messages.
type ErrorMessenger interface {
	AuthErrorMessage() (message, suggestion string)
	PermissionDeniedMessage() (message, suggestion string)
	NotFoundMessage() (message, suggestion string)
	RateLimitedMessage() (message, suggestion string)
	NotConfiguredMessage() (message, suggestion string)

	// The site parameter is the base URL that was contacted.
	ConnectionErrorMessage(site string) (message, suggestion string)
	TimeoutErrorMessage(site string) (message, suggestion string)
}

// DefaultMessenger provides default error messages.
type DefaultMessenger struct{}

// AuthErrorMessage covers rejected or missing credentials.
func (m DefaultMessenger) AuthErrorMessage() (string, string) {
	return "Jira did not accept the credentials.",
		"Check the username and API token. Tokens are managed at https://id.atlassian.com/manage-profile/security/api-tokens."
}

// PermissionDeniedMessage covers 403 responses.
func (m DefaultMessenger) PermissionDeniedMessage() (string, string) {
	return "The account does not have permission for this action.",
		"Ask a Jira administrator for the project permission."
}

// NotFoundMessage covers 404 responses.
func (m DefaultMessenger) NotFoundMessage() (string, string) {
	return "Jira could not find the requested item.",
		"Check the key and that the account can browse the project."
}

// RateLimitedMessage covers 429 responses.
func (m DefaultMessenger) RateLimitedMessage() (string, string) {
	return "Jira is rate limiting requests.", "Wait a moment before trying again."
}

// NotConfiguredMessage covers missing or invalid client settings.
func (m DefaultMessenger) NotConfiguredMessage() (string, string) {
	return "The Jira connection is not configured.",
		"Set JIRA_CLOUD_DOMAIN, JIRA_USERNAME and JIRA_API_TOKEN, or add them to the config file."
}

// ConnectionErrorMessage covers requests that never reached site.
func (m DefaultMessenger) ConnectionErrorMessage(site string) (string, string) {
	return fmt.Sprintf("Cannot connect to %s", site),
		"Check the cloud domain and your network connection."
}

// TimeoutErrorMessage covers requests to site that timed out.
func (m DefaultMessenger) TimeoutErrorMessage(site string) (string, string) {
	return fmt.Sprintf("Request to %s timed out", site),
		"Jira may be slow or unreachable. Try again, or raise the timeout."
}

// WrapConfig configures error wrapping behavior.
type WrapConfig struct {
	Messenger ErrorMessenger
}

// Option configures WrapConfig.
type Option func(*WrapConfig)

// WithMessenger sets a custom error messenger.
func WithMessenger(m ErrorMessenger) Option {
	return func(c *WrapConfig) {
		c.Messenger = m
	}
}

func getMessenger(opts []Option) ErrorMessenger {
	cfg := &WrapConfig{
		Messenger: DefaultMessenger{},
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg.Messenger
}

var configErrors = []error{
	jira.ErrConfigDomainRequired,
	jira.ErrConfigDomainInvalid,
	jira.ErrConfigUsernameRequired,
	jira.ErrConfigAPITokenRequired,
	jira.ErrConfigAPIVersionInvalid,
	jira.ErrConfigTimeoutInvalid,
}

// Wrap classifies err and returns a *CLIError describing it. Errors it
// does not recognize, context cancellation and nil are returned unchanged.
func Wrap(err error, site string, opts ...Option) error {
	if err == nil || errors.Is(err, context.Canceled) {
		return err
	}
	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		return err
	}

	messenger := getMessenger(opts)
	wrap := func(kind error, msg, suggestion, details string) error {
		return &CLIError{Err: kind, Cause: err, Message: msg, Suggestion: suggestion, Details: details}
	}

	for _, target := range configErrors {
		if errors.Is(err, target) {
			msg, suggestion := messenger.NotConfiguredMessage()
			return wrap(ErrNotConfigured, msg, suggestion, err.Error())
		}
	}

	switch {
	case jira.IsUnauthorized(err),
		errors.Is(err, auth.ErrMissingCredentials),
		errors.Is(err, auth.ErrTokenExpired),
		errors.Is(err, auth.ErrInvalidToken):
		msg, suggestion := messenger.AuthErrorMessage()
		return wrap(ErrNotAuthenticated, msg, suggestion, "")
	case jira.IsForbidden(err):
		msg, suggestion := messenger.PermissionDeniedMessage()
		return wrap(ErrPermissionDenied, msg, suggestion, apiDetails(err))
	case jira.IsNotFound(err):
		msg, suggestion := messenger.NotFoundMessage()
		return wrap(ErrNotFound, msg, suggestion, apiDetails(err))
	case jira.IsRateLimited(err):
		msg, suggestion := messenger.RateLimitedMessage()
		return wrap(ErrRateLimited, msg, suggestion, "")
	}

	var urlErr *url.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &urlErr) && urlErr.Timeout()) {
		msg, suggestion := messenger.TimeoutErrorMessage(site)
		return wrap(ErrConnectionFailed, msg, suggestion, "")
	}
	if urlErr != nil {
		msg, suggestion := messenger.ConnectionErrorMessage(site)
		return wrap(ErrConnectionFailed, msg, suggestion, urlErr.Err.Error())
	}

	return err
}

// apiDetails returns Jira's own explanation, if it gave one.
func apiDetails(err error) string {
	if apiErr, ok := jira.AsAPIError(err); ok && len(apiErr.ErrorMessages) > 0 {
		return strings.Join(apiErr.ErrorMessages, "\n")
	}
	if apiErr, ok := devhttp.AsAPIError(err); ok {
		return apiErr.Message
	}
	return ""
}
