package jira

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	devhttp "github.com/randalmurphal/jiracloud/http"
)

// Configuration errors.
var (
	ErrConfigDomainRequired    = errors.New("jira cloud domain is required")
	ErrConfigDomainInvalid     = errors.New("jira cloud domain must be the subdomain only")
	ErrConfigUsernameRequired  = errors.New("jira username is required")
	ErrConfigAPITokenRequired  = errors.New("jira api token is required")
	ErrConfigAPIVersionInvalid = errors.New("jira api version must be positive")
	ErrConfigTimeoutInvalid    = errors.New("jira timeout must not be negative")
)

// Argument errors, returned before any request is sent.
var (
	ErrIssueKeyRequired     = errors.New("issue id or key is required")
	ErrTransitionIDRequired = errors.New("transition id is required")
	ErrEmailRequired        = errors.New("email is required")
	ErrJQLRequired          = errors.New("jql is required")
	ErrFieldsRequired       = errors.New("issue fields are required")
)

// ADF errors.
var (
	ErrADFVersionOnly = errors.New("ADF version must be 1")
	ErrADFTypeInvalid = errors.New("ADF root type must be 'doc'")
)

// maxErrorBody bounds the raw body kept on an APIError.
const maxErrorBody = 2048

// APIError represents a non-2xx response from the Jira API. It embeds the
// generic error, whose Message holds gateway errors, and adds Jira's
// errorMessages/errors envelope.
type APIError struct {
	devhttp.APIError

	ErrorMessages []string
	Errors        map[string]string

	// Body is the raw response, trimmed and capped at maxErrorBody bytes.
	Body string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	msg := e.message()
	if e.RequestID != "" {
		return fmt.Sprintf("jira api error (%d) at %s [%s]: %s", e.StatusCode, e.Endpoint, e.RequestID, msg)
	}
	return fmt.Sprintf("jira api error (%d) at %s: %s", e.StatusCode, e.Endpoint, msg)
}

// message prefers errorMessages, then field errors in key order, then the
// gateway message, then the raw body, then the status text.
func (e *APIError) message() string {
	if len(e.ErrorMessages) > 0 {
		return strings.Join(e.ErrorMessages, "; ")
	}
	if len(e.Errors) > 0 {
		fields := make([]string, 0, len(e.Errors))
		for field := range e.Errors {
			fields = append(fields, field)
		}
		sort.Strings(fields)

		parts := make([]string, 0, len(fields))
		for _, field := range fields {
			parts = append(parts, field+": "+e.Errors[field])
		}
		return strings.Join(parts, "; ")
	}
	if e.Message != "" {
		return e.Message
	}
	if e.Body != "" {
		return e.Body
	}
	return http.StatusText(e.StatusCode)
}

// Unwrap returns the embedded generic error, which unwraps to the status
// sentinel.
func (e *APIError) Unwrap() error {
	return &e.APIError
}

// IsNotFound returns true if this is a 404 error.
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsUnauthorized returns true if this is a 401 error.
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized
}

// IsForbidden returns true if this is a 403 error.
func (e *APIError) IsForbidden() bool {
	return e.StatusCode == http.StatusForbidden
}

// IsRateLimited returns true if this is a 429 error.
func (e *APIError) IsRateLimited() bool {
	return e.StatusCode == http.StatusTooManyRequests
}

// parseAPIError builds an APIError from Jira's error envelope. Bodies that
// are not the envelope are kept as text.
func parseAPIError(resp *http.Response, body []byte, endpoint string) error {
	apiErr := &APIError{APIError: *devhttp.NewAPIError("jira", resp, body, endpoint)}

	var envelope struct {
		ErrorMessages []string          `json:"errorMessages"`
		Errors        map[string]string `json:"errors"`
	}
	if json.Unmarshal(body, &envelope) == nil {
		apiErr.ErrorMessages = envelope.ErrorMessages
		apiErr.Errors = envelope.Errors
	}

	if len(body) > maxErrorBody {
		body = body[:maxErrorBody]
	}
	apiErr.Body = strings.TrimSpace(string(body))

	return apiErr
}

// AsAPIError returns the *APIError in err's chain, if any.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsNotFound reports whether the error indicates a resource was not found.
func IsNotFound(err error) bool {
	return devhttp.IsNotFound(err)
}

// IsUnauthorized reports whether the error indicates authentication failed.
func IsUnauthorized(err error) bool {
	return devhttp.IsUnauthorized(err)
}

// IsForbidden reports whether the error indicates permission was denied.
func IsForbidden(err error) bool {
	return devhttp.IsForbidden(err)
}

// IsRateLimited reports whether the error indicates rate limiting.
func IsRateLimited(err error) bool {
	return devhttp.IsRateLimited(err)
}

// IsDecodeError reports whether a 2xx response could not be parsed.
func IsDecodeError(err error) bool {
	return devhttp.IsDecodeError(err)
}
