// Package http provides the request executor and error types shared by the
// Jira client packages.
package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Standard sentinel errors, matched by status code through APIError.Unwrap.
var (
	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrUnauthorized indicates invalid or missing authentication.
	ErrUnauthorized = errors.New("authentication failed")

	// ErrForbidden indicates the user lacks permission for the operation.
	ErrForbidden = errors.New("permission denied")

	// ErrRateLimited indicates the API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrBadRequest indicates the request was malformed.
	ErrBadRequest = errors.New("bad request")

	// ErrServerError indicates a server-side error occurred.
	ErrServerError = errors.New("server error")
)

// APIError describes a non-2xx response. Service packages embed it to add
// their own error envelope.
type APIError struct {
	// Service is the name of the integration (e.g., "jira").
	Service string

	// StatusCode is the HTTP status code returned.
	StatusCode int

	// Message is the "message" or "error" field of the body, if any.
	Message string

	// Endpoint is the API endpoint that was called.
	Endpoint string

	// RequestID is the correlation ID sent with the request.
	RequestID string
}

// NewAPIError builds an APIError from a response whose body has been read.
// Bodies shaped like {"message": ...} or {"error": ...}, as returned by the
// Atlassian API gateway, fill Message.
func NewAPIError(service string, resp *http.Response, body []byte, endpoint string) *APIError {
	apiErr := &APIError{
		Service:    service,
		StatusCode: resp.StatusCode,
		Endpoint:   endpoint,
	}
	if resp.Request != nil {
		apiErr.RequestID = resp.Request.Header.Get(RequestIDHeader)
	}

	var errResp struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(body, &errResp) == nil {
		apiErr.Message = errResp.Message
		if apiErr.Message == "" {
			apiErr.Message = errResp.Error
		}
	}

	return apiErr
}

// Error implements the error interface.
func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	if e.RequestID != "" {
		return fmt.Sprintf("%s API error (%d) at %s [%s]: %s",
			e.Service, e.StatusCode, e.Endpoint, e.RequestID, msg)
	}
	return fmt.Sprintf("%s API error (%d) at %s: %s",
		e.Service, e.StatusCode, e.Endpoint, msg)
}

// Unwrap returns the sentinel error for the status code.
func (e *APIError) Unwrap() error {
	return StatusSentinel(e.StatusCode)
}

// AsAPIError returns the *APIError in err's chain, if any.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// StatusSentinel maps an HTTP status code to one of the sentinel errors.
// It returns nil for codes without a sentinel.
func StatusSentinel(code int) error {
	switch code {
	case 400:
		return ErrBadRequest
	case 401:
		return ErrUnauthorized
	case 403:
		return ErrForbidden
	case 404:
		return ErrNotFound
	case 429:
		return ErrRateLimited
	default:
		if code >= 500 {
			return ErrServerError
		}
		return nil
	}
}

// DecodeError reports a 2xx response whose body was not the JSON the caller
// expected.
type DecodeError struct {
	Service  string
	Endpoint string

	// Body holds the raw response, truncated to maxDecodeBody bytes.
	Body []byte

	Err error
}

const maxDecodeBody = 512

// Error implements the error interface.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s response from %s: %v", e.Service, e.Endpoint, e.Err)
}

// Unwrap returns the underlying JSON error.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

func newDecodeError(service, endpoint string, body []byte, err error) *DecodeError {
	if len(body) > maxDecodeBody {
		body = body[:maxDecodeBody]
	}
	return &DecodeError{
		Service:  service,
		Endpoint: endpoint,
		Body:     append([]byte(nil), body...),
		Err:      err,
	}
}

// IsNotFound reports whether the error indicates a resource was not found.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsUnauthorized reports whether the error indicates authentication failed.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// IsForbidden reports whether the error indicates permission was denied.
func IsForbidden(err error) bool {
	return errors.Is(err, ErrForbidden)
}

// IsRateLimited reports whether the error indicates rate limiting.
func IsRateLimited(err error) bool {
	return errors.Is(err, ErrRateLimited)
}

// IsDecodeError reports whether the error is a response parsing failure.
func IsDecodeError(err error) bool {
	var decodeErr *DecodeError
	return errors.As(err, &decodeErr)
}
