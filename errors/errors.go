package errors

import "errors"

// Categories attached to wrapped errors.
var (
	// ErrNotAuthenticated indicates missing or rejected credentials.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrPermissionDenied indicates insufficient permissions.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrNotFound indicates the issue, project or user is not visible.
	ErrNotFound = errors.New("not found")

	// ErrRateLimited indicates Jira is throttling the caller.
	ErrRateLimited = errors.New("rate limited")

	// ErrNotConfigured indicates the client settings are incomplete.
	ErrNotConfigured = errors.New("not configured")

	// ErrConnectionFailed indicates the site is unreachable.
	ErrConnectionFailed = errors.New("connection failed")
)
