package errors

import "errors"

// IsAuthError reports whether err was classified as an authentication failure.
func IsAuthError(err error) bool {
	return errors.Is(err, ErrNotAuthenticated)
}

// IsPermissionError reports whether err was classified as a permission failure.
func IsPermissionError(err error) bool {
	return errors.Is(err, ErrPermissionDenied)
}

// IsConnectionError reports whether err was classified as a connection failure.
func IsConnectionError(err error) bool {
	return errors.Is(err, ErrConnectionFailed)
}

// IsConfigError reports whether err was classified as a configuration problem.
func IsConfigError(err error) bool {
	return errors.Is(err, ErrNotConfigured)
}
