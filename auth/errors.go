package auth

import "errors"

// Authentication errors.
var (
	// ErrMissingCredentials indicates an authenticator was used without
	// the values it needs.
	ErrMissingCredentials = errors.New("missing credentials")

	// ErrInvalidToken indicates the token is malformed or has an invalid signature.
	ErrInvalidToken = errors.New("invalid token")

	// ErrTokenExpired indicates the token has expired.
	ErrTokenExpired = errors.New("token expired")

	// ErrQSHMismatch indicates a Connect token was issued for a different request.
	ErrQSHMismatch = errors.New("query string hash does not match request")
)
