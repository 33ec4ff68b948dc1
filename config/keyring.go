package config

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

// ErrTokenNotFound indicates no token is stored for the account.
var ErrTokenNotFound = errors.New("api token not found in keyring")

// TokenStore keeps API tokens in the OS keyring, one entry per
// domain/username pair.
type TokenStore struct {
	service string
}

// NewTokenStore returns a store whose keyring entries use service as the
// service name.
func NewTokenStore(service string) *TokenStore {
	return &TokenStore{service: service}
}

func account(domain, username string) string {
	return domain + "/" + username
}

// SaveToken stores the token for the account, replacing any existing one.
func (s *TokenStore) SaveToken(domain, username, token string) error {
	if err := keyring.Set(s.service, account(domain, username), token); err != nil {
		return fmt.Errorf("save token to keyring: %w", err)
	}
	return nil
}

// LoadToken implements TokenLoader.
func (s *TokenStore) LoadToken(domain, username string) (string, error) {
	token, err := keyring.Get(s.service, account(domain, username))
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", fmt.Errorf("%w for %s", ErrTokenNotFound, account(domain, username))
		}
		return "", fmt.Errorf("load token from keyring: %w", err)
	}
	return token, nil
}

// DeleteToken removes the stored token. Deleting a missing token is not an
// error.
func (s *TokenStore) DeleteToken(domain, username string) error {
	err := keyring.Delete(s.service, account(domain, username))
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("delete token from keyring: %w", err)
	}
	return nil
}
