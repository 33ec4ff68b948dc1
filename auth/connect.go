package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	nanoid "github.com/matoous/go-nanoid/v2"
)

// DefaultConnectTTL is the lifetime of a Connect request token.
const DefaultConnectTTL = 3 * time.Minute

// ConnectClaims are the claims of an Atlassian Connect request token.
type ConnectClaims struct {
	jwt.RegisteredClaims

	// QSH is the query string hash binding the token to one request.
	QSH string `json:"qsh"`
}

// ConnectJWT authenticates as an Atlassian Connect app. Each request gets a
// freshly signed HS256 token carrying its query string hash.
type ConnectJWT struct {
	// Issuer is the app key from the Connect descriptor.
	Issuer string

	// Secret is the shared secret received during installation.
	Secret []byte

	// BasePath is stripped from request paths before hashing when the
	// client talks to Jira through a context path.
	BasePath string

	// TTL defaults to DefaultConnectTTL if zero.
	TTL time.Duration

	// now is replaced in tests.
	now func() time.Time
}

func (c *ConnectJWT) ttl() time.Duration {
	if c.TTL == 0 {
		return DefaultConnectTTL
	}
	return c.TTL
}

func (c *ConnectJWT) clock() time.Time {
	if c.now != nil {
		return c.now()
	}
	return time.Now()
}

// Authenticate implements Authenticator.
func (c *ConnectJWT) Authenticate(req *http.Request) error {
	token, err := c.Sign(req.Method, req.URL)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "JWT "+token)
	return nil
}

// Sign issues a token for one request.
func (c *ConnectJWT) Sign(method string, u *url.URL) (string, error) {
	if c.Issuer == "" || len(c.Secret) == 0 {
		return "", fmt.Errorf("connect jwt: %w", ErrMissingCredentials)
	}

	tokenID, err := nanoid.New()
	if err != nil {
		return "", fmt.Errorf("generate token ID: %w", err)
	}

	now := c.clock()
	claims := ConnectClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    c.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl())),
			ID:        tokenID,
		},
		QSH: QueryStringHash(method, c.relativePath(u.Path), u.Query()),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.Secret)
}

// Verify parses a token and checks its signature, issuer, expiry and that
// its qsh matches the given request.
func (c *ConnectJWT) Verify(tokenString, method string, u *url.URL) (*ConnectClaims, error) {
	claims := &ConnectClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return c.Secret, nil
	}, jwt.WithTimeFunc(c.clock))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}
	if !token.Valid || claims.Issuer != c.Issuer {
		return nil, ErrInvalidToken
	}

	if claims.QSH != QueryStringHash(method, c.relativePath(u.Path), u.Query()) {
		return nil, ErrQSHMismatch
	}

	return claims, nil
}

func (c *ConnectJWT) relativePath(p string) string {
	base := strings.TrimRight(c.BasePath, "/")
	if base != "" && strings.HasPrefix(p, base) {
		p = strings.TrimPrefix(p, base)
	}
	return p
}

// QueryStringHash computes the Connect qsh claim: the hex SHA-256 of
// "METHOD&path&query", with the query sorted and percent-encoded and the
// jwt parameter removed.
func QueryStringHash(method, path string, query url.Values) string {
	canonical := strings.ToUpper(method) + "&" + canonicalPath(path) + "&" + canonicalQuery(query)
	sum := sha256.Sum256([]byte(canonical))
	return hex.EncodeToString(sum[:])
}

func canonicalPath(p string) string {
	if p == "" {
		return "/"
	}
	if len(p) > 1 {
		p = strings.TrimRight(p, "/")
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return strings.ReplaceAll(p, "&", "%26")
}

func canonicalQuery(query url.Values) string {
	keys := make([]string, 0, len(query))
	for k := range query {
		if k == "jwt" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		values := make([]string, len(query[k]))
		for i, v := range query[k] {
			values[i] = percentEncode(v)
		}
		sort.Strings(values)
		parts = append(parts, percentEncode(k)+"="+strings.Join(values, ","))
	}
	return strings.Join(parts, "&")
}

// percentEncode applies RFC 3986 encoding: spaces become %20, not '+'.
func percentEncode(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
