package auth

import (
	"context"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// AtlassianTokenURL is Atlassian's OAuth 2.0 token endpoint.
const AtlassianTokenURL = "https://auth.atlassian.com/oauth/token"

// atlassianAudience is the audience Atlassian requires on token requests.
const atlassianAudience = "api.atlassian.com"

// Authenticator adds credentials to an outgoing request.
// Implementations must be safe for concurrent use.
type Authenticator interface {
	Authenticate(req *http.Request) error
}

// Func adapts an ordinary function to the Authenticator interface.
type Func func(req *http.Request) error

// Authenticate calls f(req).
func (f Func) Authenticate(req *http.Request) error {
	return f(req)
}

// Basic authenticates with HTTP Basic auth. For Jira Cloud the username is
// the Atlassian account email and the password is an API token.
type Basic struct {
	Username string
	Token    string
}

// Authenticate implements Authenticator.
func (b Basic) Authenticate(req *http.Request) error {
	if b.Username == "" || b.Token == "" {
		return fmt.Errorf("basic auth: %w", ErrMissingCredentials)
	}
	req.SetBasicAuth(b.Username, b.Token)
	return nil
}

// OAuth2 authenticates with bearer tokens obtained from Source.
type OAuth2 struct {
	Source oauth2.TokenSource
}

// Authenticate implements Authenticator.
func (o OAuth2) Authenticate(req *http.Request) error {
	if o.Source == nil {
		return fmt.Errorf("oauth2: %w", ErrMissingCredentials)
	}
	token, err := o.Source.Token()
	if err != nil {
		return fmt.Errorf("oauth2 token: %w", err)
	}
	if !token.Valid() {
		return fmt.Errorf("oauth2: %w", ErrTokenExpired)
	}
	token.SetAuthHeader(req)
	return nil
}

// StaticToken returns a token source for an already issued access token.
func StaticToken(accessToken string) oauth2.TokenSource {
	return oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: accessToken,
		TokenType:   "Bearer",
	})
}

// ClientCredentials returns a caching token source that uses the OAuth 2.0
// client credentials grant against Atlassian's token endpoint.
func ClientCredentials(ctx context.Context, clientID, clientSecret string, scopes ...string) oauth2.TokenSource {
	cfg := &clientcredentials.Config{
		ClientID:       clientID,
		ClientSecret:   clientSecret,
		TokenURL:       AtlassianTokenURL,
		Scopes:         scopes,
		EndpointParams: map[string][]string{"audience": {atlassianAudience}},
		AuthStyle:      oauth2.AuthStyleInParams,
	}
	return cfg.TokenSource(ctx)
}
