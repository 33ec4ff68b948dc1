// Package auth provides request authenticators for the Jira Cloud client.
//
// Every authenticator implements Authenticator and is applied to each
// outgoing request just before it is sent:
//   - Basic: Atlassian account email (or username) plus API token
//   - OAuth2: bearer tokens from any oauth2.TokenSource
//   - ConnectJWT: Atlassian Connect app tokens with a query string hash
//
// # Basic Usage
//
//	a := auth.Basic{Username: "you@example.com", Token: apiToken}
//	client, err := jira.NewClient(cfg, jira.WithAuthenticator(a))
//
// # OAuth 2.0
//
// Service accounts can use the client credentials grant. The resulting
// token source caches tokens until they expire:
//
//	src := auth.ClientCredentials(ctx, clientID, clientSecret)
//	client, err := jira.NewClient(cfg,
//	    jira.WithBaseURL("https://api.atlassian.com/ex/jira/"+cloudID),
//	    jira.WithAuthenticator(auth.OAuth2{Source: src}),
//	)
//
// # Connect Apps
//
//	a := &auth.ConnectJWT{Issuer: appKey, Secret: sharedSecret}
//
// A fresh token is signed for every request because the qsh claim binds
// it to the request method, path and query.
package auth
