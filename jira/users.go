package jira

import (
	"context"
	"net/url"

	"golang.org/x/text/cases"
)

// GetUserByEmail searches users by email and returns the first result whose
// emailAddress equals email ignoring case. When no result shows a matching
// address, the first result whose emailAddress is hidden by privacy settings
// is returned instead. It returns nil, nil when neither exists.
func (c *Client) GetUserByEmail(ctx context.Context, email string) (Object, error) {
	if email == "" {
		return nil, ErrEmailRequired
	}

	var users []Object
	if err := c.api.Get(ctx, c.apiPath("/user/search"), url.Values{"query": {email}}, &users); err != nil {
		return nil, err
	}

	// A Caser is stateful; one per call keeps the client safe to share.
	fold := cases.Fold()
	want := fold.String(email)

	var hidden Object
	for _, user := range users {
		address := user.String("emailAddress")
		switch {
		case address == "":
			if hidden == nil {
				hidden = user
			}
		case fold.String(address) == want:
			return user, nil
		}
	}
	return hidden, nil
}
