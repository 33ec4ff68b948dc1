package jira

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	devhttp "github.com/randalmurphal/jiracloud/http"
)

// SearchIssues runs a JQL search and returns the issues of a single page in
// the order Jira returned them. It never follows nextPageToken; use
// SearchIssuesPage or Issues to read further pages. The result is empty,
// not nil, when nothing matches.
func (c *Client) SearchIssues(ctx context.Context, jql string, opts *SearchOptions) ([]Object, error) {
	page, err := c.SearchIssuesPage(ctx, jql, opts)
	if err != nil {
		return nil, err
	}
	return page.Issues, nil
}

// SearchIssuesPage runs a JQL search and returns one page together with the
// token for the next one.
func (c *Client) SearchIssuesPage(ctx context.Context, jql string, opts *SearchOptions) (*SearchPage, error) {
	if jql == "" {
		return nil, ErrJQLRequired
	}
	if opts == nil {
		opts = &SearchOptions{}
	}

	query := url.Values{"jql": {jql}}
	if len(opts.Fields) > 0 {
		query.Set("fields", joinFields(opts.Fields))
	}
	if opts.MaxResults > 0 {
		query.Set("maxResults", strconv.Itoa(opts.MaxResults))
	}
	if opts.NextPageToken != "" {
		query.Set("nextPageToken", opts.NextPageToken)
	}

	var page SearchPage
	if err := c.api.Get(ctx, c.apiPath("/search/jql"), query, &page); err != nil {
		return nil, err
	}
	if page.Issues == nil {
		page.Issues = []Object{}
	}
	return &page, nil
}

// Issues returns an iterator over every issue matching jql. Pages are
// requested only as the caller advances past the ones already fetched.
// opts.NextPageToken, if set, is where iteration starts.
func (c *Client) Issues(jql string, opts *SearchOptions) *devhttp.PageIterator[Object] {
	base := SearchOptions{}
	if opts != nil {
		base = *opts
	}
	start := base.NextPageToken

	return devhttp.NewPageIterator(func(ctx context.Context, cursor string) ([]Object, string, error) {
		pageOpts := base
		pageOpts.NextPageToken = cursor
		if cursor == "" {
			pageOpts.NextPageToken = start
		}

		page, err := c.SearchIssuesPage(ctx, jql, &pageOpts)
		if err != nil {
			return nil, "", err
		}
		if !page.HasMore() {
			return page.Issues, "", nil
		}
		return page.Issues, page.NextPageToken, nil
	})
}

// CreateIssue creates an issue from fields, sent as {"fields": fields}, and
// returns Jira's response, typically id, key and self.
func (c *Client) CreateIssue(ctx context.Context, fields Fields) (Object, error) {
	if fields == nil {
		return nil, ErrFieldsRequired
	}

	var created Object
	if err := c.api.Post(ctx, c.apiPath("/issue"), map[string]any{"fields": fields}, &created); err != nil {
		return nil, err
	}
	return created, nil
}

// GetIssue fetches an issue. When fields is non-empty only those fields
// are returned.
func (c *Client) GetIssue(ctx context.Context, issueIDOrKey string, fields []string) (Object, error) {
	if issueIDOrKey == "" {
		return nil, ErrIssueKeyRequired
	}

	var query url.Values
	if len(fields) > 0 {
		query = url.Values{"fields": {joinFields(fields)}}
	}

	var issue Object
	if err := c.api.Get(ctx, c.issuePath(issueIDOrKey, ""), query, &issue); err != nil {
		return nil, err
	}
	return issue, nil
}

// UpdateIssue sends body verbatim, for example
// Fields{"fields": map[string]any{"summary": "New summary"}}.
func (c *Client) UpdateIssue(ctx context.Context, issueIDOrKey string, body Fields) error {
	if issueIDOrKey == "" {
		return ErrIssueKeyRequired
	}
	if body == nil {
		return ErrFieldsRequired
	}
	return c.api.Put(ctx, c.issuePath(issueIDOrKey, ""), body, nil)
}

// GetTransitions lists the transitions available from the issue's current
// status.
func (c *Client) GetTransitions(ctx context.Context, issueIDOrKey string) ([]Object, error) {
	if issueIDOrKey == "" {
		return nil, ErrIssueKeyRequired
	}

	var result transitionsResponse
	if err := c.api.Get(ctx, c.issuePath(issueIDOrKey, "/transitions"), nil, &result); err != nil {
		return nil, err
	}
	if result.Transitions == nil {
		result.Transitions = []Object{}
	}
	return result.Transitions, nil
}

// TransitionIssue performs a workflow transition. Any 2xx response is
// success; the body, if any, is ignored.
func (c *Client) TransitionIssue(ctx context.Context, issueIDOrKey, transitionID string) error {
	if issueIDOrKey == "" {
		return ErrIssueKeyRequired
	}
	if transitionID == "" {
		return ErrTransitionIDRequired
	}

	body := transitionRequest{Transition: transitionRef{ID: transitionID}}
	return c.api.Do(ctx, http.MethodPost, c.issuePath(issueIDOrKey, "/transitions"), nil, body, nil)
}

// AddTextComment adds a plain-text comment. On Jira Service Management
// projects, internal hides the comment from customers; elsewhere the
// property is stored and has no effect.
func (c *Client) AddTextComment(ctx context.Context, issueIDOrKey, comment string, internal bool) (Object, error) {
	if issueIDOrKey == "" {
		return nil, ErrIssueKeyRequired
	}

	body := commentRequest{
		Body: TextDocument(comment),
		Properties: []entityProperty{{
			Key:   PublicCommentProperty,
			Value: map[string]bool{"internal": internal},
		}},
	}

	var created Object
	if err := c.api.Post(ctx, c.issuePath(issueIDOrKey, "/comment"), body, &created); err != nil {
		return nil, err
	}
	return created, nil
}
