package jira

import (
	"fmt"
	"strings"
)

// Fields is a caller-supplied JSON object sent to Jira verbatim, such as
// the fields of a new issue or the body of an update.
type Fields map[string]any

// Object is a JSON object returned by Jira, unmodified. Its shape depends
// on the endpoint and on the site's field configuration.
type Object map[string]any

// String returns the string value at key, or "" when the key is missing or
// not a string.
func (o Object) String(key string) string {
	s, _ := o[key].(string)
	return s
}

// ID returns the "id" value. Numeric ids are formatted without a fraction.
func (o Object) ID() string {
	switch v := o["id"].(type) {
	case string:
		return v
	case float64:
		return fmt.Sprintf("%.0f", v)
	default:
		return ""
	}
}

// Key returns the "key" value of an issue or project.
func (o Object) Key() string {
	return o.String("key")
}

// Object returns the nested object at key, or nil.
func (o Object) Object(key string) Object {
	m, _ := o[key].(map[string]any)
	return m
}

// SearchOptions narrows a JQL search. A nil *SearchOptions sends only jql.
type SearchOptions struct {
	// Fields restricts the returned fields. Empty means Jira's default.
	Fields []string

	// MaxResults caps the page size. Zero means Jira's default.
	MaxResults int

	// NextPageToken requests the page after a previous SearchPage.
	NextPageToken string
}

// SearchPage is one page of search results.
type SearchPage struct {
	Issues        []Object `json:"issues"`
	NextPageToken string   `json:"nextPageToken,omitempty"`
	IsLast        bool     `json:"isLast"`
}

// HasMore reports whether a following page can be requested.
func (p *SearchPage) HasMore() bool {
	return !p.IsLast && p.NextPageToken != ""
}

// transitionsResponse is the body of GET /issue/{key}/transitions.
type transitionsResponse struct {
	Transitions []Object `json:"transitions"`
}

// projectPage is the body of GET /project/search.
type projectPage struct {
	StartAt int      `json:"startAt"`
	Values  []Object `json:"values"`
	IsLast  bool     `json:"isLast"`
}

// commentRequest is the body of POST /issue/{key}/comment.
type commentRequest struct {
	Body       *ADFDocument      `json:"body"`
	Properties []entityProperty `json:"properties"`
}

type entityProperty struct {
	Key   string `json:"key"`
	Value any    `json:"value"`
}

// PublicCommentProperty marks a Jira Service Management comment as
// internal or customer-visible.
const PublicCommentProperty = "sd.public.comment"

type transitionRequest struct {
	Transition transitionRef `json:"transition"`
}

type transitionRef struct {
	ID string `json:"id"`
}

func joinFields(fields []string) string {
	return strings.Join(fields, ",")
}
