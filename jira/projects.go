package jira

import (
	"context"
	"net/url"
	"strconv"

	devhttp "github.com/randalmurphal/jiracloud/http"
)

// ProjectIterator returns an iterator over all projects visible to the
// caller, walking /project/search by startAt.
func (c *Client) ProjectIterator() *devhttp.PageIterator[Object] {
	return devhttp.NewPageIterator(func(ctx context.Context, cursor string) ([]Object, string, error) {
		var query url.Values
		if cursor != "" {
			query = url.Values{"startAt": {cursor}}
		}

		var page projectPage
		if err := c.api.Get(ctx, c.apiPath("/project/search"), query, &page); err != nil {
			return nil, "", err
		}
		if page.IsLast || len(page.Values) == 0 {
			return page.Values, "", nil
		}
		return page.Values, strconv.Itoa(page.StartAt + len(page.Values)), nil
	})
}

// Projects returns every project, following pages until Jira reports the
// last one.
func (c *Client) Projects(ctx context.Context) ([]Object, error) {
	return c.ProjectIterator().All(ctx)
}
