// Package jira provides a thin client for the Jira Cloud REST API.
//
// Each method maps to one endpoint and sends exactly one request per call
// (the iterators send one per page). Request and response bodies are plain
// JSON objects: Fields goes out verbatim and Object comes back unmodified,
// so site-specific custom fields need no code changes. There are no
// retries; a failure surfaces to the caller immediately.
//
// # Usage
//
//	client, err := jira.NewClient(&jira.Config{
//		CloudDomain: "your-domain",
//		Username:    "you@example.com",
//		APIToken:    "your-api-token",
//	})
//	if err != nil {
//		return err
//	}
//
//	issues, err := client.SearchIssues(ctx, "project = DEMO ORDER BY created",
//		&jira.SearchOptions{Fields: []string{"summary", "status"}, MaxResults: 50})
//
//	created, err := client.CreateIssue(ctx, jira.Fields{
//		"project":   map[string]any{"key": "DEMO"},
//		"issuetype": map[string]any{"name": "Task"},
//		"summary":   "Rotate credentials",
//	})
//
//	_, err = client.AddTextComment(ctx, created.Key(), "Started", true)
//	err = client.TransitionIssue(ctx, created.Key(), "31")
//
// # Pagination
//
// SearchIssues returns one page. SearchIssuesPage exposes the next page
// token, and Issues walks every page lazily:
//
//	it := client.Issues("assignee = currentUser()", nil)
//	for issue, err := range it.Items(ctx) {
//		if err != nil {
//			return err
//		}
//		fmt.Println(issue.Key())
//	}
//
// # Authentication
//
// Config.Username and Config.APIToken are sent as basic auth by default.
// WithAuthenticator accepts any auth.Authenticator, such as auth.OAuth2
// together with WithBaseURL pointing at the api.atlassian.com gateway.
//
// # Error Handling
//
// Non-2xx responses are returned as *APIError, which unwraps to the
// jiracloud/http sentinels:
//
//	if errors.Is(err, http.ErrNotFound) {
//		// Issue doesn't exist
//	}
//	var apiErr *jira.APIError
//	if errors.As(err, &apiErr) {
//		log.Println(apiErr.StatusCode, apiErr.ErrorMessages)
//	}
//
// A 2xx body that is not valid JSON yields *http.DecodeError. Network
// failures are returned as reported by net/http.
package jira
