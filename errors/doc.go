// Package errors turns client errors into messages for the people running
// a program built on the jira package.
//
// Core types:
//   - CLIError: wraps an error with a message, suggestion and details
//   - ErrorMessenger: customizes the wording
//
// Wrap classifies an error by its chain, not by its text:
//
//	issues, err := client.SearchIssues(ctx, jql, nil)
//	if err != nil {
//	    return errors.Wrap(err, client.BaseURL())
//	}
//
// The result still matches the original error and one of the sentinels:
//
//	if errors.IsAuthError(err) {
//	    // prompt for a new API token
//	}
package errors
