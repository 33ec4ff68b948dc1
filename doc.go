// Package jiracloud is a thin client library for the Jira Cloud REST API.
//
// The package is organized into subpackages by concern:
//
//   - jira: the client and its operations (search, create, comment, transition, user lookup)
//   - auth: request authenticators (API token, OAuth 2.0, Connect JWT)
//   - config: layered settings from defaults, a YAML file, the environment and the OS keyring
//   - http: the request executor, error sentinels and page iterator shared by jira
//   - errors: user-facing messages for client errors
//   - testutil: a recording fake Jira server for tests
//
// # Quick Start
//
//	import (
//	    "github.com/randalmurphal/jiracloud"
//	    "github.com/randalmurphal/jiracloud/jira"
//	)
//
//	// Settings from ~/.config/myapp/config.yaml, JIRA_* variables and the keyring
//	client, err := jiracloud.NewClient("myapp")
//	if err != nil {
//	    return err
//	}
//
//	issues, err := client.SearchIssues(ctx, "project = DEMO", nil)
//
// Programs that manage settings themselves build a jira.Config directly and
// call jira.NewClient.
package jiracloud
