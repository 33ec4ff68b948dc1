package jiracloud

import (
	"github.com/randalmurphal/jiracloud/config"
	"github.com/randalmurphal/jiracloud/jira"
)

// EnvPrefix is prepended to setting names for environment lookup, so
// api_token is read from JIRA_API_TOKEN.
const EnvPrefix = "JIRA_"

// Resolver returns the settings resolver NewClient uses for app: defaults,
// then ~/.config/<app>/config.yaml, then JIRA_* variables, with the API
// token falling back to the keyring entry for the resolved domain and user.
func Resolver(app string) *config.Resolver {
	return config.NewResolver(config.ResolverConfig{
		EnvPrefix: EnvPrefix,
		FilePath:  config.DefaultFilePath(app),
		Defaults:  config.ClientDefaults(),
		ValidKeys: config.ClientKeys,
		Tokens:    config.NewTokenStore(app),
	})
}

// NewClient resolves settings for app and creates a client from them.
func NewClient(app string, opts ...jira.ClientOption) (*jira.Client, error) {
	cfg, err := jira.ConfigFromResolved(Resolver(app).Resolve())
	if err != nil {
		return nil, err
	}
	return jira.NewClient(cfg, opts...)
}
