// Package config loads Jira client settings from layered sources.
//
// Values are resolved with clear precedence:
//  1. Overrides passed to ResolveWithOverrides (highest priority)
//  2. Environment variables
//  3. The YAML config file
//  4. The OS keyring (api_token only, when no other layer set it)
//  5. Built-in defaults (lowest priority)
//
// Nothing in the jira package reads configuration implicitly; applications
// opt in by resolving a config and converting it with jira.ConfigFromResolved.
//
// # Basic Usage
//
//	resolver := config.NewResolver(config.ResolverConfig{
//	    EnvPrefix: "JIRA_",
//	    FilePath:  config.DefaultFilePath("jiracloud"),
//	    Defaults:  config.ClientDefaults(),
//	    Tokens:    config.NewTokenStore("jiracloud"),
//	})
//
//	resolved := resolver.Resolve()
//	fmt.Println(resolved.Get(config.KeyCloudDomain))
//	fmt.Println(resolved.Source(config.KeyAPIToken)) // "keyring"
//
// # Environment Variables
//
// With EnvPrefix "JIRA_", key "cloud_domain" maps to JIRA_CLOUD_DOMAIN and
// "api_token" to JIRA_API_TOKEN.
package config
