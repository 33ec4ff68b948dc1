package jira

import (
	"fmt"
	"strings"
	"time"
)

// Defaults applied by NewClient when the corresponding field is zero.
const (
	DefaultAPIVersion = 3
	DefaultTimeout    = 10 * time.Second
)

// Config holds the connection settings for one Jira Cloud site.
type Config struct {
	// CloudDomain is the site's subdomain: "acme" for
	// https://acme.atlassian.net.
	CloudDomain string `yaml:"cloud_domain"`

	// Username is the account email the API token belongs to.
	Username string `yaml:"username"`

	// APIToken is created at id.atlassian.com. It is never logged.
	APIToken string `yaml:"-"`

	// APIVersion selects the REST API root. Defaults to 3.
	APIVersion int `yaml:"api_version"`

	// Timeout bounds each request, including reading the body.
	// Defaults to 10s.
	Timeout time.Duration `yaml:"timeout"`
}

// DefaultConfig returns a Config with defaults filled in and no credentials.
func DefaultConfig() *Config {
	return &Config{
		APIVersion: DefaultAPIVersion,
		Timeout:    DefaultTimeout,
	}
}

// Validate validates the configuration, including the credentials used for
// Basic authentication.
func (c *Config) Validate() error {
	if err := c.validateSite(); err != nil {
		return err
	}
	if c.Username == "" {
		return ErrConfigUsernameRequired
	}
	if c.APIToken == "" {
		return ErrConfigAPITokenRequired
	}
	return nil
}

// validateSite checks everything except Username and APIToken, which only
// Basic authentication needs.
func (c *Config) validateSite() error {
	if c.CloudDomain == "" {
		return ErrConfigDomainRequired
	}
	if strings.ContainsAny(c.CloudDomain, "/:.") {
		return fmt.Errorf("%w: %q", ErrConfigDomainInvalid, c.CloudDomain)
	}
	if c.APIVersion < 0 {
		return ErrConfigAPIVersionInvalid
	}
	if c.Timeout < 0 {
		return ErrConfigTimeoutInvalid
	}
	return nil
}

// BaseURL returns https://{CloudDomain}.atlassian.net.
func (c *Config) BaseURL() string {
	return "https://" + c.CloudDomain + ".atlassian.net"
}

// Clone returns a copy of the config.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	clone := *c
	return &clone
}

// withDefaults returns a copy with zero fields replaced by defaults.
func (c *Config) withDefaults() *Config {
	clone := c.Clone()
	if clone.APIVersion == 0 {
		clone.APIVersion = DefaultAPIVersion
	}
	if clone.Timeout == 0 {
		clone.Timeout = DefaultTimeout
	}
	return clone
}
