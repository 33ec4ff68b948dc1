package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// Keys understood by jira.ConfigFromResolved.
const (
	KeyCloudDomain = "cloud_domain"
	KeyUsername    = "username"
	KeyAPIToken    = "api_token"
	KeyAPIVersion  = "api_version"
	KeyTimeout     = "timeout"
)

// ClientKeys lists every key a client config is built from.
var ClientKeys = []string{KeyCloudDomain, KeyUsername, KeyAPIToken, KeyAPIVersion, KeyTimeout}

// ClientDefaults returns the default values for client keys.
func ClientDefaults() map[string]string {
	return map[string]string{
		KeyAPIVersion: "3",
		KeyTimeout:    "10s",
	}
}

// DefaultFilePath returns ~/.config/<app>/config.yaml, or "" if the home
// directory is unknown.
func DefaultFilePath(app string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", app, "config.yaml")
}

// TokenLoader looks up a stored API token. TokenStore implements it.
type TokenLoader interface {
	LoadToken(domain, username string) (string, error)
}

// ResolverConfig configures the layered config resolver.
type ResolverConfig struct {
	// EnvPrefix is prepended to key names for environment variable lookup.
	// For example, with EnvPrefix "JIRA_", key "api_token" maps to JIRA_API_TOKEN.
	// Environment lookup is disabled when empty.
	EnvPrefix string

	// FilePath is the YAML config file. A missing file is not an error.
	FilePath string

	// Defaults provides the default values for configuration keys.
	Defaults map[string]string

	// ValidKeys lists keys accepted from the file. If nil, all keys are valid.
	ValidKeys []string

	// Tokens supplies api_token when no other layer set it.
	Tokens TokenLoader

	// ErrWriter is where warnings are written.
	// Defaults to os.Stderr if nil.
	ErrWriter io.Writer

	// Getenv defaults to os.Getenv.
	Getenv func(string) string
}

// Resolver handles layered configuration resolution.
type Resolver struct {
	config ResolverConfig

	// Warnings collects non-fatal issues during resolution.
	Warnings []string
}

// NewResolver creates a new configuration resolver.
func NewResolver(cfg ResolverConfig) *Resolver {
	if cfg.ErrWriter == nil {
		cfg.ErrWriter = os.Stderr
	}
	if cfg.Getenv == nil {
		cfg.Getenv = os.Getenv
	}
	return &Resolver{config: cfg}
}

// warn adds a warning and prints it.
func (r *Resolver) warn(msg string) {
	r.Warnings = append(r.Warnings, msg)
	fmt.Fprintf(r.config.ErrWriter, "Warning: %s\n", msg)
}

// Resolved holds the final merged configuration.
type Resolved struct {
	values  map[string]string
	sources map[string]Source
}

// Get returns the value for a key, or empty string if not set.
func (c *Resolved) Get(key string) string {
	return c.values[key]
}

// Source returns the source of a key's value.
func (c *Resolved) Source(key string) Source {
	return c.sources[key]
}

// GetWithSource returns both the value and its source.
func (c *Resolved) GetWithSource(key string) (string, Source) {
	return c.values[key], c.sources[key]
}

// All returns a copy of all key-value pairs.
func (c *Resolved) All() map[string]string {
	result := make(map[string]string, len(c.values))
	for k, v := range c.values {
		result[k] = v
	}
	return result
}

// Keys returns all configuration keys, sorted.
func (c *Resolved) Keys() []string {
	keys := make([]string, 0, len(c.values))
	for k := range c.values {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func (c *Resolved) set(key, value string, src Source) {
	c.values[key] = value
	c.sources[key] = src
}

// Resolve builds the final config by merging all sources.
func (r *Resolver) Resolve() *Resolved {
	return r.ResolveWithOverrides(nil)
}

// ResolveWithOverrides resolves config and then applies non-empty overrides.
// The keyring is consulted last, so an overridden username or domain
// selects which stored token is loaded.
func (r *Resolver) ResolveWithOverrides(overrides map[string]string) *Resolved {
	cfg := &Resolved{
		values:  make(map[string]string),
		sources: make(map[string]Source),
	}

	r.applyDefaults(cfg)
	r.applyFile(cfg)
	r.applyEnv(cfg)

	for key, value := range overrides {
		if value != "" {
			cfg.set(key, value, SourceOverride)
		}
	}

	r.applyKeyring(cfg)

	return cfg
}

func (r *Resolver) applyDefaults(cfg *Resolved) {
	for key, value := range r.config.Defaults {
		cfg.set(key, value, SourceDefault)
	}
}

func (r *Resolver) applyFile(cfg *Resolved) {
	if r.config.FilePath == "" {
		return
	}

	parsed, err := readYAML(r.config.FilePath)
	if err != nil {
		r.warn(fmt.Sprintf("could not parse %s: %v", r.config.FilePath, err))
		return
	}

	for key, value := range parsed {
		if len(r.config.ValidKeys) > 0 && !slices.Contains(r.config.ValidKeys, key) {
			r.warn(fmt.Sprintf("ignoring unknown key %q in %s", key, r.config.FilePath))
			continue
		}
		if strVal := toString(value); strVal != "" {
			cfg.set(key, strVal, SourceFile)
		}
	}
}

func (r *Resolver) applyEnv(cfg *Resolved) {
	if r.config.EnvPrefix == "" {
		return
	}

	allKeys := make(map[string]bool)
	for _, k := range ClientKeys {
		allKeys[k] = true
	}
	for k := range r.config.Defaults {
		allKeys[k] = true
	}
	for k := range cfg.values {
		allKeys[k] = true
	}

	for key := range allKeys {
		envKey := r.config.EnvPrefix + strings.ToUpper(strings.ReplaceAll(key, "-", "_"))
		if value := r.config.Getenv(envKey); value != "" {
			cfg.set(key, value, SourceEnv)
		}
	}
}

func (r *Resolver) applyKeyring(cfg *Resolved) {
	if r.config.Tokens == nil || cfg.values[KeyAPIToken] != "" {
		return
	}
	domain, username := cfg.values[KeyCloudDomain], cfg.values[KeyUsername]
	if domain == "" || username == "" {
		return
	}

	token, err := r.config.Tokens.LoadToken(domain, username)
	if errors.Is(err, ErrTokenNotFound) {
		return
	}
	if err != nil {
		r.warn(err.Error())
		return
	}
	cfg.set(KeyAPIToken, token, SourceKeyring)
}

var errMalformedYAML = errors.New("malformed yaml")

// readYAML returns nil, nil for a missing file.
func readYAML(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var parsed map[string]any
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", errMalformedYAML, err)
	}
	return parsed, nil
}

func toString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case bool:
		if val {
			return "true"
		}
		return "false"
	case int, int64, float64:
		return fmt.Sprintf("%v", val)
	default:
		return ""
	}
}
