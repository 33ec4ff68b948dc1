package config

// Source indicates where a configuration value came from.
type Source string

// Configuration source constants.
const (
	// SourceDefault indicates the value is a built-in default.
	SourceDefault Source = "default"

	// SourceKeyring indicates the API token was read from the OS keyring.
	SourceKeyring Source = "keyring"

	// SourceFile indicates the value came from the YAML config file.
	SourceFile Source = "file"

	// SourceEnv indicates the value came from an environment variable.
	SourceEnv Source = "env"

	// SourceOverride indicates the value was passed explicitly by the caller.
	SourceOverride Source = "override"
)
