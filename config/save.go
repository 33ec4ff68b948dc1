package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// File writes keys back to a YAML config file.
type File struct {
	// Path is the YAML file to update.
	Path string

	// ValidKeys lists keys that can be written. If nil, all keys are valid.
	ValidKeys []string
}

// Set saves a key-value pair, keeping other keys in the file.
// API tokens belong in the keyring and are rejected.
func (f File) Set(key, value string) error {
	if f.Path == "" {
		return fmt.Errorf("config file path not configured")
	}
	if key == KeyAPIToken {
		return fmt.Errorf("%s is not stored in the config file; use TokenStore", KeyAPIToken)
	}
	if len(f.ValidKeys) > 0 && !slices.Contains(f.ValidKeys, key) {
		return fmt.Errorf("unknown config key: %s\n\nValid keys: %s",
			key, strings.Join(f.ValidKeys, ", "))
	}

	existing, err := f.load()
	if err != nil {
		return err
	}
	existing[key] = parseValue(value)

	return f.write(existing)
}

// Delete removes a key from the file. A missing file or key is not an error.
func (f File) Delete(key string) error {
	if f.Path == "" {
		return fmt.Errorf("config file path not configured")
	}

	existing, err := f.load()
	if err != nil {
		return err
	}
	if _, ok := existing[key]; !ok {
		return nil
	}
	delete(existing, key)

	return f.write(existing)
}

// load returns the current contents; a malformed file is treated as empty
// so that Set can repair it.
func (f File) load() (map[string]any, error) {
	existing, err := readYAML(f.Path)
	if err != nil && !errors.Is(err, errMalformedYAML) {
		return nil, err
	}
	if existing == nil {
		existing = make(map[string]any)
	}
	return existing, nil
}

func (f File) write(values map[string]any) error {
	if err := os.MkdirAll(filepath.Dir(f.Path), 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(values)
	if err != nil {
		return err
	}

	return os.WriteFile(f.Path, data, 0o600)
}

// parseValue converts string values to appropriate types for YAML.
func parseValue(value string) any {
	lower := strings.ToLower(value)
	if lower == "true" {
		return true
	}
	if lower == "false" {
		return false
	}
	return value
}
