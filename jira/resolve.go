package jira

import (
	"fmt"
	"strconv"
	"time"

	"github.com/randalmurphal/jiracloud/config"
)

// ConfigFromResolved builds a Config from layered settings. Empty values
// fall back to the defaults; the result is validated.
func ConfigFromResolved(r *config.Resolved) (*Config, error) {
	cfg := DefaultConfig()
	cfg.CloudDomain = r.Get(config.KeyCloudDomain)
	cfg.Username = r.Get(config.KeyUsername)
	cfg.APIToken = r.Get(config.KeyAPIToken)

	if v, src := r.GetWithSource(config.KeyAPIVersion); v != "" {
		version, err := strconv.Atoi(v)
		if err != nil || version <= 0 {
			return nil, fmt.Errorf("%w: %q from %s", ErrConfigAPIVersionInvalid, v, src)
		}
		cfg.APIVersion = version
	}

	if v, src := r.GetWithSource(config.KeyTimeout); v != "" {
		timeout, err := time.ParseDuration(v)
		if err != nil || timeout < 0 {
			return nil, fmt.Errorf("%w: %q from %s", ErrConfigTimeoutInvalid, v, src)
		}
		cfg.Timeout = timeout
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
