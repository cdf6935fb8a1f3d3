package config

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// Validate checks the configuration for values no component can work with.
//
// Every problem found is reported, joined into one error.
//
// Returns:
//   - error: nil when the configuration is usable
func (c *Config) Validate() error {
	var errs []error

	for _, pattern := range c.Denylist {
		if strings.TrimSpace(pattern) == "" {
			errs = append(errs, fmt.Errorf("denylist: empty pattern would match every package"))
			continue
		}
		if _, err := regexp.Compile(pattern); err != nil {
			errs = append(errs, fmt.Errorf("denylist: invalid pattern %q: %w", pattern, err))
		}
	}

	if len(c.ListArgs()) == 0 {
		errs = append(errs, fmt.Errorf("list_command: must not be empty"))
	}

	if c.TimeoutSeconds < 0 {
		errs = append(errs, fmt.Errorf("timeout_seconds: must be >= 0, got %d", c.TimeoutSeconds))
	}

	if c.Concurrency < 1 {
		errs = append(errs, fmt.Errorf("concurrency: must be >= 1, got %d", c.Concurrency))
	}

	if u, err := url.Parse(c.Registry); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, fmt.Errorf("registry: %q is not an http(s) URL", c.Registry))
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
}
