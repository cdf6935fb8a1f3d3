package config

import (
	_ "embed"

	"gopkg.in/yaml.v3"
)

//go:embed default.yml
var defaultConfigYAML string

// loadDefaultConfig loads the embedded default configuration.
//
// If the embedded YAML cannot be decoded, a hard-coded equivalent is returned
// so the tool always has a usable configuration.
//
// Returns:
//   - *Config: the default configuration
func loadDefaultConfig() *Config {
	var cfg Config
	if err := yaml.Unmarshal([]byte(defaultConfigYAML), &cfg); err == nil {
		return &cfg
	}
	return &Config{
		Denylist:       []string{"git", "sassypam"},
		ListCommand:    "npm ls --depth=0 --json",
		TimeoutSeconds: 120,
		Registry:       "https://registry.npmjs.org",
		Concurrency:    8,
	}
}

// GetDefaultConfig returns the embedded default configuration YAML.
func GetDefaultConfig() string {
	return defaultConfigYAML
}
