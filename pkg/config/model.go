// Package config loads the pinlock configuration from YAML.
//
// The built-in defaults (default.yml) are overlaid by a .pinlock.yml found in
// the manifest's directory, or by the file passed with --config. Keys left out
// of the file keep their default values.
package config

import (
	"github.com/ajxudir/pinlock/pkg/cmdexec"
)

// ConfigFileName is the per-project configuration file looked up next to the manifest.
const ConfigFileName = ".pinlock.yml"

// DefaultMaxConfigFileSize is the largest config file that will be read (1MB).
const DefaultMaxConfigFileSize int64 = 1 << 20

// Config is the root configuration structure.
type Config struct {
	// Denylist holds regular expressions; matching package names are never pinned
	// or checked for updates.
	Denylist []string `yaml:"denylist"`

	// ListCommand prints the installed top-level dependencies as JSON.
	ListCommand string `yaml:"list_command"`

	// TimeoutSeconds bounds the listing command. 0 disables the timeout.
	TimeoutSeconds int `yaml:"timeout_seconds"`

	// Registry is the base URL of the npm-compatible registry.
	Registry string `yaml:"registry"`

	// Concurrency is the number of parallel registry lookups.
	Concurrency int `yaml:"concurrency"`

	// Source is the file the configuration was loaded from, empty for defaults.
	Source string `yaml:"-"`
}

// ListArgs returns ListCommand split into an argument vector.
func (c *Config) ListArgs() []string {
	return cmdexec.ParseCommandArgs(c.ListCommand)
}
