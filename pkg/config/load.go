package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ajxudir/pinlock/pkg/verbose"
	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from the specified path or defaults.
//
// If configPath is provided, that file must exist. Otherwise .pinlock.yml in
// workDir is used when present, and the built-in defaults when it is not.
// The result is validated before it is returned.
//
// Parameters:
//   - configPath: path to the config file, or empty to search workDir
//   - workDir: directory holding the manifest
//
// Returns:
//   - *Config: the loaded configuration
//   - error: read, decode or validation failure
func LoadConfig(configPath, workDir string) (*Config, error) {
	cfg := loadDefaultConfig()

	path := configPath
	if path == "" {
		local := filepath.Join(workDir, ConfigFileName)
		if _, err := os.Stat(local); err == nil {
			verbose.Infof("Found local config: %s", local)
			path = local
		}
	}

	if path == "" {
		verbose.Info("Using built-in default configuration")
	} else {
		if err := overlayFile(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load config %s: %w", path, err)
		}
		cfg.Source = path
		verbose.ConfigLoaded(path)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// overlayFile decodes the YAML file at path on top of cfg.
//
// The file size is checked before reading, and unknown keys are rejected so a
// misspelt key does not silently fall back to its default.
func overlayFile(cfg *Config, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.Size() > DefaultMaxConfigFileSize {
		return fmt.Errorf("config file too large: %d bytes (max %d bytes)", info.Size(), DefaultMaxConfigFileSize)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	return decodeInto(cfg, data)
}

func decodeInto(cfg *Config, data []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		if errors.Is(err, io.EOF) {
			// Empty file keeps every default.
			return nil
		}
		return fmt.Errorf("invalid YAML: %w", err)
	}
	return nil
}
