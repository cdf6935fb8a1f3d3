package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ajxudir/pinlock/pkg/config"
	"github.com/ajxudir/pinlock/pkg/display"
	"github.com/ajxudir/pinlock/pkg/errors"
)

type configOptions struct {
	showDefaults  bool
	showEffective bool
	init          bool
	validate      bool
	path          string
	dir           string
}

var writeFileFunc = os.WriteFile

func newConfigCmd() *cobra.Command {
	opts := &configOptions{}
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show, validate or create configuration",
		Long: `Show, validate or create the .pinlock.yml configuration.

Keys: denylist, list_command, timeout_seconds, registry, concurrency.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfig(cmd, opts)
		},
	}
	cmd.Flags().BoolVar(&opts.showDefaults, "show-defaults", false, "Show the built-in default configuration")
	cmd.Flags().BoolVar(&opts.showEffective, "show-effective", false, "Show the configuration after merging defaults and file")
	cmd.Flags().BoolVar(&opts.init, "init", false, "Create a .pinlock.yml template in the directory")
	cmd.Flags().BoolVar(&opts.validate, "validate", false, "Validate the configuration file")
	cmd.Flags().StringVarP(&opts.path, "config", "c", "", "Config file path")
	cmd.Flags().StringVarP(&opts.dir, "directory", "d", ".", "Directory holding package.json")
	return cmd
}

func runConfig(cmd *cobra.Command, opts *configOptions) error {
	w := cmd.OutOrStdout()

	switch {
	case opts.init:
		path := filepath.Join(opts.dir, config.ConfigFileName)
		if _, err := os.Stat(path); err == nil {
			return errors.NewExitError(errors.ExitConfigError, fmt.Errorf("%s already exists", path))
		}
		if err := writeFileFunc(path, []byte(config.GetDefaultConfig()), 0o644); err != nil {
			return &errors.FileWriteError{Path: path, Err: err}
		}
		display.Successf(w, "Created %s", path)
		return nil

	case opts.showDefaults:
		_, _ = fmt.Fprint(w, config.GetDefaultConfig())
		return nil

	case opts.showEffective, opts.validate:
		cfg, err := loadConfigFunc(opts.path, opts.dir)
		if err != nil {
			return errors.NewExitError(errors.ExitConfigError, err)
		}
		if opts.validate {
			source := cfg.Source
			if source == "" {
				source = "built-in defaults"
			}
			display.Successf(w, "Configuration is valid (%s)", source)
			return nil
		}
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprint(w, string(data))
		return nil

	default:
		return cmd.Help()
	}
}
