// Package cmd implements the pinlock command-line interface.
//
// A run performs exactly one operation: pin installed versions into the
// manifest (-f) or check the registry for newer versions (-u).
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/ajxudir/pinlock/pkg/cmdexec"
	"github.com/ajxudir/pinlock/pkg/config"
	"github.com/ajxudir/pinlock/pkg/display"
	"github.com/ajxudir/pinlock/pkg/errors"
	"github.com/ajxudir/pinlock/pkg/outdated"
	"github.com/ajxudir/pinlock/pkg/output"
	"github.com/ajxudir/pinlock/pkg/pin"
	"github.com/ajxudir/pinlock/pkg/preflight"
	"github.com/ajxudir/pinlock/pkg/registry"
	"github.com/ajxudir/pinlock/pkg/verbose"
)

var exitFunc = os.Exit

// Seams replaced in tests.
var (
	loadConfigFunc      = config.LoadConfig
	validateCommandFunc = preflight.ValidateCommand
	execFunc            = cmdexec.Execute
	newRegistryFunc     = func(baseURL string) outdated.LatestFetcher { return registry.NewClient(baseURL) }
)

// rootOptions holds the flags of one root command instance.
type rootOptions struct {
	update        bool
	file          bool
	version       bool
	verbose       bool
	configPath    string
	registry      string
	dryRun        bool
	json          bool
	format        string
	skipPreflight bool
}

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "pinlock [path]",
		Short: "Pin installed npm dependency versions into package.json",
		Long: `Pin the versions your package manager actually installed into package.json,
replacing loose ranges such as ^1.0.0 with the exact installed version.

With -u, check the registry for newer versions of declared dependencies instead.
The optional path is a package.json file or the directory containing one.`,
		Example: `  pinlock -f
  pinlock -f ./sub/package.json
  pinlock -u --json`,
		Args:          pathArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.verbose {
				verbose.Enable()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoot(cmd, opts, args)
		},
	}

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})

	cmd.PersistentFlags().BoolVar(&opts.verbose, "verbose", false, "Enable verbose debug output")

	flags := cmd.Flags()
	flags.BoolVarP(&opts.update, "update", "u", false, "Check the registry for newer versions of declared dependencies")
	flags.BoolVarP(&opts.file, "file", "f", false, "Pin installed versions into package.json")
	flags.BoolVarP(&opts.version, "version", "V", false, "Print the version and exit")
	flags.StringVarP(&opts.configPath, "config", "c", "", "Config file path (default: .pinlock.yml next to the manifest)")
	flags.StringVar(&opts.registry, "registry", "", "Registry base URL (overrides config)")
	flags.BoolVar(&opts.dryRun, "dry-run", false, "With -f, print the pinned manifest without writing it")
	flags.BoolVar(&opts.json, "json", false, "Machine-readable output (same as --output json)")
	flags.StringVarP(&opts.format, "output", "o", "", "Output format: table, json, csv (default: table)")
	flags.BoolVar(&opts.skipPreflight, "skip-preflight", false, "Skip checking that the listing command is installed")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newConfigCmd())
	return cmd
}

// pathArgs accepts at most one path argument.
func pathArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.MaximumNArgs(1)(cmd, args); err != nil {
		return usageError(err)
	}
	return nil
}

func usageError(err error) error {
	return errors.NewExitError(errors.ExitConfigError, err)
}

func runRoot(cmd *cobra.Command, opts *rootOptions, args []string) error {
	if opts.version {
		printVersion(cmd.OutOrStdout())
		return nil
	}

	if opts.update && opts.file {
		return usageError(fmt.Errorf("flags -u/--update and -f/--file are mutually exclusive"))
	}
	if !opts.update && !opts.file {
		return cmd.Help()
	}
	if opts.dryRun && opts.update {
		return usageError(fmt.Errorf("--dry-run only applies to -f/--file"))
	}

	format, err := resolveFormat(opts)
	if err != nil {
		return usageError(err)
	}

	var arg string
	if len(args) == 1 {
		arg = args[0]
	}
	target := pin.ResolveTarget(arg)

	cfg, err := loadRunConfig(opts, target.Dir)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if opts.file {
		return runPin(ctx, cmd.OutOrStdout(), cfg, opts, format, arg)
	}
	return runUpdate(ctx, cmd.OutOrStdout(), cfg, format, target.Path)
}

func resolveFormat(opts *rootOptions) (output.Format, error) {
	if opts.json {
		if opts.format != "" && opts.format != string(output.FormatJSON) {
			return "", fmt.Errorf("--json conflicts with --output %s", opts.format)
		}
		return output.FormatJSON, nil
	}
	return output.ParseFormat(opts.format)
}

// loadRunConfig loads configuration for the manifest directory and applies
// flag overrides. Any failure is a configuration error.
func loadRunConfig(opts *rootOptions, dir string) (*config.Config, error) {
	cfg, err := loadConfigFunc(opts.configPath, dir)
	if err != nil {
		return nil, errors.NewExitError(errors.ExitConfigError, err)
	}
	if opts.registry != "" {
		cfg.Registry = opts.registry
		if err := cfg.Validate(); err != nil {
			return nil, errors.NewExitError(errors.ExitConfigError, err)
		}
	}
	return cfg, nil
}

// Execute runs the root command. Failures are printed as a red line with a
// hint where one applies, and the process exits with:
//   - 1: the pin pipeline or update check failed
//   - 2: configuration or usage error
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		code := errors.GetExitCode(err)
		reportError(rootCmd.ErrOrStderr(), err)
		verbose.Infof("Exit code %d: %v", code, err)
		stop()
		exitFunc(code)
	}
}

// ExecuteTest runs the root command and returns its error instead of exiting.
func ExecuteTest() error {
	return rootCmd.Execute()
}

func reportError(w io.Writer, err error) {
	display.Error(w, "Error: "+errors.EnhanceErrorWithHint(err))
}
