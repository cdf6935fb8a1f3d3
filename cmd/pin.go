package cmd

import (
	"context"
	"io"

	"github.com/ajxudir/pinlock/pkg/config"
	"github.com/ajxudir/pinlock/pkg/display"
	"github.com/ajxudir/pinlock/pkg/enumerate"
	"github.com/ajxudir/pinlock/pkg/errors"
	"github.com/ajxudir/pinlock/pkg/output"
	"github.com/ajxudir/pinlock/pkg/pin"
	"github.com/ajxudir/pinlock/pkg/verbose"
)

// runPin lists installed packages and pins them into the manifest at arg.
func runPin(ctx context.Context, w io.Writer, cfg *config.Config, opts *rootOptions, format output.Format, arg string) error {
	lister, err := enumerate.New(cfg)
	if err != nil {
		return errors.NewExitError(errors.ExitConfigError, err)
	}
	lister.Exec = execFunc

	if !opts.skipPreflight {
		if err := validateCommandFunc(lister.Command); err != nil {
			return err
		}
	}

	result, err := (&pin.Pinner{Lister: lister, DryRun: opts.dryRun}).Run(ctx, arg)
	if err != nil {
		return err
	}

	if err := output.WritePinResult(w, format, result, verbose.IsEnabled()); err != nil {
		return err
	}
	if !format.IsStructured() {
		display.Success(w, result.Message)
	}
	return nil
}
