package cmd

import (
	"context"
	"io"

	"github.com/ajxudir/pinlock/pkg/config"
	"github.com/ajxudir/pinlock/pkg/display"
	"github.com/ajxudir/pinlock/pkg/outdated"
	"github.com/ajxudir/pinlock/pkg/output"
)

// runUpdate reports newer registry versions for the manifest at path.
// Every declared dependency is checked; the pinning denylist does not apply.
// The manifest is not modified.
func runUpdate(ctx context.Context, w io.Writer, cfg *config.Config, format output.Format, path string) error {
	checker := &outdated.Checker{
		Registry:    newRegistryFunc(cfg.Registry),
		Concurrency: cfg.Concurrency,
	}

	report, err := checker.Check(ctx, path)
	if err != nil {
		return err
	}

	if err := output.WriteUpdateReport(w, format, report); err != nil {
		return err
	}
	if !format.IsStructured() && report.HasUpdates() {
		display.Successf(w, "%d of %d checked dependencies can be upgraded", len(report.Updates), report.Checked)
	}
	return nil
}
