package cmd

import (
	"fmt"
	"io"
	"runtime"

	"github.com/spf13/cobra"
)

// Version information, overridable at build time via ldflags.
// Example: go build -ldflags="-X github.com/ajxudir/pinlock/cmd.GitCommit=abc123"
var (
	// Version is the semantic version of the build.
	Version = "0.1.0"
	// BuildTime is the timestamp of the build.
	BuildTime = ""
	// GitCommit is the git commit hash of the build.
	GitCommit = ""
)

func newVersionCmd() *cobra.Command {
	var detailed bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version and build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			if detailed {
				printBuildInfo(cmd.OutOrStdout())
				return
			}
			printVersion(cmd.OutOrStdout())
		},
	}
	cmd.Flags().BoolVar(&detailed, "detailed", false, "Include Go version, platform, build date and commit")
	return cmd
}

// printVersion prints the bare version, as -V does.
func printVersion(w io.Writer) {
	_, _ = fmt.Fprintln(w, Version)
}

// printBuildInfo prints version, platform and build metadata.
func printBuildInfo(w io.Writer) {
	_, _ = fmt.Fprintf(w, "  Version: %s\n", Version)
	_, _ = fmt.Fprintf(w, "  Go:      %s\n", runtime.Version())
	_, _ = fmt.Fprintf(w, "  Runtime: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	if BuildTime != "" {
		_, _ = fmt.Fprintf(w, "  Date:    %s\n", BuildTime)
	}
	if GitCommit != "" {
		_, _ = fmt.Fprintf(w, "  Git:     %s\n", GitCommit)
	}
}
