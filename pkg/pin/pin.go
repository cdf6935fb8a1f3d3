// Package pin runs the pinning pipeline: list installed packages, merge their
// versions into the manifest, and write the manifest back.
package pin

import (
	"context"
	"os"
	"path/filepath"

	"github.com/ajxudir/pinlock/pkg/enumerate"
	"github.com/ajxudir/pinlock/pkg/manifest"
	"github.com/ajxudir/pinlock/pkg/verbose"
)

const (
	// MessageUpdated confirms a successful write.
	MessageUpdated = "package.json file updated"

	// MessageDryRun reports a run that computed changes without writing.
	MessageDryRun = "package.json file would be updated (dry run)"
)

// Lister enumerates installed packages scoped to a directory.
type Lister interface {
	List(ctx context.Context, dir string) ([]enumerate.Record, error)
}

// Target is the manifest to pin and the directory its packages are installed in.
type Target struct {
	Path string
	Dir  string
}

// ResolveTarget maps the optional path argument to a Target.
//
// An empty argument means package.json in the current directory. A directory
// means package.json inside it. Anything else is taken as the manifest file,
// and listing is scoped to the directory containing it.
func ResolveTarget(arg string) Target {
	path := arg
	switch {
	case path == "":
		path = manifest.DefaultFileName
	case isDir(path):
		path = filepath.Join(path, manifest.DefaultFileName)
	}
	return Target{Path: path, Dir: filepath.Dir(path)}
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// Result describes a completed pinning run.
type Result struct {
	// Path is the manifest that was (or would have been) written.
	Path string `json:"path"`

	// Pinned lists the enumerated records merged into the manifest.
	Pinned []enumerate.Record `json:"pinned"`

	// Changed counts manifest entries whose value differed from the installed version.
	Changed int `json:"changed"`

	// DryRun is true when nothing was written.
	DryRun bool `json:"dry_run"`

	// Message is the confirmation line for the user.
	Message string `json:"message"`

	// Output holds the encoded manifest on a dry run.
	Output []byte `json:"-"`
}

// Pinner runs the pipeline against one manifest.
type Pinner struct {
	Lister Lister

	// DryRun skips the final write.
	DryRun bool
}

// Run lists, merges and writes, in that order. The first failing stage stops
// the run and its error is returned unchanged; later stages do not start.
//
// Parameters:
//   - ctx: Context for the listing subprocess
//   - arg: Optional manifest file or directory
//
// Returns:
//   - Result: What was pinned and where
//   - error: the failing stage's typed error
func (p *Pinner) Run(ctx context.Context, arg string) (Result, error) {
	target := ResolveTarget(arg)
	verbose.Infof("Pinning %s (listing in %s)", target.Path, target.Dir)

	records, err := p.Lister.List(ctx, target.Dir)
	if err != nil {
		return Result{}, err
	}

	m, err := manifest.Load(target.Path)
	if err != nil {
		return Result{}, err
	}

	changed, err := m.Merge(records)
	if err != nil {
		return Result{}, err
	}

	result := Result{Path: target.Path, Pinned: records, Changed: changed, DryRun: p.DryRun}

	if p.DryRun {
		out, err := m.Bytes()
		if err != nil {
			return Result{}, err
		}
		result.Output = out
		result.Message = MessageDryRun
		return result, nil
	}

	if err := m.Write(); err != nil {
		return Result{}, err
	}
	result.Message = MessageUpdated
	return result, nil
}
