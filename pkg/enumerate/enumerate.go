// Package enumerate lists the top-level dependencies a package manager has
// actually installed, with their resolved versions.
//
// The listing command is asked for JSON and its output is decoded against a
// fixed schema:
//
//	{"dependencies": {"<name>": {"version": "<resolved>"}}, "devDependencies": {...}}
//
// Human-formatted tree output is never parsed.
package enumerate

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ajxudir/pinlock/pkg/cmdexec"
	"github.com/ajxudir/pinlock/pkg/config"
	apperrors "github.com/ajxudir/pinlock/pkg/errors"
	"github.com/ajxudir/pinlock/pkg/formats"
	"github.com/ajxudir/pinlock/pkg/verbose"
	"github.com/ajxudir/pinlock/pkg/warnings"
)

// Groups are the listing sections read, in emission order.
var Groups = []string{"dependencies", "devDependencies"}

// Record is one installed package and the version the package manager resolved.
type Record struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// Enumerator runs the listing command and turns its output into Records.
type Enumerator struct {
	// Command is the listing command and its arguments.
	Command []string

	// TimeoutSeconds bounds the command; 0 means no timeout.
	TimeoutSeconds int

	// Denylist drops matching package names. nil keeps everything.
	Denylist *Denylist

	// Exec runs the command. nil uses cmdexec.Execute.
	Exec cmdexec.ExecuteFunc
}

// New builds an Enumerator from configuration.
func New(cfg *config.Config) (*Enumerator, error) {
	deny, err := NewDenylist(cfg.Denylist)
	if err != nil {
		return nil, err
	}
	return &Enumerator{
		Command:        cfg.ListArgs(),
		TimeoutSeconds: cfg.TimeoutSeconds,
		Denylist:       deny,
	}, nil
}

// List runs the listing command in dir and returns the installed packages.
//
// Records from "dependencies" come first, then "devDependencies", each in the
// order printed by the command. Denylisted names are dropped. Any command
// failure or unparsable output fails the whole call with a SubprocessError;
// no partial list is returned.
//
// Parameters:
//   - ctx: Context for cancellation
//   - dir: Directory to scope the listing to (empty for the current directory)
//
// Returns:
//   - []Record: Installed packages
//   - error: *errors.SubprocessError on failure
func (e *Enumerator) List(ctx context.Context, dir string) ([]Record, error) {
	if dir == "" {
		dir = "."
	}

	run := e.Exec
	if run == nil {
		run = cmdexec.Execute
	}

	out, err := run(ctx, e.Command, dir, e.TimeoutSeconds)
	if err != nil {
		subErr := &apperrors.SubprocessError{Command: e.Command, Dir: dir, Err: err}
		var cmdErr *cmdexec.CommandError
		if errors.As(err, &cmdErr) {
			subErr.Output = firstLine(cmdErr.Stderr)
			subErr.Err = cmdErr.Err
		}
		return nil, subErr
	}

	records, err := Parse(out, e.Denylist)
	if err != nil {
		return nil, &apperrors.SubprocessError{Command: e.Command, Dir: dir, Err: err}
	}

	verbose.Infof("Enumerated %d installed packages in %s", len(records), dir)
	return records, nil
}

// Parse decodes listing output into Records, dropping denylisted names.
//
// A group that is absent is treated as empty. Entries without a version
// (declared but not installed) are skipped with a warning.
//
// Parameters:
//   - data: JSON printed by the listing command
//   - deny: Names to drop, may be nil
//
// Returns:
//   - []Record: Installed packages in output order
//   - error: Output that does not follow the schema
func Parse(data []byte, deny *Denylist) ([]Record, error) {
	root, err := formats.DecodeObject(data)
	if err != nil {
		return nil, fmt.Errorf("unparsable listing output: %w", err)
	}

	records := []Record{}
	for _, group := range Groups {
		raw, present := root.Get(group)
		if !present || raw == nil {
			continue
		}
		entries, ok := formats.AsObject(raw)
		if !ok {
			return nil, fmt.Errorf("unparsable listing output: %q is not an object", group)
		}

		for _, name := range entries.Keys() {
			if pattern, denied := deny.Match(name); denied {
				verbose.PackageFiltered(name, fmt.Sprintf("matches denylist pattern %q", pattern))
				continue
			}

			value, _ := entries.Get(name)
			version, err := entryVersion(value)
			if err != nil {
				return nil, fmt.Errorf("unparsable listing output: %s.%s: %w", group, name, err)
			}
			if version == "" {
				warnings.Warnf("%s is declared but not installed; skipping", name)
				continue
			}

			records = append(records, Record{Name: name, Version: version})
		}
	}

	return records, nil
}

func entryVersion(value interface{}) (string, error) {
	entry, ok := formats.AsObject(value)
	if !ok {
		return "", fmt.Errorf("entry is not an object")
	}
	raw, ok := entry.Get("version")
	if !ok || raw == nil {
		return "", nil
	}
	version, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("version is not a string")
	}
	return version, nil
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
