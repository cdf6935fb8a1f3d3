// Package manifest loads a package.json, overwrites dependency versions in
// place and writes it back with stable formatting.
package manifest

import (
	"os"

	"github.com/ajxudir/pinlock/pkg/enumerate"
	apperrors "github.com/ajxudir/pinlock/pkg/errors"
	"github.com/ajxudir/pinlock/pkg/formats"
	"github.com/ajxudir/pinlock/pkg/verbose"
	"github.com/iancoleman/orderedmap"
)

// DefaultFileName is the manifest used when no path is given.
const DefaultFileName = "package.json"

// Section names a dependency section of the manifest.
type Section string

const (
	Dependencies    Section = "dependencies"
	DevDependencies Section = "devDependencies"
)

// Sections lists the searched sections in lookup order. A name present in
// both is resolved to the first.
var Sections = []Section{Dependencies, DevDependencies}

// Manifest is a loaded package.json. Key order of every object is kept.
type Manifest struct {
	path string
	mode os.FileMode
	data *orderedmap.OrderedMap
}

// readFileFunc and writeFileFunc allow I/O failures to be injected in tests.
var (
	readFileFunc  = os.ReadFile
	writeFileFunc = os.WriteFile
)

// Load reads and decodes the manifest at path.
//
// Parameters:
//   - path: Manifest file path
//
// Returns:
//   - *Manifest: The decoded manifest
//   - error: *errors.FileReadError if the file cannot be read,
//     *errors.FileParseError if it is not a JSON object
func Load(path string) (*Manifest, error) {
	content, err := readFileFunc(path)
	if err != nil {
		return nil, &apperrors.FileReadError{Path: path, Err: err}
	}

	data, err := formats.DecodeObject(content)
	if err != nil {
		return nil, &apperrors.FileParseError{Path: path, Err: err}
	}

	mode := os.FileMode(0o644)
	if info, statErr := os.Stat(path); statErr == nil {
		mode = info.Mode().Perm()
	}

	verbose.Infof("Loaded manifest %s", path)
	return &Manifest{path: path, mode: mode, data: data}, nil
}

// Path returns the file the manifest was loaded from.
func (m *Manifest) Path() string { return m.path }

// Data returns the underlying document.
func (m *Manifest) Data() *orderedmap.OrderedMap { return m.data }

// section returns the named dependency object, or nil when it is absent or
// not an object.
func (m *Manifest) section(s Section) *orderedmap.OrderedMap {
	obj, ok := formats.ObjectField(m.data, string(s))
	if !ok {
		return nil
	}
	return obj
}

// Lookup finds the section declaring name.
//
// Returns:
//   - Section: The first section in Sections holding name
//   - bool: false if no section declares it
func (m *Manifest) Lookup(name string) (Section, bool) {
	for _, s := range Sections {
		if deps := m.section(s); deps != nil {
			if _, ok := deps.Get(name); ok {
				return s, true
			}
		}
	}
	return "", false
}

// Declared is one dependency as written in the manifest.
type Declared struct {
	Name    string
	Spec    string
	Section Section
}

// Declared returns every string-valued dependency in section order, skipping
// names already seen in an earlier section.
func (m *Manifest) Declared() []Declared {
	var out []Declared
	seen := make(map[string]bool)
	for _, s := range Sections {
		deps := m.section(s)
		if deps == nil {
			continue
		}
		for _, name := range deps.Keys() {
			if seen[name] {
				continue
			}
			raw, _ := deps.Get(name)
			spec, ok := raw.(string)
			if !ok {
				continue
			}
			seen[name] = true
			out = append(out, Declared{Name: name, Spec: spec, Section: s})
		}
	}
	return out
}

// Merge overwrites the declared version of every record with its installed
// version, in whichever section declares it.
//
// Every record is resolved before anything is changed, so a record declared
// in no section leaves the manifest untouched.
//
// Parameters:
//   - records: Installed packages
//
// Returns:
//   - int: Number of entries whose value changed
//   - error: *errors.MissingPackageError for the first undeclared record
func (m *Manifest) Merge(records []enumerate.Record) (int, error) {
	targets := make([]Section, len(records))
	for i, r := range records {
		s, ok := m.Lookup(r.Name)
		if !ok {
			return 0, &apperrors.MissingPackageError{
				Package:  r.Name,
				Path:     m.path,
				Sections: sectionNames(),
			}
		}
		targets[i] = s
	}

	changed := 0
	for i, r := range records {
		deps := m.section(targets[i])
		if old, _ := deps.Get(r.Name); old != r.Version {
			verbose.VersionSelected(r.Name, formatValue(old), r.Version, "installed")
			changed++
		}
		deps.Set(r.Name, r.Version)
	}
	return changed, nil
}

// Bytes encodes the manifest with two-space indentation and a trailing newline.
func (m *Manifest) Bytes() ([]byte, error) {
	out, err := formats.EncodeObject(m.data)
	if err != nil {
		return nil, &apperrors.FileWriteError{Path: m.path, Err: err}
	}
	return out, nil
}

// Write overwrites the manifest file, keeping its permission bits.
//
// Returns:
//   - error: *errors.FileWriteError on encode or write failure
func (m *Manifest) Write() error {
	out, err := m.Bytes()
	if err != nil {
		return err
	}
	if err := writeFileFunc(m.path, out, m.mode); err != nil {
		return &apperrors.FileWriteError{Path: m.path, Err: err}
	}
	verbose.Infof("Wrote manifest %s (%d bytes)", m.path, len(out))
	return nil
}

func sectionNames() []string {
	names := make([]string, len(Sections))
	for i, s := range Sections {
		names[i] = string(s)
	}
	return names
}

func formatValue(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return "<non-string>"
}
