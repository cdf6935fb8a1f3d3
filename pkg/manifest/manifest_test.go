package manifest

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/ajxudir/pinlock/pkg/enumerate"
	apperrors "github.com/ajxudir/pinlock/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const sample = `{
  "name": "test-project",
  "version": "1.0.0",
  "scripts": {
    "test": "jest && echo <done>"
  },
  "dependencies": {
    "express": "^4.18.2",
    "axios": "~1.5.0"
  },
  "devDependencies": {
    "eslint": ">=8.0.0",
    "jest": "^29.0.0"
  }
}
`

// TestMergeScenarioA tests pinning a single dependency.
func TestMergeScenarioA(t *testing.T) {
	path := writeManifest(t, `{"dependencies":{"left-pad":"^1.0.0"},"devDependencies":{}}`)

	m, err := Load(path)
	require.NoError(t, err)

	changed, err := m.Merge([]enumerate.Record{{Name: "left-pad", Version: "1.3.0"}})
	require.NoError(t, err)
	assert.Equal(t, 1, changed)
	require.NoError(t, m.Write())

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(content, &got))
	assert.Equal(t, map[string]interface{}{
		"dependencies":    map[string]interface{}{"left-pad": "1.3.0"},
		"devDependencies": map[string]interface{}{},
	}, got)
}

// TestMergePreservesLayout tests that only version values change.
//
// It verifies:
//   - Records land in the section that declared them
//   - Key order and unrelated fields are preserved
//   - Output uses two-space indentation, no HTML escaping and a trailing newline
func TestMergePreservesLayout(t *testing.T) {
	path := writeManifest(t, sample)
	m, err := Load(path)
	require.NoError(t, err)

	_, err = m.Merge([]enumerate.Record{
		{Name: "axios", Version: "1.5.1"},
		{Name: "jest", Version: "29.7.0"},
	})
	require.NoError(t, err)
	require.NoError(t, m.Write())

	expected := `{
  "name": "test-project",
  "version": "1.0.0",
  "scripts": {
    "test": "jest && echo <done>"
  },
  "dependencies": {
    "express": "^4.18.2",
    "axios": "1.5.1"
  },
  "devDependencies": {
    "eslint": ">=8.0.0",
    "jest": "29.7.0"
  }
}
`
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, expected, string(content))
}

// TestMergeIdempotent tests that a second identical run changes nothing.
func TestMergeIdempotent(t *testing.T) {
	path := writeManifest(t, `{"dependencies":{"a":"^1.0.0","b":"^2.0.0"},"devDependencies":{"c":"~3.0.0"}}`)
	records := []enumerate.Record{{Name: "a", Version: "1.2.3"}, {Name: "c", Version: "3.0.9"}}

	run := func() []byte {
		m, err := Load(path)
		require.NoError(t, err)
		_, err = m.Merge(records)
		require.NoError(t, err)
		require.NoError(t, m.Write())
		content, err := os.ReadFile(path)
		require.NoError(t, err)
		return content
	}

	first := run()
	second := run()
	assert.Equal(t, first, second)

	m, err := Load(path)
	require.NoError(t, err)
	changed, err := m.Merge(records)
	require.NoError(t, err)
	assert.Zero(t, changed)
}

// TestMergeRoundTripProperty tests that each record maps to exactly its version
// in its original section after write and reload.
func TestMergeRoundTripProperty(t *testing.T) {
	cases := [][]enumerate.Record{
		nil,
		{{Name: "express", Version: "4.18.2"}},
		{{Name: "eslint", Version: "8.47.0"}, {Name: "express", Version: "4.19.0"}},
		{{Name: "axios", Version: "1.5.0-beta.1"}, {Name: "jest", Version: "29.7.0"}, {Name: "eslint", Version: "9.0.0"}, {Name: "express", Version: "5.0.0"}},
	}

	for _, records := range cases {
		path := writeManifest(t, sample)
		before, err := Load(path)
		require.NoError(t, err)

		sections := map[string]Section{}
		for _, r := range records {
			s, ok := before.Lookup(r.Name)
			require.True(t, ok)
			sections[r.Name] = s
		}

		_, err = before.Merge(records)
		require.NoError(t, err)
		require.NoError(t, before.Write())

		after, err := Load(path)
		require.NoError(t, err)

		for _, r := range records {
			s, ok := after.Lookup(r.Name)
			require.True(t, ok)
			assert.Equal(t, sections[r.Name], s)
			v := declaredSpec(after, r.Name)
			assert.Equal(t, r.Version, v)
		}

		name, _ := after.Data().Get("name")
		assert.Equal(t, "test-project", name)
		assert.Equal(t, []string{"name", "version", "scripts", "dependencies", "devDependencies"}, after.Data().Keys())
	}
}

// declaredSpec returns the spec written for name, or "" when it is not declared.
func declaredSpec(m *Manifest, name string) string {
	for _, d := range m.Declared() {
		if d.Name == name {
			return d.Spec
		}
	}
	return ""
}

// TestMergeMissingPackage tests the typed error for undeclared packages.
//
// It verifies:
//   - MissingPackageError names the package and the searched sections
//   - No record is applied when any record is undeclared
func TestMergeMissingPackage(t *testing.T) {
	path := writeManifest(t, sample)
	m, err := Load(path)
	require.NoError(t, err)

	_, err = m.Merge([]enumerate.Record{
		{Name: "express", Version: "4.19.0"},
		{Name: "left-pad", Version: "1.3.0"},
	})
	require.Error(t, err)

	missing, ok := apperrors.IsMissingPackage(err)
	require.True(t, ok)
	assert.Equal(t, "left-pad", missing.Package)
	assert.Equal(t, path, missing.Path)
	assert.Equal(t, []string{"dependencies", "devDependencies"}, missing.Sections)

	v := declaredSpec(m, "express")
	assert.Equal(t, "^4.18.2", v)
}

// TestMergeMissingSections tests manifests lacking one or both sections.
func TestMergeMissingSections(t *testing.T) {
	t.Run("only devDependencies", func(t *testing.T) {
		m, err := Load(writeManifest(t, `{"devDependencies":{"jest":"^29.0.0"}}`))
		require.NoError(t, err)
		_, err = m.Merge([]enumerate.Record{{Name: "jest", Version: "29.7.0"}})
		require.NoError(t, err)
		v := declaredSpec(m, "jest")
		assert.Equal(t, "29.7.0", v)
	})

	t.Run("no sections", func(t *testing.T) {
		m, err := Load(writeManifest(t, `{"name":"bare"}`))
		require.NoError(t, err)
		_, err = m.Merge([]enumerate.Record{{Name: "jest", Version: "29.7.0"}})
		_, ok := apperrors.IsMissingPackage(err)
		assert.True(t, ok)
	})

	t.Run("section is not an object", func(t *testing.T) {
		m, err := Load(writeManifest(t, `{"dependencies":"oops","devDependencies":{"a":"1"}}`))
		require.NoError(t, err)
		s, ok := m.Lookup("a")
		require.True(t, ok)
		assert.Equal(t, DevDependencies, s)
	})
}

// TestLookupPrefersDependencies tests a package declared in both sections.
func TestLookupPrefersDependencies(t *testing.T) {
	m, err := Load(writeManifest(t, `{"dependencies":{"a":"^1.0.0"},"devDependencies":{"a":"^1.1.0"}}`))
	require.NoError(t, err)

	s, ok := m.Lookup("a")
	require.True(t, ok)
	assert.Equal(t, Dependencies, s)

	_, err = m.Merge([]enumerate.Record{{Name: "a", Version: "1.4.0"}})
	require.NoError(t, err)

	out, err := m.Bytes()
	require.NoError(t, err)
	assert.Contains(t, string(out), `"dependencies": {
    "a": "1.4.0"
  }`)
	assert.Contains(t, string(out), `"devDependencies": {
    "a": "^1.1.0"
  }`)
}

// TestDeclared tests the listing of declared dependencies.
func TestDeclared(t *testing.T) {
	m, err := Load(writeManifest(t, `{"dependencies":{"b":"^2.0.0","a":"^1.0.0","n":1},"devDependencies":{"a":"^1.1.0","c":"~3.0.0"}}`))
	require.NoError(t, err)

	assert.Equal(t, []Declared{
		{Name: "b", Spec: "^2.0.0", Section: Dependencies},
		{Name: "a", Spec: "^1.0.0", Section: Dependencies},
		{Name: "c", Spec: "~3.0.0", Section: DevDependencies},
	}, m.Declared())
}

// TestLoadErrors tests read and parse failures.
func TestLoadErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
		var readErr *apperrors.FileReadError
		require.True(t, errors.As(err, &readErr))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("malformed json", func(t *testing.T) {
		_, err := Load(writeManifest(t, `{"dependencies": {`))
		var parseErr *apperrors.FileParseError
		assert.True(t, errors.As(err, &parseErr))
	})

	t.Run("not an object", func(t *testing.T) {
		_, err := Load(writeManifest(t, `["dependencies"]`))
		var parseErr *apperrors.FileParseError
		assert.True(t, errors.As(err, &parseErr))
	})
}

// TestWriteKeepsPermissions tests that the file mode survives a rewrite.
func TestWriteKeepsPermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not meaningful on Windows")
	}
	path := writeManifest(t, `{"dependencies":{"a":"^1.0.0"}}`)
	require.NoError(t, os.Chmod(path, 0o600))

	m, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, m.Write())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

// TestWriteFailure tests FileWriteError propagation.
func TestWriteFailure(t *testing.T) {
	m, err := Load(writeManifest(t, `{"dependencies":{"a":"^1.0.0"}}`))
	require.NoError(t, err)

	original := writeFileFunc
	writeFileFunc = func(string, []byte, os.FileMode) error { return os.ErrPermission }
	t.Cleanup(func() { writeFileFunc = original })

	err = m.Write()
	var writeErr *apperrors.FileWriteError
	require.True(t, errors.As(err, &writeErr))
	assert.Equal(t, m.Path(), writeErr.Path)
	assert.ErrorIs(t, err, os.ErrPermission)
}

// TestLoadReadFailure tests an injected read error.
func TestLoadReadFailure(t *testing.T) {
	original := readFileFunc
	readFileFunc = func(string) ([]byte, error) { return nil, os.ErrPermission }
	t.Cleanup(func() { readFileFunc = original })

	_, err := Load("package.json")
	var readErr *apperrors.FileReadError
	require.True(t, errors.As(err, &readErr))
	assert.ErrorIs(t, err, os.ErrPermission)
}
