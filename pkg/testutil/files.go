// Package testutil provides shared test helpers for pinlock packages.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// WriteFile writes content to path, creating parent directories.
func WriteFile(t *testing.T, path, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// WriteManifest writes a package.json into dir and returns its path.
func WriteManifest(t *testing.T, dir, content string) string {
	t.Helper()
	return WriteFile(t, filepath.Join(dir, "package.json"), content)
}

// ReadFile returns the content of path as a string.
func ReadFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

// CopyFixture copies a file from a testdata directory into dir under the
// same base name and returns the new path.
func CopyFixture(t *testing.T, fixture, dir string) string {
	t.Helper()
	return WriteFile(t, filepath.Join(dir, filepath.Base(fixture)), ReadFile(t, fixture))
}
