package enumerate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDenylistMatch tests substring and regex matching.
//
// It verifies:
//   - Plain words match anywhere in the name
//   - Matching is case-sensitive
//   - Anchored expressions are honoured
//   - A nil or empty denylist denies nothing
func TestDenylistMatch(t *testing.T) {
	d, err := NewDenylist([]string{"git", "sassypam", "^@internal/"})
	require.NoError(t, err)

	tests := []struct {
		name    string
		denied  bool
		pattern string
	}{
		{"git-utils", true, "git"},
		{"simple-git", true, "git"},
		{"digit-parser", true, "git"},
		{"GIT-tools", false, ""},
		{"sassypam", true, "sassypam"},
		{"@internal/logger", true, "^@internal/"},
		{"@scope/internal/x", false, ""},
		{"react", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pattern, denied := d.Match(tt.name)
			assert.Equal(t, tt.denied, denied)
			assert.Equal(t, tt.pattern, pattern)
		})
	}

	var none *Denylist
	_, denied := none.Match("git")
	assert.False(t, denied)

	empty, err := NewDenylist(nil)
	require.NoError(t, err)
	_, denied = empty.Match("git")
	assert.False(t, denied)
}

func TestNewDenylistInvalid(t *testing.T) {
	_, err := NewDenylist([]string{"ok", "(unclosed"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid denylist pattern "(unclosed"`)
}
