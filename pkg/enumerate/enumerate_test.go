package enumerate

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/ajxudir/pinlock/pkg/cmdexec"
	"github.com/ajxudir/pinlock/pkg/config"
	apperrors "github.com/ajxudir/pinlock/pkg/errors"
	"github.com/ajxudir/pinlock/pkg/warnings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeExec records the call and returns canned output.
type fakeExec struct {
	out     string
	err     error
	argv    []string
	dir     string
	timeout int
	calls   int
}

func (f *fakeExec) run(_ context.Context, argv []string, dir string, timeoutSeconds int) ([]byte, error) {
	f.calls++
	f.argv = argv
	f.dir = dir
	f.timeout = timeoutSeconds
	if f.err != nil {
		return nil, f.err
	}
	return []byte(f.out), nil
}

func newEnumerator(t *testing.T, fx *fakeExec, deny ...string) *Enumerator {
	t.Helper()
	d, err := NewDenylist(deny)
	require.NoError(t, err)
	return &Enumerator{
		Command:        []string{"npm", "ls", "--depth=0", "--json"},
		TimeoutSeconds: 30,
		Denylist:       d,
		Exec:           fx.run,
	}
}

const listing = `{
  "name": "demo",
  "version": "1.0.0",
  "dependencies": {
    "react": {"version": "18.2.0", "resolved": "https://registry.npmjs.org/react/-/react-18.2.0.tgz"},
    "git-utils": {"version": "2.0.0"},
    "axios": {"version": "1.6.0"}
  },
  "devDependencies": {
    "eslint": {"version": "8.47.0"},
    "sassypam-loader": {"version": "0.1.0"}
  }
}`

// TestListOrderAndDenylist tests the normal enumeration path.
//
// It verifies:
//   - The command runs in the requested directory with the configured timeout
//   - dependencies come before devDependencies, each in output order
//   - Denylisted names are dropped whatever their version
//   - Versions are passed through unchanged
func TestListOrderAndDenylist(t *testing.T) {
	fx := &fakeExec{out: listing}
	e := newEnumerator(t, fx, "git", "sassypam")

	records, err := e.List(context.Background(), "sub")
	require.NoError(t, err)

	assert.Equal(t, []Record{
		{Name: "react", Version: "18.2.0"},
		{Name: "axios", Version: "1.6.0"},
		{Name: "eslint", Version: "8.47.0"},
	}, records)
	assert.Equal(t, "sub", fx.dir)
	assert.Equal(t, 30, fx.timeout)
	assert.Equal(t, []string{"npm", "ls", "--depth=0", "--json"}, fx.argv)
}

// TestListDenylistSubstring tests that "git" excludes git-utils (Scenario B).
func TestListDenylistSubstring(t *testing.T) {
	fx := &fakeExec{out: `{"dependencies":{"git-utils":{"version":"2.0.0"},"left-pad":{"version":"1.3.0"}}}`}
	records, err := newEnumerator(t, fx, "git").List(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, []Record{{Name: "left-pad", Version: "1.3.0"}}, records)
	assert.Equal(t, ".", fx.dir)
}

// TestListCommandFailure tests SubprocessError on a failing command.
func TestListCommandFailure(t *testing.T) {
	t.Run("non-zero exit", func(t *testing.T) {
		fx := &fakeExec{err: &cmdexec.CommandError{ExitCode: 1, Stderr: "npm ERR! missing: react\nnpm ERR! more", Err: errors.New("exit status 1")}}
		_, err := newEnumerator(t, fx).List(context.Background(), "app")
		require.Error(t, err)

		sub, ok := apperrors.IsSubprocessError(err)
		require.True(t, ok)
		assert.Equal(t, "app", sub.Dir)
		assert.Equal(t, "npm ERR! missing: react", sub.Output)
		assert.EqualError(t, sub.Err, "exit status 1")
		assert.Equal(t, 1, fx.calls)
	})

	t.Run("command not started", func(t *testing.T) {
		fx := &fakeExec{err: errors.New(`exec: "npm": executable file not found in $PATH`)}
		_, err := newEnumerator(t, fx).List(context.Background(), "")
		sub, ok := apperrors.IsSubprocessError(err)
		require.True(t, ok)
		assert.Empty(t, sub.Output)
		assert.Contains(t, err.Error(), "executable file not found")
	})

	t.Run("unparsable output", func(t *testing.T) {
		fx := &fakeExec{out: "demo@1.0.0 /tmp/demo\n└── react@18.2.0\n"}
		_, err := newEnumerator(t, fx).List(context.Background(), "")
		_, ok := apperrors.IsSubprocessError(err)
		require.True(t, ok)
		assert.Contains(t, err.Error(), "unparsable listing output")
	})
}

// TestParseSchemaErrors tests output that is JSON but not the listing schema.
func TestParseSchemaErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		msg   string
	}{
		{"group not object", `{"dependencies": []}`, `"dependencies" is not an object`},
		{"entry not object", `{"dependencies": {"a": "1.0.0"}}`, "dependencies.a: entry is not an object"},
		{"version not string", `{"devDependencies": {"a": {"version": 1}}}`, "devDependencies.a: version is not a string"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input), nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

// TestParseEdgeCases tests empty groups and uninstalled entries.
func TestParseEdgeCases(t *testing.T) {
	t.Run("no groups", func(t *testing.T) {
		records, err := Parse([]byte(`{"name":"empty"}`), nil)
		require.NoError(t, err)
		assert.Empty(t, records)
		assert.NotNil(t, records)
	})

	t.Run("null group", func(t *testing.T) {
		records, err := Parse([]byte(`{"dependencies":null}`), nil)
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("missing version is skipped with a warning", func(t *testing.T) {
		var buf bytes.Buffer
		restore := warnings.SetWarningWriter(&buf)
		defer restore()

		records, err := Parse([]byte(`{"dependencies":{"ghost":{"required":"^1.0.0","missing":true},"real":{"version":"2.0.0"}}}`), nil)
		require.NoError(t, err)
		assert.Equal(t, []Record{{Name: "real", Version: "2.0.0"}}, records)
		assert.Contains(t, buf.String(), "ghost is declared but not installed")
	})

	t.Run("prerelease and build versions pass through", func(t *testing.T) {
		records, err := Parse([]byte(`{"dependencies":{"a":{"version":"2.0.0-rc.1+build.5"}}}`), nil)
		require.NoError(t, err)
		assert.Equal(t, "2.0.0-rc.1+build.5", records[0].Version)
	})
}

// TestNewFromConfig tests construction from configuration.
func TestNewFromConfig(t *testing.T) {
	cfg := &config.Config{
		Denylist:       []string{"git"},
		ListCommand:    "pnpm ls --json",
		TimeoutSeconds: 5,
	}
	e, err := New(cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{"pnpm", "ls", "--json"}, e.Command)
	assert.Equal(t, 5, e.TimeoutSeconds)
	_, denied := e.Denylist.Match("git-utils")
	assert.True(t, denied)

	cfg.Denylist = []string{"["}
	_, err = New(cfg)
	assert.Error(t, err)
}

func TestFirstLine(t *testing.T) {
	assert.Equal(t, "a", firstLine("a\nb"))
	assert.Equal(t, "only", firstLine("only"))
}
