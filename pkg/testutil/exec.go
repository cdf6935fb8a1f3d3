package testutil

import (
	"context"
	"sync"
)

// Call is one recorded command invocation.
type Call struct {
	Argv    []string
	Dir     string
	Timeout int
}

// FakeExec stands in for cmdexec.Execute. Every call returns Output and Err.
type FakeExec struct {
	Output []byte
	Err    error

	mu    sync.Mutex
	calls []Call
}

// NewFakeExec returns a FakeExec that prints output.
func NewFakeExec(output string, err error) *FakeExec {
	return &FakeExec{Output: []byte(output), Err: err}
}

// Execute records the call and returns the canned result. Its signature
// matches cmdexec.ExecuteFunc.
func (f *FakeExec) Execute(ctx context.Context, argv []string, dir string, timeoutSeconds int) ([]byte, error) {
	f.mu.Lock()
	f.calls = append(f.calls, Call{Argv: append([]string(nil), argv...), Dir: dir, Timeout: timeoutSeconds})
	f.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return f.Output, f.Err
}

// Calls returns the recorded invocations in order.
func (f *FakeExec) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

// Dirs returns the working directory of each invocation.
func (f *FakeExec) Dirs() []string {
	var dirs []string
	for _, c := range f.Calls() {
		dirs = append(dirs, c.Dir)
	}
	return dirs
}
