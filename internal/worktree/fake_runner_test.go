package worktree

import (
	"context"
	"strings"
)

// fakeRunner returns canned output per command line and records calls.
type fakeRunner struct {
	outputs map[string]string
	errs    map[string]error
	calls   []fakeCall
}

type fakeCall struct {
	dir  string
	args []string
}

func (f *fakeRunner) Run(_ context.Context, dir string, args ...string) (string, error) {
	f.calls = append(f.calls, fakeCall{dir: dir, args: args})
	key := strings.Join(args, " ")
	if err, ok := f.errs[key]; ok {
		return "", err
	}
	return f.outputs[key], nil
}
