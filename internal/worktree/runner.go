package worktree

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/LeJawa/dev-tools/internal/model"
)

// Runner executes a git subcommand in a directory and returns its stdout.
// A failed command yields a *model.CLIError carrying git's stderr.
type Runner interface {
	Run(ctx context.Context, dir string, args ...string) (string, error)
}

// GitRunner is the Runner backed by the git binary on PATH.
//
// It is stateless; the struct exists so the Manager can hold a Runner
// interface and tests can swap in a fake.
type GitRunner struct{}

// NewGitRunner creates a GitRunner using the git binary on PATH.
func NewGitRunner() *GitRunner {
	return &GitRunner{}
}

// Run executes `git -C <dir> <args...>`.
//
// Arguments are passed straight to the process, never through a shell, so
// directory names and branch names are not subject to shell expansion.
// The process is killed if ctx is cancelled.
func (r *GitRunner) Run(ctx context.Context, dir string, args ...string) (string, error) {
	fullArgs := append([]string{"-C", dir}, args...)

	// #nosec G204 -- args are built by this package
	cmd := exec.CommandContext(ctx, "git", fullArgs...)

	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		stderrStr := strings.TrimSpace(stderr.String())
		message := fmt.Sprintf("git %s failed", strings.Join(args, " "))
		if stderrStr != "" {
			message = fmt.Sprintf("%s: %s", message, stderrStr)
		}
		return "", model.WrapCLIError(model.ExitGitError, message, err)
	}

	return stdout.String(), nil
}
