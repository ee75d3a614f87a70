package worktree

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LeJawa/dev-tools/internal/model"
)

// setupTestRepo creates <tmp>/main holding an initialized Git repository
// with a single commit. The repository sits one level down so that
// worktrees added as "../<branch>" stay inside the test's temp directory.
//
// A local user.name and user.email are configured so `git commit` works in
// CI environments without a global git config.
func setupTestRepo(t *testing.T) string {
	t.Helper()

	dir := filepath.Join(t.TempDir(), "main")
	require.NoError(t, os.MkdirAll(dir, 0o755))

	runTestGit(t, dir, "init")
	runTestGit(t, dir, "config", "user.email", "test@example.com")
	runTestGit(t, dir, "config", "user.name", "Test User")

	// Worktree commands need at least one commit for a branch to point to.
	err := os.WriteFile(filepath.Join(dir, "README.md"), []byte("# Test Repo\n"), 0o644)
	require.NoError(t, err, "failed to create initial file")

	runTestGit(t, dir, "add", ".")
	runTestGit(t, dir, "commit", "-m", "initial commit")

	return dir
}

// runTestGit runs a git command in dir and fails the test on error.
func runTestGit(t *testing.T, dir string, args ...string) string {
	t.Helper()

	cmd := exec.Command("git", append([]string{"-C", dir}, args...)...)
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "git %v failed: %s", args, string(output))
	return string(output)
}

// TestGitRunnerSuccess verifies stdout is returned on success.
func TestGitRunnerSuccess(t *testing.T) {
	repoPath := setupTestRepo(t)

	out, err := NewGitRunner().Run(context.Background(), repoPath, "rev-parse", "--is-inside-work-tree")
	require.NoError(t, err)
	assert.Equal(t, "true\n", out)
}

// TestGitRunnerFailure verifies a failing command yields a CLIError with
// the git exit code and stderr in the message.
func TestGitRunnerFailure(t *testing.T) {
	dir := t.TempDir()

	_, err := NewGitRunner().Run(context.Background(), dir, "worktree", "list")
	require.Error(t, err)

	var cliErr *model.CLIError
	require.True(t, errors.As(err, &cliErr))
	assert.Equal(t, model.ExitGitError, cliErr.Code)
	assert.Contains(t, cliErr.Message, "git worktree list failed")
	assert.Contains(t, cliErr.Message, "not a git repository")
}

// TestGitRunnerCancelledContext verifies the subprocess honours ctx.
func TestGitRunnerCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewGitRunner().Run(ctx, t.TempDir(), "version")
	assert.Error(t, err)
}

// TestAddListRemove exercises the full worktree lifecycle against a real
// repository: add a sibling worktree, see it listed, remove it by branch.
func TestAddListRemove(t *testing.T) {
	repoPath := setupTestRepo(t)
	m := NewManager(nil)
	ctx := context.Background()

	wtPath, err := m.Add(ctx, repoPath, "feature-x")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(filepath.Dir(repoPath), "feature-x"), wtPath)

	_, statErr := os.Stat(wtPath)
	require.NoError(t, statErr, "worktree directory should exist after Add")
	assert.True(t, IsWorktree(wtPath))

	worktrees, err := m.List(ctx, repoPath)
	require.NoError(t, err)
	require.Len(t, worktrees, 2)
	assert.True(t, SamePath(repoPath, worktrees[0].Path), "main worktree is listed first")
	assert.Equal(t, "feature-x", worktrees[1].Branch)
	assert.True(t, SamePath(wtPath, worktrees[1].Path))
	assert.NotEmpty(t, worktrees[1].HEAD)

	require.NoError(t, m.Remove(ctx, repoPath, "feature-x"))

	_, statErr = os.Stat(wtPath)
	assert.True(t, os.IsNotExist(statErr), "worktree directory should be gone after Remove")

	worktrees, err = m.List(ctx, repoPath)
	require.NoError(t, err)
	assert.Len(t, worktrees, 1)
}

// TestAddRejectsInvalidBranch verifies validation runs before git.
func TestAddRejectsInvalidBranch(t *testing.T) {
	runner := &fakeRunner{}
	m := NewManager(runner)

	_, err := m.Add(context.Background(), "/repo/main", "feature--1")
	require.Error(t, err)
	assert.Empty(t, runner.calls, "git must not run for an invalid branch")
}

// TestAddRunsFromNodePath checks the exact git invocation.
func TestAddRunsFromNodePath(t *testing.T) {
	runner := &fakeRunner{}
	m := NewManager(runner)

	path, err := m.Add(context.Background(), "/repo/main", "abc")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/repo", "abc"), path)

	require.Len(t, runner.calls, 1)
	assert.Equal(t, "/repo/main", runner.calls[0].dir)
	assert.Equal(t, []string{"worktree", "add", "../abc"}, runner.calls[0].args)
}

// TestRemoveFailure verifies git's error is returned unchanged.
func TestRemoveFailure(t *testing.T) {
	gitErr := model.NewCLIError(model.ExitGitError, "git worktree remove x failed")
	runner := &fakeRunner{errs: map[string]error{"worktree remove x": gitErr}}

	err := NewManager(runner).Remove(context.Background(), "/repo/x", "x")
	assert.ErrorIs(t, err, gitErr)
}

// TestIsWorktree distinguishes the main checkout (.git directory), a linked
// worktree (.git pointer file) and a plain directory.
func TestIsWorktree(t *testing.T) {
	repoPath := setupTestRepo(t)
	assert.False(t, IsWorktree(repoPath), "main repo should not be identified as a worktree")
	assert.False(t, IsWorktree(t.TempDir()), "non-git directory is not a worktree")

	wtPath, err := NewManager(nil).Add(context.Background(), repoPath, "wt-check")
	require.NoError(t, err)
	assert.True(t, IsWorktree(wtPath))
}

// TestMainRepoFromPointer covers pointer files in the forms git writes.
func TestMainRepoFromPointer(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
		ok      bool
	}{
		{"unix", "gitdir: /src/app/.git/worktrees/feature-x\n", filepath.Clean("/src/app"), true},
		{"windows", "gitdir: C:/src/app/.git/worktrees/feature-x\n", filepath.Clean("C:/src/app"), true},
		{"relative", "gitdir: ../app/.git/worktrees/feature-x\n", filepath.Clean("../app"), true},
		{"submodule", "gitdir: ../.git/modules/lib\n", "", false},
		{"garbage", "not a pointer", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := MainRepoFromPointer(tt.content)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

// TestMainRepoOf resolves the main repository from a worktree's pointer
// file, including relative pointers.
func TestMainRepoOf(t *testing.T) {
	base := t.TempDir()
	root := filepath.Join(base, "app")
	wt := filepath.Join(base, "feature-x")

	tests := []struct {
		name    string
		pointer string
		want    string
		ok      bool
	}{
		{"absolute", "gitdir: " + filepath.ToSlash(root) + "/.git/worktrees/feature-x\n", root, true},
		{"relative", "gitdir: ../app/.git/worktrees/feature-x\n", root, true},
		{"submodule", "gitdir: ../.git/modules/lib\n", "", false},
		{"not a pointer", "something else\n", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, os.MkdirAll(wt, 0o755))
			require.NoError(t, os.WriteFile(filepath.Join(wt, ".git"), []byte(tt.pointer), 0o644))

			got, ok := MainRepoOf(wt)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

// TestMainRepoOfNotWorktree covers a directory without a pointer file.
func TestMainRepoOfNotWorktree(t *testing.T) {
	_, ok := MainRepoOf(t.TempDir())
	assert.False(t, ok)

	_, ok = MainRepoOf(setupTestRepo(t))
	assert.False(t, ok, "a main repository has a .git directory, not a pointer")
}

// TestMainRepoFromRealWorktree checks the pointer written by git itself.
func TestMainRepoFromRealWorktree(t *testing.T) {
	repoPath := setupTestRepo(t)
	wtPath, err := NewManager(nil).Add(context.Background(), repoPath, "pointer")
	require.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(wtPath, ".git"))
	require.NoError(t, err)

	root, ok := MainRepoFromPointer(string(content))
	require.True(t, ok)
	assert.True(t, SamePath(repoPath, root))

	assert.True(t, IsWorktree(wtPath))
	resolved, ok := MainRepoOf(wtPath)
	require.True(t, ok)
	assert.True(t, SamePath(repoPath, resolved))
}

func TestSamePath(t *testing.T) {
	dir := t.TempDir()
	assert.True(t, SamePath(dir, dir+string(filepath.Separator)))
	assert.True(t, SamePath(dir, filepath.Join(dir, "sub", "..")))
	assert.False(t, SamePath(dir, filepath.Join(dir, "sub")))
	assert.False(t, SamePath("", dir))
}
