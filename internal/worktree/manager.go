package worktree

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/LeJawa/dev-tools/internal/model"
)

// Manager provides the worktree operations behind the dev-tools commands.
// Every git invocation goes through the configured Runner.
type Manager struct {
	runner Runner
}

// NewManager creates a Manager. A nil runner selects the git binary.
func NewManager(runner Runner) *Manager {
	if runner == nil {
		runner = NewGitRunner()
	}
	return &Manager{runner: runner}
}

// List returns the worktrees known to the repository containing dir, in
// the order git prints them.
//
// A line that cannot be parsed is reported in the error while the other
// entries are still returned.
func (m *Manager) List(ctx context.Context, dir string) ([]WorktreeInfo, error) {
	output, err := m.runner.Run(ctx, dir, "worktree", "list")
	if err != nil {
		return nil, err
	}
	return ParseListOutput(output)
}

// Add creates a worktree for a new branch as a sibling of dir by running
// `git worktree add ../<branch>` from dir. The branch name is validated
// first. It returns the path of the new worktree.
func (m *Manager) Add(ctx context.Context, dir, branch string) (string, error) {
	if err := model.ValidateBranchName(branch); err != nil {
		return "", model.WrapCLIError(model.ExitGeneralError, "invalid branch name", err)
	}

	if _, err := m.runner.Run(ctx, dir, "worktree", "add", "../"+branch); err != nil {
		return "", err
	}
	return filepath.Join(filepath.Dir(filepath.Clean(dir)), branch), nil
}

// Remove runs `git worktree remove <branch>` from dir. Git resolves the
// argument as a worktree path or a unique worktree directory name, which
// matches worktrees created by Add.
func (m *Manager) Remove(ctx context.Context, dir, branch string) error {
	_, err := m.runner.Run(ctx, dir, "worktree", "remove", branch)
	return err
}

// IsWorktree reports whether path is a linked worktree, i.e. its .git entry
// is a file starting with "gitdir:" rather than a directory.
func IsWorktree(path string) bool {
	_, ok := readPointer(path)
	return ok
}

// readPointer returns the contents of path's .git pointer file. ok is false
// when .git is missing, is a directory, or does not start with "gitdir:".
func readPointer(path string) (content string, ok bool) {
	gitPath := filepath.Join(path, ".git")

	// Lstat: a symlinked .git directory is not a pointer file.
	info, err := os.Lstat(gitPath)
	if err != nil || info.IsDir() {
		return "", false
	}

	data, err := os.ReadFile(gitPath)
	if err != nil || !strings.HasPrefix(string(data), "gitdir:") {
		return "", false
	}
	return string(data), true
}

// MainRepoOf returns the main repository root of the linked worktree at
// worktreePath. A relative gitdir (git writes those when
// worktree.useRelativePaths is set) is resolved against worktreePath, so
// the result is absolute whenever worktreePath is. ok is false when
// worktreePath is not a linked worktree or its pointer does not name a
// main repository.
func MainRepoOf(worktreePath string) (root string, ok bool) {
	content, ok := readPointer(worktreePath)
	if !ok {
		return "", false
	}
	root, ok = MainRepoFromPointer(content)
	if !ok {
		return "", false
	}
	if !filepath.IsAbs(root) {
		root = filepath.Join(worktreePath, root)
	}
	return filepath.Clean(root), true
}

// gitdirPattern extracts the main repository root from a linked worktree
// pointer such as "gitdir: /src/app/.git/worktrees/feature-x".
var gitdirPattern = regexp.MustCompile(`gitdir: (.*)\.git[/\\]worktrees[/\\].*`)

// MainRepoFromPointer returns the main repository root named by the
// contents of a linked worktree's .git file, as written: a relative gitdir
// stays relative. ok is false when the content is not a worktree pointer
// (for example a submodule pointer). Use MainRepoOf to get a root resolved
// against the worktree.
func MainRepoFromPointer(content string) (root string, ok bool) {
	match := gitdirPattern.FindStringSubmatch(content)
	if match == nil || match[1] == "" {
		return "", false
	}
	return filepath.Clean(match[1]), true
}

// SamePath reports whether two paths name the same directory: their
// relative path is empty after cleaning, or they resolve to the same
// location through symlinks.
func SamePath(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	if rel, err := filepath.Rel(a, b); err == nil && rel == "." {
		return true
	}

	ra, errA := filepath.EvalSymlinks(a)
	rb, errB := filepath.EvalSymlinks(b)
	if errA != nil || errB != nil {
		return false
	}
	return filepath.Clean(ra) == filepath.Clean(rb)
}
