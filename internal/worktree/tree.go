package worktree

import (
	"context"

	"github.com/LeJawa/dev-tools/internal/model"
)

// Builder builds worktree tree snapshots from `git worktree list`.
type Builder struct {
	manager *Manager
}

// NewBuilder creates a Builder on top of a Manager.
func NewBuilder(manager *Manager) *Builder {
	return &Builder{manager: manager}
}

// Build returns a fresh snapshot for the repository checked out at
// workspacePath.
//
// The snapshot always contains the repository node pointing at
// workspacePath. Each listed worktree with a branch becomes a child; the
// one whose path is workspacePath is flagged current. Detached and bare
// entries have no branch to key them by and are skipped.
//
// When git fails or some lines cannot be parsed, the error is returned
// alongside the snapshot (root-only for a git failure) so callers can log
// it and still render the tree.
func (b *Builder) Build(ctx context.Context, repoName, workspacePath string) (model.Tree, error) {
	tree := model.NewTree(repoName, workspacePath)

	worktrees, err := b.manager.List(ctx, workspacePath)
	for _, wt := range worktrees {
		if wt.Branch == "" {
			continue
		}
		tree.AddWorktree(model.NewWorktreeNode(
			repoName,
			wt.Branch,
			wt.Path,
			SamePath(workspacePath, wt.Path),
		))
	}

	return tree, err
}
