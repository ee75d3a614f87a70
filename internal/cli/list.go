package cli

import (
	"context"

	"github.com/spf13/cobra"
)

// NewListCommand creates the "worktree list" command.
func NewListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"refresh", "tree"},
		Short:   "Show the repository and its worktrees as a tree",
		Long: `Rebuild the worktree tree from "git worktree list" and print it.

The repository is the root; each worktree with a branch is a child. The
worktree checked out at the workspace path is marked "Current Workspace".

Examples:
  dev-tools worktree list
  dev-tools worktree tree --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			wc, err := newWorkspaceContext(cmd)
			if err != nil {
				return err
			}
			return runList(cmd.Context(), wc)
		},
	}

	return cmd
}

// runList is the main logic function for the list command. It rebuilds
// the tree and prints it; a git failure is logged and the repository node
// alone is printed.
func runList(ctx context.Context, wc *workspaceContext) error {
	p := wc.provider(ctx)
	tree := p.Tree()
	VerboseLog("Found %d worktrees", len(tree.Children[tree.Root]))
	if current, ok := tree.Current(); ok {
		VerboseLog("Current workspace is %s", current.ID())
	} else {
		VerboseLog("Workspace %s is not a listed worktree", tree.WorkspacePath)
	}
	return wc.printTree(p)
}
