package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/LeJawa/dev-tools/internal/model"
	"github.com/LeJawa/dev-tools/internal/prompt"
)

// removeFlags holds the flag values for the remove command.
type removeFlags struct {
	yes bool
}

// Options of the removal confirmation, in display order.
const (
	confirmCancel = "Cancel"
	confirmYes    = "Yes"
)

// NewRemoveCommand creates the "worktree remove" command.
func NewRemoveCommand() *cobra.Command {
	flags := &removeFlags{}

	cmd := &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a worktree",
		Long: `Remove a worktree with "git worktree remove <branch>" run in the node's
path, then delete the node's directory if it is empty.

The repository node cannot be removed. A confirmation is asked for unless
--yes is given.

Examples:
  dev-tools worktree remove feature-x
  dev-tools worktree remove my-repo@feature-x --yes`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			wc, err := newWorkspaceContext(cmd)
			if err != nil {
				return err
			}
			return runRemove(cmd.Context(), wc, args[0], flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.yes, "yes", "y", false, "Skip the confirmation")

	return cmd
}

// runRemove is the main logic function for the remove command.
//
// After the confirmation, git worktree remove runs in the node path, then
// the node directory is removed non-recursively whatever git reported, so
// an empty leftover directory disappears while a populated one stays.
// Both failures are logged. The tree is refreshed and printed before the
// git error, if any, is returned.
func runRemove(ctx context.Context, wc *workspaceContext, id string, flags *removeFlags) error {
	p := wc.provider(ctx)
	node, err := wc.lookupNode(p, id)
	if err != nil {
		return err
	}
	if node.Branch == "" {
		VerboseLog("%s has no branch, nothing to remove", node.ID())
		return nil
	}

	if !flags.yes {
		if !deps.interactive() {
			return model.NewCLIError(model.ExitGeneralError,
				"no terminal to confirm the removal: pass --yes")
		}
		choice, err := deps.prompter().Select(
			fmt.Sprintf("Remove worktree %s?", node.ID()),
			[]string{confirmCancel, confirmYes})
		if err != nil && !errors.Is(err, prompt.ErrCancelled) {
			return err
		}
		if choice != confirmYes {
			return model.NewCLIError(model.ExitUserCancelled, "operation cancelled by user")
		}
	}

	gitErr := wc.Manager.Remove(ctx, node.Path, node.Branch)
	if gitErr != nil {
		VerboseLog("git worktree remove failed: %v", gitErr)
	}

	// Non-recursive: only succeeds when git already removed the contents.
	if err := os.Remove(node.Path); err != nil && !os.IsNotExist(err) {
		VerboseLog("Removing %s failed: %v", node.Path, err)
	}

	if err := p.Refresh(ctx); err != nil {
		VerboseLog("Listing worktrees failed: %v", err)
	}
	if gitErr == nil && !IsJSONOutput() {
		fmt.Fprintf(wc.Out, "Removed worktree %s\n", node.ID())
	}
	if err := wc.printTree(p); err != nil {
		return err
	}
	return gitErr
}
