package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/LeJawa/dev-tools/internal/model"
	"github.com/LeJawa/dev-tools/internal/prompt"
)

// addFlags holds the flag values for the add command.
type addFlags struct {
	branch string
}

// NewAddCommand creates the "worktree add" command.
func NewAddCommand() *cobra.Command {
	flags := &addFlags{}

	cmd := &cobra.Command{
		Use:   "add [<id>]",
		Short: "Create a worktree next to a node",
		Long: `Create a worktree with "git worktree add ../<branch>" run in the node's
path. Without <id> the repository node is used.

The branch name is asked for interactively unless --branch is given. It
must consist of letters, digits and hyphens and must not contain "--".
An empty answer cancels.

Examples:
  dev-tools worktree add
  dev-tools worktree add --branch feature-x
  dev-tools worktree add my-repo@main --branch hotfix-1`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			wc, err := newWorkspaceContext(cmd)
			if err != nil {
				return err
			}
			id := ""
			if len(args) == 1 {
				id = args[0]
			}
			return runAdd(cmd.Context(), wc, id, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.branch, "branch", "b", "", "Branch name of the new worktree")

	return cmd
}

// runAdd is the main logic function for the add command.
//
// Steps:
//  1. Resolve the node the worktree is created next to (default: the
//     repository node).
//  2. Take the branch from --branch or prompt for it.
//  3. Run git worktree add ../<branch> in the node path.
//  4. Refresh and print the tree.
func runAdd(ctx context.Context, wc *workspaceContext, id string, flags *addFlags) error {
	p := wc.provider(ctx)
	if id == "" {
		id = p.Tree().Root
	}
	node, err := wc.lookupNode(p, id)
	if err != nil {
		return err
	}

	branch := flags.branch
	if branch == "" {
		if !deps.interactive() {
			return model.NewCLIError(model.ExitGeneralError,
				"no terminal to ask for a branch name: pass --branch")
		}
		var ok bool
		branch, ok, err = promptBranchName(deps.prompter())
		if err != nil {
			return err
		}
		if !ok {
			VerboseLog("Add cancelled")
			return nil
		}
	} else if err := model.ValidateBranchName(branch); err != nil {
		return model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("invalid branch name %q", branch), err)
	}

	path, err := wc.Manager.Add(ctx, node.Path, branch)
	if err != nil {
		return err
	}
	VerboseLog("Created worktree %s at %s", branch, path)

	if err := p.Refresh(ctx); err != nil {
		VerboseLog("Listing worktrees failed: %v", err)
	}
	if !IsJSONOutput() {
		fmt.Fprintf(wc.Out, "Created worktree %s at %s\n", branch, path)
	}
	return wc.printTree(p)
}

// promptBranchName asks until the answer is a valid branch name. ok is
// false when the user dismissed the prompt or answered with nothing.
func promptBranchName(p prompt.Prompter) (branch string, ok bool, err error) {
	validate := func(s string) error {
		if s == "" {
			return nil
		}
		return model.ValidateBranchName(s)
	}

	for {
		answer, err := p.Input("Name of the worktree branch", "feature-1", validate)
		if errors.Is(err, prompt.ErrCancelled) {
			return "", false, nil
		}
		if err != nil {
			return "", false, err
		}
		if answer == "" {
			return "", false, nil
		}
		if model.ValidateBranchName(answer) == nil {
			return answer, true, nil
		}
		VerboseLog("Rejected branch name %q", answer)
	}
}
