package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/LeJawa/dev-tools/internal/model"
)

// NewOpenCommand creates the "worktree open" command.
func NewOpenCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "open <id>",
		Short: "Open a worktree in a new editor window",
		Long: `Start the configured editor on the path of a worktree node.

<id> is "<repo>" or "<repo>@<branch>"; a bare branch name is accepted too.
The editor defaults to "code --new-window" and is set with editor.command
and editor.args in .dev-tools.yaml.

Examples:
  dev-tools worktree open feature-x
  dev-tools worktree open my-repo@feature-x`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			wc, err := newWorkspaceContext(cmd)
			if err != nil {
				return err
			}
			return runOpen(cmd.Context(), wc, args[0])
		},
	}

	return cmd
}

// runOpen is the main logic function for the open command.
// It resolves the node in a fresh tree and starts the editor on its path
// without waiting for the editor to exit.
func runOpen(ctx context.Context, wc *workspaceContext, id string) error {
	node, err := wc.lookupNode(wc.provider(ctx), id)
	if err != nil {
		return err
	}

	editor := wc.Settings.Editor
	args := append(append([]string(nil), editor.Args...), node.Path)
	VerboseLog("Running %s %s", editor.Command, strings.Join(args, " "))

	if err := deps.startEditor(editor.Command, args...); err != nil {
		return model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("failed to start editor %q", editor.Command), err)
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(map[string]string{
			"opened": node.ID(),
			"path":   node.Path,
		}, "", "  ")
		fmt.Fprintln(wc.Out, string(data))
		return nil
	}
	fmt.Fprintf(wc.Out, "Opened %s (%s)\n", node.ID(), node.Path)
	return nil
}
