package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/LeJawa/dev-tools/internal/config"
)

// NewConfigShowCommand creates the "config show" command.
func NewConfigShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the resolved copy-config",
		Long: `Locate the copy-config the copy commands would use and print it.

In a linked worktree without its own copy-config, the file of the main
repository is used.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			wc, err := newWorkspaceContext(cmd)
			if err != nil {
				return err
			}
			return runConfigShow(wc)
		},
	}

	return cmd
}

// runConfigShow is the main logic function for the config show command.
func runConfigShow(wc *workspaceContext) error {
	cfg, err := config.LoadCopyConfig(wc.Workspace, wc.Settings.ConfigFilePath)
	if err != nil {
		return err
	}

	if IsJSONOutput() {
		data, err := json.MarshalIndent(map[string]interface{}{
			"path":         cfg.Path,
			"fromMainRepo": cfg.FromMainRepo,
			"config":       cfg.CopyConfig,
		}, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON output: %w", err)
		}
		fmt.Fprintln(wc.Out, string(data))
		return nil
	}

	fmt.Fprintf(wc.Out, "Config file:  %s\n", cfg.Path)
	if cfg.FromMainRepo {
		fmt.Fprintln(wc.Out, "              (from the main repository)")
	}
	fmt.Fprintf(wc.Out, "Dependents:   %s\n", joinOrDash(cfg.Dependents))
	fmt.Fprintf(wc.Out, "Dependencies: %s\n", joinOrDash(cfg.Dependencies))
	fmt.Fprintf(wc.Out, "Files:        %s\n", joinOrDash(cfg.FilesToCopy))
	return nil
}

// joinOrDash joins values with ", ", or returns "-" when there are none.
func joinOrDash(values []string) string {
	if len(values) == 0 {
		return "-"
	}
	return strings.Join(values, ", ")
}
