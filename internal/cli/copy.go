package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/LeJawa/dev-tools/internal/config"
	"github.com/LeJawa/dev-tools/internal/model"
	"github.com/LeJawa/dev-tools/internal/prompt"
	"github.com/LeJawa/dev-tools/internal/propagate"
)

// copyFlags holds the flag values for the to-dependents command.
type copyFlags struct {
	all    bool
	target string
}

// NewCopyToDependentsCommand creates the "copy to-dependents" command.
func NewCopyToDependentsCommand() *cobra.Command {
	flags := &copyFlags{}

	cmd := &cobra.Command{
		Use:   "to-dependents",
		Short: "Copy this package's files into its dependents' node_modules",
		Long: `Copy the files matched by filesToCopy into
<dependent>/<project>/node_modules/<package name>/ for the chosen projects.

Projects are the immediate subdirectories of every "dependents" entry of
the copy-config. Every destination directory must already exist. Files are
overwritten.

Examples:
  dev-tools copy to-dependents
  dev-tools copy to-dependents --all
  dev-tools copy to-dependents --target apps/web`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			wc, err := newWorkspaceContext(cmd)
			if err != nil {
				return err
			}
			return runCopyToDependents(wc, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.all, "all", false, "Copy into every dependent project")
	cmd.Flags().StringVar(&flags.target, "target", "", "Copy into one project, by label")
	cmd.MarkFlagsMutuallyExclusive("all", "target")

	return cmd
}

// runCopyToDependents is the main logic function for the to-dependents
// command. It loads the copy-config, then hands the workspace to
// propagate.CopyToDependents with a chooser built from the flags. Copies
// are listed as they happen in text mode and as one report with --json.
func runCopyToDependents(wc *workspaceContext, flags *copyFlags) error {
	cfg, err := config.LoadCopyConfig(wc.Workspace, wc.Settings.ConfigFilePath)
	if err != nil {
		return err
	}
	VerboseLog("Loaded copy-config %s (from main repo: %t)", cfg.Path, cfg.FromMainRepo)

	req := propagate.Request{
		Workspace: wc.Workspace,
		Config:    cfg.CopyConfig,
		Choose:    chooserFor(flags),
	}
	if !IsJSONOutput() {
		req.OnCopy = func(c propagate.Copy) {
			fmt.Fprintf(wc.Out, "- %s -> %s\n", c.File, c.Destination)
		}
	}

	report, err := propagate.CopyToDependents(req)
	if err != nil {
		return err
	}
	if report.Cancelled {
		VerboseLog("Copy cancelled")
	}

	if IsJSONOutput() {
		if report.Targets == nil {
			report.Targets = []propagate.Target{}
		}
		if report.Copies == nil {
			report.Copies = []propagate.Copy{}
		}
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON output: %w", err)
		}
		fmt.Fprintln(wc.Out, string(data))
	}
	return nil
}

// chooserFor picks targets from the flags, or from an interactive picker
// when neither --all nor --target is set.
func chooserFor(flags *copyFlags) propagate.Chooser {
	return func(options []string) (string, bool, error) {
		switch {
		case flags.all:
			return propagate.AllOption, true, nil
		case flags.target != "":
			return flags.target, true, nil
		case !deps.interactive():
			return "", false, model.NewCLIError(model.ExitGeneralError,
				"no terminal to pick a target: pass --all or --target")
		}

		choice, err := deps.prompter().Select("Select an option", options)
		if errors.Is(err, prompt.ErrCancelled) {
			return "", false, nil
		}
		if err != nil {
			return "", false, err
		}
		return choice, true, nil
	}
}

// NewCopyFromDependenciesCommand creates the "copy from-dependencies"
// command, which is not implemented yet.
func NewCopyFromDependenciesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "from-dependencies",
		Short: "Copy dependencies' files into this package (not implemented)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := newWorkspaceContext(cmd); err != nil {
				return err
			}
			return propagate.CopyFromDependencies()
		},
	}
}
