// Package cli implements the cobra-based CLI commands for dev-tools.
//
// Commands are grouped under "worktree", "copy" and "config", each defined
// in its own file. This file defines the root command, the global flags and
// the command table that attaches every subcommand to its group.
package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/LeJawa/dev-tools/internal/model"
)

// Global flag variables shared across all subcommands.
// These are bound to cobra persistent flags on the root command,
// which makes them available to every subcommand automatically.
var (
	// jsonOutput controls whether command output is formatted as JSON.
	jsonOutput bool

	// verbose enables detailed logging output on stderr.
	verbose bool

	// workspaceDir is the workspace root. Empty means the current directory.
	workspaceDir string

	// configFile overrides the configFilePath setting.
	configFile string
)

// Version, Commit, and Date are set at build time via ldflags.
// They are injected from the main package to display version information.
var (
	// Version is the semantic version of the binary (e.g., "1.0.0").
	Version = "dev"

	// Commit is the Git commit hash the binary was built from.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// NewRootCommand creates and configures the root cobra command.
// The root command itself does nothing; it carries the help text and the
// global flags.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "dev-tools",
		Short: "Git worktree browser and package file propagator",
		Long: `dev-tools shows the git worktrees of a repository as a tree and opens,
adds or removes them. When a copy-config is configured it also copies a
package's files into the node_modules of its dependent projects.`,

		// Error output is formatted by Execute (text or JSON).
		SilenceUsage:  true,
		SilenceErrors: true,

		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),
	}

	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVar(&workspaceDir, "workspace", "", "Workspace root (default: current directory)")
	rootCmd.PersistentFlags().StringVar(&configFile, "config-file", "", "Copy-config path relative to the workspace")

	// Group commands only carry help text; the command table below
	// attaches the runnable subcommands to them.
	groups := map[string]*cobra.Command{
		"worktree": {
			Use:   "worktree",
			Short: "Browse and manage the git worktrees of the workspace",
		},
		"copy": {
			Use:   "copy",
			Short: "Copy package files between dependent projects",
		},
		"config": {
			Use:   "config",
			Short: "Inspect the resolved copy-config",
		},
	}
	for _, name := range []string{"worktree", "copy", "config"} {
		rootCmd.AddCommand(groups[name])
	}

	// The required capability travels as an annotation so that
	// newWorkspaceContext can enforce it once the settings are loaded.
	for _, entry := range commandTable() {
		cmd := entry.build()
		if entry.requires != capabilityNone {
			if cmd.Annotations == nil {
				cmd.Annotations = map[string]string{}
			}
			cmd.Annotations[requiresAnnotation] = string(entry.requires)
		}
		groups[entry.group].AddCommand(cmd)
	}

	return rootCmd
}

// Execute runs the root command and handles exit codes.
// CLIError values carry their own exit code; other errors exit with 1.
func Execute(rootCmd *cobra.Command) {
	if err := rootCmd.Execute(); err != nil {
		if cliErr, ok := err.(*model.CLIError); ok {
			printError(cliErr.Message, cliErr.Err)
			os.Exit(int(cliErr.Code))
		}

		printError(err.Error(), nil)
		os.Exit(int(model.ExitGeneralError))
	}
}

// printError outputs an error message in the appropriate format
// (JSON or text) based on the --json global flag.
func printError(message string, underlying error) {
	if jsonOutput {
		errObj := map[string]interface{}{
			"error": map[string]interface{}{
				"message": message,
			},
		}
		if underlying != nil {
			if errMap, ok := errObj["error"].(map[string]interface{}); ok {
				errMap["detail"] = underlying.Error()
			}
		}
		// stdout is reserved for successful command output.
		data, _ := json.MarshalIndent(errObj, "", "  ")
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		if underlying != nil {
			fmt.Fprintf(os.Stderr, "Error: %s: %v\n", message, underlying)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %s\n", message)
		}
	}
}

// VerboseLog prints a message to stderr only when verbose mode is enabled.
func VerboseLog(format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(os.Stderr, "[verbose] "+format+"\n", args...)
	}
}

// IsJSONOutput returns whether the --json flag is set.
func IsJSONOutput() bool {
	return jsonOutput
}
