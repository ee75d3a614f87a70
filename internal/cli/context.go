package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/LeJawa/dev-tools/internal/config"
	"github.com/LeJawa/dev-tools/internal/model"
	"github.com/LeJawa/dev-tools/internal/prompt"
	"github.com/LeJawa/dev-tools/internal/view"
	"github.com/LeJawa/dev-tools/internal/worktree"
)

// capability names what a command needs from the workspace settings before
// it may run.
type capability string

// Capabilities a command can require.
const (
	capabilityNone       capability = ""
	capabilityCopyConfig capability = "copy-config"
)

// requiresAnnotation is the cobra annotation key holding a command's
// required capability.
const requiresAnnotation = "dev-tools/requires"

// commandEntry is one row of the command table.
type commandEntry struct {
	group    string
	build    func() *cobra.Command
	requires capability
}

// commandTable lists every subcommand with its group and required
// capability. Commands gated on capabilityCopyConfig only run when a
// copy-config path is configured.
func commandTable() []commandEntry {
	return []commandEntry{
		{group: "worktree", build: NewListCommand},
		{group: "worktree", build: NewOpenCommand},
		{group: "worktree", build: NewAddCommand},
		{group: "worktree", build: NewRemoveCommand},
		{group: "copy", build: NewCopyToDependentsCommand, requires: capabilityCopyConfig},
		{group: "copy", build: NewCopyFromDependenciesCommand, requires: capabilityCopyConfig},
		{group: "config", build: NewConfigShowCommand, requires: capabilityCopyConfig},
	}
}

// dependencies are the process-level collaborators of the commands.
// Tests replace them with fakes.
type dependencies struct {
	// runner executes git. Nil selects worktree.GitRunner.
	runner worktree.Runner

	// prompter asks the user questions.
	prompter func() prompt.Prompter

	// interactive reports whether prompts can be shown.
	interactive func() bool

	// startEditor launches the editor without waiting for it.
	startEditor func(name string, args ...string) error
}

// deps holds the collaborators used by every command.
var deps = defaultDependencies()

// defaultDependencies wires the real git binary, huh prompts on the
// terminal and a detached editor launch.
func defaultDependencies() dependencies {
	return dependencies{
		prompter: func() prompt.Prompter {
			return prompt.NewHuhPrompter(nil, nil)
		},
		interactive: prompt.IsInteractive,
		startEditor: startDetached,
	}
}

// startDetached starts name with args and releases the process so the
// editor outlives this command.
func startDetached(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	return cmd.Process.Release()
}

// workspaceContext is everything one command invocation knows about the
// workspace. It is built fresh for every invocation.
type workspaceContext struct {
	Workspace string
	Settings  config.Settings
	Manager   *worktree.Manager
	Out       io.Writer
}

// newWorkspaceContext resolves the workspace and its settings for cmd and
// checks the capability the command requires.
func newWorkspaceContext(cmd *cobra.Command) (*workspaceContext, error) {
	dir := workspaceDir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, model.WrapCLIError(model.ExitGeneralError, "cannot determine working directory", err)
		}
		dir = wd
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("invalid workspace path %q", dir), err)
	}

	settings, err := config.LoadSettings(abs, config.Overrides{ConfigFilePath: configFile})
	if err != nil {
		return nil, err
	}
	VerboseLog("Workspace: %s", abs)

	if capability(cmd.Annotations[requiresAnnotation]) == capabilityCopyConfig && !settings.HasCopyConfig() {
		return nil, model.NewCLIError(model.ExitConfigNotFound, fmt.Sprintf(
			"%q requires a copy-config: set configFilePath in %s, %s or --config-file",
			cmd.CommandPath(), config.WorkspaceSettingsFile, config.ConfigFilePathEnv))
	}

	return &workspaceContext{
		Workspace: abs,
		Settings:  settings,
		Manager:   worktree.NewManager(deps.runner),
		Out:       cmd.OutOrStdout(),
	}, nil
}

// provider builds a worktree tree provider for the workspace and refreshes
// it. A failed refresh is logged and leaves the root-only tree.
func (wc *workspaceContext) provider(ctx context.Context) *view.Provider {
	repoName := worktree.RepoName(wc.Workspace)
	p := view.NewProvider(worktree.NewBuilder(wc.Manager), repoName, wc.Workspace)
	if err := p.Refresh(ctx); err != nil {
		VerboseLog("Listing worktrees failed: %v", err)
	}
	return p
}

// lookupNode finds a node by identifier. A bare branch name is accepted as
// shorthand for "<repo>@<branch>".
func (wc *workspaceContext) lookupNode(p *view.Provider, id string) (model.WorktreeNode, error) {
	tree := p.Tree()
	if node, ok := tree.Lookup(id); ok {
		return node, nil
	}
	if !strings.Contains(id, "@") {
		if node, ok := tree.Lookup(tree.Root + "@" + id); ok {
			return node, nil
		}
	}
	return model.WorktreeNode{}, model.NewCLIError(model.ExitNodeNotFound,
		fmt.Sprintf("worktree %q not found", id))
}

// printTree writes the provider's tree in the selected output format.
func (wc *workspaceContext) printTree(p *view.Provider) error {
	if IsJSONOutput() {
		return view.RenderJSON(wc.Out, p.Items())
	}
	return view.RenderText(wc.Out, p.Items())
}
