package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/jsonc"

	"github.com/LeJawa/dev-tools/internal/model"
	"github.com/LeJawa/dev-tools/internal/worktree"
)

// CopyConfigFile is a loaded copy-config together with where it was found.
type CopyConfigFile struct {
	model.CopyConfig

	// Path is the absolute path the config was read from.
	Path string

	// FromMainRepo is true when the workspace is a linked worktree and the
	// file was found in the main repository instead.
	FromMainRepo bool
}

// ResolveCopyConfigPath locates the copy-config for a workspace.
//
// The file is first looked up at <workspace>/<relativeConfigFile>. If it is
// not there and the workspace's .git is a linked worktree pointer
// ("gitdir: <root>/.git/worktrees/<name>"), it is looked up at
// <root>/<relativeConfigFile>. Failures carry the user-facing messages
// "Cannot find config file (<path>)" and "Cannot find main repo".
func ResolveCopyConfigPath(workspace, relativeConfigFile string) (path string, fromMainRepo bool, err error) {
	path = joinConfigPath(workspace, relativeConfigFile)
	if fileExists(path) {
		return path, false, nil
	}

	// Maybe a linked worktree with the config living in the main repo.
	if !worktree.IsWorktree(workspace) {
		return "", false, configNotFound(path)
	}

	mainRepo, ok := worktree.MainRepoOf(workspace)
	if !ok {
		return "", false, model.NewCLIError(model.ExitConfigNotFound, "Cannot find main repo")
	}

	path = joinConfigPath(mainRepo, relativeConfigFile)
	if !fileExists(path) {
		return "", false, configNotFound(path)
	}
	return path, true, nil
}

// LoadCopyConfig resolves and parses the copy-config for a workspace.
// JSON comments and trailing commas are accepted. Every failure is a
// *model.CLIError with ExitConfigNotFound.
func LoadCopyConfig(workspace, relativeConfigFile string) (*CopyConfigFile, error) {
	path, fromMainRepo, err := ResolveCopyConfigPath(workspace, relativeConfigFile)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, model.WrapCLIError(model.ExitConfigNotFound,
			fmt.Sprintf("Cannot read config file (%s)", path), err)
	}

	var cfg model.CopyConfig
	if err := json.Unmarshal(jsonc.ToJSON(data), &cfg); err != nil {
		return nil, model.WrapCLIError(model.ExitConfigNotFound,
			fmt.Sprintf("Cannot parse config file (%s)", path), err)
	}

	return &CopyConfigFile{CopyConfig: cfg, Path: path, FromMainRepo: fromMainRepo}, nil
}

func joinConfigPath(root, rel string) string {
	if filepath.IsAbs(rel) {
		return filepath.Clean(rel)
	}
	return filepath.Join(root, rel)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil || !errors.Is(err, os.ErrNotExist)
}

func configNotFound(path string) *model.CLIError {
	return model.NewCLIError(model.ExitConfigNotFound,
		fmt.Sprintf("Cannot find config file (%s)", path))
}
