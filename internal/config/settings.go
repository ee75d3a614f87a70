package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/LeJawa/dev-tools/internal/model"
)

const (
	// WorkspaceSettingsFile is the settings file name looked up in the
	// workspace root.
	WorkspaceSettingsFile = ".dev-tools.yaml"

	// ConfigFilePathEnv overrides configFilePath from the environment.
	ConfigFilePathEnv = "DEV_TOOLS_CONFIG_FILE_PATH"

	defaultEditorCommand = "code"
)

var defaultEditorArgs = []string{"--new-window"}

// Settings are the tool settings of dev-tools.
//
// Example .dev-tools.yaml:
//
//	configFilePath: tools/copy-config.json
//	editor:
//	  command: code
//	  args: ["--new-window"]
type Settings struct {
	// ConfigFilePath is the copy-config path relative to the workspace.
	// Empty disables the copy commands.
	ConfigFilePath string `yaml:"configFilePath"`

	// Editor is the program used to open a worktree in a new window.
	Editor EditorSettings `yaml:"editor"`
}

// EditorSettings describe the command started by "worktree open". The
// worktree path is appended after Args.
type EditorSettings struct {
	Command string   `yaml:"command"`
	Args    []string `yaml:"args"`
}

// HasCopyConfig reports whether a copy-config path is configured, which is
// the capability the copy commands require.
func (s Settings) HasCopyConfig() bool {
	return strings.TrimSpace(s.ConfigFilePath) != ""
}

// Overrides are the values that take precedence over settings files.
type Overrides struct {
	// ConfigFilePath comes from the --config-file flag.
	ConfigFilePath string
}

// LoadSettings reads settings for a workspace. Sources are applied in
// increasing precedence:
//
//  1. the user settings file (see UserSettingsPath)
//  2. <workspace>/.dev-tools.yaml
//  3. the DEV_TOOLS_CONFIG_FILE_PATH environment variable
//  4. overrides
//
// Missing files are skipped. A file that exists but cannot be parsed is an
// error.
func LoadSettings(workspace string, overrides Overrides) (Settings, error) {
	var settings Settings

	if userPath, err := UserSettingsPath(); err == nil {
		if err := mergeSettingsFile(&settings, userPath); err != nil {
			return Settings{}, err
		}
	}

	if err := mergeSettingsFile(&settings, filepath.Join(workspace, WorkspaceSettingsFile)); err != nil {
		return Settings{}, err
	}

	if env := strings.TrimSpace(os.Getenv(ConfigFilePathEnv)); env != "" {
		settings.ConfigFilePath = env
	}
	if overrides.ConfigFilePath != "" {
		settings.ConfigFilePath = overrides.ConfigFilePath
	}

	if strings.TrimSpace(settings.Editor.Command) == "" {
		settings.Editor.Command = defaultEditorCommand
		if settings.Editor.Args == nil {
			settings.Editor.Args = append([]string(nil), defaultEditorArgs...)
		}
	}

	return settings, nil
}

// UserSettingsPath returns $XDG_CONFIG_HOME/dev-tools/settings.yaml, or the
// platform user config directory when XDG_CONFIG_HOME is unset.
func UserSettingsPath() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		var err error
		dir, err = os.UserConfigDir()
		if err != nil {
			return "", err
		}
	}
	return filepath.Join(dir, "dev-tools", "settings.yaml"), nil
}

// mergeSettingsFile decodes path on top of settings. yaml.v3 leaves fields
// absent from the document untouched, which gives the layering.
func mergeSettingsFile(settings *Settings, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return model.WrapCLIError(model.ExitConfigNotFound,
			fmt.Sprintf("Cannot read settings file (%s)", path), err)
	}

	if err := yaml.Unmarshal(data, settings); err != nil {
		return model.WrapCLIError(model.ExitConfigNotFound,
			fmt.Sprintf("Cannot parse settings file (%s)", path), err)
	}
	return nil
}
