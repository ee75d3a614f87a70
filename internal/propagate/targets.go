package propagate

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/LeJawa/dev-tools/internal/model"
)

// AllOption is the picker entry that selects every target.
const AllOption = "All"

// Target is one consumer project that receives copied files.
type Target struct {
	// Label is "<dependent dir name>/<project dir name>", shown in the
	// picker and accepted by --target.
	Label string `json:"label"`

	// Path is the absolute path of the consumer project.
	Path string `json:"path"`
}

// ResolveTargets lists the immediate subdirectories of every dependent
// directory. Relative dependents are resolved against workspace. Targets
// keep the order of the dependents, then directory order.
func ResolveTargets(workspace string, dependents []string) ([]Target, error) {
	var targets []Target
	seen := make(map[string]bool)

	for _, dependent := range dependents {
		dir := dependent
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(workspace, dir)
		}
		dir = filepath.Clean(dir)

		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, model.WrapCLIError(model.ExitFilesystemError,
				fmt.Sprintf("cannot read dependents directory %s", dir), err)
		}

		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			path := filepath.Join(dir, entry.Name())
			label := filepath.Join(filepath.Base(dir), entry.Name())
			if seen[label] {
				// Two dependents share a directory name; fall back to
				// the full path so labels stay unique.
				label = path
			}
			seen[label] = true
			targets = append(targets, Target{Label: label, Path: path})
		}
	}

	return targets, nil
}

// Options returns the picker entries: AllOption followed by every label.
func Options(targets []Target) []string {
	options := make([]string, 0, len(targets)+1)
	options = append(options, AllOption)
	for _, t := range targets {
		options = append(options, t.Label)
	}
	return options
}

// SelectTargets returns the targets matching a picker choice: all of them
// for AllOption, otherwise the one with that label.
func SelectTargets(targets []Target, choice string) ([]Target, error) {
	if choice == AllOption {
		return targets, nil
	}
	choice = filepath.FromSlash(choice)
	for _, t := range targets {
		if t.Label == choice {
			return []Target{t}, nil
		}
	}
	return nil, model.NewCLIError(model.ExitGeneralError,
		fmt.Sprintf("unknown target %q", choice))
}
