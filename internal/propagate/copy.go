package propagate

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/LeJawa/dev-tools/internal/model"
)

// Copy is one planned file copy.
type Copy struct {
	// File is the path relative to the workspace.
	File string `json:"file"`

	Source      string `json:"source"`
	Destination string `json:"destination"`
	Target      string `json:"target"`
}

// Plan lists every copy of one propagation run.
type Plan struct {
	Copies []Copy
}

// BuildPlan computes <target>/<prefix>/<file> for every target and file and
// checks that each destination directory already exists. A missing
// directory fails the whole plan.
func BuildPlan(workspace, prefix string, targets []Target, files []string) (Plan, error) {
	var plan Plan
	checked := make(map[string]bool)

	for _, target := range targets {
		for _, file := range files {
			dest := filepath.Join(target.Path, prefix, file)
			dir := filepath.Dir(dest)

			if !checked[dir] {
				info, err := os.Stat(dir)
				if err != nil || !info.IsDir() {
					return Plan{}, model.WrapCLIError(model.ExitFilesystemError,
						fmt.Sprintf("destination directory does not exist: %s", dir), err)
				}
				checked[dir] = true
			}

			plan.Copies = append(plan.Copies, Copy{
				File:        file,
				Source:      filepath.Join(workspace, file),
				Destination: dest,
				Target:      target.Label,
			})
		}
	}

	return plan, nil
}

// Execute performs the planned copies in order, overwriting existing
// destinations. onCopy, when set, is called after each successful copy.
// The first failure stops the run.
func (p Plan) Execute(onCopy func(Copy)) error {
	for _, c := range p.Copies {
		if err := copyFile(c.Source, c.Destination); err != nil {
			return model.WrapCLIError(model.ExitFilesystemError,
				fmt.Sprintf("cannot copy %s to %s", c.File, c.Destination), err)
		}
		if onCopy != nil {
			onCopy(c)
		}
	}
	return nil
}

// copyFile copies src over dst, keeping the permission bits of src.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
