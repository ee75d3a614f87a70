package propagate

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/LeJawa/dev-tools/internal/model"
)

// ExpandFiles expands the copy-config globs against workspace and returns
// the matched regular files as paths relative to workspace, in pattern
// order without duplicates. "**" matches any number of directories.
func ExpandFiles(workspace string, patterns []string) ([]string, error) {
	var files []string
	seen := make(map[string]bool)
	fsys := os.DirFS(workspace)

	for _, pattern := range patterns {
		matches, err := expandPattern(fsys, workspace, pattern)
		if err != nil {
			return nil, model.WrapCLIError(model.ExitFilesystemError,
				fmt.Sprintf("cannot expand pattern %q", pattern), err)
		}
		sort.Strings(matches)
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				files = append(files, m)
			}
		}
	}

	return files, nil
}

// expandPattern globs inside the workspace FS when the pattern stays within
// it, and falls back to a filesystem glob for absolute patterns or ones
// that climb out with "..".
func expandPattern(fsys fs.FS, workspace, pattern string) ([]string, error) {
	slashed := path.Clean(strings.TrimPrefix(filepath.ToSlash(pattern), "./"))

	if !filepath.IsAbs(pattern) && fs.ValidPath(slashed) {
		matches, err := doublestar.Glob(fsys, slashed, doublestar.WithFilesOnly())
		if err != nil {
			return nil, err
		}
		for i, m := range matches {
			matches[i] = filepath.FromSlash(m)
		}
		return matches, nil
	}

	full := pattern
	if !filepath.IsAbs(full) {
		full = filepath.Join(workspace, pattern)
	}
	matches, err := doublestar.FilepathGlob(full, doublestar.WithFilesOnly())
	if err != nil {
		return nil, err
	}
	for i, m := range matches {
		rel, relErr := filepath.Rel(workspace, m)
		if relErr != nil {
			return nil, relErr
		}
		matches[i] = rel
	}
	return matches, nil
}
