package worktree

import (
	"errors"
	"fmt"
	"strings"
)

// WorktreeInfo holds one entry of `git worktree list` output.
//
// Example human-readable output:
//
//	/path/to/main         abc1234 [main]
//	/path/to/feature dir  def5678 [feature-x] locked
//	/path/to/detached     0123abc (detached HEAD)
type WorktreeInfo struct {
	// Path is the absolute filesystem path to the worktree directory.
	Path string

	// HEAD is the abbreviated commit the worktree points at. Empty when git
	// omitted it (bare repositories, or output written without commits).
	HEAD string

	// Branch is the short branch name without brackets. Empty for detached
	// and bare entries.
	Branch string

	// IsBare marks the "(bare)" entry of a bare repository.
	IsBare bool

	// Detached marks a worktree in detached HEAD state.
	Detached bool

	// Locked and Prunable mirror the trailing flags git may print.
	Locked   bool
	Prunable bool
}

// Annotations git prints in place of "[branch]".
const (
	detachedMarker = "(detached HEAD)"
	bareMarker     = "(bare)"
)

// ParseListOutput parses the human-readable output of `git worktree list`.
//
// Empty lines are skipped. Lines that do not follow the grammar are
// reported in the returned error while the well-formed entries are still
// returned, in git's order.
func ParseListOutput(output string) ([]WorktreeInfo, error) {
	var (
		worktrees []WorktreeInfo
		errs      []error
	)

	for i, line := range strings.Split(output, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		info, err := ParseListLine(line)
		if err != nil {
			errs = append(errs, fmt.Errorf("line %d: %w", i+1, err))
			continue
		}
		worktrees = append(worktrees, info)
	}

	return worktrees, errors.Join(errs...)
}

// ParseListLine parses a single `git worktree list` line:
//
//	line       = path SP [ commit SP ] annotation *( SP flag )
//	annotation = "[" branch "]" | "(detached HEAD)" | "(bare)"
//	flag       = "locked" | "prunable"
//
// The line is consumed from the right, so a path that contains spaces is
// kept intact. A path whose last space-separated word looks like a commit
// hash is ambiguous and is read as path + commit.
func ParseListLine(line string) (WorktreeInfo, error) {
	var info WorktreeInfo
	rest := strings.TrimRight(line, " \t\r")

flags:
	for {
		trimmed, flag := cutLastWord(rest)
		switch flag {
		case "locked":
			info.Locked = true
		case "prunable":
			info.Prunable = true
		default:
			break flags
		}
		rest = trimmed
	}

	switch {
	case strings.HasSuffix(rest, "]"):
		open := strings.LastIndex(rest, "[")
		if open <= 0 {
			return WorktreeInfo{}, fmt.Errorf("missing worktree path in %q", line)
		}
		info.Branch = rest[open+1 : len(rest)-1]
		if info.Branch == "" {
			return WorktreeInfo{}, fmt.Errorf("empty branch name in %q", line)
		}
		rest = rest[:open]
	case strings.HasSuffix(rest, detachedMarker):
		info.Detached = true
		rest = strings.TrimSuffix(rest, detachedMarker)
	case strings.HasSuffix(rest, bareMarker):
		info.IsBare = true
		rest = strings.TrimSuffix(rest, bareMarker)
	default:
		return WorktreeInfo{}, fmt.Errorf("no branch annotation in %q", line)
	}

	rest = strings.TrimRight(rest, " \t")
	if trimmed, word := cutLastWord(rest); trimmed != "" && isCommitHash(word) {
		info.HEAD = word
		rest = trimmed
	}

	info.Path = strings.TrimSpace(rest)
	if info.Path == "" {
		return WorktreeInfo{}, fmt.Errorf("missing worktree path in %q", line)
	}
	return info, nil
}

// cutLastWord splits s at its last run of spaces. prefix is empty when s is
// a single word.
func cutLastWord(s string) (prefix, word string) {
	idx := strings.LastIndexAny(s, " \t")
	if idx < 0 {
		return "", s
	}
	return strings.TrimRight(s[:idx], " \t"), s[idx+1:]
}

// isCommitHash reports whether s looks like an abbreviated or full SHA-1 or
// SHA-256 object name.
func isCommitHash(s string) bool {
	if len(s) < 4 || len(s) > 64 {
		return false
	}
	for _, r := range s {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
			return false
		}
	}
	return true
}
