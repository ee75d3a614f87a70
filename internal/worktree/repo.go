package worktree

import (
	"path/filepath"
	"strings"

	git "github.com/go-git/go-git/v5"
)

// RepoName returns the display name of the repository checked out at
// workspacePath: the last segment of the origin remote URL without its
// ".git" suffix, or the workspace directory name when there is no usable
// origin.
func RepoName(workspacePath string) string {
	fallback := filepath.Base(filepath.Clean(workspacePath))

	repo, err := git.PlainOpenWithOptions(workspacePath, &git.PlainOpenOptions{
		DetectDotGit: true,
		// Linked worktrees keep their remotes in the main repository's
		// common directory.
		EnableDotGitCommonDir: true,
	})
	if err != nil {
		return fallback
	}

	remote, err := repo.Remote(git.DefaultRemoteName)
	if err != nil {
		return fallback
	}
	urls := remote.Config().URLs
	if len(urls) == 0 {
		return fallback
	}

	if name := RepoNameFromURL(urls[0]); name != "" {
		return name
	}
	return fallback
}

// RepoNameFromURL extracts the repository name from a remote URL:
//
//	https://github.com/org/app.git → app
//	git@github.com:org/app.git     → app
//	git@host:app                   → app
//	C:\src\app                     → app
func RepoNameFromURL(url string) string {
	url = strings.TrimSpace(strings.ReplaceAll(url, "\\", "/"))
	url = strings.TrimRight(url, "/")

	if idx := strings.LastIndexAny(url, "/:"); idx >= 0 {
		url = url[idx+1:]
	}
	return strings.TrimSuffix(url, ".git")
}
