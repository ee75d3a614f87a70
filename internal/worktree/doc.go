// Package worktree provides the git side of dev-tools: running git
// subcommands, parsing `git worktree list` output, building the
// repository → worktrees tree, and recognising linked worktrees by their
// `.git` pointer file.
//
// Design decisions:
//   - Worktree operations shell out to `git` through the Runner interface.
//     go-git has no worktree add/remove/list, and the CLI gives the same
//     behavior the user sees in a terminal. go-git is only used for the
//     read-only remote lookup in RepoName.
//   - Arguments are passed as a vector with `git -C <dir>`, never through a
//     shell, so paths and branch names are not interpreted.
//   - The human-readable `git worktree list` output is parsed from the
//     right, so paths containing spaces survive.
//   - All errors from git commands are wrapped in model.CLIError with
//     ExitGitError to enable proper CLI exit code handling.
//
// Tests substitute a fake Runner to feed canned output, and use real
// temporary repositories for the git-backed paths.
package worktree
