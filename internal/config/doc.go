// Package config loads the two configuration sources of dev-tools.
//
//   - Settings: YAML files (user-level, then workspace-level) plus
//     environment and flag overrides. They name the copy-config file and
//     the editor used to open worktrees.
//   - Copy-config: the JSON file (comments allowed, parsed through
//     github.com/tidwall/jsonc) that drives file propagation. When the
//     workspace is a linked git worktree and the file is absent there, it
//     is looked up in the main repository.
//
// Nothing is cached: every command invocation reloads both from disk.
package config
