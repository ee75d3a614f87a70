// Package model defines the domain types shared by the dev-tools packages.
//
// Worktree nodes and trees are transient: they are rebuilt from
// `git worktree list` output on every refresh and never persisted.
// The copy-config and package manifest types mirror the JSON files
// the propagation flow reads from disk.
package model
