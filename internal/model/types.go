package model

import (
	"fmt"
	"regexp"
	"strings"
)

// WorktreeNode identifies either a repository (Branch empty) or one of its
// worktrees. Nodes are created fresh for every tree snapshot.
type WorktreeNode struct {
	// Repo is the repository name, shared by the root and its children.
	Repo string `json:"repo"`

	// Branch is the branch checked out in the worktree. Empty for the
	// repository root node.
	Branch string `json:"branch,omitempty"`

	// Path is the absolute filesystem path of the worktree. For the root
	// node this is the workspace path the tree was built from.
	Path string `json:"path,omitempty"`

	// Current marks the worktree whose path is the current workspace.
	Current bool `json:"current"`
}

// NewRepoNode creates the root node for a repository.
func NewRepoNode(repo, path string) WorktreeNode {
	return WorktreeNode{Repo: repo, Path: path}
}

// NewWorktreeNode creates a child node for a branch worktree.
func NewWorktreeNode(repo, branch, path string, current bool) WorktreeNode {
	return WorktreeNode{Repo: repo, Branch: branch, Path: path, Current: current}
}

// ID returns "repo" for repository nodes and "repo@branch" for worktrees.
func (n WorktreeNode) ID() string {
	if n.Branch == "" {
		return n.Repo
	}
	return n.Repo + "@" + n.Branch
}

// IsRepo reports whether the node is a repository root.
func (n WorktreeNode) IsRepo() bool {
	return n.Branch == ""
}

// Tree is one snapshot of the worktree view: repository ids mapped to their
// ordered child ids, and every id mapped to its node.
//
// The root repository always has a Children entry, even with no worktrees.
// A Tree is replaced wholesale on refresh and never patched in place.
type Tree struct {
	// Root is the id of the repository node.
	Root string

	// WorkspacePath is the path the snapshot was built from.
	WorkspacePath string

	// Children maps a repository id to the ids of its worktrees,
	// in the order git listed them.
	Children map[string][]string

	// Nodes maps every id in the snapshot to its node.
	Nodes map[string]WorktreeNode
}

// NewTree creates a snapshot holding only the repository node.
func NewTree(repo, workspacePath string) Tree {
	root := NewRepoNode(repo, workspacePath)
	return Tree{
		Root:          root.ID(),
		WorkspacePath: workspacePath,
		Children:      map[string][]string{root.ID(): {}},
		Nodes:         map[string]WorktreeNode{root.ID(): root},
	}
}

// AddWorktree appends a worktree node under the root. A node whose id is
// already present is ignored so ids stay unique within the snapshot.
func (t *Tree) AddWorktree(node WorktreeNode) bool {
	id := node.ID()
	if _, exists := t.Nodes[id]; exists {
		return false
	}
	t.Nodes[id] = node
	t.Children[t.Root] = append(t.Children[t.Root], id)
	return true
}

// Roots returns the repository nodes of the snapshot.
func (t Tree) Roots() []WorktreeNode {
	if root, ok := t.Nodes[t.Root]; ok {
		return []WorktreeNode{root}
	}
	return nil
}

// ChildrenOf returns the worktree nodes under the given node.
// Worktree nodes have no children.
func (t Tree) ChildrenOf(node WorktreeNode) []WorktreeNode {
	ids := t.Children[node.ID()]
	nodes := make([]WorktreeNode, 0, len(ids))
	for _, id := range ids {
		if n, ok := t.Nodes[id]; ok {
			nodes = append(nodes, n)
		}
	}
	return nodes
}

// Lookup finds a node by id.
func (t Tree) Lookup(id string) (WorktreeNode, bool) {
	n, ok := t.Nodes[id]
	return n, ok
}

// Current returns the worktree flagged as the current workspace, if any.
func (t Tree) Current() (WorktreeNode, bool) {
	for _, id := range t.Children[t.Root] {
		if n := t.Nodes[id]; n.Current {
			return n, true
		}
	}
	return WorktreeNode{}, false
}

// branchNameRegex matches one or more alphanumerics or hyphens. The
// "no double hyphen" half of the rule is checked separately because RE2
// has no lookahead.
var branchNameRegex = regexp.MustCompile(`^[a-zA-Z0-9-]+$`)

// ValidateBranchName checks a branch name entered for a new worktree.
func ValidateBranchName(name string) error {
	if name == "" {
		return fmt.Errorf("branch name must not be empty")
	}
	if !branchNameRegex.MatchString(name) || strings.Contains(name, "--") {
		return fmt.Errorf("invalid branch name %q: use letters, digits and single hyphens only", name)
	}
	return nil
}

// CopyConfig is the copy-config file that drives file propagation.
//
//	{ "dependents": ["../apps"], "dependencies": [], "filesToCopy": ["dist/**/*.js"] }
type CopyConfig struct {
	// Dependents are directories whose immediate subdirectories are the
	// copy targets. Relative paths are resolved against the workspace.
	Dependents []string `json:"dependents"`

	// Dependencies is reserved for the copy-from-dependencies direction,
	// which is not implemented.
	Dependencies []string `json:"dependencies"`

	// FilesToCopy are glob patterns relative to the workspace root.
	FilesToCopy []string `json:"filesToCopy"`
}

// PackageManifest is the subset of package.json that propagation reads.
type PackageManifest struct {
	Name  string   `json:"name"`
	Files []string `json:"files"`
}

// IsComplete reports whether both name and files are declared.
func (m PackageManifest) IsComplete() bool {
	return m.Name != "" && m.Files != nil
}
