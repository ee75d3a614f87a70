package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestWorktreeNode_ID verifies the derived identifier for repository and
// worktree nodes.
func TestWorktreeNode_ID(t *testing.T) {
	assert.Equal(t, "repo", NewRepoNode("repo", "/ws").ID())
	assert.Equal(t, "repo@feature-x", NewWorktreeNode("repo", "feature-x", "/x", false).ID())
}

func TestWorktreeNode_IsRepo(t *testing.T) {
	assert.True(t, NewRepoNode("repo", "/ws").IsRepo())
	assert.False(t, NewWorktreeNode("repo", "main", "/ws", true).IsRepo())
}

// TestNewTree verifies that a fresh tree always holds the root entry,
// even with no children.
func TestNewTree(t *testing.T) {
	tree := NewTree("repo", "/repo/main")

	assert.Equal(t, "repo", tree.Root)
	require.Contains(t, tree.Children, "repo")
	assert.Empty(t, tree.Children["repo"])

	roots := tree.Roots()
	require.Len(t, roots, 1)
	assert.Equal(t, "/repo/main", roots[0].Path)
	assert.Empty(t, tree.ChildrenOf(roots[0]))
}

// TestTree_AddWorktree checks insertion order and id uniqueness.
func TestTree_AddWorktree(t *testing.T) {
	tree := NewTree("repo", "/repo/main")

	assert.True(t, tree.AddWorktree(NewWorktreeNode("repo", "main", "/repo/main", true)))
	assert.True(t, tree.AddWorktree(NewWorktreeNode("repo", "feature-x", "/repo/feature-x", false)))
	assert.False(t, tree.AddWorktree(NewWorktreeNode("repo", "main", "/elsewhere", false)),
		"duplicate id must be rejected")

	children := tree.ChildrenOf(tree.Roots()[0])
	require.Len(t, children, 2)
	assert.Equal(t, "repo@main", children[0].ID())
	assert.Equal(t, "repo@feature-x", children[1].ID())
	assert.Equal(t, "/repo/main", children[0].Path)

	current, ok := tree.Current()
	require.True(t, ok)
	assert.Equal(t, "main", current.Branch)

	// Worktree nodes are leaves.
	assert.Empty(t, tree.ChildrenOf(children[0]))

	node, ok := tree.Lookup("repo@feature-x")
	require.True(t, ok)
	assert.False(t, node.Current)

	_, ok = tree.Lookup("repo@missing")
	assert.False(t, ok)
}

// TestValidateBranchName covers the accepted and rejected branch names.
func TestValidateBranchName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"hyphenated", "feature-1", false},
		{"letters only", "abc", false},
		{"digits only", "123", false},
		{"leading hyphen", "-abc", false},
		{"double hyphen", "feature--1", true},
		{"empty", "", true},
		{"slash", "feature/x", true},
		{"space", "my branch", true},
		{"underscore", "my_branch", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBranchName(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPackageManifest_IsComplete(t *testing.T) {
	assert.True(t, PackageManifest{Name: "@scope/pkg", Files: []string{"dist"}}.IsComplete())
	assert.True(t, PackageManifest{Name: "pkg", Files: []string{}}.IsComplete())
	assert.False(t, PackageManifest{Name: "pkg"}.IsComplete())
	assert.False(t, PackageManifest{Files: []string{"dist"}}.IsComplete())
}

// TestCLIError checks message formatting and unwrapping.
func TestCLIError(t *testing.T) {
	plain := NewCLIError(ExitConfigNotFound, "Cannot find main repo")
	assert.Equal(t, "Cannot find main repo", plain.Error())
	assert.Nil(t, plain.Unwrap())

	cause := errors.New("exit status 128")
	wrapped := WrapCLIError(ExitGitError, "git worktree list failed", cause)
	assert.Equal(t, "git worktree list failed: exit status 128", wrapped.Error())
	assert.True(t, errors.Is(wrapped, cause))

	var cliErr *CLIError
	require.True(t, errors.As(error(wrapped), &cliErr))
	assert.Equal(t, ExitGitError, cliErr.Code)
}
