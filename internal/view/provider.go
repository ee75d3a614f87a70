// Package view turns worktree tree snapshots into display records and
// renders them as a styled text tree or JSON.
package view

import (
	"context"
	"strings"

	"github.com/LeJawa/dev-tools/internal/model"
	"github.com/LeJawa/dev-tools/internal/worktree"
)

// Context values attached to items, used to decide which actions apply.
const (
	ContextRepo             = "repo"
	ContextWorktree         = "worktree"
	ContextCurrentWorkspace = "current-workspace"
)

// Icon names.
const (
	IconRepo     = "git-merge"
	IconCurrent  = "circle-filled"
	IconWorktree = "circle-outline"
)

const (
	resourcePrefix    = "/worktree-view/"
	currentSuffix     = "+current"
	currentDecoration = "Current Workspace"
)

// Item is the display record of one node.
type Item struct {
	ID           string `json:"id"`
	Label        string `json:"label"`
	Tooltip      string `json:"tooltip,omitempty"`
	ContextValue string `json:"contextValue"`
	Icon         string `json:"icon"`
	Expanded     bool   `json:"expanded"`
	ResourceURI  string `json:"resourceUri"`
	Decoration   string `json:"decoration,omitempty"`
	Path         string `json:"path,omitempty"`
	Children     []Item `json:"children,omitempty"`
}

// ItemFor maps a node to its display record. Repository nodes are expanded
// and labelled with the repository name; worktrees are labelled with their
// branch. The current worktree gets a resource URI ending in "current",
// which carries the "Current Workspace" decoration.
func ItemFor(node model.WorktreeNode) Item {
	item := Item{
		ID:          node.ID(),
		Path:        node.Path,
		ResourceURI: resourcePrefix + node.ID(),
	}

	switch {
	case node.IsRepo():
		item.Label = node.Repo
		item.ContextValue = ContextRepo
		item.Icon = IconRepo
		item.Expanded = true
	case node.Current:
		item.Label = node.Branch
		item.Tooltip = node.ID() + " worktree"
		item.ContextValue = ContextCurrentWorkspace
		item.Icon = IconCurrent
		item.ResourceURI += currentSuffix
	default:
		item.Label = node.Branch
		item.Tooltip = node.ID() + " worktree"
		item.ContextValue = ContextWorktree
		item.Icon = IconWorktree
	}

	item.Decoration = DecorationFor(item.ResourceURI)
	return item
}

// DecorationFor returns the decoration shown for a resource URI.
func DecorationFor(uri string) string {
	if strings.HasSuffix(uri, "current") {
		return currentDecoration
	}
	return ""
}

// Provider holds the latest tree snapshot for one repository and rebuilds
// it on Refresh.
type Provider struct {
	builder       *worktree.Builder
	repoName      string
	workspacePath string
	tree          model.Tree
}

// NewProvider creates a provider holding a root-only snapshot. Call Refresh
// to list the worktrees.
func NewProvider(builder *worktree.Builder, repoName, workspacePath string) *Provider {
	return &Provider{
		builder:       builder,
		repoName:      repoName,
		workspacePath: workspacePath,
		tree:          model.NewTree(repoName, workspacePath),
	}
}

// Refresh replaces the snapshot with a freshly built one. The new snapshot
// is installed even when building reported an error, so the view always
// shows at least the repository.
func (p *Provider) Refresh(ctx context.Context) error {
	tree, err := p.builder.Build(ctx, p.repoName, p.workspacePath)
	p.tree = tree
	return err
}

// Tree returns the current snapshot.
func (p *Provider) Tree() model.Tree {
	return p.tree
}

// Children returns the root nodes when parent is nil, else the children of
// parent.
func (p *Provider) Children(parent *model.WorktreeNode) []model.WorktreeNode {
	if parent == nil {
		return p.tree.Roots()
	}
	return p.tree.ChildrenOf(*parent)
}

// Items returns the display records of the snapshot, nested.
func (p *Provider) Items() []Item {
	var items []Item
	for _, root := range p.Children(nil) {
		item := ItemFor(root)
		for _, child := range p.Children(&root) {
			item.Children = append(item.Children, ItemFor(child))
		}
		items = append(items, item)
	}
	return items
}
