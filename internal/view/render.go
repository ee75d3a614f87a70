package view

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"
)

var iconGlyphs = map[string]string{
	IconRepo:     "⑂",
	IconCurrent:  "●",
	IconWorktree: "○",
}

// RenderText writes the items as a tree:
//
//	⑂ shop-frontend
//	├── ● main  Current Workspace
//	└── ○ feature-x
//
// Colours are only emitted when w is a terminal that supports them.
func RenderText(w io.Writer, items []Item) error {
	r := lipgloss.NewRenderer(w)
	repoStyle := r.NewStyle().Bold(true)
	currentStyle := r.NewStyle().Foreground(lipgloss.Color("10"))
	decorationStyle := r.NewStyle().Faint(true)
	enumStyle := r.NewStyle().Foreground(lipgloss.Color("8"))

	for _, item := range items {
		t := tree.Root(repoStyle.Render(label(item))).
			EnumeratorStyle(enumStyle)

		for _, child := range item.Children {
			text := label(child)
			if child.ContextValue == ContextCurrentWorkspace {
				text = currentStyle.Render(text)
			}
			if child.Decoration != "" {
				text += "  " + decorationStyle.Render(child.Decoration)
			}
			t.Child(text)
		}

		if _, err := fmt.Fprintln(w, t.String()); err != nil {
			return err
		}
	}
	return nil
}

// RenderJSON writes the items as indented JSON under a "worktrees" key.
func RenderJSON(w io.Writer, items []Item) error {
	result := struct {
		Worktrees []Item `json:"worktrees"`
	}{
		// Empty slice rather than nil so the output shows [] not null.
		Worktrees: make([]Item, 0, len(items)),
	}
	result.Worktrees = append(result.Worktrees, items...)

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func label(item Item) string {
	if glyph, ok := iconGlyphs[item.Icon]; ok {
		return glyph + " " + item.Label
	}
	return item.Label
}
