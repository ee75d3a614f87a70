// Package prompt asks the user questions on the terminal: pick one of a
// list of options, or type a value. It stands in for the editor's quick
// pick and input box.
package prompt

import (
	"errors"
	"io"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// ErrCancelled is returned when the user dismisses a prompt.
var ErrCancelled = errors.New("prompt cancelled")

// Prompter asks the user for a choice or a value.
type Prompter interface {
	// Select shows options and returns the one picked.
	Select(title string, options []string) (string, error)

	// Input asks for a line of text. validate, when non-nil, is run on
	// every submission and an error keeps the prompt open.
	Input(title, placeholder string, validate func(string) error) (string, error)
}

// HuhPrompter implements Prompter with charmbracelet/huh forms.
type HuhPrompter struct {
	in         io.Reader
	out        io.Writer
	accessible bool
}

// NewHuhPrompter creates a prompter reading in and drawing on out. Nil
// values select the process's stdin and stderr.
func NewHuhPrompter(in io.Reader, out io.Writer) *HuhPrompter {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stderr
	}
	return &HuhPrompter{
		in:         in,
		out:        out,
		accessible: os.Getenv("ACCESSIBLE") != "",
	}
}

// Select implements Prompter.
func (p *HuhPrompter) Select(title string, options []string) (string, error) {
	var value string
	field := huh.NewSelect[string]().
		Title(title).
		Options(huh.NewOptions(options...)...).
		Value(&value)

	if err := p.run(field); err != nil {
		return "", err
	}
	return value, nil
}

// Input implements Prompter.
func (p *HuhPrompter) Input(title, placeholder string, validate func(string) error) (string, error) {
	var value string
	field := huh.NewInput().
		Title(title).
		Placeholder(placeholder).
		Value(&value)
	if validate != nil {
		field = field.Validate(validate)
	}

	if err := p.run(field); err != nil {
		return "", err
	}
	return value, nil
}

func (p *HuhPrompter) run(field huh.Field) error {
	form := huh.NewForm(huh.NewGroup(field)).
		WithTheme(theme()).
		WithShowHelp(false).
		WithAccessible(p.accessible).
		WithInput(p.in).
		WithOutput(p.out)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return ErrCancelled
		}
		return err
	}
	return nil
}

func theme() *huh.Theme {
	t := *huh.ThemeCharm()
	t.Focused.FocusedButton = t.Focused.FocusedButton.Background(lipgloss.Color("#7D56F4"))
	t.Focused.Next = t.Focused.FocusedButton
	return &t
}

// IsInteractive reports whether stdin is a terminal, i.e. whether prompts
// can be shown at all.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}
