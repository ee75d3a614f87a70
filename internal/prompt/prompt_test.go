package prompt

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHuhPrompterDefaults(t *testing.T) {
	t.Setenv("ACCESSIBLE", "")

	p := NewHuhPrompter(nil, nil)
	assert.Equal(t, os.Stdin, p.in)
	assert.Equal(t, os.Stderr, p.out)
	assert.False(t, p.accessible)
}

func TestNewHuhPrompterAccessible(t *testing.T) {
	t.Setenv("ACCESSIBLE", "1")

	in := strings.NewReader("")
	var out bytes.Buffer
	p := NewHuhPrompter(in, &out)
	assert.Equal(t, in, p.in)
	assert.Equal(t, &out, p.out)
	assert.True(t, p.accessible)
}

func TestTheme(t *testing.T) {
	th := theme()
	require.NotNil(t, th)
	assert.Equal(t, th.Focused.FocusedButton.GetBackground(), th.Focused.Next.GetBackground())
}

// HuhPrompter must satisfy Prompter.
var _ Prompter = (*HuhPrompter)(nil)
