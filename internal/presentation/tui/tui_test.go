package tui

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderer_RendersMarkdown(t *testing.T) {
	render, err := NewRenderer(0)
	require.NoError(t, err)

	out, err := render("# TYPO3 12.4 Changelog\n\n- PHP 8.1+ required\n")
	require.NoError(t, err)
	assert.Contains(t, out, "TYPO3 12.4 Changelog")
	assert.Contains(t, out, "PHP 8.1+ required")
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf, "0.4.0\n")
	assert.Contains(t, buf.String(), "v0.4.0")
}

func TestWidth_NotATerminal(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "out")
	require.NoError(t, err)
	defer f.Close()

	assert.False(t, IsTerminal(f))
	assert.Equal(t, DefaultWidth, Width(f))
}
