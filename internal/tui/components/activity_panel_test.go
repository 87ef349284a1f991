package components

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActivityPanel_KeepsNewestLines(t *testing.T) {
	p := NewActivityPanel()
	for i := range maxActivityLines + 5 {
		p.Add(fmt.Sprintf("line %d", i))
	}

	lines := p.Lines()
	require.Len(t, lines, maxActivityLines)
	assert.Equal(t, "line 5", lines[0])
	assert.Equal(t, fmt.Sprintf("line %d", maxActivityLines+4), lines[len(lines)-1])
}

func TestActivityPanel_ViewShowsLatest(t *testing.T) {
	p := NewActivityPanel()
	for i := range 20 {
		p.Add(fmt.Sprintf("boundary %d", i))
	}

	out := p.View(30, 6)
	assert.Contains(t, out, "Activity")
	assert.Contains(t, out, "boundary 19")
	assert.NotContains(t, out, "boundary 0\n")

	p.ScrollUp(100)
	assert.Contains(t, p.View(30, 6), "boundary 0")
	p.Add("newest")
	assert.NotContains(t, p.View(30, 6), "newest", "scrolled-up panel stays put")
}
