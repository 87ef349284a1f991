package components

import (
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/Use-Tusk/tusk-sheet/internal/tui/styles"
	"github.com/Use-Tusk/tusk-sheet/internal/utils"
)

const maxActivityLines = 500

// ActivityPanel is a scrolling list of recent resize events and status
// messages, shown beside the sheet body.
type ActivityPanel struct {
	mu       sync.Mutex
	viewport viewport.Model
	lines    []string
	// follow keeps the view pinned to the newest line until the user scrolls.
	follow bool
}

func NewActivityPanel() *ActivityPanel {
	vp := viewport.New(30, 10)
	vp.MouseWheelEnabled = false
	return &ActivityPanel{viewport: vp, follow: true}
}

// Add appends a line, dropping the oldest past the retention limit.
func (p *ActivityPanel) Add(line string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.lines = append(p.lines, line)
	if len(p.lines) > maxActivityLines {
		p.lines = p.lines[len(p.lines)-maxActivityLines:]
	}
	p.refreshLocked()
}

// Lines returns the retained lines without styling.
func (p *ActivityPanel) Lines() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.lines))
	for i, l := range p.lines {
		out[i] = utils.StripANSI(l)
	}
	return out
}

func (p *ActivityPanel) ScrollUp(n int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.viewport.ScrollUp(n)
	p.follow = p.viewport.AtBottom()
}

func (p *ActivityPanel) ScrollDown(n int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.viewport.ScrollDown(n)
	p.follow = p.viewport.AtBottom()
}

func (p *ActivityPanel) refreshLocked() {
	wrapWidth := max(p.viewport.Width, 10)

	var wrapped []string
	for _, line := range p.lines {
		wrapped = append(wrapped, strings.Split(wordwrap.String(line, wrapWidth), "\n")...)
	}
	p.viewport.SetContent(strings.Join(wrapped, "\n"))
	if p.follow {
		p.viewport.GotoBottom()
	}
}

// View renders the panel with a left border into width × height cells.
func (p *ActivityPanel) View(width, height int) string {
	p.mu.Lock()
	defer p.mu.Unlock()

	// Border (1) + padding (1) + scrollbar (1); title (1).
	p.viewport.Width = max(width-3, 10)
	p.viewport.Height = max(height-1, 1)
	p.refreshLocked()

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		p.viewport.View(),
		RenderScrollbar(p.viewport.Height, p.viewport.TotalLineCount(), p.viewport.YOffset),
	)

	return lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(styles.BorderColor)).
		BorderTop(false).
		BorderBottom(false).
		BorderRight(false).
		BorderLeft(true).
		PaddingLeft(1).
		Render(lipgloss.JoinVertical(lipgloss.Left, styles.HeadingStyle.Render("Activity"), body))
}
