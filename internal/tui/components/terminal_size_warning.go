package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Use-Tusk/tusk-sheet/internal/resize"
	"github.com/Use-Tusk/tusk-sheet/internal/tui/styles"
)

// TerminalSizeWarning is the overlay shown while the window is smaller than
// the configured minimum.
type TerminalSizeWarning struct {
	dismissed bool
	minWidth  int
	minHeight int
}

func NewTerminalSizeWarning(minWidth, minHeight int) *TerminalSizeWarning {
	return &TerminalSizeWarning{
		minWidth:  max(minWidth, int(resize.MinColumnWidth)),
		minHeight: max(minHeight, 1),
	}
}

func (w *TerminalSizeWarning) IsTooSmall(width, height int) bool {
	return width < w.minWidth || height < w.minHeight
}

func (w *TerminalSizeWarning) Dismiss() {
	w.dismissed = true
}

// Reset re-arms the warning once the window is large enough again.
func (w *TerminalSizeWarning) Reset() {
	w.dismissed = false
}

func (w *TerminalSizeWarning) ShouldShow(width, height int) bool {
	return w.IsTooSmall(width, height) && !w.dismissed
}

func (w *TerminalSizeWarning) View(width, height int) string {
	contentWidth := max(width-8, 24)
	center := styles.TextCenterStyle.Width(contentWidth)

	content := []string{
		center.Render(styles.WarningStyle.Bold(true).Render("Window too small")),
		"",
		center.Render(fmt.Sprintf("Current size: %d × %d", width, height)),
		center.Render(fmt.Sprintf("Minimum: %d × %d", w.minWidth, w.minHeight)),
		"",
		center.Render(styles.DimStyle.Render("Enter or d to show anyway, q to quit")),
	}

	box := styles.WarningBoxStyle.Align(lipgloss.Center).Render(lipgloss.JoinVertical(lipgloss.Left, content...))

	if pad := (height - lipgloss.Height(box)) / 2; pad > 0 {
		return strings.Repeat("\n", pad) + box
	}
	return box
}
