package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Use-Tusk/tusk-sheet/internal/tui/styles"
	"github.com/Use-Tusk/tusk-sheet/internal/utils"
)

// Title renders the one-line title bar above the sheet.
func Title(width int, text string) string {
	decorated := "• " + text + " •"
	if width <= 0 {
		return styles.TitleStyle.UnsetMarginBottom().Render(decorated)
	}
	return styles.TitleStyle.
		UnsetMarginBottom().
		Width(width).
		Align(lipgloss.Center).
		Render(utils.TruncateWithEllipsis(decorated, width))
}

// Footer renders help text on the start edge and a status message on the
// end edge. Help is truncated before the status.
func Footer(width int, help, status string) string {
	if width <= 0 {
		if status == "" {
			return styles.HelpStyle.Render(help)
		}
		return styles.HelpStyle.Render(help) + "  " + styles.StatusLineStyle.Render(status)
	}
	if status == "" {
		return styles.HelpStyle.Render(utils.FitWidth(help, width))
	}

	status = utils.TruncateWithEllipsis(status, width)
	helpWidth := width - utils.DisplayWidth(status) - 1
	if helpWidth <= 0 {
		return styles.StatusLineStyle.Render(utils.FitWidthRight(status, width))
	}
	return styles.HelpStyle.Render(utils.FitWidth(help, helpWidth)) + " " + styles.StatusLineStyle.Render(status)
}
