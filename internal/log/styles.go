package log

import (
	"github.com/Use-Tusk/tusk-sheet/internal/tui/styles"
)

// renderError applies error styling to a message
func renderError(msg string) string {
	if styles.NoColor() {
		return msg
	}
	return styles.ErrorStyle.Render(msg)
}

// renderWarning applies warning styling to a message
func renderWarning(msg string) string {
	if styles.NoColor() {
		return msg
	}
	return styles.WarningStyle.Render(msg)
}

// renderSuccess applies success styling to a message
func renderSuccess(msg string) string {
	if styles.NoColor() {
		return msg
	}
	return styles.SuccessStyle.Render(msg)
}

// renderDim applies dim/progress styling to a message
func renderDim(msg string) string {
	if styles.NoColor() {
		return msg
	}
	return styles.DimStyle.Render(msg)
}
