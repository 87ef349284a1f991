package utils

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
)

// ANSI color code regex pattern
var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// StripANSI removes ANSI escape sequences from a string
func StripANSI(s string) string {
	return ansiRegex.ReplaceAllString(s, "")
}

// DisplayWidth returns the number of terminal cells s occupies
func DisplayWidth(s string) int {
	return runewidth.StringWidth(StripANSI(s))
}

// TruncateWithEllipsis shortens plain text to maxWidth cells, ending in "…"
// when anything was cut.
func TruncateWithEllipsis(text string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(text) <= maxWidth {
		return text
	}
	if maxWidth == 1 {
		return "…"
	}
	return runewidth.Truncate(text, maxWidth, "…")
}

// FitWidth truncates or right-pads plain text to exactly width cells.
func FitWidth(text string, width int) string {
	if width <= 0 {
		return ""
	}
	text = TruncateWithEllipsis(text, width)
	return runewidth.FillRight(text, width)
}

// CenterWidth centers plain text in exactly width cells.
func CenterWidth(text string, width int) string {
	if width <= 0 {
		return ""
	}
	text = TruncateWithEllipsis(text, width)
	pad := width - runewidth.StringWidth(text)
	left := pad / 2
	return strings.Repeat(" ", left) + text + strings.Repeat(" ", pad-left)
}

// FormatWidths renders a width vector compactly, e.g. "[130 150 80]".
func FormatWidths(widths []float64) string {
	parts := make([]string, len(widths))
	for i, w := range widths {
		parts[i] = strconv.FormatFloat(w, 'f', -1, 64)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// FitWidthRight truncates or left-pads plain text to exactly width cells so
// it sits against the right edge.
func FitWidthRight(text string, width int) string {
	if width <= 0 {
		return ""
	}
	text = TruncateWithEllipsis(text, width)
	return runewidth.FillLeft(text, width)
}
