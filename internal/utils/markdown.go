package utils

import (
	"sync"

	"github.com/charmbracelet/glamour"

	"github.com/Use-Tusk/tusk-sheet/internal/tui/styles"
)

var (
	cachedRenderer *glamour.TermRenderer
	rendererOnce   sync.Once
	rendererErr    error
)

// getRenderer returns a cached glamour renderer, creating it on first call.
// Reference: https://github.com/charmbracelet/glamour/tree/master/styles
func getRenderer() (*glamour.TermRenderer, error) {
	rendererOnce.Do(func() {
		baseStyle := "dark"
		if !styles.HasDarkBackground {
			baseStyle = "light"
		}
		cachedRenderer, rendererErr = glamour.NewTermRenderer(
			glamour.WithStandardStyle(baseStyle),
			glamour.WithWordWrap(90),
		)
	})
	return cachedRenderer, rendererErr
}

// RenderMarkdown renders command help text. Plain markdown is returned when
// colors are disabled or stdout is not a terminal.
func RenderMarkdown(markdown string) string {
	if styles.NoColor() || !IsTerminal() {
		return markdown
	}

	renderer, err := getRenderer()
	if err != nil {
		return markdown
	}

	rendered, err := renderer.Render(markdown)
	if err != nil {
		return markdown
	}

	return rendered
}
