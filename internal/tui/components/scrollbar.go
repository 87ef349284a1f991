package components

import (
	"strings"

	"github.com/Use-Tusk/tusk-sheet/internal/tui/styles"
)

// scrollThumb returns where the thumb starts and how long it is on a track of
// the given length. size is 0 when everything fits.
func scrollThumb(track, total, offset int) (start, size int) {
	if track <= 0 || total <= track {
		return 0, 0
	}

	size = max(1, track*track/total)
	scrollable := total - track
	offset = min(max(offset, 0), scrollable)

	start = int(float64(offset) / float64(scrollable) * float64(track-size))
	if start+size > track {
		start = track - size
	}
	return start, size
}

// RenderScrollbar renders a vertical scrollbar given the visible height,
// total content lines, and current scroll offset.
func RenderScrollbar(height, totalLines, scrollOffset int) string {
	start, size := scrollThumb(height, totalLines, scrollOffset)

	lines := make([]string, max(height, 0))
	for i := range lines {
		switch {
		case size == 0:
			lines[i] = " "
		case i >= start && i < start+size:
			lines[i] = styles.ScrollbarThumb.Render("┃")
		default:
			lines[i] = styles.ScrollbarTrack.Render("│")
		}
	}
	return strings.Join(lines, "\n")
}

// RenderHScrollbar renders a horizontal scrollbar for a sheet wider than the
// window. It is blank when the columns fit.
func RenderHScrollbar(width, totalWidth, scrollX int) string {
	start, size := scrollThumb(width, totalWidth, scrollX)
	if size == 0 {
		return strings.Repeat(" ", max(width, 0))
	}

	var sb strings.Builder
	sb.WriteString(styles.ScrollbarTrack.Render(strings.Repeat("─", start)))
	sb.WriteString(styles.ScrollbarThumb.Render(strings.Repeat("━", size)))
	sb.WriteString(styles.ScrollbarTrack.Render(strings.Repeat("─", width-start-size)))
	return sb.String()
}
