package components

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/truncate"

	"github.com/Use-Tusk/tusk-sheet/internal/resize"
	"github.com/Use-Tusk/tusk-sheet/internal/tui/styles"
	"github.com/Use-Tusk/tusk-sheet/internal/utils"
)

const bodySeparator = "│"

// RowLayout places rendered cells side by side and clips them to the
// visible window. In RTL the first cell sits against the right edge.
type RowLayout struct {
	Widths    []int
	RTL       bool
	ScrollX   int
	ViewWidth int
}

// Span is the on-screen width of a joined row.
func (l RowLayout) Span() int {
	if l.ViewWidth > 0 {
		return l.ViewWidth
	}
	return sumInts(l.Widths)
}

// Join concatenates cells that are already exactly Widths[i] wide.
func (l RowLayout) Join(cells []string) string {
	var sb strings.Builder
	if l.RTL {
		for i := len(cells) - 1; i >= 0; i-- {
			sb.WriteString(cells[i])
		}
	} else {
		for _, c := range cells {
			sb.WriteString(c)
		}
	}
	line := sb.String()

	if l.ViewWidth == 0 {
		return line
	}

	total := sumInts(l.Widths)
	if !l.RTL {
		out := ansi.Cut(line, l.ScrollX, l.ScrollX+l.ViewWidth)
		return out + strings.Repeat(" ", max(l.ViewWidth-ansi.StringWidth(out), 0))
	}

	left := max(total-l.ScrollX-l.ViewWidth, 0)
	right := max(total-l.ScrollX, 0)
	out := ansi.Cut(line, left, right)
	return strings.Repeat(" ", max(l.ViewWidth-ansi.StringWidth(out), 0)) + out
}

// RenderRows lays out body rows under a header with the same widths. A
// column that draws a resizer in the header gets a separator in the body.
func RenderRows(rows [][]string, specs []resize.ColumnSpec, layout RowLayout) string {
	lines := make([]string, len(rows))
	cells := make([]string, len(specs))
	for r, row := range rows {
		for c := range specs {
			text := ""
			if c < len(row) {
				text = row[c]
			}
			cells[c] = renderBodyCell(text, c, specs, layout)
		}
		lines[r] = layout.Join(cells)
	}
	return strings.Join(lines, "\n")
}

func renderBodyCell(text string, col int, specs []resize.ColumnSpec, layout RowLayout) string {
	w := 0
	if col < len(layout.Widths) {
		w = layout.Widths[col]
	}
	last := col == len(specs)-1
	contentWidth := w
	if !last {
		contentWidth--
	}
	if contentWidth <= 0 {
		return strings.Repeat(" ", max(w, 0))
	}

	// Cells may carry their own styling, so truncate ANSI-aware.
	text = strings.ReplaceAll(text, "\n", " ")
	if utils.DisplayWidth(text) > contentWidth {
		text = truncate.StringWithTail(text, uint(contentWidth), "…")
	}
	pad := strings.Repeat(" ", max(contentWidth-utils.DisplayWidth(text), 0))

	var content string
	if layout.RTL {
		content = styles.BodyCellStyle.Render(pad + text)
	} else {
		content = styles.BodyCellStyle.Render(text + pad)
	}

	if last {
		return content
	}
	sep := " "
	if specs[col].DrawsResizerAfter {
		sep = styles.BorderDimStyle.Render(bodySeparator)
	}
	if layout.RTL {
		return sep + content
	}
	return content + sep
}
