package components

// SheetLayout is where each part of the sheet view sits on screen.
type SheetLayout struct {
	// ContentX is the first column of the header and body.
	ContentX     int
	ContentWidth int
	// ScrollbarX is the column of the vertical scrollbar.
	ScrollbarX int

	HeaderY    int
	BodyY      int
	BodyHeight int
}

const (
	titleRows      = 1
	hScrollbarRows = 1
	footerRows     = 1
)

// CalculateSheetLayout splits the window into title, header, body,
// horizontal scrollbar and footer. The vertical scrollbar goes on the end
// edge, which is the left side in RTL.
func CalculateSheetLayout(width, height, headerHeight int, rtl bool) SheetLayout {
	l := SheetLayout{
		ContentWidth: max(width-1, 0),
		HeaderY:      titleRows,
	}
	if rtl {
		l.ContentX = 1
		l.ScrollbarX = 0
	} else {
		l.ContentX = 0
		l.ScrollbarX = l.ContentWidth
	}

	l.BodyY = l.HeaderY + headerHeight
	l.BodyHeight = max(height-l.BodyY-hScrollbarRows-footerRows, 0)
	return l
}
