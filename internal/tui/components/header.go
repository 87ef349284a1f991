package components

import (
	"math"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/x/ansi"

	"github.com/Use-Tusk/tusk-sheet/internal/log"
	"github.com/Use-Tusk/tusk-sheet/internal/resize"
	"github.com/Use-Tusk/tusk-sheet/internal/tui/styles"
	"github.com/Use-Tusk/tusk-sheet/internal/utils"
)

const (
	ExpanderIcon = "▸ "
	ResizerGlyph = "┃"
)

// BoundarySyncer receives the boundary elements mounted by a layout pass.
// Slot i is nil when boundary i is not on screen.
type BoundarySyncer interface {
	Sync(elements []resize.Element)
}

// dragTracker is implemented by syncers that know which boundaries are
// mid-drag. It is called with the header lock held, so it must not call back
// into the header.
type dragTracker interface {
	Dragging(index int) bool
}

// resizerHandle is the element for one boundary. The pointer stays the same
// across renders so its drag controller survives; only the bounds move.
type resizerHandle struct {
	index int

	mu   sync.Mutex
	rect resize.Rect
}

func (r *resizerHandle) Bounds() resize.Rect {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rect
}

func (r *resizerHandle) setBounds(rect resize.Rect) {
	r.mu.Lock()
	r.rect = rect
	r.mu.Unlock()
}

// SheetHeader renders the sheet's header row and exposes the measurements the
// resize coordinator needs. Cell widths include the resizer glyph.
type SheetHeader struct {
	mu      sync.Mutex
	specs   []resize.ColumnSpec
	widths  []int
	banner  string
	handles []*resizerHandle
	active  resize.Element

	originX   int
	originY   int
	viewWidth int
	scrollX   int

	// rtl is read by the coordinator without taking mu.
	rtl atomic.Bool

	syncer BoundarySyncer
}

func NewSheetHeader(specs []resize.ColumnSpec, widths []float64, banner string) *SheetHeader {
	h := &SheetHeader{banner: banner}
	h.setColumnsLocked(specs, widths)
	return h
}

// SetSyncer sets who is told about mounted boundaries after each Relayout.
func (h *SheetHeader) SetSyncer(s BoundarySyncer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.syncer = s
}

// SetColumns replaces the layout. Handles past the new last boundary are
// dropped, so the next Relayout detaches them.
func (h *SheetHeader) SetColumns(specs []resize.ColumnSpec, widths []float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.setColumnsLocked(specs, widths)
}

func (h *SheetHeader) setColumnsLocked(specs []resize.ColumnSpec, widths []float64) {
	h.specs = append([]resize.ColumnSpec(nil), specs...)
	h.widths = make([]int, len(specs))
	for i := range h.widths {
		w := resize.MinColumnWidth
		if i < len(widths) {
			w = widths[i]
		}
		h.widths[i] = roundWidth(w)
	}

	boundaries := max(len(specs)-1, 0)
	if len(h.handles) > boundaries {
		h.handles = h.handles[:boundaries]
	}
	h.clampScrollLocked()
}

// SetWidths applies a width vector from the coordinator. Vectors that do not
// match the current column count are ignored.
func (h *SheetHeader) SetWidths(widths []float64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(widths) != len(h.widths) {
		log.Debug("Ignoring width vector for a different layout",
			"got", len(widths), "columns", len(h.widths))
		return
	}
	for i, w := range widths {
		h.widths[i] = roundWidth(w)
	}
	h.clampScrollLocked()
}

func roundWidth(w float64) int {
	return max(int(math.Round(w)), 1)
}

func (h *SheetHeader) SetBanner(text string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.banner = text
}

func (h *SheetHeader) SetRTL(rtl bool) {
	h.rtl.Store(rtl)
}

func (h *SheetHeader) RTL() bool {
	return h.rtl.Load()
}

// SetOrigin places the header's top-left cell on screen.
func (h *SheetHeader) SetOrigin(x, y int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.originX, h.originY = x, y
}

// SetViewWidth sets how many cells are visible. Zero renders everything.
func (h *SheetHeader) SetViewWidth(width int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.viewWidth = max(width, 0)
	h.clampScrollLocked()
}

// ScrollBy moves the horizontal offset by delta cells, clamped to the content.
func (h *SheetHeader) ScrollBy(delta int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.scrollX += delta
	h.clampScrollLocked()
}

func (h *SheetHeader) ScrollX() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.scrollX
}

func (h *SheetHeader) clampScrollLocked() {
	maxScroll := 0
	if h.viewWidth > 0 {
		maxScroll = max(sumInts(h.widths)-h.viewWidth, 0)
	}
	h.scrollX = min(max(h.scrollX, 0), maxScroll)
}

// SetActive highlights the resizer being dragged. Nil clears it.
func (h *SheetHeader) SetActive(el resize.Element) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.active = el
}

func (h *SheetHeader) ColumnCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.specs)
}

// MeasureColumnWidths returns the rendered width of every cell.
func (h *SheetHeader) MeasureColumnWidths() []float64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]float64, len(h.widths))
	for i, w := range h.widths {
		out[i] = float64(w)
	}
	return out
}

// Widths returns the current cell widths.
func (h *SheetHeader) Widths() []int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]int(nil), h.widths...)
}

// Specs returns the current column layout.
func (h *SheetHeader) Specs() []resize.ColumnSpec {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]resize.ColumnSpec(nil), h.specs...)
}

// Height is the number of rows View produces.
func (h *SheetHeader) Height() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.bannerRowsLocked() + 2
}

func (h *SheetHeader) bannerRowsLocked() int {
	if h.banner == "" {
		return 0
	}
	return 1
}

// ContentWidth is the total width of all cells.
func (h *SheetHeader) ContentWidth() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return sumInts(h.widths)
}

// Relayout recomputes resizer bounds and reports the mounted boundaries to
// the syncer. The syncer runs without the header lock held because attaching
// a controller measures the header.
func (h *SheetHeader) Relayout() {
	h.mu.Lock()
	elements := h.layoutLocked()
	syncer := h.syncer
	h.mu.Unlock()

	if syncer != nil {
		syncer.Sync(elements)
	}
}

func (h *SheetHeader) layoutLocked() []resize.Element {
	boundaries := max(len(h.specs)-1, 0)
	for len(h.handles) < boundaries {
		h.handles = append(h.handles, &resizerHandle{index: len(h.handles)})
	}

	rtl := h.rtl.Load()
	y := h.originY + h.bannerRowsLocked()
	elements := make([]resize.Element, boundaries)

	start := 0
	for i := range boundaries {
		w := h.widths[i]
		pos := start + w - 1
		start += w

		if !h.specs[i].DrawsResizerAfter {
			continue
		}
		if h.viewWidth > 0 && (pos < h.scrollX || pos >= h.scrollX+h.viewWidth) {
			// A handle dragged past the edge stays mounted, pinned to the
			// edge, until its drag ends.
			if !h.draggingLocked(i) {
				continue
			}
			pos = min(max(pos, h.scrollX), h.scrollX+h.viewWidth-1)
		}

		h.handles[i].setBounds(resize.Rect{
			X:      h.screenXLocked(pos, rtl),
			Y:      y,
			Width:  1,
			Height: 1,
		})
		elements[i] = h.handles[i]
	}
	return elements
}

func (h *SheetHeader) draggingLocked(i int) bool {
	if h.active != nil && h.active == resize.Element(h.handles[i]) {
		return true
	}
	if t, ok := h.syncer.(dragTracker); ok {
		return t.Dragging(i)
	}
	return false
}

// screenXLocked maps a logical offset from the start edge to a screen column.
func (h *SheetHeader) screenXLocked(pos int, rtl bool) int {
	if !rtl {
		return h.originX + pos - h.scrollX
	}
	span := h.viewWidth
	if span == 0 {
		span = sumInts(h.widths)
	}
	return h.originX + span - 1 - (pos - h.scrollX)
}

func (h *SheetHeader) View() string {
	h.mu.Lock()
	defer h.mu.Unlock()

	rtl := h.rtl.Load()
	row := RowLayout{Widths: h.widths, RTL: rtl, ScrollX: h.scrollX, ViewWidth: h.viewWidth}
	span := row.Span()

	var lines []string
	if h.banner != "" {
		lines = append(lines, styles.BannerStyle.Render(utils.CenterWidth(h.banner, span)))
	}

	cells := make([]string, len(h.specs))
	for i, spec := range h.specs {
		cells[i] = h.renderCellLocked(i, spec, rtl)
	}
	lines = append(lines, row.Join(cells))
	lines = append(lines, styles.HeaderUnderline.Render(strings.Repeat("─", span)))

	return strings.Join(lines, "\n")
}

func (h *SheetHeader) renderCellLocked(i int, spec resize.ColumnSpec, rtl bool) string {
	w := h.widths[i]
	hasResizer := i < len(h.specs)-1 && spec.DrawsResizerAfter
	contentWidth := w
	if hasResizer {
		contentWidth--
	}

	prefix := ""
	if spec.IsMain {
		prefix = ansi.Truncate(ExpanderIcon, contentWidth, "")
	}
	labelWidth := contentWidth - utils.DisplayWidth(prefix)

	var content string
	if rtl {
		label := utils.FitWidthRight(spec.LabelText, labelWidth)
		content = styles.HeaderCellStyle.Render(label) + styles.ExpanderStyle.Render(prefix)
	} else {
		label := utils.FitWidth(spec.LabelText, labelWidth)
		content = styles.ExpanderStyle.Render(prefix) + styles.HeaderCellStyle.Render(label)
	}

	if !hasResizer {
		return content
	}

	resizerStyle := styles.ResizerStyle
	if i < len(h.handles) && h.active != nil && h.active == resize.Element(h.handles[i]) {
		resizerStyle = styles.ResizerDragStyle
	}
	glyph := resizerStyle.Render(ResizerGlyph)
	if rtl {
		return glyph + content
	}
	return content + glyph
}

func sumInts(values []int) int {
	total := 0
	for _, v := range values {
		total += v
	}
	return total
}
