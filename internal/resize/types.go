package resize

// MinColumnWidth is the narrowest a column can be dragged to.
const MinColumnWidth = 20.0

// ColumnSpec describes one header column for a render pass.
type ColumnSpec struct {
	IsMain            bool
	LabelText         string
	DrawsResizerAfter bool
}

// BoundaryCount returns how many boundaries a row of specs can carry.
// The last column never has one.
func BoundaryCount(specs []ColumnSpec) int {
	return max(len(specs)-1, 0)
}

// EventType names the three gesture events a controller publishes.
type EventType int

const (
	EventDragStart EventType = iota
	EventDragMove
	EventDragEnd
)

func (t EventType) String() string {
	switch t {
	case EventDragStart:
		return "dragstart"
	case EventDragMove:
		return "dragmove"
	case EventDragEnd:
		return "dragend"
	default:
		return "unknown"
	}
}

// DragEvent is a single gesture message. DeltaX is the horizontal distance
// since the drag started and is only meaningful for EventDragMove.
type DragEvent struct {
	Type   EventType
	DeltaX float64
}

// Rect is a screen region in terminal cells.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Contains reports whether the cell (x, y) lies inside the rect.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Element is the draggable boundary a controller binds to. Identity is the
// identity of the implementation value, so implementations should be pointers
// that survive re-renders.
type Element interface {
	Bounds() Rect
}

// DragController is the gesture engine capability for one boundary element.
type DragController interface {
	SetAutoScrollEnabled(enabled bool)
	// Destroy releases engine resources. After it returns the controller must
	// not publish to its event channel again.
	Destroy()
}

// ControllerFactory builds a controller bound to el that publishes onto
// events. The coordinator owns events and never closes it.
type ControllerFactory func(el Element, events chan<- DragEvent) DragController

// RowMeasurer reads the rendered width of every column in the header row.
type RowMeasurer interface {
	ColumnCount() int
	MeasureColumnWidths() []float64
}

// WidthChangeFunc receives the full width vector after every drag move. The
// slice is owned by the receiver.
type WidthChangeFunc func(widths []float64)
