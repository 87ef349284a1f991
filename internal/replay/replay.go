// Package replay runs scripted column drags against a sheet without a
// terminal, producing the width vectors an interactive drag would.
package replay

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/Use-Tusk/tusk-sheet/internal/gesture"
	"github.com/Use-Tusk/tusk-sheet/internal/log"
	"github.com/Use-Tusk/tusk-sheet/internal/resize"
	"github.com/Use-Tusk/tusk-sheet/internal/sheet"
)

var ErrNoResizer = errors.New("boundary does not draw a resizer")

type Request struct {
	Boundary int
	// Deltas are pointer offsets from the press point, one per move.
	Deltas []float64
	RTL    bool
	// TotalWidth is split across columns without a configured width.
	TotalWidth int
	// Widths overrides the starting widths when it has one entry per column.
	Widths []float64
}

// Step is one emitted width vector.
type Step struct {
	Boundary int       `json:"boundary"`
	DeltaX   float64   `json:"delta"`
	Widths   []float64 `json:"widths"`
}

// fixedRow is a header row whose widths only change when told to.
type fixedRow struct {
	mu     sync.Mutex
	widths []float64
}

func (r *fixedRow) ColumnCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.widths)
}

func (r *fixedRow) MeasureColumnWidths() []float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.widths)
}

type handle struct {
	index int
}

func (h *handle) Bounds() resize.Rect {
	return resize.Rect{X: h.index, Width: 1, Height: 1}
}

// StartWidths returns the widths a replay of req starts from.
func StartWidths(s *sheet.Sheet, req Request) []float64 {
	widths := s.InitialWidths(req.TotalWidth)
	if len(req.Widths) == len(widths) {
		for i, w := range req.Widths {
			widths[i] = max(w, resize.MinColumnWidth)
		}
	}
	return widths
}

// Run attaches a controller to every resizable boundary of s, replays one
// drag on req.Boundary and returns a step per delta.
func Run(ctx context.Context, s *sheet.Sheet, req Request) ([]Step, error) {
	specs := s.Specs()
	if req.Boundary < 0 || req.Boundary >= resize.BoundaryCount(specs) {
		return nil, fmt.Errorf("%w: %d (columns: %d)", resize.ErrBoundaryOutOfRange, req.Boundary, len(specs))
	}
	if !specs[req.Boundary].DrawsResizerAfter {
		return nil, fmt.Errorf("%w: %d", ErrNoResizer, req.Boundary)
	}

	row := &fixedRow{widths: StartWidths(s, req)}
	script := gesture.NewScript()
	emitted := make(chan []float64, len(req.Deltas))

	coord := resize.NewCoordinator(resize.Options{
		Factory:  script.Factory(),
		Measurer: row,
		IsRTL:    func() bool { return req.RTL },
		OnChange: func(w []float64) { emitted <- w },
	})
	defer coord.Close()

	elements := make([]resize.Element, resize.BoundaryCount(specs))
	for i := range elements {
		if specs[i].DrawsResizerAfter {
			elements[i] = &handle{index: i}
		}
	}
	coord.Sync(elements)

	log.Debug("Replaying drag",
		"boundary", req.Boundary,
		"moves", len(req.Deltas),
		"rtl", req.RTL,
		"start", row.MeasureColumnWidths())

	if err := script.Drag(ctx, elements[req.Boundary], req.Deltas...); err != nil {
		return nil, fmt.Errorf("failed to replay drag: %w", err)
	}

	steps := make([]Step, 0, len(req.Deltas))
	for _, dx := range req.Deltas {
		select {
		case w := <-emitted:
			steps = append(steps, Step{Boundary: req.Boundary, DeltaX: dx, Widths: w})
		case <-ctx.Done():
			return steps, fmt.Errorf("replay interrupted after %d of %d moves: %w", len(steps), len(req.Deltas), ctx.Err())
		}
	}
	return steps, nil
}
