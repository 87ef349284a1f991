package resize

import (
	"fmt"

	"github.com/google/uuid"
)

// Session is the state of one active drag on one boundary. It is created at
// drag start, mutated by each move and dropped at drag end.
type Session struct {
	ID            string
	BoundaryIndex int
	StartWidth    float64
	CurrentWidths []float64
}

// NewSession snapshots widths for a drag on boundary index. The column before
// the boundary must exist in widths.
func NewSession(index int, widths []float64) (*Session, error) {
	if index < 0 || index >= len(widths) {
		return nil, fmt.Errorf("boundary %d outside measured row of %d columns", index, len(widths))
	}

	current := make([]float64, len(widths))
	copy(current, widths)

	return &Session{
		ID:            uuid.NewString(),
		BoundaryIndex: index,
		StartWidth:    current[index],
		CurrentWidths: current,
	}, nil
}

// Move applies a drag delta measured from the drag start and returns a copy of
// the updated widths. Only the column before the boundary changes.
func (s *Session) Move(deltaX float64, rtl bool) []float64 {
	if rtl {
		deltaX = -deltaX
	}
	s.CurrentWidths[s.BoundaryIndex] = max(s.StartWidth+deltaX, MinColumnWidth)

	return s.Snapshot()
}

// Snapshot returns a copy of the current widths.
func (s *Session) Snapshot() []float64 {
	out := make([]float64, len(s.CurrentWidths))
	copy(out, s.CurrentWidths)
	return out
}
