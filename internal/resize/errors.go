package resize

import "errors"

var (
	// ErrDuplicateBoundary is returned when a second element is attached to a
	// boundary that already owns a controller.
	ErrDuplicateBoundary = errors.New("boundary already has a drag controller")

	// ErrBoundaryOutOfRange is returned for indices outside [0, columns-2].
	ErrBoundaryOutOfRange = errors.New("boundary index out of range")
)
