package gesture

import (
	"context"
	"errors"
	"sync"

	"github.com/Use-Tusk/tusk-sheet/internal/resize"
)

var (
	ErrNotBound = errors.New("element has no drag controller")
	ErrDetached = errors.New("drag controller destroyed mid-drag")
)

// Script drives drags from code instead of a pointer. The headless resize
// command uses it to replay a drag against a sheet.
type Script struct {
	mu    sync.Mutex
	bound map[resize.Element]*scripted
}

func NewScript() *Script {
	return &Script{bound: make(map[resize.Element]*scripted)}
}

// Factory returns a controller factory bound to this script.
func (s *Script) Factory() resize.ControllerFactory {
	return func(el resize.Element, events chan<- resize.DragEvent) resize.DragController {
		c := &scripted{
			script:     s,
			el:         el,
			events:     events,
			done:       make(chan struct{}),
			autoScroll: true,
		}
		s.mu.Lock()
		s.bound[el] = c
		s.mu.Unlock()
		return c
	}
}

// Drag publishes dragstart, one dragmove per delta, then dragend. Deltas are
// cumulative offsets from the press point, as a pointer would report them.
// Unlike the mouse engine, a full queue blocks rather than holds events back.
// Drag gives up with ErrDetached once the controller is destroyed, or with
// the context's error once ctx is done.
func (s *Script) Drag(ctx context.Context, el resize.Element, deltas ...float64) error {
	s.mu.Lock()
	c, ok := s.bound[el]
	s.mu.Unlock()
	if !ok {
		return ErrNotBound
	}

	if err := c.send(ctx, resize.DragEvent{Type: resize.EventDragStart}); err != nil {
		return err
	}
	for _, dx := range deltas {
		if err := c.send(ctx, resize.DragEvent{Type: resize.EventDragMove, DeltaX: dx}); err != nil {
			return err
		}
	}
	return c.send(ctx, resize.DragEvent{Type: resize.EventDragEnd})
}

// AutoScrollEnabled reports the last value the coordinator set for el.
func (s *Script) AutoScrollEnabled(el resize.Element) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.bound[el]
	return ok && c.autoScroll
}

type scripted struct {
	script     *Script
	el         resize.Element
	events     chan<- resize.DragEvent
	done       chan struct{}
	once       sync.Once
	autoScroll bool // guarded by script.mu
}

func (c *scripted) send(ctx context.Context, ev resize.DragEvent) error {
	// A destroyed controller must not publish even when the queue has room.
	select {
	case <-c.done:
		return ErrDetached
	default:
	}
	select {
	case c.events <- ev:
		return nil
	case <-c.done:
		return ErrDetached
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *scripted) SetAutoScrollEnabled(enabled bool) {
	c.script.mu.Lock()
	defer c.script.mu.Unlock()
	c.autoScroll = enabled
}

func (c *scripted) Destroy() {
	c.once.Do(func() { close(c.done) })

	c.script.mu.Lock()
	defer c.script.mu.Unlock()
	if c.script.bound[c.el] == c {
		delete(c.script.bound, c.el)
	}
}
