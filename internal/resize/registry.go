package resize

import (
	"fmt"
	"sort"

	"github.com/Use-Tusk/tusk-sheet/internal/log"
)

// defaultEventBuffer is how many gesture events a boundary can queue before
// the engine starts dropping them.
const defaultEventBuffer = 64

// boundary is the registry entry for one mounted boundary element.
type boundary struct {
	index  int
	el     Element
	ctrl   DragController
	events chan DragEvent
	done   chan struct{}

	// guarded by Coordinator.mu
	destroyed bool
	session   *Session
}

// Attach binds a new controller to the boundary element at index. It returns
// ErrDuplicateBoundary if index already has one; the existing controller is
// left untouched. With no factory configured Attach does nothing.
func (c *Coordinator) Attach(index int, el Element) error {
	if c.factory == nil {
		return nil
	}

	columns := c.measurer.ColumnCount()
	if index < 0 || index > columns-2 {
		return fmt.Errorf("%w: %d (columns: %d)", ErrBoundaryOutOfRange, index, columns)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.boundaries[index]; ok {
		log.Error("Duplicate drag controller for boundary", "boundary", index)
		return fmt.Errorf("%w: %d", ErrDuplicateBoundary, index)
	}

	b := &boundary{
		index:  index,
		el:     el,
		events: make(chan DragEvent, c.eventBuffer),
		done:   make(chan struct{}),
	}
	b.ctrl = c.factory(el, b.events)
	if b.ctrl == nil {
		return nil
	}
	// Resizing must not scroll neighbouring regions.
	b.ctrl.SetAutoScrollEnabled(false)

	c.boundaries[index] = b
	if !c.manual {
		c.wg.Add(1)
		go c.pump(b)
	}

	log.Debug("Attached column resizer", "boundary", index)
	return nil
}

// Detach destroys the controller for index and drops any in-flight drag.
// Detaching an unknown index is a no-op.
func (c *Coordinator) Detach(index int) {
	c.mu.Lock()
	b, ok := c.boundaries[index]
	if !ok {
		c.mu.Unlock()
		return
	}
	delete(c.boundaries, index)
	b.destroyed = true
	b.session = nil
	close(b.done)
	c.mu.Unlock()

	b.ctrl.Destroy()
	log.Debug("Detached column resizer", "boundary", index)
}

// Sync reconciles the registry with the boundary elements mounted in the
// current render pass. Slot i holds the element for boundary i, or nil when
// that boundary is not rendered. Boundaries whose element is unchanged keep
// their controller.
func (c *Coordinator) Sync(elements []Element) {
	c.mu.Lock()
	var stale []int
	for idx, b := range c.boundaries {
		if idx >= len(elements) || elements[idx] == nil || elements[idx] != b.el {
			stale = append(stale, idx)
		}
	}
	c.mu.Unlock()

	for _, idx := range stale {
		c.Detach(idx)
	}

	for idx, el := range elements {
		if el == nil || c.has(idx) {
			continue
		}
		if err := c.Attach(idx, el); err != nil {
			log.Warn("Failed to attach column resizer", "boundary", idx, "error", err)
		}
	}
}

// Indices returns the boundaries that currently own a controller, ascending.
func (c *Coordinator) Indices() []int {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]int, 0, len(c.boundaries))
	for idx := range c.boundaries {
		out = append(out, idx)
	}
	sort.Ints(out)
	return out
}

// Len returns the number of live controllers.
func (c *Coordinator) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.boundaries)
}

// Close detaches every boundary and waits for any pumps to exit. It must not
// be called from inside the width-change callback.
func (c *Coordinator) Close() {
	for _, idx := range c.Indices() {
		c.Detach(idx)
	}
	c.wg.Wait()
}

func (c *Coordinator) has(index int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.boundaries[index]
	return ok
}
