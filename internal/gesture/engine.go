// Package gesture turns terminal mouse input into drag gestures for the
// column resizers.
package gesture

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Use-Tusk/tusk-sheet/internal/log"
	"github.com/Use-Tusk/tusk-sheet/internal/resize"
)

// Engine dispatches mouse messages to the draggers bound to it. At most one
// dragger owns the pointer at a time.
type Engine struct {
	mu       sync.Mutex
	draggers []*Dragger
	active   *Dragger

	pressX int
}

func NewEngine() *Engine {
	return &Engine{}
}

// Factory returns a controller factory bound to this engine.
func (e *Engine) Factory() resize.ControllerFactory {
	return func(el resize.Element, events chan<- resize.DragEvent) resize.DragController {
		return e.bind(el, events)
	}
}

// ActiveElement returns the element currently being dragged, or nil.
func (e *Engine) ActiveElement() resize.Element {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.active == nil {
		return nil
	}
	return e.active.el
}

// Bound returns how many draggers are bound to the engine.
func (e *Engine) Bound() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.draggers)
}

// AutoScrollEnabled reports the last value set on the dragger bound to el.
// The engine has no scrolling of its own; owners read the flag to decide
// whether a drag may move the view.
func (e *Engine) AutoScrollEnabled(el resize.Element) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, d := range e.draggers {
		if d.el == el {
			return d.autoScroll
		}
	}
	return false
}

func (e *Engine) Update(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.MouseMsg); ok {
		return e.HandleMouse(msg)
	}
	return nil
}

// HandleMouse feeds one mouse message through the engine.
func (e *Engine) HandleMouse(msg tea.MouseMsg) tea.Cmd {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.flushLocked()

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return nil
		}
		if e.active != nil {
			// A press while dragging means we missed the release.
			e.active.publish(resize.DragEvent{Type: resize.EventDragEnd})
			e.active = nil
		}

		d := e.hitTest(msg.X, msg.Y)
		if d == nil {
			return nil
		}
		e.active = d
		e.pressX = msg.X
		d.publish(resize.DragEvent{Type: resize.EventDragStart})

	case tea.MouseActionMotion:
		if e.active == nil {
			return nil
		}
		e.active.publish(resize.DragEvent{
			Type:   resize.EventDragMove,
			DeltaX: float64(msg.X - e.pressX),
		})

	case tea.MouseActionRelease:
		if e.active == nil {
			return nil
		}
		e.active.publish(resize.DragEvent{Type: resize.EventDragEnd})
		e.active = nil
	}

	return nil
}

// Flush retries events held back by full queues and reports whether any
// were delivered. Callers that drain the queues themselves flush until it
// returns false.
func (e *Engine) Flush() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.flushLocked()
}

func (e *Engine) flushLocked() bool {
	sent := false
	for _, d := range e.draggers {
		if d.flush() {
			sent = true
		}
	}
	return sent
}

func (e *Engine) hitTest(x, y int) *Dragger {
	for _, d := range e.draggers {
		if d.el.Bounds().Contains(x, y) {
			return d
		}
	}
	return nil
}

func (e *Engine) bind(el resize.Element, events chan<- resize.DragEvent) *Dragger {
	e.mu.Lock()
	defer e.mu.Unlock()

	d := &Dragger{
		engine:     e,
		el:         el,
		events:     events,
		autoScroll: true,
	}
	e.draggers = append(e.draggers, d)
	return d
}

func (e *Engine) unbind(d *Dragger) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i, other := range e.draggers {
		if other == d {
			e.draggers = append(e.draggers[:i], e.draggers[i+1:]...)
			break
		}
	}
	if e.active == d {
		// Abort without dragend: the boundary is gone.
		e.active = nil
	}
	d.destroyed = true
	d.backlog = nil
}

// Dragger is the drag controller for one boundary element.
type Dragger struct {
	engine *Engine
	el     resize.Element
	events chan<- resize.DragEvent

	// guarded by engine.mu
	autoScroll bool
	destroyed  bool
	backlog    []resize.DragEvent
}

func (d *Dragger) SetAutoScrollEnabled(enabled bool) {
	d.engine.mu.Lock()
	defer d.engine.mu.Unlock()
	d.autoScroll = enabled
}

func (d *Dragger) Destroy() {
	d.engine.unbind(d)
}

// publish must be called with engine.mu held. It never blocks the UI loop.
// Events that do not fit wait in the backlog in order; a move behind another
// held move replaces it, since both carry the offset from the drag start.
func (d *Dragger) publish(ev resize.DragEvent) {
	if d.destroyed {
		return
	}
	d.flush()
	if len(d.backlog) == 0 {
		select {
		case d.events <- ev:
			return
		default:
		}
	}

	if n := len(d.backlog); n > 0 && ev.Type == resize.EventDragMove && d.backlog[n-1].Type == resize.EventDragMove {
		d.backlog[n-1] = ev
		return
	}
	d.backlog = append(d.backlog, ev)
	log.Debug("Drag event queue full, holding event", "event", ev.Type.String(), "held", len(d.backlog))
}

// flush moves held events onto the queue until it is full again and reports
// whether any moved. Must be called with engine.mu held.
func (d *Dragger) flush() bool {
	sent := false
	for len(d.backlog) > 0 {
		select {
		case d.events <- d.backlog[0]:
			d.backlog = d.backlog[1:]
			sent = true
		default:
			return sent
		}
	}
	d.backlog = nil
	return sent
}
