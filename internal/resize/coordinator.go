package resize

import (
	"sort"
	"sync"

	"github.com/Use-Tusk/tusk-sheet/internal/log"
)

// Options configures a Coordinator.
type Options struct {
	// Factory builds gesture controllers. Nil disables resizing.
	Factory ControllerFactory
	// Measurer reads the header row. Required.
	Measurer RowMeasurer
	// OnChange receives width vectors. Optional.
	OnChange WidthChangeFunc
	// IsRTL reports the current text direction. Nil means left-to-right.
	IsRTL func() bool
	// EventBuffer sizes each boundary's event channel.
	EventBuffer int
	// Manual starts no goroutines. Queued events are handled only when the
	// caller runs Dispatch, so they stay in order with the caller's own loop.
	Manual bool
}

// Coordinator keeps one drag controller per mounted boundary and turns their
// gesture events into width vectors.
type Coordinator struct {
	factory     ControllerFactory
	measurer    RowMeasurer
	isRTL       func() bool
	eventBuffer int
	manual      bool

	mu         sync.Mutex
	onChange   WidthChangeFunc
	boundaries map[int]*boundary

	wg sync.WaitGroup
}

func NewCoordinator(opts Options) *Coordinator {
	if opts.Measurer == nil {
		panic("resize: Options.Measurer is required")
	}
	isRTL := opts.IsRTL
	if isRTL == nil {
		isRTL = func() bool { return false }
	}
	buffer := opts.EventBuffer
	if buffer <= 0 {
		buffer = defaultEventBuffer
	}

	return &Coordinator{
		factory:     opts.Factory,
		measurer:    opts.Measurer,
		isRTL:       isRTL,
		eventBuffer: buffer,
		manual:      opts.Manual,
		onChange:    opts.OnChange,
		boundaries:  make(map[int]*boundary),
	}
}

// Enabled reports whether a gesture engine is available.
func (c *Coordinator) Enabled() bool {
	return c.factory != nil
}

// SetOnChange replaces the width-change callback. Nil disables emission.
func (c *Coordinator) SetOnChange(fn WidthChangeFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onChange = fn
}

// Dragging reports whether boundary index has an active drag session.
func (c *Coordinator) Dragging(index int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.boundaries[index]
	return ok && b.session != nil
}

// Dispatch handles every queued gesture event on the calling goroutine and
// returns once all queues are empty. Boundaries are drained in ascending
// order, so callers should dispatch after each input message. A boundary
// detached by the width-change callback is not read again.
func (c *Coordinator) Dispatch() {
	for _, b := range c.live() {
		c.drain(b)
	}
}

func (c *Coordinator) drain(b *boundary) {
	for {
		select {
		case <-b.done:
			return
		default:
		}
		select {
		case ev := <-b.events:
			c.handle(b, ev)
		default:
			return
		}
	}
}

func (c *Coordinator) live() []*boundary {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]*boundary, 0, len(c.boundaries))
	for _, b := range c.boundaries {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].index < out[j].index })
	return out
}

func (c *Coordinator) pump(b *boundary) {
	defer c.wg.Done()
	for {
		select {
		case <-b.done:
			return
		case ev := <-b.events:
			c.handle(b, ev)
		}
	}
}

func (c *Coordinator) handle(b *boundary, ev DragEvent) {
	switch ev.Type {
	case EventDragStart:
		c.onDragStart(b)
	case EventDragMove:
		c.onDragMove(b, ev.DeltaX)
	case EventDragEnd:
		c.onDragEnd(b)
	}
}

func (c *Coordinator) onDragStart(b *boundary) {
	// Measured outside c.mu: the measurer has its own lock and may be held
	// by a render pass that is about to call Sync.
	widths := c.measurer.MeasureColumnWidths()
	session, err := NewSession(b.index, widths)

	c.mu.Lock()
	defer c.mu.Unlock()

	if b.destroyed {
		return
	}
	if err != nil {
		log.Warn("Ignoring column drag", "boundary", b.index, "error", err)
		b.session = nil
		return
	}
	b.session = session

	log.Debug("Column drag started",
		"session", session.ID,
		"boundary", b.index,
		"startWidth", session.StartWidth,
		"columns", len(session.CurrentWidths))
}

func (c *Coordinator) onDragMove(b *boundary, deltaX float64) {
	rtl := c.isRTL()

	c.mu.Lock()
	if b.destroyed || b.session == nil {
		c.mu.Unlock()
		return
	}
	widths := b.session.Move(deltaX, rtl)
	onChange := c.onChange
	c.mu.Unlock()

	if onChange != nil {
		onChange(widths)
	}
}

func (c *Coordinator) onDragEnd(b *boundary) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if b.session == nil {
		return
	}
	log.Debug("Column drag ended",
		"session", b.session.ID,
		"boundary", b.index,
		"width", b.session.CurrentWidths[b.index])
	b.session = nil
}
