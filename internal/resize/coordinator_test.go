package resize

import (
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const waitTimeout = 2 * time.Second

type fakeElement struct {
	name string
}

func (e *fakeElement) Bounds() Rect { return Rect{} }

type fakeController struct {
	el         Element
	events     chan<- DragEvent
	mu         sync.Mutex
	autoScroll bool
	destroyed  bool
}

func (f *fakeController) SetAutoScrollEnabled(enabled bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.autoScroll = enabled
}

func (f *fakeController) Destroy() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.destroyed = true
}

func (f *fakeController) isDestroyed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.destroyed
}

type fakeEngine struct {
	mu      sync.Mutex
	created []*fakeController
}

func (e *fakeEngine) factory(el Element, events chan<- DragEvent) DragController {
	e.mu.Lock()
	defer e.mu.Unlock()
	c := &fakeController{el: el, events: events, autoScroll: true}
	e.created = append(e.created, c)
	return c
}

func (e *fakeEngine) live(el Element) *fakeController {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i := len(e.created) - 1; i >= 0; i-- {
		if e.created[i].el == el && !e.created[i].isDestroyed() {
			return e.created[i]
		}
	}
	return nil
}

func (e *fakeEngine) count() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.created)
}

type fakeRow struct {
	mu     sync.Mutex
	widths []float64
}

func (r *fakeRow) ColumnCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.widths)
}

func (r *fakeRow) MeasureColumnWidths() []float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]float64, len(r.widths))
	copy(out, r.widths)
	return out
}

func (r *fakeRow) set(widths []float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.widths = widths
}

type harness struct {
	engine  *fakeEngine
	row     *fakeRow
	emitted chan []float64
	coord   *Coordinator
	rtl     bool
}

func newHarness(t *testing.T, widths ...float64) *harness {
	t.Helper()
	h := &harness{
		engine:  &fakeEngine{},
		row:     &fakeRow{widths: widths},
		emitted: make(chan []float64, 64),
	}
	h.coord = NewCoordinator(Options{
		Factory:  h.engine.factory,
		Measurer: h.row,
		OnChange: func(w []float64) { h.emitted <- w },
		IsRTL:    func() bool { return h.rtl },
	})
	t.Cleanup(h.coord.Close)
	return h
}

func (h *harness) send(t *testing.T, el Element, ev DragEvent) {
	t.Helper()
	ctrl := h.engine.live(el)
	require.NotNil(t, ctrl, "no live controller for element")
	ctrl.events <- ev
}

func (h *harness) next(t *testing.T) []float64 {
	t.Helper()
	select {
	case w := <-h.emitted:
		return w
	case <-time.After(waitTimeout):
		t.Fatal("timed out waiting for width vector")
		return nil
	}
}

func (h *harness) expectSilence(t *testing.T) {
	t.Helper()
	select {
	case w := <-h.emitted:
		t.Fatalf("unexpected width vector %v", w)
	case <-time.After(50 * time.Millisecond):
	}
}

func (h *harness) drag(t *testing.T, el Element, deltas ...float64) [][]float64 {
	t.Helper()
	h.send(t, el, DragEvent{Type: EventDragStart})
	var out [][]float64
	for _, d := range deltas {
		h.send(t, el, DragEvent{Type: EventDragMove, DeltaX: d})
		out = append(out, h.next(t))
	}
	h.send(t, el, DragEvent{Type: EventDragEnd})
	return out
}

func TestCoordinator_ScenarioA(t *testing.T) {
	h := newHarness(t, 100, 150, 80)
	el := &fakeElement{name: "b0"}
	require.NoError(t, h.coord.Attach(0, el))

	got := h.drag(t, el, 30)
	assert.Equal(t, [][]float64{{130, 150, 80}}, got)
}

func TestCoordinator_ScenarioB_RTL(t *testing.T) {
	h := newHarness(t, 100, 150, 80)
	h.rtl = true
	el := &fakeElement{name: "b1"}
	require.NoError(t, h.coord.Attach(1, el))

	got := h.drag(t, el, 10)
	assert.Equal(t, [][]float64{{100, 140, 80}}, got)
}

func TestCoordinator_ScenarioC_ClampsToMinimum(t *testing.T) {
	h := newHarness(t, 100, 150, 80)
	el := &fakeElement{name: "b0"}
	require.NoError(t, h.coord.Attach(0, el))

	got := h.drag(t, el, -500)
	assert.Equal(t, [][]float64{{20, 150, 80}}, got)
}

func TestCoordinator_ScenarioD_NoBoundaryAfterLastColumn(t *testing.T) {
	h := newHarness(t, 100, 150, 80)

	err := h.coord.Attach(2, &fakeElement{name: "b2"})
	assert.ErrorIs(t, err, ErrBoundaryOutOfRange)
	assert.Equal(t, 0, h.engine.count())

	err = h.coord.Attach(-1, &fakeElement{name: "neg"})
	assert.ErrorIs(t, err, ErrBoundaryOutOfRange)
}

func TestCoordinator_EmitsEveryMoveFromStartSnapshot(t *testing.T) {
	h := newHarness(t, 100, 150, 80)
	el := &fakeElement{name: "b0"}
	require.NoError(t, h.coord.Attach(0, el))

	got := h.drag(t, el, 5, 12, -40, -200, 0)
	assert.Equal(t, [][]float64{
		{105, 150, 80},
		{112, 150, 80},
		{60, 150, 80},
		{20, 150, 80},
		{100, 150, 80},
	}, got)
}

func TestCoordinator_ZeroDeltaDragEmitsStartSnapshot(t *testing.T) {
	h := newHarness(t, 41, 77.5, 300)
	el := &fakeElement{name: "b1"}
	require.NoError(t, h.coord.Attach(1, el))

	for _, w := range h.drag(t, el, 0, 0, 0) {
		assert.Equal(t, []float64{41, 77.5, 300}, w)
	}
}

func TestCoordinator_EmittedVectorsDoNotAlias(t *testing.T) {
	h := newHarness(t, 100, 150, 80)
	el := &fakeElement{name: "b0"}
	require.NoError(t, h.coord.Attach(0, el))

	h.send(t, el, DragEvent{Type: EventDragStart})
	h.send(t, el, DragEvent{Type: EventDragMove, DeltaX: 10})
	first := h.next(t)
	h.send(t, el, DragEvent{Type: EventDragMove, DeltaX: 50})
	second := h.next(t)

	assert.Equal(t, []float64{110, 150, 80}, first)
	assert.Equal(t, []float64{150, 150, 80}, second)
}

func TestCoordinator_MeasuresFreshAtEachDragStart(t *testing.T) {
	h := newHarness(t, 100, 150, 80)
	el := &fakeElement{name: "b0"}
	require.NoError(t, h.coord.Attach(0, el))

	assert.Equal(t, [][]float64{{130, 150, 80}}, h.drag(t, el, 30))

	h.row.mu.Lock()
	h.row.widths = []float64{130, 150, 80}
	h.row.mu.Unlock()

	assert.Equal(t, [][]float64{{140, 150, 80}}, h.drag(t, el, 10))
}

func TestCoordinator_MoveWithoutStartIsIgnored(t *testing.T) {
	h := newHarness(t, 100, 150, 80)
	el := &fakeElement{name: "b0"}
	require.NoError(t, h.coord.Attach(0, el))

	h.send(t, el, DragEvent{Type: EventDragMove, DeltaX: 10})
	h.expectSilence(t)

	h.drag(t, el, 1)
	h.send(t, el, DragEvent{Type: EventDragMove, DeltaX: 10})
	h.expectSilence(t)
}

func TestCoordinator_DragEndDoesNotEmit(t *testing.T) {
	h := newHarness(t, 100, 150, 80)
	el := &fakeElement{name: "b0"}
	require.NoError(t, h.coord.Attach(0, el))

	h.drag(t, el, 3)
	h.expectSilence(t)
	assert.Eventually(t, func() bool { return !h.coord.Dragging(0) }, waitTimeout, time.Millisecond)
}

func TestCoordinator_BoundariesAreIndependent(t *testing.T) {
	h := newHarness(t, 100, 150, 80)
	b0 := &fakeElement{name: "b0"}
	b1 := &fakeElement{name: "b1"}
	require.NoError(t, h.coord.Attach(0, b0))
	require.NoError(t, h.coord.Attach(1, b1))

	assert.Equal(t, [][]float64{{100, 175, 80}}, h.drag(t, b1, 25))
	assert.Equal(t, [][]float64{{90, 150, 80}}, h.drag(t, b0, -10))
}

func TestCoordinator_NoCallbackConfigured(t *testing.T) {
	engine := &fakeEngine{}
	coord := NewCoordinator(Options{
		Factory:  engine.factory,
		Measurer: &fakeRow{widths: []float64{100, 150}},
	})
	defer coord.Close()

	el := &fakeElement{name: "b0"}
	require.NoError(t, coord.Attach(0, el))
	ctrl := engine.live(el)
	ctrl.events <- DragEvent{Type: EventDragStart}
	ctrl.events <- DragEvent{Type: EventDragMove, DeltaX: 10}

	assert.Eventually(t, func() bool { return coord.Dragging(0) }, waitTimeout, time.Millisecond)
}

func TestCoordinator_SetOnChangeSwapsCallback(t *testing.T) {
	h := newHarness(t, 100, 150)
	el := &fakeElement{name: "b0"}
	require.NoError(t, h.coord.Attach(0, el))

	other := make(chan []float64, 4)
	h.coord.SetOnChange(func(w []float64) { other <- w })

	h.send(t, el, DragEvent{Type: EventDragStart})
	h.send(t, el, DragEvent{Type: EventDragMove, DeltaX: 1})

	select {
	case w := <-other:
		assert.Equal(t, []float64{101, 150}, w)
	case <-time.After(waitTimeout):
		t.Fatal("timed out waiting for swapped callback")
	}
	h.expectSilence(t)
}

// newManualCoordinator wires a coordinator whose callback writes every vector
// back into the row after a delay, the way a slow UI loop would.
func newManualCoordinator(t *testing.T, row *fakeRow, applied *[][]float64) (*Coordinator, *fakeEngine) {
	t.Helper()
	engine := &fakeEngine{}
	coord := NewCoordinator(Options{
		Factory:  engine.factory,
		Measurer: row,
		Manual:   true,
		OnChange: func(w []float64) {
			time.Sleep(10 * time.Millisecond)
			row.set(w)
			*applied = append(*applied, w)
		},
	})
	t.Cleanup(coord.Close)
	return coord, engine
}

func TestCoordinator_ManualHandlesNothingUntilDispatch(t *testing.T) {
	row := &fakeRow{widths: []float64{100, 150, 80}}
	var applied [][]float64
	coord, engine := newManualCoordinator(t, row, &applied)

	el := &fakeElement{name: "b0"}
	require.NoError(t, coord.Attach(0, el))
	ctrl := engine.live(el)
	ctrl.events <- DragEvent{Type: EventDragStart}
	ctrl.events <- DragEvent{Type: EventDragMove, DeltaX: 10}

	time.Sleep(50 * time.Millisecond)
	assert.Empty(t, applied)
	assert.False(t, coord.Dragging(0))

	coord.Dispatch()
	assert.Equal(t, [][]float64{{110, 150, 80}}, applied)
	assert.True(t, coord.Dragging(0))

	coord.Dispatch()
	assert.Len(t, applied, 1)
}

func TestCoordinator_DispatchAppliesWidthsBeforeNextDragStart(t *testing.T) {
	row := &fakeRow{widths: []float64{100, 150, 80}}
	var applied [][]float64
	coord, engine := newManualCoordinator(t, row, &applied)

	b0 := &fakeElement{name: "b0"}
	b1 := &fakeElement{name: "b1"}
	require.NoError(t, coord.Attach(0, b0))
	require.NoError(t, coord.Attach(1, b1))
	c0 := engine.live(b0)
	c1 := engine.live(b1)

	// Release boundary 0 and press boundary 1 before the loop catches up.
	c0.events <- DragEvent{Type: EventDragStart}
	c0.events <- DragEvent{Type: EventDragMove, DeltaX: 30}
	c0.events <- DragEvent{Type: EventDragEnd}
	c1.events <- DragEvent{Type: EventDragStart}
	c1.events <- DragEvent{Type: EventDragMove, DeltaX: 5}
	coord.Dispatch()

	assert.Equal(t, [][]float64{{130, 150, 80}, {130, 155, 80}}, applied)
	assert.Equal(t, []float64{130, 155, 80}, row.MeasureColumnWidths())
}

func TestCoordinator_DispatchPerMessageKeepsEveryResize(t *testing.T) {
	row := &fakeRow{widths: []float64{100, 150, 80}}
	var applied [][]float64
	coord, engine := newManualCoordinator(t, row, &applied)

	b0 := &fakeElement{name: "b0"}
	b1 := &fakeElement{name: "b1"}
	require.NoError(t, coord.Attach(0, b0))
	require.NoError(t, coord.Attach(1, b1))

	steps := []struct {
		el Element
		ev DragEvent
	}{
		{b1, DragEvent{Type: EventDragStart}},
		{b1, DragEvent{Type: EventDragMove, DeltaX: -20}},
		{b1, DragEvent{Type: EventDragEnd}},
		{b0, DragEvent{Type: EventDragStart}},
		{b0, DragEvent{Type: EventDragMove, DeltaX: 15}},
		{b0, DragEvent{Type: EventDragEnd}},
	}
	for _, s := range steps {
		engine.live(s.el).events <- s.ev
		coord.Dispatch()
	}

	assert.Equal(t, []float64{115, 130, 80}, row.MeasureColumnWidths())
}

func TestCoordinator_DetachFromCallbackStopsLaterMoves(t *testing.T) {
	row := &fakeRow{widths: []float64{100, 150, 80}}
	engine := &fakeEngine{}
	var coord *Coordinator
	var applied [][]float64
	coord = NewCoordinator(Options{
		Factory:  engine.factory,
		Measurer: row,
		Manual:   true,
		OnChange: func(w []float64) {
			applied = append(applied, w)
			coord.Sync(nil)
		},
	})
	t.Cleanup(coord.Close)

	el := &fakeElement{name: "b0"}
	require.NoError(t, coord.Attach(0, el))
	ctrl := engine.live(el)
	ctrl.events <- DragEvent{Type: EventDragStart}
	ctrl.events <- DragEvent{Type: EventDragMove, DeltaX: 10}
	ctrl.events <- DragEvent{Type: EventDragMove, DeltaX: 20}
	ctrl.events <- DragEvent{Type: EventDragMove, DeltaX: 30}
	coord.Dispatch()

	assert.Equal(t, [][]float64{{110, 150, 80}}, applied)
	assert.True(t, ctrl.isDestroyed())
	assert.Equal(t, 0, coord.Len())
	assert.False(t, coord.Dragging(0))
}

func TestRegistry_AttachDisablesAutoScroll(t *testing.T) {
	h := newHarness(t, 100, 150, 80)
	el := &fakeElement{name: "b0"}
	require.NoError(t, h.coord.Attach(0, el))

	ctrl := h.engine.live(el)
	require.NotNil(t, ctrl)
	ctrl.mu.Lock()
	defer ctrl.mu.Unlock()
	assert.False(t, ctrl.autoScroll)
}

func TestRegistry_DuplicateAttachFailsWithoutOverwriting(t *testing.T) {
	h := newHarness(t, 100, 150, 80)
	first := &fakeElement{name: "first"}
	require.NoError(t, h.coord.Attach(0, first))

	err := h.coord.Attach(0, &fakeElement{name: "second"})
	assert.ErrorIs(t, err, ErrDuplicateBoundary)
	assert.Equal(t, 1, h.engine.count())
	assert.NotNil(t, h.engine.live(first))
}

func TestRegistry_DetachMissingIsNoop(t *testing.T) {
	h := newHarness(t, 100, 150, 80)
	assert.NotPanics(t, func() {
		h.coord.Detach(0)
		h.coord.Detach(7)
	})

	el := &fakeElement{name: "b0"}
	require.NoError(t, h.coord.Attach(0, el))
	h.coord.Detach(0)
	assert.NotPanics(t, func() { h.coord.Detach(0) })
	assert.Equal(t, 0, h.coord.Len())
}

func TestRegistry_NilFactoryDisablesResizing(t *testing.T) {
	coord := NewCoordinator(Options{Measurer: &fakeRow{widths: []float64{1, 2, 3}}})
	defer coord.Close()

	assert.False(t, coord.Enabled())
	assert.NoError(t, coord.Attach(0, &fakeElement{}))
	coord.Sync([]Element{&fakeElement{}, &fakeElement{}})
	assert.Equal(t, 0, coord.Len())
}

func TestRegistry_TeardownMidDragStopsEmission(t *testing.T) {
	h := newHarness(t, 100, 150, 80)
	el := &fakeElement{name: "b0"}
	require.NoError(t, h.coord.Attach(0, el))

	ctrl := h.engine.live(el)
	h.send(t, el, DragEvent{Type: EventDragStart})
	h.send(t, el, DragEvent{Type: EventDragMove, DeltaX: 10})
	assert.Equal(t, []float64{110, 150, 80}, h.next(t))

	assert.NotPanics(t, func() { h.coord.Detach(0) })
	assert.True(t, ctrl.isDestroyed())

	// A misbehaving engine publishing after Destroy must go nowhere.
	ctrl.events <- DragEvent{Type: EventDragMove, DeltaX: 20}
	ctrl.events <- DragEvent{Type: EventDragEnd}
	h.expectSilence(t)
	assert.False(t, h.coord.Dragging(0))
}

func TestRegistry_SyncKeepsStableElements(t *testing.T) {
	h := newHarness(t, 100, 150, 80, 60)
	b0 := &fakeElement{name: "b0"}
	b1 := &fakeElement{name: "b1"}
	b2 := &fakeElement{name: "b2"}

	h.coord.Sync([]Element{b0, b1, b2})
	assert.Equal(t, []int{0, 1, 2}, h.coord.Indices())
	assert.Equal(t, 3, h.engine.count())

	// Re-render with identical elements.
	h.coord.Sync([]Element{b0, b1, b2})
	assert.Equal(t, 3, h.engine.count())

	// Column count shrank: boundary 2 disappears.
	h.coord.Sync([]Element{b0, b1})
	assert.Equal(t, []int{0, 1}, h.coord.Indices())
	assert.Equal(t, 3, h.engine.count())

	// New identity for boundary 1 replaces its controller.
	nb1 := &fakeElement{name: "nb1"}
	h.coord.Sync([]Element{b0, nb1})
	assert.Equal(t, []int{0, 1}, h.coord.Indices())
	assert.Equal(t, 4, h.engine.count())
	assert.Nil(t, h.engine.live(b1))
	assert.NotNil(t, h.engine.live(nb1))

	// Unmounted slot.
	h.coord.Sync([]Element{nil, nb1})
	assert.Equal(t, []int{1}, h.coord.Indices())
}

func TestRegistry_SyncPreservesInFlightDrag(t *testing.T) {
	h := newHarness(t, 100, 150, 80)
	b0 := &fakeElement{name: "b0"}
	b1 := &fakeElement{name: "b1"}
	h.coord.Sync([]Element{b0, b1})

	h.send(t, b0, DragEvent{Type: EventDragStart})
	h.send(t, b0, DragEvent{Type: EventDragMove, DeltaX: 4})
	assert.Equal(t, []float64{104, 150, 80}, h.next(t))

	h.coord.Sync([]Element{b0, b1})

	h.send(t, b0, DragEvent{Type: EventDragMove, DeltaX: 8})
	assert.Equal(t, []float64{108, 150, 80}, h.next(t))
}

func TestRegistry_InvariantUnderRandomInterleavings(t *testing.T) {
	const boundaries = 6
	h := newHarness(t, 10, 20, 30, 40, 50, 60, 70)
	rng := rand.New(rand.NewSource(42))

	mounted := make(map[int]Element)
	for range 500 {
		idx := rng.Intn(boundaries)
		if _, ok := mounted[idx]; ok {
			h.coord.Detach(idx)
			delete(mounted, idx)
		} else {
			el := &fakeElement{}
			require.NoError(t, h.coord.Attach(idx, el))
			mounted[idx] = el
		}

		var want []int
		for i := range boundaries {
			if _, ok := mounted[i]; ok {
				want = append(want, i)
			}
		}
		if want == nil {
			want = []int{}
		}
		require.Equal(t, want, h.coord.Indices())
	}

	for idx, el := range mounted {
		assert.NotNil(t, h.engine.live(el), "boundary %d lost its controller", idx)
	}

	live := 0
	h.engine.mu.Lock()
	for _, c := range h.engine.created {
		if !c.isDestroyed() {
			live++
		}
	}
	h.engine.mu.Unlock()
	assert.Equal(t, len(mounted), live)
}

func TestRegistry_CloseDestroysEverything(t *testing.T) {
	engine := &fakeEngine{}
	coord := NewCoordinator(Options{
		Factory:  engine.factory,
		Measurer: &fakeRow{widths: []float64{1, 2, 3}},
	})
	coord.Sync([]Element{&fakeElement{}, &fakeElement{}})
	coord.Close()

	assert.Equal(t, 0, coord.Len())
	for _, c := range engine.created {
		assert.True(t, c.isDestroyed())
	}
}

func TestEventType_String(t *testing.T) {
	assert.Equal(t, "dragstart", EventDragStart.String())
	assert.Equal(t, "dragmove", EventDragMove.String())
	assert.Equal(t, "dragend", EventDragEnd.String())
	assert.Equal(t, "unknown", EventType(9).String())
}

func TestBoundaryCount(t *testing.T) {
	assert.Equal(t, 0, BoundaryCount(nil))
	assert.Equal(t, 0, BoundaryCount([]ColumnSpec{{}}))
	assert.Equal(t, 2, BoundaryCount([]ColumnSpec{{}, {}, {}}))
}

func TestRect_Contains(t *testing.T) {
	r := Rect{X: 5, Y: 1, Width: 2, Height: 1}
	assert.True(t, r.Contains(5, 1))
	assert.True(t, r.Contains(6, 1))
	assert.False(t, r.Contains(7, 1))
	assert.False(t, r.Contains(5, 2))
	assert.False(t, r.Contains(4, 1))
}
