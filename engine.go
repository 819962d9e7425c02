package vwindow

import (
	"log/slog"
	"math"
	"sync/atomic"
)

// State is the lifecycle state of an Engine.
type State int

const (
	StateIdle   State = iota // No ready viewport yet; outputs are not produced
	StateActive              // Viewport ready; every trigger runs a pass
)

func (s State) String() string {
	if s == StateActive {
		return "active"
	}
	return "idle"
}

// Frame is the output of one recomputation pass.
type Frame[T any] struct {
	Range  Range
	Items  []Item[T]
	Layout LayoutHint
}

// Stats counts what the engine did with the triggers it received.
type Stats struct {
	Passes     int // Completed recomputation passes
	Suppressed int // Scroll signals swallowed by the scroll-origin flag
	Skipped    int // Triggers dropped because the container or viewport was not available
}

// Engine keeps the live window of a large list in sync with a scrollable
// container.
//
// An Engine is single-threaded: call its methods from the goroutine that
// delivers the signals (the UI or event loop goroutine). Every trigger runs
// at most one pass to completion before it returns.
type Engine[T any] struct {
	items      []T
	extent     Extent[T]
	extentGen  uint64
	total      totalMemo[T]
	ref        ContainerRef
	axis       Axis
	overscan   int
	exact      bool
	logger     *slog.Logger
	size       Size
	state      State
	window     []Item[T]
	rng        Range
	hint       LayoutHint
	stats      Stats
	frames     listenerSet[func(Frame[T])]
	cancels    []func()
	fromScroll atomic.Bool // set by ScrollTo, consumed by the next scroll signal

	inPass bool // a pass is publishing
	dirty  bool // a trigger arrived while inPass
	stale  bool // the last pass was skipped for want of a container
}

// maxRepasses bounds the passes one trigger can chain through subscriber
// side effects.
const maxRepasses = 8

// New creates an engine for items sized by extent inside the container
// resolved by ref. The engine starts Idle; it produces its first frame once
// Resize reports a ready viewport.
func New[T any](items []T, extent Extent[T], ref ContainerRef, opts ...Option) *Engine[T] {
	o := applyOptions(opts)

	e := &Engine[T]{
		items:    items,
		extent:   extent,
		ref:      ref,
		axis:     GetOpt(o, OptAxis),
		overscan: max(0, GetOpt(o, OptOverscan)),
		exact:    !GetOpt(o, OptAnchorBias),
		logger:   defaultLogger,
	}
	if HasOpt(o, OptLogger) {
		if l := GetOpt(o, OptLogger); l != nil {
			e.logger = l
		}
	}

	e.logger.Debug("vwindow engine created",
		"items", len(items),
		OptAxis.Name(), e.axis,
		OptOverscan.Name(), e.overscan,
		OptAnchorBias.Name(), !e.exact)

	return e
}

// Attach subscribes the engine to the given signal sources. The
// subscriptions are released by Close.
func (e *Engine[T]) Attach(src Sources) {
	if src.Size != nil {
		e.cancels = append(e.cancels, src.Size.ObserveSize(e.Resize))
	}
	if src.Scroll != nil {
		e.cancels = append(e.cancels, src.Scroll.OnScroll(e.HandleScroll))
	}
	if src.Wheel != nil {
		e.cancels = append(e.cancels, src.Wheel.OnWheel(e.HandleWheel))
	}
}

// Close releases every subscription made by Attach. It is safe to call
// more than once.
func (e *Engine[T]) Close() {
	for _, cancel := range e.cancels {
		cancel()
	}
	e.cancels = nil
}

// Subscribe registers fn to receive every published frame.
func (e *Engine[T]) Subscribe(fn func(Frame[T])) (cancel func()) {
	return e.frames.add(fn)
}

// Follow applies the layout hint of every published frame to t, so the
// content block t owns keeps the full list extent.
func (e *Engine[T]) Follow(t LayoutTarget) (cancel func()) {
	return e.Subscribe(func(f Frame[T]) { t.ApplyLayout(e.axis, f.Layout) })
}

// Resize handles a viewport measurement. A transition to a ready size or a
// change of a ready size runs a pass; an unready size parks the engine in
// StateIdle and leaves the last outputs untouched.
func (e *Engine[T]) Resize(s Size) {
	prev := e.size
	e.size = s

	if !s.Ready() {
		if e.state != StateIdle {
			e.logger.Debug("vwindow viewport not ready", "width", s.Width, "height", s.Height)
		}
		e.state = StateIdle
		e.stats.Skipped++
		return
	}
	if e.state == StateActive && prev == s && !e.stale {
		return
	}
	e.state = StateActive
	e.recompute("resize")
}

// SetItems replaces the list. A different list reference invalidates the
// total extent and runs a pass.
func (e *Engine[T]) SetItems(items []T) {
	if sliceIdentity(items) == sliceIdentity(e.items) && len(items) == len(e.items) {
		return
	}
	e.items = items
	e.total.invalidate()
	e.recompute("items")
}

// SetExtent replaces the extent. It does not run a pass; the next
// trigger reads the new extent.
func (e *Engine[T]) SetExtent(extent Extent[T]) {
	e.extent = extent
	e.extentGen++
}

// HandleScroll handles a scroll position change of the container.
// A change caused by ScrollTo has already been handled and is swallowed.
func (e *Engine[T]) HandleScroll() {
	if e.fromScroll.CompareAndSwap(true, false) {
		e.stats.Suppressed++
		e.logger.Debug("vwindow scroll signal suppressed")
		return
	}
	e.recompute("scroll")
}

// HandleWheel redirects vertical wheel input into horizontal scrolling for
// horizontal engines. Input whose horizontal delta dominates is left to the
// source. Vertical engines ignore wheel input.
func (e *Engine[T]) HandleWheel(ev *WheelEvent) {
	if ev == nil || e.axis != AxisHorizontal {
		return
	}
	c := e.container()
	if c == nil {
		e.stats.Skipped++
		return
	}
	if math.Abs(ev.DeltaX) > math.Abs(ev.DeltaY) {
		return
	}
	ev.PreventDefault()
	passes := e.stats.Passes
	c.SetScrollOffset(e.axis, c.ScrollOffset(e.axis)+ev.DeltaY)

	// Containers that emit no scroll signal for programmatic moves still
	// get their one pass.
	if e.stats.Passes == passes {
		e.recompute("wheel")
	}
}

// ScrollTo moves the container so the item at index sits at the leading
// edge and recomputes the window immediately. It is a no-op while the
// container is not resolvable.
func (e *Engine[T]) ScrollTo(index int) {
	c := e.container()
	if c == nil {
		e.stats.Skipped++
		return
	}

	e.fromScroll.Store(true)
	before := c.ScrollOffset(e.axis)
	c.SetScrollOffset(e.axis, e.metrics().DistanceTo(index))
	if c.ScrollOffset(e.axis) == before {
		// Position did not move, so no scroll signal will come to consume the flag.
		e.fromScroll.Store(false)
	}

	e.recompute("scrollTo")
}

// Recompute runs a pass now. It does nothing while the container is not
// resolvable or the viewport is not ready.
func (e *Engine[T]) Recompute() {
	e.recompute("explicit")
}

// Window returns the live items of the last pass.
func (e *Engine[T]) Window() []Item[T] {
	return e.window
}

// Range returns the live index range of the last pass.
func (e *Engine[T]) Range() Range {
	return e.rng
}

// Layout returns the content-block layout hint of the last pass.
func (e *Engine[T]) Layout() LayoutHint {
	return e.hint
}

// State returns the current lifecycle state.
func (e *Engine[T]) State() State {
	return e.state
}

// Axis returns the main axis.
func (e *Engine[T]) Axis() Axis {
	return e.axis
}

// Items returns the current list.
func (e *Engine[T]) Items() []T {
	return e.items
}

// Metrics returns the offset mapper for the current list and extent.
func (e *Engine[T]) Metrics() Metrics[T] {
	return e.metrics()
}

// TotalExtent returns the memoized extent of the whole list.
func (e *Engine[T]) TotalExtent() float64 {
	v, _ := e.total.get(e.metrics(), e.extentGen)
	return v
}

// Stats returns the trigger counters.
func (e *Engine[T]) Stats() Stats {
	return e.stats
}

func (e *Engine[T]) container() Container {
	if e.ref == nil {
		return nil
	}
	return e.ref()
}

func (e *Engine[T]) metrics() Metrics[T] {
	return Metrics[T]{Items: e.items, Extent: e.extent, ExactAnchor: e.exact}
}

// recompute runs a pass and publishes it. A trigger raised by a subscriber
// while the frame is being published does not nest: it marks the engine
// dirty and the pass is repeated once publishing returns, so every
// subscriber ends on the same frame.
func (e *Engine[T]) recompute(trigger string) {
	if e.inPass {
		e.dirty = true
		return
	}
	e.inPass = true
	defer func() { e.inPass = false }()

	for n := 0; ; n++ {
		e.dirty = false
		frame, ok := e.pass(trigger)
		if !ok {
			return
		}
		e.frames.each(func(fn func(Frame[T])) {
			if !e.dirty {
				fn(frame)
			}
		})
		if !e.dirty {
			return
		}
		if n == maxRepasses {
			e.logger.Warn("vwindow layout did not settle", "passes", n+1)
			return
		}
		trigger = "relayout"
	}
}

// pass is one full computation: range, leading offset, total.
func (e *Engine[T]) pass(trigger string) (Frame[T], bool) {
	if !e.size.Ready() {
		e.stats.Skipped++
		return Frame[T]{}, false
	}
	c := e.container()
	if c == nil {
		e.stale = true
		e.stats.Skipped++
		return Frame[T]{}, false
	}
	e.stale = false

	m := e.metrics()
	offset := c.ScrollOffset(e.axis)
	viewport := c.ClientSize().Along(e.axis)

	clip := NewClipper(m, offset, viewport, e.overscan)
	leading := m.DistanceTo(clip.Start)
	total, cached := e.total.get(m, e.extentGen)

	window := make([]Item[T], 0, clip.Len())
	for i := clip.Start; i < clip.End; i++ {
		window = append(window, Item[T]{Index: i, Data: e.items[i]})
	}

	e.window = window
	e.rng = clip.Range()
	e.hint = LayoutHint{LeadingOffset: leading, TrailingExtent: total - leading}
	e.stats.Passes++

	e.logger.Debug("vwindow pass",
		"trigger", trigger,
		"offset", offset,
		"viewport", viewport,
		"anchor", clip.Anchor,
		"start", clip.Start,
		"end", clip.End,
		"leading", leading,
		"total", total,
		"totalCached", cached)

	return Frame[T]{Range: e.rng, Items: e.window, Layout: e.hint}, true
}
