package vwindow

// WheelLineStep converts line-based wheel deltas (GLFW, terminals) to
// scroll distance.
const WheelLineStep = 30

// ScrollContainer is an in-memory scrollable region.
//
// It behaves like a native scroll container: offsets are clamped to the
// content size, moving an offset emits a scroll signal, wheel input scrolls
// natively unless a wheel listener prevents it, and size observers hear the
// current size on subscription and every change after that.
//
// Backends own one ScrollContainer per list and feed it measured sizes and
// raw input; the engine reads it through the Container interface and
// listens to it through Sources().
type ScrollContainer struct {
	ScrollX       float64 // Horizontal scroll position
	ScrollY       float64 // Vertical scroll position
	ContentWidth  float64 // Width of the content block
	ContentHeight float64 // Height of the content block

	client Size

	sizeListeners   listenerSet[func(Size)]
	scrollListeners listenerSet[func()]
	wheelListeners  listenerSet[func(*WheelEvent)]
}

// NewScrollContainer creates a container with the given client size.
func NewScrollContainer(client Size) *ScrollContainer {
	return &ScrollContainer{client: client}
}

// Sources returns the container as the three engine signal sources.
func (c *ScrollContainer) Sources() Sources {
	return Sources{Size: c, Scroll: c, Wheel: c}
}

// ClientSize implements Container.
func (c *ScrollContainer) ClientSize() Size {
	return c.client
}

// ScrollOffset implements Container.
func (c *ScrollContainer) ScrollOffset(axis Axis) float64 {
	if axis == AxisHorizontal {
		return c.ScrollX
	}
	return c.ScrollY
}

// SetScrollOffset implements Container. The offset is clamped to
// [0, MaxScroll(axis)]; a scroll signal is emitted if the position moved.
func (c *ScrollContainer) SetScrollOffset(axis Axis, offset float64) {
	if c.setOffset(axis, offset) {
		c.emitScroll()
	}
}

// ScrollBy moves the offset along axis by delta.
func (c *ScrollContainer) ScrollBy(axis Axis, delta float64) {
	c.SetScrollOffset(axis, c.ScrollOffset(axis)+delta)
}

// MaxScroll returns the largest valid offset along axis.
func (c *ScrollContainer) MaxScroll(axis Axis) float64 {
	return max(0, c.contentAlong(axis)-c.client.Along(axis))
}

// Resize sets the client size, re-clamps both offsets and notifies size
// observers when the size changed.
func (c *ScrollContainer) Resize(s Size) {
	if s == c.client {
		return
	}
	c.client = s
	moved := c.reclamp()

	c.sizeListeners.each(func(fn func(Size)) { fn(s) })
	if moved {
		c.emitScroll()
	}
}

// ApplyLayout implements LayoutTarget: the content block spans the hint's
// total extent along axis.
func (c *ScrollContainer) ApplyLayout(axis Axis, hint LayoutHint) {
	if axis == AxisHorizontal {
		c.ContentWidth = hint.Total()
	} else {
		c.ContentHeight = hint.Total()
	}
	if c.reclamp() {
		c.emitScroll()
	}
}

// Wheel delivers wheel input. Listeners run first; unless one of them
// prevents the default, the deltas scroll the container natively.
func (c *ScrollContainer) Wheel(dx, dy float64) *WheelEvent {
	ev := &WheelEvent{DeltaX: dx, DeltaY: dy}
	c.wheelListeners.each(func(fn func(*WheelEvent)) { fn(ev) })
	if ev.DefaultPrevented() {
		return ev
	}

	movedX := dx != 0 && c.setOffset(AxisHorizontal, c.ScrollX+dx)
	movedY := dy != 0 && c.setOffset(AxisVertical, c.ScrollY+dy)
	if movedX || movedY {
		c.emitScroll()
	}
	return ev
}

// PageBy scrolls by a number of pages. A page is 80% of the client extent.
func (c *ScrollContainer) PageBy(axis Axis, pages float64) {
	c.ScrollBy(axis, pages*c.client.Along(axis)*0.8)
}

// Home scrolls to the start.
func (c *ScrollContainer) Home(axis Axis) {
	c.SetScrollOffset(axis, 0)
}

// End scrolls to the end.
func (c *ScrollContainer) End(axis Axis) {
	c.SetScrollOffset(axis, c.MaxScroll(axis))
}

// ObserveSize implements SizeObserver. fn is called with the current size
// right away.
func (c *ScrollContainer) ObserveSize(fn func(Size)) func() {
	cancel := c.sizeListeners.add(fn)
	fn(c.client)
	return cancel
}

// OnScroll implements ScrollSource.
func (c *ScrollContainer) OnScroll(fn func()) func() {
	return c.scrollListeners.add(fn)
}

// OnWheel implements WheelSource.
func (c *ScrollContainer) OnWheel(fn func(*WheelEvent)) func() {
	return c.wheelListeners.add(fn)
}

// Listeners returns the number of registered size, scroll and wheel
// listeners.
func (c *ScrollContainer) Listeners() (size, scroll, wheel int) {
	return c.sizeListeners.len(), c.scrollListeners.len(), c.wheelListeners.len()
}

func (c *ScrollContainer) contentAlong(axis Axis) float64 {
	if axis == AxisHorizontal {
		return c.ContentWidth
	}
	return c.ContentHeight
}

// setOffset clamps and stores an offset and reports whether it changed.
func (c *ScrollContainer) setOffset(axis Axis, offset float64) bool {
	offset = clampf(offset, 0, c.MaxScroll(axis))
	if axis == AxisHorizontal {
		if offset == c.ScrollX {
			return false
		}
		c.ScrollX = offset
		return true
	}
	if offset == c.ScrollY {
		return false
	}
	c.ScrollY = offset
	return true
}

// reclamp re-applies the offset bounds after a size change.
func (c *ScrollContainer) reclamp() bool {
	movedX := c.setOffset(AxisHorizontal, c.ScrollX)
	movedY := c.setOffset(AxisVertical, c.ScrollY)
	return movedX || movedY
}

func (c *ScrollContainer) emitScroll() {
	c.scrollListeners.each(func(fn func()) { fn() })
}
