package vwindow

import "slices"

// Container is the scrollable region an engine reads and drives.
type Container interface {
	// ScrollOffset returns the current scroll offset along axis.
	ScrollOffset(axis Axis) float64
	// SetScrollOffset moves the region. Implementations may clamp.
	SetScrollOffset(axis Axis, offset float64)
	// ClientSize returns the size of the visible part of the region.
	ClientSize() Size
}

// ContainerRef resolves the container at call time. It returns nil while
// the container is not mounted (or after it was torn down); every engine
// operation that needs it is then a no-op.
type ContainerRef func() Container

// Ref returns a ContainerRef that always resolves to c.
func Ref(c Container) ContainerRef {
	return func() Container { return c }
}

// LayoutTarget receives layout hints. A rendering layer implements it for
// the content block it owns.
type LayoutTarget interface {
	ApplyLayout(axis Axis, hint LayoutHint)
}

// WheelEvent is one wheel input. Positive DeltaY scrolls toward the end of
// a vertical list, positive DeltaX toward the end of a horizontal one.
type WheelEvent struct {
	DeltaX, DeltaY float64

	prevented bool
}

// PreventDefault stops the source from applying its native scrolling.
func (e *WheelEvent) PreventDefault() {
	e.prevented = true
}

// DefaultPrevented reports whether a handler called PreventDefault.
func (e *WheelEvent) DefaultPrevented() bool {
	return e.prevented
}

// SizeObserver reports viewport size changes.
type SizeObserver interface {
	ObserveSize(fn func(Size)) (cancel func())
}

// ScrollSource reports scroll position changes of a container.
type ScrollSource interface {
	OnScroll(fn func()) (cancel func())
}

// WheelSource reports wheel input over a container.
type WheelSource interface {
	OnWheel(fn func(*WheelEvent)) (cancel func())
}

// Sources groups the signal capabilities an engine subscribes to.
// Nil members are skipped.
type Sources struct {
	Size   SizeObserver
	Scroll ScrollSource
	Wheel  WheelSource
}

// listenerSet is an ordered callback registry. Removal is by handle and is
// safe to call more than once or from inside a callback.
type listenerSet[F any] struct {
	entries []listenerEntry[F]
	nextID  int
}

type listenerEntry[F any] struct {
	id int
	fn F
}

// add registers fn and returns its removal func.
func (s *listenerSet[F]) add(fn F) func() {
	id := s.nextID
	s.nextID++
	s.entries = append(s.entries, listenerEntry[F]{id: id, fn: fn})
	return func() {
		s.entries = slices.DeleteFunc(s.entries, func(e listenerEntry[F]) bool {
			return e.id == id
		})
	}
}

// each calls visit for every listener registered at the time of the call.
func (s *listenerSet[F]) each(visit func(F)) {
	if len(s.entries) == 0 {
		return
	}
	snapshot := slices.Clone(s.entries)
	for _, e := range snapshot {
		visit(e.fn)
	}
}

// len returns the number of registered listeners.
func (s *listenerSet[F]) len() int {
	return len(s.entries)
}
