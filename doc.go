/*
Package vwindow renders very large ordered lists through a fixed-size
scrollable viewport without materializing every item.

# Overview

An Engine maps the scroll offset of a container to the contiguous range of
items that must be live, plus a fixed overscan margin on each side. It
recomputes that range whenever the viewport is resized, the container
scrolls, wheel input arrives, or the list changes, and publishes the result
as a Frame: the live items and a LayoutHint that positions the content block
so the scrollbar still reflects the size of the full list.

The engine never draws. Backends (see backend/opengl and backend/term)
measure the viewport, deliver input, and render whatever the last frame
contains.

# Quick Start

	box := vwindow.NewScrollContainer(vwindow.Size{Width: 300, Height: 200})
	list := make([]int, 99999)

	engine := vwindow.New(list, vwindow.Fixed[int](60), vwindow.Ref(box),
	    vwindow.WithAxis(vwindow.AxisHorizontal),
	    vwindow.WithOverscan(10))
	defer engine.Close()

	engine.Follow(box) // content width tracks the total extent
	engine.Subscribe(func(f vwindow.Frame[int]) {
	    x := f.Layout.LeadingOffset - box.ScrollX
	    for _, it := range f.Items {
	        // draw it.Data at x
	        x += 60
	    }
	})
	engine.Attach(box.Sources()) // first frame is published here

	engine.ScrollTo(500)

# Sizing

Fixed extents answer every lookup in constant time. Variable extents call
an ExtentFunc per item and are never cached, so the function must be pure.
Locating the first item for a scroll offset walks the list from the start;
the total extent is memoized per list reference.

Variable-extent lookup keeps one extra leading item: IndexOf returns the
index after the item that reaches the offset. WithAnchorBias(false) turns
this off.

# Signals

	Resize       viewport measured; first ready size activates the engine
	HandleScroll container moved; skipped once after ScrollTo
	HandleWheel  horizontal engines turn vertical wheel input into horizontal scrolling
	SetItems     new list reference
	ScrollTo     move to an index and recompute immediately

Every signal runs at most one pass synchronously. There is no queue and no
debouncing; call the engine from a single goroutine.

# Logging

Passes are traced at Debug level through log/slog. SetVerbose(true) enables
them on the package default logger; WithLogger routes one engine elsewhere.
*/
package vwindow
