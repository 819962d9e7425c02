package vwindow

// Clipper holds the live item range for one scroll position.
// This is the core of list virtualization: only items in [Start, End) need
// to exist, no matter how long the list is.
//
// Usage:
//
//	m := vwindow.Metrics[Row]{Items: rows, Extent: vwindow.Fixed[Row](24)}
//	clip := vwindow.NewClipper(m, scrollY, viewportHeight, 5)
//	for i := clip.Start; i < clip.End; i++ {
//	    y := m.ItemOffset(i, scrollY)
//	    // Draw rows[i] at y
//	}
type Clipper struct {
	Start   int // First live index (inclusive)
	End     int // Last live index (exclusive)
	Anchor  int // Index derived from the scroll offset, before overscan
	Visible int // Items needed to fill the viewport from Anchor
	Total   int // Total number of items in the list
}

// NewClipper calculates the live item range.
//
// Parameters:
//   - m: list and extent
//   - scrollOffset: current main-axis scroll offset
//   - viewportExtent: main-axis size of the viewport, must be positive
//   - overscan: extra items on each side, negative values count as 0
//
// The result always satisfies 0 <= Start <= End <= Total.
func NewClipper[T any](m Metrics[T], scrollOffset, viewportExtent float64, overscan int) *Clipper {
	total := m.Len()
	if total == 0 {
		return &Clipper{}
	}
	if overscan < 0 {
		overscan = 0
	}

	anchor := m.IndexOf(scrollOffset)
	visible := m.VisibleCount(viewportExtent, anchor)

	start := clampi(anchor-overscan, 0, total)
	end := clampi(anchor+visible+overscan, 0, total)
	if start > end {
		start = end
	}

	return &Clipper{
		Start:   start,
		End:     end,
		Anchor:  anchor,
		Visible: visible,
		Total:   total,
	}
}

// ShouldRender returns true if the item at the given index is live.
func (c *Clipper) ShouldRender(idx int) bool {
	return idx >= c.Start && idx < c.End
}

// Len returns the number of live items.
func (c *Clipper) Len() int {
	return c.End - c.Start
}

// Range returns [Start, End) as a Range.
func (c *Clipper) Range() Range {
	return Range{Start: c.Start, End: c.End}
}
