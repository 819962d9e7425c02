package vwindow

import "math"

// Axis selects the main (scrolling) axis of an engine instance.
type Axis int

const (
	AxisVertical   Axis = iota // Items stack top to bottom (default)
	AxisHorizontal             // Items stack left to right
)

func (a Axis) String() string {
	if a == AxisHorizontal {
		return "horizontal"
	}
	return "vertical"
}

// Size is the measured width and height of a surface.
type Size struct {
	Width, Height float64
}

// Ready reports whether both dimensions are positive.
// Nothing is computed for a viewport that is not ready.
func (s Size) Ready() bool {
	return s.Width > 0 && s.Height > 0
}

// Along returns the dimension that lies on the given axis.
func (s Size) Along(a Axis) float64 {
	if a == AxisHorizontal {
		return s.Width
	}
	return s.Height
}

// Item pairs a list element with its index in the full list.
type Item[T any] struct {
	Index int
	Data  T
}

// Range is a half-open index range [Start, End).
type Range struct {
	Start, End int
}

// Len returns the number of indices in the range.
func (r Range) Len() int {
	return r.End - r.Start
}

// Contains returns true if idx lies inside the range.
func (r Range) Contains(idx int) bool {
	return idx >= r.Start && idx < r.End
}

// LayoutHint positions the content block that holds the live items.
//
// LeadingOffset is the distance from the list start to the first live item.
// TrailingExtent is what remains of the total extent after that offset, so the
// block's footprint always equals the extent of the full list.
type LayoutHint struct {
	LeadingOffset  float64
	TrailingExtent float64
}

// Total returns the full extent encoded by the hint.
func (h LayoutHint) Total() float64 {
	return h.LeadingOffset + h.TrailingExtent
}

// clampf clamps a float64 value to a range.
func clampf(v, minVal, maxVal float64) float64 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// clampi clamps an int value to a range.
func clampi(v, minVal, maxVal int) int {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// floorIndex converts a non-negative quotient to an index, saturating
// instead of overflowing for huge offsets.
func floorIndex(q float64) int {
	if math.IsNaN(q) {
		return 0
	}
	if q >= math.MaxInt32 {
		return math.MaxInt32
	}
	if q <= math.MinInt32 {
		return math.MinInt32
	}
	return int(math.Floor(q))
}

// ceilCount is floorIndex for ceil(q).
func ceilCount(q float64) int {
	if math.IsNaN(q) || q <= 0 {
		return 0
	}
	if q >= math.MaxInt32 {
		return math.MaxInt32
	}
	return int(math.Ceil(q))
}
