package vwindow

// Metrics maps between item indices and distances along the main axis for
// one list and one extent. It is a value type; build a fresh one
// whenever the list or the extent changes.
//
// Uniform extents answer every query in O(1). Variable extents walk the
// list: DistanceTo(i) and IndexOf are O(i), TotalExtent is O(N). None of
// these are cached here; the engine memoizes TotalExtent.
type Metrics[T any] struct {
	Items  []T
	Extent Extent[T]

	// ExactAnchor disables the one-item leading bias of IndexOf for
	// variable extents.
	ExactAnchor bool
}

// Len returns the number of items.
func (m Metrics[T]) Len() int {
	return len(m.Items)
}

// ExtentOf returns the extent of the item at index.
// The index must be in [0, Len()).
func (m Metrics[T]) ExtentOf(index int) float64 {
	return m.Extent.Of(index, m.Items[index])
}

// DistanceTo returns the summed extent of all items strictly before index.
// Index is clamped to [0, Len()].
func (m Metrics[T]) DistanceTo(index int) float64 {
	index = clampi(index, 0, len(m.Items))
	if e, ok := m.Extent.Uniform(); ok {
		return float64(index) * e
	}
	var sum float64
	for i := 0; i < index; i++ {
		sum += m.ExtentOf(i)
	}
	return sum
}

// TotalExtent returns the summed extent of the whole list.
func (m Metrics[T]) TotalExtent() float64 {
	return m.DistanceTo(len(m.Items))
}

// IndexOf returns the anchor index for a scroll offset.
//
// Uniform extents use floor(offset / extent); the result is not clamped and
// may be negative or past the end.
//
// Variable extents accumulate item extents until the running sum reaches
// offset and return that index plus one. The extra item is intentional: the
// range built on top of it always includes one item ahead of the anchor
// before overscan is applied. Set ExactAnchor to return the index itself.
// An offset past the end of the list returns Len().
func (m Metrics[T]) IndexOf(offset float64) int {
	if e, ok := m.Extent.Uniform(); ok {
		if e <= 0 {
			return 0
		}
		return floorIndex(offset / e)
	}
	var sum float64
	for i := range m.Items {
		sum += m.ExtentOf(i)
		if sum >= offset {
			if m.ExactAnchor {
				return i
			}
			return i + 1
		}
	}
	return len(m.Items)
}

// VisibleCount returns how many items starting at from fit in viewport.
//
// Uniform extents use ceil(viewport / extent). Variable extents accumulate
// from `from` until the sum reaches viewport and return the number of items
// consumed, or the number of remaining items if the list runs out first.
func (m Metrics[T]) VisibleCount(viewport float64, from int) int {
	if e, ok := m.Extent.Uniform(); ok {
		if e <= 0 {
			return 0
		}
		return ceilCount(viewport / e)
	}
	from = clampi(from, 0, len(m.Items))
	var sum float64
	count := 0
	for i := from; i < len(m.Items); i++ {
		sum += m.ExtentOf(i)
		count++
		if sum >= viewport {
			break
		}
	}
	return count
}

// ItemOffset returns where the item at index starts relative to the leading
// edge of a viewport scrolled to scrollOffset.
func (m Metrics[T]) ItemOffset(index int, scrollOffset float64) float64 {
	return m.DistanceTo(index) - scrollOffset
}

// totalMemo caches TotalExtent keyed on list identity and extent generation.
type totalMemo[T any] struct {
	first *T
	n     int
	gen   uint64
	value float64
	valid bool
}

// get returns the cached total, recomputing it when the list or the extent
// generation changed since the last call.
func (c *totalMemo[T]) get(m Metrics[T], gen uint64) (float64, bool) {
	first := sliceIdentity(m.Items)
	if c.valid && c.first == first && c.n == len(m.Items) && c.gen == gen {
		return c.value, true
	}
	c.first, c.n, c.gen = first, len(m.Items), gen
	c.value = m.TotalExtent()
	c.valid = true
	return c.value, false
}

func (c *totalMemo[T]) invalidate() {
	c.valid = false
}

// sliceIdentity returns the address of the first element, or nil for an
// empty slice. Together with the length it identifies a list reference.
func sliceIdentity[T any](items []T) *T {
	if len(items) == 0 {
		return nil
	}
	return &items[0]
}
