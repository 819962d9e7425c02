package vwindow

// ExtentFunc returns the main-axis extent of one item.
// It must be pure: it is called repeatedly and its results are not cached.
type ExtentFunc[T any] func(index int, data T) float64

// Extent describes item sizing along the main axis: either one constant for
// every item or a per-item function.
//
// The zero value is a uniform extent of 0 and is not useful.
type Extent[T any] struct {
	fixed float64
	fn    ExtentFunc[T]
}

// Fixed returns a uniform extent. Lookups are O(1).
func Fixed[T any](extent float64) Extent[T] {
	return Extent[T]{fixed: extent}
}

// Variable returns a per-item extent backed by fn.
func Variable[T any](fn ExtentFunc[T]) Extent[T] {
	return Extent[T]{fn: fn}
}

// Uniform returns the constant extent and true for uniform sizing.
func (e Extent[T]) Uniform() (float64, bool) {
	if e.fn == nil {
		return e.fixed, true
	}
	return 0, false
}

// Of returns the extent of the item at index. Values are not validated;
// negative or NaN results from a variable function are the caller's problem.
func (e Extent[T]) Of(index int, data T) float64 {
	if e.fn == nil {
		return e.fixed
	}
	return e.fn(index, data)
}
