package term

import (
	"math"

	"github.com/go-theft-auto/vwindow"
)

// Terminal cells are mapped to pixels so extents keep their pixel meaning.
const (
	CellWidth  = 8
	CellHeight = 16
)

// span is the cell range [first, last) an item covers along the main axis.
type span struct {
	index       int
	first, last int
}

// cellSize returns the pixel size of one cell along axis.
func cellSize(axis vwindow.Axis) float64 {
	if axis == vwindow.AxisHorizontal {
		return CellWidth
	}
	return CellHeight
}

// rasterize maps the live items of a frame onto n cells along axis. Items
// that round to less than one cell or fall outside [0, n) are dropped.
func rasterize[T any](f vwindow.Frame[T], m vwindow.Metrics[T], axis vwindow.Axis, scroll float64, n int) []span {
	cell := cellSize(axis)
	spans := make([]span, 0, len(f.Items))

	pos := f.Layout.LeadingOffset - scroll
	for _, it := range f.Items {
		extent := m.ExtentOf(it.Index)
		first := int(math.Round(pos / cell))
		last := int(math.Round((pos + extent) / cell))
		pos += extent

		first, last = max(first, 0), min(last, n)
		if last <= first {
			continue
		}
		spans = append(spans, span{index: it.Index, first: first, last: last})
	}
	return spans
}

// thumbCells is vwindow.Thumb in whole cells.
func thumbCells(content, viewport, offset float64, track int) (pos, length int) {
	p, l := vwindow.Thumb(content, viewport, offset, float64(track), 1)
	pos = int(math.Round(p))
	length = max(1, int(math.Round(l)))
	if pos+length > track {
		pos = max(0, track-length)
	}
	return pos, length
}
