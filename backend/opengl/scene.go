package opengl

import (
	"strconv"

	"golang.org/x/image/font/basicfont"

	"github.com/go-theft-auto/vwindow"
)

// glyphFace rasterizes the label atlas.
var glyphFace = basicfont.Face7x13

// GlyphWidth and GlyphHeight are the unscaled label cell size in pixels.
var (
	GlyphWidth  = float32(glyphFace.Advance)
	GlyphHeight = float32(glyphFace.Height)
)

// Style holds colors and metrics for drawing a list window.
type Style struct {
	ItemEven uint32
	ItemOdd  uint32
	Label    uint32
	Track    uint32
	Thumb    uint32

	Gap           float32 // Space left empty at the end of every item
	ScrollbarSize float32 // Thickness of the scrollbar along the cross axis
	MinThumb      float32
	LabelScale    float32 // Glyph scale for index labels; 0 hides labels
}

// DefaultStyle returns the demo palette.
func DefaultStyle() Style {
	return Style{
		ItemEven:      RGBA(70, 90, 140, 255),
		ItemOdd:       RGBA(90, 70, 130, 255),
		Label:         RGBA(235, 235, 240, 255),
		Track:         RGBA(40, 40, 46, 255),
		Thumb:         RGBA(150, 150, 160, 255),
		Gap:           2,
		ScrollbarSize: 8,
		MinThumb:      20,
		LabelScale:    1,
	}
}

// DrawFrame appends the live items of f and a scrollbar to dl.
//
// The list fills a client-sized area at the window origin. Items are placed
// at their offset relative to scroll along axis; the scrollbar sits on the
// trailing cross edge and is only drawn when the content overflows.
func DrawFrame[T any](dl *DrawList, f vwindow.Frame[T], m vwindow.Metrics[T], axis vwindow.Axis, scroll float64, client vwindow.Size, s Style) {
	if !client.Ready() {
		return
	}
	viewport := client.Along(axis)
	total := f.Layout.Total()
	overflow := total > viewport

	cross := float32(client.Along(crossAxis(axis)))
	if overflow {
		cross -= s.ScrollbarSize
	}

	dl.PushClipRect(0, 0, float32(client.Width), float32(client.Height))
	defer dl.PopClipRect()

	next := f.Layout.LeadingOffset - scroll
	for _, it := range f.Items {
		extent := m.ExtentOf(it.Index)
		pos := float32(next)
		length := float32(extent) - s.Gap
		next += extent

		color := s.ItemEven
		if it.Index%2 == 1 {
			color = s.ItemOdd
		}
		x, y, w, h := orient(axis, pos, 0, length, cross)
		dl.AddRect(x, y, w, h, color)

		if s.LabelScale > 0 {
			drawLabel(dl, it.Index, x, y, w, h, s)
		}
	}

	if overflow {
		track := float32(viewport)
		thumbPos, thumbLen := vwindow.Thumb(total, viewport, scroll, float64(track), float64(s.MinThumb))

		x, y, w, h := orient(axis, 0, cross, track, s.ScrollbarSize)
		dl.AddRect(x, y, w, h, s.Track)
		x, y, w, h = orient(axis, float32(thumbPos), cross, float32(thumbLen), s.ScrollbarSize)
		dl.AddRect(x, y, w, h, s.Thumb)
	}
}

// drawLabel writes the item index in the top-left corner of its rectangle,
// if it fits.
func drawLabel(dl *DrawList, index int, x, y, w, h float32, s Style) {
	text := strconv.Itoa(index)
	gw, gh := GlyphWidth*s.LabelScale, GlyphHeight*s.LabelScale
	pad := gw / 2
	if float32(len(text))*gw+2*pad > w || gh+2*pad > h {
		return
	}
	for i, ch := range text {
		d := float32(ch - '0')
		dl.AddGlyph(x+pad+float32(i)*gw, y+pad, gw, gh, d/10, (d+1)/10, s.Label)
	}
}

// orient maps main/cross coordinates to a window rectangle.
func orient(axis vwindow.Axis, main, cross, mainLen, crossLen float32) (x, y, w, h float32) {
	if axis == vwindow.AxisHorizontal {
		return main, cross, mainLen, crossLen
	}
	return cross, main, crossLen, mainLen
}

func crossAxis(axis vwindow.Axis) vwindow.Axis {
	if axis == vwindow.AxisHorizontal {
		return vwindow.AxisVertical
	}
	return vwindow.AxisHorizontal
}
