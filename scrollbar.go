package vwindow

// Thumb computes scrollbar thumb geometry along a track.
//
// Parameters:
//   - content: total content extent (usually LayoutHint.Total())
//   - viewport: visible extent
//   - offset: current scroll offset
//   - track: length of the scrollbar track
//   - minThumb: smallest thumb length, so the thumb stays grabbable
//
// Content that fits in the viewport yields a thumb that fills the track.
func Thumb(content, viewport, offset, track, minThumb float64) (pos, length float64) {
	if track <= 0 {
		return 0, 0
	}
	if content <= 0 || content <= viewport {
		return 0, track
	}

	length = clampf(track*(viewport/content), min(minThumb, track), track)

	maxScroll := content - viewport
	offset = clampf(offset, 0, maxScroll)
	if maxScroll > 0 {
		pos = (offset / maxScroll) * (track - length)
	}
	return pos, length
}
