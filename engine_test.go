package vwindow_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-theft-auto/vwindow"
)

// stillContainer moves when told to but never emits scroll signals.
type stillContainer struct {
	offset float64
	client vwindow.Size
	sets   int
}

func (c *stillContainer) ScrollOffset(vwindow.Axis) float64 { return c.offset }

func (c *stillContainer) SetScrollOffset(_ vwindow.Axis, v float64) {
	c.offset = v
	c.sets++
}

func (c *stillContainer) ClientSize() vwindow.Size { return c.client }

func horizontalDemo(t *testing.T) (*vwindow.Engine[int], *vwindow.ScrollContainer) {
	t.Helper()

	box := vwindow.NewScrollContainer(vwindow.Size{Width: 300, Height: 200})
	engine := vwindow.New(intList(99999), vwindow.Fixed[int](50), vwindow.Ref(box),
		vwindow.WithAxis(vwindow.AxisHorizontal),
		vwindow.WithOverscan(10))
	engine.Follow(box)
	engine.Attach(box.Sources())
	t.Cleanup(engine.Close)

	return engine, box
}

func TestEngineInitialFrame(t *testing.T) {
	engine, box := horizontalDemo(t)

	assert.Equal(t, vwindow.StateActive, engine.State())
	assert.Equal(t, vwindow.Range{Start: 0, End: 16}, engine.Range())
	assert.Equal(t, vwindow.LayoutHint{LeadingOffset: 0, TrailingExtent: 4999950}, engine.Layout())
	assert.Equal(t, 4999950.0, box.ContentWidth)
	assert.Equal(t, 1, engine.Stats().Passes)

	window := engine.Window()
	require.Len(t, window, 16)
	for i, it := range window {
		assert.Equal(t, i, it.Index)
		assert.Equal(t, i, it.Data)
	}
}

func TestEngineScrollToRunsOnePass(t *testing.T) {
	engine, box := horizontalDemo(t)

	engine.ScrollTo(500)

	assert.Equal(t, 25000.0, box.ScrollX)
	assert.Equal(t, vwindow.Range{Start: 490, End: 516}, engine.Range())
	assert.Equal(t, 24500.0, engine.Layout().LeadingOffset)
	assert.Equal(t, 4999950.0, engine.Layout().Total())

	stats := engine.Stats()
	assert.Equal(t, 2, stats.Passes)
	assert.Equal(t, 1, stats.Suppressed)
}

func TestEngineScrollSuppressedOnce(t *testing.T) {
	c := &stillContainer{client: vwindow.Size{Width: 300, Height: 200}}
	engine := vwindow.New(intList(99999), vwindow.Fixed[int](50), vwindow.Ref(c),
		vwindow.WithAxis(vwindow.AxisHorizontal),
		vwindow.WithOverscan(10))
	engine.Resize(c.client)

	engine.ScrollTo(500)
	require.Equal(t, 2, engine.Stats().Passes)
	require.Equal(t, 25000.0, c.offset)
	before := engine.Window()

	// The scroll signal caused by ScrollTo arrives late and is swallowed.
	engine.HandleScroll()
	assert.Equal(t, 2, engine.Stats().Passes)
	assert.Equal(t, 1, engine.Stats().Suppressed)
	assert.Equal(t, before, engine.Window())

	engine.HandleScroll()
	assert.Equal(t, 3, engine.Stats().Passes)
	assert.Equal(t, 1, engine.Stats().Suppressed)
}

func TestEngineScrollToSamePosition(t *testing.T) {
	c := &stillContainer{client: vwindow.Size{Width: 300, Height: 200}}
	engine := vwindow.New(intList(100), vwindow.Fixed[int](50), vwindow.Ref(c))
	engine.Resize(c.client)

	engine.ScrollTo(0)
	require.Equal(t, 2, engine.Stats().Passes)

	// Nothing moved, so the next user scroll must not be swallowed.
	engine.HandleScroll()
	assert.Equal(t, 3, engine.Stats().Passes)
	assert.Zero(t, engine.Stats().Suppressed)
}

func TestEngineVerticalVariable(t *testing.T) {
	box := vwindow.NewScrollContainer(vwindow.Size{Width: 200, Height: 300})
	engine := vwindow.New(intList(99999), vwindow.Variable(alternating), vwindow.Ref(box),
		vwindow.WithOverscan(10))
	engine.Subscribe(func(f vwindow.Frame[int]) {
		box.ApplyLayout(engine.Axis(), f.Layout)
	})
	engine.Attach(box.Sources())
	defer engine.Close()

	m := engine.Metrics()
	total := engine.TotalExtent()
	assert.Equal(t, total, box.ContentHeight)

	for _, offset := range []float64{0, 60, 142, 5000, 12345, total - 300} {
		box.SetScrollOffset(vwindow.AxisVertical, offset)

		rng := engine.Range()
		hint := engine.Layout()
		require.Equal(t, m.DistanceTo(rng.Start), hint.LeadingOffset, "offset %v", offset)
		require.InDelta(t, total, hint.Total(), 1e-6, "offset %v", offset)

		window := engine.Window()
		require.Len(t, window, rng.Len())
		for i, it := range window {
			require.Equal(t, rng.Start+i, it.Index)
		}

		var block float64
		for _, it := range window {
			block += m.ExtentOf(it.Index)
		}
		require.InDelta(t, total, hint.LeadingOffset+block+m.DistanceTo(99999)-m.DistanceTo(rng.End), 1e-6)
	}
}

func TestEngineEmptyList(t *testing.T) {
	box := vwindow.NewScrollContainer(vwindow.Size{Width: 300, Height: 200})
	engine := vwindow.New([]int{}, vwindow.Fixed[int](50), vwindow.Ref(box))
	engine.Attach(box.Sources())
	defer engine.Close()

	assert.Empty(t, engine.Window())
	assert.Equal(t, vwindow.Range{}, engine.Range())
	assert.Equal(t, vwindow.LayoutHint{}, engine.Layout())

	engine.ScrollTo(3)
	engine.HandleScroll()
	assert.Empty(t, engine.Window())
	assert.Equal(t, vwindow.LayoutHint{}, engine.Layout())
}

func TestEngineWaitsForReadyViewport(t *testing.T) {
	box := vwindow.NewScrollContainer(vwindow.Size{Width: 0, Height: 200})
	engine := vwindow.New(intList(100), vwindow.Fixed[int](50), vwindow.Ref(box),
		vwindow.WithAxis(vwindow.AxisHorizontal))
	engine.Attach(box.Sources())
	defer engine.Close()

	assert.Equal(t, vwindow.StateIdle, engine.State())
	assert.Nil(t, engine.Window())
	assert.Zero(t, engine.Stats().Passes)

	engine.HandleScroll()
	engine.Recompute()
	assert.Zero(t, engine.Stats().Passes)

	box.Resize(vwindow.Size{Width: 300, Height: 200})
	assert.Equal(t, vwindow.StateActive, engine.State())
	assert.Equal(t, 1, engine.Stats().Passes)
	ready := engine.Window()
	require.NotEmpty(t, ready)

	// Collapsing again parks the engine but keeps the last outputs.
	box.Resize(vwindow.Size{Width: 0, Height: 200})
	assert.Equal(t, vwindow.StateIdle, engine.State())
	assert.Equal(t, ready, engine.Window())
	assert.Equal(t, 1, engine.Stats().Passes)
}

func TestEngineResizeIdempotent(t *testing.T) {
	c := &stillContainer{client: vwindow.Size{Width: 300, Height: 200}}
	engine := vwindow.New(intList(100), vwindow.Fixed[int](50), vwindow.Ref(c))

	engine.Resize(c.client)
	first := engine.Window()
	engine.Resize(c.client)

	assert.Equal(t, 1, engine.Stats().Passes)
	assert.Equal(t, first, engine.Window())

	c.client = vwindow.Size{Width: 300, Height: 400}
	engine.Resize(c.client)
	assert.Equal(t, 2, engine.Stats().Passes)
	assert.Equal(t, vwindow.Range{Start: 0, End: 13}, engine.Range())
}

func TestEngineUnresolvableContainer(t *testing.T) {
	tests := []struct {
		name string
		ref  vwindow.ContainerRef
	}{
		{"nil ref", nil},
		{"unmounted", func() vwindow.Container { return nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := vwindow.New(intList(100), vwindow.Fixed[int](50), tt.ref,
				vwindow.WithAxis(vwindow.AxisHorizontal))

			engine.Resize(vwindow.Size{Width: 300, Height: 200})
			engine.ScrollTo(20)
			engine.HandleScroll()

			ev := &vwindow.WheelEvent{DeltaY: 40}
			engine.HandleWheel(ev)

			assert.False(t, ev.DefaultPrevented())
			assert.Nil(t, engine.Window())
			assert.Zero(t, engine.Stats().Passes)
			assert.Positive(t, engine.Stats().Skipped)
		})
	}
}

func TestEngineResizeRetriesAfterMissingContainer(t *testing.T) {
	c := &stillContainer{client: vwindow.Size{Width: 300, Height: 200}}
	var mounted bool
	ref := func() vwindow.Container {
		if !mounted {
			return nil
		}
		return c
	}
	engine := vwindow.New(intList(100), vwindow.Fixed[int](50), ref)

	engine.Resize(c.client)
	require.Zero(t, engine.Stats().Passes)

	mounted = true
	engine.Resize(c.client)
	assert.Equal(t, 1, engine.Stats().Passes)
	assert.Equal(t, vwindow.Range{Start: 0, End: 9}, engine.Range())

	// Settled now: the same size is a no-op again.
	engine.Resize(c.client)
	assert.Equal(t, 1, engine.Stats().Passes)
}

func TestEngineWheelRedirect(t *testing.T) {
	c := &stillContainer{client: vwindow.Size{Width: 300, Height: 200}}
	engine := vwindow.New(intList(100), vwindow.Fixed[int](50), vwindow.Ref(c),
		vwindow.WithAxis(vwindow.AxisHorizontal),
		vwindow.WithOverscan(10))
	engine.Resize(c.client)

	ev := &vwindow.WheelEvent{DeltaY: 120}
	engine.HandleWheel(ev)
	assert.True(t, ev.DefaultPrevented())
	assert.Equal(t, 120.0, c.offset)
	assert.Equal(t, 2, engine.Stats().Passes)
	assert.Equal(t, vwindow.Range{Start: 0, End: 18}, engine.Range())

	// Horizontal delta dominates: leave it to the source.
	ev = &vwindow.WheelEvent{DeltaX: 80, DeltaY: 10}
	engine.HandleWheel(ev)
	assert.False(t, ev.DefaultPrevented())
	assert.Equal(t, 120.0, c.offset)
	assert.Equal(t, 2, engine.Stats().Passes)

	engine.HandleWheel(nil)
	assert.Equal(t, 2, engine.Stats().Passes)
}

func TestEngineWheelIgnoredWhenVertical(t *testing.T) {
	c := &stillContainer{client: vwindow.Size{Width: 300, Height: 200}}
	engine := vwindow.New(intList(100), vwindow.Fixed[int](50), vwindow.Ref(c))
	engine.Resize(c.client)

	ev := &vwindow.WheelEvent{DeltaY: 120}
	engine.HandleWheel(ev)

	assert.False(t, ev.DefaultPrevented())
	assert.Zero(t, c.sets)
	assert.Equal(t, 1, engine.Stats().Passes)
}

func TestEngineWheelThroughContainer(t *testing.T) {
	engine, box := horizontalDemo(t)

	passes := engine.Stats().Passes
	ev := box.Wheel(0, 120)
	assert.True(t, ev.DefaultPrevented())
	assert.Equal(t, 120.0, box.ScrollX)
	assert.Zero(t, box.ScrollY)
	assert.Equal(t, vwindow.Range{Start: 0, End: 18}, engine.Range())
	assert.Equal(t, passes+1, engine.Stats().Passes, "one pass per wheel event")

	// Trackpad swipe: the container scrolls natively and signals.
	ev = box.Wheel(200, 10)
	assert.False(t, ev.DefaultPrevented())
	assert.Equal(t, 320.0, box.ScrollX)
	assert.Equal(t, vwindow.Range{Start: 0, End: 22}, engine.Range())
	assert.Equal(t, passes+2, engine.Stats().Passes)
}

func TestEngineWheelAtEndStillRunsPass(t *testing.T) {
	engine, box := horizontalDemo(t)
	box.End(vwindow.AxisHorizontal)
	passes := engine.Stats().Passes

	// Clamped: the container does not move and emits nothing.
	box.Wheel(0, 120)
	assert.Equal(t, passes+1, engine.Stats().Passes)
}

func TestEngineSubscribersSeeSettledFrame(t *testing.T) {
	box := vwindow.NewScrollContainer(vwindow.Size{Width: 300, Height: 300})
	engine := vwindow.New(intList(1000), vwindow.Fixed[int](50), vwindow.Ref(box),
		vwindow.WithOverscan(0))
	t.Cleanup(engine.Close)

	var calls int
	engine.Subscribe(func(f vwindow.Frame[int]) {
		calls++
		box.ApplyLayout(engine.Axis(), f.Layout)
	})
	var seen []vwindow.Range
	var last vwindow.Frame[int]
	engine.Subscribe(func(f vwindow.Frame[int]) {
		seen = append(seen, f.Range)
		last = f
	})
	engine.Attach(box.Sources())

	box.SetScrollOffset(vwindow.AxisVertical, 40000)
	require.Equal(t, vwindow.Range{Start: 800, End: 806}, engine.Range())
	seen, calls = nil, 0

	// The shorter list clamps the container from inside the first subscriber.
	engine.SetItems(intList(100))

	assert.Equal(t, 4700.0, box.ScrollY)
	assert.Equal(t, vwindow.Range{Start: 94, End: 100}, engine.Range())
	assert.Equal(t, engine.Range(), last.Range, "every subscriber ends on the final frame")
	assert.Equal(t, engine.Layout(), last.Layout)
	assert.Equal(t, []vwindow.Range{{Start: 94, End: 100}}, seen, "the clamped-away frame is never published")
	assert.Equal(t, 2, calls, "the first subscriber lays out both passes")
}

func TestEngineSetItems(t *testing.T) {
	c := &stillContainer{client: vwindow.Size{Width: 300, Height: 200}}
	items := intList(100)
	engine := vwindow.New(items, vwindow.Fixed[int](50), vwindow.Ref(c))
	engine.Resize(c.client)
	require.Equal(t, 5000.0, engine.Layout().Total())

	engine.SetItems(items)
	assert.Equal(t, 1, engine.Stats().Passes)

	engine.SetItems(intList(10))
	assert.Equal(t, 2, engine.Stats().Passes)
	assert.Equal(t, 500.0, engine.Layout().Total())
	assert.Equal(t, vwindow.Range{Start: 0, End: 9}, engine.Range())

	// Same backing array, shorter length: a different list.
	engine.SetItems(items[:3])
	assert.Equal(t, 3, engine.Stats().Passes)
	assert.Equal(t, 150.0, engine.Layout().Total())
}

func TestEngineSetExtent(t *testing.T) {
	c := &stillContainer{client: vwindow.Size{Width: 300, Height: 200}}
	engine := vwindow.New(intList(100), vwindow.Fixed[int](50), vwindow.Ref(c),
		vwindow.WithOverscan(0))
	engine.Resize(c.client)
	require.Equal(t, vwindow.Range{Start: 0, End: 4}, engine.Range())

	engine.SetExtent(vwindow.Fixed[int](100))
	assert.Equal(t, 1, engine.Stats().Passes)
	assert.Equal(t, 10000.0, engine.TotalExtent())

	engine.Recompute()
	assert.Equal(t, vwindow.Range{Start: 0, End: 2}, engine.Range())
	assert.Equal(t, 10000.0, engine.Layout().Total())
}

func TestEngineTotalExtentMemoized(t *testing.T) {
	calls := 0
	counting := func(i int, v int) float64 {
		calls++
		return alternating(i, v)
	}
	engine := vwindow.New(intList(100), vwindow.Variable(counting), nil)

	total := engine.TotalExtent()
	assert.Equal(t, 7100.0, total)
	assert.Equal(t, 100, calls)

	assert.Equal(t, total, engine.TotalExtent())
	assert.Equal(t, 100, calls)

	engine.SetExtent(vwindow.Variable(counting))
	engine.TotalExtent()
	assert.Equal(t, 200, calls)
}

func TestEngineAnchorBiasOption(t *testing.T) {
	biased := vwindow.New(intList(10), vwindow.Variable(alternating), nil)
	assert.False(t, biased.Metrics().ExactAnchor)

	exact := vwindow.New(intList(10), vwindow.Variable(alternating), nil, vwindow.WithAnchorBias(false))
	assert.True(t, exact.Metrics().ExactAnchor)
	assert.Equal(t, 0, exact.Metrics().IndexOf(0))
}

func TestEngineSubscribe(t *testing.T) {
	c := &stillContainer{client: vwindow.Size{Width: 300, Height: 200}}
	engine := vwindow.New(intList(100), vwindow.Fixed[int](50), vwindow.Ref(c))

	var frames []vwindow.Frame[int]
	cancel := engine.Subscribe(func(f vwindow.Frame[int]) {
		frames = append(frames, f)
	})

	engine.Resize(c.client)
	require.Len(t, frames, 1)
	assert.Equal(t, engine.Range(), frames[0].Range)
	assert.Equal(t, engine.Layout(), frames[0].Layout)
	assert.Equal(t, engine.Window(), frames[0].Items)

	cancel()
	cancel()
	engine.Recompute()
	assert.Len(t, frames, 1)
}

type hintRecorder struct {
	axis  vwindow.Axis
	hints []vwindow.LayoutHint
}

func (r *hintRecorder) ApplyLayout(axis vwindow.Axis, hint vwindow.LayoutHint) {
	r.axis = axis
	r.hints = append(r.hints, hint)
}

func TestEngineFollow(t *testing.T) {
	c := &stillContainer{client: vwindow.Size{Width: 300, Height: 200}}
	engine := vwindow.New(intList(100), vwindow.Fixed[int](50), vwindow.Ref(c),
		vwindow.WithAxis(vwindow.AxisHorizontal))

	var target hintRecorder
	cancel := engine.Follow(&target)
	engine.Resize(c.client)

	require.Len(t, target.hints, 1)
	assert.Equal(t, vwindow.AxisHorizontal, target.axis)
	assert.Equal(t, 5000.0, target.hints[0].Total())

	cancel()
	engine.ScrollTo(10)
	assert.Len(t, target.hints, 1)
}

func TestEngineCloseReleasesSources(t *testing.T) {
	box := vwindow.NewScrollContainer(vwindow.Size{Width: 300, Height: 200})
	engine := vwindow.New(intList(100), vwindow.Fixed[int](50), vwindow.Ref(box))
	engine.Attach(box.Sources())

	size, scroll, wheel := box.Listeners()
	assert.Equal(t, []int{1, 1, 1}, []int{size, scroll, wheel})

	engine.Close()
	engine.Close()

	size, scroll, wheel = box.Listeners()
	assert.Equal(t, []int{0, 0, 0}, []int{size, scroll, wheel})

	box.Resize(vwindow.Size{Width: 300, Height: 500})
	assert.Equal(t, 1, engine.Stats().Passes)
}

func TestEngineLogsPasses(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	c := &stillContainer{client: vwindow.Size{Width: 300, Height: 200}}
	engine := vwindow.New(intList(100), vwindow.Fixed[int](50), vwindow.Ref(c),
		vwindow.WithLogger(logger))
	engine.Resize(c.client)
	engine.ScrollTo(10)

	out := buf.String()
	assert.Contains(t, out, "vwindow engine created")
	assert.Contains(t, out, "trigger=resize")
	assert.Contains(t, out, "trigger=scrollTo")
}

func BenchmarkEngineScrollUniform(b *testing.B) {
	c := &stillContainer{client: vwindow.Size{Width: 300, Height: 200}}
	engine := vwindow.New(intList(99999), vwindow.Fixed[int](60), vwindow.Ref(c),
		vwindow.WithAxis(vwindow.AxisHorizontal),
		vwindow.WithOverscan(10))
	engine.Resize(c.client)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.offset = float64(i%99000) * 60
		engine.HandleScroll()
	}
}

func BenchmarkEngineScrollVariable(b *testing.B) {
	c := &stillContainer{client: vwindow.Size{Width: 200, Height: 300}}
	engine := vwindow.New(intList(99999), vwindow.Variable(alternating), vwindow.Ref(c),
		vwindow.WithOverscan(10))
	engine.Resize(c.client)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.offset = float64(i % 50000)
		engine.HandleScroll()
	}
}
