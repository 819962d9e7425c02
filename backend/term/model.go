// Package term renders a vwindow engine in the terminal with Bubble Tea.
//
// The model owns the ScrollContainer the engine is attached to. Terminal
// sizes and wheel input are converted to pixels (see CellWidth and
// CellHeight) before they reach the container, so extent functions keep
// their pixel meaning.
package term

import (
	"fmt"
	"strconv"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/go-theft-auto/vwindow"
	"github.com/go-theft-auto/vwindow/internal/input"
)

// Styles holds the lipgloss styles of the list view.
type Styles struct {
	Even   lipgloss.Style
	Odd    lipgloss.Style
	Track  lipgloss.Style
	Thumb  lipgloss.Style
	Status lipgloss.Style
	Prompt lipgloss.Style
}

// DefaultStyles returns the demo palette.
func DefaultStyles() Styles {
	return Styles{
		Even:   lipgloss.NewStyle().Foreground(lipgloss.Color("#E8E8F0")).Background(lipgloss.Color("#465A8C")),
		Odd:    lipgloss.NewStyle().Foreground(lipgloss.Color("#E8E8F0")).Background(lipgloss.Color("#5A4682")),
		Track:  lipgloss.NewStyle().Foreground(lipgloss.Color("#3A3A44")),
		Thumb:  lipgloss.NewStyle().Foreground(lipgloss.Color("#9696A0")),
		Status: lipgloss.NewStyle().Foreground(lipgloss.Color("#8A8A96")),
		Prompt: lipgloss.NewStyle().Foreground(lipgloss.Color("#7C3AED")).Bold(true),
	}
}

// Model is a tea.Model showing the live window of an engine.
type Model[T any] struct {
	engine *vwindow.Engine[T]
	box    *vwindow.ScrollContainer
	title  string
	label  func(vwindow.Item[T]) string
	styles Styles
	keys   KeyMap

	jump   input.Jump
	frame  vwindow.Frame[T]
	width  int
	height int
	cancel func()
}

// New creates a model for engine, which must be attached to box. Label
// formats an item; nil shows the index.
func New[T any](engine *vwindow.Engine[T], box *vwindow.ScrollContainer, title string, label func(vwindow.Item[T]) string) *Model[T] {
	if label == nil {
		label = func(it vwindow.Item[T]) string { return "#" + strconv.Itoa(it.Index) }
	}
	m := &Model[T]{
		engine: engine,
		box:    box,
		title:  title,
		label:  label,
		styles: DefaultStyles(),
		keys:   DefaultKeyMap(),
		frame:  vwindow.Frame[T]{Range: engine.Range(), Items: engine.Window(), Layout: engine.Layout()},
	}
	follow := engine.Follow(box)
	frames := engine.Subscribe(func(f vwindow.Frame[T]) { m.frame = f })
	m.cancel = func() {
		follow()
		frames()
	}
	return m
}

// Close stops following the engine.
func (m *Model[T]) Close() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
}

// Init implements tea.Model.
func (m *Model[T]) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		rows := max(0, m.height-1) // status line
		m.box.Resize(vwindow.Size{Width: float64(m.width * CellWidth), Height: float64(rows * CellHeight)})

	case tea.MouseWheelMsg:
		switch msg.Button {
		case tea.MouseWheelUp:
			m.box.Wheel(0, -vwindow.WheelLineStep)
		case tea.MouseWheelDown:
			m.box.Wheel(0, vwindow.WheelLineStep)
		case tea.MouseWheelLeft:
			m.box.Wheel(-vwindow.WheelLineStep, 0)
		case tea.MouseWheelRight:
			m.box.Wheel(vwindow.WheelLineStep, 0)
		}

	case tea.KeyPressMsg:
		return m, m.handleKey(msg)
	}
	return m, nil
}

func (m *Model[T]) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	axis := m.engine.Axis()

	if m.jump.Active() {
		switch {
		case key.Matches(msg, m.keys.Submit):
			if index, ok := m.jump.Commit(); ok {
				m.engine.ScrollTo(index)
			}
		case key.Matches(msg, m.keys.Cancel):
			m.jump.Cancel()
		case key.Matches(msg, m.keys.Erase):
			m.jump.Backspace()
		default:
			m.jump.Type(msg.Code)
		}
		return nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Jump):
		m.jump.Begin()
	case key.Matches(msg, m.keys.PageDown):
		m.box.PageBy(axis, 1)
	case key.Matches(msg, m.keys.PageUp):
		m.box.PageBy(axis, -1)
	case key.Matches(msg, m.keys.Home):
		m.box.Home(axis)
	case key.Matches(msg, m.keys.End):
		m.box.End(axis)
	case key.Matches(msg, m.keys.Forward):
		m.box.ScrollBy(axis, cellSize(axis))
	case key.Matches(msg, m.keys.Back):
		m.box.ScrollBy(axis, -cellSize(axis))
	default:
		m.jump.Type(msg.Code)
	}
	return nil
}

// View implements tea.Model.
func (m *Model[T]) View() tea.View {
	v := tea.NewView(m.Render())
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion
	return v
}

// Render returns the list area followed by the status line.
func (m *Model[T]) Render() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	rows := m.height - 1

	var lines []string
	if m.engine.Axis() == vwindow.AxisHorizontal {
		lines = m.renderColumns(rows)
	} else {
		lines = m.renderRows(rows)
	}
	lines = append(lines, m.status())
	return strings.Join(lines, "\n")
}

// renderRows draws a vertical list: one span of rows per item and a
// scrollbar in the last column.
func (m *Model[T]) renderRows(rows int) []string {
	width := max(0, m.width-1)
	lines := make([]string, rows)
	for i := range lines {
		lines[i] = strings.Repeat(" ", width)
	}

	for _, s := range m.spans(rows) {
		style := m.itemStyle(s.index)
		text := m.labelFor(s.index)
		for r := s.first; r < s.last; r++ {
			cell := ""
			if r == s.first {
				cell = " " + text
			}
			lines[r] = style.Render(fit(cell, width))
		}
	}

	bar := m.scrollbar(rows)
	for r := range lines {
		lines[r] += bar[r]
	}
	return lines
}

// renderColumns draws a horizontal list: one span of columns per item,
// labelled on the first row, and a scrollbar on the last row.
func (m *Model[T]) renderColumns(rows int) []string {
	if rows <= 0 {
		return nil
	}
	body := rows - 1
	cells := make([][]string, body)
	for r := range cells {
		cells[r] = make([]string, m.width)
		for c := range cells[r] {
			cells[r][c] = " "
		}
	}

	for _, s := range m.spans(m.width) {
		style := m.itemStyle(s.index)
		text := []rune(m.labelFor(s.index))
		for r := 0; r < body; r++ {
			for c := s.first; c < s.last; c++ {
				ch := " "
				if r == 0 && c-s.first < len(text) && len(text) <= s.last-s.first {
					ch = string(text[c-s.first])
				}
				cells[r][c] = style.Render(ch)
			}
		}
	}

	lines := make([]string, 0, rows)
	for _, row := range cells {
		lines = append(lines, strings.Join(row, ""))
	}
	return append(lines, strings.Join(m.scrollbar(m.width), ""))
}

func (m *Model[T]) spans(n int) []span {
	axis := m.engine.Axis()
	return rasterize(m.frame, m.engine.Metrics(), axis, m.box.ScrollOffset(axis), n)
}

// scrollbar returns one styled glyph per track cell.
func (m *Model[T]) scrollbar(track int) []string {
	axis := m.engine.Axis()
	content := m.frame.Layout.Total()
	viewport := m.box.ClientSize().Along(axis)
	pos, length := thumbCells(content, viewport, m.box.ScrollOffset(axis), track)

	trackGlyph, thumbGlyph := "│", "┃"
	if axis == vwindow.AxisHorizontal {
		trackGlyph, thumbGlyph = "─", "━"
	}

	out := make([]string, track)
	for i := range out {
		if i >= pos && i < pos+length {
			out[i] = m.styles.Thumb.Render(thumbGlyph)
		} else {
			out[i] = m.styles.Track.Render(trackGlyph)
		}
	}
	return out
}

func (m *Model[T]) status() string {
	if digits, active := m.jump.Pending(), m.jump.Active(); active {
		return m.styles.Prompt.Render(fit("go to: "+digits+"_", m.width))
	}
	rng := m.frame.Range
	text := fmt.Sprintf("%s  items %d-%d of %d  offset %.0f  %s",
		m.title, rng.Start, rng.End, len(m.engine.Items()), m.box.ScrollOffset(m.engine.Axis()), m.keys.shortHelp())
	return m.styles.Status.Render(fit(text, m.width))
}

func (m *Model[T]) itemStyle(index int) lipgloss.Style {
	if index%2 == 1 {
		return m.styles.Odd
	}
	return m.styles.Even
}

func (m *Model[T]) labelFor(index int) string {
	items := m.engine.Items()
	if index < 0 || index >= len(items) {
		return ""
	}
	return m.label(vwindow.Item[T]{Index: index, Data: items[index]})
}

// fit pads or truncates s to exactly width cells.
func fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = ansi.Truncate(s, width, "")
	if w := ansi.StringWidth(s); w < width {
		s += strings.Repeat(" ", width-w)
	}
	return s
}
