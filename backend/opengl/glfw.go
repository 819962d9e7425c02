package opengl

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/vwindow"
	"github.com/go-theft-auto/vwindow/internal/input"
)

// GLFWAdapter feeds GLFW window events into a ScrollContainer:
//   - window size → Resize (the container notifies its size observers)
//   - scroll wheel → Wheel, one notch = vwindow.WheelLineStep
//   - PageUp/PageDown/Home/End/arrows → paging along the main axis
//   - digits then Enter → the jump callback (Escape cancels)
type GLFWAdapter struct {
	window *glfw.Window
	box    *vwindow.ScrollContainer
	axis   vwindow.Axis
	onJump func(index int)
	jump   input.Jump
}

// NewGLFWAdapter installs the window callbacks and reports the current window
// size to box. onJump receives typed indices; it may be nil.
func NewGLFWAdapter(window *glfw.Window, box *vwindow.ScrollContainer, axis vwindow.Axis, onJump func(index int)) *GLFWAdapter {
	a := &GLFWAdapter{
		window: window,
		box:    box,
		axis:   axis,
		onJump: onJump,
	}

	window.SetSizeCallback(a.sizeCallback)
	window.SetScrollCallback(a.scrollCallback)
	window.SetKeyCallback(a.keyCallback)
	window.SetCharCallback(a.charCallback)

	w, h := window.GetSize()
	a.sizeCallback(window, w, h)

	return a
}

// Pending returns the digits typed so far and whether a jump is in progress.
func (a *GLFWAdapter) Pending() (string, bool) {
	return a.jump.Pending(), a.jump.Active()
}

// FramebufferScale returns the ratio of framebuffer pixels to window
// coordinates.
func (a *GLFWAdapter) FramebufferScale() float32 {
	w, _ := a.window.GetSize()
	fw, _ := a.window.GetFramebufferSize()
	if w <= 0 {
		return 1
	}
	return float32(fw) / float32(w)
}

func (a *GLFWAdapter) sizeCallback(_ *glfw.Window, width, height int) {
	a.box.Resize(vwindow.Size{Width: float64(width), Height: float64(height)})
}

// Wheel up (positive yoff) moves toward the start of the list.
func (a *GLFWAdapter) scrollCallback(_ *glfw.Window, xoff, yoff float64) {
	a.box.Wheel(-xoff*vwindow.WheelLineStep, -yoff*vwindow.WheelLineStep)
}

func (a *GLFWAdapter) charCallback(_ *glfw.Window, char rune) {
	a.jump.Type(char)
}

func (a *GLFWAdapter) keyCallback(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
	if action == glfw.Release {
		return
	}

	switch key {
	case glfw.KeyEnter, glfw.KeyKPEnter:
		if index, ok := a.jump.Commit(); ok && a.onJump != nil {
			a.onJump(index)
		}
	case glfw.KeyEscape:
		a.jump.Cancel()
	case glfw.KeyBackspace:
		a.jump.Backspace()
	case glfw.KeyPageDown:
		a.box.PageBy(a.axis, 1)
	case glfw.KeyPageUp:
		a.box.PageBy(a.axis, -1)
	case glfw.KeyHome:
		a.box.Home(a.axis)
	case glfw.KeyEnd:
		a.box.End(a.axis)
	case glfw.KeyRight, glfw.KeyDown:
		a.box.ScrollBy(a.axis, vwindow.WheelLineStep)
	case glfw.KeyLeft, glfw.KeyUp:
		a.box.ScrollBy(a.axis, -vwindow.WheelLineStep)
	}
}
