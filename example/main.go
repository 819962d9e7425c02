// Example shows a horizontal virtualized list of 99,999 items in a GLFW
// window. The vertical mouse wheel scrolls it sideways.
//
// Prerequisites:
//
//	Install devbox: https://www.jetify.com/devbox
//	devbox shell              # enter the dev environment (provides Go + OpenGL/X11 headers)
//	go run ./example/         # run this example
//	go run ./example/ -v      # log every recomputation pass to stderr
//
// Type an index and press Enter to jump to it. PageUp/PageDown, Home/End and
// the arrow keys page through the list.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/vwindow"
	"github.com/go-theft-auto/vwindow/backend/opengl"
	"github.com/go-theft-auto/vwindow/internal/config"
)

func init() {
	// GLFW must run on the main thread.
	runtime.LockOSThread()
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "YAML list description (defaults to the horizontal demo)")
	verbose := flag.Bool("v", false, "Log recomputation passes")
	flag.Parse()

	vwindow.SetVerbose(*verbose)
	config.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	cfg, err := config.Load(*configPath, config.Horizontal())
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	extent, err := cfg.ItemExtent()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw init: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(int(cfg.Viewport.Width), int(cfg.Viewport.Height), cfg.Title, nil, nil)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(1) // vsync

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}

	renderer, err := opengl.NewRenderer(window.GetSize())
	if err != nil {
		return fmt.Errorf("renderer: %w", err)
	}
	defer renderer.Delete()

	box := vwindow.NewScrollContainer(vwindow.Size{})
	engine := vwindow.New(cfg.Items(), extent, vwindow.Ref(box), cfg.Options()...)
	defer engine.Close()

	engine.Follow(box)
	var frame vwindow.Frame[int]
	engine.Subscribe(func(f vwindow.Frame[int]) { frame = f })

	adapter := opengl.NewGLFWAdapter(window, box, engine.Axis(), engine.ScrollTo)
	engine.Attach(box.Sources())

	dl := opengl.AcquireDrawList()
	defer opengl.ReleaseDrawList(dl)
	style := opengl.DefaultStyle()
	title := cfg.Title

	for !window.ShouldClose() {
		glfw.PollEvents()

		if digits, active := adapter.Pending(); active {
			setTitle(window, &title, fmt.Sprintf("%s - go to %s_", cfg.Title, digits))
		} else {
			setTitle(window, &title, fmt.Sprintf("%s - items %d-%d", cfg.Title, frame.Range.Start, frame.Range.End))
		}

		w, h := window.GetSize()
		fw, fh := window.GetFramebufferSize()
		renderer.Resize(w, h)
		gl.Viewport(0, 0, int32(fw), int32(fh))
		gl.ClearColor(0.12, 0.12, 0.14, 1.0)
		gl.Clear(gl.COLOR_BUFFER_BIT)

		dl.Clear()
		axis := engine.Axis()
		opengl.DrawFrame(dl, frame, engine.Metrics(), axis, box.ScrollOffset(axis), box.ClientSize(), style)
		if err := renderer.Render(dl, adapter.FramebufferScale()); err != nil {
			return fmt.Errorf("render: %w", err)
		}

		window.SwapBuffers()
	}

	return nil
}

func setTitle(window *glfw.Window, current *string, title string) {
	if *current == title {
		return
	}
	*current = title
	window.SetTitle(title)
}
