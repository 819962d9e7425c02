// Command gen renders list windows at a few scroll positions, captures the
// framebuffer, and saves JPEG screenshots to doc/imgs/.
//
// Usage:
//
//	devbox shell
//	go run ./doc/gen/
package main

import (
	"fmt"
	"image"
	"image/jpeg"
	"os"
	"path/filepath"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/vwindow"
	"github.com/go-theft-auto/vwindow/backend/opengl"
	"github.com/go-theft-auto/vwindow/internal/config"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// screenshot is one captured list state.
type screenshot struct {
	name     string           // filename without extension
	cfg      *config.Config   // list description; the viewport is the image size
	scrollTo int              // index passed to ScrollTo before capturing (-1 = none)
	opts     []vwindow.Option // extra engine options
}

func run() error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw init: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Visible, glfw.False)

	// Larger than every screenshot.
	window, err := glfw.CreateWindow(800, 600, "screenshot-gen", nil, nil)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}

	renderer, err := opengl.NewRenderer(800, 600)
	if err != nil {
		return fmt.Errorf("renderer: %w", err)
	}
	defer renderer.Delete()

	outDir := filepath.Join("doc", "imgs")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}

	shots := buildScreenshots()
	for _, s := range shots {
		if err := capture(renderer, s, outDir); err != nil {
			return fmt.Errorf("capture %s: %w", s.name, err)
		}
		fmt.Printf("  %s.jpg (%vx%v)\n", s.name, s.cfg.Viewport.Width, s.cfg.Viewport.Height)
	}

	fmt.Printf("\nGenerated %d screenshots in %s/\n", len(shots), outDir)
	return nil
}

func capture(renderer *opengl.Renderer, s screenshot, outDir string) error {
	extent, err := s.cfg.ItemExtent()
	if err != nil {
		return err
	}

	box := vwindow.NewScrollContainer(s.cfg.ViewportSize())
	engine := vwindow.New(s.cfg.Items(), extent, vwindow.Ref(box), append(s.cfg.Options(), s.opts...)...)
	defer engine.Close()
	engine.Follow(box)
	engine.Attach(box.Sources())
	if s.scrollTo >= 0 {
		engine.ScrollTo(s.scrollTo)
	}

	width, height := int(s.cfg.Viewport.Width), int(s.cfg.Viewport.Height)
	renderer.Resize(width, height)

	gl.Viewport(0, 0, int32(width), int32(height))
	gl.ClearColor(0.12, 0.12, 0.14, 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT)

	dl := opengl.AcquireDrawList()
	defer opengl.ReleaseDrawList(dl)

	axis := engine.Axis()
	frame := vwindow.Frame[int]{Range: engine.Range(), Items: engine.Window(), Layout: engine.Layout()}
	opengl.DrawFrame(dl, frame, engine.Metrics(), axis, box.ScrollOffset(axis), box.ClientSize(), opengl.DefaultStyle())
	if err := renderer.Render(dl, 1); err != nil {
		return err
	}

	pixels := make([]byte, width*height*4)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))

	// Flip vertically (OpenGL origin is bottom-left)
	rowLen := width * 4
	tmp := make([]byte, rowLen)
	for y := 0; y < height/2; y++ {
		top := y * rowLen
		bot := (height - 1 - y) * rowLen
		copy(tmp, pixels[top:top+rowLen])
		copy(pixels[top:top+rowLen], pixels[bot:bot+rowLen])
		copy(pixels[bot:bot+rowLen], tmp)
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	copy(img.Pix, pixels)

	f, err := os.Create(filepath.Join(outDir, s.name+".jpg"))
	if err != nil {
		return err
	}
	defer f.Close()
	return jpeg.Encode(f, img, &jpeg.Options{Quality: 90})
}

func buildScreenshots() []screenshot {
	horizontal := config.Horizontal()
	horizontal.Viewport = config.ViewportConfig{Width: 600, Height: 120}

	vertical := config.Vertical()
	vertical.Viewport = config.ViewportConfig{Width: 240, Height: 400}

	return []screenshot{
		{name: "horizontal_start", cfg: horizontal, scrollTo: -1},
		{name: "horizontal_scroll_to_500", cfg: horizontal, scrollTo: 500},
		{name: "vertical_start", cfg: vertical, scrollTo: -1},
		{name: "vertical_scroll_to_12345", cfg: vertical, scrollTo: 12345},
		{name: "vertical_end", cfg: vertical, scrollTo: vertical.Count},
		{name: "vertical_exact_anchor", cfg: vertical, scrollTo: 7, opts: []vwindow.Option{vwindow.WithAnchorBias(false)}},
	}
}
