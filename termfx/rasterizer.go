package termfx

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/nanobrick/herofx"
)

// halfBlock renders the top pixel of a cell as foreground and the bottom
// pixel as background.
const halfBlock = '▀'

// Rasterizer implements herofx.Rasterizer on a software framebuffer and,
// when a screen is attached, blits each frame to it.
type Rasterizer struct {
	fb     *Framebuffer
	screen tcell.Screen

	// Overlay, if set, is called after the scene is blitted and before
	// the screen is shown.
	Overlay func(s tcell.Screen)
}

// NewRasterizer creates a rasterizer for a w×h pixel framebuffer. screen
// may be nil for offscreen rendering.
func NewRasterizer(screen tcell.Screen, w, h int) *Rasterizer {
	return &Rasterizer{fb: NewFramebuffer(w, h), screen: screen}
}

// Framebuffer returns the backing framebuffer.
func (r *Rasterizer) Framebuffer() *Framebuffer { return r.fb }

// Resize reallocates the framebuffer. Implements herofx.Resizer.
func (r *Rasterizer) Resize(w, h int) {
	r.fb.Resize(w, h)
}

// Render compiles and rasterizes the scene, then blits it to the screen.
// Implements herofx.Rasterizer.
func (r *Rasterizer) Render(scene *herofx.Scene, cam *herofx.Camera) {
	r.fb.Clear(scene.ClearColor)
	cmds := scene.Compile(cam)
	for i := range cmds {
		r.fb.Draw(&cmds[i])
	}
	if r.screen == nil {
		return
	}
	r.blit()
	if r.Overlay != nil {
		r.Overlay(r.screen)
	}
	r.screen.Show()
}

// blit writes two framebuffer rows per screen row.
func (r *Rasterizer) blit() {
	cols, rows := r.screen.Size()
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			top := cellColor(r.fb.At(x, y*2))
			bottom := cellColor(r.fb.At(x, y*2+1))
			style := tcell.StyleDefault.Foreground(top).Background(bottom)
			r.screen.SetContent(x, y, halfBlock, nil, style)
		}
	}
}

func cellColor(c herofx.Color) tcell.Color {
	r, g, b, _ := c.RGBA8()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// drawText writes s at (x, y) over whatever is on screen.
func drawText(s tcell.Screen, x, y int, text string, style tcell.Style) {
	for i, ch := range []rune(text) {
		s.SetContent(x+i, y, ch, nil, style)
	}
}

// counterOverlay returns an Overlay that prints the particle counter in
// the top-left cell row.
func counterOverlay(a *herofx.Animator) func(tcell.Screen) {
	style := tcell.StyleDefault.
		Foreground(tcell.NewRGBColor(0x00, 0xd4, 0xaa)).
		Background(tcell.NewRGBColor(0x0a, 0x0a, 0x0f))
	return func(s tcell.Screen) {
		drawText(s, 1, 0, fmt.Sprintf(" particles: %d ", a.Counter().Value()), style)
	}
}
