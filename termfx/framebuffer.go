// Package termfx draws herofx scenes into a truecolor terminal with tcell.
//
// Scenes are rasterized in software into a [Framebuffer] with two pixels
// per terminal cell, then blitted as upper half-block characters.
package termfx

import (
	"image"
	"math"

	"github.com/nanobrick/herofx"
)

// rgb is a linear framebuffer color with components in [0, 1].
type rgb struct {
	r, g, b float32
}

// Framebuffer is a software color and depth buffer.
type Framebuffer struct {
	W, H  int
	color []rgb
	depth []float32
}

// NewFramebuffer allocates a w×h framebuffer.
func NewFramebuffer(w, h int) *Framebuffer {
	fb := &Framebuffer{}
	fb.Resize(w, h)
	return fb
}

// Resize reallocates the buffers when the size changes.
func (fb *Framebuffer) Resize(w, h int) {
	w, h = max(w, 0), max(h, 0)
	if w == fb.W && h == fb.H && fb.color != nil {
		return
	}
	fb.W, fb.H = w, h
	fb.color = make([]rgb, w*h)
	fb.depth = make([]float32, w*h)
}

// Clear fills the color buffer with c and resets depth to infinity.
func (fb *Framebuffer) Clear(c herofx.Color) {
	fill := rgb{float32(c.R), float32(c.G), float32(c.B)}
	inf := float32(math.Inf(1))
	for i := range fb.color {
		fb.color[i] = fill
		fb.depth[i] = inf
	}
}

// At returns the color of pixel (x, y). Out-of-range pixels are black.
func (fb *Framebuffer) At(x, y int) herofx.Color {
	if x < 0 || y < 0 || x >= fb.W || y >= fb.H {
		return herofx.Color{A: 1}
	}
	p := fb.color[y*fb.W+x]
	return herofx.Color{R: float64(p.r), G: float64(p.g), B: float64(p.b), A: 1}
}

// Image converts the color buffer to an opaque NRGBA image.
func (fb *Framebuffer) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, fb.W, fb.H))
	for i, p := range fb.color {
		img.Pix[i*4+0] = to8(p.r)
		img.Pix[i*4+1] = to8(p.g)
		img.Pix[i*4+2] = to8(p.b)
		img.Pix[i*4+3] = 0xff
	}
	return img
}

// Draw rasterizes one render command.
func (fb *Framebuffer) Draw(cmd *herofx.RenderCommand) {
	switch cmd.Type {
	case herofx.CommandTriangle:
		fb.fillTriangle(cmd)
	case herofx.CommandLine:
		fb.drawLine(cmd)
	case herofx.CommandPoint:
		fb.drawPoint(cmd)
	}
}

// plot blends src into pixel (x, y) if it passes the depth test. Opaque
// normal-blend fragments write depth.
func (fb *Framebuffer) plot(x, y int, depth float32, src herofx.Color, blend herofx.BlendMode) {
	if x < 0 || y < 0 || x >= fb.W || y >= fb.H {
		return
	}
	i := y*fb.W + x
	if depth > fb.depth[i] {
		return
	}
	a := float32(clamp01(src.A))
	sr, sg, sb := float32(clamp01(src.R)), float32(clamp01(src.G)), float32(clamp01(src.B))
	d := &fb.color[i]
	switch blend {
	case herofx.BlendAdd:
		d.r = min(d.r+sr*a, 1)
		d.g = min(d.g+sg*a, 1)
		d.b = min(d.b+sb*a, 1)
	default:
		d.r = sr*a + d.r*(1-a)
		d.g = sg*a + d.g*(1-a)
		d.b = sb*a + d.b*(1-a)
		if a >= 1 {
			fb.depth[i] = depth
		}
	}
}

// fillTriangle scan-converts a triangle over pixel centers, interpolating
// depth barycentrically.
func (fb *Framebuffer) fillTriangle(cmd *herofx.RenderCommand) {
	v0, v1, v2 := cmd.Verts[0], cmd.Verts[1], cmd.Verts[2]
	area := edge(v0, v1, v2.X, v2.Y)
	if area == 0 {
		return
	}
	if area < 0 {
		v1, v2 = v2, v1
		area = -area
	}

	minX := max(int(math.Floor(float64(min(v0.X, v1.X, v2.X)))), 0)
	maxX := min(int(math.Ceil(float64(max(v0.X, v1.X, v2.X)))), fb.W-1)
	minY := max(int(math.Floor(float64(min(v0.Y, v1.Y, v2.Y)))), 0)
	maxY := min(int(math.Ceil(float64(max(v0.Y, v1.Y, v2.Y)))), fb.H-1)

	for y := minY; y <= maxY; y++ {
		py := float32(y) + 0.5
		for x := minX; x <= maxX; x++ {
			px := float32(x) + 0.5
			w0 := edge(v1, v2, px, py)
			w1 := edge(v2, v0, px, py)
			w2 := edge(v0, v1, px, py)
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}
			z := (w0*v0.Depth + w1*v1.Depth + w2*v2.Depth) / area
			fb.plot(x, y, z, cmd.Color, cmd.BlendMode)
		}
	}
}

// edge returns twice the signed area of (a, b, p).
func edge(a, b herofx.ScreenVertex, px, py float32) float32 {
	return (b.X-a.X)*(py-a.Y) - (b.Y-a.Y)*(px-a.X)
}

// drawLine walks the segment one pixel step at a time.
func (fb *Framebuffer) drawLine(cmd *herofx.RenderCommand) {
	a, b := cmd.Verts[0], cmd.Verts[1]
	dx, dy := b.X-a.X, b.Y-a.Y
	steps := int(math.Ceil(math.Max(math.Abs(float64(dx)), math.Abs(float64(dy)))))
	if steps == 0 {
		fb.plot(int(a.X), int(a.Y), a.Depth, cmd.Color, cmd.BlendMode)
		return
	}
	for i := 0; i <= steps; i++ {
		t := float32(i) / float32(steps)
		fb.plot(int(a.X+dx*t), int(a.Y+dy*t), a.Depth+(b.Depth-a.Depth)*t, cmd.Color, cmd.BlendMode)
	}
}

// drawPoint fills a disc of radius cmd.Size. Points smaller than a pixel
// cover the pixel they fall in.
func (fb *Framebuffer) drawPoint(cmd *herofx.RenderCommand) {
	p := cmd.Verts[0]
	r := cmd.Size
	if r <= 0.5 {
		fb.plot(int(p.X), int(p.Y), p.Depth, cmd.Color, cmd.BlendMode)
		return
	}
	r2 := r * r
	for y := int(p.Y - r); y <= int(p.Y+r); y++ {
		for x := int(p.X - r); x <= int(p.X+r); x++ {
			dx := float32(x) + 0.5 - p.X
			dy := float32(y) + 0.5 - p.Y
			if dx*dx+dy*dy <= r2 {
				fb.plot(x, y, p.Depth, cmd.Color, cmd.BlendMode)
			}
		}
	}
}

func clamp01(v float64) float64 {
	return math.Min(math.Max(v, 0), 1)
}

func to8(v float32) uint8 {
	return uint8(clamp01(float64(v))*255 + 0.5)
}
