// Package ebitenfx draws herofx scenes into an [Ebitengine] window.
//
// [Ebitengine]: https://ebitengine.org
package ebitenfx

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/nanobrick/herofx"
)

// discSize is the edge length of the point sprite texture in pixels.
const discSize = 32

// batchKey groups render commands that can be submitted in a single draw call.
type batchKey struct {
	blend herofx.BlendMode
	disc  bool
}

func commandBatchKey(cmd *herofx.RenderCommand) batchKey {
	return batchKey{blend: cmd.BlendMode, disc: cmd.Type == herofx.CommandPoint}
}

// Rasterizer implements herofx.Rasterizer on top of ebiten.DrawTriangles32.
// Set the target with SetTarget before each Animator.Render.
type Rasterizer struct {
	// ScreenshotDir is where queued screenshots are written.
	ScreenshotDir string

	log    *zap.Logger
	target *ebiten.Image
	white  *ebiten.Image
	disc   *ebiten.Image

	verts []ebiten.Vertex
	inds  []uint32

	screenshotQueue []string
	width, height   int
}

// NewRasterizer creates a rasterizer. A nil logger discards output.
func NewRasterizer(log *zap.Logger) *Rasterizer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Rasterizer{
		ScreenshotDir: "screenshots",
		log:           log,
	}
}

// Prepare allocates the source textures. Implements herofx.Preparer.
func (r *Rasterizer) Prepare(_ *herofx.Scene) error {
	if r.white == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		r.white = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	if r.disc == nil {
		r.disc = ebiten.NewImageFromImage(discImage(discSize))
	}
	return nil
}

// Resize records the viewport size. Implements herofx.Resizer.
func (r *Rasterizer) Resize(w, h int) {
	r.width, r.height = w, h
}

// SetTarget sets the image the next Render draws into.
func (r *Rasterizer) SetTarget(target *ebiten.Image) {
	r.target = target
}

// Render compiles the scene and draws it into the target. Implements
// herofx.Rasterizer.
func (r *Rasterizer) Render(scene *herofx.Scene, cam *herofx.Camera) {
	if r.target == nil {
		return
	}
	if r.white == nil {
		_ = r.Prepare(scene)
	}
	cr, cg, cb, _ := scene.ClearColor.RGBA8()
	r.target.Fill(color.RGBA{cr, cg, cb, 0xff})

	cmds := scene.Compile(cam)
	r.submitBatches(cmds)
}

// submitBatches iterates sorted commands, groups consecutive commands by
// batch key, and submits one draw call per run.
func (r *Rasterizer) submitBatches(cmds []herofx.RenderCommand) {
	if len(cmds) == 0 {
		return
	}
	key := commandBatchKey(&cmds[0])
	for i := range cmds {
		cmd := &cmds[i]
		k := commandBatchKey(cmd)
		if k != key {
			r.flush(key)
			key = k
		}
		r.appendCommand(cmd)
	}
	r.flush(key)
}

// appendCommand appends the vertices of one command to the pending batch.
func (r *Rasterizer) appendCommand(cmd *herofx.RenderCommand) {
	cr, cg, cb, ca := premultiplied(cmd.Color)
	base := uint32(len(r.verts))

	switch cmd.Type {
	case herofx.CommandTriangle:
		for j := 0; j < 3; j++ {
			v := cmd.Verts[j]
			r.verts = append(r.verts, solidVertex(v.X, v.Y, cr, cg, cb, ca))
		}
		r.inds = append(r.inds, base, base+1, base+2)

	case herofx.CommandLine:
		a, b := cmd.Verts[0], cmd.Verts[1]
		dx, dy := b.X-a.X, b.Y-a.Y
		l := float32(math.Hypot(float64(dx), float64(dy)))
		if l == 0 {
			return
		}
		// Perpendicular offset of half the line width.
		nx := -dy / l * cmd.Size / 2
		ny := dx / l * cmd.Size / 2
		r.verts = append(r.verts,
			solidVertex(a.X+nx, a.Y+ny, cr, cg, cb, ca),
			solidVertex(b.X+nx, b.Y+ny, cr, cg, cb, ca),
			solidVertex(a.X-nx, a.Y-ny, cr, cg, cb, ca),
			solidVertex(b.X-nx, b.Y-ny, cr, cg, cb, ca),
		)
		r.inds = append(r.inds, base, base+1, base+2, base+1, base+3, base+2)

	case herofx.CommandPoint:
		p := cmd.Verts[0]
		s := cmd.Size
		qx := [4]float32{p.X - s, p.X + s, p.X - s, p.X + s}
		qy := [4]float32{p.Y - s, p.Y - s, p.Y + s, p.Y + s}
		sx := [4]float32{0, discSize, 0, discSize}
		sy := [4]float32{0, 0, discSize, discSize}
		for j := 0; j < 4; j++ {
			r.verts = append(r.verts, ebiten.Vertex{
				DstX: qx[j], DstY: qy[j],
				SrcX: sx[j], SrcY: sy[j],
				ColorR: cr, ColorG: cg, ColorB: cb, ColorA: ca,
			})
		}
		r.inds = append(r.inds, base, base+1, base+2, base+1, base+3, base+2)
	}
}

// flush submits accumulated vertices as a single DrawTriangles32 call.
func (r *Rasterizer) flush(key batchKey) {
	if len(r.verts) == 0 {
		return
	}
	src := r.white
	if key.disc {
		src = r.disc
	}

	var triOp ebiten.DrawTrianglesOptions
	triOp.Blend = blendFor(key.blend)
	triOp.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha
	triOp.AntiAlias = !key.disc

	r.target.DrawTriangles32(r.verts, r.inds, src, &triOp)

	r.verts = r.verts[:0]
	r.inds = r.inds[:0]
}

// blendFor returns the ebiten.Blend value corresponding to a BlendMode.
func blendFor(b herofx.BlendMode) ebiten.Blend {
	switch b {
	case herofx.BlendAdd:
		return ebiten.BlendLighter
	default:
		return ebiten.BlendSourceOver
	}
}

func solidVertex(x, y, r, g, b, a float32) ebiten.Vertex {
	return ebiten.Vertex{
		DstX: x, DstY: y,
		SrcX: 1, SrcY: 1,
		ColorR: r, ColorG: g, ColorB: b, ColorA: a,
	}
}

// premultiplied returns c clamped and premultiplied by its alpha.
func premultiplied(c herofx.Color) (r, g, b, a float32) {
	a = float32(clamp01(c.A))
	return float32(clamp01(c.R)) * a, float32(clamp01(c.G)) * a, float32(clamp01(c.B)) * a, a
}

func clamp01(v float64) float64 {
	return math.Min(math.Max(v, 0), 1)
}

// discImage returns a white disc with a soft edge on a transparent
// background.
func discImage(size int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	c := float64(size) / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			d := math.Hypot(float64(x)+0.5-c, float64(y)+0.5-c) / c
			a := clamp01((1 - d) * 4)
			i := img.PixOffset(x, y)
			img.Pix[i+0] = 0xff
			img.Pix[i+1] = 0xff
			img.Pix[i+2] = 0xff
			img.Pix[i+3] = uint8(a*255 + 0.5)
		}
	}
	return img
}
