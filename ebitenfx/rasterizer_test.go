package ebitenfx

import (
	"math"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/nanobrick/herofx"
)

func approx32(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-4
}

func TestAppendTriangle(t *testing.T) {
	r := NewRasterizer(nil)
	r.appendCommand(&herofx.RenderCommand{
		Type:  herofx.CommandTriangle,
		Verts: [3]herofx.ScreenVertex{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 0, Y: 10}},
		Color: herofx.Color{R: 1, G: 0.5, B: 0, A: 0.5},
	})
	if len(r.verts) != 3 || len(r.inds) != 3 {
		t.Fatalf("verts = %d, inds = %d, want 3 and 3", len(r.verts), len(r.inds))
	}
	v := r.verts[1]
	if v.DstX != 10 || v.DstY != 0 {
		t.Errorf("vert 1 = (%v,%v), want (10,0)", v.DstX, v.DstY)
	}
	if !approx32(v.ColorR, 0.5) || !approx32(v.ColorG, 0.25) || !approx32(v.ColorA, 0.5) {
		t.Errorf("color = (%v,%v,%v,%v), want premultiplied (0.5,0.25,0,0.5)", v.ColorR, v.ColorG, v.ColorB, v.ColorA)
	}
}

func TestAppendLine(t *testing.T) {
	r := NewRasterizer(nil)
	r.appendCommand(&herofx.RenderCommand{
		Type:  herofx.CommandLine,
		Verts: [3]herofx.ScreenVertex{{X: 0, Y: 0}, {X: 10, Y: 0}},
		Color: herofx.ColorWhite,
		Size:  2,
	})
	if len(r.verts) != 4 || len(r.inds) != 6 {
		t.Fatalf("verts = %d, inds = %d, want 4 and 6", len(r.verts), len(r.inds))
	}
	// A horizontal line of width 2 spans y in [-1, 1].
	if r.verts[0].DstY != 1 || r.verts[2].DstY != -1 {
		t.Errorf("line edges y = %v and %v, want 1 and -1", r.verts[0].DstY, r.verts[2].DstY)
	}
}

func TestAppendZeroLengthLine(t *testing.T) {
	r := NewRasterizer(nil)
	r.appendCommand(&herofx.RenderCommand{
		Type:  herofx.CommandLine,
		Verts: [3]herofx.ScreenVertex{{X: 5, Y: 5}, {X: 5, Y: 5}},
		Size:  1,
	})
	if len(r.verts) != 0 || len(r.inds) != 0 {
		t.Errorf("zero-length line appended %d verts", len(r.verts))
	}
}

func TestAppendPoint(t *testing.T) {
	r := NewRasterizer(nil)
	r.appendCommand(&herofx.RenderCommand{
		Type:  herofx.CommandPoint,
		Verts: [3]herofx.ScreenVertex{{X: 20, Y: 30}},
		Color: herofx.ColorWhite,
		Size:  3,
	})
	if len(r.verts) != 4 || len(r.inds) != 6 {
		t.Fatalf("verts = %d, inds = %d, want 4 and 6", len(r.verts), len(r.inds))
	}
	if r.verts[0].DstX != 17 || r.verts[3].DstY != 33 {
		t.Errorf("quad corners = (%v,%v) (%v,%v)", r.verts[0].DstX, r.verts[0].DstY, r.verts[3].DstX, r.verts[3].DstY)
	}
	if r.verts[3].SrcX != discSize || r.verts[3].SrcY != discSize {
		t.Errorf("src corner = (%v,%v), want (%d,%d)", r.verts[3].SrcX, r.verts[3].SrcY, discSize, discSize)
	}
}

func TestIndicesOffsetByBatch(t *testing.T) {
	r := NewRasterizer(nil)
	cmd := &herofx.RenderCommand{
		Type:  herofx.CommandTriangle,
		Verts: [3]herofx.ScreenVertex{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}},
	}
	r.appendCommand(cmd)
	r.appendCommand(cmd)
	if r.inds[3] != 3 || r.inds[5] != 5 {
		t.Errorf("second triangle indices = %v, want [3 4 5]", r.inds[3:])
	}
}

func TestCommandBatchKey(t *testing.T) {
	tri := herofx.RenderCommand{Type: herofx.CommandTriangle}
	line := herofx.RenderCommand{Type: herofx.CommandLine}
	point := herofx.RenderCommand{Type: herofx.CommandPoint, BlendMode: herofx.BlendAdd}
	if commandBatchKey(&tri) != commandBatchKey(&line) {
		t.Error("triangles and lines should share a batch")
	}
	if commandBatchKey(&tri) == commandBatchKey(&point) {
		t.Error("points should not share a batch with triangles")
	}
	if !commandBatchKey(&point).disc {
		t.Error("point batch does not use the disc texture")
	}
}

func TestBlendFor(t *testing.T) {
	if blendFor(herofx.BlendAdd) != ebiten.BlendLighter {
		t.Error("BlendAdd should map to BlendLighter")
	}
	if blendFor(herofx.BlendNormal) != ebiten.BlendSourceOver {
		t.Error("BlendNormal should map to BlendSourceOver")
	}
}

func TestPremultipliedClamps(t *testing.T) {
	r, g, b, a := premultiplied(herofx.Color{R: 2, G: -1, B: 0.5, A: 1.5})
	if r != 1 || g != 0 || b != 0.5 || a != 1 {
		t.Errorf("premultiplied = (%v,%v,%v,%v), want (1,0,0.5,1)", r, g, b, a)
	}
}

func TestDiscImage(t *testing.T) {
	img := discImage(discSize)
	center := img.NRGBAAt(discSize/2, discSize/2)
	corner := img.NRGBAAt(0, 0)
	if center.A != 0xff {
		t.Errorf("center alpha = %d, want 255", center.A)
	}
	if corner.A != 0 {
		t.Errorf("corner alpha = %d, want 0", corner.A)
	}
}

func TestResizeRecordsSize(t *testing.T) {
	r := NewRasterizer(nil)
	r.Resize(640, 360)
	if r.width != 640 || r.height != 360 {
		t.Errorf("size = %dx%d, want 640x360", r.width, r.height)
	}
}

func TestRenderWithoutTarget(t *testing.T) {
	r := NewRasterizer(nil)
	// No target set: Render returns before touching any image.
	r.Render(herofx.NewScene(), herofx.NewCamera(herofx.Rect{Width: 8, Height: 8}))
	if r.white != nil {
		t.Error("textures allocated without a target")
	}
}

func TestHUDText(t *testing.T) {
	c := herofx.NewCounter(time.Millisecond, 1)
	c.Start(42)
	c.Update(time.Millisecond)

	if got := hudText(c, herofx.FrameStats{Commands: 7}, 59.94, false); got != "particles: 42" {
		t.Errorf("hudText = %q, want %q", got, "particles: 42")
	}
	want := "particles: 42\nFPS: 59.9\ncmds: 7"
	if got := hudText(c, herofx.FrameStats{Commands: 7}, 59.94, true); got != want {
		t.Errorf("hudText = %q, want %q", got, want)
	}
}
