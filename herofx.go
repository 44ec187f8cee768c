package herofx

import (
	"errors"
	"math"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default material color.
var ColorWhite = Color{1, 1, 1, 1}

// Hex builds an opaque Color from a 0xRRGGBB value.
func Hex(rgb uint32) Color {
	return Color{
		R: float64(rgb>>16&0xff) / 255,
		G: float64(rgb>>8&0xff) / 255,
		B: float64(rgb&0xff) / 255,
		A: 1,
	}
}

// WithAlpha returns c with its alpha replaced.
func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}

// Lerp blends c toward o by t.
func (c Color) Lerp(o Color, t float64) Color {
	return Color{
		R: lerp(c.R, o.R, t),
		G: lerp(c.G, o.G, t),
		B: lerp(c.B, o.B, t),
		A: lerp(c.A, o.A, t),
	}
}

// RGBA8 returns the color as 8-bit straight-alpha components, clamped.
func (c Color) RGBA8() (r, g, b, a uint8) {
	return uint8(clamp01(c.R)*255 + 0.5),
		uint8(clamp01(c.G)*255 + 0.5),
		uint8(clamp01(c.B)*255 + 0.5),
		uint8(clamp01(c.A)*255 + 0.5)
}

// Rect is an axis-aligned rectangle in viewport pixels. The origin is the
// top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Aspect returns Width/Height, or 1 for a degenerate rectangle.
func (r Rect) Aspect() float64 {
	if r.Height <= 0 {
		return 1
	}
	return r.Width / r.Height
}

// Range is a general-purpose min/max range used by the procedural builders.
type Range struct {
	Min, Max float64
}

// BlendMode selects a compositing operation for a render command.
type BlendMode uint8

const (
	BlendNormal BlendMode = iota // source-over (standard alpha blending)
	BlendAdd                     // additive / lighter
)

// NodeType distinguishes rendering behavior for a Node.
type NodeType uint8

const (
	NodeTypeContainer NodeType = iota // group node with no visual output
	NodeTypeMesh                      // renders a triangle Mesh
	NodeTypeLines                     // renders a line-list Mesh
	NodeTypePoints                    // renders a ParticleCloud
)

var (
	// ErrInitialization is returned (wrapped) when the animator cannot be
	// constructed. The decorative scene is absent in that case.
	ErrInitialization = errors.New("herofx: initialization failed")
	// ErrInvalidViewport reports a viewport with non-positive dimensions.
	ErrInvalidViewport = errors.New("herofx: invalid viewport")
	// ErrInvalidOrbit reports orbit parameters with radius or speed <= 0.
	ErrInvalidOrbit = errors.New("herofx: invalid orbit")
	// ErrInvalidConfig reports a Config that failed validation.
	ErrInvalidConfig = errors.New("herofx: invalid config")
)

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// clamp01 limits v to [0, 1]. NaN maps to 0.
func clamp01(v float64) float64 {
	if !(v > 0) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// clamp limits v to [lo, hi]. NaN maps to the midpoint.
func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return (lo + hi) / 2
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
