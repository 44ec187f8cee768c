package herofx

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// dollyAnim holds an active dolly tween on the camera's Z.
type dollyAnim struct {
	tween *gween.Tween
}

// Camera is a perspective camera that eases toward a pointer-driven target
// and always looks at LookAt.
type Camera struct {
	// Position is the eye position in world space.
	Position Vec3
	// LookAt is the world-space point the camera aims at.
	LookAt Vec3
	// Up is the world up direction.
	Up Vec3
	// FOV is the vertical field of view in degrees.
	FOV float64
	// Near and Far are the clip plane distances.
	Near, Far float64
	// Viewport is the pixel rectangle this camera renders into.
	Viewport Rect

	// Follow parameters: the target is
	// (px·FollowScale, py·FollowScale + BaseY, current Z).
	FollowScale float64
	FollowLerp  float64
	BaseY       float64

	view       Mat4
	projection Mat4
	viewProj   Mat4
	dirty      bool

	dolly *dollyAnim
}

// NewCamera creates a camera at (0, 1, 5) aimed at the origin with a 60°
// field of view.
func NewCamera(viewport Rect) *Camera {
	return &Camera{
		Position:    Vec3{0, 1, 5},
		Up:          Vec3{Y: 1},
		FOV:         60,
		Near:        0.1,
		Far:         2000,
		Viewport:    viewport,
		FollowScale: 0.5,
		FollowLerp:  0.02,
		BaseY:       1,
		dirty:       true,
	}
}

// Aspect returns the viewport aspect ratio.
func (c *Camera) Aspect() float64 {
	return c.Viewport.Aspect()
}

// SetViewport replaces the viewport and updates the aspect ratio.
func (c *Camera) SetViewport(viewport Rect) {
	c.Viewport = viewport
	c.dirty = true
}

// FollowTarget returns the position the camera eases toward for pointer p.
func (c *Camera) FollowTarget(p Pointer) Vec3 {
	return Vec3{
		X: p.X * c.FollowScale,
		Y: p.Y*c.FollowScale + c.BaseY,
		Z: c.Position.Z,
	}
}

// DollyTo animates the camera's Z to z over duration seconds.
func (c *Camera) DollyTo(z float64, duration float32, easeFn ease.TweenFunc) {
	if duration <= 0 {
		c.Position.Z = z
		c.dolly = nil
		c.dirty = true
		return
	}
	c.dolly = &dollyAnim{
		tween: gween.New(float32(c.Position.Z), float32(z), duration, easeFn),
	}
}

// Dollying reports whether a dolly animation is in progress.
func (c *Camera) Dollying() bool {
	return c.dolly != nil
}

// update advances follow smoothing and the dolly tween, then re-aims.
// Called once per frame from Animator.Update.
func (c *Camera) update(p Pointer, dt float32) {
	target := c.FollowTarget(p)
	c.Position.X += (target.X - c.Position.X) * c.FollowLerp
	c.Position.Y += (target.Y - c.Position.Y) * c.FollowLerp

	if c.dolly != nil {
		val, done := c.dolly.tween.Update(dt)
		c.Position.Z = float64(val)
		if done {
			c.dolly = nil
		}
	}
	c.dirty = true
}

// computeMatrices recomputes the cached view and projection matrices if dirty.
func (c *Camera) computeMatrices() {
	if !c.dirty {
		return
	}
	c.dirty = false
	c.view = LookAt4(c.Position, c.LookAt, c.Up)
	c.projection = Perspective4(c.FOV*math.Pi/180, c.Aspect(), c.Near, c.Far)
	c.viewProj = c.projection.Mul(c.view)
}

// ViewMatrix returns the world-to-view matrix.
func (c *Camera) ViewMatrix() Mat4 {
	c.computeMatrices()
	return c.view
}

// ProjectionMatrix returns the view-to-clip matrix.
func (c *Camera) ProjectionMatrix() Mat4 {
	c.computeMatrices()
	return c.projection
}

// MarkDirty forces a recomputation of the matrices.
func (c *Camera) MarkDirty() {
	c.dirty = true
}

// Project converts a world-space point to viewport pixels. depth is the
// distance along the view direction. ok is false for points behind the
// near plane.
func (c *Camera) Project(p Vec3) (sx, sy, depth float64, ok bool) {
	c.computeMatrices()
	v := c.view.MulPoint(p)
	depth = -v.Z
	if depth < c.Near {
		return 0, 0, depth, false
	}
	clip := c.projection.MulVec4(Vec4{v.X, v.Y, v.Z, 1})
	nx := clip.X / clip.W
	ny := clip.Y / clip.W
	sx = c.Viewport.X + (nx+1)/2*c.Viewport.Width
	sy = c.Viewport.Y + (1-ny)/2*c.Viewport.Height
	return sx, sy, depth, true
}

// PixelsPerUnit returns how many pixels one world unit spans at depth.
func (c *Camera) PixelsPerUnit(depth float64) float64 {
	if depth <= 0 {
		return 0
	}
	return c.Viewport.Height / (2 * depth * math.Tan(c.FOV*math.Pi/360))
}
