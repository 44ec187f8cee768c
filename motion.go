package herofx

import (
	"fmt"
	"math"
)

// MotionKind tags the variant held by a Motion.
type MotionKind uint8

const (
	MotionStatic   MotionKind = iota // node keeps its transform
	MotionOrbiting                   // node circles its parent's origin
)

func (k MotionKind) String() string {
	switch k {
	case MotionStatic:
		return "static"
	case MotionOrbiting:
		return "orbiting"
	default:
		return fmt.Sprintf("MotionKind(%d)", uint8(k))
	}
}

// Orbit holds circular-motion parameters. Radius, speed and bob amplitude
// are fixed at creation; only the phase advances.
type Orbit struct {
	phase  float64
	radius float64
	speed  float64
	bob    float64
}

// NewOrbit validates and returns orbit parameters. speed is in radians per
// frame; bob is the amplitude of the vertical sin(2·phase) oscillation.
func NewOrbit(phase, radius, speed, bob float64) (Orbit, error) {
	if !(radius > 0) || math.IsInf(radius, 0) {
		return Orbit{}, fmt.Errorf("radius %v: %w", radius, ErrInvalidOrbit)
	}
	if !(speed > 0) || math.IsInf(speed, 0) {
		return Orbit{}, fmt.Errorf("speed %v: %w", speed, ErrInvalidOrbit)
	}
	if !(bob >= 0) || math.IsInf(bob, 0) {
		return Orbit{}, fmt.Errorf("bob %v: %w", bob, ErrInvalidOrbit)
	}
	if !isFinite(phase) {
		return Orbit{}, fmt.Errorf("phase %v: %w", phase, ErrInvalidOrbit)
	}
	return Orbit{phase: phase, radius: radius, speed: speed, bob: bob}, nil
}

// Phase returns the current angle in radians.
func (o Orbit) Phase() float64 { return o.phase }

// Radius returns the horizontal distance from the orbit center.
func (o Orbit) Radius() float64 { return o.radius }

// Speed returns the phase advance per frame in radians.
func (o Orbit) Speed() float64 { return o.speed }

// Bob returns the vertical amplitude.
func (o Orbit) Bob() float64 { return o.bob }

// Position returns the point on the orbit for the current phase.
func (o Orbit) Position() Vec3 {
	s, c := math.Sincos(o.phase)
	return Vec3{
		X: c * o.radius,
		Y: math.Sin(o.phase*2) * o.bob,
		Z: s * o.radius,
	}
}

// advance moves the phase forward by one frame's worth of speed.
func (o *Orbit) advance() {
	o.phase += o.speed
	// Phase stays in [0, 2π].
	if o.phase > 2*math.Pi {
		o.phase = math.Mod(o.phase, 2*math.Pi)
	}
}

// Motion is a tagged variant describing how the animator moves a node.
// Orbit is meaningful only when Kind is MotionOrbiting.
type Motion struct {
	Kind  MotionKind
	Orbit Orbit
}

// StaticMotion returns the motion of a node that never moves on its own.
func StaticMotion() Motion {
	return Motion{Kind: MotionStatic}
}

// OrbitMotion wraps o as a Motion.
func OrbitMotion(o Orbit) Motion {
	return Motion{Kind: MotionOrbiting, Orbit: o}
}

// applyMotion advances n by one frame according to its Motion.
func applyMotion(n *Node) {
	switch n.Motion.Kind {
	case MotionStatic:
	case MotionOrbiting:
		n.Motion.Orbit.advance()
		n.Position = n.Motion.Orbit.Position()
		n.transformDirty = true
	default:
		panic(fmt.Sprintf("herofx: unhandled %v on node %q", n.Motion.Kind, n.Name))
	}
}
