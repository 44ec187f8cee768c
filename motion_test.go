package herofx

import (
	"errors"
	"math"
	"testing"
)

func TestNewOrbitRejectsInvalid(t *testing.T) {
	tests := []struct {
		name                      string
		phase, radius, speed, bob float64
	}{
		{"zero radius", 0, 0, 0.02, 0.3},
		{"negative radius", 0, -1, 0.02, 0.3},
		{"NaN radius", 0, math.NaN(), 0.02, 0.3},
		{"zero speed", 0, 1, 0, 0.3},
		{"negative speed", 0, 1, -0.1, 0.3},
		{"infinite speed", 0, 1, math.Inf(1), 0.3},
		{"negative bob", 0, 1, 0.02, -0.1},
		{"NaN phase", math.NaN(), 1, 0.02, 0.3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewOrbit(tt.phase, tt.radius, tt.speed, tt.bob)
			if !errors.Is(err, ErrInvalidOrbit) {
				t.Errorf("err = %v, want ErrInvalidOrbit", err)
			}
		})
	}
}

func TestNewOrbitAccessors(t *testing.T) {
	o, err := NewOrbit(1, 1.2, 0.03, 0.3)
	if err != nil {
		t.Fatal(err)
	}
	if o.Phase() != 1 || o.Radius() != 1.2 || o.Speed() != 0.03 || o.Bob() != 0.3 {
		t.Errorf("orbit = %+v", o)
	}
}

func TestOrbitPositionAtPhaseZero(t *testing.T) {
	o, _ := NewOrbit(0, 1.6, 0.02, 0.3)
	assertVec(t, "Position", o.Position(), Vec3{X: 1.6})
}

func TestOrbitPositionBob(t *testing.T) {
	o, _ := NewOrbit(math.Pi/4, 2, 0.02, 0.3)
	// sin(2·π/4) = 1, so the bob peaks here.
	assertNear(t, "Y", o.Position().Y, 0.3)
}

func TestOrbitKeepsHorizontalRadius(t *testing.T) {
	o, _ := NewOrbit(0.5, 1.2, 0.037, 0.3)
	n := NewMesh("marker", SphereGeometry(0.06, 8, 8), BasicMaterial(ColorWhite, 1))
	n.Motion = OrbitMotion(o)

	for i := 0; i < 1000; i++ {
		applyMotion(n)
		r := math.Hypot(n.Position.X, n.Position.Z)
		if math.Abs(r-1.2) > 1e-6 {
			t.Fatalf("frame %d: xz radius = %v, want 1.2", i, r)
		}
		if math.Abs(n.Position.Y) > 0.3+epsilon {
			t.Fatalf("frame %d: |Y| = %v exceeds bob", i, n.Position.Y)
		}
	}
}

func TestOrbitPhaseWraps(t *testing.T) {
	o, _ := NewOrbit(2*math.Pi-0.01, 1, 0.02, 0)
	n := NewContainer("m")
	n.Motion = OrbitMotion(o)
	applyMotion(n)

	phase := n.Motion.Orbit.Phase()
	if phase < 0 || phase > 2*math.Pi {
		t.Fatalf("phase = %v, want within [0, 2π]", phase)
	}
	assertNear(t, "phase", phase, 0.01)
}

func TestApplyMotionMarksDirty(t *testing.T) {
	o, _ := NewOrbit(0, 1, 0.02, 0)
	n := NewContainer("m")
	n.Motion = OrbitMotion(o)
	updateWorldTransform(n, Identity4, false)

	applyMotion(n)
	if !n.transformDirty {
		t.Error("transformDirty = false after orbit step, want true")
	}
}

func TestStaticMotionNoop(t *testing.T) {
	n := NewContainer("s")
	n.Motion = StaticMotion()
	n.SetPosition(1, 2, 3)
	applyMotion(n)
	if n.Position != (Vec3{1, 2, 3}) {
		t.Errorf("Position = %v, want (1,2,3)", n.Position)
	}
}

func TestApplyMotionUnknownKindPanics(t *testing.T) {
	n := NewContainer("bad")
	n.Motion.Kind = MotionKind(42)
	defer func() {
		if recover() == nil {
			t.Error("expected panic for unhandled motion kind")
		}
	}()
	applyMotion(n)
}

func TestMotionKindString(t *testing.T) {
	if got := MotionOrbiting.String(); got != "orbiting" {
		t.Errorf("String() = %q, want orbiting", got)
	}
	if got := MotionKind(9).String(); got != "MotionKind(9)" {
		t.Errorf("String() = %q, want MotionKind(9)", got)
	}
}
