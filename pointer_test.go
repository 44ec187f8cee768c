package herofx

import (
	"math"
	"testing"
)

var testViewport = Rect{Width: 800, Height: 600}

func TestNormalizePointer(t *testing.T) {
	tests := []struct {
		name   string
		px, py float64
		want   Pointer
	}{
		{"center", 400, 300, Pointer{0, 0}},
		{"top-left", 0, 0, Pointer{-1, 1}},
		{"bottom-right", 800, 600, Pointer{1, -1}},
		{"right middle", 600, 300, Pointer{0.5, 0}},
		{"clamped outside", -50, 900, Pointer{-1, -1}},
		{"clamped far right", 5000, -10, Pointer{1, 1}},
		{"NaN x", math.NaN(), 150, Pointer{0, 0.5}},
		{"NaN both", math.NaN(), math.NaN(), Pointer{0, 0}},
		{"+Inf", math.Inf(1), math.Inf(1), Pointer{1, -1}},
		{"-Inf", math.Inf(-1), math.Inf(-1), Pointer{-1, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizePointer(tt.px, tt.py, testViewport)
			assertNear(t, "X", got.X, tt.want.X)
			assertNear(t, "Y", got.Y, tt.want.Y)
		})
	}
}

func TestClampNaN(t *testing.T) {
	if got := clamp(math.NaN(), -1, 1); got != 0 {
		t.Errorf("clamp(NaN, -1, 1) = %v, want 0", got)
	}
	if got := clamp01(math.NaN()); got != 0 {
		t.Errorf("clamp01(NaN) = %v, want 0", got)
	}
}

func TestNonFinitePointerKeepsCameraFinite(t *testing.T) {
	a := newTestAnimator(t)
	a.PointerMove(math.NaN(), 100)
	a.Update(0)
	a.PointerMove(math.Inf(1), math.Inf(-1))
	a.Update(1.0 / 60)

	p := a.Pointer()
	if p.X < -1 || p.X > 1 || p.Y < -1 || p.Y > 1 {
		t.Fatalf("Pointer() = %+v, want within [-1, 1]", p)
	}
	pos := a.Camera().Position
	for _, v := range []float64{pos.X, pos.Y, pos.Z} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("camera position = %v, want finite", pos)
		}
	}
}

func TestNormalizePointerViewportOffset(t *testing.T) {
	vp := Rect{X: 100, Y: 50, Width: 200, Height: 100}
	got := NormalizePointer(200, 100, vp)
	if got != (Pointer{}) {
		t.Errorf("NormalizePointer = %+v, want center", got)
	}
}

func TestNormalizePointerDegenerateViewport(t *testing.T) {
	got := NormalizePointer(10, 10, Rect{Width: 0, Height: 600})
	if got != (Pointer{}) {
		t.Errorf("NormalizePointer = %+v, want zero for degenerate viewport", got)
	}
}

func TestPointerToPixelsRoundTrip(t *testing.T) {
	p := Pointer{0.25, -0.5}
	px, py := p.ToPixels(testViewport)
	got := NormalizePointer(px, py, testViewport)
	assertNear(t, "X", got.X, p.X)
	assertNear(t, "Y", got.Y, p.Y)
}

// --- Synthetic input ---

func TestPointerMoveAppliesImmediately(t *testing.T) {
	a := newTestAnimator(t)
	a.PointerMove(800, 0)
	if a.Pointer() != (Pointer{1, 1}) {
		t.Errorf("Pointer() = %+v, want (1,1)", a.Pointer())
	}
}

func TestInjectMoveFIFO(t *testing.T) {
	a := newTestAnimator(t)
	a.InjectMove(0, 0)
	a.InjectMove(800, 600)
	if a.PendingInput() != 2 {
		t.Fatalf("PendingInput() = %d, want 2", a.PendingInput())
	}

	a.Update(0)
	if a.Pointer() != (Pointer{-1, 1}) {
		t.Errorf("after first frame Pointer() = %+v, want (-1,1)", a.Pointer())
	}
	if a.PendingInput() != 1 {
		t.Errorf("PendingInput() = %d, want 1", a.PendingInput())
	}

	a.Update(1.0 / 60)
	if a.Pointer() != (Pointer{1, -1}) {
		t.Errorf("after second frame Pointer() = %+v, want (1,-1)", a.Pointer())
	}
}

func TestInjectOverridesPointerMove(t *testing.T) {
	a := newTestAnimator(t)
	a.PointerMove(0, 0)
	a.InjectMove(400, 300)
	a.Update(0)
	if a.Pointer() != (Pointer{}) {
		t.Errorf("Pointer() = %+v, want center", a.Pointer())
	}
}

func TestInjectSweep(t *testing.T) {
	a := newTestAnimator(t)
	a.InjectSweep(0, 300, 800, 300, 5)
	if a.PendingInput() != 5 {
		t.Fatalf("PendingInput() = %d, want 5", a.PendingInput())
	}
	want := []float64{-1, -0.5, 0, 0.5, 1}
	for i, x := range want {
		if !a.processInjectedInput() {
			t.Fatalf("step %d: no event", i)
		}
		assertNear(t, "X", a.Pointer().X, x)
	}
	if a.processInjectedInput() {
		t.Error("queue not empty after sweep")
	}
}

func TestInjectSweepMinFrames(t *testing.T) {
	a := newTestAnimator(t)
	a.InjectSweep(0, 0, 10, 10, 1)
	if a.PendingInput() != 2 {
		t.Errorf("PendingInput() = %d, want 2", a.PendingInput())
	}
}
