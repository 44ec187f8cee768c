package herofx

import (
	"math"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observedAnimator(t *testing.T, opts ...Option) (*Animator, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	opts = append([]Option{WithLogger(zap.New(core))}, opts...)
	return newTestAnimator(t, opts...), logs
}

func TestNewLogsReady(t *testing.T) {
	_, logs := observedAnimator(t)
	entries := logs.FilterMessage("animator ready").All()
	if len(entries) != 1 {
		t.Fatalf("ready entries = %d, want 1", len(entries))
	}
	if got := entries[0].ContextMap()["particles"]; got != int64(500) {
		t.Errorf("particles field = %v, want 500", got)
	}
}

func TestNewLogsFailure(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	if _, err := New(Rect{}, &stubRasterizer{}, WithLogger(zap.New(core))); err == nil {
		t.Fatal("expected error")
	}
	if logs.FilterMessage("animator init failed").Len() != 1 {
		t.Error("init failure not logged")
	}
}

func TestDebugStatsEveryInterval(t *testing.T) {
	a, logs := observedAnimator(t, WithDebug(true))
	for i := 0; i < 2*debugLogInterval; i++ {
		a.Frame(float64(i) / 60)
	}
	if got := logs.FilterMessage("frame stats").Len(); got != 2 {
		t.Errorf("frame stats entries = %d, want 2", got)
	}
}

func TestDebugStatsOffByDefault(t *testing.T) {
	a, logs := observedAnimator(t)
	for i := 0; i < 2*debugLogInterval; i++ {
		a.Frame(float64(i) / 60)
	}
	if got := logs.FilterMessage("frame stats").Len(); got != 0 {
		t.Errorf("frame stats entries = %d, want 0 without debug", got)
	}
}

func TestDebugFromConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Debug = true
	a, _ := observedAnimator(t, WithConfig(cfg))
	if !a.debug {
		t.Error("debug = false, want true from config")
	}
	cfg2 := testConfig()
	cfg2.Debug = true
	b, _ := observedAnimator(t, WithConfig(cfg2), WithDebug(false))
	if b.debug {
		t.Error("debug = true, want WithDebug(false) to win")
	}
}

func TestDebugWarnsNonFiniteOnce(t *testing.T) {
	a, logs := observedAnimator(t, WithDebug(true))
	a.Decor().Helix.Rotation.Y = math.NaN()

	a.Update(0)
	a.Update(1.0 / 60)

	warns := logs.FilterMessage("non-finite transform").All()
	if len(warns) != 1 {
		t.Fatalf("warnings = %d, want 1", len(warns))
	}
	if warns[0].Level != zapcore.WarnLevel {
		t.Errorf("level = %v, want warn", warns[0].Level)
	}
	if got := warns[0].ContextMap()["node"]; got != "helix" {
		t.Errorf("node = %v, want helix", got)
	}
}

func TestResizeRejectionLogged(t *testing.T) {
	a, logs := observedAnimator(t)
	_ = a.Resize(-1, 10)
	if logs.FilterMessage("ignoring resize").FilterField(zap.Int("width", -1)).Len() != 1 {
		t.Error("rejected resize not logged")
	}
}

func TestCloseLogged(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	a, err := New(testViewport, &stubRasterizer{}, WithConfig(testConfig()), WithLogger(zap.New(core)))
	if err != nil {
		t.Fatal(err)
	}
	a.Close()
	a.Close()
	if got := logs.FilterMessage("animator closed").Len(); got != 1 {
		t.Errorf("close entries = %d, want 1", got)
	}
}
