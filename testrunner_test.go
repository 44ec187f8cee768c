package herofx

import "testing"

func TestLoadTestScript(t *testing.T) {
	data := []byte(`{
		"steps": [
			{"action": "pointer", "x": 100, "y": 200},
			{"action": "sweep", "fromX": 0, "fromY": 0, "toX": 800, "toY": 600, "frames": 10},
			{"action": "resize", "width": 1024, "height": 768},
			{"action": "wait", "frames": 5},
			{"action": "screenshot", "label": "hero"}
		]
	}`)

	runner, err := LoadTestScript(data)
	if err != nil {
		t.Fatalf("LoadTestScript: %v", err)
	}
	if len(runner.steps) != 5 {
		t.Fatalf("steps = %d, want 5", len(runner.steps))
	}
	if runner.steps[0].Action != "pointer" || runner.steps[0].X != 100 {
		t.Errorf("step 0 = %+v", runner.steps[0])
	}
	if runner.steps[2].Width != 1024 || runner.steps[2].Height != 768 {
		t.Errorf("step 2 = %+v", runner.steps[2])
	}
	if runner.steps[4].Label != "hero" {
		t.Errorf("step 4 label = %q, want hero", runner.steps[4].Label)
	}
}

func TestLoadTestScript_Invalid(t *testing.T) {
	if _, err := LoadTestScript([]byte(`not json`)); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestLoadTestScript_Empty(t *testing.T) {
	if _, err := LoadTestScript([]byte(`{"steps": []}`)); err == nil {
		t.Error("expected error for empty steps")
	}
}

func TestLoadTestScript_UnknownAction(t *testing.T) {
	if _, err := LoadTestScript([]byte(`{"steps": [{"action": "click"}]}`)); err == nil {
		t.Error("expected error for unknown action")
	}
}

func TestRunnerStep_Pointer(t *testing.T) {
	r := &stubRasterizer{}
	a := newTestAnimatorWith(t, r)
	runner, err := LoadTestScript([]byte(`{"steps": [
		{"action": "pointer", "x": 0, "y": 0},
		{"action": "screenshot", "label": "corner"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	a.SetTestRunner(runner)

	a.Update(0)
	if a.Pointer() != (Pointer{-1, 1}) {
		t.Errorf("Pointer() = %+v, want (-1,1)", a.Pointer())
	}
	if runner.Done() {
		t.Error("runner done before screenshot")
	}

	a.Update(1.0 / 60)
	if !runner.Done() {
		t.Error("runner not done after last step")
	}
	if len(r.shots) != 1 || r.shots[0] != "corner" {
		t.Errorf("shots = %v, want [corner]", r.shots)
	}
}

func TestRunnerStep_Wait(t *testing.T) {
	r := &stubRasterizer{}
	a := newTestAnimatorWith(t, r)
	runner, _ := LoadTestScript([]byte(`{"steps": [
		{"action": "wait", "frames": 3},
		{"action": "screenshot", "label": "later"}
	]}`))
	a.SetTestRunner(runner)

	for i := 0; i < 3; i++ {
		a.Update(float64(i) / 60)
	}
	if len(r.shots) != 0 {
		t.Fatalf("screenshot taken during wait: %v", r.shots)
	}
	a.Update(3.0 / 60)
	if len(r.shots) != 1 {
		t.Errorf("shots = %v, want one after the wait", r.shots)
	}
	if !runner.Done() {
		t.Error("runner not done")
	}
}

func TestRunnerWaitsForInjectQueue(t *testing.T) {
	r := &stubRasterizer{}
	a := newTestAnimatorWith(t, r)
	runner, _ := LoadTestScript([]byte(`{"steps": [
		{"action": "sweep", "fromX": 0, "fromY": 300, "toX": 800, "toY": 300, "frames": 4},
		{"action": "screenshot", "label": "swept"}
	]}`))
	a.SetTestRunner(runner)

	for i := 0; i < 4; i++ {
		a.Update(float64(i) / 60)
	}
	if len(r.shots) != 0 {
		t.Fatalf("screenshot taken before the sweep drained: %v", r.shots)
	}
	assertNear(t, "pointer x", a.Pointer().X, 1)

	a.Update(4.0 / 60)
	if len(r.shots) != 1 || !runner.Done() {
		t.Errorf("shots = %v, done = %v, want screenshot after sweep", r.shots, runner.Done())
	}
}

func TestRunnerResize(t *testing.T) {
	r := &stubRasterizer{}
	a := newTestAnimatorWith(t, r)
	runner, _ := LoadTestScript([]byte(`{"steps": [
		{"action": "resize", "width": 1024, "height": 768},
		{"action": "resize", "width": 0, "height": 0}
	]}`))
	a.SetTestRunner(runner)

	a.Update(0)
	a.Update(1.0 / 60)
	if len(r.resizes) != 1 || r.resizes[0] != [2]int{1024, 768} {
		t.Errorf("resizes = %v, want [[1024 768]]", r.resizes)
	}
	if a.Viewport().Width != 1024 {
		t.Errorf("viewport width = %v, want 1024", a.Viewport().Width)
	}
	if !runner.Done() {
		t.Error("runner not done")
	}
}

func TestRunnerDoneIsSticky(t *testing.T) {
	r := &stubRasterizer{}
	a := newTestAnimatorWith(t, r)
	runner, _ := LoadTestScript([]byte(`{"steps": [{"action": "screenshot", "label": "once"}]}`))
	a.SetTestRunner(runner)

	for i := 0; i < 5; i++ {
		a.Update(float64(i) / 60)
	}
	if len(r.shots) != 1 {
		t.Errorf("shots = %v, want exactly one", r.shots)
	}
}
