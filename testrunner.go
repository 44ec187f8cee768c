package herofx

import (
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// Script actions.
const (
	actionPointer    = "pointer"
	actionSweep      = "sweep"
	actionResize     = "resize"
	actionWait       = "wait"
	actionScreenshot = "screenshot"
)

// testStep is one entry of a JSON test script. Which fields apply depends
// on Action.
type testStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Width  int     `json:"width,omitempty"`
	Height int     `json:"height,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// Screenshotter is implemented by rasterizers that can capture the frame
// they draw. The label names the capture.
type Screenshotter interface {
	Screenshot(label string)
}

// TestRunner plays a scripted sequence of pointer moves, resizes, waits and
// screenshots, one step per frame, for automated visual checks. Attach it
// with Animator.SetTestRunner.
//
// A script is a JSON object with a "steps" array. Each step has an
// "action" of "pointer" (x, y), "sweep" (fromX, fromY, toX, toY, frames),
// "resize" (width, height), "wait" (frames) or "screenshot" (label).
type TestRunner struct {
	steps []testStep
	next  int
	// hold is the number of frames to sit idle before the next step.
	hold     int
	finished bool
}

// LoadTestScript parses a JSON test script.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script struct {
		Steps []testStep `json:"steps"`
	}
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, errors.New("parse test script: no steps")
	}
	for i := range script.Steps {
		switch a := script.Steps[i].Action; a {
		case actionPointer, actionSweep, actionResize, actionWait, actionScreenshot:
		default:
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, a)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// Done reports whether every step has run and its effects have settled.
func (r *TestRunner) Done() bool {
	return r.finished
}

// step runs at the start of each Animator.Update. Steps only advance once
// queued synthetic input has drained.
func (r *TestRunner) step(a *Animator) {
	switch {
	case r.finished, len(a.injectQueue) > 0:
		return
	case r.hold > 0:
		r.hold--
		return
	case r.next == len(r.steps):
		r.finished = true
		return
	}

	st := &r.steps[r.next]
	r.next++
	r.run(a, st)

	r.finished = r.next == len(r.steps) && r.hold == 0 && len(a.injectQueue) == 0
}

func (r *TestRunner) run(a *Animator, st *testStep) {
	switch st.Action {
	case actionPointer:
		a.InjectMove(st.X, st.Y)
	case actionSweep:
		a.InjectSweep(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case actionResize:
		if err := a.Resize(st.Width, st.Height); err != nil {
			a.log.Warn("test script resize failed", zap.Error(err))
		}
	case actionWait:
		// The frame that runs the step is the first waited frame.
		r.hold = max(st.Frames-1, 0)
	case actionScreenshot:
		a.Screenshot(st.Label)
	}
}

// Screenshot asks the rasterizer to capture the next frame under label.
// Rasterizers that cannot capture ignore the request.
func (a *Animator) Screenshot(label string) {
	s, ok := a.raster.(Screenshotter)
	if !ok {
		a.log.Debug("rasterizer cannot take screenshots", zap.String("label", label))
		return
	}
	s.Screenshot(label)
}
