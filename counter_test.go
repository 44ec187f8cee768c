package herofx

import (
	"testing"
	"time"
)

func TestCounterStartsIdle(t *testing.T) {
	c := NewCounter(30*time.Millisecond, 50)
	if c.State() != CounterIdle {
		t.Errorf("State() = %v, want idle", c.State())
	}
	c.Update(time.Second)
	if c.Value() != 0 {
		t.Errorf("Value() = %d, want 0 before Start", c.Value())
	}
}

func TestCounterRollsToTarget(t *testing.T) {
	c := NewCounter(30*time.Millisecond, 50)
	c.Start(500)

	c.Update(30 * time.Millisecond)
	if c.Value() != 10 {
		t.Errorf("Value() = %d after one interval, want 10", c.Value())
	}
	c.Update(29 * time.Millisecond)
	if c.Value() != 10 {
		t.Errorf("Value() = %d before the next interval, want 10", c.Value())
	}
	c.Update(time.Millisecond)
	if c.Value() != 20 {
		t.Errorf("Value() = %d after two intervals, want 20", c.Value())
	}

	c.Update(10 * time.Second)
	if c.Value() != 500 || c.State() != CounterDone {
		t.Errorf("Value() = %d, State() = %v, want 500 done", c.Value(), c.State())
	}
}

func TestCounterNeverExceedsTarget(t *testing.T) {
	c := NewCounter(30*time.Millisecond, 50)
	c.Start(123) // step 3
	for i := 0; i < 100; i++ {
		c.Update(30 * time.Millisecond)
		if c.Value() > 123 {
			t.Fatalf("Value() = %d, exceeds target", c.Value())
		}
	}
	if c.Value() != 123 {
		t.Errorf("Value() = %d, want 123", c.Value())
	}
}

func TestCounterFrameSteps(t *testing.T) {
	c := NewCounter(30*time.Millisecond, 50)
	c.Start(500)
	// 50 increments of 30ms need 1.5s of frames.
	frames := 0
	for c.State() == CounterRunning {
		c.Update(time.Second / 60)
		frames++
		if frames > 1000 {
			t.Fatal("counter never finished")
		}
	}
	if frames < 85 || frames > 95 {
		t.Errorf("finished after %d frames, want about 90", frames)
	}
}

func TestCounterZeroTarget(t *testing.T) {
	c := NewCounter(30*time.Millisecond, 50)
	c.Start(0)
	if c.State() != CounterDone || c.Value() != 0 {
		t.Errorf("State() = %v, Value() = %d, want done 0", c.State(), c.Value())
	}
}

func TestCounterSmallTargetStepsByOne(t *testing.T) {
	c := NewCounter(10*time.Millisecond, 50)
	c.Start(3)
	c.Update(10 * time.Millisecond)
	if c.Value() != 1 {
		t.Errorf("Value() = %d, want 1", c.Value())
	}
}

func TestCounterStopKeepsValue(t *testing.T) {
	c := NewCounter(30*time.Millisecond, 50)
	c.Start(500)
	c.Update(90 * time.Millisecond)
	c.Stop()
	c.Update(time.Second)
	if c.Value() != 30 || c.State() != CounterDone {
		t.Errorf("Value() = %d, State() = %v, want 30 done", c.Value(), c.State())
	}
}

func TestCounterRestart(t *testing.T) {
	c := NewCounter(30*time.Millisecond, 50)
	c.Start(500)
	c.Update(time.Hour)
	c.Start(100)
	if c.Value() != 0 || c.Target() != 100 || c.State() != CounterRunning {
		t.Errorf("restart: Value() = %d, Target() = %d, State() = %v", c.Value(), c.Target(), c.State())
	}
}

func TestCounterZeroIntervalFinishes(t *testing.T) {
	c := NewCounter(0, 50)
	c.Start(500)
	c.Update(0)
	if c.Value() != 500 {
		t.Errorf("Value() = %d, want 500", c.Value())
	}
}

func TestCounterStateString(t *testing.T) {
	if CounterRunning.String() != "running" {
		t.Errorf("String() = %q, want running", CounterRunning.String())
	}
	if got := CounterState(7).String(); got != "CounterState(7)" {
		t.Errorf("String() = %q", got)
	}
}
