package timing

import (
	"math"
	"testing"
	"time"
)

type fakeClock struct {
	t time.Duration
}

func (c *fakeClock) now() time.Duration { return c.t }

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestCoreUpdate(t *testing.T) {
	clock := &fakeClock{t: 5 * time.Second}
	c := NewWithClock(clock.now)

	c.Update()
	if c.DeltaTime() != 0 || c.ElapsedTime() != 0 {
		t.Fatalf("first frame delta=%v elapsed=%v, want 0 0", c.DeltaTime(), c.ElapsedTime())
	}

	steps := []time.Duration{16 * time.Millisecond, 17 * time.Millisecond, 250 * time.Millisecond}
	var total float64
	for _, step := range steps {
		clock.t += step
		c.Update()
		total += step.Seconds()

		if !almostEqual(c.DeltaTime(), step.Seconds()) {
			t.Errorf("DeltaTime() = %v, want %v", c.DeltaTime(), step.Seconds())
		}
		if !almostEqual(c.ElapsedTime(), total) {
			t.Errorf("ElapsedTime() = %v, want %v", c.ElapsedTime(), total)
		}
	}

	if c.Frames() != uint64(len(steps)+1) {
		t.Errorf("Frames() = %d, want %d", c.Frames(), len(steps)+1)
	}
}

func TestCoreClampsBackwardsClock(t *testing.T) {
	clock := &fakeClock{t: time.Second}
	c := NewWithClock(clock.now)
	c.Update()

	clock.t -= 10 * time.Millisecond
	c.Update()
	if c.DeltaTime() != 0 {
		t.Errorf("DeltaTime() = %v after clock went backwards, want 0", c.DeltaTime())
	}
}

func TestNewUsesRealClock(t *testing.T) {
	c := New()
	c.Update()
	time.Sleep(time.Millisecond)
	c.Update()
	if c.DeltaTime() <= 0 {
		t.Errorf("DeltaTime() = %v, want > 0", c.DeltaTime())
	}
}
