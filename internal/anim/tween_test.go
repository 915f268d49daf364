package anim

import (
	"math"
	"testing"
	"time"
)

func TestTweenReachesTargetExactly(t *testing.T) {
	loop, clk := newManualLoop()
	d := NewDriver(loop, 0)

	var values []float64
	var completedAt time.Duration
	tw := d.Start(Tween{
		From:       0,
		To:         7,
		Duration:   time.Second,
		Curve:      Power3Out,
		OnUpdate:   func(v float64) { values = append(values, v) },
		OnComplete: func() { completedAt = clk.Now().Sub(epoch) },
	})

	if len(values) != 1 || values[0] != 0 {
		t.Fatalf("first update = %v, want [0]", values)
	}

	loop.Advance(2 * time.Second)

	if !tw.Completed() || tw.Active() {
		t.Fatal("tween did not complete")
	}
	if last := values[len(values)-1]; last != 7 {
		t.Fatalf("last value = %v, want 7", last)
	}
	for i := 1; i < len(values); i++ {
		if values[i] < values[i-1] {
			t.Fatalf("value decreased at %d: %v -> %v", i, values[i-1], values[i])
		}
		if values[i] > 7 {
			t.Fatalf("value %v overshoots", values[i])
		}
	}
	if completedAt < time.Second || completedAt > time.Second+DefaultFrame {
		t.Errorf("completed at %v, want within one frame of 1s", completedAt)
	}
	if loop.Pending() != 0 {
		t.Errorf("Pending() = %d after completion", loop.Pending())
	}
}

func TestTweenDelay(t *testing.T) {
	loop, _ := newManualLoop()
	d := NewDriver(loop, 10*time.Millisecond)

	updates := 0
	d.Start(Tween{To: 1, Duration: 100 * time.Millisecond, Delay: 50 * time.Millisecond,
		OnUpdate: func(float64) { updates++ }})

	loop.Advance(49 * time.Millisecond)
	if updates != 0 {
		t.Fatalf("updates before delay = %d", updates)
	}
	loop.Advance(time.Millisecond)
	if updates != 1 {
		t.Fatalf("updates at delay = %d, want 1", updates)
	}
}

func TestTweenCancelStopsUpdates(t *testing.T) {
	loop, _ := newManualLoop()
	d := NewDriver(loop, 0)

	updates, completes := 0, 0
	tw := d.Start(Tween{To: 1, Duration: time.Second,
		OnUpdate:   func(float64) { updates++ },
		OnComplete: func() { completes++ }})

	loop.Advance(100 * time.Millisecond)
	tw.Cancel()
	before := updates
	loop.Advance(2 * time.Second)

	if updates != before {
		t.Errorf("updates after cancel: %d -> %d", before, updates)
	}
	if completes != 0 || tw.Completed() {
		t.Error("cancelled tween completed")
	}
	if loop.Pending() != 0 {
		t.Errorf("Pending() = %d after cancel", loop.Pending())
	}
}

func TestTweenZeroDuration(t *testing.T) {
	loop, _ := newManualLoop()
	d := NewDriver(loop, 0)

	var last float64
	tw := d.Start(Tween{From: 1, To: 5, OnUpdate: func(v float64) { last = v }})
	if !tw.Completed() || last != 5 {
		t.Fatalf("zero-length tween: completed=%v last=%v", tw.Completed(), last)
	}
}

func TestCurvesEndpointsAndMonotonic(t *testing.T) {
	curves := map[string]Curve{
		"linear":       Linear,
		"power2.out":   Power2Out,
		"power3.out":   Power3Out,
		"power1.inOut": Power1InOut,
		"power2.inOut": Power2InOut,
		"css ease":     CubicBezier(0.25, 0.1, 0.25, 1),
	}
	for name, c := range curves {
		t.Run(name, func(t *testing.T) {
			if c(0) != 0 {
				t.Errorf("c(0) = %v", c(0))
			}
			if math.Abs(c(1)-1) > 1e-9 {
				t.Errorf("c(1) = %v", c(1))
			}
			prev := 0.0
			for i := 1; i <= 100; i++ {
				v := c(float64(i) / 100)
				if v < prev-1e-9 {
					t.Fatalf("c decreases at %d/100: %v < %v", i, v, prev)
				}
				prev = v
			}
		})
	}
}

func TestPower3OutDecelerates(t *testing.T) {
	first := Power3Out(0.1) - Power3Out(0)
	last := Power3Out(1) - Power3Out(0.9)
	if first <= last {
		t.Fatalf("early step %v not larger than late step %v", first, last)
	}
}

func TestOvershootPassesTarget(t *testing.T) {
	if Overshoot(0) != 0 || Overshoot(1) != 1 {
		t.Fatalf("endpoints = %v, %v", Overshoot(0), Overshoot(1))
	}
	peak := 0.0
	for i := 1; i < 100; i++ {
		peak = math.Max(peak, Overshoot(float64(i)/100))
	}
	if peak <= 1 {
		t.Fatalf("peak = %v, want > 1", peak)
	}
}

func TestCubicBezierLinearControlPoints(t *testing.T) {
	c := CubicBezier(1.0/3, 1.0/3, 2.0/3, 2.0/3)
	for _, x := range []float64{0.1, 0.25, 0.5, 0.9} {
		if got := c(x); math.Abs(got-x) > 1e-6 {
			t.Errorf("c(%v) = %v", x, got)
		}
	}
}
