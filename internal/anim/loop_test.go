package anim

import (
	"context"
	"errors"
	"testing"
	"time"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func newManualLoop() (*Loop, *ManualClock) {
	clk := NewManualClock(epoch)
	return NewLoop(clk), clk
}

func TestLoopFiresInDeadlineOrder(t *testing.T) {
	loop, _ := newManualLoop()

	var got []string
	loop.After(30*time.Millisecond, func() { got = append(got, "c") })
	loop.After(10*time.Millisecond, func() { got = append(got, "a") })
	loop.After(20*time.Millisecond, func() { got = append(got, "b1") })
	loop.After(20*time.Millisecond, func() { got = append(got, "b2") })

	loop.Advance(25 * time.Millisecond)
	if want := []string{"a", "b1", "b2"}; !equalStrings(got, want) {
		t.Fatalf("after 25ms got %v, want %v", got, want)
	}

	loop.Advance(5 * time.Millisecond)
	if want := []string{"a", "b1", "b2", "c"}; !equalStrings(got, want) {
		t.Fatalf("after 30ms got %v, want %v", got, want)
	}
	if loop.Pending() != 0 {
		t.Errorf("Pending() = %d, want 0", loop.Pending())
	}
}

func TestLoopAdvanceRunsNestedTimersAtTheirDeadline(t *testing.T) {
	loop, clk := newManualLoop()

	var at []time.Duration
	var chain func()
	chain = func() {
		at = append(at, clk.Now().Sub(epoch))
		if len(at) < 5 {
			loop.After(100*time.Millisecond, chain)
		}
	}
	loop.After(100*time.Millisecond, chain)

	loop.Advance(time.Second)
	want := []time.Duration{100, 200, 300, 400, 500}
	if len(at) != len(want) {
		t.Fatalf("fired %d times, want %d", len(at), len(want))
	}
	for i, w := range want {
		if at[i] != w*time.Millisecond {
			t.Errorf("fire %d at %v, want %v", i, at[i], w*time.Millisecond)
		}
	}
	if got := clk.Now().Sub(epoch); got != time.Second {
		t.Errorf("clock at %v, want 1s", got)
	}
}

func TestLoopCancel(t *testing.T) {
	loop, _ := newManualLoop()

	fired := false
	h := loop.After(10*time.Millisecond, func() { fired = true })
	if !h.Active() {
		t.Fatal("new handle should be active")
	}
	h.Cancel()
	h.Cancel()
	if h.Active() {
		t.Fatal("cancelled handle should be inactive")
	}

	loop.Advance(time.Second)
	if fired {
		t.Fatal("cancelled timer fired")
	}
}

func TestLoopEveryUntilCancelledFromCallback(t *testing.T) {
	loop, _ := newManualLoop()

	n := 0
	var h Handle
	h = loop.Every(100*time.Millisecond, func() {
		n++
		if n == 3 {
			h.Cancel()
		}
	})

	loop.Advance(time.Second)
	if n != 3 {
		t.Fatalf("ticks = %d, want 3", n)
	}
	if loop.Pending() != 0 {
		t.Errorf("Pending() = %d, want 0", loop.Pending())
	}
}

func TestLoopOneShotInactiveWhileFiring(t *testing.T) {
	loop, _ := newManualLoop()

	var h Handle
	var activeInside bool
	h = loop.After(time.Millisecond, func() { activeInside = h.Active() })
	loop.Advance(time.Millisecond)
	if activeInside {
		t.Error("one-shot handle active inside its own callback")
	}
}

func TestLoopClose(t *testing.T) {
	loop, _ := newManualLoop()

	fired := 0
	a := loop.After(10*time.Millisecond, func() { fired++ })
	b := loop.Every(10*time.Millisecond, func() { fired++ })
	loop.Close()

	if a.Active() || b.Active() {
		t.Fatal("handles survive Close")
	}
	if loop.Post(func() { fired++ }) {
		t.Fatal("Post accepted after Close")
	}
	late := loop.After(time.Millisecond, func() { fired++ })
	if late.Active() {
		t.Fatal("timer scheduled after Close is active")
	}

	loop.Advance(time.Second)
	if fired != 0 {
		t.Fatalf("%d callbacks ran after Close", fired)
	}
}

func TestLoopPostRunsBeforeTimers(t *testing.T) {
	loop, _ := newManualLoop()

	var got []string
	loop.After(0, func() { got = append(got, "timer") })
	loop.Post(func() { got = append(got, "posted") })
	loop.Flush()

	if want := []string{"posted", "timer"}; !equalStrings(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestLoopAdvancePanicsOnSystemClock(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("Advance on a system clock loop did not panic")
		}
	}()
	NewLoop(nil).Advance(time.Millisecond)
}

func TestLoopRun(t *testing.T) {
	loop := NewLoop(nil)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	done := make(chan struct{})
	loop.Post(func() {
		loop.After(5*time.Millisecond, func() { close(done) })
	})

	errc := make(chan error, 1)
	go func() { errc <- loop.Run(ctx) }()

	select {
	case <-done:
	case <-ctx.Done():
		t.Fatal("timer never fired")
	}
	cancel()

	if err := <-errc; !errors.Is(err, context.Canceled) {
		t.Fatalf("Run() = %v, want context.Canceled", err)
	}
	if !loop.Closed() {
		t.Fatal("Run left the loop open")
	}
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
