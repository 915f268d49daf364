package widget

import (
	"sort"
	"testing"
	"time"
)

func TestRotatorTwoItems(t *testing.T) {
	loop := newLoop()
	r, err := NewRotator(loop, []string{"A", "B"}, 3*time.Second, nil)
	if err != nil {
		t.Fatal(err)
	}
	r.Mount()

	loop.Advance(3 * time.Second)
	if got := r.Items(); got[0] != "B" || got[1] != "A" {
		t.Fatalf("after one tick = %v, want [B A]", got)
	}
	loop.Advance(3 * time.Second)
	if got := r.Items(); got[0] != "A" || got[1] != "B" {
		t.Fatalf("after two ticks = %v, want [A B]", got)
	}
}

func TestRotatorPreservesItemSet(t *testing.T) {
	items := []string{"Zero-downtime deployments", "Automated rollbacks", "Security scanning in CI", "d", "e", "f"}
	r, _ := NewRotator(newLoop(), items, time.Second, nil)

	want := append([]string(nil), items...)
	sort.Strings(want)
	for n := 0; n < 20; n++ {
		got := r.Items()
		sort.Strings(got)
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("after %d ticks set = %v, want %v", n, got, want)
			}
		}
		if n == len(items) {
			if cur := r.Items(); cur[0] != items[0] {
				t.Fatalf("full cycle did not return to the start: %v", cur)
			}
		}
		r.Tick()
	}
}

func TestRotatorDoesNotAliasInput(t *testing.T) {
	items := []string{"x", "y", "z"}
	r, _ := NewRotator(newLoop(), items, time.Second, nil)
	r.Tick()
	if items[0] != "x" {
		t.Fatal("rotator mutated its input")
	}
	r.Items()[0] = "mutated"
	if r.Items()[0] == "mutated" {
		t.Fatal("Items exposes internal storage")
	}
}

func TestRotatorUnmountStopsTicks(t *testing.T) {
	loop := newLoop()
	ticks := 0
	r, _ := NewRotator(loop, []string{"L&T", "Kodnest"}, 0, func([]string) { ticks++ })
	r.Mount()
	r.Mount()
	loop.Advance(DefaultRotateInterval)
	if ticks != 1 {
		t.Fatalf("ticks = %d, want 1", ticks)
	}
	r.Unmount()
	loop.Advance(time.Minute)
	if ticks != 1 || loop.Pending() != 0 {
		t.Fatalf("ticks=%d pending=%d after unmount", ticks, loop.Pending())
	}
}

func TestRotatorRejectsBadInput(t *testing.T) {
	if _, err := NewRotator(newLoop(), nil, time.Second, nil); err != ErrNoItems {
		t.Errorf("empty: err = %v", err)
	}
	if _, err := NewRotator(newLoop(), []string{"a"}, -time.Second, nil); err != ErrBadInterval {
		t.Errorf("negative interval: err = %v", err)
	}
}

func TestSlotStyles(t *testing.T) {
	slots := FeatureSlots.Render([]string{"a", "b", "c"})
	want := []Slot{
		{Label: "a", Offset: 0, Scale: 1, Opacity: 1, Z: 10},
		{Label: "b", Offset: 1.5, Scale: 0.95, Opacity: 0.6, Z: 9},
		{Label: "c", Offset: 3, Scale: 0.9, Opacity: 0, Z: 8},
	}
	for i := range want {
		if !slotsClose(slots[i], want[i]) {
			t.Errorf("slot %d = %+v, want %+v", i, slots[i], want[i])
		}
	}

	roles := RoleSlots.Render([]string{"a", "b", "c"})
	if roles[1].Opacity != 0.4 || roles[2].Opacity != 0 || roles[2].Scale != 1 {
		t.Errorf("role slots = %+v", roles)
	}
}

func slotsClose(a, b Slot) bool {
	near := func(x, y float64) bool { return x-y < 1e-9 && y-x < 1e-9 }
	return a.Label == b.Label && a.Z == b.Z &&
		near(a.Offset, b.Offset) && near(a.Scale, b.Scale) && near(a.Opacity, b.Opacity)
}
