package widget

import (
	"time"

	"github.com/Zachkp/live-portfolio/internal/anim"
)

// DefaultSlotTransition is how long a rotated slot takes to settle.
const DefaultSlotTransition = 700 * time.Millisecond

// SlotAnimator eases rendered slots from their last layout to a new one.
// Each label travels from its old slot to its new one, so the item moved to
// the front swings past its place before settling when the curve overshoots.
type SlotAnimator struct {
	driver   *anim.Driver
	style    SlotStyle
	duration time.Duration
	curve    anim.Curve
	onChange func([]Slot)

	current []Slot
	tween   *anim.Tweening
}

// NewSlotAnimator creates an animator. A non-positive duration means
// DefaultSlotTransition and a nil curve means anim.Overshoot.
func NewSlotAnimator(driver *anim.Driver, style SlotStyle, duration time.Duration, curve anim.Curve, onChange func([]Slot)) *SlotAnimator {
	if duration <= 0 {
		duration = DefaultSlotTransition
	}
	if curve == nil {
		curve = anim.Overshoot
	}
	return &SlotAnimator{
		driver:   driver,
		style:    style,
		duration: duration,
		curve:    curve,
		onChange: onChange,
	}
}

// Snap shows items in place without a transition.
func (a *SlotAnimator) Snap(items []string) {
	a.Stop()
	a.show(a.style.Render(items))
}

// Set eases toward the layout of items, starting from wherever the slots
// are now. A transition still running is replaced.
func (a *SlotAnimator) Set(items []string) {
	if a.current == nil {
		a.Snap(items)
		return
	}
	from, to := a.current, a.style.Render(items)
	a.Stop()
	a.tween = a.driver.Start(anim.Tween{
		From:     0,
		To:       1,
		Duration: a.duration,
		Curve:    a.curve,
		OnUpdate: func(p float64) { a.show(blendSlots(from, to, p)) },
		OnComplete: func() {
			a.tween = nil
			a.show(to)
		},
	})
}

// Stop halts a running transition where it is.
func (a *SlotAnimator) Stop() {
	if a.tween != nil {
		a.tween.Cancel()
		a.tween = nil
	}
}

// Animating reports whether a transition is running.
func (a *SlotAnimator) Animating() bool {
	return a.tween != nil && a.tween.Active()
}

// Slots returns the slots last shown.
func (a *SlotAnimator) Slots() []Slot {
	return append([]Slot(nil), a.current...)
}

func (a *SlotAnimator) show(slots []Slot) {
	a.current = slots
	if a.onChange != nil {
		a.onChange(slots)
	}
}

// blendSlots moves every label of to from its slot in from. Labels new to
// the layout appear in place. Opacity stays within [0, 1] however far the
// curve overshoots; stacking order always follows the target.
func blendSlots(from, to []Slot, p float64) []Slot {
	prev := make(map[string]Slot, len(from))
	for _, s := range from {
		prev[s.Label] = s
	}
	out := make([]Slot, len(to))
	for i, t := range to {
		f, ok := prev[t.Label]
		if !ok {
			out[i] = t
			continue
		}
		out[i] = Slot{
			Label:   t.Label,
			Offset:  anim.Lerp(f.Offset, t.Offset, p),
			Scale:   anim.Lerp(f.Scale, t.Scale, p),
			Opacity: min(max(anim.Lerp(f.Opacity, t.Opacity, p), 0), 1),
			Z:       t.Z,
		}
	}
	return out
}
