package widget

import (
	"time"

	"github.com/Zachkp/live-portfolio/internal/anim"
)

// DefaultRotateInterval is the rotator tick.
const DefaultRotateInterval = 3 * time.Second

// Rotator cycles a fixed list one position per tick, moving the last item
// to the front. The set of items never changes, only their order.
type Rotator struct {
	sched    anim.Scheduler
	items    []string
	interval time.Duration
	onChange func(items []string)

	ticker anim.Handle
}

// NewRotator creates a rotator over a copy of items.
func NewRotator(sched anim.Scheduler, items []string, interval time.Duration, onChange func([]string)) (*Rotator, error) {
	if len(items) == 0 {
		return nil, ErrNoItems
	}
	if interval < 0 {
		return nil, ErrBadInterval
	}
	if interval == 0 {
		interval = DefaultRotateInterval
	}
	return &Rotator{
		sched:    sched,
		items:    append([]string(nil), items...),
		interval: interval,
		onChange: onChange,
	}, nil
}

// Mount starts the repeating tick.
func (r *Rotator) Mount() {
	if r.ticker != nil {
		return
	}
	r.ticker = r.sched.Every(r.interval, r.Tick)
}

// Unmount stops the tick.
func (r *Rotator) Unmount() {
	if r.ticker != nil {
		r.ticker.Cancel()
		r.ticker = nil
	}
}

// Tick rotates by one position.
func (r *Rotator) Tick() {
	n := len(r.items)
	last := r.items[n-1]
	copy(r.items[1:], r.items[:n-1])
	r.items[0] = last
	if r.onChange != nil {
		r.onChange(r.Items())
	}
}

// Items returns the current order.
func (r *Rotator) Items() []string {
	return append([]string(nil), r.items...)
}

// Slots renders the current order with style.
func (r *Rotator) Slots(style SlotStyle) []Slot {
	return style.Render(r.items)
}

// Slot is one item's display state.
type Slot struct {
	Label   string  `json:"label"`
	Offset  float64 `json:"offset"`
	Scale   float64 `json:"scale"`
	Opacity float64 `json:"opacity"`
	Z       int     `json:"z"`
}

// SlotStyle places rotated items in stacked slots with decreasing weight.
// Positions past the end of Opacity are fully transparent.
type SlotStyle struct {
	Step      float64
	ScaleStep float64
	Opacity   []float64
	ZBase     int
}

var (
	// RoleSlots is the compact list on the roles card.
	RoleSlots = SlotStyle{Step: 1.5, Opacity: []float64{1, 0.4}}

	// FeatureSlots is the stacked feature cards on a project card.
	FeatureSlots = SlotStyle{Step: 1.5, ScaleStep: 0.05, Opacity: []float64{1, 0.6}, ZBase: 10}
)

// Render lays out items in order.
func (s SlotStyle) Render(items []string) []Slot {
	out := make([]Slot, len(items))
	for i, label := range items {
		op := 0.0
		if i < len(s.Opacity) {
			op = s.Opacity[i]
		}
		out[i] = Slot{
			Label:   label,
			Offset:  float64(i) * s.Step,
			Scale:   1 - float64(i)*s.ScaleStep,
			Opacity: op,
			Z:       s.ZBase - i,
		}
	}
	return out
}
