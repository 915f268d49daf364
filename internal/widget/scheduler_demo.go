package widget

import (
	"time"

	"github.com/Zachkp/live-portfolio/internal/anim"
	"github.com/Zachkp/live-portfolio/internal/viewport"
)

// CursorFrame is one frame of the scheduler demo card: a pointer that moves
// to a weekday, clicks it, moves to the save button and clicks that.
type CursorFrame struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Scale     float64 `json:"scale"`
	Opacity   float64 `json:"opacity"`
	ActiveDay int     `json:"activeDay"`
	Saving    bool    `json:"saving"`
}

const (
	demoClickedDay = 3
	demoSaveFlash  = 400 * time.Millisecond
)

// SchedulerDemo loops the cursor timeline after its card is revealed.
type SchedulerDemo struct {
	driver   *anim.Driver
	onChange func(CursorFrame)

	frame     CursorFrame
	started   bool
	unmounted bool
	playing   *anim.Playing
	flash     anim.Handle
	sub       *viewport.Subscription
}

// NewSchedulerDemo creates the demo in its idle frame.
func NewSchedulerDemo(driver *anim.Driver, onChange func(CursorFrame)) *SchedulerDemo {
	return &SchedulerDemo{
		driver:   driver,
		onChange: onChange,
		frame:    CursorFrame{Scale: 1, ActiveDay: -1},
	}
}

// Attach starts the demo when element crosses anchor.
func (d *SchedulerDemo) Attach(obs Observer, element string, anchor float64) {
	if d.sub != nil || d.started || d.unmounted {
		return
	}
	d.sub = obs.OnEnter(element, anchor, true, d.Start)
}

// Start begins looping. Later calls are no-ops.
func (d *SchedulerDemo) Start() {
	if d.started || d.unmounted {
		return
	}
	d.started = true
	d.playing = d.driver.Play(d.timeline())
}

// Frame returns the current frame.
func (d *SchedulerDemo) Frame() CursorFrame { return d.frame }

// Started reports whether the demo is running.
func (d *SchedulerDemo) Started() bool { return d.started }

// Plays returns the number of completed loops.
func (d *SchedulerDemo) Plays() int {
	if d.playing == nil {
		return 0
	}
	return d.playing.Plays()
}

// Unmount stops the loop, any pending save flash and the subscription.
func (d *SchedulerDemo) Unmount() {
	d.unmounted = true
	if d.playing != nil {
		d.playing.Cancel()
		d.playing = nil
	}
	if d.flash != nil {
		d.flash.Cancel()
		d.flash = nil
	}
	d.sub.Unsubscribe()
	d.sub = nil
}

func (d *SchedulerDemo) emit() {
	if d.onChange != nil {
		d.onChange(d.frame)
	}
}

// move returns an Update that interpolates the cursor from where it is when
// the step begins to (x, y).
func (d *SchedulerDemo) move(x, y float64) func(float64) {
	var fromX, fromY float64
	return func(p float64) {
		if p == 0 {
			fromX, fromY = d.frame.X, d.frame.Y
		}
		d.frame.X = anim.Lerp(fromX, x, p)
		d.frame.Y = anim.Lerp(fromY, y, p)
		d.emit()
	}
}

func (d *SchedulerDemo) scaleTo(s float64) func(float64) {
	var from float64
	return func(p float64) {
		if p == 0 {
			from = d.frame.Scale
		}
		d.frame.Scale = anim.Lerp(from, s, p)
		d.emit()
	}
}

func (d *SchedulerDemo) fadeTo(o float64) func(float64) {
	var from float64
	return func(p float64) {
		if p == 0 {
			from = d.frame.Opacity
		}
		d.frame.Opacity = anim.Lerp(from, o, p)
		d.emit()
	}
}

func (d *SchedulerDemo) timeline() anim.Timeline {
	ms := time.Millisecond
	return anim.Timeline{
		Repeat:      -1,
		RepeatDelay: time.Second,
		Steps: []anim.Step{
			{Update: func(float64) {
				d.frame.X, d.frame.Y, d.frame.Opacity, d.frame.Scale = 0, 0, 0, 1
				d.emit()
			}},
			{Duration: 300 * ms, Update: d.fadeTo(1)},
			{Duration: time.Second, Curve: anim.Power2Out, Update: d.move(120, 20)},
			{Duration: 100 * ms, Update: d.scaleTo(0.8), Done: func() {
				d.frame.ActiveDay = demoClickedDay
				d.emit()
			}},
			{Duration: 100 * ms, Update: d.scaleTo(1)},
			{Delay: 500 * ms, Duration: 800 * ms, Curve: anim.Power2InOut, Update: d.move(200, 70)},
			{Duration: 100 * ms, Update: d.scaleTo(0.8), Done: d.save},
			{Duration: 100 * ms, Update: d.scaleTo(1)},
			{Delay: 500 * ms, Duration: 300 * ms, Update: d.fadeTo(0), Done: func() {
				d.frame.ActiveDay = -1
				d.emit()
			}},
		},
	}
}

func (d *SchedulerDemo) save() {
	d.frame.Saving = true
	d.emit()
	if d.flash != nil {
		d.flash.Cancel()
	}
	d.flash = d.driver.Scheduler().After(demoSaveFlash, func() {
		d.flash = nil
		d.frame.Saving = false
		d.emit()
	})
}
