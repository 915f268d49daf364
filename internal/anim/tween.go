package anim

import "time"

// DefaultFrame is the frame interval tweens are sampled at.
const DefaultFrame = 16 * time.Millisecond

// Driver runs tweens on a scheduler. Each widget receives its driver
// explicitly, so teardown of one widget never touches another's animations.
type Driver struct {
	sched Scheduler
	frame time.Duration
}

// NewDriver creates a driver sampling at frame. A non-positive frame means
// DefaultFrame.
func NewDriver(sched Scheduler, frame time.Duration) *Driver {
	if frame <= 0 {
		frame = DefaultFrame
	}
	return &Driver{sched: sched, frame: frame}
}

// Scheduler returns the scheduler the driver runs on.
func (d *Driver) Scheduler() Scheduler {
	return d.sched
}

// Frame returns the sampling interval.
func (d *Driver) Frame() time.Duration {
	return d.frame
}

// Tween describes an interpolation from From to To.
type Tween struct {
	From     float64
	To       float64
	Duration time.Duration
	Delay    time.Duration

	// Curve eases progress; nil means Linear.
	Curve Curve

	// OnUpdate receives the interpolated value once at the start, on every
	// frame, and exactly To at the end.
	OnUpdate func(v float64)

	// OnComplete fires once after the final update. It does not fire when
	// the tween is cancelled.
	OnComplete func()
}

// Tweening is a running tween. It implements Handle.
type Tweening struct {
	driver    *Driver
	tw        Tween
	start     time.Time
	current   Handle
	value     float64
	done      bool
	completed bool
}

// Start begins tw and returns its handle.
func (d *Driver) Start(tw Tween) *Tweening {
	if tw.Curve == nil {
		tw.Curve = Linear
	}
	r := &Tweening{driver: d, tw: tw, value: tw.From}
	if tw.Delay > 0 {
		r.current = d.sched.After(tw.Delay, r.begin)
	} else {
		r.begin()
	}
	return r
}

func (r *Tweening) begin() {
	r.start = r.driver.sched.Now()
	r.update(0)
	if r.done {
		return
	}
	if r.tw.Duration <= 0 {
		r.finish()
		return
	}
	r.current = r.driver.sched.Every(r.driver.frame, r.step)
}

func (r *Tweening) step() {
	if r.done {
		return
	}
	p := float64(r.driver.sched.Now().Sub(r.start)) / float64(r.tw.Duration)
	if p >= 1 {
		r.finish()
		return
	}
	r.update(p)
}

func (r *Tweening) update(p float64) {
	r.value = Lerp(r.tw.From, r.tw.To, r.tw.Curve(p))
	if r.tw.OnUpdate != nil {
		r.tw.OnUpdate(r.value)
	}
}

func (r *Tweening) finish() {
	if r.current != nil {
		r.current.Cancel()
	}
	r.done = true
	r.completed = true
	r.value = r.tw.To
	if r.tw.OnUpdate != nil {
		r.tw.OnUpdate(r.tw.To)
	}
	if r.tw.OnComplete != nil {
		r.tw.OnComplete()
	}
}

// Cancel stops the tween where it is.
func (r *Tweening) Cancel() {
	if r.done {
		return
	}
	r.done = true
	if r.current != nil {
		r.current.Cancel()
	}
}

// Active reports whether the tween is waiting or running.
func (r *Tweening) Active() bool {
	return !r.done
}

// Completed reports whether the tween reached To.
func (r *Tweening) Completed() bool {
	return r.completed
}

// Value returns the last interpolated value.
func (r *Tweening) Value() float64 {
	return r.value
}
