package anim

import "time"

// Step is one segment of a timeline. Update receives eased progress in
// [0, 1]; Done fires when the segment completes.
type Step struct {
	Delay    time.Duration
	Duration time.Duration
	Curve    Curve
	Update   func(p float64)
	Done     func()
}

// Timeline plays steps in order. Repeat is the number of extra plays; a
// negative Repeat loops until cancelled.
type Timeline struct {
	Steps       []Step
	Repeat      int
	RepeatDelay time.Duration
}

// Playing is a running timeline. It implements Handle.
type Playing struct {
	driver  *Driver
	tl      Timeline
	index   int
	plays   int
	current Handle
	done    bool
}

// Play starts tl.
func (d *Driver) Play(tl Timeline) *Playing {
	if tl.Repeat != 0 && tl.RepeatDelay <= 0 {
		tl.RepeatDelay = d.frame
	}
	p := &Playing{driver: d, tl: tl}
	p.run(0)
	return p
}

func (p *Playing) run(i int) {
	if p.done {
		return
	}
	if i >= len(p.tl.Steps) {
		p.loop()
		return
	}
	p.index = i
	step := p.tl.Steps[i]
	t := p.driver.Start(Tween{
		From:     0,
		To:       1,
		Duration: step.Duration,
		Delay:    step.Delay,
		Curve:    step.Curve,
		OnUpdate: step.Update,
		OnComplete: func() {
			if step.Done != nil {
				step.Done()
			}
			p.run(i + 1)
		},
	})
	// Zero-length steps complete inside Start and have already advanced
	// p.current.
	if !t.Completed() {
		p.current = t
	}
}

func (p *Playing) loop() {
	p.plays++
	if p.tl.Repeat >= 0 && p.plays > p.tl.Repeat {
		p.done = true
		return
	}
	p.current = p.driver.sched.After(p.tl.RepeatDelay, func() {
		p.run(0)
	})
}

// Cancel stops the timeline.
func (p *Playing) Cancel() {
	if p.done {
		return
	}
	p.done = true
	if p.current != nil {
		p.current.Cancel()
	}
}

// Active reports whether the timeline is still playing.
func (p *Playing) Active() bool {
	return !p.done
}

// Plays returns the number of completed passes.
func (p *Playing) Plays() int {
	return p.plays
}

// Stagger returns n start delays spaced each apart after base.
func Stagger(n int, base, each time.Duration) []time.Duration {
	if n <= 0 {
		return nil
	}
	out := make([]time.Duration, n)
	for i := range out {
		out[i] = base + time.Duration(i)*each
	}
	return out
}
