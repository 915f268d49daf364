package widget

import (
	"math"
	"time"

	"github.com/Zachkp/live-portfolio/internal/anim"
	"github.com/Zachkp/live-portfolio/internal/viewport"
)

// DefaultCountDuration is how long a count-up takes.
const DefaultCountDuration = 2 * time.Second

// Counter counts from 0 to a target once per mount. The hasFired guard lives
// here, not in the observer, so re-entering the viewport never restarts it.
type Counter struct {
	driver   *anim.Driver
	target   int
	duration time.Duration
	curve    anim.Curve
	onChange func(value int)

	value     int
	fired     bool
	unmounted bool
	tween     *anim.Tweening
	sub       *viewport.Subscription
}

// NewCounter creates a counter. A zero duration means DefaultCountDuration
// and a nil curve means anim.Power3Out.
func NewCounter(driver *anim.Driver, target int, duration time.Duration, curve anim.Curve, onChange func(int)) (*Counter, error) {
	if target < 0 {
		return nil, ErrNegativeTarget
	}
	if duration <= 0 {
		duration = DefaultCountDuration
	}
	if curve == nil {
		curve = anim.Power3Out
	}
	return &Counter{
		driver:   driver,
		target:   target,
		duration: duration,
		curve:    curve,
		onChange: onChange,
	}, nil
}

// Attach starts the count when element crosses anchor.
func (c *Counter) Attach(obs Observer, element string, anchor float64) {
	if c.sub != nil || c.fired || c.unmounted {
		return
	}
	c.sub = obs.OnEnter(element, anchor, true, c.Start)
}

// Start runs the count-up unless it has already fired.
func (c *Counter) Start() {
	if c.fired || c.unmounted {
		return
	}
	c.fired = true
	c.tween = c.driver.Start(anim.Tween{
		From:     0,
		To:       float64(c.target),
		Duration: c.duration,
		Curve:    c.curve,
		OnUpdate: c.update,
	})
}

func (c *Counter) update(v float64) {
	n := int(math.Floor(v))
	if n > c.target {
		n = c.target
	}
	if n <= c.value {
		return
	}
	c.value = n
	if c.onChange != nil {
		c.onChange(n)
	}
}

// Unmount releases the tween and the visibility subscription.
func (c *Counter) Unmount() {
	c.unmounted = true
	if c.tween != nil {
		c.tween.Cancel()
		c.tween = nil
	}
	c.sub.Unsubscribe()
	c.sub = nil
}

// Value returns the displayed value.
func (c *Counter) Value() int { return c.value }

// Target returns the final value.
func (c *Counter) Target() int { return c.target }

// Fired reports whether the count-up has been triggered.
func (c *Counter) Fired() bool { return c.fired }

// Done reports whether the displayed value reached the target.
func (c *Counter) Done() bool { return c.fired && c.value == c.target }
