package widget

import (
	"time"

	"github.com/Zachkp/live-portfolio/internal/anim"
	"github.com/Zachkp/live-portfolio/internal/viewport"
)

// DefaultTyperDelay is the per-character delay of the one-shot typer.
const DefaultTyperDelay = 40 * time.Millisecond

// Typer types a single text once, starting the first time its element is
// revealed.
type Typer struct {
	sched    anim.Scheduler
	text     []rune
	delay    time.Duration
	onChange func(text string)

	shown     int
	started   bool
	unmounted bool
	pending   anim.Handle
	sub       *viewport.Subscription
}

// NewTyper creates a typer for text. A non-positive delay means
// DefaultTyperDelay.
func NewTyper(sched anim.Scheduler, text string, delay time.Duration, onChange func(string)) *Typer {
	if delay <= 0 {
		delay = DefaultTyperDelay
	}
	return &Typer{
		sched:    sched,
		text:     []rune(text),
		delay:    delay,
		onChange: onChange,
	}
}

// Attach starts the typer when element crosses anchor.
func (t *Typer) Attach(obs Observer, element string, anchor float64) {
	if t.sub != nil || t.started || t.unmounted {
		return
	}
	t.sub = obs.OnEnter(element, anchor, true, t.Start)
}

// Start begins typing. Later calls are no-ops.
func (t *Typer) Start() {
	if t.started || t.unmounted {
		return
	}
	t.started = true
	t.next()
}

func (t *Typer) next() {
	if t.unmounted || t.shown >= len(t.text) {
		t.pending = nil
		return
	}
	t.pending = t.sched.After(t.delay, func() {
		t.shown++
		if t.onChange != nil {
			t.onChange(t.Text())
		}
		t.next()
	})
}

// Unmount cancels typing and the reveal subscription.
func (t *Typer) Unmount() {
	t.unmounted = true
	if t.pending != nil {
		t.pending.Cancel()
		t.pending = nil
	}
	t.sub.Unsubscribe()
	t.sub = nil
}

// Text returns the typed prefix.
func (t *Typer) Text() string {
	return string(t.text[:t.shown])
}

// Started reports whether the reveal has fired.
func (t *Typer) Started() bool {
	return t.started
}

// Done reports whether the whole text is shown.
func (t *Typer) Done() bool {
	return t.shown == len(t.text)
}
