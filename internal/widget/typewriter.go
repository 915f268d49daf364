package widget

import (
	"time"

	"github.com/Zachkp/live-portfolio/internal/anim"
)

// Timing holds the typewriter delays.
type Timing struct {
	Type   time.Duration
	Delete time.Duration
	Pause  time.Duration
}

// DefaultTiming types at 100ms, deletes at 50ms and holds a full word for 2s.
var DefaultTiming = Timing{
	Type:   100 * time.Millisecond,
	Delete: 50 * time.Millisecond,
	Pause:  2 * time.Second,
}

func (t Timing) orDefault() Timing {
	if t.Type <= 0 {
		t.Type = DefaultTiming.Type
	}
	if t.Delete <= 0 {
		t.Delete = DefaultTiming.Delete
	}
	if t.Pause <= 0 {
		t.Pause = DefaultTiming.Pause
	}
	return t
}

// Typewriter types and deletes words from a fixed list forever, one
// character per step. The visible text is always a prefix of the current
// word, and at most one timer is outstanding.
type Typewriter struct {
	sched    anim.Scheduler
	words    [][]rune
	timing   Timing
	onChange func(text string)

	index    int
	shown    int
	deleting bool
	pending  anim.Handle
	mounted  bool
}

// NewTypewriter creates a typewriter over words. onChange may be nil.
func NewTypewriter(sched anim.Scheduler, words []string, timing Timing, onChange func(string)) (*Typewriter, error) {
	if len(words) == 0 {
		return nil, ErrNoWords
	}
	rs := make([][]rune, len(words))
	for i, w := range words {
		rs[i] = []rune(w)
	}
	return &Typewriter{
		sched:    sched,
		words:    rs,
		timing:   timing.orDefault(),
		onChange: onChange,
	}, nil
}

// Mount starts typing. Mounting twice is a no-op.
func (w *Typewriter) Mount() {
	if w.mounted {
		return
	}
	w.mounted = true
	w.schedule()
}

// Unmount cancels the pending step.
func (w *Typewriter) Unmount() {
	w.mounted = false
	if w.pending != nil {
		w.pending.Cancel()
		w.pending = nil
	}
}

// Text returns the visible text.
func (w *Typewriter) Text() string {
	return string(w.words[w.index][:w.shown])
}

// Index returns the position of the active word.
func (w *Typewriter) Index() int {
	return w.index
}

// Deleting reports whether the typewriter is in its deleting phase.
func (w *Typewriter) Deleting() bool {
	return w.deleting
}

func (w *Typewriter) schedule() {
	if w.pending != nil {
		w.pending.Cancel()
		w.pending = nil
	}
	if !w.mounted {
		return
	}

	if w.deleting {
		if w.shown > 0 {
			w.pending = w.sched.After(w.timing.Delete, func() {
				w.shown--
				w.changed()
				w.schedule()
			})
			return
		}
		w.deleting = false
		w.index = (w.index + 1) % len(w.words)
	}

	if w.shown < len(w.words[w.index]) {
		w.pending = w.sched.After(w.timing.Type, func() {
			w.shown++
			w.changed()
			w.schedule()
		})
		return
	}
	w.pending = w.sched.After(w.timing.Pause, func() {
		w.deleting = true
		w.schedule()
	})
}

func (w *Typewriter) changed() {
	if w.onChange != nil {
		w.onChange(w.Text())
	}
}
