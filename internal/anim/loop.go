// Package anim provides the scheduling primitives the page widgets run on:
// a single-goroutine event loop with cancellable timers, a tween driver that
// interpolates values at frame granularity, easing curves, and timelines.
//
// A Loop owns every callback it schedules. Callbacks run one at a time on the
// goroutine that drives the loop, either Run for wall-clock time or Advance
// for a ManualClock in tests. Other goroutines hand work to the loop with
// Post.
package anim

import (
	"container/heap"
	"context"
	"sync"
	"time"
)

// Handle is a cancellable reference to scheduled work. Cancel is idempotent.
type Handle interface {
	Cancel()
	Active() bool
}

// Scheduler is the timer service widgets depend on.
type Scheduler interface {
	Now() time.Time
	After(d time.Duration, fn func()) Handle
	Every(d time.Duration, fn func()) Handle
}

type timer struct {
	loop  *Loop
	at    time.Time
	every time.Duration
	fn    func()
	seq   uint64
	index int
	done  bool
}

func (t *timer) Cancel() {
	t.loop.cancel(t)
}

func (t *timer) Active() bool {
	t.loop.mu.Lock()
	defer t.loop.mu.Unlock()
	return !t.done
}

// timerQueue orders timers by deadline, then by scheduling order.
type timerQueue []*timer

func (q timerQueue) Len() int { return len(q) }

func (q timerQueue) Less(i, j int) bool {
	if q[i].at.Equal(q[j].at) {
		return q[i].seq < q[j].seq
	}
	return q[i].at.Before(q[j].at)
}

func (q timerQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *timerQueue) Push(x any) {
	t := x.(*timer)
	t.index = len(*q)
	*q = append(*q, t)
}

func (q *timerQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*q = old[:n-1]
	return t
}

// Loop is a cooperative event loop. It implements Scheduler.
type Loop struct {
	clock Clock

	mu     sync.Mutex
	queue  timerQueue
	seq    uint64
	posted []func()
	closed bool

	wake chan struct{}
}

// NewLoop creates a loop reading time from clock. A nil clock means
// SystemClock.
func NewLoop(clock Clock) *Loop {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Loop{
		clock: clock,
		wake:  make(chan struct{}, 1),
	}
}

// Now returns the loop's current time.
func (l *Loop) Now() time.Time {
	return l.clock.Now()
}

// After schedules fn to run once, d from now.
func (l *Loop) After(d time.Duration, fn func()) Handle {
	return l.schedule(d, 0, fn)
}

// Every schedules fn to run every d, first d from now, until cancelled.
// Non-positive intervals are raised to one millisecond.
func (l *Loop) Every(d time.Duration, fn func()) Handle {
	if d <= 0 {
		d = time.Millisecond
	}
	return l.schedule(d, d, fn)
}

func (l *Loop) schedule(d, every time.Duration, fn func()) *timer {
	if d < 0 {
		d = 0
	}
	l.mu.Lock()
	t := &timer{
		loop:  l,
		at:    l.clock.Now().Add(d),
		every: every,
		fn:    fn,
		index: -1,
	}
	if l.closed {
		t.done = true
		l.mu.Unlock()
		return t
	}
	l.seq++
	t.seq = l.seq
	heap.Push(&l.queue, t)
	l.mu.Unlock()

	l.notify()
	return t
}

func (l *Loop) cancel(t *timer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	t.done = true
	if t.index >= 0 {
		heap.Remove(&l.queue, t.index)
	}
}

// Post queues fn to run on the loop goroutine. It is safe to call from any
// goroutine and reports false once the loop is closed.
func (l *Loop) Post(fn func()) bool {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return false
	}
	l.posted = append(l.posted, fn)
	l.mu.Unlock()

	l.notify()
	return true
}

// Pending returns the number of queued timers.
func (l *Loop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.queue)
}

// Closed reports whether Close has been called.
func (l *Loop) Closed() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.closed
}

// Close cancels every pending timer and drops posted work. Scheduling on a
// closed loop returns an inactive handle.
func (l *Loop) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}
	l.closed = true
	for _, t := range l.queue {
		t.done = true
		t.index = -1
	}
	l.queue = nil
	l.posted = nil
}

func (l *Loop) notify() {
	select {
	case l.wake <- struct{}{}:
	default:
	}
}

func (l *Loop) runPosted() bool {
	l.mu.Lock()
	fns := l.posted
	l.posted = nil
	l.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
	return len(fns) > 0
}

// popDue removes the earliest timer due at or before now.
func (l *Loop) popDue(now time.Time) *timer {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.queue) == 0 || l.queue[0].at.After(now) {
		return nil
	}
	t := heap.Pop(&l.queue).(*timer)
	if t.every <= 0 {
		t.done = true
	}
	return t
}

func (l *Loop) fire(t *timer) {
	t.fn()
	if t.every <= 0 {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if t.done || l.closed {
		return
	}
	// Drift-free rescheduling; ticks missed while the loop was busy are skipped.
	next := t.at.Add(t.every)
	if now := l.clock.Now(); !next.After(now) {
		next = now.Add(t.every)
	}
	t.at = next
	l.seq++
	t.seq = l.seq
	heap.Push(&l.queue, t)
}

func (l *Loop) nextDeadline() (time.Time, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.queue) == 0 {
		return time.Time{}, false
	}
	return l.queue[0].at, true
}

// Run drives the loop on wall-clock time until ctx is done, then closes it.
func (l *Loop) Run(ctx context.Context) error {
	defer l.Close()

	wait := time.NewTimer(time.Hour)
	wait.Stop()
	defer wait.Stop()

	for {
		l.runPosted()
		for t := l.popDue(l.clock.Now()); t != nil; t = l.popDue(l.clock.Now()) {
			l.fire(t)
			l.runPosted()
		}

		var fired <-chan time.Time
		if at, ok := l.nextDeadline(); ok {
			wait.Reset(time.Until(at))
			fired = wait.C
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.wake:
		case <-fired:
		}
		wait.Stop()
	}
}

// Advance steps a ManualClock-driven loop forward by d, firing every timer
// due on the way at its own deadline. It panics for any other clock.
func (l *Loop) Advance(d time.Duration) {
	mc, ok := l.clock.(*ManualClock)
	if !ok {
		panic("anim: Advance requires a ManualClock")
	}
	target := mc.Now().Add(d)

	for {
		ran := l.runPosted()
		t := l.popDue(target)
		if t == nil {
			if ran {
				continue
			}
			break
		}
		if t.at.After(mc.Now()) {
			mc.Set(t.at)
		}
		l.fire(t)
	}
	mc.Set(target)
}

// Flush runs posted work and timers already due, without moving time.
func (l *Loop) Flush() {
	for {
		ran := l.runPosted()
		t := l.popDue(l.clock.Now())
		if t == nil {
			if ran {
				continue
			}
			return
		}
		l.fire(t)
	}
}
