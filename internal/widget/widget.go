// Package widget implements the animated page widgets: the cycling
// typewriter, the ring rotator, the count-up counter, the scroll card stack
// and the smaller behaviors built on them.
//
// Widgets hold only in-memory state for the lifetime of one mount. They run
// on the scheduler or driver they are given and never start goroutines; all
// callbacks, including change notifications, arrive on the owning loop.
// Every widget releases its timers and subscriptions in Unmount, whatever
// phase it is in.
package widget

import (
	"errors"

	"github.com/Zachkp/live-portfolio/internal/viewport"
)

var (
	ErrNoWords        = errors.New("widget: typewriter needs at least one word")
	ErrNoItems        = errors.New("widget: rotator needs at least one item")
	ErrNegativeTarget = errors.New("widget: counter target must not be negative")
	ErrBadInterval    = errors.New("widget: interval must be positive")
)

// Observer notifies when an element crosses a viewport threshold.
type Observer interface {
	OnEnter(id string, anchor float64, once bool, fn func()) *viewport.Subscription
}

// ScrollSource notifies on every scroll update.
type ScrollSource interface {
	OnScroll(fn func(scrollY float64)) *viewport.Subscription
}

// Standard anchors, as fractions of the viewport height from its top.
const (
	AnchorReveal = 0.8
	AnchorLate   = 0.7
	AnchorStack  = 0.15
)
