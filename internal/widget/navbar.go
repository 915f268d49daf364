package widget

import "github.com/Zachkp/live-portfolio/internal/viewport"

// DefaultNavbarThreshold is the scroll offset past which the navbar turns
// solid.
const DefaultNavbarThreshold = 50

// Navbar tracks whether the page has scrolled past a threshold and reports
// only the transitions.
type Navbar struct {
	threshold float64
	scrolled  bool
	onChange  func(scrolled bool)
	sub       *viewport.Subscription
}

// NewNavbar creates a navbar state tracker.
func NewNavbar(threshold float64, onChange func(bool)) *Navbar {
	return &Navbar{threshold: threshold, onChange: onChange}
}

// Attach follows src's scroll updates.
func (n *Navbar) Attach(src ScrollSource) {
	if n.sub != nil {
		return
	}
	n.sub = src.OnScroll(n.Update)
}

// Update applies a scroll offset.
func (n *Navbar) Update(scrollY float64) {
	scrolled := scrollY > n.threshold
	if scrolled == n.scrolled {
		return
	}
	n.scrolled = scrolled
	if n.onChange != nil {
		n.onChange(scrolled)
	}
}

// Scrolled reports the current state.
func (n *Navbar) Scrolled() bool { return n.scrolled }

// Unmount stops following scroll updates.
func (n *Navbar) Unmount() {
	n.sub.Unsubscribe()
	n.sub = nil
}
