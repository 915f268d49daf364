// Package viewport tracks scroll position and element placement for one page
// view and notifies observers when elements cross viewport thresholds.
//
// A Viewport is owned by a single event loop and is not safe for concurrent
// use. All geometry is in CSS pixels; element tops are document offsets.
package viewport

// Subscription is a registered observer. Unsubscribe is idempotent.
type Subscription struct {
	v      *Viewport
	active bool

	// threshold observers
	element string
	anchor  float64
	once    bool
	inside  bool
	onEnter func()

	// scroll observers
	onScroll func(scrollY float64)
}

// Unsubscribe stops notifications.
func (s *Subscription) Unsubscribe() {
	if s == nil || !s.active {
		return
	}
	s.active = false
	s.v.prune()
}

// Active reports whether the subscription still receives notifications.
func (s *Subscription) Active() bool {
	return s != nil && s.active
}

// Viewport is the visible window over a scrolling document.
type Viewport struct {
	scrollY float64
	height  float64
	tops    map[string]float64
	subs    []*Subscription
}

// New creates a viewport of the given height scrolled to the top.
func New(height float64) *Viewport {
	return &Viewport{
		height: height,
		tops:   make(map[string]float64),
	}
}

// ScrollY returns the current scroll offset.
func (v *Viewport) ScrollY() float64 { return v.scrollY }

// Height returns the visible height.
func (v *Viewport) Height() float64 { return v.height }

// Top returns the document offset of an element's top edge.
func (v *Viewport) Top(id string) (float64, bool) {
	top, ok := v.tops[id]
	return top, ok
}

// Place records an element's document top and re-evaluates its observers.
func (v *Viewport) Place(id string, top float64) {
	v.tops[id] = top
	v.evaluate(false)
}

// Update moves the viewport and notifies observers. A non-positive height
// keeps the previous one.
func (v *Viewport) Update(scrollY, height float64) {
	v.Apply(scrollY, height, nil)
}

// Apply sets the scroll offset, height and any element placements together,
// then notifies observers once against the combined geometry.
func (v *Viewport) Apply(scrollY, height float64, tops map[string]float64) {
	if scrollY < 0 {
		scrollY = 0
	}
	if height > 0 {
		v.height = height
	}
	v.scrollY = scrollY
	for id, top := range tops {
		v.tops[id] = top
	}
	v.evaluate(true)
}

// Entered reports whether the element's top edge is at or above the anchor
// line, anchor being a fraction of the viewport height from its top edge
// ("top 80%" is 0.8). Unplaced elements never enter.
func (v *Viewport) Entered(id string, anchor float64) bool {
	top, ok := v.tops[id]
	if !ok {
		return false
	}
	return top-v.scrollY <= anchor*v.height
}

// OnEnter calls fn each time the element crosses the anchor line scrolling
// down. With once set the subscription ends after the first call. An element
// already past the line fires immediately.
func (v *Viewport) OnEnter(id string, anchor float64, once bool, fn func()) *Subscription {
	s := &Subscription{
		v:       v,
		active:  true,
		element: id,
		anchor:  anchor,
		once:    once,
		onEnter: fn,
	}
	v.subs = append(v.subs, s)
	v.check(s)
	return s
}

// OnScroll calls fn with the new offset after every Update.
func (v *Viewport) OnScroll(fn func(scrollY float64)) *Subscription {
	s := &Subscription{v: v, active: true, onScroll: fn}
	v.subs = append(v.subs, s)
	return s
}

// Observers returns the number of active subscriptions.
func (v *Viewport) Observers() int {
	n := 0
	for _, s := range v.subs {
		if s.active {
			n++
		}
	}
	return n
}

func (v *Viewport) evaluate(scrolled bool) {
	subs := make([]*Subscription, len(v.subs))
	copy(subs, v.subs)
	for _, s := range subs {
		if !s.active {
			continue
		}
		if s.onScroll != nil {
			if scrolled {
				s.onScroll(v.scrollY)
			}
			continue
		}
		v.check(s)
	}
}

func (v *Viewport) check(s *Subscription) {
	if s.onEnter == nil {
		return
	}
	inside := v.Entered(s.element, s.anchor)
	crossed := inside && !s.inside
	s.inside = inside
	if !crossed {
		return
	}
	if s.once {
		s.Unsubscribe()
	}
	s.onEnter()
}

func (v *Viewport) prune() {
	kept := v.subs[:0]
	for _, s := range v.subs {
		if s.active {
			kept = append(kept, s)
		}
	}
	for i := len(kept); i < len(v.subs); i++ {
		v.subs[i] = nil
	}
	v.subs = kept
}
