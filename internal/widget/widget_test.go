package widget

import "github.com/Zachkp/live-portfolio/internal/viewport"

// fakeObserver places every observed element well below the fold; enter
// scrolls away and back so each call is a fresh crossing.
type fakeObserver struct {
	v *viewport.Viewport
}

func (o *fakeObserver) OnEnter(id string, anchor float64, once bool, fn func()) *viewport.Subscription {
	o.init()
	if _, ok := o.v.Top(id); !ok {
		o.v.Place(id, 2000)
	}
	return o.v.OnEnter(id, anchor, once, fn)
}

func (o *fakeObserver) OnScroll(fn func(float64)) *viewport.Subscription {
	o.init()
	return o.v.OnScroll(fn)
}

func (o *fakeObserver) init() {
	if o.v == nil {
		o.v = viewport.New(1000)
	}
}

func (o *fakeObserver) enter() {
	o.init()
	o.v.Update(0, 0)
	o.v.Update(2000, 0)
}

func (o *fakeObserver) observers() int {
	o.init()
	return o.v.Observers()
}
