package live

import "sync"

// Frame is one widget state update pushed to the browser.
type Frame struct {
	Widget string `json:"widget"`
	Data   any    `json:"data"`
}

// outbox keeps the latest frame of each widget until the reader drains it.
type outbox struct {
	mu     sync.Mutex
	order  []string
	latest map[string]Frame
	ready  chan struct{}
}

func newOutbox() *outbox {
	return &outbox{
		latest: make(map[string]Frame),
		ready:  make(chan struct{}, 1),
	}
}

func (o *outbox) put(f Frame) {
	o.mu.Lock()
	if _, ok := o.latest[f.Widget]; !ok {
		o.order = append(o.order, f.Widget)
	}
	o.latest[f.Widget] = f
	o.mu.Unlock()

	select {
	case o.ready <- struct{}{}:
	default:
	}
}

func (o *outbox) take() []Frame {
	o.mu.Lock()
	defer o.mu.Unlock()
	if len(o.order) == 0 {
		return nil
	}
	out := make([]Frame, 0, len(o.order))
	for _, w := range o.order {
		out = append(out, o.latest[w])
		delete(o.latest, w)
	}
	o.order = o.order[:0]
	return out
}
