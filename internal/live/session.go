// Package live runs one page view's widgets server-side. Each session owns
// an event loop, a viewport fed by the browser and the full widget set of
// the page; frames flow back to the browser through a coalescing outbox.
package live

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"sort"
	"strconv"
	"time"

	"github.com/Zachkp/live-portfolio/internal/anim"
	"github.com/Zachkp/live-portfolio/internal/content"
	"github.com/Zachkp/live-portfolio/internal/viewport"
	"github.com/Zachkp/live-portfolio/internal/widget"
)

var (
	ErrSessionClosed = errors.New("live: session closed")
	ErrBadViewport   = errors.New("live: invalid viewport geometry")
)

// Widget keys used in frames and as element ids on the page.
const (
	KeyRadar  = "radar"
	KeyRoles  = "roles"
	KeyYears  = "years"
	KeyNavbar = "navbar"
	KeyStack  = "stack"
)

// ProjectKey is the frame key and element id of a project card.
func ProjectKey(id string) string { return "project-" + id }

// ExperienceKey is the element id of experience card i.
func ExperienceKey(i int) string { return "exp-" + strconv.Itoa(i) }

// GraphicKey is the frame key of experience card i's graphic.
func GraphicKey(i int) string { return "graphic-" + strconv.Itoa(i) }

// Options tune a session.
type Options struct {
	// Frame is the tween sampling interval; zero means anim.DefaultFrame.
	Frame time.Duration
	// Clock drives the loop; nil means wall time.
	Clock anim.Clock
}

// ViewportEvent is the geometry the browser reports.
type ViewportEvent struct {
	ScrollY float64            `json:"scrollY"`
	Height  float64            `json:"height"`
	Tops    map[string]float64 `json:"tops,omitempty"`
}

// Validate rejects geometry the viewport cannot use.
func (e ViewportEvent) Validate() error {
	bad := func(v float64) bool { return math.IsNaN(v) || math.IsInf(v, 0) }
	if bad(e.ScrollY) || bad(e.Height) || e.Height < 0 {
		return ErrBadViewport
	}
	for id, top := range e.Tops {
		if bad(top) {
			return fmt.Errorf("%w: top of %q", ErrBadViewport, id)
		}
	}
	return nil
}

// Session is one mounted page.
type Session struct {
	ID string

	loop    *anim.Loop
	driver  *anim.Driver
	view    *viewport.Viewport
	out     *outbox
	done    chan struct{}
	created time.Time

	radar     *widget.Typewriter
	roles     *widget.Rotator
	roleSlots *widget.SlotAnimator
	years     *widget.Counter
	navbar    *widget.Navbar
	graphics  []*widget.Graphic
	features  map[string]*widget.Rotator
	slots     map[string]*widget.SlotAnimator
	typers    map[string]*widget.Typer
	demos     map[string]*widget.SchedulerDemo
	stackSub  *viewport.Subscription
	stackSize int

	mounted bool
}

// NewSession builds the widget set for p. Nothing is scheduled until Mount.
func NewSession(id string, p *content.Portfolio, opts Options) (*Session, error) {
	loop := anim.NewLoop(opts.Clock)
	s := &Session{
		ID:        id,
		loop:      loop,
		driver:    anim.NewDriver(loop, opts.Frame),
		view:      viewport.New(0),
		out:       newOutbox(),
		done:      make(chan struct{}),
		created:   loop.Now(),
		features:  make(map[string]*widget.Rotator),
		slots:     make(map[string]*widget.SlotAnimator),
		typers:    make(map[string]*widget.Typer),
		demos:     make(map[string]*widget.SchedulerDemo),
		stackSize: len(p.Experience),
	}

	t := p.Timings
	var err error
	s.radar, err = widget.NewTypewriter(loop, p.About.Radar, widget.Timing{
		Type:   t.TypeDelay,
		Delete: t.DeleteDelay,
		Pause:  t.Pause,
	}, func(text string) {
		s.emit(KeyRadar, text)
	})
	if err != nil {
		return nil, fmt.Errorf("radar: %w", err)
	}

	s.roleSlots = widget.NewSlotAnimator(s.driver, widget.RoleSlots, 0, nil, func(slots []widget.Slot) {
		s.emit(KeyRoles, slots)
	})
	s.roles, err = widget.NewRotator(loop, p.About.Roles, t.RotateInterval, s.roleSlots.Set)
	if err != nil {
		return nil, fmt.Errorf("roles: %w", err)
	}

	s.years, err = widget.NewCounter(s.driver, p.About.YearsActive, t.CountDuration, anim.Power3Out, func(v int) {
		s.emit(KeyYears, v)
	})
	if err != nil {
		return nil, fmt.Errorf("years: %w", err)
	}

	s.navbar = widget.NewNavbar(widget.DefaultNavbarThreshold, func(scrolled bool) {
		s.emit(KeyNavbar, scrolled)
	})

	for i, e := range p.Experience {
		key := GraphicKey(i)
		emit := func(v float64) { s.emit(key, v) }
		var g *widget.Graphic
		switch e.Graphic {
		case content.GraphicMotif:
			g = widget.NewMotif(s.driver, emit)
		case content.GraphicLaser:
			g = widget.NewLaser(s.driver, emit)
		case content.GraphicWaveform:
			g = widget.NewWaveform(s.driver, emit)
		default:
			return nil, fmt.Errorf("experience %d: unknown graphic %q", i, e.Graphic)
		}
		s.graphics = append(s.graphics, g)
	}

	for _, pr := range p.Projects {
		key := ProjectKey(pr.ID)
		switch pr.Kind {
		case content.KindShuffler:
			a := widget.NewSlotAnimator(s.driver, widget.FeatureSlots, 0, nil, func(slots []widget.Slot) {
				s.emit(key, slots)
			})
			r, err := widget.NewRotator(loop, pr.Features, t.RotateInterval, a.Set)
			if err != nil {
				return nil, fmt.Errorf("project %s: %w", pr.ID, err)
			}
			s.features[key] = r
			s.slots[key] = a
		case content.KindTypewriter:
			s.typers[key] = widget.NewTyper(loop, pr.FullDesc, t.TyperDelay, func(text string) {
				s.emit(key, text)
			})
		case content.KindScheduler:
			s.demos[key] = widget.NewSchedulerDemo(s.driver, func(f widget.CursorFrame) {
				s.emit(key, f)
			})
		}
	}

	return s, nil
}

func (s *Session) emit(key string, data any) {
	s.out.put(Frame{Widget: key, Data: data})
}

// Loop returns the session's event loop.
func (s *Session) Loop() *anim.Loop { return s.loop }

// Viewport returns the session's viewport. Only touch it on the loop.
func (s *Session) Viewport() *viewport.Viewport { return s.view }

// Ready is signalled whenever frames are waiting.
func (s *Session) Ready() <-chan struct{} { return s.out.ready }

// Frames drains waiting frames, one per widget, in first-update order.
func (s *Session) Frames() []Frame { return s.out.take() }

// Done is closed once the session has unmounted after Run.
func (s *Session) Done() <-chan struct{} { return s.done }

// Age returns how long the session has existed by its own clock.
func (s *Session) Age() time.Duration { return s.loop.Now().Sub(s.created) }

// Mount starts every widget and places the slots of the rotators. Call it on
// the loop goroutine, or before the loop runs.
func (s *Session) Mount() {
	if s.mounted {
		return
	}
	s.mounted = true

	s.radar.Mount()
	s.roles.Mount()
	s.roleSlots.Snap(s.roles.Items())
	s.years.Attach(s.view, KeyYears, widget.AnchorReveal)
	s.navbar.Attach(s.view)
	s.stackSub = s.view.OnScroll(func(float64) { s.emitStack() })
	for _, g := range s.graphics {
		g.Mount()
	}

	for _, key := range sortedKeys(s.features) {
		s.features[key].Mount()
		s.slots[key].Snap(s.features[key].Items())
	}
	for _, key := range sortedKeys(s.typers) {
		s.typers[key].Attach(s.view, key, widget.AnchorReveal)
	}
	for _, key := range sortedKeys(s.demos) {
		s.demos[key].Attach(s.view, key, widget.AnchorLate)
	}
}

// Unmount releases every timer, tween and subscription the session holds.
func (s *Session) Unmount() {
	if !s.mounted {
		return
	}
	s.mounted = false

	for _, d := range s.demos {
		d.Unmount()
	}
	for _, t := range s.typers {
		t.Unmount()
	}
	for key, r := range s.features {
		r.Unmount()
		s.slots[key].Stop()
	}
	for _, g := range s.graphics {
		g.Unmount()
	}
	s.stackSub.Unsubscribe()
	s.stackSub = nil
	s.navbar.Unmount()
	s.years.Unmount()
	s.roles.Unmount()
	s.roleSlots.Stop()
	s.radar.Unmount()
}

// Mounted reports whether widgets are running.
func (s *Session) Mounted() bool { return s.mounted }

func (s *Session) emitStack() {
	tops := make([]float64, 0, s.stackSize)
	for i := 0; i < s.stackSize; i++ {
		top, ok := s.view.Top(ExperienceKey(i))
		if !ok {
			return
		}
		tops = append(tops, top)
	}
	stack := widget.NewStack(tops, widget.AnchorStack*s.view.Height())
	s.emit(KeyStack, stack.Cards(s.view.ScrollY()))
}

// HandleViewport queues a geometry update onto the loop.
func (s *Session) HandleViewport(ev ViewportEvent) error {
	if err := ev.Validate(); err != nil {
		return err
	}
	ok := s.loop.Post(func() {
		s.view.Apply(ev.ScrollY, ev.Height, ev.Tops)
	})
	if !ok {
		return ErrSessionClosed
	}
	return nil
}

// Run mounts the widgets and drives the loop until ctx is done, then
// unmounts on the same goroutine.
func (s *Session) Run(ctx context.Context) error {
	defer close(s.done)

	s.loop.Post(s.Mount)
	log.Printf("live: session %s mounted", s.ID)

	err := s.loop.Run(ctx)
	s.Unmount()
	log.Printf("live: session %s unmounted after %s", s.ID, s.Age().Round(time.Second))

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
