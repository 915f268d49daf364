package widget

import (
	"time"

	"github.com/Zachkp/live-portfolio/internal/anim"
)

// Loop parameters of the experience card graphics.
const (
	MotifPeriod   = 10 * time.Second
	LaserSweep    = 2 * time.Second
	LaserTravel   = 60.0
	WavePeriod    = 2 * time.Second
	WaveDashArray = 200.0
)

// Graphic is a looping card decoration that reports one value per frame.
// What the value means depends on the constructor: degrees of rotation, a
// vertical offset in pixels or a stroke dash offset.
type Graphic struct {
	driver   *anim.Driver
	timeline anim.Timeline
	value    float64
	onChange func(float64)

	playing *anim.Playing
}

func newGraphic(driver *anim.Driver, start float64, onChange func(float64), steps func(g *Graphic) []anim.Step) *Graphic {
	g := &Graphic{driver: driver, value: start, onChange: onChange}
	g.timeline = anim.Timeline{Steps: steps(g), Repeat: -1}
	return g
}

// NewMotif spins a full turn every MotifPeriod.
func NewMotif(driver *anim.Driver, onChange func(deg float64)) *Graphic {
	return newGraphic(driver, 0, onChange, func(g *Graphic) []anim.Step {
		return []anim.Step{{
			Duration: MotifPeriod,
			Curve:    anim.Linear,
			Update:   func(p float64) { g.set(360 * p) },
		}}
	})
}

// NewLaser sweeps a scan line down LaserTravel pixels and back.
func NewLaser(driver *anim.Driver, onChange func(y float64)) *Graphic {
	return newGraphic(driver, 0, onChange, func(g *Graphic) []anim.Step {
		return []anim.Step{
			{
				Duration: LaserSweep,
				Curve:    anim.Power1InOut,
				Update:   func(p float64) { g.set(LaserTravel * p) },
			},
			{
				Duration: LaserSweep,
				Curve:    anim.Power1InOut,
				Update:   func(p float64) { g.set(LaserTravel * (1 - p)) },
			},
		}
	})
}

// NewWaveform draws the pulse stroke by running its dash offset down to
// zero, then starts over.
func NewWaveform(driver *anim.Driver, onChange func(offset float64)) *Graphic {
	return newGraphic(driver, WaveDashArray, onChange, func(g *Graphic) []anim.Step {
		return []anim.Step{{
			Duration: WavePeriod,
			Curve:    anim.Linear,
			Update:   func(p float64) { g.set(WaveDashArray * (1 - p)) },
		}}
	})
}

// Mount starts the loop.
func (g *Graphic) Mount() {
	if g.playing != nil {
		return
	}
	g.playing = g.driver.Play(g.timeline)
}

// Unmount stops the loop where it is.
func (g *Graphic) Unmount() {
	if g.playing != nil {
		g.playing.Cancel()
		g.playing = nil
	}
}

// Value returns the last reported value.
func (g *Graphic) Value() float64 { return g.value }

// Plays returns the completed passes of the running loop.
func (g *Graphic) Plays() int {
	if g.playing == nil {
		return 0
	}
	return g.playing.Plays()
}

func (g *Graphic) set(v float64) {
	g.value = v
	if g.onChange != nil {
		g.onChange(v)
	}
}
