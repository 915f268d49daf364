package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/Zachkp/live-portfolio/internal/content"
	"github.com/Zachkp/live-portfolio/internal/live"
	"github.com/Zachkp/live-portfolio/internal/widget"
)

// One terminal row stands in for this many CSS pixels of page.
const rowPx = 20

// Element offsets of the virtual page the preview scrolls through.
const (
	yearsTop      = 800
	experienceTop = 1600
	experienceGap = 900
	projectGap    = 300
)

var (
	styleTitle  = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	styleLabel  = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleValue  = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleAccent = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleDim    = tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
)

type preview struct {
	screen    tcell.Screen
	portfolio *content.Portfolio
	session   *live.Session

	scrollY   float64
	docHeight float64
	tops      map[string]float64
	state     map[string]any
}

func newPreview(screen tcell.Screen, p *content.Portfolio, s *live.Session) *preview {
	tops := map[string]float64{live.KeyYears: yearsTop}
	y := float64(experienceTop)
	for i := range p.Experience {
		tops[live.ExperienceKey(i)] = y
		y += experienceGap
	}
	for _, pr := range p.Projects {
		tops[live.ProjectKey(pr.ID)] = y
		y += projectGap
	}
	return &preview{
		screen:    screen,
		portfolio: p,
		session:   s,
		docHeight: y + experienceGap,
		tops:      tops,
		state:     make(map[string]any),
	}
}

func (p *preview) viewHeight() float64 {
	_, h := p.screen.Size()
	return float64(h * rowPx)
}

// report hands the geometry to the session. A closed session ends the
// run loop on its own, so the error is dropped.
func (p *preview) report() {
	_ = p.session.HandleViewport(live.ViewportEvent{
		ScrollY: p.scrollY,
		Height:  p.viewHeight(),
		Tops:    p.tops,
	})
}

func (p *preview) scroll(dy float64) {
	p.scrollY = min(max(p.scrollY+dy, 0), p.docHeight)
	p.report()
}

func (p *preview) apply(frames []live.Frame) {
	for _, f := range frames {
		p.state[f.Widget] = f.Data
	}
}

// handle returns false when the preview should exit.
func (p *preview) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyDown:
			p.scroll(2 * rowPx)
		case tcell.KeyUp:
			p.scroll(-2 * rowPx)
		case tcell.KeyPgDn:
			p.scroll(p.viewHeight())
		case tcell.KeyPgUp:
			p.scroll(-p.viewHeight())
		case tcell.KeyHome:
			p.scroll(-p.scrollY)
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case 'j':
				p.scroll(2 * rowPx)
			case 'k':
				p.scroll(-2 * rowPx)
			}
		}

	case *tcell.EventMouse:
		switch {
		case ev.Buttons()&tcell.WheelDown != 0:
			p.scroll(3 * rowPx)
		case ev.Buttons()&tcell.WheelUp != 0:
			p.scroll(-3 * rowPx)
		}

	case *tcell.EventResize:
		p.screen.Sync()
		p.report()
	}
	return true
}

func (p *preview) run(ctx context.Context) {
	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := p.screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	p.report()
	p.draw()
	for {
		select {
		case <-ctx.Done():
			return
		case <-p.session.Done():
			return
		case ev := <-events:
			if !p.handle(ev) {
				return
			}
		case <-p.session.Ready():
			p.apply(p.session.Frames())
		}
		p.draw()
	}
}

func (p *preview) text(x, y int, style tcell.Style, s string) int {
	w, _ := p.screen.Size()
	for _, r := range s {
		if x >= w {
			break
		}
		p.screen.SetContent(x, y, r, nil, style)
		x++
	}
	return x
}

func (p *preview) draw() {
	p.screen.Clear()
	w, h := p.screen.Size()

	header := p.portfolio.Owner.Name
	if scrolled, _ := p.state[live.KeyNavbar].(bool); scrolled {
		header += "  [scrolled]"
	}
	x := p.text(0, 0, styleTitle, header)
	p.text(x+2, 0, styleDim, fmt.Sprintf("scroll %.0fpx", p.scrollY))

	radar, _ := p.state[live.KeyRadar].(string)
	x = p.text(0, 2, styleLabel, "Tech radar   > ")
	x = p.text(x, 2, styleAccent, radar)
	p.text(x, 2, styleAccent.Blink(true), "_")

	years, _ := p.state[live.KeyYears].(int)
	x = p.text(0, 3, styleLabel, "Years active ")
	p.text(x, 3, styleValue, fmt.Sprintf("%d+", years))

	x = p.text(0, 4, styleLabel, "Roles        ")
	p.slots(x, 4, p.state[live.KeyRoles])

	row := 6
	p.text(0, row, styleTitle, "Experience")
	cards, _ := p.state[live.KeyStack].([]widget.CardStyle)
	for i, e := range p.portfolio.Experience {
		row++
		style := styleValue
		bar := ""
		if i < len(cards) {
			if cards[i].Opacity < 1 {
				style = styleDim
			}
			bar = progressBar(cards[i].Progress, 10)
		}
		x = p.text(2, row, styleLabel, bar)
		p.text(x+1, row, style, e.Title)
	}

	row += 2
	p.text(0, row, styleTitle, "Projects")
	for _, pr := range p.portfolio.Projects {
		row++
		x = p.text(2, row, styleValue, pr.Name)
		x += 2
		data := p.state[live.ProjectKey(pr.ID)]
		switch pr.Kind {
		case content.KindShuffler:
			p.slots(x, row, data)
		case content.KindTypewriter:
			typed, _ := data.(string)
			p.text(x, row, styleAccent, tail(typed, w-x))
		case content.KindScheduler:
			p.days(x, row, data)
		}
	}

	p.text(0, h-1, styleDim, "j/k or wheel to scroll, q to quit")
	p.screen.Show()
}

// slots prints every visible slot label, strongest first.
func (p *preview) slots(x, y int, data any) {
	slots, _ := data.([]widget.Slot)
	for _, s := range slots {
		if s.Opacity <= 0 {
			continue
		}
		style := styleValue
		if s.Opacity < 1 {
			style = styleDim
		}
		x = p.text(x, y, style, s.Label) + 3
	}
}

func (p *preview) days(x, y int, data any) {
	f, ok := data.(widget.CursorFrame)
	if !ok {
		f.ActiveDay = -1
	}
	for i, d := range "SMTWTFS" {
		style := styleDim
		if i == f.ActiveDay {
			style = styleAccent.Reverse(true)
		}
		x = p.text(x, y, style, string(d)) + 1
	}
	if f.Saving {
		p.text(x+1, y, styleAccent.Reverse(true), "saved")
	}
}

// tail keeps the end of s that fits in room cells, marking the cut.
func tail(s string, room int) string {
	r := []rune(s)
	if len(r) <= room || room <= 3 {
		return s
	}
	return "..." + string(r[len(r)-(room-3):])
}

func progressBar(v float64, width int) string {
	n := int(v*float64(width) + 0.5)
	return "[" + strings.Repeat("#", n) + strings.Repeat(".", width-n) + "]"
}
