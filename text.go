package main

import (
	"fmt"
	"time"

	"github.com/Zachkp/live-portfolio/internal/anim"
	"github.com/Zachkp/live-portfolio/internal/content"
)

// Entrance stagger for the hero lines and the about summary.
const (
	heroBase    = 300 * time.Millisecond
	heroEach    = 80 * time.Millisecond
	summaryEach = 30 * time.Millisecond

	tickerRepeat = 4
)

type staggered struct {
	Text  string
	Delay string
}

type tickerRow struct {
	Title   string
	Items   []string
	Reverse bool
}

type pageData struct {
	*content.Portfolio

	HeroLines    []staggered
	SummaryWords []staggered
	Tickers      []tickerRow
	Year         int
	Updated      string
}

func newPageData(p *content.Portfolio, now, updated time.Time) pageData {
	return pageData{
		Portfolio:    p,
		HeroLines:    stagger(p.Hero.Lines, heroBase, heroEach),
		SummaryWords: stagger(content.Words(p.About.Summary), 0, summaryEach),
		Tickers:      tickers(p.Skills.Groups),
		Year:         now.Year(),
		Updated:      updated.Format("Jan 2, 2006"),
	}
}

func stagger(texts []string, base, each time.Duration) []staggered {
	delays := anim.Stagger(len(texts), base, each)
	out := make([]staggered, len(texts))
	for i, t := range texts {
		out[i] = staggered{Text: t, Delay: cssSeconds(delays[i])}
	}
	return out
}

// tickers repeats each group so the marquee loops without a gap. Every
// second row runs the other way.
func tickers(groups []content.SkillGroup) []tickerRow {
	rows := make([]tickerRow, len(groups))
	for i, g := range groups {
		items := make([]string, 0, len(g.Skills)*tickerRepeat)
		for range tickerRepeat {
			items = append(items, g.Skills...)
		}
		rows[i] = tickerRow{Title: g.Title, Items: items, Reverse: i%2 == 1}
	}
	return rows
}

func cssSeconds(d time.Duration) string {
	return fmt.Sprintf("%.2fs", d.Seconds())
}
