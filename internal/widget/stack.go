package widget

import "github.com/Zachkp/live-portfolio/internal/anim"

// CardStyle is the visual state of one stacked card.
type CardStyle struct {
	Scale    float64 `json:"scale"`
	Blur     float64 `json:"blur"`
	Opacity  float64 `json:"opacity"`
	Progress float64 `json:"progress"`
}

var (
	FullCard    = CardStyle{Scale: 1, Blur: 0, Opacity: 1}
	RecededCard = CardStyle{Scale: 0.9, Blur: 20, Opacity: 0.5, Progress: 1}
)

// Stack derives card transforms from scroll position. Card i recedes from
// FullCard to RecededCard while the scroll offset moves from the point where
// card i reaches the anchor line to the point where card i+1 does. The last
// card never recedes. Nothing is stored between calls, so scrolling back
// reverses the transform exactly.
type Stack struct {
	tops   []float64
	anchor float64
}

// NewStack creates a stack for cards whose document tops are tops, with the
// anchor line anchor pixels below the viewport's top edge.
func NewStack(tops []float64, anchor float64) *Stack {
	return &Stack{tops: append([]float64(nil), tops...), anchor: anchor}
}

// Len returns the number of cards.
func (s *Stack) Len() int { return len(s.tops) }

// Progress returns how far card i has receded, in [0, 1]. Both ends of the
// range are inclusive: progress is 0 at the start offset and 1 at the end
// offset. A card whose successor starts at or before it steps straight to 1.
func (s *Stack) Progress(i int, scrollY float64) float64 {
	if i < 0 || i >= len(s.tops)-1 {
		return 0
	}
	start := s.tops[i] - s.anchor
	end := s.tops[i+1] - s.anchor
	if end <= start {
		if scrollY >= start {
			return 1
		}
		return 0
	}
	p := (scrollY - start) / (end - start)
	switch {
	case p < 0:
		return 0
	case p > 1:
		return 1
	}
	return p
}

// Card returns the style of card i at scrollY.
func (s *Stack) Card(i int, scrollY float64) CardStyle {
	if i == len(s.tops)-1 {
		return FullCard
	}
	p := s.Progress(i, scrollY)
	return CardStyle{
		Scale:    anim.Lerp(FullCard.Scale, RecededCard.Scale, p),
		Blur:     anim.Lerp(FullCard.Blur, RecededCard.Blur, p),
		Opacity:  anim.Lerp(FullCard.Opacity, RecededCard.Opacity, p),
		Progress: p,
	}
}

// Cards returns every card's style at scrollY.
func (s *Stack) Cards(scrollY float64) []CardStyle {
	out := make([]CardStyle, len(s.tops))
	for i := range out {
		out[i] = s.Card(i, scrollY)
	}
	return out
}
