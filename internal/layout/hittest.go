package layout

import (
	"math"

	"github.com/janpfeifer/GoDobble/internal/game"
)

// HitTest resolves a click position to the symbol under it.
//
// Only the card whose circle contains p is considered, and within it the closest
// placement whose footprint (a circle of diameter Symbol.Size) contains p.
// It returns false if p is outside every card or on an empty spot.
func HitTest(cards []game.CardLayout, p game.Point) (game.Hit, bool) {
	for _, card := range cards {
		if !card.Contains(p) {
			continue
		}
		best, bestDist := -1, math.Inf(1)
		for i, placement := range card.Placements {
			d := placement.Position.Dist(p)
			if d <= placement.Symbol.Size/2 && d < bestDist {
				best, bestDist = i, d
			}
		}
		if best < 0 {
			return game.Hit{}, false
		}
		return game.Hit{Side: card.Side, Index: best}, true
	}
	return game.Hit{}, false
}
