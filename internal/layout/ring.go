package layout

import (
	"math"

	"github.com/janpfeifer/GoDobble/internal/game"
)

// Ring places symbols at equal angular increments on a ring of Factor × radius,
// starting at the top of the card and going clockwise (in screen coordinates).
//
// Spacing isn't checked: it works well as long as the symbols are few and small
// enough for the ring.
type Ring struct {
	Factor float64
}

func (r Ring) Place(center game.Point, radius float64, symbols []game.Symbol, _ game.RNG) []game.Placement {
	placements := make([]game.Placement, len(symbols))
	if len(symbols) == 0 {
		return placements
	}
	ringRadius := r.Factor * radius
	increment := 2 * math.Pi / float64(len(symbols))
	for i, s := range symbols {
		angle := -math.Pi/2 + float64(i)*increment
		placements[i] = game.Placement{Symbol: s, Position: center.Polar(angle, ringRadius)}
	}
	return placements
}
