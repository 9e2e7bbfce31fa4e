package layout

import (
	"errors"
	"math"

	"github.com/janpfeifer/GoDobble/internal/game"
	"k8s.io/klog/v2"
)

// errPlacementExhausted is returned by Scatter.try when the retry budget runs out.
// It never leaves the package: Place recovers with the fallback placement.
var errPlacementExhausted = errors.New("placement retry budget exhausted")

// Scatter places symbols at random, rejecting spots that would overlap previously
// placed symbols or stick out of the card.
//
// Each symbol gets RetryBudget attempts. A candidate is drawn with a uniform angle and
// a uniform distance from the center in [InnerFactor × radius, radius - size - Margin].
// It is accepted if it is within radius - size of the center, and at least
// (size + otherSize)/2 + Clearance away from every symbol already placed.
//
// If all attempts fail, the symbol goes at a random angle, FallbackMargin inside the
// edge, regardless of overlap. Such placements are marked with Placement.Fallback.
type Scatter struct {
	RetryBudget    int
	Clearance      float64
	Margin         float64
	FallbackMargin float64
	InnerFactor    float64
}

// DefaultScatter returns a Scatter configured with the default parameters.
func DefaultScatter() Scatter {
	return Scatter{
		RetryBudget:    DefaultRetryBudget,
		Clearance:      DefaultClearance,
		Margin:         DefaultMargin,
		FallbackMargin: DefaultFallbackMargin,
		InnerFactor:    DefaultInnerFactor,
	}
}

func (s Scatter) Place(center game.Point, radius float64, symbols []game.Symbol, rng game.RNG) []game.Placement {
	placements := make([]game.Placement, 0, len(symbols))
	for _, sym := range symbols {
		pos, err := s.try(center, radius, sym, placements, rng)
		if err != nil {
			klog.V(2).Infof("layout: %v for symbol %q, placing it at the edge", err, sym.ID)
			pos = center.Polar(rng.Float64()*2*math.Pi, max(0, radius-sym.Size-s.FallbackMargin))
		}
		placements = append(placements, game.Placement{Symbol: sym, Position: pos, Fallback: err != nil})
	}
	return placements
}

func (s Scatter) try(center game.Point, radius float64, sym game.Symbol, placed []game.Placement, rng game.RNG) (game.Point, error) {
	limit := radius - sym.Size
	lo := s.InnerFactor * radius
	hi := max(lo, limit-s.Margin)
	for range s.RetryBudget {
		pos := center.Polar(rng.Float64()*2*math.Pi, lo+rng.Float64()*(hi-lo))
		if center.Dist(pos) > limit {
			continue
		}
		if s.overlaps(pos, sym, placed) {
			continue
		}
		return pos, nil
	}
	return game.Point{}, errPlacementExhausted
}

func (s Scatter) overlaps(pos game.Point, sym game.Symbol, placed []game.Placement) bool {
	for _, other := range placed {
		if pos.Dist(other.Position) < (sym.Size+other.Symbol.Size)/2+s.Clearance {
			return true
		}
	}
	return false
}
