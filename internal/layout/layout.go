// Package layout positions the symbols of a card inside its circle.
//
// Two strategies are provided: Ring, which spreads the symbols evenly around a
// concentric ring, and Scatter, which drops them at random spots while keeping
// them from overlapping.
package layout

import (
	"fmt"

	"github.com/janpfeifer/GoDobble/internal/game"
)

// Default layout parameters.
const (
	DefaultRingFactor     = 0.7
	DefaultRetryBudget    = 200
	DefaultClearance      = 15.0
	DefaultMargin         = 5.0
	DefaultFallbackMargin = 2.0
	DefaultInnerFactor    = 0.3
)

// Strategy computes where each symbol of a card goes.
//
// Implementations must return exactly one placement per symbol, in the order
// of the input.
type Strategy interface {
	Place(center game.Point, radius float64, symbols []game.Symbol, rng game.RNG) []game.Placement
}

// LayoutCard places symbols inside the circle of the given center and radius.
// It never fails: strategies degrade gracefully when the card is too crowded.
func LayoutCard(center game.Point, radius float64, symbols []game.Symbol, strategy Strategy, rng game.RNG) []game.Placement {
	return strategy.Place(center, radius, symbols, rng)
}

// New returns the strategy of the given name ("ring" or "scatter") with default parameters.
func New(name string) (Strategy, error) {
	switch name {
	case "ring":
		return Ring{Factor: DefaultRingFactor}, nil
	case "scatter":
		return DefaultScatter(), nil
	}
	return nil, fmt.Errorf("unknown layout %q, valid values are \"ring\" or \"scatter\"", name)
}
