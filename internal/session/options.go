package session

import (
	"errors"
	"fmt"

	"github.com/janpfeifer/GoDobble/internal/game"
	"github.com/janpfeifer/GoDobble/internal/layout"
)

// ErrInvalidOptions is returned by New when the options can't produce a playable game.
var ErrInvalidOptions = errors.New("invalid session options")

// MismatchPolicy defines what happens when the player clicks a symbol that is not the common one.
type MismatchPolicy int

const (
	// MismatchIgnore keeps the round going: the shell only shows some feedback.
	MismatchIgnore MismatchPolicy = iota
	// MismatchEnd ends the game.
	MismatchEnd
)

func (m MismatchPolicy) String() string {
	if m == MismatchEnd {
		return "end"
	}
	return "ignore"
}

// ParseMismatchPolicy converts "ignore" or "end" to a MismatchPolicy.
func ParseMismatchPolicy(s string) (MismatchPolicy, error) {
	switch s {
	case "ignore":
		return MismatchIgnore, nil
	case "end":
		return MismatchEnd, nil
	}
	return MismatchIgnore, fmt.Errorf("unknown mismatch policy %q, valid values are \"ignore\" or \"end\"", s)
}

// CountdownScope defines when the countdown is reset.
type CountdownScope int

const (
	// ScopeRound resets the countdown on every new round.
	ScopeRound CountdownScope = iota
	// ScopeGame uses a single countdown for the whole game.
	ScopeGame
)

func (c CountdownScope) String() string {
	if c == ScopeGame {
		return "game"
	}
	return "round"
}

// ParseCountdownScope converts "round" or "game" to a CountdownScope.
func ParseCountdownScope(s string) (CountdownScope, error) {
	switch s {
	case "round":
		return ScopeRound, nil
	case "game":
		return ScopeGame, nil
	}
	return ScopeRound, fmt.Errorf("unknown countdown scope %q, valid values are \"round\" or \"game\"", s)
}

// Generator deals new rounds.
type Generator func(rng game.RNG) (game.Round, error)

// RandomGenerator deals rounds of cardSize symbols with game.GenerateRound.
func RandomGenerator(alphabet game.Alphabet, cardSize int) Generator {
	return func(rng game.RNG) (game.Round, error) {
		return game.GenerateRound(alphabet, cardSize, rng)
	}
}

// DeckGenerator deals rounds by drawing two cards of a projective-plane deck.
func DeckGenerator(deck game.Deck, alphabet game.Alphabet) Generator {
	return func(rng game.RNG) (game.Round, error) {
		return game.DeckRound(deck, alphabet, rng)
	}
}

// Options configures a Session.
type Options struct {
	Generator Generator
	Strategy  layout.Strategy

	// Canvas size and radius of the cards. The left card is centered at
	// (Width/4, Height/2), the right one at (3×Width/4, Height/2).
	Width, Height, Radius float64

	Mismatch MismatchPolicy

	// Countdown in ticks (the server ticks once a second); 0 disables it.
	Countdown      int
	CountdownScope CountdownScope

	PointsPerMatch int
}

func (o *Options) validate() error {
	switch {
	case o.Generator == nil:
		return fmt.Errorf("%w: missing round generator", ErrInvalidOptions)
	case o.Strategy == nil:
		return fmt.Errorf("%w: missing layout strategy", ErrInvalidOptions)
	case o.Radius <= 0 || o.Width <= 0 || o.Height <= 0:
		return fmt.Errorf("%w: canvas %gx%g with cards of radius %g", ErrInvalidOptions, o.Width, o.Height, o.Radius)
	case o.Countdown < 0:
		return fmt.Errorf("%w: negative countdown %d", ErrInvalidOptions, o.Countdown)
	}
	return nil
}

// Centers returns the center of the left and right cards.
func (o *Options) Centers() (left, right game.Point) {
	return game.Point{X: o.Width / 4, Y: o.Height / 2}, game.Point{X: o.Width * 3 / 4, Y: o.Height / 2}
}
