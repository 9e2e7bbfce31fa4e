// Package config loads the server configuration from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/janpfeifer/GoDobble/internal/game"
	"github.com/janpfeifer/GoDobble/internal/layout"
	"github.com/janpfeifer/GoDobble/internal/session"
)

// Config holds the game defaults. Clients may override the game settings
// (card size, alphabet, layout, mismatch policy and countdown) when they start a game.
type Config struct {
	Addr string `env:"DOBBLE_ADDR"`

	// Round generation.
	Generator string `env:"DOBBLE_GENERATOR" envDefault:"random"` // "random" or "deck"
	CardSize  int    `env:"DOBBLE_CARD_SIZE" envDefault:"8"`
	Alphabet  string `env:"DOBBLE_ALPHABET" envDefault:"letters"`
	Seed      uint64 `env:"DOBBLE_SEED"` // 0 picks a random seed per game

	// Canvas geometry.
	Width       float64 `env:"DOBBLE_WIDTH" envDefault:"600"`
	Height      float64 `env:"DOBBLE_HEIGHT" envDefault:"300"`
	Radius      float64 `env:"DOBBLE_RADIUS" envDefault:"100"`
	SymbolScale float64 `env:"DOBBLE_SYMBOL_SCALE" envDefault:"0.2"` // Symbol size as a fraction of the radius

	// Layout.
	Layout         string  `env:"DOBBLE_LAYOUT" envDefault:"scatter"` // "ring" or "scatter"
	RingFactor     float64 `env:"DOBBLE_RING_FACTOR" envDefault:"0.7"`
	RetryBudget    int     `env:"DOBBLE_RETRY_BUDGET" envDefault:"200"`
	Clearance      float64 `env:"DOBBLE_CLEARANCE" envDefault:"15"`
	Margin         float64 `env:"DOBBLE_MARGIN" envDefault:"5"`
	FallbackMargin float64 `env:"DOBBLE_FALLBACK_MARGIN" envDefault:"2"`
	InnerFactor    float64 `env:"DOBBLE_INNER_FACTOR" envDefault:"0.3"`

	// Rules.
	Mismatch       string `env:"DOBBLE_MISMATCH" envDefault:"ignore"` // "ignore" or "end"
	Countdown      int    `env:"DOBBLE_COUNTDOWN" envDefault:"0"`     // Seconds, 0 disables it
	CountdownScope string `env:"DOBBLE_COUNTDOWN_SCOPE" envDefault:"round"`
	PointsPerMatch int    `env:"DOBBLE_POINTS_PER_MATCH" envDefault:"10"`
}

// Load parses the configuration from environment variables and validates it.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if _, err := cfg.SessionOptions(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// WithSettings returns a copy of the configuration with the non-zero client settings applied.
// A negative countdown disables it.
func (c *Config) WithSettings(s game.Settings) *Config {
	out := *c
	if s.CardSize != 0 {
		out.CardSize = s.CardSize
	}
	if s.Alphabet != "" {
		out.Alphabet = s.Alphabet
	}
	if s.Layout != "" {
		out.Layout = s.Layout
	}
	if s.Mismatch != "" {
		out.Mismatch = s.Mismatch
	}
	if s.Countdown > 0 {
		out.Countdown = s.Countdown
	} else if s.Countdown < 0 {
		out.Countdown = 0
	}
	return &out
}

// Strategy returns the configured layout strategy: the defaults of layout.New
// with the DOBBLE_* parameters applied.
func (c *Config) Strategy() (layout.Strategy, error) {
	strategy, err := layout.New(c.Layout)
	if err != nil {
		return nil, fmt.Errorf("DOBBLE_LAYOUT: %w", err)
	}
	switch s := strategy.(type) {
	case layout.Ring:
		s.Factor = c.RingFactor
		return s, nil
	case layout.Scatter:
		s.RetryBudget = c.RetryBudget
		s.Clearance = c.Clearance
		s.Margin = c.Margin
		s.FallbackMargin = c.FallbackMargin
		s.InnerFactor = c.InnerFactor
		return s, nil
	}
	return strategy, nil
}

// RoundGenerator returns the configured round generator.
func (c *Config) RoundGenerator() (session.Generator, error) {
	alphabet, err := game.ParseAlphabet(c.Alphabet, c.SymbolScale*c.Radius)
	if err != nil {
		return nil, fmt.Errorf("DOBBLE_ALPHABET: %w", err)
	}
	if c.CardSize < 2 {
		return nil, fmt.Errorf("DOBBLE_CARD_SIZE: %w: got %d", game.ErrInvalidCardSize, c.CardSize)
	}
	switch c.Generator {
	case "random":
		if need := game.MinAlphabetSize(c.CardSize); alphabet.Distinct() < need {
			return nil, fmt.Errorf("DOBBLE_CARD_SIZE: %w: %d symbols per card need %d distinct symbols, alphabet %q has %d",
				game.ErrInsufficientAlphabet, c.CardSize, need, c.Alphabet, alphabet.Distinct())
		}
		return session.RandomGenerator(alphabet, c.CardSize), nil
	case "deck":
		// Checked before building the deck, which holds order² cards.
		order := c.CardSize - 1
		if need := game.DeckSymbols(order); alphabet.Distinct() < need {
			return nil, fmt.Errorf("DOBBLE_ALPHABET: %w: a deck of %d symbols per card needs %d distinct symbols, alphabet %q has %d",
				game.ErrInsufficientAlphabet, c.CardSize, need, c.Alphabet, alphabet.Distinct())
		}
		deck, err := game.GenerateDeck(order)
		if err != nil {
			return nil, fmt.Errorf("DOBBLE_CARD_SIZE: deck generator requires card size = prime + 1: %w", err)
		}
		return session.DeckGenerator(deck, alphabet), nil
	}
	return nil, fmt.Errorf("DOBBLE_GENERATOR: unknown generator %q, valid values are \"random\" or \"deck\"", c.Generator)
}

// SessionOptions builds the options of a game session.
func (c *Config) SessionOptions() (session.Options, error) {
	generator, err := c.RoundGenerator()
	if err != nil {
		return session.Options{}, err
	}
	strategy, err := c.Strategy()
	if err != nil {
		return session.Options{}, err
	}
	mismatch, err := session.ParseMismatchPolicy(c.Mismatch)
	if err != nil {
		return session.Options{}, fmt.Errorf("DOBBLE_MISMATCH: %w", err)
	}
	scope, err := session.ParseCountdownScope(c.CountdownScope)
	if err != nil {
		return session.Options{}, fmt.Errorf("DOBBLE_COUNTDOWN_SCOPE: %w", err)
	}
	if c.Countdown < 0 {
		return session.Options{}, fmt.Errorf("DOBBLE_COUNTDOWN: must be >= 0, got %d", c.Countdown)
	}
	if c.Radius <= 0 || c.Width < 4*c.Radius || c.Height < 2*c.Radius {
		return session.Options{}, fmt.Errorf("canvas %gx%g can't fit two cards of radius %g", c.Width, c.Height, c.Radius)
	}
	return session.Options{
		Generator:      generator,
		Strategy:       strategy,
		Width:          c.Width,
		Height:         c.Height,
		Radius:         c.Radius,
		Mismatch:       mismatch,
		Countdown:      c.Countdown,
		CountdownScope: scope,
		PointsPerMatch: c.PointsPerMatch,
	}, nil
}

// NewRNG returns the random source for a new game: seeded with Seed if set, or randomly otherwise.
func (c *Config) NewRNG() (game.RNG, error) {
	seed := c.Seed
	if seed == 0 {
		var err error
		seed, err = game.NewSeed()
		if err != nil {
			return nil, err
		}
	}
	return game.NewRNG(seed), nil
}
