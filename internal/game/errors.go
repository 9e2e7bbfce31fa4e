package game

import "errors"

var (
	// ErrInsufficientAlphabet is returned when the alphabet doesn't hold enough distinct
	// symbols to fill two cards that share exactly one symbol.
	ErrInsufficientAlphabet = errors.New("alphabet too small for card size")
	ErrInvalidCardSize      = errors.New("card size must be at least 2")
	ErrInvalidDeck          = errors.New("deck must have at least 2 cards of 2 or more symbols")
	ErrUnknownAlphabet      = errors.New("unknown alphabet")
)
