package game

import (
	"fmt"
	"math"
)

// MinAlphabetSize is the number of distinct symbols needed to deal two cards of
// cardSize symbols that share exactly one of them. It saturates at math.MaxInt.
func MinAlphabetSize(cardSize int) int {
	if cardSize-1 > (math.MaxInt-1)/2 {
		return math.MaxInt
	}
	return 2*(cardSize-1) + 1
}

// GenerateRound deals two cards of cardSize symbols each, drawn from alphabet, sharing
// exactly one symbol (Round.Common). Every other symbol appears at most once across
// both cards.
//
// The pool of used symbols lives only for the duration of the call, so consecutive
// rounds are independent and the alphabet is never depleted.
//
// It returns ErrInvalidCardSize or ErrInsufficientAlphabet (wrapped) if the
// request can't be satisfied, in which case no round is returned.
func GenerateRound(alphabet Alphabet, cardSize int, rng RNG) (Round, error) {
	if cardSize < 2 {
		return Round{}, fmt.Errorf("%w: got %d", ErrInvalidCardSize, cardSize)
	}
	if need, have := MinAlphabetSize(cardSize), alphabet.Distinct(); have < need {
		return Round{}, fmt.Errorf("%w: card size %d needs %d distinct symbols, alphabet has %d",
			ErrInsufficientAlphabet, cardSize, need, have)
	}

	common := alphabet[rng.Intn(len(alphabet))]
	used := map[string]bool{common.ID: true}
	deal := func() []Symbol {
		card := make([]Symbol, 0, cardSize)
		for len(card) < cardSize-1 {
			s := alphabet[rng.Intn(len(alphabet))]
			if used[s.ID] {
				continue
			}
			used[s.ID] = true
			card = append(card, s)
		}
		card = append(card, common)
		Shuffle(card, rng)
		return card
	}
	left := deal()
	right := deal()
	return Round{Left: left, Right: right, Common: common}, nil
}
