package game

import (
	"fmt"
	"math"
)

// Deck is a full set of cards where any two cards share exactly one symbol.
// Each card is a slice of symbol numbers in [0, order²+order+1).
type Deck [][]int

// GenerateDeck builds the deck of the finite projective plane of the given order:
// order²+order+1 cards with order+1 symbols each. The order must be prime
// (2, 3, 5, 7, 11...), e.g. order 7 yields the classic 57 cards of 8 symbols.
func GenerateDeck(order int) (Deck, error) {
	if !isPrime(order) {
		return nil, fmt.Errorf("%w: order %d is not prime", ErrInvalidDeck, order)
	}
	deck := make(Deck, 0, order*order+order+1)

	// The "line at infinity": symbol 0 plus one symbol per slope.
	card := []int{0}
	for i := 1; i <= order; i++ {
		card = append(card, i)
	}
	deck = append(deck, card)

	// Vertical lines, all through symbol 0.
	for j := range order {
		card = []int{0}
		for k := range order {
			card = append(card, order+1+order*j+k)
		}
		deck = append(deck, card)
	}

	// Lines of slope i with intercept j.
	for i := range order {
		for j := range order {
			card = []int{i + 1}
			for k := range order {
				card = append(card, order+1+order*k+(i*k+j)%order)
			}
			deck = append(deck, card)
		}
	}
	return deck, nil
}

// DeckSymbols returns the number of symbols, order²+order+1, a deck of the given
// order uses. It saturates at math.MaxInt.
func DeckSymbols(order int) int {
	if order > 0 && order > (math.MaxInt-1)/(order+1) {
		return math.MaxInt
	}
	return order*order + order + 1
}

// NumSymbols returns how many distinct symbols the deck uses.
func (d Deck) NumSymbols() int {
	maxSymbol := -1
	for _, card := range d {
		for _, s := range card {
			maxSymbol = max(maxSymbol, s)
		}
	}
	return maxSymbol + 1
}

// DeckRound draws two distinct cards from the deck and renders them with symbols of
// the alphabet: deck symbol numbers are mapped onto a random selection of the
// alphabet, different on every call.
func DeckRound(deck Deck, alphabet Alphabet, rng RNG) (Round, error) {
	if len(deck) < 2 || len(deck[0]) < 2 {
		return Round{}, ErrInvalidDeck
	}
	numSymbols := deck.NumSymbols()
	if have := alphabet.Distinct(); have < numSymbols {
		return Round{}, fmt.Errorf("%w: deck uses %d distinct symbols, alphabet has %d",
			ErrInsufficientAlphabet, numSymbols, have)
	}

	// Random injection from deck symbols into the alphabet, skipping repeated IDs.
	pool := make(Alphabet, 0, len(alphabet))
	seen := make(map[string]bool, len(alphabet))
	for _, s := range alphabet {
		if !seen[s.ID] {
			seen[s.ID] = true
			pool = append(pool, s)
		}
	}
	Shuffle(pool, rng)

	i := rng.Intn(len(deck))
	j := rng.Intn(len(deck) - 1)
	if j >= i {
		j++
	}
	render := func(card []int) []Symbol {
		symbols := make([]Symbol, len(card))
		for k, n := range card {
			symbols[k] = pool[n]
		}
		Shuffle(symbols, rng)
		return symbols
	}
	round := Round{Left: render(deck[i]), Right: render(deck[j])}
	for _, a := range deck[i] {
		for _, b := range deck[j] {
			if a == b {
				round.Common = pool[a]
			}
		}
	}
	return round, nil
}

func isPrime(n int) bool {
	if n < 2 {
		return false
	}
	for d := 2; d*d <= n; d++ {
		if n%d == 0 {
			return false
		}
	}
	return true
}
