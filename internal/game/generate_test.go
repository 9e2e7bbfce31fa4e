package game

import (
	"errors"
	"fmt"
	"math"
	"testing"
)

// checkRound verifies the card sizes, the uniqueness of symbols in each card and
// that the only shared symbol is the common one.
func checkRound(t *testing.T, round Round, cardSize int) {
	t.Helper()
	if len(round.Left) != cardSize || len(round.Right) != cardSize {
		t.Fatalf("Expected cards of %d symbols, got %d and %d", cardSize, len(round.Left), len(round.Right))
	}
	left := make(map[string]bool)
	for _, s := range round.Left {
		if left[s.ID] {
			t.Fatalf("Symbol %s repeated in left card: %s", s.ID, &round)
		}
		left[s.ID] = true
	}
	var shared []string
	right := make(map[string]bool)
	for _, s := range round.Right {
		if right[s.ID] {
			t.Fatalf("Symbol %s repeated in right card: %s", s.ID, &round)
		}
		right[s.ID] = true
		if left[s.ID] {
			shared = append(shared, s.ID)
		}
	}
	if len(shared) != 1 {
		t.Fatalf("Expected exactly 1 shared symbol, got %v: %s", shared, &round)
	}
	if shared[0] != round.Common.ID {
		t.Fatalf("Shared symbol %s is not the common symbol %s", shared[0], round.Common.ID)
	}
	if !IsCommon(&round, round.Common) || !round.IsCommon(Symbol{ID: shared[0]}) {
		t.Fatalf("IsCommon(%s) returned false", shared[0])
	}
}

func TestGenerateRound(t *testing.T) {
	rng := NewRNG(42)
	testCases := []struct {
		alphabet Alphabet
		cardSize int
	}{
		{Letters(30), 8},
		{Letters(30), 2},
		{Letters(30), 13}, // Uses 25 of the 26 letters.
		{Digits(7, 30), 4},
		{Digits(57, 30), 8},
	}
	for _, tc := range testCases {
		t.Run(fmt.Sprintf("%d_of_%d", tc.cardSize, len(tc.alphabet)), func(t *testing.T) {
			for range 100 {
				round, err := GenerateRound(tc.alphabet, tc.cardSize, rng)
				if err != nil {
					t.Fatalf("GenerateRound failed: %v", err)
				}
				checkRound(t, round, tc.cardSize)
				for _, s := range round.Left {
					if s.Size != 30 {
						t.Fatalf("Symbol %s lost its size: %v", s.ID, s.Size)
					}
				}
			}
		})
	}
}

func TestGenerateRoundErrors(t *testing.T) {
	rng := NewRNG(1)
	if _, err := GenerateRound(Letters(30), 1, rng); !errors.Is(err, ErrInvalidCardSize) {
		t.Errorf("Expected ErrInvalidCardSize, got %v", err)
	}
	// 26 letters hold at most cards of 13 symbols.
	round, err := GenerateRound(Letters(30), 14, rng)
	if !errors.Is(err, ErrInsufficientAlphabet) {
		t.Errorf("Expected ErrInsufficientAlphabet, got %v", err)
	}
	if len(round.Left) != 0 || len(round.Right) != 0 || round.Common.ID != "" {
		t.Errorf("Expected no partial round, got %s", &round)
	}
	if _, err := GenerateRound(Digits(6, 30), 4, rng); !errors.Is(err, ErrInsufficientAlphabet) {
		t.Errorf("Expected ErrInsufficientAlphabet, got %v", err)
	}
	// Card sizes whose requirement doesn't fit in an int must not wrap around.
	huge := 1<<62 + 1
	if need := MinAlphabetSize(huge); need != math.MaxInt {
		t.Errorf("Expected MinAlphabetSize(%d) to saturate, got %d", huge, need)
	}
	round, err = GenerateRound(Letters(30), huge, rng)
	if !errors.Is(err, ErrInsufficientAlphabet) {
		t.Errorf("Expected ErrInsufficientAlphabet for card size %d, got %v", huge, err)
	}
	if len(round.Left) != 0 || len(round.Right) != 0 {
		t.Errorf("Expected no partial round, got %s", &round)
	}
	// Repeated symbols don't count.
	repeated := append(Digits(4, 30), Digits(4, 30)...)
	if _, err := GenerateRound(repeated, 3, rng); !errors.Is(err, ErrInsufficientAlphabet) {
		t.Errorf("Expected ErrInsufficientAlphabet with repeated symbols, got %v", err)
	}
}

// TestGenerateRoundIndependent checks the alphabet is not depleted across rounds:
// with an alphabet exactly the minimum size, every round uses all of it.
func TestGenerateRoundIndependent(t *testing.T) {
	alphabet := Letters(30)[:MinAlphabetSize(8)]
	rng := NewRNG(3)
	commons := make(map[string]int)
	for i := range 500 {
		round, err := GenerateRound(alphabet, 8, rng)
		if err != nil {
			t.Fatalf("Round %d: %v", i, err)
		}
		checkRound(t, round, 8)
		commons[round.Common.ID]++
	}
	if len(commons) < 10 {
		t.Errorf("Expected the common symbol to vary across rounds, got %v", commons)
	}
}

func TestShuffleUniform(t *testing.T) {
	rng := NewRNG(11)
	counts := make(map[string]int)
	const trials = 60000
	for range trials {
		symbols := []Symbol{{ID: "a"}, {ID: "b"}, {ID: "c"}}
		Shuffle(symbols, rng)
		counts[symbols[0].ID+symbols[1].ID+symbols[2].ID]++
	}
	if len(counts) != 6 {
		t.Fatalf("Expected all 6 permutations, got %v", counts)
	}
	for perm, n := range counts {
		if n < trials/6*9/10 || n > trials/6*11/10 {
			t.Errorf("Permutation %s drawn %d times, expected ~%d", perm, n, trials/6)
		}
	}
}
