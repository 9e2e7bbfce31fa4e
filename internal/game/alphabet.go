package game

import (
	"fmt"
	"strconv"
	"strings"
)

// Alphabet is the pool of candidate symbols rounds are drawn from.
type Alphabet []Symbol

// Letters returns the 26 uppercase latin letters, all rendered with the given size.
func Letters(size float64) Alphabet {
	alphabet := make(Alphabet, 0, 26)
	for c := 'A'; c <= 'Z'; c++ {
		alphabet = append(alphabet, Symbol{ID: string(c), Size: size})
	}
	return alphabet
}

// Digits returns the numbers 1 to n.
func Digits(n int, size float64) Alphabet {
	alphabet := make(Alphabet, 0, n)
	for i := 1; i <= n; i++ {
		alphabet = append(alphabet, Symbol{ID: strconv.Itoa(i), Size: size})
	}
	return alphabet
}

// ParseAlphabet builds an alphabet from its textual description:
//
//   - "letters": A to Z.
//   - "digits:N": 1 to N.
//   - anything else is taken as the list of symbols itself, one per character.
//     Repeated characters are dropped.
func ParseAlphabet(spec string, size float64) (Alphabet, error) {
	spec = strings.TrimSpace(spec)
	switch {
	case spec == "":
		return nil, fmt.Errorf("%w: empty", ErrUnknownAlphabet)
	case spec == "letters":
		return Letters(size), nil
	case strings.HasPrefix(spec, "digits:"):
		n, err := strconv.Atoi(strings.TrimPrefix(spec, "digits:"))
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("%w: %q", ErrUnknownAlphabet, spec)
		}
		return Digits(n, size), nil
	}
	var alphabet Alphabet
	seen := make(map[rune]bool)
	for _, r := range spec {
		if seen[r] {
			continue
		}
		seen[r] = true
		alphabet = append(alphabet, Symbol{ID: string(r), Size: size})
	}
	return alphabet, nil
}

// Distinct returns the number of distinct symbol IDs in the alphabet.
func (a Alphabet) Distinct() int {
	seen := make(map[string]struct{}, len(a))
	for _, s := range a {
		seen[s.ID] = struct{}{}
	}
	return len(seen)
}
