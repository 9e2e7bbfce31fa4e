package game

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand/v2"
)

// RNG abstracts random number generation, so tests can inject a deterministic source.
type RNG interface {
	// Intn returns a non-negative random int in [0, n).
	Intn(n int) int

	// Float64 returns a random float in [0.0, 1.0).
	Float64() float64
}

type pcgRNG struct {
	r *rand.Rand
}

func (p *pcgRNG) Intn(n int) int { return p.r.IntN(n) }
func (p *pcgRNG) Float64() float64 { return p.r.Float64() }

// NewRNG returns a PCG-backed RNG. The same seed always yields the same games.
func NewRNG(seed uint64) RNG {
	return &pcgRNG{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (uint64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}

// Shuffle permutes symbols in place, uniformly over all permutations (Fisher-Yates).
func Shuffle(symbols []Symbol, rng RNG) {
	for i := len(symbols) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		symbols[i], symbols[j] = symbols[j], symbols[i]
	}
}
