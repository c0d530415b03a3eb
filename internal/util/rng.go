package util

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
)

func New(seed int64) *rand.Rand {
	if seed == 0 {
		seed = 1
	}
	src := rand.NewSource(seed)
	return rand.New(src)
}

// TrialSeed derives the seed of one trial from the run seed. The mapping
// depends only on the trial index, so a seeded run gives the same draws no
// matter how trials are spread over workers.
func TrialSeed(base int64, trial int) int64 {
	return base + int64(trial)*7919
}

// NewSeed returns a high-entropy seed for runs without an explicit one.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// Uniform draws from [lo, hi).
func Uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}
