// Package rng provides the seedable random source injected into region
// generation, effect spawning and the portal spawner.
package rng

import (
	"math/rand/v2"
	"time"
)

// Source is a uniform random generator. Determinism of everything fed by it
// depends only on its seed.
type Source interface {
	// Float64 returns a value in [0, 1).
	Float64() float64
	// IntN returns a value in [0, n). Panics if n <= 0.
	IntN(n int) int
	// Shuffle permutes n elements through swap.
	Shuffle(n int, swap func(i, j int))
	// Uint64 returns 64 random bits.
	Uint64() uint64
}

// New returns a PCG-backed source. Seed 0 means "seed from the clock".
func New(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Fork derives an independent child source from src, consuming one draw.
// Each effect instance owns a fork so its kinematics don't depend on how many
// other effects spawned after it.
func Fork(src Source) *rand.Rand {
	s := src.Uint64()
	return rand.New(rand.NewPCG(s, s^0x9e3779b97f4a7c15))
}

// Range draws a float in [lo, hi). If hi <= lo it returns lo.
func Range(src Source, lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + src.Float64()*(hi-lo)
}
