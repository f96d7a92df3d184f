// Package randutil derives reproducible random sources for decks and
// simulation workers.
package randutil

import (
	rand "math/rand/v2"
	"time"
)

const goldenRatio64 = 0x9e3779b97f4a7c15

// New returns a *rand.Rand seeded deterministically from seed.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// Stream returns an independent source for one of several workers sharing a
// seed, so parallel runs stay reproducible regardless of scheduling.
func Stream(seed int64, stream int) *rand.Rand {
	u := mix(uint64(seed)) ^ mix(uint64(stream)*goldenRatio64+1)
	return rand.New(rand.NewPCG(u, mix(u+goldenRatio64)))
}

// Seed returns seed if it is set, otherwise a seed from the wall clock.
func Seed(seed *int64) int64 {
	if seed != nil {
		return *seed
	}
	return time.Now().UnixNano()
}

// splitmix64 finaliser
func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
