// Package randutil derives reproducible random streams for sampling.
package randutil

import rand "math/rand/v2"

const (
	goldenRatio64 = 0x9e3779b97f4a7c15
)

// New returns a *rand.Rand seeded deterministically from the provided int64.
// Both PCG words are derived from the seed so every caller gets the same
// sequence for the same seed.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// Stream returns an independent generator for the given stream coordinates
// under a base seed. Matrix cells sample from Stream(seed, row, col) so the
// result does not depend on the order cells are computed in.
func Stream(seed int64, coords ...int) *rand.Rand {
	u := mix(uint64(seed))
	for _, c := range coords {
		u = mix(u ^ (uint64(c) + goldenRatio64))
	}
	return New(int64(u))
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
