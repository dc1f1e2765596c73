package engine

import "math/rand"

// Dice is the random-draw surface the engine depends on. *RNG is the real
// implementation; tests substitute scripted draws to force combat outcomes.
type Dice interface {
	Intn(n int) int
	Range(lo, hi int) int
	Chance(p float64) bool
	Choice(n int) int
}

// RNG wraps math/rand.Rand with deterministic position tracking.
// Position increments with every draw, enabling save/restore.
type RNG struct {
	seed int64
	src  *rand.Rand
	pos  int64
}

// NewRNG creates a new deterministic RNG from a seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		seed: seed,
		src:  rand.New(rand.NewSource(seed)),
	}
}

// Intn returns a random integer in [0, n).
func (r *RNG) Intn(n int) int {
	r.pos++
	return r.src.Intn(n)
}

// Range returns a random integer in [lo, hi], inclusive on both ends.
// Damage variance and flee backlash both draw through this.
func (r *RNG) Range(lo, hi int) int {
	r.pos++
	return lo + r.src.Intn(hi-lo+1)
}

// Chance returns true with probability p, where p is clamped to [0, 1].
func (r *RNG) Chance(p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		r.pos++
		return true
	}
	r.pos++
	return r.src.Float64() < p
}

// Choice returns a random index into a collection of length n.
func (r *RNG) Choice(n int) int {
	r.pos++
	return r.src.Intn(n)
}

// Seed returns the seed this RNG was created with.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Position returns the number of draws made since creation.
func (r *RNG) Position() int64 {
	return r.pos
}

// RestoreRNG creates an RNG and advances it to the given position.
// This reproduces the exact RNG state for save/load.
func RestoreRNG(seed int64, position int64) *RNG {
	rng := NewRNG(seed)
	for i := int64(0); i < position; i++ {
		rng.src.Int63()
	}
	rng.pos = position
	return rng
}
