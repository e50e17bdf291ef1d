// Package rng provides the per-worker uniform random stream used by the
// transport kernel. spec.md asks for "an independent PRNG stream per
// worker... reproducible given seed" and explicitly treats a
// Mersenne-Twister-class generator as adequate; no RNG library appears
// anywhere in the reference corpus, so this wraps the standard library's
// PCG source rather than hand-rolling or vendoring one.
package rng

import (
	"math"
	"math/rand/v2"
)

// Source is the contract the transport kernel draws on: independent
// uniform [0,1) draws, plus the isotropic mu = 2U-1 and log-uniform
// tau_event = -log(U) draws it needs repeatedly.
type Source interface {
	// Uniform returns a uniform draw in [0, 1).
	Uniform() float64
	// IsotropicMu returns a uniform draw in [-1, 1), used for post-scatter
	// and post-line-interaction direction cosines.
	IsotropicMu() float64
	// TauEvent draws a fresh event optical-depth budget, -log(U).
	TauEvent() float64
}

// pcgSource is the default Source, backed by math/rand/v2's PCG.
type pcgSource struct {
	r *rand.Rand
}

// New returns a Source seeded deterministically from (seed, stream). Two
// Sources built from the same (seed, stream) pair draw identical
// sequences; distinct streams (e.g. one per worker) draw independent
// sequences given the same seed.
func New(seed uint64, stream uint64) Source {
	return &pcgSource{r: rand.New(rand.NewPCG(seed, stream))}
}

func (s *pcgSource) Uniform() float64 {
	return s.r.Float64()
}

func (s *pcgSource) IsotropicMu() float64 {
	return 2*s.r.Float64() - 1
}

func (s *pcgSource) TauEvent() float64 {
	// U ~ Uniform(0,1); exclude 0 so log is finite.
	u := s.r.Float64()
	for u == 0 {
		u = s.r.Float64()
	}
	return -math.Log(u)
}
