// Package sampler draws candidate configurations from the workspace. Grounded on
// Planner::randomOpenAreaPoint and randomPoint in original_source/src/planning/Planner.cpp.
//
// A Sampler only draws raw candidates; it has no notion of obstacles. The rejection loop that
// restricts the stream to free cells lives in the planner package (see planner.randomOpenAreaPoint),
// which also bounds the retry count per spec.md §9's open question on sampler rejection.
package sampler

import (
	"math/rand"

	"go.viam.com/onlineplan/geom"
)

// Sampler draws a single candidate point from a width x height workspace. Each call advances the
// sampler's internal state exactly once.
type Sampler interface {
	Next(width, height int) geom.Coord
}

// PseudoRandomSampler draws uniformly from [0, width) x [0, height) using an explicitly seeded
// *rand.Rand, never the global math/rand source, matching the teacher's seed-threading convention
// (e.g. newCBiRRTMotionPlanner's seed *rand.Rand parameter).
type PseudoRandomSampler struct {
	rng *rand.Rand
}

// NewPseudoRandomSampler builds a PseudoRandomSampler backed by rng.
func NewPseudoRandomSampler(rng *rand.Rand) *PseudoRandomSampler {
	return &PseudoRandomSampler{rng: rng}
}

// Next implements Sampler.
func (s *PseudoRandomSampler) Next(width, height int) geom.Coord {
	return geom.Coord{
		X: s.rng.Float64() * float64(width),
		Y: s.rng.Float64() * float64(height),
	}
}
