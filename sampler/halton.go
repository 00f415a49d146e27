package sampler

import "go.viam.com/onlineplan/geom"

// HaltonSampler draws a low-discrepancy Halton sequence, base 19 for x and base 31 for y, the same
// bases Planner's constructor wires up in original_source/src/planning/Planner.cpp
// ("haltonX(19), haltonY(31)"). Unlike PseudoRandomSampler it is deterministic: the same sequence
// of Next calls always produces the same points (spec.md §8 property 8, Halton determinism).
type HaltonSampler struct {
	x *vanDerCorput
	y *vanDerCorput
}

// NewHaltonSampler builds a HaltonSampler with the bases the original planner used.
func NewHaltonSampler() *HaltonSampler {
	return &HaltonSampler{
		x: newVanDerCorput(19),
		y: newVanDerCorput(31),
	}
}

// Next implements Sampler. Every call, including ones the planner ultimately rejects and retries,
// advances both underlying sequences, so the sequence index always equals the total number of
// candidates drawn, not the number of accepted ones (spec.md §4.2).
func (s *HaltonSampler) Next(width, height int) geom.Coord {
	return geom.Coord{
		X: s.x.next() * float64(width),
		Y: s.y.next() * float64(height),
	}
}

// vanDerCorput generates the van der Corput sequence in the given integer base, the standard
// low-discrepancy sequence construction Halton sequences are built from.
type vanDerCorput struct {
	base  int
	index int
}

func newVanDerCorput(base int) *vanDerCorput {
	return &vanDerCorput{base: base, index: 0}
}

// next advances the sequence by one and returns the next value in (0, 1).
func (v *vanDerCorput) next() float64 {
	v.index++
	n := v.index
	result := 0.0
	f := 1.0 / float64(v.base)
	for n > 0 {
		result += f * float64(n%v.base)
		n /= v.base
		f /= float64(v.base)
	}
	return result
}
