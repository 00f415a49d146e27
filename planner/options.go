package planner

import (
	"math/rand"

	"go.viam.com/onlineplan/geom"
)

// newSeededRand builds a *rand.Rand from an optional seed, matching the teacher's explicit-seed
// convention (newCBiRRTMotionPlanner takes a seed *rand.Rand rather than using the global source).
// A nil seed falls back to a fixed default so construction never depends on wall-clock time, which
// the toolchain-free, unexecuted nature of this repo's tests requires for reproducibility.
func newSeededRand(seed *int64) *rand.Rand {
	var s int64 = 1
	if seed != nil {
		s = *seed
	}
	return rand.New(rand.NewSource(s))
}

// Options configures a planner at construction, mirroring the PlannerOptions/cbirrtOptions shape in
// daoran-rdk's armplanning package: a plain struct of tunables plus derived fields computed once at
// construction, following getFrameSteps's pattern of deriving per-instance values from a
// percentage/multiplier rather than recomputing them at every use site.
type Options struct {
	// MaxSegment is the edge-length unit. It sets RewireNeighborhood and bounds per-tick vehicle
	// travel via MaxTravel.
	MaxSegment float64
	// Width and Height are the workspace bounds, in the same units as obstacle rects.
	Width, Height int
	// UsePseudoRandom selects the sampler mode: true for uniform pseudo-random, false for the
	// deterministic two-axis Halton sequence.
	UsePseudoRandom bool
	// Seed seeds the pseudo-random sampler's *rand.Rand. If nil, the fixed default seed 1 is used.
	// Ignored when UsePseudoRandom is false.
	Seed *int64
	// Start pins the root to a known coordinate instead of sampling one, matching spec.md §6's
	// optionalStart parameter to new(). If nil, the root is drawn the same way the endpoint is.
	Start *geom.Coord
}

// derivedOptions holds Options plus the fields spec.md §4.5 defines in terms of them, computed once
// at construction time.
type derivedOptions struct {
	Options
	rewireNeighborhood float64
	maxTravel          float64
	nodeAddThreshold   int
}

func newDerivedOptions(opt Options) (derivedOptions, error) {
	if opt.Width <= 0 || opt.Height <= 0 || opt.MaxSegment <= 0 {
		return derivedOptions{}, ErrInvalidOptions
	}
	return derivedOptions{
		Options:            opt,
		rewireNeighborhood: 6 * opt.MaxSegment,
		maxTravel:          opt.MaxSegment,
		nodeAddThreshold:   int(0.02 * float64(opt.Width) * float64(opt.Height)),
	}, nil
}
