package planner

import "errors"

// Sentinel errors returned from construction and the sampler's bounded-retry path, in the
// package-level sentinel-error style daoran-rdk/motionplan/armplanning/cBiRRT.go uses
// (errNoPlannerOptions, errPlannerFailed). Steady-state entry points (Sample, Replan, RandomReplan,
// MoveStart, FollowPath) never return an error; per spec.md §7 they are no-ops on transient failure.
var (
	// ErrInvalidOptions is returned by NewRRTStar/NewFMTStar when an Options value is not usable (non-positive
	// dimensions or maxSegment).
	ErrInvalidOptions = errors.New("planner: invalid options")
	// ErrStartObstructed is returned by NewRRTStar/NewFMTStar when Options.Start names a coordinate that lands on an
	// obstacle; a host-supplied start is never silently resampled.
	ErrStartObstructed = errors.New("planner: supplied start point is obstructed")
	// ErrNoFreeEndpoint is returned by NewRRTStar/NewFMTStar when maxSamplerAttempts free points were found but none
	// satisfied the width/2 minimum-distance-from-root constraint.
	ErrNoFreeEndpoint = errors.New("planner: no free point found for endpoint satisfying minimum distance")
	// ErrSamplerExhausted is returned by randomOpenAreaPoint, and wrapped by newBase's root/endpoint
	// sampling, when a bounded rejection-retry loop exceeds maxSamplerAttempts without finding a free
	// cell (spec.md §9 open question: the source loops forever here, this repo bounds it and fails
	// explicitly).
	ErrSamplerExhausted = errors.New("planner: sampler exhausted retry budget")
)
