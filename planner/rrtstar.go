package planner

import (
	"go.viam.com/onlineplan/geom"
	"go.viam.com/onlineplan/logging"
	"go.viam.com/onlineplan/obstacle"
	"go.viam.com/onlineplan/sampler"
)

// RRTStarPlanner is the incremental RRT* strategy (C7): random-sample, nearest-parent,
// radius-neighborhood rewire. Grounded on SamplingPlanner::sampleWithRewire and
// SamplingPlanner::moveStart in original_source/SamplingPlanner.cpp.
type RRTStarPlanner struct {
	*base
}

var _ Engine = (*RRTStarPlanner)(nil)

// NewRRTStar constructs an RRT* planner over the given obstacle bitmap and rects.
func NewRRTStar(bitmap *obstacle.Bitmap, rects []geom.Rect, opt Options, logger logging.Logger) (*RRTStarPlanner, error) {
	var s sampler.Sampler
	if opt.UsePseudoRandom {
		s = sampler.NewPseudoRandomSampler(newSeededRand(opt.Seed))
	} else {
		s = sampler.NewHaltonSampler()
	}

	b, err := newBase(bitmap, rects, opt, s, logger)
	if err != nil {
		return nil, err
	}
	return &RRTStarPlanner{base: b}, nil
}

// Name implements Engine.
func (p *RRTStarPlanner) Name() string { return "rrtstar" }

// IsDoneBuilding implements Engine; RRT* never finishes building.
func (p *RRTStarPlanner) IsDoneBuilding() bool { return false }

// Sample implements one RRT* tick (spec.md §4.6): draw a candidate, find its neighbors within
// rewireNeighborhood, pick the rewire-sweep anchor by cumulativeCost alone, sweep other Closed
// neighbors under it, then grow the tree by inserting the candidate under the cost-plus-edge best
// neighbor and performing the same sweep centered on the new node. Both layerings are explicitly
// permitted by spec.md §4.6 to run in a single tick.
func (p *RRTStarPlanner) Sample() {
	candidate, err := p.randomOpenAreaPoint()
	if err != nil {
		p.logger.Debugf("rrtstar sample: %v, skipping tick", err)
		return
	}

	neighbors := p.index.neighborsWithin(candidate, p.opt.rewireNeighborhood)

	if anchor := bestRewireAnchor(neighbors); anchor != nil {
		p.sweepRewire(anchor, neighbors)
	}

	growthParent := bestGrowthParent(neighbors, candidate)
	if growthParent == nil {
		return
	}
	if obstacle.LineIntersectsObstacle(p.bitmap, growthParent.coord, candidate) {
		return
	}

	newN := newNode(candidate)
	newN.status = Closed
	newN.setParent(growthParent, edgeCost(growthParent, newN))
	p.index.insert(newN)

	p.sweepRewire(newN, neighbors)
}

// bestRewireAnchor picks the Closed neighbor minimizing cumulativeCost alone, without adding the
// candidate edge — a deliberate choice favoring near-root anchors, ported from
// SamplingPlanner::findBestNeighborWithoutCost. Tie-break is iteration order of the spatial query.
func bestRewireAnchor(neighbors []*node) *node {
	var best *node
	for _, n := range neighbors {
		if n.status != Closed {
			continue
		}
		if best == nil || n.cumulativeCost < best.cumulativeCost {
			best = n
		}
	}
	return best
}

// bestGrowthParent picks the Closed neighbor minimizing cumulativeCost + edgeCost(neighbor,
// candidate), ported from SamplingPlanner::findBestNeighbor. This is the "derived strategy" parent
// selection spec.md §4.6 describes for new-node growth, distinct from bestRewireAnchor's cost-only
// rule used for the rewire sweep.
func bestGrowthParent(neighbors []*node, candidate geom.Coord) *node {
	var best *node
	bestCost := 0.0
	for _, n := range neighbors {
		if n.status != Closed {
			continue
		}
		cost := n.cumulativeCost + geom.Distance(n.coord, candidate)
		if best == nil || cost < bestCost {
			best = n
			bestCost = cost
		}
	}
	return best
}
