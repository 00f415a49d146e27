package planner

import (
	"go.viam.com/onlineplan/geom"
	"go.viam.com/onlineplan/logging"
	"go.viam.com/onlineplan/obstacle"
	"go.viam.com/onlineplan/sampler"
)

// FMTStarPlanner is the Online FMT* strategy (C8): pre-sample an unvisited set, then expand a lazy
// wavefront via a cost-ordered frontier. Grounded on original_source/src/planning/OnlineFmtStar.cpp.
type FMTStarPlanner struct {
	*base
	open *frontier
}

var _ Engine = (*FMTStarPlanner)(nil)

// NewFMTStar constructs an FMT* planner: after base construction it pre-samples opt-derived
// nodeAddThreshold free points as Unvisited nodes with cumulativeCost = +inf, inserts each into the
// spatial index, and pushes the root onto the frontier as Open with cumulativeCost = 0.
func NewFMTStar(bitmap *obstacle.Bitmap, rects []geom.Rect, opt Options, logger logging.Logger) (*FMTStarPlanner, error) {
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

	p := &FMTStarPlanner{base: b, open: newFrontier()}

	for i := 0; i < b.opt.nodeAddThreshold; i++ {
		point, err := b.randomOpenAreaPoint()
		if err != nil {
			break
		}
		n := newNode(point)
		n.status = Unvisited
		n.cumulativeCost = maxCost
		b.index.insert(n)
	}

	b.root.status = Open
	b.root.heuristic = b.root.cumulativeCost
	p.open.push(b.root)

	b.logger.Debugf("ofmtstar constructed: %d unvisited nodes pre-sampled", b.opt.nodeAddThreshold)
	return p, nil
}

// Name implements Engine.
func (p *FMTStarPlanner) Name() string { return "ofmtstar" }

// IsDoneBuilding implements Engine: true iff the frontier is empty.
func (p *FMTStarPlanner) IsDoneBuilding() bool { return p.open.len() == 0 }

// Sample implements one FMT* tick, OnlineFmtStar::sampleAndAdd: pop the frontier's minimum into z;
// for each Unvisited neighbor x of z, find the best Open neighbor y of x by cost+edge; if one exists
// and the segment is collision-free, attach x under y, mark it Open, and push it; finally mark z
// Closed.
func (p *FMTStarPlanner) Sample() {
	z := p.open.pop()
	if z == nil {
		return
	}
	p.logger.Debugw("ofmtstar: popped frontier node", "coordX", z.coord.X, "coordY", z.coord.Y, "frontierSize", p.open.len())

	for _, x := range p.index.neighborsWithin(z.coord, p.opt.rewireNeighborhood) {
		if x.status != Unvisited {
			continue
		}

		xNeighbors := p.index.neighborsWithin(x.coord, p.opt.rewireNeighborhood)
		y := bestOpenNeighbor(xNeighbors, x.coord)
		if y == nil {
			continue
		}
		if obstacle.LineIntersectsObstacle(p.bitmap, y.coord, x.coord) {
			continue
		}

		x.setParent(y, edgeCost(y, x))
		x.status = Open
		x.heuristic = x.cumulativeCost
		p.open.push(x)
	}

	z.status = Closed
}

// bestOpenNeighbor picks the Open neighbor minimizing cumulativeCost + edgeCost(neighbor,
// candidate), ported from OnlineFmtStar::findBestOpenNeighbor.
func bestOpenNeighbor(neighbors []*node, candidate geom.Coord) *node {
	var best *node
	bestCost := 0.0
	for _, n := range neighbors {
		if n.status != Open {
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
