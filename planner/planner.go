package planner

import (
	"fmt"
	"math"

	"go.viam.com/onlineplan/geom"
	"go.viam.com/onlineplan/logging"
	"go.viam.com/onlineplan/obstacle"
	"go.viam.com/onlineplan/sampler"
)

// maxSamplerAttempts bounds randomOpenAreaPoint's rejection-retry loop (spec.md §9 open question:
// the source loops forever; this repo fails explicitly instead of hanging a long-running process).
const maxSamplerAttempts = 10_000

// Engine is the strategy-agnostic interface the host drives the planner through (spec.md §6).
// RRTStarPlanner and FMTStarPlanner both satisfy it by embedding *base.
type Engine interface {
	// Sample performs one growth step: one new node plus a rewire sweep for RRT*, one frontier pop
	// and expansion for FMT*.
	Sample()
	// Replan rebinds the endpoint to the tree node nearest newEnd and recomputes the best path.
	Replan(newEnd geom.Coord)
	// RandomReplan draws a free point and calls Replan with it.
	RandomReplan()
	// MoveStart advances the vehicle by (dx, dy), re-rooting the tree if the target cell is free.
	MoveStart(dx, dy float64)
	// FollowPath consumes up to one MaxTravel-length slice of the best path and calls MoveStart.
	FollowPath()
	// CalculatePathCost returns the sum of Euclidean edge lengths of the current best path.
	CalculatePathCost() float64
	// IsDoneBuilding is FMT*-only; always false for RRT*.
	IsDoneBuilding() bool
	// Name returns the planner's opaque host-facing identifier.
	Name() string
	// Root returns the current root coordinate.
	Root() geom.Coord
	// EndPoint returns the current endpoint coordinate.
	EndPoint() geom.Coord
	// BestPath returns the current best path as a sequence of coordinates, root first and endpoint
	// last.
	BestPath() []geom.Coord
	// Tree returns a flattened, read-only snapshot of every tree node for host-side diagnostics,
	// such as dumping the tree to a non-rendering visualization format.
	Tree() []TreeNode
}

// base is the common substrate (C4/C5/C6) both strategies embed, mirroring the way
// cBiRRTMotionPlanner embeds *planner in daoran-rdk/motionplan/armplanning/cBiRRT.go.
type base struct {
	opt derivedOptions

	bitmap *obstacle.Bitmap
	rects  []geom.Rect

	sampler sampler.Sampler

	index *kdTree

	root    *node
	endNode *node

	bestPath []geom.Coord

	logger logging.Logger
}

// newBase constructs the shared substrate: resolves a root (either opt.Start, if given, or a sampled
// free point per spec.md §6's optional new() parameter), draws an endpoint at least width/2 away from
// it, inserts the root into the spatial index, and leaves the endpoint as a standalone node with no
// parent until the first Replan binds it into the tree (DESIGN.md Open Question #4).
func newBase(bitmap *obstacle.Bitmap, rects []geom.Rect, opt Options, s sampler.Sampler, logger logging.Logger) (*base, error) {
	derived, err := newDerivedOptions(opt)
	if err != nil {
		return nil, err
	}

	b := &base{
		opt:     derived,
		bitmap:  bitmap,
		rects:   rects,
		sampler: s,
		index:   newKDTree(),
		logger:  logger,
	}

	startPoint, err := b.resolveStart(opt.Start)
	if err != nil {
		return nil, err
	}

	var endPoint geom.Coord
	found := false
	for attempt := 0; attempt < maxSamplerAttempts; attempt++ {
		p, err := b.randomOpenAreaPoint()
		if err != nil {
			return nil, fmt.Errorf("sampling endpoint: %w", err)
		}
		if geom.Distance(startPoint, p) >= float64(opt.Width)/2.0 {
			endPoint = p
			found = true
			break
		}
	}
	if !found {
		return nil, ErrNoFreeEndpoint
	}

	b.root = newNode(startPoint)
	b.root.status = Closed
	b.index.insert(b.root)

	b.endNode = newNode(endPoint)
	b.endNode.cumulativeCost = maxCost

	b.logger.Debugf("planner constructed: root=%v endpoint=%v", startPoint, endPoint)
	return b, nil
}

// resolveStart returns *start if the host supplied one, failing if that coordinate is obstructed;
// otherwise it draws a free point itself. This is spec.md §6's optionalStart parameter to new().
func (b *base) resolveStart(start *geom.Coord) (geom.Coord, error) {
	if start != nil {
		if b.bitmap.At(*start) {
			return geom.Coord{}, ErrStartObstructed
		}
		return *start, nil
	}
	p, err := b.randomOpenAreaPoint()
	if err != nil {
		return geom.Coord{}, fmt.Errorf("sampling start point: %w", err)
	}
	return p, nil
}

// maxCost stands in for the source's numeric_limits<double>::max()/2.0 sentinel used for an
// endpoint/unvisited node not yet connected to the tree.
const maxCost = 1e308

// randomOpenAreaPoint draws a free-space point, retrying up to maxSamplerAttempts times. Returns
// ErrSamplerExhausted if every attempt landed on an occupied cell.
func (b *base) randomOpenAreaPoint() (geom.Coord, error) {
	for attempt := 0; attempt < maxSamplerAttempts; attempt++ {
		p := b.sampler.Next(b.bitmap.Width(), b.bitmap.Height())
		if !b.bitmap.At(p) {
			return p, nil
		}
	}
	return geom.Coord{}, ErrSamplerExhausted
}

func edgeCost(a, b *node) float64 {
	return geom.Distance(a.coord, b.coord)
}

// Replan rebinds endNode to the tree node nearest newEnd and recomputes the best path (spec.md §4.5).
func (b *base) Replan(newEnd geom.Coord) {
	nearest := b.index.nearest(newEnd)
	if nearest == nil {
		return
	}
	b.endNode = nearest
	b.refreshBestPath()
}

// RandomReplan draws a free point and calls Replan with it.
func (b *base) RandomReplan() {
	p, err := b.randomOpenAreaPoint()
	if err != nil {
		b.logger.Debugf("randomReplan: %v, leaving endpoint unchanged", err)
		return
	}
	b.Replan(p)
}

// refreshBestPath clears bestPath and, if endNode has a parent (i.e. is bound into the tree),
// walks endNode -> root via parent links and stores the reversed coordinate sequence.
func (b *base) refreshBestPath() {
	b.bestPath = b.bestPath[:0]
	if b.endNode.parent == nil {
		return
	}
	var reversed []geom.Coord
	for cur := b.endNode; cur != nil; cur = cur.parent {
		reversed = append(reversed, cur.coord)
	}
	for i := len(reversed) - 1; i >= 0; i-- {
		b.bestPath = append(b.bestPath, reversed[i])
	}
}

// MoveStart implements spec.md §4.5's moveStart: if the target cell is collision-free, constructs a
// new root at that coord, inserts it into the spatial index, rewires the old root under the new
// root, and sweeps the new root's neighborhood rewiring any Closed node that benefits. Fails
// silently if the target cell is an obstacle. moveStart only re-roots the tree; it does not touch
// bestPath (that is followPath's job, which patches bestPath[0] after calling this). Grounded on
// SamplingPlanner::moveStart.
func (b *base) MoveStart(dx, dy float64) {
	if dx == 0 && dy == 0 {
		return
	}

	target := geom.Coord{
		X: geom.Clamp(b.root.coord.X+dx, 0, float64(b.bitmap.Width()-1)),
		Y: geom.Clamp(b.root.coord.Y+dy, 0, float64(b.bitmap.Height()-1)),
	}
	if b.bitmap.At(target) {
		b.logger.Debugw("moveStart: target obstructed, no-op", "targetX", target.X, "targetY", target.Y)
		return
	}

	newRoot := newNode(target)
	newRoot.status = Closed
	newRoot.cumulativeCost = 0
	b.index.insert(newRoot)

	oldRoot := b.root
	oldRoot.rewire(newRoot, edgeCost(newRoot, oldRoot))

	b.sweepRewire(newRoot, b.index.neighborsWithin(newRoot.coord, b.opt.rewireNeighborhood))

	b.root = newRoot
}

// sweepRewire re-parents every Closed candidate under anchor when doing so is both cheaper and
// collision-free. Shared by MoveStart's new-root sweep and RRTStarPlanner.Sample's rewire-and-growth
// sweeps, both of which are "the same rewire sweep" per spec.md §4.6's note on the two layerings.
func (b *base) sweepRewire(anchor *node, candidates []*node) {
	for _, neighbor := range candidates {
		if neighbor == anchor || neighbor.status != Closed {
			continue
		}
		cost := edgeCost(anchor, neighbor)
		if anchor.cumulativeCost+cost < neighbor.cumulativeCost &&
			!obstacle.LineIntersectsObstacle(b.bitmap, anchor.coord, neighbor.coord) {
			neighbor.rewire(anchor, cost)
		}
	}
}

// FollowPath advances the vehicle along bestPath by at most MaxTravel total arc length. It
// reproduces Planner::followPath's direction-of-travel quirk exactly: the angle for each partial
// step is computed from the *original* path segment (bestPath[i], bestPath[i+1]), even though the
// accumulated (dx, dy) offset is applied relative to bestPath[0] (DESIGN.md Open Question #5).
func (b *base) FollowPath() {
	if len(b.bestPath) == 0 {
		return
	}

	var dx, dy float64
	distanceLeft := b.opt.maxTravel
	i := 0
	for len(b.bestPath)-i > 1 && distanceLeft > 0.000001 {
		cur := geom.Coord{X: b.bestPath[0].X + dx, Y: b.bestPath[0].Y + dy}
		next := b.bestPath[i+1]
		dist := geom.Distance(cur, next)
		travel := dist
		if distanceLeft < travel {
			travel = distanceLeft
		}
		angle := geom.Angle(b.bestPath[i], b.bestPath[i+1])
		dx += travel * math.Cos(angle)
		dy += travel * math.Sin(angle)

		distanceLeft -= travel
		i++
	}

	b.MoveStart(dx, dy)
	if len(b.bestPath) > 0 {
		b.bestPath[0] = b.root.coord
	}
}

// CalculatePathCost returns the sum of Euclidean edge lengths of the current best path.
func (b *base) CalculatePathCost() float64 {
	cost := 0.0
	for i := 0; i+1 < len(b.bestPath); i++ {
		cost += geom.Distance(b.bestPath[i], b.bestPath[i+1])
	}
	return cost
}

// Root returns the current root coordinate.
func (b *base) Root() geom.Coord { return b.root.coord }

// EndPoint returns the current endpoint coordinate.
func (b *base) EndPoint() geom.Coord { return b.endNode.coord }

// BestPath returns a copy of the current best path.
func (b *base) BestPath() []geom.Coord {
	out := make([]geom.Coord, len(b.bestPath))
	copy(out, b.bestPath)
	return out
}

// TreeNode is a read-only, exported snapshot of one tree vertex, for host-side diagnostics such as
// dumping the tree to a non-rendering visualization format (spec.md §6's tree traversal capability).
// ParentIndex indexes back into the slice Tree returns; the root's ParentIndex is -1.
type TreeNode struct {
	Coord       geom.Coord
	Status      Status
	Cost        float64
	ParentIndex int
}

// Tree returns a flattened snapshot of every node currently in the spatial index, letting a host
// walk parent/child links for visualization without access to the unexported node type.
func (b *base) Tree() []TreeNode {
	nodes := b.index.all()
	indexOf := make(map[*node]int, len(nodes))
	for i, n := range nodes {
		indexOf[n] = i
	}

	out := make([]TreeNode, len(nodes))
	for i, n := range nodes {
		parentIdx := -1
		if n.parent != nil {
			if idx, ok := indexOf[n.parent]; ok {
				parentIdx = idx
			}
		}
		out[i] = TreeNode{
			Coord:       n.coord,
			Status:      n.status,
			Cost:        n.cumulativeCost,
			ParentIndex: parentIdx,
		}
	}
	return out
}
