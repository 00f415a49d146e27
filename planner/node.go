// Package planner implements the shared tree/node-store substrate (C4/C5/C6) and the two
// strategies that grow it (C7 RRT*, C8 FMT*). Grounded on daoran-rdk/motionplan/armplanning/cBiRRT.go
// for the planner-embeds-base layering and logger/seed wiring, and on original_source/ for the exact
// tick semantics of each strategy.
package planner

import "go.viam.com/onlineplan/geom"

// Status is a node's FMT* wavefront phase tag. RRT* treats every live node as Closed.
type Status int

const (
	// Unvisited nodes have not yet been reached by the FMT* wavefront.
	Unvisited Status = iota
	// Open nodes are on the FMT* frontier with a known-optimal cost among examined paths.
	Open
	// Closed nodes are finalized and never revisited by FMT*.
	Closed
)

func (s Status) String() string {
	switch s {
	case Unvisited:
		return "unvisited"
	case Open:
		return "open"
	case Closed:
		return "closed"
	default:
		return "unknown"
	}
}

// node is a single tree vertex. The planner owns every node for its lifetime; parent/children are
// non-owning references into that arena, matching the ownership model design note in spec.md §9
// (own an arena, treat parent/children as borrowed handles, never free during the planner's life).
type node struct {
	coord          geom.Coord
	parent         *node
	children       map[*node]struct{}
	cumulativeCost float64
	status         Status
	heuristic      float64
}

// newNode allocates a detached node at coord with no parent and no children.
func newNode(coord geom.Coord) *node {
	return &node{
		coord:    coord,
		children: make(map[*node]struct{}),
	}
}

// setParent attaches n as a child of p and sets n.cumulativeCost = p.cumulativeCost + edgeCost,
// without touching any previous parent link. Callers that are re-parenting an already-attached node
// must call detach first; rewire does both in the correct order.
func (n *node) setParent(p *node, edgeCost float64) {
	n.parent = p
	n.cumulativeCost = p.cumulativeCost + edgeCost
	if p != nil {
		p.children[n] = struct{}{}
	}
}

// detach removes n from its current parent's child set. A no-op at the root, where parent is nil.
func (n *node) detach() {
	if n.parent != nil {
		delete(n.parent.children, n)
	}
}

// rewire implements C5's rewire operation (spec.md §4.4): detach n from its current parent, attach
// it to newParent with newEdgeCost, then propagate the resulting cost delta to every descendant via
// an explicit iterative worklist (not recursion, per spec §9's design note on long paths).
//
// The caller is responsible for verifying lineIntersectsObstacle(n.coord, newParent.coord) == false
// before calling rewire; rewire itself never checks collision.
func (n *node) rewire(newParent *node, newEdgeCost float64) {
	oldCost := n.cumulativeCost
	n.detach()
	n.setParent(newParent, newEdgeCost)
	delta := n.cumulativeCost - oldCost
	if delta == 0 {
		return
	}

	worklist := make([]*node, 0, len(n.children))
	for child := range n.children {
		worklist = append(worklist, child)
	}
	for len(worklist) > 0 {
		last := len(worklist) - 1
		cur := worklist[last]
		worklist = worklist[:last]
		cur.cumulativeCost += delta
		for child := range cur.children {
			worklist = append(worklist, child)
		}
	}
}
