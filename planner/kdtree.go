package planner

import "go.viam.com/onlineplan/geom"

// kdTree is the spatial index backing C4: an owning container of live nodes keyed by coordinate,
// supporting O(log n) expected insert and nearest-neighbor lookup plus an axis-aligned box range
// query. Shaped after the NearestNeighbor/KNearestNeighbors API daoran-rdk's
// pointcloud.KDTree exposes (pointcloud/kdtree_test.go), generalized with neighborsWithin since
// gonum's spatial/kdtree.Keeper answers k-nearest queries, not the unbounded-radius box query
// spec.md §4.3 requires (see DESIGN.md).
//
// Unlike a bulk-built k-d tree, this one supports incremental single-point insertion (no rebuild),
// since nodes are added one at a time on every sample()/moveStart() tick.
type kdTree struct {
	root *kdNode
	size int
}

type kdNode struct {
	n           *node
	left, right *kdNode
}

func newKDTree() *kdTree {
	return &kdTree{}
}

// Len returns the number of nodes currently indexed.
func (t *kdTree) Len() int { return t.size }

// insert adds n to the index. O(log n) expected for randomly distributed coordinates.
func (t *kdTree) insert(n *node) {
	t.root = insertKD(t.root, n, 0)
	t.size++
}

func insertKD(cur *kdNode, n *node, depth int) *kdNode {
	if cur == nil {
		return &kdNode{n: n}
	}
	if axisLess(n.coord, cur.n.coord, depth) {
		cur.left = insertKD(cur.left, n, depth+1)
	} else {
		cur.right = insertKD(cur.right, n, depth+1)
	}
	return cur
}

func axisLess(a, b geom.Coord, depth int) bool {
	if depth%2 == 0 {
		return a.X < b.X
	}
	return a.Y < b.Y
}

// nearest returns the single indexed node whose coord is closest to coord by Euclidean distance.
// Used by replan to bind the endpoint to the existing tree node nearest the requested coordinate.
func (t *kdTree) nearest(coord geom.Coord) *node {
	if t.root == nil {
		return nil
	}
	best := t.root.n
	bestDist := geom.Distance(best.coord, coord)
	nearestKD(t.root, coord, 0, &best, &bestDist)
	return best
}

func nearestKD(cur *kdNode, target geom.Coord, depth int, best **node, bestDist *float64) {
	if cur == nil {
		return
	}
	d := geom.Distance(cur.n.coord, target)
	if d < *bestDist {
		*bestDist = d
		*best = cur.n
	}

	var axisTarget, axisCur float64
	if depth%2 == 0 {
		axisTarget, axisCur = target.X, cur.n.coord.X
	} else {
		axisTarget, axisCur = target.Y, cur.n.coord.Y
	}

	near, far := cur.left, cur.right
	if axisTarget >= axisCur {
		near, far = cur.right, cur.left
	}

	nearestKD(near, target, depth+1, best, bestDist)

	// Only descend into the far subtree if the splitting plane is closer than the current best,
	// i.e. the far side could still contain a closer point.
	planeDist := axisTarget - axisCur
	if planeDist < 0 {
		planeDist = -planeDist
	}
	if planeDist < *bestDist {
		nearestKD(far, target, depth+1, best, bestDist)
	}
}

// all returns every indexed node, in pre-order traversal. Used by Tree to build a host-facing
// visualization snapshot.
func (t *kdTree) all() []*node {
	var out []*node
	var walk func(*kdNode)
	walk = func(cur *kdNode) {
		if cur == nil {
			return
		}
		out = append(out, cur.n)
		walk(cur.left)
		walk(cur.right)
	}
	walk(t.root)
	return out
}

// neighborsWithin returns every indexed node whose coord lies inside the axis-aligned square of
// half-side radius centered at center — an L-infinity box query, deliberately not a Euclidean disk,
// per spec.md §4.3/§9: the core tolerates the square-vs-circle mismatch because subsequent cost
// comparisons implicitly prefer closer neighbors.
func (t *kdTree) neighborsWithin(center geom.Coord, radius float64) []*node {
	var results []*node
	minX, maxX := center.X-radius, center.X+radius
	minY, maxY := center.Y-radius, center.Y+radius
	rangeKD(t.root, 0, minX, maxX, minY, maxY, &results)
	return results
}

func rangeKD(cur *kdNode, depth int, minX, maxX, minY, maxY float64, results *[]*node) {
	if cur == nil {
		return
	}
	c := cur.n.coord
	if c.X >= minX && c.X <= maxX && c.Y >= minY && c.Y <= maxY {
		*results = append(*results, cur.n)
	}

	var axisMin, axisMax, axisVal float64
	if depth%2 == 0 {
		axisMin, axisMax, axisVal = minX, maxX, c.X
	} else {
		axisMin, axisMax, axisVal = minY, maxY, c.Y
	}

	if axisMin <= axisVal {
		rangeKD(cur.left, depth+1, minX, maxX, minY, maxY, results)
	}
	if axisMax >= axisVal {
		rangeKD(cur.right, depth+1, minX, maxX, minY, maxY, results)
	}
}
