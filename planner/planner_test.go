package planner

import (
	"testing"

	"go.viam.com/test"

	"go.viam.com/onlineplan/geom"
	"go.viam.com/onlineplan/logging"
	"go.viam.com/onlineplan/obstacle"
	"go.viam.com/onlineplan/sampler"
)

// newTestBase builds a *base with an explicit root coord, bypassing newBase's random placement, so
// moveStart/followPath scenarios can assert against fixed coordinates (spec.md §8 S3/S4).
func newTestBase(t *testing.T, bitmap *obstacle.Bitmap, root geom.Coord) *base {
	t.Helper()
	opt := Options{MaxSegment: 5, Width: bitmap.Width(), Height: bitmap.Height(), UsePseudoRandom: true}
	derived, err := newDerivedOptions(opt)
	test.That(t, err, test.ShouldBeNil)

	b := &base{
		opt:     derived,
		bitmap:  bitmap,
		sampler: sampler.NewPseudoRandomSampler(newSeededRand(nil)),
		index:   newKDTree(),
		logger:  logging.NewTestLogger(),
	}
	b.root = newNode(root)
	b.root.status = Closed
	b.index.insert(b.root)
	b.endNode = newNode(geom.Coord{X: -1, Y: -1})
	b.endNode.cumulativeCost = maxCost
	return b
}

// TestMoveStartReroots checks spec.md §8 S3: root (50,50), moveStart(10, 0) in clear space.
func TestMoveStartReroots(t *testing.T) {
	t.Parallel()
	bitmap := obstacle.NewBitmap(100, 100)
	b := newTestBase(t, bitmap, geom.Coord{X: 50, Y: 50})
	oldRoot := b.root

	b.MoveStart(10, 0)

	test.That(t, b.root.coord, test.ShouldResemble, geom.Coord{X: 60, Y: 50})
	test.That(t, b.root.cumulativeCost, test.ShouldEqual, 0.0)
	test.That(t, oldRoot.parent, test.ShouldEqual, b.root)
	test.That(t, oldRoot.cumulativeCost, test.ShouldEqual, 10.0)
	test.That(t, b.index.nearest(geom.Coord{X: 50, Y: 50}), test.ShouldEqual, oldRoot)
	test.That(t, b.index.Len(), test.ShouldEqual, 2)
}

// TestMoveStartBlocked checks spec.md §8 S4: obstacle at (60,50) leaves all state unchanged.
func TestMoveStartBlocked(t *testing.T) {
	t.Parallel()
	bitmap := obstacle.NewBitmap(100, 100)
	bitmap.Set(60, 50, true)
	b := newTestBase(t, bitmap, geom.Coord{X: 50, Y: 50})
	oldRoot := b.root

	b.MoveStart(10, 0)

	test.That(t, b.root, test.ShouldEqual, oldRoot)
	test.That(t, b.root.coord, test.ShouldResemble, geom.Coord{X: 50, Y: 50})
	test.That(t, b.index.Len(), test.ShouldEqual, 1)
}

func TestReplanBindsNearestNode(t *testing.T) {
	t.Parallel()
	bitmap := obstacle.NewBitmap(100, 100)
	b := newTestBase(t, bitmap, geom.Coord{X: 0, Y: 0})

	far := newNode(geom.Coord{X: 90, Y: 90})
	far.setParent(b.root, edgeCost(b.root, far))
	b.index.insert(far)

	b.Replan(geom.Coord{X: 91, Y: 89})

	test.That(t, b.endNode, test.ShouldEqual, far)
	test.That(t, b.bestPath, test.ShouldResemble, []geom.Coord{b.root.coord, far.coord})
}

func TestRefreshBestPathEmptyUntilEndpointBound(t *testing.T) {
	t.Parallel()
	bitmap := obstacle.NewBitmap(100, 100)
	b := newTestBase(t, bitmap, geom.Coord{X: 0, Y: 0})

	b.refreshBestPath()
	test.That(t, len(b.bestPath), test.ShouldEqual, 0)
}

func TestCalculatePathCost(t *testing.T) {
	t.Parallel()
	bitmap := obstacle.NewBitmap(100, 100)
	b := newTestBase(t, bitmap, geom.Coord{X: 0, Y: 0})
	b.bestPath = []geom.Coord{{X: 0, Y: 0}, {X: 3, Y: 4}, {X: 3, Y: 8}}

	test.That(t, b.CalculatePathCost(), test.ShouldEqual, 9.0)
}

func TestFollowPathAdvancesRootTowardPath(t *testing.T) {
	t.Parallel()
	bitmap := obstacle.NewBitmap(100, 100)
	b := newTestBase(t, bitmap, geom.Coord{X: 0, Y: 0})
	b.bestPath = []geom.Coord{{X: 0, Y: 0}, {X: 100, Y: 0}}

	b.FollowPath()

	// maxTravel == MaxSegment == 5, so the vehicle advances 5 units along the path.
	test.That(t, b.root.coord.X, test.ShouldAlmostEqual, 5.0)
	test.That(t, b.root.coord.Y, test.ShouldAlmostEqual, 0.0)
	test.That(t, b.bestPath[0], test.ShouldResemble, b.root.coord)
}

func TestFollowPathNoopOnEmptyPath(t *testing.T) {
	t.Parallel()
	bitmap := obstacle.NewBitmap(100, 100)
	b := newTestBase(t, bitmap, geom.Coord{X: 0, Y: 0})

	b.FollowPath()
	test.That(t, b.root.coord, test.ShouldResemble, geom.Coord{X: 0, Y: 0})
}

// TestFollowPathKeepsBestPathLengthConstantWithBoundEndpoint guards against regressing moveStart
// into also recomputing bestPath: spec.md §4.5 assigns the full endNode->root recompute to Replan
// alone, and has followPath patch only bestPath[0] after moveStart re-roots. With endNode bound into
// the tree via Replan (so refreshBestPath is not a no-op), repeated FollowPath ticks must leave
// bestPath's length unchanged, never growing as the old root gets spliced in as a new waypoint.
func TestFollowPathKeepsBestPathLengthConstantWithBoundEndpoint(t *testing.T) {
	t.Parallel()
	bitmap := obstacle.NewBitmap(1000, 1000)
	b := newTestBase(t, bitmap, geom.Coord{X: 0, Y: 0})

	far := newNode(geom.Coord{X: 100, Y: 0})
	far.setParent(b.root, edgeCost(b.root, far))
	b.index.insert(far)

	b.Replan(geom.Coord{X: 101, Y: 1})
	test.That(t, b.endNode, test.ShouldEqual, far)

	wantLen := len(b.bestPath)
	test.That(t, wantLen, test.ShouldEqual, 2)

	for i := 0; i < 5; i++ {
		b.FollowPath()
		test.That(t, len(b.bestPath), test.ShouldEqual, wantLen)
	}
	test.That(t, b.bestPath[0], test.ShouldResemble, b.root.coord)
	test.That(t, b.bestPath[wantLen-1], test.ShouldResemble, far.coord)
}

// TestOptionsStartPinsRoot checks spec.md §6's optionalStart new() parameter: a supplied Options.Start
// is used verbatim instead of being sampled.
func TestOptionsStartPinsRoot(t *testing.T) {
	t.Parallel()
	bitmap := obstacle.NewBitmap(200, 200)
	start := geom.Coord{X: 12, Y: 34}
	opt := Options{MaxSegment: 5, Width: 200, Height: 200, UsePseudoRandom: true, Start: &start}

	p, err := NewRRTStar(bitmap, nil, opt, logging.NewTestLogger())
	test.That(t, err, test.ShouldBeNil)
	test.That(t, p.Root(), test.ShouldResemble, start)
}

// TestOptionsStartObstructedErrors checks that an obstructed supplied start is reported rather than
// silently resampled.
func TestOptionsStartObstructedErrors(t *testing.T) {
	t.Parallel()
	bitmap := obstacle.NewBitmap(200, 200)
	start := geom.Coord{X: 12, Y: 34}
	bitmap.Set(12, 34, true)
	opt := Options{MaxSegment: 5, Width: 200, Height: 200, UsePseudoRandom: true, Start: &start}

	_, err := NewRRTStar(bitmap, nil, opt, logging.NewTestLogger())
	test.That(t, err, test.ShouldEqual, ErrStartObstructed)
}

// TestTreeReflectsParentLinks checks spec.md §6's tree traversal capability: Tree's ParentIndex
// values must reproduce the actual parent/child structure built via setParent/rewire.
func TestTreeReflectsParentLinks(t *testing.T) {
	t.Parallel()
	bitmap := obstacle.NewBitmap(100, 100)
	b := newTestBase(t, bitmap, geom.Coord{X: 0, Y: 0})

	child := newNode(geom.Coord{X: 10, Y: 0})
	child.status = Closed
	child.setParent(b.root, edgeCost(b.root, child))
	b.index.insert(child)

	snapshot := b.Tree()
	test.That(t, len(snapshot), test.ShouldEqual, 2)

	byCoord := make(map[geom.Coord]TreeNode, len(snapshot))
	for _, tn := range snapshot {
		byCoord[tn.Coord] = tn
	}

	rootView, ok := byCoord[b.root.coord]
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, rootView.ParentIndex, test.ShouldEqual, -1)

	childView, ok := byCoord[child.coord]
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, childView.ParentIndex, test.ShouldBeGreaterThanOrEqualTo, 0)
	test.That(t, snapshot[childView.ParentIndex].Coord, test.ShouldResemble, b.root.coord)
}
