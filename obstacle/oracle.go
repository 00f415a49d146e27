package obstacle

import (
	"math"

	"go.viam.com/onlineplan/geom"
)

// LineIntersectsObstacle reports whether the segment p1-p2 crosses any occupied cell of bm. It is a
// line-by-line port of Planner::lineIntersectsObstacle in
// original_source/src/planning/Planner.cpp, preserved exactly including its double-sweep rasterizer,
// its +-20000 slope clamp for near-vertical segments, and its asymmetric y>0/x>0 (rather than >=0)
// bound checks. Any negative coordinate on either endpoint is treated as a collision.
func LineIntersectsObstacle(bm *Bitmap, p1, p2 geom.Coord) bool {
	dx := p2.X - p1.X
	dy := p2.Y - p1.Y

	if p1.X < 0 || p1.Y < 0 || p2.X < 0 || p2.Y < 0 {
		return true
	}

	m := geom.Clamp(dy/dx, -20000, 20000)
	b := -m*p1.X + p1.Y

	if math.Abs(m) != 20000 {
		minX := math.Min(p1.X, p2.X)
		maxX := math.Max(p1.X, p2.X)

		for ix := int(minX); float64(ix) <= maxX; ix++ {
			y := m*float64(ix) + b
			if y > 0 && y < float64(bm.Height()) && bm.Blocked(ix, int(y)) {
				return true
			}
		}
	}

	if m != 0 {
		minY := math.Min(p1.Y, p2.Y)
		maxY := math.Max(p1.Y, p2.Y)

		for iy := int(minY); float64(iy) < maxY; iy++ {
			x := (float64(iy) - b) / m
			if x > 0 && x < float64(bm.Width()) && bm.Blocked(int(x), iy) {
				return true
			}
		}
	}

	return false
}
