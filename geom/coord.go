// Package geom provides the 2D geometry primitives the planner core is built on: points,
// rectangles, distances, angles, and clamping. Grounded on original_source/geom/Rect.hpp and the
// inline euclideanDistance/angleBetweenCoords/clamp helpers in original_source/src/planning/Planner.cpp.
package geom

import (
	"math"

	"github.com/golang/geo/r2"
)

// Coord is an ordered pair (x, y) of real numbers in workspace units. It is an alias for
// r2.Point, the vector type the teacher's own packages (rimage, motionplan) use for 2D/3D math, so
// every Coord carries r2.Point's arithmetic (Add, Sub, Mul, Dot, Norm, ...) in addition to the
// helpers below. Equality is exact; distances use the Euclidean metric.
type Coord = r2.Point

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Coord) float64 {
	return a.Sub(b).Norm()
}

// Angle returns the angle in radians of the vector from a to b, as used by followPath to compute
// the direction of travel along a path segment.
func Angle(a, b Coord) float64 {
	return math.Atan2(b.Y-a.Y, b.X-a.X)
}

// Clamp restricts v to the closed interval [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
