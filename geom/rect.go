package geom

// Rect is an axis-aligned rectangle defined by its top-left and bottom-right corners. Ported from
// original_source/geom/Rect.hpp, which exposes the same contains/intersects/inflate/width/height/
// getPoints surface.
type Rect struct {
	TopLeft     Coord
	BottomRight Coord
}

// NewRect builds a Rect from its top-left and bottom-right corners.
func NewRect(topLeft, bottomRight Coord) Rect {
	return Rect{TopLeft: topLeft, BottomRight: bottomRight}
}

// Width returns the rectangle's horizontal extent.
func (r Rect) Width() float64 {
	return r.BottomRight.X - r.TopLeft.X
}

// Height returns the rectangle's vertical extent.
func (r Rect) Height() float64 {
	return r.BottomRight.Y - r.TopLeft.Y
}

// Contains reports whether point lies within the rectangle, inclusive of its edges.
func (r Rect) Contains(point Coord) bool {
	return point.X >= r.TopLeft.X && point.X <= r.BottomRight.X &&
		point.Y >= r.TopLeft.Y && point.Y <= r.BottomRight.Y
}

// Intersects reports whether r and o overlap.
func (r Rect) Intersects(o Rect) bool {
	return r.TopLeft.X <= o.BottomRight.X && r.BottomRight.X >= o.TopLeft.X &&
		r.TopLeft.Y <= o.BottomRight.Y && r.BottomRight.Y >= o.TopLeft.Y
}

// Inflate grows the rectangle by dx on each horizontal side and dy on each vertical side, returning
// a new Rect. Used to pad obstacles before rasterizing them into the obstacle bitmap, the way
// SamplingPlanner pads obstacle rects before building obstacleHash.
func (r Rect) Inflate(dx, dy float64) Rect {
	return Rect{
		TopLeft:     Coord{X: r.TopLeft.X - dx, Y: r.TopLeft.Y - dy},
		BottomRight: Coord{X: r.BottomRight.X + dx, Y: r.BottomRight.Y + dy},
	}
}

// Corners returns the rectangle's four corners in clockwise order starting at TopLeft.
func (r Rect) Corners() []Coord {
	return []Coord{
		r.TopLeft,
		{X: r.BottomRight.X, Y: r.TopLeft.Y},
		r.BottomRight,
		{X: r.TopLeft.X, Y: r.BottomRight.Y},
	}
}
