// Package obstacle rasterizes static polygonal obstacles into the height x width occupancy bitmap
// the planner core tests points and segments against. Grounded on the obstacleHash built in
// original_source/src/main.cpp and consumed by original_source/src/planning/Planner.cpp.
package obstacle

import (
	"go.viam.com/onlineplan/geom"
)

// Bitmap is a height x width grid of occupied cells. Row index is y, column index is x, matching
// the (*obstacleHash)[y][x] indexing convention used throughout the original planner.
type Bitmap struct {
	width  int
	height int
	cells  []bool
}

// NewBitmap allocates an empty (fully free) bitmap of the given workspace dimensions.
func NewBitmap(width, height int) *Bitmap {
	return &Bitmap{
		width:  width,
		height: height,
		cells:  make([]bool, width*height),
	}
}

// BuildBitmap rasterizes rects, inflated by (padX, padY) on every side, into a new width x height
// bitmap. Any grid cell whose center falls inside an inflated rect is marked occupied.
func BuildBitmap(width, height int, rects []geom.Rect, padX, padY float64) *Bitmap {
	bm := NewBitmap(width, height)
	inflated := make([]geom.Rect, len(rects))
	for i, r := range rects {
		inflated[i] = r.Inflate(padX, padY)
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			center := geom.Coord{X: float64(x) + 0.5, Y: float64(y) + 0.5}
			for _, r := range inflated {
				if r.Contains(center) {
					bm.Set(x, y, true)
					break
				}
			}
		}
	}
	return bm
}

// Width returns the bitmap's column count.
func (b *Bitmap) Width() int { return b.width }

// Height returns the bitmap's row count.
func (b *Bitmap) Height() int { return b.height }

// InBounds reports whether (x, y) is a valid cell index.
func (b *Bitmap) InBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// Blocked reports whether cell (x, y) is occupied. Out-of-bounds cells are treated as occupied,
// matching the original planner's practice of rejecting any sample outside [0, width) x [0, height).
func (b *Bitmap) Blocked(x, y int) bool {
	if !b.InBounds(x, y) {
		return true
	}
	return b.cells[y*b.width+x]
}

// Set marks cell (x, y) occupied or free. Out-of-bounds calls are no-ops.
func (b *Bitmap) Set(x, y int, occupied bool) {
	if !b.InBounds(x, y) {
		return
	}
	b.cells[y*b.width+x] = occupied
}

// At reports whether the cell containing coord is occupied.
func (b *Bitmap) At(coord geom.Coord) bool {
	return b.Blocked(int(coord.X), int(coord.Y))
}
