package obstacle

import (
	"testing"

	"go.viam.com/test"

	"go.viam.com/onlineplan/geom"
)

func TestBuildBitmapMarksInflatedRect(t *testing.T) {
	t.Parallel()
	rects := []geom.Rect{geom.NewRect(geom.Coord{X: 40, Y: 40}, geom.Coord{X: 50, Y: 50})}
	bm := BuildBitmap(100, 100, rects, 0, 0)

	test.That(t, bm.Blocked(45, 45), test.ShouldBeTrue)
	test.That(t, bm.Blocked(0, 0), test.ShouldBeFalse)
	test.That(t, bm.Blocked(99, 99), test.ShouldBeFalse)
}

func TestBuildBitmapInflation(t *testing.T) {
	t.Parallel()
	rects := []geom.Rect{geom.NewRect(geom.Coord{X: 40, Y: 40}, geom.Coord{X: 50, Y: 50})}
	bm := BuildBitmap(100, 100, rects, 5, 5)

	// A cell just outside the raw rect but inside the inflated padding should now be blocked.
	test.That(t, bm.Blocked(37, 45), test.ShouldBeTrue)
}

func TestBitmapOutOfBoundsIsBlocked(t *testing.T) {
	t.Parallel()
	bm := NewBitmap(10, 10)
	test.That(t, bm.Blocked(-1, 0), test.ShouldBeTrue)
	test.That(t, bm.Blocked(0, 10), test.ShouldBeTrue)
}

func TestBitmapAt(t *testing.T) {
	t.Parallel()
	bm := NewBitmap(10, 10)
	bm.Set(3, 3, true)
	test.That(t, bm.At(geom.Coord{X: 3.4, Y: 3.9}), test.ShouldBeTrue)
	test.That(t, bm.At(geom.Coord{X: 4.1, Y: 4.1}), test.ShouldBeFalse)
}
