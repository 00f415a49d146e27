package sampler

import (
	"testing"

	"go.viam.com/test"
)

// TestHaltonFirstValues checks spec.md §8 scenario S6: with haltonX(base=19), haltonY(base=31), the
// first three samples scaled to a 1x1 workspace are exactly (1/19, 1/31), (2/19, 2/31), (3/19, 3/31).
func TestHaltonFirstValues(t *testing.T) {
	t.Parallel()
	s := NewHaltonSampler()

	p1 := s.Next(1, 1)
	test.That(t, p1.X, test.ShouldAlmostEqual, 1.0/19.0)
	test.That(t, p1.Y, test.ShouldAlmostEqual, 1.0/31.0)

	p2 := s.Next(1, 1)
	test.That(t, p2.X, test.ShouldAlmostEqual, 2.0/19.0)
	test.That(t, p2.Y, test.ShouldAlmostEqual, 2.0/31.0)

	p3 := s.Next(1, 1)
	test.That(t, p3.X, test.ShouldAlmostEqual, 3.0/19.0)
	test.That(t, p3.Y, test.ShouldAlmostEqual, 3.0/31.0)
}

func TestHaltonDeterminism(t *testing.T) {
	t.Parallel()
	a := NewHaltonSampler()
	b := NewHaltonSampler()

	for i := 0; i < 50; i++ {
		pa := a.Next(100, 100)
		pb := b.Next(100, 100)
		test.That(t, pa, test.ShouldResemble, pb)
	}
}

func TestHaltonAdvancesOnEveryCall(t *testing.T) {
	t.Parallel()
	s := NewHaltonSampler()
	first := s.Next(1, 1)
	second := s.Next(1, 1)
	test.That(t, first, test.ShouldNotResemble, second)
}
