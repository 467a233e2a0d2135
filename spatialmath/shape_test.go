package spatialmath

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
)

func castRay(t *testing.T, s Shape, origin, dir r3.Vector, maxDistance float64) bool {
	t.Helper()
	r, err := Ray{Origin: origin, Direction: dir, MaxDistance: maxDistance}.Normalized()
	test.That(t, err, test.ShouldBeNil)
	return s.CastRay(r)
}

func TestBox(t *testing.T) {
	_, err := NewBox(r3.Vector{}, r3.Vector{X: 1, Y: -1, Z: 1})
	test.That(t, err, test.ShouldBeError)

	b, err := NewBox(r3.Vector{X: 1, Y: 1, Z: 1}, r3.Vector{X: 2, Y: 2, Z: 2})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, b.String(), test.ShouldContainSubstring, "Type: Box")

	t.Run("bounds", func(t *testing.T) {
		bounds := b.CalculateBounds(IdentityTransform())
		test.That(t, bounds, test.ShouldResemble, NewAABB(r3.Vector{X: 0, Y: 0, Z: 0}, r3.Vector{X: 2, Y: 2, Z: 2}))

		moved := b.CalculateBounds(NewTranslation(r3.Vector{X: 5, Y: 0, Z: 0}))
		test.That(t, moved, test.ShouldResemble, NewAABB(r3.Vector{X: 5, Y: 0, Z: 0}, r3.Vector{X: 7, Y: 2, Z: 2}))

		// A quarter turn about z maps the box onto the negative x side of the origin.
		turned := b.CalculateBounds(NewRotationAxisAngle(r3.Vector{X: 0, Y: 0, Z: 1}, math.Pi/2))
		test.That(t, AABBAlmostEqual(turned, NewAABB(r3.Vector{X: -2, Y: 0, Z: 0}, r3.Vector{X: 0, Y: 2, Z: 2}), 1e-9), test.ShouldBeTrue)

		// An eighth turn widens the bounds.
		widened := b.CalculateBounds(NewRotationAxisAngle(r3.Vector{X: 0, Y: 0, Z: 1}, math.Pi/4))
		test.That(t, widened.Size().X, test.ShouldAlmostEqual, 2*math.Sqrt2)
		test.That(t, widened.Size().Z, test.ShouldAlmostEqual, 2)
	})

	t.Run("ray", func(t *testing.T) {
		test.That(t, castRay(t, b, r3.Vector{X: -1, Y: 1, Z: 0}, r3.Vector{X: 10, Y: 0, Z: 10}, 20), test.ShouldBeTrue)
		test.That(t, castRay(t, b, r3.Vector{X: -1, Y: 1, Z: 0}, r3.Vector{X: -10, Y: 0, Z: 10}, 20), test.ShouldBeFalse)
		test.That(t, castRay(t, b, r3.Vector{X: -5, Y: 1, Z: 1}, r3.Vector{X: 1, Y: 0, Z: 0}, 4), test.ShouldBeFalse)
		test.That(t, castRay(t, b, r3.Vector{X: -5, Y: 1, Z: 1}, r3.Vector{X: 1, Y: 0, Z: 0}, 5), test.ShouldBeTrue)
	})

	t.Run("distance", func(t *testing.T) {
		test.That(t, b.DistanceQuery(r3.Vector{X: 1, Y: 1, Z: 1}, 0), test.ShouldBeTrue)
		test.That(t, b.DistanceQuery(r3.Vector{X: 5, Y: 1, Z: 1}, 3), test.ShouldBeTrue)
		test.That(t, b.DistanceQuery(r3.Vector{X: 5, Y: 1, Z: 1}, 2.9), test.ShouldBeFalse)
	})
}

func TestSphere(t *testing.T) {
	_, err := NewSphere(r3.Vector{}, 0)
	test.That(t, err, test.ShouldBeError)

	s, err := NewSphere(r3.Vector{X: 0, Y: 2, Z: 0}, 2)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, s.String(), test.ShouldContainSubstring, "Radius: 2.0")

	t.Run("bounds", func(t *testing.T) {
		test.That(t, s.CalculateBounds(IdentityTransform()), test.ShouldResemble, NewAABB(r3.Vector{X: -2, Y: 0, Z: -2}, r3.Vector{X: 2, Y: 4, Z: 2}))
		// A rotation about an axis through the center leaves the bounds unchanged.
		spun := NewTransform(r3.Vector{}, NewRotationAxisAngle(r3.Vector{X: 0, Y: 1, Z: 0}, 1.3).Rotation)
		test.That(t, AABBAlmostEqual(s.CalculateBounds(spun), s.CalculateBounds(IdentityTransform()), 1e-9), test.ShouldBeTrue)
	})

	t.Run("ray", func(t *testing.T) {
		test.That(t, castRay(t, s, r3.Vector{X: -5, Y: 2, Z: 0}, r3.Vector{X: 1, Y: 0, Z: 0}, 10), test.ShouldBeTrue)
		test.That(t, castRay(t, s, r3.Vector{X: -5, Y: 2, Z: 0}, r3.Vector{X: -1, Y: 0, Z: 0}, 10), test.ShouldBeFalse)
		test.That(t, castRay(t, s, r3.Vector{X: -5, Y: 2, Z: 0}, r3.Vector{X: 1, Y: 0, Z: 0}, 2.5), test.ShouldBeFalse)
		test.That(t, castRay(t, s, r3.Vector{X: -5, Y: 5, Z: 0}, r3.Vector{X: 1, Y: 0, Z: 0}, 10), test.ShouldBeFalse)
		test.That(t, castRay(t, s, r3.Vector{X: 0, Y: 2, Z: 0}, r3.Vector{X: 0, Y: 0, Z: 1}, 0.1), test.ShouldBeTrue)

		r, err := Ray{Origin: r3.Vector{X: -5, Y: 2, Z: 0}, Direction: r3.Vector{X: 1, Y: 0, Z: 0}, MinDistance: 8, MaxDistance: 10}.Normalized()
		test.That(t, err, test.ShouldBeNil)
		test.That(t, s.CastRay(r), test.ShouldBeFalse)
	})

	t.Run("distance", func(t *testing.T) {
		test.That(t, s.DistanceQuery(r3.Vector{X: 0, Y: -1, Z: 0}, 3), test.ShouldBeTrue)
		test.That(t, s.DistanceQuery(r3.Vector{X: 0, Y: -1, Z: 0}, 0.5), test.ShouldBeFalse)
		test.That(t, s.DistanceQuery(r3.Vector{X: 0, Y: 2, Z: 0}, 0), test.ShouldBeTrue)
	})
}

func TestCapsule(t *testing.T) {
	_, err := NewCapsule(r3.Vector{}, r3.Vector{X: 0, Y: 0, Z: 1}, -1)
	test.That(t, err, test.ShouldBeError)

	c, err := NewCapsule(r3.Vector{X: 0, Y: 0, Z: 0}, r3.Vector{X: 0, Y: 0, Z: 4}, 1)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, c.String(), test.ShouldContainSubstring, "Type: Capsule")

	t.Run("bounds", func(t *testing.T) {
		test.That(t, c.CalculateBounds(IdentityTransform()), test.ShouldResemble, NewAABB(r3.Vector{X: -1, Y: -1, Z: -1}, r3.Vector{X: 1, Y: 1, Z: 5}))
		lying := c.CalculateBounds(NewRotationAxisAngle(r3.Vector{X: 0, Y: 1, Z: 0}, math.Pi/2))
		test.That(t, AABBAlmostEqual(lying, NewAABB(r3.Vector{X: -1, Y: -1, Z: -1}, r3.Vector{X: 5, Y: 1, Z: 1}), 1e-9), test.ShouldBeTrue)
	})

	t.Run("ray", func(t *testing.T) {
		test.That(t, castRay(t, c, r3.Vector{X: -5, Y: 0, Z: 2}, r3.Vector{X: 1, Y: 0, Z: 0}, 10), test.ShouldBeTrue)
		test.That(t, castRay(t, c, r3.Vector{X: -5, Y: 0.9, Z: 2}, r3.Vector{X: 1, Y: 0, Z: 0}, 10), test.ShouldBeTrue)
		test.That(t, castRay(t, c, r3.Vector{X: -5, Y: 1.1, Z: 2}, r3.Vector{X: 1, Y: 0, Z: 0}, 10), test.ShouldBeFalse)
		test.That(t, castRay(t, c, r3.Vector{X: -5, Y: 0, Z: 2}, r3.Vector{X: -1, Y: 0, Z: 0}, 10), test.ShouldBeFalse)
		test.That(t, castRay(t, c, r3.Vector{X: -5, Y: 0, Z: 2}, r3.Vector{X: 1, Y: 0, Z: 0}, 3.5), test.ShouldBeFalse)
		test.That(t, castRay(t, c, r3.Vector{X: 0, Y: 0, Z: 10}, r3.Vector{X: 0, Y: 0, Z: -1}, math.Inf(1)), test.ShouldBeTrue)
	})

	t.Run("distance", func(t *testing.T) {
		test.That(t, c.DistanceQuery(r3.Vector{X: 3, Y: 0, Z: 2}, 2), test.ShouldBeTrue)
		test.That(t, c.DistanceQuery(r3.Vector{X: 3, Y: 0, Z: 2}, 1.9), test.ShouldBeFalse)
		test.That(t, c.DistanceQuery(r3.Vector{X: 0, Y: 0, Z: 7}, 2), test.ShouldBeTrue)
		test.That(t, c.DistanceQuery(r3.Vector{X: 0, Y: 0, Z: 7}, 1.5), test.ShouldBeFalse)
	})
}

func TestClosestPointsSegmentSegment(t *testing.T) {
	s, u := closestPointsSegmentSegment(r3.Vector{X: 0, Y: 0, Z: 0}, r3.Vector{X: 2, Y: 0, Z: 0}, r3.Vector{X: 1, Y: -1, Z: 1}, r3.Vector{X: 1, Y: 1, Z: 1})
	test.That(t, s, test.ShouldAlmostEqual, 0.5)
	test.That(t, u, test.ShouldAlmostEqual, 0.5)

	// Parallel segments.
	s, u = closestPointsSegmentSegment(r3.Vector{X: 0, Y: 0, Z: 0}, r3.Vector{X: 1, Y: 0, Z: 0}, r3.Vector{X: 3, Y: 1, Z: 0}, r3.Vector{X: 4, Y: 1, Z: 0})
	test.That(t, s, test.ShouldAlmostEqual, 1)
	test.That(t, u, test.ShouldAlmostEqual, 0)

	// Degenerate first segment.
	s, u = closestPointsSegmentSegment(r3.Vector{X: 0, Y: 2, Z: 0}, r3.Vector{X: 0, Y: 2, Z: 0}, r3.Vector{X: -1, Y: 0, Z: 0}, r3.Vector{X: 1, Y: 0, Z: 0})
	test.That(t, s, test.ShouldAlmostEqual, 0)
	test.That(t, u, test.ShouldAlmostEqual, 0.5)
}
