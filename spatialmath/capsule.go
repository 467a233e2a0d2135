package spatialmath

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"
)

// Capsule is the set of points within Radius of the segment from SegA to SegB.
type Capsule struct {
	SegA   r3.Vector
	SegB   r3.Vector
	Radius float64
}

// NewCapsule instantiates a new Capsule from the end points of its axis and its radius.
func NewCapsule(segA, segB r3.Vector, radius float64) (*Capsule, error) {
	if radius <= 0 || math.IsNaN(radius) {
		return nil, newBadGeometryDimensionsError(&Capsule{})
	}
	return &Capsule{SegA: segA, SegB: segB, Radius: radius}, nil
}

// String returns a human readable string that represents the capsule.
func (c *Capsule) String() string {
	return fmt.Sprintf("Type: Capsule | A: X:%.1f, Y:%.1f, Z:%.1f | B: X:%.1f, Y:%.1f, Z:%.1f | Radius: %.1f",
		c.SegA.X, c.SegA.Y, c.SegA.Z, c.SegB.X, c.SegB.Y, c.SegB.Z, c.Radius)
}

// CalculateBounds returns the union of the bounds of the two end spheres.
func (c *Capsule) CalculateBounds(t Transform) AABB {
	r := r3.Vector{X: c.Radius, Y: c.Radius, Z: c.Radius}
	a := t.Apply(c.SegA)
	b := t.Apply(c.SegB)
	return AABB{Lower: a.Sub(r), Upper: a.Add(r)}.Union(AABB{Lower: b.Sub(r), Upper: b.Add(r)})
}

// CastRay reports whether the ray segment comes within the radius of the capsule axis.
func (c *Capsule) CastRay(r Ray) bool {
	dirNorm := r.Direction.Norm()
	if dirNorm == 0 {
		return false
	}
	// No point of the capsule lies beyond this parameter along the ray.
	reach := (r.Origin.Sub(c.SegA).Norm() + c.SegB.Sub(c.SegA).Norm() + c.Radius) / dirNorm
	tMax := math.Min(r.MaxDistance, reach)
	if tMax < r.MinDistance {
		tMax = r.MinDistance
	}
	start := r.PointAt(r.MinDistance)
	end := r.PointAt(tMax)
	s, t := closestPointsSegmentSegment(start, end, c.SegA, c.SegB)
	onRay := start.Add(end.Sub(start).Mul(s))
	onAxis := c.SegA.Add(c.SegB.Sub(c.SegA).Mul(t))
	return onRay.Sub(onAxis).Norm2() <= c.Radius*c.Radius
}

// DistanceQuery reports whether the surface of the capsule is within maxDistance of p.
func (c *Capsule) DistanceQuery(p r3.Vector, maxDistance float64) bool {
	return p.Sub(closestPointSegmentPoint(c.SegA, c.SegB, p)).Norm()-c.Radius <= maxDistance
}
