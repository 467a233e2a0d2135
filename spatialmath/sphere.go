package spatialmath

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"
)

// Sphere is a ball in its local frame.
type Sphere struct {
	Center r3.Vector
	Radius float64
}

// NewSphere instantiates a new Sphere. The radius must be positive.
func NewSphere(center r3.Vector, radius float64) (*Sphere, error) {
	if radius <= 0 || math.IsNaN(radius) {
		return nil, newBadGeometryDimensionsError(&Sphere{})
	}
	return &Sphere{Center: center, Radius: radius}, nil
}

// String returns a human readable string that represents the sphere.
func (s *Sphere) String() string {
	return fmt.Sprintf("Type: Sphere | Position: X:%.1f, Y:%.1f, Z:%.1f | Radius: %.1f",
		s.Center.X, s.Center.Y, s.Center.Z, s.Radius)
}

// CalculateBounds returns the transformed center padded by the radius.
func (s *Sphere) CalculateBounds(t Transform) AABB {
	c := t.Apply(s.Center)
	r := r3.Vector{X: s.Radius, Y: s.Radius, Z: s.Radius}
	return AABB{Lower: c.Sub(r), Upper: c.Add(r)}
}

// CastRay reports whether the ray segment passes through the sphere,
// per Ericson, Real-Time Collision Detection, 5.3.2.
func (s *Sphere) CastRay(r Ray) bool {
	m := r.Origin.Sub(s.Center)
	a := r.Direction.Norm2()
	if a == 0 {
		return false
	}
	b := m.Dot(r.Direction)
	c := m.Norm2() - s.Radius*s.Radius
	// Origin outside the sphere and pointing away from it.
	if c > 0 && b > 0 {
		return false
	}
	disc := b*b - a*c
	if disc < 0 {
		return false
	}
	sq := math.Sqrt(disc)
	tEnter := (-b - sq) / a
	tExit := (-b + sq) / a
	return math.Max(tEnter, r.MinDistance) <= math.Min(tExit, r.MaxDistance)
}

// DistanceQuery reports whether the surface of the sphere is within maxDistance of p.
func (s *Sphere) DistanceQuery(p r3.Vector, maxDistance float64) bool {
	return p.Sub(s.Center).Norm()-s.Radius <= maxDistance
}
