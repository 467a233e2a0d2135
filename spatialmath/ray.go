package spatialmath

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

// Ray is a segment of a ray: the points Origin + t*Direction for t in [MinDistance, MaxDistance].
type Ray struct {
	Origin      r3.Vector
	Direction   r3.Vector
	MinDistance float64
	MaxDistance float64
}

// Normalized returns a copy of the ray with a unit direction, so distances are measured in world units.
func (r Ray) Normalized() (Ray, error) {
	norm := r.Direction.Norm()
	if norm == 0 || math.IsNaN(norm) || math.IsInf(norm, 0) {
		return Ray{}, errors.Wrap(ErrDegenerateRay, "direction must be finite and non-zero")
	}
	if math.IsNaN(r.MinDistance) || math.IsNaN(r.MaxDistance) || r.MinDistance < 0 || r.MinDistance > r.MaxDistance {
		return Ray{}, errors.Wrapf(ErrDegenerateRay, "invalid distance range [%v, %v]", r.MinDistance, r.MaxDistance)
	}
	r.Direction = r.Direction.Mul(1 / norm)
	return r, nil
}

// InverseDirection returns the componentwise reciprocal of the direction. Zero components map to infinities.
func (r Ray) InverseDirection() r3.Vector {
	return r3.Vector{X: 1 / r.Direction.X, Y: 1 / r.Direction.Y, Z: 1 / r.Direction.Z}
}

// PointAt returns the point at parameter t along the ray.
func (r Ray) PointAt(t float64) r3.Vector {
	return r.Origin.Add(r.Direction.Mul(t))
}

// TransformedBy maps the ray through t. The distance range is preserved since t is rigid.
func (r Ray) TransformedBy(t Transform) Ray {
	r.Origin = t.Apply(r.Origin)
	r.Direction = t.Rotate(r.Direction)
	return r
}
