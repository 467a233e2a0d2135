package spatialmath

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"
)

// AABB is an axis aligned bounding box described by its lower and upper corners.
type AABB struct {
	Lower r3.Vector
	Upper r3.Vector
}

// NewAABB returns the smallest box containing both corners, in any order.
func NewAABB(a, b r3.Vector) AABB {
	return AABB{
		Lower: r3.Vector{X: math.Min(a.X, b.X), Y: math.Min(a.Y, b.Y), Z: math.Min(a.Z, b.Z)},
		Upper: r3.Vector{X: math.Max(a.X, b.X), Y: math.Max(a.Y, b.Y), Z: math.Max(a.Z, b.Z)},
	}
}

// EmptyAABB returns an inverted box. It contains nothing, intersects nothing, and is the identity of Union.
func EmptyAABB() AABB {
	inf := math.Inf(1)
	return AABB{
		Lower: r3.Vector{X: inf, Y: inf, Z: inf},
		Upper: r3.Vector{X: -inf, Y: -inf, Z: -inf},
	}
}

// IsEmpty reports whether the box is inverted along any axis.
func (a AABB) IsEmpty() bool {
	return a.Lower.X > a.Upper.X || a.Lower.Y > a.Upper.Y || a.Lower.Z > a.Upper.Z
}

// Union returns the smallest box containing both boxes.
func (a AABB) Union(other AABB) AABB {
	return AABB{
		Lower: r3.Vector{X: math.Min(a.Lower.X, other.Lower.X), Y: math.Min(a.Lower.Y, other.Lower.Y), Z: math.Min(a.Lower.Z, other.Lower.Z)},
		Upper: r3.Vector{X: math.Max(a.Upper.X, other.Upper.X), Y: math.Max(a.Upper.Y, other.Upper.Y), Z: math.Max(a.Upper.Z, other.Upper.Z)},
	}
}

// Area returns the surface area of the box. An empty box has zero area.
func (a AABB) Area() float64 {
	if a.IsEmpty() {
		return 0
	}
	d := a.Upper.Sub(a.Lower)
	return 2 * (d.X*d.Y + d.Y*d.Z + d.Z*d.X)
}

// Expand grows the box by margin on every side.
func (a AABB) Expand(margin float64) AABB {
	m := r3.Vector{X: margin, Y: margin, Z: margin}
	return AABB{Lower: a.Lower.Sub(m), Upper: a.Upper.Add(m)}
}

// Center returns the midpoint of the box.
func (a AABB) Center() r3.Vector {
	return a.Lower.Add(a.Upper).Mul(0.5)
}

// Size returns the extent of the box along each axis.
func (a AABB) Size() r3.Vector {
	return a.Upper.Sub(a.Lower)
}

// Contains reports whether other lies entirely within the box, boundaries included.
func (a AABB) Contains(other AABB) bool {
	return a.Lower.X <= other.Lower.X && a.Lower.Y <= other.Lower.Y && a.Lower.Z <= other.Lower.Z &&
		other.Upper.X <= a.Upper.X && other.Upper.Y <= a.Upper.Y && other.Upper.Z <= a.Upper.Z
}

// ClosestPoint clamps p into the box.
func (a AABB) ClosestPoint(p r3.Vector) r3.Vector {
	return r3.Vector{
		X: math.Max(math.Min(p.X, a.Upper.X), a.Lower.X),
		Y: math.Max(math.Min(p.Y, a.Upper.Y), a.Lower.Y),
		Z: math.Max(math.Min(p.Z, a.Upper.Z), a.Lower.Z),
	}
}

// DistanceSquaredToPoint returns the squared distance from p to the nearest point of the box,
// which is zero for points inside it.
func (a AABB) DistanceSquaredToPoint(p r3.Vector) float64 {
	return a.ClosestPoint(p).Sub(p).Norm2()
}

// IntersectRay runs the slab test of a ray against the box. invDir is the componentwise reciprocal of
// the ray direction; tMin and tMax bound the accepted ray parameters. An empty box is never hit.
func (a AABB) IntersectRay(origin, invDir r3.Vector, tMin, tMax float64) bool {
	if a.IsEmpty() {
		return false
	}
	near, far := Slab(a.Lower.X, a.Upper.X, origin.X, invDir.X)
	tMin, tMax = math.Max(tMin, near), math.Min(tMax, far)
	near, far = Slab(a.Lower.Y, a.Upper.Y, origin.Y, invDir.Y)
	tMin, tMax = math.Max(tMin, near), math.Min(tMax, far)
	near, far = Slab(a.Lower.Z, a.Upper.Z, origin.Z, invDir.Z)
	tMin, tMax = math.Max(tMin, near), math.Min(tMax, far)
	return tMin <= tMax
}

// Slab returns the entry and exit ray parameters for one axis of a box.
// A ray parallel to the axis is either always inside the slab or never.
func Slab(lower, upper, origin, invDir float64) (float64, float64) {
	if math.IsInf(invDir, 0) {
		if lower <= origin && origin <= upper {
			return math.Inf(-1), math.Inf(1)
		}
		return math.Inf(1), math.Inf(-1)
	}
	t0 := (lower - origin) * invDir
	t1 := (upper - origin) * invDir
	if t0 > t1 {
		return t1, t0
	}
	return t0, t1
}

// AABBAlmostEqual compares two boxes corner by corner within epsilon.
func AABBAlmostEqual(a, b AABB, epsilon float64) bool {
	return R3VectorAlmostEqual(a.Lower, b.Lower, epsilon) && R3VectorAlmostEqual(a.Upper, b.Upper, epsilon)
}

// String returns a human readable string that represents the box.
func (a AABB) String() string {
	return fmt.Sprintf("AABB | Lower: X:%.3f, Y:%.3f, Z:%.3f | Upper: X:%.3f, Y:%.3f, Z:%.3f",
		a.Lower.X, a.Lower.Y, a.Lower.Z, a.Upper.X, a.Upper.Y, a.Upper.Z)
}
