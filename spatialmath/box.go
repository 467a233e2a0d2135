package spatialmath

import (
	"fmt"

	"github.com/golang/geo/r3"
)

// Ordered list of box vertices.
var boxVertices = [8]r3.Vector{
	{X: 1, Y: 1, Z: 1},
	{X: 1, Y: 1, Z: -1},
	{X: 1, Y: -1, Z: 1},
	{X: 1, Y: -1, Z: -1},
	{X: -1, Y: 1, Z: 1},
	{X: -1, Y: 1, Z: -1},
	{X: -1, Y: -1, Z: 1},
	{X: -1, Y: -1, Z: -1},
}

// Box is an axis aligned box in its local frame, defined by its center and half size.
type Box struct {
	Center   r3.Vector
	HalfSize r3.Vector
}

// NewBox instantiates a new Box from its center and full dimensions.
func NewBox(center, dims r3.Vector) (*Box, error) {
	// Negative dimensions not allowed. Zero dimensions are allowed for degenerate boxes, etc.
	if dims.X < 0 || dims.Y < 0 || dims.Z < 0 {
		return nil, newBadGeometryDimensionsError(&Box{})
	}
	return &Box{Center: center, HalfSize: dims.Mul(0.5)}, nil
}

// String returns a human readable string that represents the box.
func (b *Box) String() string {
	return fmt.Sprintf("Type: Box | Position: X:%.1f, Y:%.1f, Z:%.1f | Dims: X:%.1f, Y:%.1f, Z:%.1f",
		b.Center.X, b.Center.Y, b.Center.Z, 2*b.HalfSize.X, 2*b.HalfSize.Y, 2*b.HalfSize.Z)
}

// LocalBounds returns the box itself as an AABB.
func (b *Box) LocalBounds() AABB {
	return AABB{Lower: b.Center.Sub(b.HalfSize), Upper: b.Center.Add(b.HalfSize)}
}

// CalculateBounds returns the AABB of the eight transformed vertices.
func (b *Box) CalculateBounds(t Transform) AABB {
	if t.Rotation.Imag == 0 && t.Rotation.Jmag == 0 && t.Rotation.Kmag == 0 {
		local := b.LocalBounds()
		return AABB{Lower: local.Lower.Add(t.Translation), Upper: local.Upper.Add(t.Translation)}
	}
	bounds := EmptyAABB()
	for _, v := range boxVertices {
		corner := b.Center.Add(r3.Vector{X: v.X * b.HalfSize.X, Y: v.Y * b.HalfSize.Y, Z: v.Z * b.HalfSize.Z})
		p := t.Apply(corner)
		bounds = bounds.Union(AABB{Lower: p, Upper: p})
	}
	return bounds
}

// CastRay runs the slab test against the box within the ray's distance range.
func (b *Box) CastRay(r Ray) bool {
	return b.LocalBounds().IntersectRay(r.Origin, r.InverseDirection(), r.MinDistance, r.MaxDistance)
}

// DistanceQuery reports whether the nearest point of the box is within maxDistance of p.
func (b *Box) DistanceQuery(p r3.Vector, maxDistance float64) bool {
	return b.LocalBounds().DistanceSquaredToPoint(p) <= maxDistance*maxDistance
}
