package spatialmath

import "github.com/golang/geo/r3"

// Shape is the contract between the broad phase and the geometry stored in its leaves.
// CastRay and DistanceQuery receive their inputs already mapped into the shape's local space.
type Shape interface {
	// CalculateBounds returns the world space bounds of the shape placed by t.
	CalculateBounds(t Transform) AABB
	// CastRay reports whether the ray segment touches the shape.
	CastRay(r Ray) bool
	// DistanceQuery reports whether the shape is within maxDistance of p.
	DistanceQuery(p r3.Vector, maxDistance float64) bool
}
