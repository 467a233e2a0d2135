package spatialmath

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"
)

// Transform is a rigid transform: a rotation by a unit quaternion followed by a translation.
type Transform struct {
	Translation r3.Vector
	Rotation    quat.Number
}

// IdentityTransform returns the transform that leaves every point in place.
func IdentityTransform() Transform {
	return Transform{Rotation: quat.Number{Real: 1}}
}

// NewTransform returns a transform with the given translation and rotation. The rotation is normalized,
// and a zero quaternion is treated as no rotation.
func NewTransform(translation r3.Vector, rotation quat.Number) Transform {
	return Transform{Translation: translation, Rotation: normalizeQuat(rotation)}
}

// NewTranslation returns a pure translation.
func NewTranslation(translation r3.Vector) Transform {
	return Transform{Translation: translation, Rotation: quat.Number{Real: 1}}
}

// NewRotationEuler returns a pure rotation from roll (x), pitch (y) and yaw (z) in radians,
// applied in z, y, x order.
func NewRotationEuler(roll, pitch, yaw float64) Transform {
	cr, sr := math.Cos(roll/2), math.Sin(roll/2)
	cp, sp := math.Cos(pitch/2), math.Sin(pitch/2)
	cy, sy := math.Cos(yaw/2), math.Sin(yaw/2)
	q := quat.Number{
		Real: cr*cp*cy + sr*sp*sy,
		Imag: sr*cp*cy - cr*sp*sy,
		Jmag: cr*sp*cy + sr*cp*sy,
		Kmag: cr*cp*sy - sr*sp*cy,
	}
	return Transform{Rotation: normalizeQuat(q)}
}

// NewRotationAxisAngle returns a pure rotation of theta radians about axis. A zero axis yields the identity.
func NewRotationAxisAngle(axis r3.Vector, theta float64) Transform {
	norm := axis.Norm()
	if norm == 0 {
		return IdentityTransform()
	}
	s := math.Sin(theta/2) / norm
	return Transform{Rotation: quat.Number{
		Real: math.Cos(theta / 2),
		Imag: axis.X * s,
		Jmag: axis.Y * s,
		Kmag: axis.Z * s,
	}}
}

// Rotate applies only the rotation part of the transform to v.
func (t Transform) Rotate(v r3.Vector) r3.Vector {
	p := quat.Number{Imag: v.X, Jmag: v.Y, Kmag: v.Z}
	r := quat.Mul(quat.Mul(t.Rotation, p), quat.Conj(t.Rotation))
	return r3.Vector{X: r.Imag, Y: r.Jmag, Z: r.Kmag}
}

// Apply maps a point through the transform.
func (t Transform) Apply(p r3.Vector) r3.Vector {
	return t.Rotate(p).Add(t.Translation)
}

// Inverse returns the transform that undoes t.
func (t Transform) Inverse() Transform {
	inv := Transform{Rotation: quat.Conj(t.Rotation)}
	inv.Translation = inv.Rotate(t.Translation).Mul(-1)
	return inv
}

// IsIdentity reports whether the transform leaves every point in place.
func (t Transform) IsIdentity() bool {
	return t.Translation == (r3.Vector{}) && t.Rotation == quat.Number{Real: 1}
}

// Compose returns the transform that applies b and then a.
func Compose(a, b Transform) Transform {
	return Transform{
		Translation: a.Apply(b.Translation),
		Rotation:    normalizeQuat(quat.Mul(a.Rotation, b.Rotation)),
	}
}

// String returns a human readable string that represents the transform.
func (t Transform) String() string {
	return fmt.Sprintf("Transform | Translation: X:%.3f, Y:%.3f, Z:%.3f | Rotation: W:%.3f, X:%.3f, Y:%.3f, Z:%.3f",
		t.Translation.X, t.Translation.Y, t.Translation.Z,
		t.Rotation.Real, t.Rotation.Imag, t.Rotation.Jmag, t.Rotation.Kmag)
}

func normalizeQuat(q quat.Number) quat.Number {
	norm := quat.Abs(q)
	if norm == 0 {
		return quat.Number{Real: 1}
	}
	return quat.Scale(1/norm, q)
}
