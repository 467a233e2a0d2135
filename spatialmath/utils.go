package spatialmath

import (
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"

	"go.viam.com/broadphase/utils"
)

// R3VectorAlmostEqual compares two r3 vectors component by component within epsilon.
func R3VectorAlmostEqual(a, b r3.Vector, epsilon float64) bool {
	return utils.Float64AlmostEqual(a.X, b.X, epsilon) &&
		utils.Float64AlmostEqual(a.Y, b.Y, epsilon) &&
		utils.Float64AlmostEqual(a.Z, b.Z, epsilon)
}

// QuaternionAlmostEqual is an equality test for all the float components of a quaternion. Quaternions have double coverage,
// q and -q describe the same rotation, and this function does not account for that.
func QuaternionAlmostEqual(a, b quat.Number, epsilon float64) bool {
	return utils.Float64AlmostEqual(a.Imag, b.Imag, epsilon) &&
		utils.Float64AlmostEqual(a.Jmag, b.Jmag, epsilon) &&
		utils.Float64AlmostEqual(a.Kmag, b.Kmag, epsilon) &&
		utils.Float64AlmostEqual(a.Real, b.Real, epsilon)
}

func closestPointSegmentPoint(segA, segB, p r3.Vector) r3.Vector {
	ab := segB.Sub(segA)
	denom := ab.Norm2()
	if denom == 0 {
		return segA
	}
	t := utils.Clamp(p.Sub(segA).Dot(ab)/denom, 0, 1)
	return segA.Add(ab.Mul(t))
}

// closestPointsSegmentSegment returns the parameters s and t along segments p1q1 and p2q2 of their closest points,
// per Ericson, Real-Time Collision Detection, 5.1.9.
func closestPointsSegmentSegment(p1, q1, p2, q2 r3.Vector) (float64, float64) {
	const eps = 1e-12
	d1 := q1.Sub(p1)
	d2 := q2.Sub(p2)
	r := p1.Sub(p2)
	a := d1.Norm2()
	e := d2.Norm2()
	f := d2.Dot(r)

	if a <= eps && e <= eps {
		return 0, 0
	}
	var s, t float64
	if a <= eps {
		return 0, utils.Clamp(f/e, 0, 1)
	}
	c := d1.Dot(r)
	if e <= eps {
		return utils.Clamp(-c/a, 0, 1), 0
	}
	b := d1.Dot(d2)
	denom := a*e - b*b
	if denom != 0 {
		s = utils.Clamp((b*f-c*e)/denom, 0, 1)
	}
	t = (b*s + f) / e
	if t < 0 {
		t = 0
		s = utils.Clamp(-c/a, 0, 1)
	} else if t > 1 {
		t = 1
		s = utils.Clamp((b-c)/a, 0, 1)
	}
	return s, t
}
