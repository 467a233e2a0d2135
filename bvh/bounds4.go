package bvh

import (
	"math"

	"github.com/golang/geo/r3"

	"go.viam.com/broadphase/spatialmath"
)

// Bounds4 holds four boxes transposed into per-axis lanes so a ray can be tested against all of
// them in one pass. An internal node keeps its grandchildren here: slot 2*i+j is child i's child j.
type Bounds4 struct {
	Lx, Hx [4]float64
	Ly, Hy [4]float64
	Lz, Hz [4]float64
}

// EmptyBounds4 returns a bundle whose four slots hold the empty box.
func EmptyBounds4() Bounds4 {
	var b Bounds4
	for i := 0; i < 4; i++ {
		b.Set(i, spatialmath.EmptyAABB())
	}
	return b
}

// Set stores box in slot i.
func (b *Bounds4) Set(i int, box spatialmath.AABB) {
	b.Lx[i], b.Hx[i] = box.Lower.X, box.Upper.X
	b.Ly[i], b.Hy[i] = box.Lower.Y, box.Upper.Y
	b.Lz[i], b.Hz[i] = box.Lower.Z, box.Upper.Z
}

// Get returns the box in slot i.
func (b *Bounds4) Get(i int) spatialmath.AABB {
	return spatialmath.AABB{
		Lower: r3.Vector{X: b.Lx[i], Y: b.Ly[i], Z: b.Lz[i]},
		Upper: r3.Vector{X: b.Hx[i], Y: b.Hy[i], Z: b.Hz[i]},
	}
}

// RayCast runs the slab test on every slot. Empty slots never hit.
func (b *Bounds4) RayCast(origin, invDir r3.Vector, tMin, tMax float64) [4]bool {
	var near, far [4]float64
	for i := 0; i < 4; i++ {
		near[i], far[i] = tMin, tMax
	}
	lanes := [3]struct {
		lo, hi    *[4]float64
		orig, inv float64
	}{
		{&b.Lx, &b.Hx, origin.X, invDir.X},
		{&b.Ly, &b.Hy, origin.Y, invDir.Y},
		{&b.Lz, &b.Hz, origin.Z, invDir.Z},
	}
	var hits [4]bool
	for i := 0; i < 4; i++ {
		empty := false
		for _, lane := range lanes {
			if lane.lo[i] > lane.hi[i] {
				empty = true
				break
			}
			t0, t1 := spatialmath.Slab(lane.lo[i], lane.hi[i], lane.orig, lane.inv)
			near[i] = math.Max(near[i], t0)
			far[i] = math.Min(far[i], t1)
		}
		hits[i] = !empty && near[i] <= far[i]
	}
	return hits
}
