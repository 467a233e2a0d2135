package bvh

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"go.viam.com/broadphase/utils"
)

// DistanceQueryInput asks for every leaf within MaxDistance of Origin. Leaves whose layer shares a
// bit with LayerMask are skipped.
type DistanceQueryInput struct {
	Origin      r3.Vector
	MaxDistance float64
	LayerMask   uint32
}

// DistanceQuery appends to results the handles of every leaf whose shape lies within MaxDistance of
// Origin, boundary included, and returns the extended slice. On error results is returned unchanged.
func (t *Tree) DistanceQuery(in DistanceQueryInput, results []LeafID) ([]LeafID, error) {
	if math.IsNaN(in.MaxDistance) || in.MaxDistance < 0 {
		return results, errors.Wrapf(ErrDegenerateQuery, "max distance %v", in.MaxDistance)
	}
	if !utils.IsFinite(in.Origin.X) || !utils.IsFinite(in.Origin.Y) || !utils.IsFinite(in.Origin.Z) {
		return results, errors.Wrapf(ErrDegenerateQuery, "origin %v", in.Origin)
	}
	if t.root == InvalidNode {
		return results, nil
	}

	maxDistanceSq := in.MaxDistance * in.MaxDistance
	out := results
	var stack traversalStack
	if err := stack.push(t.root); err != nil {
		return results, err
	}
	for !stack.empty() {
		i := stack.pop()
		n := t.node(i)
		if n.box.DistanceSquaredToPoint(in.Origin) > maxDistanceSq {
			continue
		}
		if n.kind == NodeLeaf {
			if !n.entry.excludedBy(in.LayerMask) && n.entry.Shape.DistanceQuery(n.inverse.Apply(in.Origin), in.MaxDistance) {
				out = append(out, t.leafID(i))
			}
			continue
		}
		if err := stack.push(n.child1); err != nil {
			return results, errors.Wrapf(err, "distance query at %v", in.Origin)
		}
		if err := stack.push(n.child2); err != nil {
			return results, errors.Wrapf(err, "distance query at %v", in.Origin)
		}
	}
	return out, nil
}
