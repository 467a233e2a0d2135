package bvh

import (
	"go.viam.com/broadphase/utils"
)

// RayCastBatch runs independent ray casts concurrently and returns their results in input order.
// The tree must not be mutated until it returns.
func (t *Tree) RayCastBatch(inputs []RayCastInput) ([][]LeafID, error) {
	out := make([][]LeafID, len(inputs))
	err := utils.RunIndexedInParallel(len(inputs), func(i int) error {
		var err error
		out[i], err = t.RayCast(inputs[i], nil)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DistanceQueryBatch runs independent distance queries concurrently and returns their results in input order.
// The tree must not be mutated until it returns.
func (t *Tree) DistanceQueryBatch(inputs []DistanceQueryInput) ([][]LeafID, error) {
	out := make([][]LeafID, len(inputs))
	err := utils.RunIndexedInParallel(len(inputs), func(i int) error {
		var err error
		out[i], err = t.DistanceQuery(inputs[i], nil)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
