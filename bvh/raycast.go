package bvh

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"go.viam.com/broadphase/spatialmath"
)

// TraversalStackSize is the number of pending nodes a query can hold. A rotated tree stays far below it.
const TraversalStackSize = 256

// RayCastInput is a ray query. Leaves whose layer shares a bit with LayerMask are skipped;
// the zero mask matches every leaf.
type RayCastInput struct {
	Ray       spatialmath.Ray
	LayerMask uint32
}

// traversalStack is a fixed size stack of node indices.
type traversalStack struct {
	items [TraversalStackSize]NodeIndex
	top   int
}

func (s *traversalStack) push(i NodeIndex) error {
	if s.top == TraversalStackSize {
		return ErrTraversalStackExhausted
	}
	s.items[s.top] = i
	s.top++
	return nil
}

func (s *traversalStack) pop() NodeIndex {
	s.top--
	return s.items[s.top]
}

func (s *traversalStack) empty() bool {
	return s.top == 0
}

// RayCast appends to results the handles of every leaf whose shape the ray touches, and returns the
// extended slice. The order of results is unspecified. On error results is returned unchanged.
func (t *Tree) RayCast(in RayCastInput, results []LeafID) ([]LeafID, error) {
	ray, err := in.Ray.Normalized()
	if err != nil {
		return results, err
	}
	if t.root == InvalidNode {
		return results, nil
	}
	q := rayQuery{tree: t, ray: ray, invDir: ray.InverseDirection(), mask: in.LayerMask, results: results}

	if t.cfg.Traversal == TraversalPerNode {
		err = q.perNode()
	} else {
		err = q.grandchildren()
	}
	if err != nil {
		return results, errors.Wrapf(err, "ray cast from %v", ray.Origin)
	}
	return q.results, nil
}

type rayQuery struct {
	tree    *Tree
	ray     spatialmath.Ray
	invDir  r3.Vector
	mask    uint32
	results []LeafID
	stack   traversalStack
}

func (q *rayQuery) testLeaf(i NodeIndex) {
	n := q.tree.node(i)
	if n.entry.excludedBy(q.mask) {
		return
	}
	if n.entry.Shape.CastRay(q.ray.TransformedBy(n.inverse)) {
		q.results = append(q.results, q.tree.leafID(i))
	}
}

func (q *rayQuery) perNode() error {
	if err := q.stack.push(q.tree.root); err != nil {
		return err
	}
	for !q.stack.empty() {
		i := q.stack.pop()
		n := q.tree.node(i)
		if !n.box.IntersectRay(q.ray.Origin, q.invDir, q.ray.MinDistance, q.ray.MaxDistance) {
			continue
		}
		if n.kind == NodeLeaf {
			q.testLeaf(i)
			continue
		}
		if err := q.stack.push(n.child1); err != nil {
			return err
		}
		if err := q.stack.push(n.child2); err != nil {
			return err
		}
	}
	return nil
}

// grandchildren visits internal nodes only. Leaf children are tested directly, and the four grandchildren
// boxes are tested at once from the node's bundle.
func (q *rayQuery) grandchildren() error {
	root := q.tree.node(q.tree.root)
	if root.kind == NodeLeaf {
		q.testLeaf(q.tree.root)
		return nil
	}
	if err := q.stack.push(q.tree.root); err != nil {
		return err
	}
	for !q.stack.empty() {
		n := q.tree.node(q.stack.pop())
		c1, c2 := q.tree.node(n.child1), q.tree.node(n.child2)
		if c1.kind == NodeLeaf {
			q.testLeaf(n.child1)
		}
		if c2.kind == NodeLeaf {
			q.testLeaf(n.child2)
		}

		hits := n.grandchildren.RayCast(q.ray.Origin, q.invDir, q.ray.MinDistance, q.ray.MaxDistance)
		slots := [4]NodeIndex{c1.child1, c1.child2, c2.child1, c2.child2}
		for k, hit := range hits {
			if !hit {
				continue
			}
			if q.tree.node(slots[k]).kind == NodeLeaf {
				q.testLeaf(slots[k])
			} else if err := q.stack.push(slots[k]); err != nil {
				return err
			}
		}
	}
	return nil
}
