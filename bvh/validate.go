package bvh

import (
	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// Validate checks the structure of the whole tree and returns every violation found: parent and child
// links, node kinds, tight union boxes, grandchildren bundles, and that every live node is reachable.
func (t *Tree) Validate() error {
	var errs error
	if t.root == InvalidNode {
		if t.nodes.liveCount() != 0 {
			errs = multierr.Append(errs, errors.Errorf("empty tree holds %d live nodes", t.nodes.liveCount()))
		}
		return errs
	}
	if !t.nodes.isLive(int32(t.root)) {
		return errors.Errorf("root %d is not a live node", t.root)
	}
	if p := t.node(t.root).parent; p != InvalidNode {
		errs = multierr.Append(errs, errors.Errorf("root %d has parent %d", t.root, p))
	}

	reachable := 0
	t.walk(func(i NodeIndex, n *node, _ int) {
		reachable++
		switch n.kind {
		case NodeLeaf:
			if n.child1 != InvalidNode || n.child2 != InvalidNode {
				errs = multierr.Append(errs, errors.Errorf("leaf %d has children %d, %d", i, n.child1, n.child2))
			}
		case NodeInternal:
			errs = multierr.Append(errs, t.validateInternal(i, n))
		default:
			errs = multierr.Append(errs, errors.Errorf("node %d reachable from the root has kind %v", i, n.kind))
		}
	})
	if live := t.nodes.liveCount(); reachable != live {
		errs = multierr.Append(errs, errors.Errorf("%d nodes reachable from the root but %d live", reachable, live))
	}
	return errs
}

func (t *Tree) validateInternal(i NodeIndex, n *node) error {
	var errs error
	children := [2]NodeIndex{n.child1, n.child2}
	for _, child := range children {
		if !t.nodes.isLive(int32(child)) {
			return errors.Errorf("internal node %d has dead child %d", i, child)
		}
		if p := t.node(child).parent; p != i {
			errs = multierr.Append(errs, errors.Errorf("node %d is a child of %d but names %d as parent", child, i, p))
		}
	}
	if n.child1 == n.child2 {
		errs = multierr.Append(errs, errors.Errorf("internal node %d has the same child %d twice", i, n.child1))
	}

	c1, c2 := t.node(n.child1), t.node(n.child2)
	if union := c1.box.Union(c2.box); n.box != union {
		errs = multierr.Append(errs, errors.Errorf("node %d box %v is not the union of its children %v", i, n.box, union))
	}

	if n.grandchildren != t.grandchildrenOf(n) {
		errs = multierr.Append(errs, errors.Errorf("node %d grandchildren bundle is stale", i))
	}
	return errs
}
