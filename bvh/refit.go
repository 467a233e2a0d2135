package bvh

// refitParents walks from start to the root. Each node gets the union of its children's boxes and a
// fresh grandchildren bundle, and is then offered to the rotation balancer before the walk moves on.
func (t *Tree) refitParents(start NodeIndex) {
	for i := start; i != InvalidNode; i = t.node(i).parent {
		t.refitNode(i)
		t.rotate(i)
	}
}

func (t *Tree) refitNode(i NodeIndex) {
	n := t.node(i)
	n.box = t.node(n.child1).box.Union(t.node(n.child2).box)
	t.rebuildGrandchildren(i)
}

// rebuildGrandchildren refreshes the bundle of an internal node. A leaf child fills both of its slots
// with the empty box; the leaf itself is tested directly during traversal.
func (t *Tree) rebuildGrandchildren(i NodeIndex) {
	n := t.node(i)
	n.grandchildren = t.grandchildrenOf(n)
}

func (t *Tree) grandchildrenOf(n *node) Bounds4 {
	b := EmptyBounds4()
	for k, child := range [2]NodeIndex{n.child1, n.child2} {
		if c := t.node(child); c.kind == NodeInternal {
			b.Set(2*k, t.node(c.child1).box)
			b.Set(2*k+1, t.node(c.child2).box)
		}
	}
	return b
}
