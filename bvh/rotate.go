package bvh

// rotate evaluates the four rotations at the grandparent g of node i. Each swaps a child of one of g's
// children with g's other child, and is taken when the union of the remaining sibling and the node
// moving down is smaller than the box it replaces. The first improving rotation is applied.
func (t *Tree) rotate(i NodeIndex) {
	parent := t.node(i).parent
	if parent == InvalidNode {
		return
	}
	grandParent := t.node(parent).parent
	if grandParent == InvalidNode {
		return
	}

	g := t.node(grandParent)
	for _, pair := range [2][2]NodeIndex{{g.child1, g.child2}, {g.child2, g.child1}} {
		fromParent, toParent := pair[0], pair[1]
		fp := t.node(fromParent)
		if fp.kind != NodeInternal {
			continue
		}
		toBox := t.node(toParent).box
		for _, candidate := range [2][2]NodeIndex{{fp.child1, fp.child2}, {fp.child2, fp.child1}} {
			from, sibling := candidate[0], candidate[1]
			if t.node(sibling).box.Union(toBox).Area() < fp.box.Area() {
				t.swap(grandParent, fromParent, from, toParent)
				return
			}
		}
	}
}

// swap exchanges from, a child of fromParent, with toParent, the other child of grandParent.
func (t *Tree) swap(grandParent, fromParent, from, toParent NodeIndex) {
	t.replaceChild(fromParent, from, toParent)
	t.replaceChild(grandParent, toParent, from)
	t.node(from).parent = grandParent
	t.node(toParent).parent = fromParent

	fp := t.node(fromParent)
	fp.box = t.node(fp.child1).box.Union(t.node(fp.child2).box)
	t.rebuildGrandchildren(fromParent)
	t.rebuildGrandchildren(grandParent)
	t.rotations++
}
