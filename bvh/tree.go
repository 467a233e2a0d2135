// Package bvh implements a dynamic bounding volume hierarchy: a binary tree of axis aligned boxes that
// supports incremental insertion, removal and reinsertion of moving entries, and ray and distance queries.
//
// Insertion places a leaf next to the sibling that minimizes the total surface area of the tree, found by
// a best first branch and bound search. Every mutation refits the boxes on the path to the root and applies
// local tree rotations along the way to keep the tree shallow.
//
// A Tree has no internal locking. It allows one writer, or any number of concurrent queries while no
// writer is active.
package bvh

import (
	"fmt"
	"math"

	"github.com/pkg/errors"

	"go.viam.com/broadphase/logging"
	"go.viam.com/broadphase/spatialmath"
	"go.viam.com/broadphase/utils"
)

// Tree is a dynamic bounding volume hierarchy over shapes.
type Tree struct {
	cfg    Config
	logger logging.Logger

	nodes  *arena[node]
	search *searchQueue
	root   NodeIndex

	rotations uint64
}

// NewTree returns an empty tree. Unset config fields take their defaults and a nil logger discards output.
func NewTree(cfg Config, logger logging.Logger) (*Tree, error) {
	if err := cfg.Validate("tree"); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()
	if logger == nil {
		logger = logging.NewBlankLogger("bvh")
	}
	nodes := newArena[node](cfg.InitialCapacity)
	return &Tree{
		cfg:    cfg,
		logger: logger,
		nodes:  nodes,
		search: newSearchQueue(nodes.len()),
	}, nil
}

// InsertOption customizes a leaf passed to InsertLeaf.
type InsertOption func(*Entry)

// WithTransform places the shape in the world with t. The default is the identity.
func WithTransform(t spatialmath.Transform) InsertOption {
	return func(e *Entry) {
		e.Transform = t
	}
}

// WithLayer sets the layer bits of the leaf. The default is AllLayers.
func WithLayer(layer uint32) InsertOption {
	return func(e *Entry) {
		e.Layer = layer
	}
}

// InsertLeaf adds a shape to the tree and returns its handle.
func (t *Tree) InsertLeaf(shape spatialmath.Shape, opts ...InsertOption) (LeafID, error) {
	e := Entry{Shape: shape, Transform: spatialmath.IdentityTransform(), Layer: AllLayers}
	for _, opt := range opts {
		opt(&e)
	}
	return t.InsertEntry(e)
}

// InsertEntry adds a fully specified entry to the tree and returns its handle.
// A leaf with layer zero is never excluded by a query mask.
func (t *Tree) InsertEntry(e Entry) (LeafID, error) {
	leaf, err := t.newLeaf(e)
	if err != nil {
		return LeafID{}, err
	}
	idx := t.allocate(leaf)
	t.graft(idx)
	return t.leafID(idx), nil
}

// RemoveLeaf deletes a leaf. Its handle, and every copy of it, becomes stale.
func (t *Tree) RemoveLeaf(id LeafID) error {
	if err := t.checkLeaf(id); err != nil {
		return err
	}
	t.detach(id.Index)
	t.free(id.Index)
	return nil
}

// Reinsert replaces the shape, transform and layer of a leaf and moves it to its new place in the tree.
// The handle stays valid: the leaf keeps its slot and generation.
func (t *Tree) Reinsert(id LeafID, shape spatialmath.Shape, transform spatialmath.Transform, layer uint32) error {
	if err := t.checkLeaf(id); err != nil {
		return err
	}
	leaf, err := t.newLeaf(Entry{Shape: shape, Transform: transform, Layer: layer})
	if err != nil {
		return err
	}
	t.detach(id.Index)
	n := t.node(id.Index)
	n.entry, n.inverse, n.box = leaf.entry, leaf.inverse, leaf.box
	t.graft(id.Index)
	return nil
}

// UpdateTransform moves a leaf. When the new tight bounds still fit inside the leaf's inflated box
// nothing changes and false is returned; otherwise the leaf is reinserted and true is returned.
func (t *Tree) UpdateTransform(id LeafID, transform spatialmath.Transform) (bool, error) {
	if err := t.checkLeaf(id); err != nil {
		return false, err
	}
	n := t.node(id.Index)
	transform = spatialmath.NewTransform(transform.Translation, transform.Rotation)
	tight := n.entry.Shape.CalculateBounds(transform)
	if n.box.Contains(tight) {
		n.entry.Transform = transform
		n.inverse = transform.Inverse()
		return false, nil
	}
	if err := t.Reinsert(id, n.entry.Shape, transform, n.entry.Layer); err != nil {
		return false, err
	}
	return true, nil
}

// Config returns the configuration the tree was built with, defaults applied.
func (t *Tree) Config() Config {
	return t.cfg
}

// Root returns the index of the root node, or InvalidNode for an empty tree.
func (t *Tree) Root() NodeIndex {
	return t.root
}

// Node returns a copy of the node at i, if i is a live node.
func (t *Tree) Node(i NodeIndex) (NodeView, bool) {
	if !t.nodes.isLive(int32(i)) {
		return NodeView{}, false
	}
	return t.node(i).view(i), true
}

// NodeCount returns the number of nodes in the tree, leaves and internal nodes.
func (t *Tree) NodeCount() int {
	return t.nodes.liveCount()
}

// ArenaSlots returns the number of arena slots, the reserved one and free ones included.
func (t *Tree) ArenaSlots() int {
	return t.nodes.len()
}

// LeafCount returns the number of leaves in the tree.
func (t *Tree) LeafCount() int {
	// A tree with n leaves has n-1 internal nodes.
	live := t.nodes.liveCount()
	if live == 0 {
		return 0
	}
	return (live + 1) / 2
}

// Leaf returns the entry stored at id.
func (t *Tree) Leaf(id LeafID) (Entry, error) {
	if err := t.checkLeaf(id); err != nil {
		return Entry{}, err
	}
	return t.node(id.Index).entry, nil
}

// LeafBounds returns the (possibly inflated) box stored for id.
func (t *Tree) LeafBounds(id LeafID) (spatialmath.AABB, error) {
	if err := t.checkLeaf(id); err != nil {
		return spatialmath.AABB{}, err
	}
	return t.node(id.Index).box, nil
}

// Leaves returns the handles of every leaf in depth first order.
func (t *Tree) Leaves() []LeafID {
	out := make([]LeafID, 0, t.LeafCount())
	t.walk(func(i NodeIndex, n *node, _ int) {
		if n.kind == NodeLeaf {
			out = append(out, t.leafID(i))
		}
	})
	return out
}

// walk visits every node reachable from the root in depth first order, child1 before child2.
func (t *Tree) walk(visit func(i NodeIndex, n *node, depth int)) {
	if t.root == InvalidNode {
		return
	}
	type frame struct {
		index NodeIndex
		depth int
	}
	stack := []frame{{t.root, 0}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := t.node(f.index)
		visit(f.index, n, f.depth)
		if n.kind == NodeInternal {
			stack = append(stack, frame{n.child2, f.depth + 1}, frame{n.child1, f.depth + 1})
		}
	}
}

func (t *Tree) node(i NodeIndex) *node {
	return t.nodes.get(int32(i))
}

func (t *Tree) leafID(i NodeIndex) LeafID {
	return LeafID{Index: i, Generation: t.nodes.generation(int32(i))}
}

func (t *Tree) checkLeaf(id LeafID) error {
	if !t.nodes.isLive(int32(id.Index)) ||
		t.nodes.generation(int32(id.Index)) != id.Generation ||
		t.node(id.Index).kind != NodeLeaf {
		t.logger.Warnw("rejected leaf handle", "index", id.Index, "generation", id.Generation)
		return errors.Wrapf(ErrStaleLeaf, "leaf %d generation %d", id.Index, id.Generation)
	}
	return nil
}

// newLeaf validates an entry and computes its stored box.
func (t *Tree) newLeaf(e Entry) (node, error) {
	if e.Shape == nil {
		return node{}, ErrNilShape
	}
	e.Transform = spatialmath.NewTransform(e.Transform.Translation, e.Transform.Rotation)
	box := e.Shape.CalculateBounds(e.Transform).Expand(t.cfg.BoundsExpansionMargin)
	for _, v := range []float64{box.Lower.X, box.Lower.Y, box.Lower.Z, box.Upper.X, box.Upper.Y, box.Upper.Z} {
		if !utils.IsFinite(v) {
			return node{}, errors.Wrapf(ErrInvalidBounds, "%v", box)
		}
	}
	if box.IsEmpty() {
		return node{}, errors.Wrapf(ErrInvalidBounds, "%v", box)
	}
	return node{kind: NodeLeaf, box: box, entry: e, inverse: e.Transform.Inverse()}, nil
}

func (t *Tree) allocate(n node) NodeIndex {
	i, grew := t.nodes.allocate(n)
	if grew {
		t.search.reserve(t.nodes.len())
		t.logger.Debugw("grew node arena", "slots", t.nodes.len())
	}
	return NodeIndex(i)
}

func (t *Tree) free(i NodeIndex) {
	t.nodes.free(int32(i))
}

// graft links a detached leaf into the tree next to its best sibling and refits the path to the root.
func (t *Tree) graft(leaf NodeIndex) {
	if t.root == InvalidNode {
		t.root = leaf
		t.node(leaf).parent = InvalidNode
		return
	}

	sibling := t.findBestSibling(t.node(leaf).box)
	oldParent := t.node(sibling).parent
	newParent := t.allocate(node{
		kind:   NodeInternal,
		parent: oldParent,
		child1: sibling,
		child2: leaf,
	})
	if oldParent != InvalidNode {
		t.replaceChild(oldParent, sibling, newParent)
	} else {
		t.root = newParent
	}
	t.node(sibling).parent = newParent
	t.node(leaf).parent = newParent

	t.refitParents(newParent)
}

// findBestSibling runs a best first search for the node whose union with box adds the least surface
// area to the tree. A subtree is skipped once its lower bound cost cannot beat the best found so far.
func (t *Tree) findBestSibling(box spatialmath.AABB) NodeIndex {
	boxArea := box.Area()
	best := InvalidNode
	bestCost := math.Inf(1)

	t.search.clear()
	t.search.push(queueItem{node: t.root})
	for t.search.len() > 0 {
		item := t.search.pop()
		n := t.node(item.node)

		direct := n.box.Union(box).Area()
		cost := direct + item.cost
		if cost < bestCost {
			bestCost = cost
			best = item.node
		}

		inherited := item.cost + direct - n.box.Area()
		if n.kind == NodeInternal && boxArea+inherited < bestCost {
			t.search.push(queueItem{node: n.child1, cost: inherited})
			t.search.push(queueItem{node: n.child2, cost: inherited})
		}
	}
	if best == InvalidNode {
		panic(fmt.Sprintf("no insertion candidate found for %v", box))
	}
	return best
}

// detach unlinks a leaf from the tree without freeing it. Its former parent is freed and the sibling
// takes the parent's place.
func (t *Tree) detach(leaf NodeIndex) {
	if leaf == t.root {
		t.root = InvalidNode
		return
	}

	parent := t.node(leaf).parent
	p := t.node(parent)
	sibling := p.child1
	if sibling == leaf {
		sibling = p.child2
	}
	grandParent := p.parent

	if grandParent != InvalidNode {
		t.replaceChild(grandParent, parent, sibling)
		t.node(sibling).parent = grandParent
	} else {
		t.root = sibling
		t.node(sibling).parent = InvalidNode
	}
	t.free(parent)
	t.node(leaf).parent = InvalidNode

	if grandParent != InvalidNode {
		t.refitParents(grandParent)
	}
}

func (t *Tree) replaceChild(parent, oldChild, newChild NodeIndex) {
	p := t.node(parent)
	switch oldChild {
	case p.child1:
		p.child1 = newChild
	case p.child2:
		p.child2 = newChild
	default:
		panic(fmt.Sprintf("node %d is not a child of node %d", oldChild, parent))
	}
}
