package bvh

import (
	"go.viam.com/broadphase/spatialmath"
)

// Each node in the tree is either an internal node with exactly two children or a leaf holding an entry.
// Freed and reserved slots are invalid.
const (
	NodeInvalid = NodeKind(iota)
	NodeLeaf
	NodeInternal
)

// NodeKind represents the possible types of nodes in the tree.
type NodeKind uint8

func (k NodeKind) String() string {
	switch k {
	case NodeLeaf:
		return "leaf"
	case NodeInternal:
		return "internal"
	case NodeInvalid:
		return "invalid"
	}
	return "unknown"
}

// NodeIndex addresses a slot in the node arena.
type NodeIndex int32

// InvalidNode is the permanently reserved slot 0. It stands for "no node" in parent and child links.
const InvalidNode NodeIndex = 0

// AllLayers is the default layer of a leaf: every bit set, so any non-zero query mask excludes it.
const AllLayers uint32 = 0xffffffff

// Entry is the payload of a leaf: a shape placed in the world by a transform, and the layer bits
// used by query masks.
type Entry struct {
	Shape     spatialmath.Shape
	Transform spatialmath.Transform
	Layer     uint32
}

// excludedBy reports whether a query mask filters the entry out. A mask lists the layers to skip,
// so the zero mask passes every entry.
func (e *Entry) excludedBy(mask uint32) bool {
	return e.Layer&mask != 0
}

// LeafID is a handle to a leaf. The generation detects handles that outlived their leaf.
type LeafID struct {
	Index      NodeIndex
	Generation uint32
}

type node struct {
	kind   NodeKind
	box    spatialmath.AABB
	parent NodeIndex
	child1 NodeIndex
	child2 NodeIndex

	// leaf only
	entry   Entry
	inverse spatialmath.Transform

	// internal only
	grandchildren Bounds4
}

// NodeView is a read only copy of a node for inspection and tooling.
type NodeView struct {
	Index         NodeIndex
	Kind          NodeKind
	Box           spatialmath.AABB
	Parent        NodeIndex
	Child1        NodeIndex
	Child2        NodeIndex
	Entry         Entry
	Grandchildren Bounds4
}

func (n *node) view(index NodeIndex) NodeView {
	return NodeView{
		Index:         index,
		Kind:          n.kind,
		Box:           n.box,
		Parent:        n.parent,
		Child1:        n.child1,
		Child2:        n.child2,
		Entry:         n.entry,
		Grandchildren: n.grandchildren,
	}
}
