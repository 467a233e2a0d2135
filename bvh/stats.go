package bvh

import (
	"github.com/montanaflynn/stats"
)

// Stats summarizes the shape of a tree.
type Stats struct {
	Leaves        int
	InternalNodes int
	ArenaSlots    int
	Height        int
	MeanLeafDepth float64
	P95LeafDepth  float64
	// InternalArea is the summed surface area of every internal node except the root.
	InternalArea float64
	RootArea     float64
	// AreaRatio is the summed area of all internal nodes, root included, over the root area.
	AreaRatio float64
	// Rotations counts the rotations applied since the tree was created.
	Rotations uint64
}

// Stats walks the tree and summarizes it.
func (t *Tree) Stats() Stats {
	s := Stats{ArenaSlots: t.nodes.len(), Rotations: t.rotations}
	var depths stats.Float64Data
	t.walk(func(i NodeIndex, n *node, depth int) {
		if depth > s.Height {
			s.Height = depth
		}
		if n.kind == NodeLeaf {
			s.Leaves++
			depths = append(depths, float64(depth))
			return
		}
		s.InternalNodes++
		if i == t.root {
			s.RootArea = n.box.Area()
		} else {
			s.InternalArea += n.box.Area()
		}
	})
	if s.RootArea > 0 {
		s.AreaRatio = (s.InternalArea + s.RootArea) / s.RootArea
	}
	if len(depths) > 0 {
		// Both only fail on empty input.
		s.MeanLeafDepth, _ = stats.Mean(depths)
		s.P95LeafDepth, _ = stats.Percentile(depths, 95)
	}
	return s
}
