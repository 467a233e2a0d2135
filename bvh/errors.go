package bvh

import "github.com/pkg/errors"

var (
	// ErrStaleLeaf is returned when a LeafID no longer names a live leaf, either because it was removed
	// or because it never came from this tree.
	ErrStaleLeaf = errors.New("stale or unknown leaf id")
	// ErrNilShape is returned when a leaf is inserted without a shape.
	ErrNilShape = errors.New("leaf shape must not be nil")
	// ErrInvalidBounds is returned when a shape reports bounds that are not finite.
	ErrInvalidBounds = errors.New("leaf bounds must be finite")
	// ErrTraversalStackExhausted is returned when a query needs more than TraversalStackSize pending nodes.
	ErrTraversalStackExhausted = errors.New("traversal stack exhausted")
	// ErrDegenerateQuery is returned for distance queries with a negative or NaN range or a non-finite origin.
	ErrDegenerateQuery = errors.New("degenerate query")
)
