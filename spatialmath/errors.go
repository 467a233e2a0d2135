package spatialmath

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrDegenerateRay is returned when a ray has no direction or an invalid distance range.
var ErrDegenerateRay = errors.New("degenerate ray")

func newBadGeometryDimensionsError(s Shape) error {
	return fmt.Errorf("invalid dimension(s) for %T", s)
}
