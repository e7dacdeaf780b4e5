package advanced

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
)

// Coordinates are golang/geo vectors. Points are passed by value; vertex
// identity is the index into the mesh's point slice, never the coordinates.
type Point2 = r2.Point
type Point3 = r3.Vector

// Neighbor slot values. A simplex on the convex hull has Outside across its
// boundary faces; reads of a tombstoned simplex yield Freed.
const (
	Outside = -1
	Freed   = -2
)

func finite2(p Point2) bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) &&
		!math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

func finite3(p Point3) bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) &&
		!math.IsNaN(p.Y) && !math.IsInf(p.Y, 0) &&
		!math.IsNaN(p.Z) && !math.IsInf(p.Z, 0)
}

// An edge handle used by the Lawson flip loop: the edge of triangle T
// opposite local vertex E. E always names the newly inserted vertex at push
// time, which lets stale entries be recognized after the slot is reused.
type edgeRef struct {
	T, E int
}

type edgeStack []edgeRef

func (s *edgeStack) push(e edgeRef) {
	*s = append(*s, e)
}

func (s *edgeStack) pop() (edgeRef, bool) {
	if len(*s) == 0 {
		return edgeRef{}, false
	}
	e := (*s)[len(*s)-1]
	*s = (*s)[:len(*s)-1]
	return e, true
}
