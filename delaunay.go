// Delaunay triangulations of planar point sets and Delaunay
// tetrahedralizations of spatial point sets.
//
// The mesh is built incrementally: points are preordered along a Hilbert
// curve, located by walking the simplex adjacency graph, and inserted by
// Lawson edge flips (2D) or Bowyer-Watson cavity construction (3D). All
// geometric sign tests are exact, so the result satisfies the
// empty-circumsphere property even for degenerate inputs such as cocircular
// or cospherical points.
package delaunay

import (
	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"

	"github.com/osuushi/delaunay/advanced"
)

type Mesh2 = advanced.Mesh2
type Mesh3 = advanced.Mesh3
type Location = advanced.Location

// Neighbor sentinels: Outside marks a convex-hull face, Freed reads from a
// recycled simplex slot.
const (
	Outside = advanced.Outside
	Freed   = advanced.Freed
)

// Error sentinels, matched with errors.Is.
var (
	ErrInvalidInput        = advanced.ErrInvalidInput
	ErrInsufficientInput   = advanced.ErrInsufficientInput
	ErrGeometricDegeneracy = advanced.ErrGeometricDegeneracy
	ErrInternal            = advanced.ErrInternal
)

// Triangulate2D computes the Delaunay triangulation of points. The result's
// convex hull equals the convex hull of the input, and no input point lies
// strictly inside the circumcircle of any triangle. Duplicate points are
// dropped with a logged notice. Identical input produces an identical mesh,
// including simplex index assignment.
func Triangulate2D(points []r2.Point) (mesh *Mesh2, err error) {
	defer func() {
		recoveredErr := advanced.HandleDelaunayPanicRecover(recover())
		if recoveredErr != nil {
			mesh = nil
			err = recoveredErr
		}
	}()
	return advanced.Triangulate2D(points), nil
}

// Triangulate3D computes the Delaunay tetrahedralization of points, with the
// same contract as Triangulate2D one dimension up.
func Triangulate3D(points []r3.Vector) (mesh *Mesh3, err error) {
	defer func() {
		recoveredErr := advanced.HandleDelaunayPanicRecover(recover())
		if recoveredErr != nil {
			mesh = nil
			err = recoveredErr
		}
	}()
	return advanced.Triangulate3D(points), nil
}
