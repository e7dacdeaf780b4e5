package advanced

import "github.com/pkg/errors"

// Hard failures abort a build and surface through the public API; soft
// failures (duplicate points) are logged and skipped. Callers can classify a
// returned error with errors.Is against these sentinels.
var (
	// A coordinate was NaN or infinite.
	ErrInvalidInput = errors.New("invalid input: non-finite coordinate")

	// Fewer than d+1 points, or no non-degenerate seed simplex exists
	// (all points collinear in 2D, coplanar in 3D).
	ErrInsufficientInput = errors.New("insufficient non-degenerate input")

	// A predicate tie could not be resolved by the construction. With exact
	// predicates this should never trigger; it is a defensive guard.
	ErrGeometricDegeneracy = errors.New("geometric degeneracy")

	// A structural invariant (orientation, neighbor symmetry) was found
	// broken. Indicates a bug in this package.
	ErrInternal = errors.New("internal invariant broken")
)

// Threading errors up through the walk, flip and cavity recursions would add
// noise to every signature. Instead, hard failures panic with a typed error,
// and the public API recovers to convert to an error.

type DelaunayError error

// Panic with a DelaunayError wrapping one of the sentinel errors above.
func fatalf(sentinel error, format string, args ...interface{}) {
	panic(DelaunayError(errors.Wrapf(sentinel, format, args...)))
}

func HandleDelaunayPanicRecover(r interface{}) error {
	if r != nil {
		if delaunayErr, ok := r.(DelaunayError); ok {
			return delaunayErr
		}
		panic(r)
	}
	return nil
}
