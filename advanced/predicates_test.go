package advanced

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrient2D(t *testing.T) {
	a := Point2{X: 0, Y: 0}
	b := Point2{X: 1, Y: 0}

	t.Run("basic signs", func(t *testing.T) {
		assert.Equal(t, 1, Orient2D(a, b, Point2{X: 0, Y: 1}))
		assert.Equal(t, -1, Orient2D(a, b, Point2{X: 0, Y: -1}))
		assert.Equal(t, 0, Orient2D(a, b, Point2{X: 17.5, Y: 0}))
	})

	t.Run("collinear with large coordinates", func(t *testing.T) {
		p := Point2{X: 1e15, Y: 2e15}
		q := Point2{X: 2e15, Y: 4e15}
		r := Point2{X: 4e15, Y: 8e15}
		assert.Equal(t, 0, Orient2D(p, q, r))
	})

	t.Run("filter falls back near degeneracy", func(t *testing.T) {
		// c sits 2^-52 (two ulps of 0.5) off the line y = x. The naive determinant is zero
		// because the offset is lost in the subtraction; the exact sign is
		// clockwise.
		p := Point2{X: 12, Y: 12}
		q := Point2{X: 24, Y: 24}
		c := Point2{X: 0.5 + 1.0/(1<<52), Y: 0.5}
		assert.Equal(t, -1, Orient2D(p, q, c))
		assert.Equal(t, 1, Orient2D(q, p, c))
	})

	t.Run("antisymmetry", func(t *testing.T) {
		c := Point2{X: 0.3, Y: 0.7}
		assert.Equal(t, -Orient2D(a, b, c), Orient2D(b, a, c))
	})

	t.Run("non-finite coordinates are rejected", func(t *testing.T) {
		err := func() (err error) {
			defer func() {
				err = HandleDelaunayPanicRecover(recover())
			}()
			Orient2D(a, b, Point2{X: 0, Y: math.NaN()})
			return nil
		}()
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestInCircle(t *testing.T) {
	// Unit circle through three of its points, counter-clockwise.
	a := Point2{X: -1, Y: 0}
	b := Point2{X: 1, Y: 0}
	c := Point2{X: 0, Y: 1}

	t.Run("basic signs", func(t *testing.T) {
		assert.Equal(t, 1, InCircle(a, b, c, Point2{X: 0, Y: 0}))
		assert.Equal(t, -1, InCircle(a, b, c, Point2{X: 2, Y: 2}))
		assert.Equal(t, 0, InCircle(a, b, c, Point2{X: 0, Y: -1}))
	})

	t.Run("cocircular square is an exact zero", func(t *testing.T) {
		// Circle through (0,0), (2,0), (2,2) has center (1,1); (0,2) is on it.
		assert.Equal(t, 0, InCircle(
			Point2{X: 0, Y: 0},
			Point2{X: 2, Y: 0},
			Point2{X: 2, Y: 2},
			Point2{X: 0, Y: 2},
		))
	})

	t.Run("barely inside", func(t *testing.T) {
		d := Point2{X: 0, Y: -1 + 1.0/(1<<50)}
		assert.Equal(t, 1, InCircle(a, b, c, d))
	})
}

func TestOrient3D(t *testing.T) {
	a := Point3{X: 1, Y: 0, Z: 0}
	b := Point3{X: 0, Y: 1, Z: 0}
	c := Point3{X: 0, Y: 0, Z: 1}

	t.Run("basic signs", func(t *testing.T) {
		assert.Equal(t, 1, Orient3D(a, b, c, Point3{}))
		assert.Equal(t, -1, Orient3D(a, c, b, Point3{}))
		assert.Equal(t, 0, Orient3D(a, b, c, Point3{X: 0.25, Y: 0.25, Z: 0.5}))
	})

	t.Run("coplanar grid", func(t *testing.T) {
		assert.Equal(t, 0, Orient3D(
			Point3{X: 1, Y: 2, Z: 5},
			Point3{X: 3, Y: 7, Z: 5},
			Point3{X: -4, Y: 0.25, Z: 5},
			Point3{X: 100, Y: -3, Z: 5},
		))
	})
}

func TestInSphere(t *testing.T) {
	// Positively oriented corner tetrahedron of the unit cube; its
	// circumsphere has center (1/2, 1/2, 1/2).
	a := Point3{X: 1, Y: 0, Z: 0}
	b := Point3{X: 0, Y: 1, Z: 0}
	c := Point3{X: 0, Y: 0, Z: 1}
	d := Point3{X: 0, Y: 0, Z: 0}

	t.Run("basic signs", func(t *testing.T) {
		assert.Equal(t, 1, InSphere(a, b, c, d, Point3{X: 0.5, Y: 0.5, Z: 0.5}))
		assert.Equal(t, -1, InSphere(a, b, c, d, Point3{X: 2, Y: 2, Z: 2}))
	})

	t.Run("cospherical cube corner is an exact zero", func(t *testing.T) {
		assert.Equal(t, 0, InSphere(a, b, c, d, Point3{X: 1, Y: 1, Z: 1}))
	})

	t.Run("barely outside", func(t *testing.T) {
		e := Point3{X: 1 + 1.0/(1<<48), Y: 1, Z: 1}
		assert.Equal(t, -1, InSphere(a, b, c, d, e))
	})
}
