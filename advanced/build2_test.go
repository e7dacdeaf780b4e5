package advanced

import (
	"bytes"
	"log"
	"math"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func build2(t *testing.T, points []Point2) *Mesh2 {
	t.Helper()
	var m *Mesh2
	err := func() (err error) {
		defer func() {
			err = HandleDelaunayPanicRecover(recover())
		}()
		m = Triangulate2D(points)
		return nil
	}()
	require.NoError(t, err)
	return m
}

func build2Err(points []Point2) error {
	return func() (err error) {
		defer func() {
			err = HandleDelaunayPanicRecover(recover())
		}()
		Triangulate2D(points)
		return nil
	}()
}

func TestTriangulate2D(t *testing.T) {
	t.Run("single triangle", func(t *testing.T) {
		m := build2(t, []Point2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}})
		assert.Equal(t, 1, m.NumTriangles())
		boundary := 0
		for _, n := range m.Neighbors(m.LiveTriangles()[0]) {
			if n == Outside {
				boundary++
			}
		}
		assert.Equal(t, 3, boundary)
		AssertValidTriangulation(t, m)
	})

	t.Run("square", func(t *testing.T) {
		m := build2(t, []Point2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}})
		assert.Equal(t, 2, m.NumTriangles())
		AssertValidTriangulation(t, m)
	})

	t.Run("cocircular square", func(t *testing.T) {
		// All four points lie on one circle; either diagonal is a valid
		// Delaunay triangulation, with the in-circle ties exactly zero.
		m := build2(t, []Point2{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 2}, {X: 0, Y: 2}})
		assert.Equal(t, 2, m.NumTriangles())
		AssertValidTriangulation(t, m)
	})

	t.Run("duplicate point is dropped softly", func(t *testing.T) {
		var buf bytes.Buffer
		oldLogger := Logger
		Logger = log.New(&buf, "", 0)
		defer func() { Logger = oldLogger }()

		m := build2(t, []Point2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 0}})
		assert.Equal(t, 3, m.NumPoints())
		assert.Equal(t, 1, m.NumTriangles())
		assert.Contains(t, buf.String(), "duplicate point")
		AssertValidTriangulation(t, m)
	})

	t.Run("collinear run inside input", func(t *testing.T) {
		m := build2(t, []Point2{
			{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}, {X: 3, Y: 0},
			{X: 1.5, Y: 2},
		})
		AssertValidTriangulation(t, m)
	})

	t.Run("scatter fixture", func(t *testing.T) {
		m := build2(t, LoadFixture("cloud_scatter"))
		AssertValidTriangulation(t, m)
	})

	t.Run("grid fixture with cocircular ties", func(t *testing.T) {
		m := build2(t, LoadFixture("cloud_grid"))
		AssertValidTriangulation(t, m)
	})

	t.Run("random cloud", func(t *testing.T) {
		rng := rand.New(rand.NewSource(42))
		points := make([]Point2, 200)
		for i := range points {
			points[i] = Point2{X: rng.Float64() * 10, Y: rng.Float64() * 10}
		}
		m := build2(t, points)
		AssertValidTriangulation(t, m)
	})

	t.Run("random points on a circle", func(t *testing.T) {
		// Every insertion lands on the hull and every four points are
		// cocircular up to rounding.
		rng := rand.New(rand.NewSource(9))
		points := make([]Point2, 60)
		for i := range points {
			s, c := math.Sincos(rng.Float64() * 2 * math.Pi)
			points[i] = Point2{X: c, Y: s}
		}
		m := build2(t, points)
		AssertValidTriangulation(t, m)
	})

	t.Run("deterministic", func(t *testing.T) {
		points := LoadFixture("cloud_scatter")
		m1 := build2(t, points)
		m2 := build2(t, points)
		require.Equal(t, m1.NumSlots(), m2.NumSlots())
		var tris1, tris2 [][3]int
		var adj1, adj2 [][3]int
		for _, tr := range m1.LiveTriangles() {
			tris1 = append(tris1, m1.Vertices(tr))
			adj1 = append(adj1, m1.Neighbors(tr))
		}
		for _, tr := range m2.LiveTriangles() {
			tris2 = append(tris2, m2.Vertices(tr))
			adj2 = append(adj2, m2.Neighbors(tr))
		}
		assert.Empty(t, cmp.Diff(tris1, tris2))
		assert.Empty(t, cmp.Diff(adj1, adj2))
	})
}

func TestTriangulate2DErrors(t *testing.T) {
	t.Run("too few points", func(t *testing.T) {
		err := build2Err([]Point2{{X: 0, Y: 0}, {X: 1, Y: 0}})
		assert.ErrorIs(t, err, ErrInsufficientInput)
	})

	t.Run("all collinear", func(t *testing.T) {
		err := build2Err([]Point2{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 2}, {X: 5, Y: 5}})
		assert.ErrorIs(t, err, ErrInsufficientInput)
	})

	t.Run("all coincident", func(t *testing.T) {
		err := build2Err([]Point2{{X: 3, Y: 3}, {X: 3, Y: 3}, {X: 3, Y: 3}})
		assert.ErrorIs(t, err, ErrInsufficientInput)
	})

	t.Run("non-finite coordinate", func(t *testing.T) {
		err := build2Err([]Point2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: math.Inf(1)}})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
