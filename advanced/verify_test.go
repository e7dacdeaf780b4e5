package advanced

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Shared property assertions for final meshes: structural coherence, the
// Delaunay property, convex-hull coverage, vertex coverage, and the Euler
// characteristic.

func AssertValidTriangulation(t *testing.T, m *Mesh2) {
	t.Helper()
	if err := m.CheckMesh(); err != nil {
		m.DebugDraw(assertDrawScale)
		require.NoError(t, err)
	}
	if err := m.IsDelaunay(); err != nil {
		m.DebugDraw(assertDrawScale)
		require.NoError(t, err)
	}
	assertHull2(t, m)
	assertCoverage2(t, m)
	assertEuler2(t, m)
}

// Scale for the failure-path mesh dump; test inputs live in small coordinate
// ranges.
const assertDrawScale = 8

func AssertValidTetrahedralization(t *testing.T, m *Mesh3) {
	t.Helper()
	if err := m.CheckMesh(); err != nil {
		dumpMesh3(t, m)
		require.NoError(t, err)
	}
	if err := m.IsDelaunay(); err != nil {
		dumpMesh3(t, m)
		require.NoError(t, err)
	}
	assertHull3(t, m)
	assertCoverage3(t, m)
	assertEuler3(t, m)
}

func dumpMesh3(t *testing.T, m *Mesh3) {
	t.Helper()
	for _, tet := range m.LiveTetrahedra() {
		t.Log(m.TetrahedronString(tet))
	}
}

// The boundary edges must form a single closed cycle with every point of the
// mesh on or left of each directed boundary edge; together that makes the
// boundary the convex hull of the input.
func assertHull2(t *testing.T, m *Mesh2) {
	t.Helper()
	next := make(map[int]int) // directed boundary edge a -> b
	prevCount := make(map[int]int)
	for _, tri := range m.LiveTriangles() {
		for i, n := range m.Neighbors(tri) {
			if n != Outside {
				continue
			}
			a, b := m.edge(tri, i)
			_, dup := next[a]
			require.False(t, dup, "two boundary edges leave vertex %d", a)
			next[a] = b
			prevCount[b]++
			for w := 0; w < m.NumPoints(); w++ {
				if w == a || w == b {
					continue
				}
				assert.GreaterOrEqual(t, Orient2D(m.Point(a), m.Point(b), m.Point(w)), 0,
					"point %d is outside boundary edge %d-%d", w, a, b)
			}
		}
	}
	require.NotEmpty(t, next)
	for b, c := range prevCount {
		require.Equal(t, 1, c, "vertex %d has %d incoming boundary edges", b, c)
	}
	// Walk the cycle; it must visit every boundary vertex exactly once.
	start := -1
	for a := range next {
		if start < 0 || a < start {
			start = a
		}
	}
	seen := 0
	for cur := start; ; {
		seen++
		cur = next[cur]
		if cur == start {
			break
		}
		require.LessOrEqual(t, seen, len(next), "boundary is not a single cycle")
	}
	require.Equal(t, len(next), seen, "boundary is not a single cycle")
}

// Every boundary face keeps all points on its inner side, and every boundary
// edge is shared by exactly two boundary faces (a closed surface).
func assertHull3(t *testing.T, m *Mesh3) {
	t.Helper()
	edgeFaces := make(map[[2]int]int)
	found := false
	for _, tet := range m.LiveTetrahedra() {
		for i, n := range m.Neighbors(tet) {
			if n != Outside {
				continue
			}
			found = true
			a, b, c := m.face(tet, i)
			for w := 0; w < m.NumPoints(); w++ {
				if w == a || w == b || w == c {
					continue
				}
				assert.GreaterOrEqual(t, Orient3D(m.Point(a), m.Point(b), m.Point(c), m.Point(w)), 0,
					"point %d is outside boundary face %d-%d-%d", w, a, b, c)
			}
			edgeFaces[edgeKey(a, b)]++
			edgeFaces[edgeKey(b, c)]++
			edgeFaces[edgeKey(a, c)]++
		}
	}
	require.True(t, found, "mesh has no boundary faces")
	for e, c := range edgeFaces {
		require.Equal(t, 2, c, "boundary edge %v is shared by %d faces", e, c)
	}
}

func assertCoverage2(t *testing.T, m *Mesh2) {
	t.Helper()
	used := make([]bool, m.NumPoints())
	for _, tri := range m.LiveTriangles() {
		for _, v := range m.Vertices(tri) {
			used[v] = true
		}
	}
	for v, ok := range used {
		assert.True(t, ok, "vertex %d is not part of any triangle", v)
	}
}

func assertCoverage3(t *testing.T, m *Mesh3) {
	t.Helper()
	used := make([]bool, m.NumPoints())
	for _, tet := range m.LiveTetrahedra() {
		for _, v := range m.Vertices(tet) {
			used[v] = true
		}
	}
	for v, ok := range used {
		assert.True(t, ok, "vertex %d is not part of any tetrahedron", v)
	}
}

// V - E + F = 1 for a triangulated disk, counting triangles only.
func assertEuler2(t *testing.T, m *Mesh2) {
	t.Helper()
	edges := make(map[[2]int]bool)
	faces := 0
	for _, tri := range m.LiveTriangles() {
		faces++
		v := m.Vertices(tri)
		edges[edgeKey(v[0], v[1])] = true
		edges[edgeKey(v[1], v[2])] = true
		edges[edgeKey(v[0], v[2])] = true
	}
	assert.Equal(t, 1, m.NumPoints()-len(edges)+faces, "Euler characteristic")
}

// V - E + F - T = 1 for a triangulated ball.
func assertEuler3(t *testing.T, m *Mesh3) {
	t.Helper()
	edges := make(map[[2]int]bool)
	faces := make(map[[3]int]bool)
	tets := 0
	for _, tet := range m.LiveTetrahedra() {
		tets++
		v := m.Vertices(tet)
		for i := 0; i < 4; i++ {
			for j := i + 1; j < 4; j++ {
				edges[edgeKey(v[i], v[j])] = true
			}
			faces[m.faceSet(tet, i)] = true
		}
	}
	assert.Equal(t, 1, m.NumPoints()-len(edges)+len(faces)-tets, "Euler characteristic")
}
