package advanced

import (
	"fmt"
	"strings"

	"github.com/logrusorgru/aurora"

	"github.com/osuushi/delaunay/dbg"
)

// A triangle mesh as dense slices of simplex records. Clients hold indices,
// never references; an index is stable until its slot is tombstoned and
// recycled through the free list. The mesh tracks slot validity; its neighbor
// setters write one side of a link only, so the inserters keep links
// mirror-symmetric and CheckMesh verifies it. The Delaunay property is
// likewise the inserters' responsibility.
type Mesh2 struct {
	points []Point2
	verts  [][3]int
	neigh  [][3]int
	alive  []bool
	free   []int
	live   int
}

func NewMesh2(points []Point2) *Mesh2 {
	return &Mesh2{points: points}
}

// NumPoints returns the number of vertices backing the mesh.
func (m *Mesh2) NumPoints() int { return len(m.points) }

// Point returns the coordinates of vertex v.
func (m *Mesh2) Point(v int) Point2 { return m.points[v] }

// NumTriangles returns the number of live triangles.
func (m *Mesh2) NumTriangles() int { return m.live }

// NumSlots returns the slot count; indices range over [0, NumSlots).
func (m *Mesh2) NumSlots() int { return len(m.verts) }

// Alive reports whether slot t holds a live triangle.
func (m *Mesh2) Alive(t int) bool {
	return t >= 0 && t < len(m.alive) && m.alive[t]
}

// Vertices returns the three vertex indices of triangle t, in
// counter-clockwise order. A tombstoned slot reads as Freed.
func (m *Mesh2) Vertices(t int) [3]int {
	if !m.Alive(t) {
		return [3]int{Freed, Freed, Freed}
	}
	return m.verts[t]
}

// Neighbors returns the three neighbor slots of triangle t; entry i is the
// triangle sharing the edge opposite vertex i, or Outside on the hull. A
// tombstoned slot reads as Freed.
func (m *Mesh2) Neighbors(t int) [3]int {
	if !m.Alive(t) {
		return [3]int{Freed, Freed, Freed}
	}
	return m.neigh[t]
}

// LiveTriangles returns the live slot indices in increasing order.
func (m *Mesh2) LiveTriangles() []int {
	out := make([]int, 0, m.live)
	for t := range m.verts {
		if m.alive[t] {
			out = append(out, t)
		}
	}
	return out
}

func (m *Mesh2) pt(v int) Point2 { return m.points[v] }

// The directed edge opposite local vertex i, counter-clockwise (interior on
// the left).
func (m *Mesh2) edge(t, i int) (int, int) {
	return m.verts[t][(i+1)%3], m.verts[t][(i+2)%3]
}

func (m *Mesh2) newTriangle(v, n [3]int) int {
	if len(m.free) > 0 {
		t := m.free[len(m.free)-1]
		m.free = m.free[:len(m.free)-1]
		m.verts[t] = v
		m.neigh[t] = n
		m.alive[t] = true
		m.live++
		return t
	}
	m.verts = append(m.verts, v)
	m.neigh = append(m.neigh, n)
	m.alive = append(m.alive, true)
	m.live++
	return len(m.verts) - 1
}

func (m *Mesh2) replaceTriangle(t int, v, n [3]int) {
	if !m.alive[t] {
		fatalf(ErrInternal, "replacing tombstoned triangle %d", t)
	}
	m.verts[t] = v
	m.neigh[t] = n
}

func (m *Mesh2) freeTriangle(t int) {
	if !m.alive[t] {
		fatalf(ErrInternal, "double free of triangle %d", t)
	}
	m.alive[t] = false
	m.free = append(m.free, t)
	m.live--
}

func (m *Mesh2) setNeighbor(t, i, u int) {
	m.neigh[t][i] = u
}

// Repoint the neighbor slot of t that references old to new. Used when a
// neighbor across an untouched edge must follow a slot reuse.
func (m *Mesh2) repointNeighbor(t, old, repl int) {
	if t < 0 {
		return
	}
	for i := 0; i < 3; i++ {
		if m.neigh[t][i] == old {
			m.neigh[t][i] = repl
			return
		}
	}
	fatalf(ErrInternal, "triangle %d has no neighbor link to %d", t, old)
}

// Local index of vertex v in triangle t.
func (m *Mesh2) vertexIndex(t, v int) int {
	for i, tv := range m.verts[t] {
		if tv == v {
			return i
		}
	}
	fatalf(ErrInternal, "vertex %d not in triangle %d", v, t)
	return -1
}

// CheckMesh verifies orientation and neighbor symmetry over every live
// triangle. A nil result means the structure is coherent.
func (m *Mesh2) CheckMesh() error {
	for t := range m.verts {
		if !m.alive[t] {
			continue
		}
		v := m.verts[t]
		if Orient2D(m.pt(v[0]), m.pt(v[1]), m.pt(v[2])) <= 0 {
			return fmt.Errorf("%s is not positively oriented", m.TriangleString(t))
		}
		for i := 0; i < 3; i++ {
			u := m.neigh[t][i]
			if u == Outside {
				continue
			}
			if !m.Alive(u) {
				return fmt.Errorf("%s: neighbor %d is %s", m.TriangleString(t), i, m.TriangleString(u))
			}
			back := 0
			for k := 0; k < 3; k++ {
				if m.neigh[u][k] == t {
					back++
					a, b := m.edge(t, i)
					c, d := m.edge(u, k)
					if a != d || b != c {
						return fmt.Errorf("%s and %s disagree on their shared edge",
							m.TriangleString(t), m.TriangleString(u))
					}
				}
			}
			if back != 1 {
				return fmt.Errorf("asymmetric neighbor link between %s and %s",
					m.TriangleString(t), m.TriangleString(u))
			}
		}
	}
	return nil
}

// IsDelaunay verifies the empty-circumcircle property of every live triangle
// against every vertex referenced by the mesh. Quadratic; meant for tests and
// debugging.
func (m *Mesh2) IsDelaunay() error {
	for t := range m.verts {
		if !m.alive[t] {
			continue
		}
		v := m.verts[t]
		for w := range m.points {
			if w == v[0] || w == v[1] || w == v[2] {
				continue
			}
			if InCircle(m.pt(v[0]), m.pt(v[1]), m.pt(v[2]), m.pt(w)) > 0 {
				return fmt.Errorf("vertex %d lies inside the circumcircle of %s", w, m.TriangleString(t))
			}
		}
	}
	return nil
}

// TriangleString renders triangle t for debugging: hull triangles cyan,
// interior green, tombstoned red.
func (m *Mesh2) TriangleString(t int) string {
	name := dbg.Name(fmt.Sprintf("tri/%d", t))
	if !m.Alive(t) {
		return aurora.Red(name).String()
	}
	hull := false
	var neighbors []string
	for i := 0; i < 3; i++ {
		if m.neigh[t][i] == Outside {
			hull = true
			neighbors = append(neighbors, "∅")
		} else {
			neighbors = append(neighbors, dbg.Name(fmt.Sprintf("tri/%d", m.neigh[t][i])))
		}
	}
	if hull {
		name = aurora.Cyan(name).String()
	} else {
		name = aurora.Green(name).String()
	}
	v := m.verts[t]
	return fmt.Sprintf("%s (%d %d %d) <%s>", name, v[0], v[1], v[2], strings.Join(neighbors, ", "))
}
