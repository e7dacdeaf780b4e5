package advanced

import (
	"fmt"
	"strings"

	"github.com/logrusorgru/aurora"

	"github.com/osuushi/delaunay/dbg"
)

// Local vertex triples of the face opposite each local vertex, ordered so
// that Orient3D(face, opposite vertex) is positive for a positively oriented
// tetrahedron. Reversing any pair gives the outward-facing order.
var tetFace = [4][3]int{
	{1, 3, 2},
	{0, 2, 3},
	{0, 3, 1},
	{0, 1, 2},
}

// A tetrahedral mesh with the same slot discipline as Mesh2: dense simplex
// records, free-list recycling, index-based adjacency with the Outside
// sentinel on hull faces.
type Mesh3 struct {
	points []Point3
	verts  [][4]int
	neigh  [][4]int
	alive  []bool
	free   []int
	live   int
}

func NewMesh3(points []Point3) *Mesh3 {
	return &Mesh3{points: points}
}

// NumPoints returns the number of vertices backing the mesh.
func (m *Mesh3) NumPoints() int { return len(m.points) }

// Point returns the coordinates of vertex v.
func (m *Mesh3) Point(v int) Point3 { return m.points[v] }

// NumTetrahedra returns the number of live tetrahedra.
func (m *Mesh3) NumTetrahedra() int { return m.live }

// NumSlots returns the slot count; indices range over [0, NumSlots).
func (m *Mesh3) NumSlots() int { return len(m.verts) }

// Alive reports whether slot t holds a live tetrahedron.
func (m *Mesh3) Alive(t int) bool {
	return t >= 0 && t < len(m.alive) && m.alive[t]
}

// Vertices returns the four vertex indices of tetrahedron t, positively
// oriented. A tombstoned slot reads as Freed.
func (m *Mesh3) Vertices(t int) [4]int {
	if !m.Alive(t) {
		return [4]int{Freed, Freed, Freed, Freed}
	}
	return m.verts[t]
}

// Neighbors returns the four neighbor slots of tetrahedron t; entry i is the
// tetrahedron sharing the face opposite vertex i, or Outside on the hull. A
// tombstoned slot reads as Freed.
func (m *Mesh3) Neighbors(t int) [4]int {
	if !m.Alive(t) {
		return [4]int{Freed, Freed, Freed, Freed}
	}
	return m.neigh[t]
}

// LiveTetrahedra returns the live slot indices in increasing order.
func (m *Mesh3) LiveTetrahedra() []int {
	out := make([]int, 0, m.live)
	for t := range m.verts {
		if m.alive[t] {
			out = append(out, t)
		}
	}
	return out
}

func (m *Mesh3) pt(v int) Point3 { return m.points[v] }

// The face opposite local vertex i, oriented toward the tetrahedron
// interior.
func (m *Mesh3) face(t, i int) (int, int, int) {
	f := tetFace[i]
	return m.verts[t][f[0]], m.verts[t][f[1]], m.verts[t][f[2]]
}

func (m *Mesh3) newTetrahedron(v, n [4]int) int {
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

func (m *Mesh3) freeTetrahedron(t int) {
	if !m.alive[t] {
		fatalf(ErrInternal, "double free of tetrahedron %d", t)
	}
	m.alive[t] = false
	m.free = append(m.free, t)
	m.live--
}

func (m *Mesh3) setNeighbor(t, i, u int) {
	m.neigh[t][i] = u
}

// Local face index of t whose neighbor slot references u.
func (m *Mesh3) neighborIndex(t, u int) int {
	for i := 0; i < 4; i++ {
		if m.neigh[t][i] == u {
			return i
		}
	}
	fatalf(ErrInternal, "tetrahedron %d has no neighbor link to %d", t, u)
	return -1
}

// CheckMesh verifies orientation and neighbor symmetry over every live
// tetrahedron. A nil result means the structure is coherent.
func (m *Mesh3) CheckMesh() error {
	for t := range m.verts {
		if !m.alive[t] {
			continue
		}
		v := m.verts[t]
		if Orient3D(m.pt(v[0]), m.pt(v[1]), m.pt(v[2]), m.pt(v[3])) <= 0 {
			return fmt.Errorf("%s is not positively oriented", m.TetrahedronString(t))
		}
		for i := 0; i < 4; i++ {
			u := m.neigh[t][i]
			if u == Outside {
				continue
			}
			if !m.Alive(u) {
				return fmt.Errorf("%s: neighbor %d is %s", m.TetrahedronString(t), i, m.TetrahedronString(u))
			}
			back := 0
			for k := 0; k < 4; k++ {
				if m.neigh[u][k] == t {
					back++
					if !sameFace(m.faceSet(t, i), m.faceSet(u, k)) {
						return fmt.Errorf("%s and %s disagree on their shared face",
							m.TetrahedronString(t), m.TetrahedronString(u))
					}
				}
			}
			if back != 1 {
				return fmt.Errorf("asymmetric neighbor link between %s and %s",
					m.TetrahedronString(t), m.TetrahedronString(u))
			}
		}
	}
	return nil
}

func (m *Mesh3) faceSet(t, i int) [3]int {
	a, b, c := m.face(t, i)
	if a > b {
		a, b = b, a
	}
	if b > c {
		b, c = c, b
	}
	if a > b {
		a, b = b, a
	}
	return [3]int{a, b, c}
}

func sameFace(a, b [3]int) bool { return a == b }

// IsDelaunay verifies the empty-circumsphere property of every live
// tetrahedron against every vertex referenced by the mesh. Quadratic; meant
// for tests and debugging.
func (m *Mesh3) IsDelaunay() error {
	for t := range m.verts {
		if !m.alive[t] {
			continue
		}
		v := m.verts[t]
		for w := range m.points {
			if w == v[0] || w == v[1] || w == v[2] || w == v[3] {
				continue
			}
			if InSphere(m.pt(v[0]), m.pt(v[1]), m.pt(v[2]), m.pt(v[3]), m.pt(w)) > 0 {
				return fmt.Errorf("vertex %d lies inside the circumsphere of %s", w, m.TetrahedronString(t))
			}
		}
	}
	return nil
}

// TetrahedronString renders tetrahedron t for debugging: hull tetrahedra
// cyan, interior green, tombstoned red.
func (m *Mesh3) TetrahedronString(t int) string {
	name := dbg.Name(fmt.Sprintf("tet/%d", t))
	if !m.Alive(t) {
		return aurora.Red(name).String()
	}
	hull := false
	var neighbors []string
	for i := 0; i < 4; i++ {
		if m.neigh[t][i] == Outside {
			hull = true
			neighbors = append(neighbors, "∅")
		} else {
			neighbors = append(neighbors, dbg.Name(fmt.Sprintf("tet/%d", m.neigh[t][i])))
		}
	}
	if hull {
		name = aurora.Cyan(name).String()
	} else {
		name = aurora.Green(name).String()
	}
	v := m.verts[t]
	return fmt.Sprintf("%s (%d %d %d %d) <%s>", name, v[0], v[1], v[2], v[3], strings.Join(neighbors, ", "))
}
