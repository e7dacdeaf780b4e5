package advanced

// Point location by visibility walk: from the start simplex, cross any face
// whose oriented plane has the query strictly on the far side, until every
// face sign is non-negative or crossing would leave the hull. With Hilbert
// insertion order and a last-created-simplex hint the walk is expected
// constant length; correctness does not depend on that.

type LocationKind int

const (
	LocInside LocationKind = iota
	LocFace               // on a boundary facet (3D)
	LocEdge               // on an edge (2D bounding edge, or 3D edge)
	LocVertex             // coincides with an existing vertex
	LocOutside            // outside the convex hull
)

type Location struct {
	Kind    LocationKind
	Simplex int
	// Local face index: the zero-sign face for LocFace/LocEdge, the
	// boundary face the walk stopped at for LocOutside.
	Face int
	// Vertex index for LocVertex.
	Vertex int
}

func (m *Mesh2) liveStart(start int) int {
	if m.Alive(start) {
		return start
	}
	// A freed hint falls back to the lowest live slot.
	for t := range m.verts {
		if m.alive[t] {
			return t
		}
	}
	fatalf(ErrInternal, "locate on an empty mesh")
	return -1
}

func (m *Mesh2) neighborIndex(t, u int) int {
	for i := 0; i < 3; i++ {
		if m.neigh[t][i] == u {
			return i
		}
	}
	fatalf(ErrInternal, "triangle %d has no neighbor link to %d", t, u)
	return -1
}

// Locate classifies p against the mesh, starting the walk at the given hint.
func (m *Mesh2) Locate(p Point2, start int) Location {
	if !finite2(p) {
		fatalf(ErrInvalidInput, "locate(%v)", p)
	}
	t := m.liveStart(start)
	entry := -1
	maxSteps := 4 * (len(m.verts) + 16)

	for steps := 0; ; steps++ {
		if steps > maxSteps {
			fatalf(ErrInternal, "point location walk did not terminate")
		}

		cross := -1
		zeroA, zeroB := -1, -1
		for i := 0; i < 3; i++ {
			if i == entry {
				// We came through this edge; p is strictly on this side.
				continue
			}
			a, b := m.edge(t, i)
			switch s := Orient2D(m.pt(a), m.pt(b), p); {
			case s < 0:
				cross = i
			case s == 0:
				zeroA, zeroB = zeroB, i
			}
			if cross >= 0 {
				break
			}
		}

		if cross < 0 {
			switch {
			case zeroB < 0:
				return Location{Kind: LocInside, Simplex: t}
			case zeroA < 0:
				return Location{Kind: LocEdge, Simplex: t, Face: zeroB}
			default:
				// Two zero edges meet at the vertex opposite the third.
				v := m.verts[t][3-zeroA-zeroB]
				return Location{Kind: LocVertex, Simplex: t, Vertex: v}
			}
		}

		nb := m.neigh[t][cross]
		if nb == Outside {
			return Location{Kind: LocOutside, Simplex: t, Face: cross}
		}
		entry = m.neighborIndex(nb, t)
		t = nb
	}
}

func (m *Mesh3) liveStart(start int) int {
	if m.Alive(start) {
		return start
	}
	for t := range m.verts {
		if m.alive[t] {
			return t
		}
	}
	fatalf(ErrInternal, "locate on an empty mesh")
	return -1
}

// Locate classifies p against the mesh, starting the walk at the given hint.
func (m *Mesh3) Locate(p Point3, start int) Location {
	if !finite3(p) {
		fatalf(ErrInvalidInput, "locate(%v)", p)
	}
	t := m.liveStart(start)
	entry := -1
	maxSteps := 4 * (len(m.verts) + 16)

	for steps := 0; ; steps++ {
		if steps > maxSteps {
			fatalf(ErrInternal, "point location walk did not terminate")
		}

		cross := -1
		var zeros [4]int
		nZero := 0
		for i := 0; i < 4; i++ {
			if i == entry {
				continue
			}
			a, b, c := m.face(t, i)
			switch s := Orient3D(m.pt(a), m.pt(b), m.pt(c), p); {
			case s < 0:
				cross = i
			case s == 0:
				zeros[nZero] = i
				nZero++
			}
			if cross >= 0 {
				break
			}
		}

		if cross < 0 {
			switch nZero {
			case 0:
				return Location{Kind: LocInside, Simplex: t}
			case 1:
				return Location{Kind: LocFace, Simplex: t, Face: zeros[0]}
			case 2:
				return Location{Kind: LocEdge, Simplex: t, Face: zeros[0]}
			default:
				// Three zero faces meet at the remaining vertex.
				v := m.verts[t][6-zeros[0]-zeros[1]-zeros[2]]
				return Location{Kind: LocVertex, Simplex: t, Vertex: v}
			}
		}

		nb := m.neigh[t][cross]
		if nb == Outside {
			return Location{Kind: LocOutside, Simplex: t, Face: cross}
		}
		entry = m.neighborIndex(nb, t)
		t = nb
	}
}
