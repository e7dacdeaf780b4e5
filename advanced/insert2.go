package advanced

// Point insertion into a 2D mesh: split the located triangle (or fan over
// the visible hull for exterior points), then restore the Delaunay property
// with Lawson edge flips driven by a stack of suspect edges opposite the new
// vertex.

// InsertVertex splices vertex vi into the mesh at the given location and
// returns a live triangle incident to it, used as the next walk hint. The
// caller resolves LocVertex (duplicate) before calling.
func (m *Mesh2) InsertVertex(vi int, loc Location) int {
	var stack edgeStack
	var created int
	switch loc.Kind {
	case LocInside:
		created = m.splitInside(vi, loc.Simplex, &stack)
	case LocEdge:
		created = m.splitEdge(vi, loc.Simplex, loc.Face, &stack)
	case LocOutside:
		created = m.extendHull(vi, loc.Simplex, loc.Face, &stack)
	default:
		fatalf(ErrInternal, "unexpected location kind %d for insertion", loc.Kind)
	}
	if last := m.lawson(vi, &stack); last >= 0 {
		return last
	}
	return created
}

// Split triangle t into three by connecting vi to its vertices.
func (m *Mesh2) splitInside(vi, t int, stack *edgeStack) int {
	v := m.verts[t]
	n := m.neigh[t]

	tb := m.newTriangle([3]int{v[1], v[2], vi}, [3]int{Outside, Outside, Outside})
	tc := m.newTriangle([3]int{v[2], v[0], vi}, [3]int{Outside, Outside, Outside})
	m.replaceTriangle(t, [3]int{v[0], v[1], vi}, [3]int{tb, tc, n[2]})
	m.neigh[tb] = [3]int{tc, t, n[0]}
	m.neigh[tc] = [3]int{t, tb, n[1]}
	m.repointNeighbor(n[0], t, tb)
	m.repointNeighbor(n[1], t, tc)

	stack.push(edgeRef{t, 2})
	stack.push(edgeRef{tb, 2})
	stack.push(edgeRef{tc, 2})
	return tc
}

// Split triangle t and its neighbor across edge e (when there is one) by
// connecting vi, which lies on that edge, to the two opposite vertices.
func (m *Mesh2) splitEdge(vi, t, e int, stack *edgeStack) int {
	v := m.verts[t]
	a := v[(e+1)%3]
	b := v[(e+2)%3]
	c := v[e]
	u := m.neigh[t][e]
	nA := m.neigh[t][(e+1)%3] // across (b, c)
	nB := m.neigh[t][(e+2)%3] // across (c, a)

	t2 := m.newTriangle([3]int{vi, b, c}, [3]int{nA, Outside, Outside})
	m.replaceTriangle(t, [3]int{a, vi, c}, [3]int{t2, nB, Outside})
	m.setNeighbor(t2, 1, t)
	m.repointNeighbor(nA, t, t2)

	stack.push(edgeRef{t, 1})
	stack.push(edgeRef{t2, 0})

	if u == Outside {
		return t2
	}

	k := m.neighborIndex(u, t)
	uv := m.verts[u]
	d := uv[k]
	if uv[(k+1)%3] != b || uv[(k+2)%3] != a {
		fatalf(ErrInternal, "triangles %d/%d disagree on their shared edge", t, u)
	}
	uA := m.neigh[u][(k+2)%3] // across (d, b)
	uB := m.neigh[u][(k+1)%3] // across (a, d)

	u2 := m.newTriangle([3]int{vi, a, d}, [3]int{uB, Outside, t})
	m.replaceTriangle(u, [3]int{b, vi, d}, [3]int{u2, uA, t2})
	m.setNeighbor(u2, 1, u)
	m.repointNeighbor(uB, u, u2)

	m.setNeighbor(t, 2, u2)
	m.setNeighbor(t2, 2, u)

	stack.push(edgeRef{u, 1})
	stack.push(edgeRef{u2, 0})
	return u2
}

type hullEdge struct {
	t, i int
}

// Extend the hull: fan triangles from vi over every boundary edge strictly
// visible from it, starting at the edge the walk exited through.
func (m *Mesh2) extendHull(vi, t, e int, stack *edgeStack) int {
	p := m.pt(vi)
	limit := 3 * len(m.verts)

	edges := []hullEdge{{t, e}}
	cur, curFace := m.nextHullEdge(t, e)
	for n := 0; ; n++ {
		if n > limit {
			fatalf(ErrInternal, "hull traversal did not terminate")
		}
		if cur == t && curFace == e {
			break // full cycle; every hull edge is visible
		}
		a, b := m.edge(cur, curFace)
		if Orient2D(m.pt(a), m.pt(b), p) >= 0 {
			break
		}
		edges = append(edges, hullEdge{cur, curFace})
		cur, curFace = m.nextHullEdge(cur, curFace)
	}
	cur, curFace = m.prevHullEdge(t, e)
	for n := 0; ; n++ {
		if n > limit {
			fatalf(ErrInternal, "hull traversal did not terminate")
		}
		if cur == edges[len(edges)-1].t && curFace == edges[len(edges)-1].i {
			break
		}
		a, b := m.edge(cur, curFace)
		if Orient2D(m.pt(a), m.pt(b), p) >= 0 {
			break
		}
		edges = append([]hullEdge{{cur, curFace}}, edges...)
		cur, curFace = m.prevHullEdge(cur, curFace)
	}

	fans := make([]int, len(edges))
	for j, he := range edges {
		a, b := m.edge(he.t, he.i)
		fans[j] = m.newTriangle([3]int{b, a, vi}, [3]int{Outside, Outside, he.t})
		m.setNeighbor(he.t, he.i, fans[j])
		stack.push(edgeRef{fans[j], 2})
	}
	for j := 0; j+1 < len(fans); j++ {
		m.setNeighbor(fans[j], 1, fans[j+1])
		m.setNeighbor(fans[j+1], 0, fans[j])
	}
	return fans[len(fans)-1]
}

// The hull edge following (t, i) in counter-clockwise hull order, found by
// rotating around the edge's end vertex.
func (m *Mesh2) nextHullEdge(t, i int) (int, int) {
	b := m.verts[t][(i+2)%3]
	cur, cross := t, (i+1)%3
	for n := 0; ; n++ {
		if n > 3*len(m.verts) {
			fatalf(ErrInternal, "hull rotation did not terminate")
		}
		nb := m.neigh[cur][cross]
		if nb == Outside {
			return cur, cross
		}
		entry := m.neighborIndex(nb, cur)
		cur = nb
		cross = 3 - m.vertexIndex(cur, b) - entry
	}
}

// The hull edge preceding (t, i), found by rotating around the edge's start
// vertex.
func (m *Mesh2) prevHullEdge(t, i int) (int, int) {
	a := m.verts[t][(i+1)%3]
	cur, cross := t, (i+2)%3
	for n := 0; ; n++ {
		if n > 3*len(m.verts) {
			fatalf(ErrInternal, "hull rotation did not terminate")
		}
		nb := m.neigh[cur][cross]
		if nb == Outside {
			return cur, cross
		}
		entry := m.neighborIndex(nb, cur)
		cur = nb
		cross = 3 - m.vertexIndex(cur, a) - entry
	}
}

// Drain the suspect-edge stack, flipping every edge whose opposite vertex
// falls strictly inside the circumcircle. An exact zero never flips.
func (m *Mesh2) lawson(vi int, stack *edgeStack) int {
	last := -1
	for {
		ref, ok := stack.pop()
		if !ok {
			return last
		}
		t := ref.T
		// Slots are recycled by flips; entries that no longer name an edge
		// opposite vi are stale.
		if !m.Alive(t) || m.verts[t][ref.E] != vi {
			continue
		}
		u := m.neigh[t][ref.E]
		if u == Outside {
			continue
		}
		k := m.neighborIndex(u, t)
		q := m.verts[u][k]
		v := m.verts[t]
		if InCircle(m.pt(v[0]), m.pt(v[1]), m.pt(v[2]), m.pt(q)) <= 0 {
			continue
		}

		e := ref.E
		p := v[e]
		a := v[(e+1)%3]
		b := v[(e+2)%3]
		uv := m.verts[u]
		if uv[(k+1)%3] != b || uv[(k+2)%3] != a {
			fatalf(ErrInternal, "triangles %d/%d disagree on their shared edge", t, u)
		}
		tA := m.neigh[t][(e+2)%3] // across (p, a)
		tB := m.neigh[t][(e+1)%3] // across (b, p)
		uA := m.neigh[u][(k+1)%3] // across (a, q)
		uB := m.neigh[u][(k+2)%3] // across (q, b)

		// Swap the diagonal: (p,a,b)+(b,a,q) become (p,a,q)+(p,q,b).
		m.replaceTriangle(t, [3]int{p, a, q}, [3]int{uA, u, tA})
		m.replaceTriangle(u, [3]int{p, q, b}, [3]int{uB, tB, t})
		m.repointNeighbor(uA, u, t)
		m.repointNeighbor(tB, t, u)

		stack.push(edgeRef{t, 0})
		stack.push(edgeRef{u, 0})
		last = u
	}
}
