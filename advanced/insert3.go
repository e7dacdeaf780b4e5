package advanced

// Point insertion into a 3D mesh by Bowyer-Watson cavity construction: a
// breadth-first search collects every tetrahedron whose circumsphere strictly
// contains the point (an exact-zero sign stays outside the cavity), the
// cavity is replaced by a star of new tetrahedra from its boundary faces to
// the point, and the cavity slots are tombstoned.
//
// Exterior points reuse the same machinery: each hull face carries an
// implicit ghost cell, and a ghost is in the cavity when its face is
// strictly visible from the point (or coplanar with it while the tetrahedron
// behind is in the cavity). Star faces contributed by cavity ghosts grow the
// hull; a star base edge left unmatched becomes a new hull edge.

type bwNode struct {
	ghost bool
	t     int // tetrahedron slot; for ghosts, the tetrahedron behind the hull face
	f     int // hull face index, ghosts only
}

type bwFace struct {
	a, b, c   int // oriented toward the cavity
	outer     int // non-cavity tetrahedron behind the face, or Outside
	outerFace int
}

// InsertVertex splices vertex vi into the mesh at the given location and
// returns a live tetrahedron incident to it, used as the next walk hint. The
// caller resolves LocVertex (duplicate) before calling.
func (m *Mesh3) InsertVertex(vi int, loc Location) int {
	p := m.pt(vi)

	realIn := make(map[int]bool)
	ghostIn := make(map[int]bool)
	var queue, cavity []bwNode

	visitReal := func(t int) {
		if _, ok := realIn[t]; ok {
			return
		}
		in := m.inSphereOf(t, p) > 0
		realIn[t] = in
		if in {
			n := bwNode{t: t}
			queue = append(queue, n)
			cavity = append(cavity, n)
		}
	}
	visitGhost := func(t, f int) {
		key := t*4 + f
		if _, ok := ghostIn[key]; ok {
			return
		}
		a, b, c := m.face(t, f)
		s := Orient3D(m.pt(a), m.pt(b), m.pt(c), p)
		// The inward sign is negative when p is strictly outside the hull
		// face. Coplanar exterior regions join the cavity only when the
		// tetrahedron behind the face does, so the hull grows over them.
		in := s < 0 || s == 0 && m.inSphereOf(t, p) > 0
		ghostIn[key] = in
		if in {
			n := bwNode{ghost: true, t: t, f: f}
			queue = append(queue, n)
			cavity = append(cavity, n)
		}
	}

	if loc.Kind == LocOutside {
		visitGhost(loc.Simplex, loc.Face)
	} else {
		visitReal(loc.Simplex)
	}

	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		if n.ghost {
			visitReal(n.t)
			fv := tetFace[n.f]
			for e := 0; e < 3; e++ {
				u := m.verts[n.t][fv[e]]
				v := m.verts[n.t][fv[(e+1)%3]]
				gt, gf := m.adjacentHullFace(n.t, n.f, u, v)
				visitGhost(gt, gf)
			}
			continue
		}
		for f := 0; f < 4; f++ {
			if nb := m.neigh[n.t][f]; nb == Outside {
				visitGhost(n.t, f)
			} else {
				visitReal(nb)
			}
		}
	}

	if len(cavity) == 0 {
		fatalf(ErrGeometricDegeneracy, "empty cavity for vertex %d", vi)
	}

	// Boundary faces, in deterministic cavity discovery order.
	var faces []bwFace
	for _, n := range cavity {
		if n.ghost {
			if !realIn[n.t] {
				a, b, c := m.face(n.t, n.f)
				faces = append(faces, bwFace{a: a, b: c, c: b, outer: n.t, outerFace: n.f})
			}
			continue
		}
		for f := 0; f < 4; f++ {
			nb := m.neigh[n.t][f]
			if nb == Outside {
				if !ghostIn[n.t*4+f] {
					a, b, c := m.face(n.t, f)
					faces = append(faces, bwFace{a: a, b: b, c: c, outer: Outside})
				}
			} else if !realIn[nb] {
				a, b, c := m.face(n.t, f)
				faces = append(faces, bwFace{a: a, b: b, c: c, outer: nb, outerFace: m.neighborIndex(nb, n.t)})
			}
		}
	}

	// Validate before mutating anything, so a corrupt cavity leaves the mesh
	// untouched. The star must see every boundary face from p, and a base
	// edge may bound at most two star faces (exactly one on the hull rim).
	edgeCount := make(map[[2]int]int)
	for _, bf := range faces {
		if Orient3D(m.pt(bf.a), m.pt(bf.b), m.pt(bf.c), p) <= 0 {
			fatalf(ErrGeometricDegeneracy, "cavity of vertex %d is not star-shaped", vi)
		}
		for _, e := range [3][2]int{{bf.b, bf.c}, {bf.a, bf.c}, {bf.a, bf.b}} {
			edgeCount[edgeKey(e[0], e[1])]++
		}
	}
	for _, c := range edgeCount {
		if c > 2 {
			fatalf(ErrGeometricDegeneracy, "cavity boundary edge shared by %d faces", c)
		}
	}

	// Build the star and splice it in.
	type edgeSlot struct {
		t, f int
	}
	open := make(map[[2]int]edgeSlot)
	last := -1
	newTets := make([]int, len(faces))
	for i, bf := range faces {
		nt := m.newTetrahedron(
			[4]int{bf.a, bf.b, bf.c, vi},
			[4]int{Outside, Outside, Outside, bf.outer},
		)
		newTets[i] = nt
		last = nt
		if bf.outer >= 0 {
			m.setNeighbor(bf.outer, bf.outerFace, nt)
		}
	}
	for i, bf := range faces {
		nt := newTets[i]
		base := [3][2]int{{bf.b, bf.c}, {bf.a, bf.c}, {bf.a, bf.b}}
		for f, e := range base {
			key := edgeKey(e[0], e[1])
			if other, ok := open[key]; ok {
				m.setNeighbor(nt, f, other.t)
				m.setNeighbor(other.t, other.f, nt)
				delete(open, key)
			} else {
				open[key] = edgeSlot{nt, f}
			}
		}
	}

	for _, n := range cavity {
		if !n.ghost {
			m.freeTetrahedron(n.t)
		}
	}
	return last
}

func edgeKey(u, v int) [2]int {
	if u > v {
		u, v = v, u
	}
	return [2]int{u, v}
}

func (m *Mesh3) inSphereOf(t int, p Point3) int {
	v := m.verts[t]
	return InSphere(m.pt(v[0]), m.pt(v[1]), m.pt(v[2]), m.pt(v[3]), p)
}

// The other hull face sharing edge {u, v} with hull face f of tetrahedron t,
// found by rotating around the edge through the interior.
func (m *Mesh3) adjacentHullFace(t, f, u, v int) (int, int) {
	cur, avoid := t, f
	for n := 0; ; n++ {
		if n > 4*len(m.verts) {
			fatalf(ErrInternal, "hull rotation did not terminate")
		}
		cross := -1
		for k := 0; k < 4; k++ {
			if k == avoid {
				continue
			}
			if w := m.verts[cur][k]; w != u && w != v {
				cross = k
				break
			}
		}
		if cross < 0 {
			fatalf(ErrInternal, "tetrahedron %d has no second face on edge %d-%d", cur, u, v)
		}
		nb := m.neigh[cur][cross]
		if nb == Outside {
			return cur, cross
		}
		avoid = m.neighborIndex(nb, cur)
		cur = nb
	}
}
