package advanced

import (
	"log"
	"os"
)

// Logger receives soft diagnostics (duplicate points). Collaborators may
// replace it; the core never writes anywhere else.
var Logger = log.New(os.Stderr, "", log.LstdFlags)

// Triangulate2D builds the Delaunay triangulation of the given points. It
// panics with a DelaunayError on hard failure; the package-level facade
// converts that to a returned error.
func Triangulate2D(input []Point2) *Mesh2 {
	for _, p := range input {
		if !finite2(p) {
			fatalf(ErrInvalidInput, "point %v", p)
		}
	}
	if len(input) < 3 {
		fatalf(ErrInsufficientInput, "need at least 3 points, have %d", len(input))
	}

	points := make([]Point2, len(input))
	copy(points, input)
	order := HilbertOrder2(points)
	m := NewMesh2(points)

	// Seed: the first two distinct points in Hilbert order, then the first
	// point off their line. Points skipped over are inserted normally once
	// the seed triangle exists.
	var pending []int
	i0 := order[0]
	i1 := -1
	pos := 1
	for ; pos < len(order); pos++ {
		if points[order[pos]] != points[i0] {
			i1 = order[pos]
			break
		}
		pending = append(pending, order[pos])
	}
	if i1 < 0 {
		fatalf(ErrInsufficientInput, "all %d points coincide", len(input))
	}
	i2 := -1
	for pos++; pos < len(order); pos++ {
		if Orient2D(points[i0], points[i1], points[order[pos]]) != 0 {
			i2 = order[pos]
			break
		}
		pending = append(pending, order[pos])
	}
	if i2 < 0 {
		fatalf(ErrInsufficientInput, "all %d points are collinear", len(input))
	}

	a, b, c := i0, i1, i2
	if Orient2D(points[a], points[b], points[c]) < 0 {
		b, c = c, b
	}
	hint := m.newTriangle([3]int{a, b, c}, [3]int{Outside, Outside, Outside})

	var dropped []int
	insert := func(vi int) {
		loc := m.Locate(points[vi], hint)
		if loc.Kind == LocVertex {
			Logger.Printf("delaunay: dropping duplicate point %v of vertex %d", points[vi], loc.Vertex)
			dropped = append(dropped, vi)
			return
		}
		hint = m.InsertVertex(vi, loc)
	}
	for _, vi := range pending {
		insert(vi)
	}
	for pos++; pos < len(order); pos++ {
		insert(order[pos])
	}

	if len(dropped) > 0 {
		m.compactPoints(dropped)
	}
	return m
}

// Triangulate3D builds the Delaunay tetrahedralization of the given points.
// It panics with a DelaunayError on hard failure; the package-level facade
// converts that to a returned error.
func Triangulate3D(input []Point3) *Mesh3 {
	for _, p := range input {
		if !finite3(p) {
			fatalf(ErrInvalidInput, "point %v", p)
		}
	}
	if len(input) < 4 {
		fatalf(ErrInsufficientInput, "need at least 4 points, have %d", len(input))
	}

	points := make([]Point3, len(input))
	copy(points, input)
	order := HilbertOrder3(points)
	m := NewMesh3(points)

	// Seed: two distinct points, a third off their line, a fourth off their
	// plane, scanned in Hilbert order with skipped points pending.
	var pending []int
	i0 := order[0]
	i1 := -1
	pos := 1
	for ; pos < len(order); pos++ {
		if points[order[pos]] != points[i0] {
			i1 = order[pos]
			break
		}
		pending = append(pending, order[pos])
	}
	if i1 < 0 {
		fatalf(ErrInsufficientInput, "all %d points coincide", len(input))
	}
	i2 := -1
	for pos++; pos < len(order); pos++ {
		if !collinear3(points[i0], points[i1], points[order[pos]]) {
			i2 = order[pos]
			break
		}
		pending = append(pending, order[pos])
	}
	if i2 < 0 {
		fatalf(ErrInsufficientInput, "all %d points are collinear", len(input))
	}
	i3 := -1
	for pos++; pos < len(order); pos++ {
		if Orient3D(points[i0], points[i1], points[i2], points[order[pos]]) != 0 {
			i3 = order[pos]
			break
		}
		pending = append(pending, order[pos])
	}
	if i3 < 0 {
		fatalf(ErrInsufficientInput, "all %d points are coplanar", len(input))
	}

	a, b, c, d := i0, i1, i2, i3
	if Orient3D(points[a], points[b], points[c], points[d]) < 0 {
		c, d = d, c
	}
	hint := m.newTetrahedron([4]int{a, b, c, d}, [4]int{Outside, Outside, Outside, Outside})

	var dropped []int
	insert := func(vi int) {
		loc := m.Locate(points[vi], hint)
		if loc.Kind == LocVertex {
			Logger.Printf("delaunay: dropping duplicate point %v of vertex %d", points[vi], loc.Vertex)
			dropped = append(dropped, vi)
			return
		}
		hint = m.InsertVertex(vi, loc)
	}
	for _, vi := range pending {
		insert(vi)
	}
	for pos++; pos < len(order); pos++ {
		insert(order[pos])
	}

	if len(dropped) > 0 {
		m.compactPoints(dropped)
	}
	return m
}

// Exact collinearity of three points in space: collinear iff every axis
// projection is collinear.
func collinear3(a, b, c Point3) bool {
	return Orient2D(Point2{X: a.X, Y: a.Y}, Point2{X: b.X, Y: b.Y}, Point2{X: c.X, Y: c.Y}) == 0 &&
		Orient2D(Point2{X: a.X, Y: a.Z}, Point2{X: b.X, Y: b.Z}, Point2{X: c.X, Y: c.Z}) == 0 &&
		Orient2D(Point2{X: a.Y, Y: a.Z}, Point2{X: b.Y, Y: b.Z}, Point2{X: c.Y, Y: c.Z}) == 0
}

// Drop duplicate points from the point slice and renumber simplex vertices,
// so vertex indices refer to the input with duplicates removed.
func (m *Mesh2) compactPoints(dropped []int) {
	remap, points := compactRemap2(m.points, dropped)
	m.points = points
	for t := range m.verts {
		if !m.alive[t] {
			continue
		}
		for k := 0; k < 3; k++ {
			nv := remap[m.verts[t][k]]
			if nv < 0 {
				fatalf(ErrInternal, "dropped vertex %d is referenced by triangle %d", m.verts[t][k], t)
			}
			m.verts[t][k] = nv
		}
	}
}

func (m *Mesh3) compactPoints(dropped []int) {
	remap, points := compactRemap3(m.points, dropped)
	m.points = points
	for t := range m.verts {
		if !m.alive[t] {
			continue
		}
		for k := 0; k < 4; k++ {
			nv := remap[m.verts[t][k]]
			if nv < 0 {
				fatalf(ErrInternal, "dropped vertex %d is referenced by tetrahedron %d", m.verts[t][k], t)
			}
			m.verts[t][k] = nv
		}
	}
}

func compactRemap2(points []Point2, dropped []int) ([]int, []Point2) {
	drop := make(map[int]bool, len(dropped))
	for _, i := range dropped {
		drop[i] = true
	}
	remap := make([]int, len(points))
	kept := make([]Point2, 0, len(points)-len(dropped))
	for i, p := range points {
		if drop[i] {
			remap[i] = -1
			continue
		}
		remap[i] = len(kept)
		kept = append(kept, p)
	}
	return remap, kept
}

func compactRemap3(points []Point3, dropped []int) ([]int, []Point3) {
	drop := make(map[int]bool, len(dropped))
	for _, i := range dropped {
		drop[i] = true
	}
	remap := make([]int, len(points))
	kept := make([]Point3, 0, len(points)-len(dropped))
	for i, p := range points {
		if drop[i] {
			remap[i] = -1
			continue
		}
		remap[i] = len(kept)
		kept = append(kept, p)
	}
	return remap, kept
}
