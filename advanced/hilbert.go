package advanced

import "sort"

// Insertion preorder along a Hilbert curve over the bounding box. Consecutive
// points in the returned permutation are spatially close, which keeps the
// point-location walk short when each insertion starts from the previous one.
//
// Points are snapped to an integer grid of 2^order cells per axis, the grid
// cell is folded into a Hilbert index, and the indices are sorted stably with
// the original position as tie-break. The permutation is always a bijection
// on 0..n-1, even for coincident points or a degenerate bounding box.

const (
	maxHilbertOrder2 = 16 // key fits 32 bits
	maxHilbertOrder3 = 21 // key fits 63 bits
)

// Curve order such that the per-axis grid resolution exceeds n^(1/d).
func hilbertOrder(n, dim, max int) uint {
	order := uint(1)
	for int(order) < max && 1<<(order*uint(dim)) <= n {
		order++
	}
	return order
}

func gridCoord(v, min, max float64, cells uint32) uint32 {
	if max <= min {
		return 0
	}
	g := uint32(float64(cells) * (v - min) / (max - min))
	if g >= cells {
		g = cells - 1
	}
	return g
}

// Classic 2D fold: per quadrant, rotate/reflect and accumulate.
func hilbertKey2(x, y uint32, order uint) uint64 {
	n := uint32(1) << order
	var key uint64
	for s := n / 2; s > 0; s /= 2 {
		var rx, ry uint32
		if x&s > 0 {
			rx = 1
		}
		if y&s > 0 {
			ry = 1
		}
		key += uint64(s) * uint64(s) * uint64((3*rx)^ry)

		// Rotate the quadrant
		if ry == 0 {
			if rx == 1 {
				x = n - 1 - x
				y = n - 1 - y
			}
			x, y = y, x
		}
	}
	return key
}

// Skilling's transpose algorithm for three axes: undo excess Gray-code work
// top-down, Gray encode, then interleave bits most significant first.
func hilbertKey3(x, y, z uint32, order uint) uint64 {
	ax := [3]uint32{x, y, z}

	m := uint32(1) << (order - 1)
	for q := m; q > 1; q >>= 1 {
		p := q - 1
		for i := 0; i < 3; i++ {
			if ax[i]&q != 0 {
				ax[0] ^= p
			} else {
				t := (ax[0] ^ ax[i]) & p
				ax[0] ^= t
				ax[i] ^= t
			}
		}
	}
	ax[1] ^= ax[0]
	ax[2] ^= ax[1]
	var t uint32
	for q := m; q > 1; q >>= 1 {
		if ax[2]&q != 0 {
			t ^= q - 1
		}
	}
	for i := 0; i < 3; i++ {
		ax[i] ^= t
	}

	var key uint64
	for b := int(order) - 1; b >= 0; b-- {
		for i := 0; i < 3; i++ {
			key = key<<1 | uint64(ax[i]>>uint(b)&1)
		}
	}
	return key
}

func hilbertPerm(n int, keys []uint64) []int {
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	sort.SliceStable(perm, func(i, j int) bool {
		return keys[perm[i]] < keys[perm[j]]
	})
	return perm
}

// HilbertOrder2 returns the insertion order for a 2D point set.
func HilbertOrder2(points []Point2) []int {
	if len(points) == 0 {
		return nil
	}
	min, max := points[0], points[0]
	for _, p := range points[1:] {
		if p.X < min.X {
			min.X = p.X
		}
		if p.Y < min.Y {
			min.Y = p.Y
		}
		if p.X > max.X {
			max.X = p.X
		}
		if p.Y > max.Y {
			max.Y = p.Y
		}
	}

	order := hilbertOrder(len(points), 2, maxHilbertOrder2)
	cells := uint32(1) << order
	keys := make([]uint64, len(points))
	for i, p := range points {
		gx := gridCoord(p.X, min.X, max.X, cells)
		gy := gridCoord(p.Y, min.Y, max.Y, cells)
		keys[i] = hilbertKey2(gx, gy, order)
	}
	return hilbertPerm(len(points), keys)
}

// HilbertOrder3 returns the insertion order for a 3D point set.
func HilbertOrder3(points []Point3) []int {
	if len(points) == 0 {
		return nil
	}
	min, max := points[0], points[0]
	for _, p := range points[1:] {
		if p.X < min.X {
			min.X = p.X
		}
		if p.Y < min.Y {
			min.Y = p.Y
		}
		if p.Z < min.Z {
			min.Z = p.Z
		}
		if p.X > max.X {
			max.X = p.X
		}
		if p.Y > max.Y {
			max.Y = p.Y
		}
		if p.Z > max.Z {
			max.Z = p.Z
		}
	}

	order := hilbertOrder(len(points), 3, maxHilbertOrder3)
	cells := uint32(1) << order
	keys := make([]uint64, len(points))
	for i, p := range points {
		gx := gridCoord(p.X, min.X, max.X, cells)
		gy := gridCoord(p.Y, min.Y, max.Y, cells)
		gz := gridCoord(p.Z, min.Z, max.Z, cells)
		keys[i] = hilbertKey3(gx, gy, gz, order)
	}
	return hilbertPerm(len(points), keys)
}
