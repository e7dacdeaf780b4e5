package advanced

import (
	"math"
	"math/big"
)

// Sign predicates for orientation and circumscribed-circle/sphere tests. The
// returned sign is the exact mathematical sign of the underlying determinant
// for the bit-exact values of the supplied float64 coordinates: zero is
// returned only when the determinant is truly zero.
//
// Each predicate first evaluates the determinant in floating point together
// with a conservative forward error bound derived from the permanent of
// absolute values. When the magnitude clears the bound the floating sign is
// already exact. Otherwise the determinant is re-evaluated over math/big
// rationals; every float64 is an exact rational, so the fallback sign is the
// true sign. The bound coefficients are the standard static filter constants
// for these determinant shapes.

const (
	ulpHalf = 1.1102230246251565e-16 // 2^-53

	orient2dBound = (3 + 16*ulpHalf) * ulpHalf
	orient3dBound = (7 + 56*ulpHalf) * ulpHalf
	inCircleBound = (10 + 96*ulpHalf) * ulpHalf
	inSphereBound = (16 + 224*ulpHalf) * ulpHalf
)

// Orient2D returns the sign of the signed area of triangle (a, b, c):
// +1 counter-clockwise, -1 clockwise, 0 collinear.
func Orient2D(a, b, c Point2) int {
	if !finite2(a) || !finite2(b) || !finite2(c) {
		fatalf(ErrInvalidInput, "orient2d(%v, %v, %v)", a, b, c)
	}

	detLeft := (a.X - c.X) * (b.Y - c.Y)
	detRight := (a.Y - c.Y) * (b.X - c.X)
	det := detLeft - detRight

	bound := orient2dBound * (math.Abs(detLeft) + math.Abs(detRight))
	if det > bound {
		return 1
	}
	if det < -bound {
		return -1
	}
	return orient2dExact(a, b, c)
}

// InCircle returns +1 if d lies strictly inside the circle through a, b, c,
// -1 strictly outside, 0 on the circle. (a, b, c) must be counter-clockwise.
func InCircle(a, b, c, d Point2) int {
	if !finite2(a) || !finite2(b) || !finite2(c) || !finite2(d) {
		fatalf(ErrInvalidInput, "incircle(%v, %v, %v, %v)", a, b, c, d)
	}

	adx := a.X - d.X
	ady := a.Y - d.Y
	bdx := b.X - d.X
	bdy := b.Y - d.Y
	cdx := c.X - d.X
	cdy := c.Y - d.Y

	aLift := adx*adx + ady*ady
	bLift := bdx*bdx + bdy*bdy
	cLift := cdx*cdx + cdy*cdy

	det := aLift*(bdx*cdy-cdx*bdy) +
		bLift*(cdx*ady-adx*cdy) +
		cLift*(adx*bdy-bdx*ady)

	permanent := aLift*(math.Abs(bdx*cdy)+math.Abs(cdx*bdy)) +
		bLift*(math.Abs(cdx*ady)+math.Abs(adx*cdy)) +
		cLift*(math.Abs(adx*bdy)+math.Abs(bdx*ady))

	bound := inCircleBound * permanent
	if det > bound {
		return 1
	}
	if det < -bound {
		return -1
	}
	return inCircleExact(a, b, c, d)
}

// Orient3D returns the sign of the signed volume of tetrahedron (a, b, c, d):
// +1 when d lies below the oriented plane (a, b, c), on the side opposite its
// right-hand-rule normal, so that a, b, c appear clockwise seen from d; -1
// above it; 0 coplanar.
func Orient3D(a, b, c, d Point3) int {
	if !finite3(a) || !finite3(b) || !finite3(c) || !finite3(d) {
		fatalf(ErrInvalidInput, "orient3d(%v, %v, %v, %v)", a, b, c, d)
	}

	adx := a.X - d.X
	ady := a.Y - d.Y
	adz := a.Z - d.Z
	bdx := b.X - d.X
	bdy := b.Y - d.Y
	bdz := b.Z - d.Z
	cdx := c.X - d.X
	cdy := c.Y - d.Y
	cdz := c.Z - d.Z

	det := adz*(bdx*cdy-cdx*bdy) +
		bdz*(cdx*ady-adx*cdy) +
		cdz*(adx*bdy-bdx*ady)

	permanent := math.Abs(adz)*(math.Abs(bdx*cdy)+math.Abs(cdx*bdy)) +
		math.Abs(bdz)*(math.Abs(cdx*ady)+math.Abs(adx*cdy)) +
		math.Abs(cdz)*(math.Abs(adx*bdy)+math.Abs(bdx*ady))

	bound := orient3dBound * permanent
	if det > bound {
		return 1
	}
	if det < -bound {
		return -1
	}
	return orient3dExact(a, b, c, d)
}

// InSphere returns +1 if e lies strictly inside the sphere through a, b, c,
// d, -1 strictly outside, 0 on the sphere. (a, b, c, d) must be positively
// oriented.
func InSphere(a, b, c, d, e Point3) int {
	if !finite3(a) || !finite3(b) || !finite3(c) || !finite3(d) || !finite3(e) {
		fatalf(ErrInvalidInput, "insphere(%v, %v, %v, %v, %v)", a, b, c, d, e)
	}

	aex := a.X - e.X
	aey := a.Y - e.Y
	aez := a.Z - e.Z
	bex := b.X - e.X
	bey := b.Y - e.Y
	bez := b.Z - e.Z
	cex := c.X - e.X
	cey := c.Y - e.Y
	cez := c.Z - e.Z
	dex := d.X - e.X
	dey := d.Y - e.Y
	dez := d.Z - e.Z

	ab := aex*bey - bex*aey
	bc := bex*cey - cex*bey
	cd := cex*dey - dex*cey
	da := dex*aey - aex*dey
	ac := aex*cey - cex*aey
	bd := bex*dey - dex*bey

	abc := aez*bc - bez*ac + cez*ab
	bcd := bez*cd - cez*bd + dez*bc
	cda := cez*da + dez*ac + aez*cd
	dab := dez*ab + aez*bd + bez*da

	aLift := aex*aex + aey*aey + aez*aez
	bLift := bex*bex + bey*bey + bez*bez
	cLift := cex*cex + cey*cey + cez*cez
	dLift := dex*dex + dey*dey + dez*dez

	det := (dLift*abc - cLift*dab) + (bLift*cda - aLift*bcd)

	aezAbs := math.Abs(aez)
	bezAbs := math.Abs(bez)
	cezAbs := math.Abs(cez)
	dezAbs := math.Abs(dez)
	permanent := ((math.Abs(cex*dey)+math.Abs(dex*cey))*bezAbs+
		(math.Abs(dex*bey)+math.Abs(bex*dey))*cezAbs+
		(math.Abs(bex*cey)+math.Abs(cex*bey))*dezAbs)*aLift +
		((math.Abs(dex*aey)+math.Abs(aex*dey))*cezAbs+
			(math.Abs(aex*cey)+math.Abs(cex*aey))*dezAbs+
			(math.Abs(cex*dey)+math.Abs(dex*cey))*aezAbs)*bLift +
		((math.Abs(aex*bey)+math.Abs(bex*aey))*dezAbs+
			(math.Abs(bex*dey)+math.Abs(dex*bey))*aezAbs+
			(math.Abs(dex*aey)+math.Abs(aex*dey))*bezAbs)*cLift +
		((math.Abs(bex*cey)+math.Abs(cex*bey))*aezAbs+
			(math.Abs(cex*aey)+math.Abs(aex*cey))*bezAbs+
			(math.Abs(aex*bey)+math.Abs(bex*aey))*cezAbs)*dLift

	bound := inSphereBound * permanent
	if det > bound {
		return 1
	}
	if det < -bound {
		return -1
	}
	return inSphereExact(a, b, c, d, e)
}

// Exact evaluation over big rationals. These run only when the float filter
// is inconclusive, which for well-separated inputs is never, and for
// degenerate inputs is exactly where the answer matters.

func rat(x float64) *big.Rat {
	return new(big.Rat).SetFloat64(x)
}

func ratSub(x, y float64) *big.Rat {
	return new(big.Rat).Sub(rat(x), rat(y))
}

// 2x2 determinant a*d - b*c.
func det2Rat(a, b, c, d *big.Rat) *big.Rat {
	ad := new(big.Rat).Mul(a, d)
	bc := new(big.Rat).Mul(b, c)
	return ad.Sub(ad, bc)
}

// 3x3 determinant by cofactor expansion along the first row.
func det3Rat(m [3][3]*big.Rat) *big.Rat {
	m0 := det2Rat(m[1][1], m[1][2], m[2][1], m[2][2])
	m1 := det2Rat(m[1][0], m[1][2], m[2][0], m[2][2])
	m2 := det2Rat(m[1][0], m[1][1], m[2][0], m[2][1])

	det := new(big.Rat).Mul(m[0][0], m0)
	det.Sub(det, m1.Mul(m[0][1], m1))
	det.Add(det, m2.Mul(m[0][2], m2))
	return det
}

func orient2dExact(a, b, c Point2) int {
	acx := ratSub(a.X, c.X)
	acy := ratSub(a.Y, c.Y)
	bcx := ratSub(b.X, c.X)
	bcy := ratSub(b.Y, c.Y)
	return det2Rat(acx, acy, bcx, bcy).Sign()
}

func liftedRow2(p, origin Point2) [3]*big.Rat {
	dx := ratSub(p.X, origin.X)
	dy := ratSub(p.Y, origin.Y)
	lift := new(big.Rat).Mul(dx, dx)
	lift.Add(lift, new(big.Rat).Mul(dy, dy))
	return [3]*big.Rat{dx, dy, lift}
}

func inCircleExact(a, b, c, d Point2) int {
	return det3Rat([3][3]*big.Rat{
		liftedRow2(a, d),
		liftedRow2(b, d),
		liftedRow2(c, d),
	}).Sign()
}

func diffRow3(p, origin Point3) [3]*big.Rat {
	return [3]*big.Rat{
		ratSub(p.X, origin.X),
		ratSub(p.Y, origin.Y),
		ratSub(p.Z, origin.Z),
	}
}

func orient3dExact(a, b, c, d Point3) int {
	return det3Rat([3][3]*big.Rat{
		diffRow3(a, d),
		diffRow3(b, d),
		diffRow3(c, d),
	}).Sign()
}

func inSphereExact(a, b, c, d, e Point3) int {
	rows := [4][3]*big.Rat{
		diffRow3(a, e),
		diffRow3(b, e),
		diffRow3(c, e),
		diffRow3(d, e),
	}
	lifts := [4]*big.Rat{}
	for i, r := range rows {
		lift := new(big.Rat).Mul(r[0], r[0])
		lift.Add(lift, new(big.Rat).Mul(r[1], r[1]))
		lift.Add(lift, new(big.Rat).Mul(r[2], r[2]))
		lifts[i] = lift
	}

	// Expand the 4x4 lifted determinant along the lift column.
	det := new(big.Rat)
	sign := -1
	for i := 0; i < 4; i++ {
		var minor [3][3]*big.Rat
		k := 0
		for j := 0; j < 4; j++ {
			if j == i {
				continue
			}
			minor[k] = rows[j]
			k++
		}
		term := new(big.Rat).Mul(lifts[i], det3Rat(minor))
		if sign > 0 {
			det.Add(det, term)
		} else {
			det.Sub(det, term)
		}
		sign = -sign
	}
	return det.Sign()
}
