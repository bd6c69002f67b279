package ecc

import "gitlab.com/yawning/tomkit.git/bignum"

// jacobianPoint carries spec.md §3's ECC point invariant: (x, y, z) with
// z=1 in affine form, z=0 denoting the point at infinity.
type jacobianPoint struct {
	X, Y, Z *bignum.Int
}

func infinity() *jacobianPoint {
	return &jacobianPoint{X: bignum.New(), Y: bignum.New(), Z: bignum.New()}
}

func mod(v, p *bignum.Int) *bignum.Int {
	r, _ := bignum.New().Mod(v, p)
	return r
}

func addP(a, b, p *bignum.Int) *bignum.Int { return mod(bignum.New().Add(a, b), p) }
func subP(a, b, p *bignum.Int) *bignum.Int { return mod(bignum.New().Sub(a, b), p) }
func mulP(a, b, p *bignum.Int) *bignum.Int { return mod(bignum.New().Mul(a, b), p) }
func sqrP(a, p *bignum.Int) *bignum.Int    { return mod(bignum.New().Sqr(a), p) }
func lshP(a *bignum.Int, n uint, p *bignum.Int) *bignum.Int {
	return mod(bignum.New().Lsh(a, n), p)
}

// double implements spec.md §4.2's doubling formula, special-cased for
// a = p-3 (the "When a ≡ −3 (mod p)" branch): M = 3(X-Z²)(X+Z²); S =
// 4XY²; T = Y⁴; X' = M²-2S; Y' = M(S-X')-8T; Z' = 2YZ. Ported from the
// standard-library crypto/elliptic CurveParams implementation's
// doubleJacobian, which uses this same a=-3 shortcut.
func (c *Curve) double(pt *jacobianPoint) *jacobianPoint {
	p := c.P
	if pt.Z.IsZero() {
		return infinity()
	}

	delta := sqrP(pt.Z, p)             // Z²
	gamma := sqrP(pt.Y, p)             // Y²
	alpha1 := subP(pt.X, delta, p)     // X - Z²
	alpha2 := addP(pt.X, delta, p)     // X + Z²
	alpha := mulP(alpha1, alpha2, p)   // (X-Z²)(X+Z²)
	m := mulP(bignum.FromInt64(3), alpha, p)

	beta := mulP(pt.X, gamma, p) // X*Y²

	x3 := sqrP(m, p)
	beta8 := lshP(beta, 3, p)
	x3 = subP(x3, beta8, p)

	zSum := addP(pt.Y, pt.Z, p)
	z3 := sqrP(zSum, p)
	z3 = subP(z3, gamma, p)
	z3 = subP(z3, delta, p)

	beta4 := lshP(beta, 2, p)
	beta4 = subP(beta4, x3, p)
	y3 := mulP(m, beta4, p)
	gamma2 := lshP(sqrP(gamma, p), 3, p)
	y3 = subP(y3, gamma2, p)

	return &jacobianPoint{X: x3, Y: y3, Z: z3}
}

// add implements the standard Jacobian mixed/full addition (add-2007-bl),
// handling the point-at-infinity and doubling special cases.
func (c *Curve) add(a, b *jacobianPoint) *jacobianPoint {
	p := c.P
	if a.Z.IsZero() {
		return &jacobianPoint{X: b.X.Clone(), Y: b.Y.Clone(), Z: b.Z.Clone()}
	}
	if b.Z.IsZero() {
		return &jacobianPoint{X: a.X.Clone(), Y: a.Y.Clone(), Z: a.Z.Clone()}
	}

	z1z1 := sqrP(a.Z, p)
	z2z2 := sqrP(b.Z, p)

	u1 := mulP(a.X, z2z2, p)
	u2 := mulP(b.X, z1z1, p)
	h := subP(u2, u1, p)
	xEqual := h.IsZero()

	i := sqrP(lshP(h, 1, p), p)
	j := mulP(h, i, p)

	s1 := mulP(mulP(a.Y, b.Z, p), z2z2, p)
	s2 := mulP(mulP(b.Y, a.Z, p), z1z1, p)
	r := subP(s2, s1, p)
	yEqual := r.IsZero()

	if xEqual && yEqual {
		return c.double(a)
	}

	r = lshP(r, 1, p)
	v := mulP(u1, i, p)

	x3 := sqrP(r, p)
	x3 = subP(x3, j, p)
	x3 = subP(x3, lshP(v, 1, p), p)

	y3 := mulP(r, subP(v, x3, p), p)
	s1j2 := lshP(mulP(s1, j, p), 1, p)
	y3 = subP(y3, s1j2, p)

	z3 := sqrP(addP(a.Z, b.Z, p), p)
	z3 = subP(z3, z1z1, p)
	z3 = subP(z3, z2z2, p)
	z3 = mulP(z3, h, p)

	return &jacobianPoint{X: x3, Y: y3, Z: z3}
}

func (c *Curve) affine(pt *jacobianPoint) (x, y *bignum.Int) {
	if pt.Z.IsZero() {
		return bignum.New(), bignum.New()
	}
	zInv, err := bignum.New().InvMod(pt.Z, c.P)
	if err != nil {
		return bignum.New(), bignum.New()
	}
	zInv2 := sqrP(zInv, c.P)
	x = mulP(pt.X, zInv2, c.P)
	zInv3 := mulP(zInv2, zInv, c.P)
	y = mulP(pt.Y, zInv3, c.P)
	return x, y
}

func (c *Curve) toJacobian(x, y *bignum.Int) *jacobianPoint {
	if x.IsZero() && y.IsZero() {
		return infinity()
	}
	return &jacobianPoint{X: x.Clone(), Y: y.Clone(), Z: bignum.FromInt64(1)}
}

// scalarMult computes k*(x,y) with a left-to-right bit-by-bit
// double-and-add ladder (spec.md §4.2's "windowed ladder" simplified to a
// single-bit window — functionally identical, see DESIGN.md).
func (c *Curve) scalarMult(x, y *bignum.Int, k *bignum.Int) (*bignum.Int, *bignum.Int) {
	base := c.toJacobian(x, y)
	acc := infinity()
	for i := k.BitLen() - 1; i >= 0; i-- {
		acc = c.double(acc)
		if k.Bit(i) == 1 {
			acc = c.add(acc, base)
		}
	}
	return c.affine(acc)
}

// ScalarMult computes k*(x,y) in affine coordinates.
func (c *Curve) ScalarMult(x, y, k *bignum.Int) (*bignum.Int, *bignum.Int) {
	return c.scalarMult(x, y, k)
}

// ScalarBaseMult computes k*G in affine coordinates.
func (c *Curve) ScalarBaseMult(k *bignum.Int) (*bignum.Int, *bignum.Int) {
	return c.scalarMult(c.Gx, c.Gy, k)
}

// ShamirSum computes k1*(x1,y1) + k2*(x2,y2) in affine coordinates via a
// joint double-and-add pass over both scalars (Shamir's trick, spec.md
// §4.2's mul2add), halving the doublings ECDSA verification would
// otherwise need from two independent scalar multiplications.
func (c *Curve) ShamirSum(x1, y1, k1, x2, y2, k2 *bignum.Int) (*bignum.Int, *bignum.Int) {
	p1 := c.toJacobian(x1, y1)
	p2 := c.toJacobian(x2, y2)
	sum := c.add(p1, p2)

	bits := k1.BitLen()
	if k2.BitLen() > bits {
		bits = k2.BitLen()
	}

	acc := infinity()
	for i := bits - 1; i >= 0; i-- {
		acc = c.double(acc)
		b1 := k1.Bit(i)
		b2 := k2.Bit(i)
		switch {
		case b1 == 1 && b2 == 1:
			acc = c.add(acc, sum)
		case b1 == 1:
			acc = c.add(acc, p1)
		case b2 == 1:
			acc = c.add(acc, p2)
		}
	}
	return c.affine(acc)
}
