// Package ecc implements spec.md §4.2/§4.5's ECC primitive: short
// Weierstrass curves over a prime field, points carried in Jacobian
// projective coordinates, scalar multiplication via a double-and-add
// ladder, and Shamir's trick (mul2add) for the two-scalar sum ECDSA
// verification needs. Curve parameters (p, a, b, G, order) are not
// hand-copied constants — spec.md §1 excludes "the exact tables embedded
// for curves" from scope — so they are sourced from the standard
// library's crypto/elliptic, the only place in the retrieval pack that
// carries verified NIST curve parameters.
package ecc

import (
	"crypto/elliptic"

	"gitlab.com/yawning/tomkit.git/bignum"
)

// Curve holds spec.md §4.2's "{p, a, b, G, order, cofactor, OID, size}"
// curve record. a is always p-3 for the NIST curves this package wires in,
// which is what lets point doubling use the M = 3(X-Z²)(X+Z²) shortcut
// instead of the general M = 3X² + aZ⁴ form.
type Curve struct {
	Name     string
	P        *bignum.Int
	A        *bignum.Int
	B        *bignum.Int
	Gx, Gy   *bignum.Int
	N        *bignum.Int // order
	Cofactor int
	OID      string
	BitSize  int
}

func fromStdlib(name, oid string, cofactor int, c elliptic.Curve) *Curve {
	params := c.Params()
	p := bignum.FromBytes(params.P.Bytes())
	a := bignum.New().Sub(p, bignum.FromInt64(3))
	return &Curve{
		Name:     name,
		P:        p,
		A:        a,
		B:        bignum.FromBytes(params.B.Bytes()),
		Gx:       bignum.FromBytes(params.Gx.Bytes()),
		Gy:       bignum.FromBytes(params.Gy.Bytes()),
		N:        bignum.FromBytes(params.N.Bytes()),
		Cofactor: cofactor,
		OID:      oid,
		BitSize:  params.BitSize,
	}
}

// P224 is NIST P-224 (secp224r1).
func P224() *Curve { return fromStdlib("P-224", "1.3.132.0.33", 1, elliptic.P224()) }

// P256 is NIST P-256 (secp256r1, prime256v1).
func P256() *Curve { return fromStdlib("P-256", "1.2.840.10045.3.1.7", 1, elliptic.P256()) }

// P384 is NIST P-384 (secp384r1).
func P384() *Curve { return fromStdlib("P-384", "1.3.132.0.34", 1, elliptic.P384()) }

// P521 is NIST P-521 (secp521r1).
func P521() *Curve { return fromStdlib("P-521", "1.3.132.0.35", 1, elliptic.P521()) }

// ByteSize returns the curve's field element size in bytes, rounded up.
func (c *Curve) ByteSize() int {
	return (c.BitSize + 7) / 8
}

// IsOnCurve reports whether (x, y) satisfies y² = x³ + a·x + b mod p.
func (c *Curve) IsOnCurve(x, y *bignum.Int) bool {
	if x.Sign() < 0 || x.Cmp(c.P) >= 0 || y.Sign() < 0 || y.Cmp(c.P) >= 0 {
		return false
	}
	y2, _ := bignum.New().SqrMod(y, c.P)
	x3, _ := bignum.New().ExpMod(x, bignum.FromInt64(3), c.P)
	ax, _ := bignum.New().MulMod(c.A, x, c.P)
	rhs, _ := bignum.New().AddMod(x3, ax, c.P)
	rhs, _ = bignum.New().AddMod(rhs, c.B, c.P)
	return y2.Cmp(rhs) == 0
}
