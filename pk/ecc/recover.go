package ecc

import (
	"gitlab.com/yawning/tomkit.git"
	"gitlab.com/yawning/tomkit.git/bignum"
)

// RecoverPublicKey implements spec.md §4.2's ecc_recover_key: given a
// signature, hash, and recid (parity+overflow of the point used), it
// reconstructs a candidate R from r (via a modular square root) and
// returns Q = r⁻¹·(s·R − h·G).
//
// recid bit 0 selects R's y-parity (even/odd); bit 1 indicates r was
// reduced mod the curve order during signing (x = r + order), which
// RecoverPublicKey undoes before reconstructing the point.
func RecoverPublicKey(curve *Curve, hash []byte, sig *Signature, recid int) (*PublicKey, error) {
	if recid < 0 || recid > 3 {
		return nil, tomkit.ErrInvalidArg
	}

	x := sig.R.Clone()
	if recid&2 != 0 {
		x = bignum.New().Add(x, curve.N)
		if x.Cmp(curve.P) >= 0 {
			return nil, tomkit.ErrInvalidArg
		}
	}

	rhs := fieldRHS(curve, x)
	y, ok := bignum.New().ModSqrt(rhs, curve.P)
	if !ok {
		return nil, tomkit.ErrPKInvalidType
	}

	wantOdd := recid&1 != 0
	if (y.Bit(0) == 1) != wantOdd {
		y = bignum.New().Sub(curve.P, y)
	}

	e := truncateHash(curve, hash)

	rInv, err := bignum.New().InvMod(sig.R, curve.N)
	if err != nil {
		return nil, err
	}

	sx, sy := curve.ScalarMult(x, y, sig.S)
	gx, gy := curve.ScalarBaseMult(e)
	gy = bignum.New().Sub(curve.P, gy) // -h*G

	qx, qy := curve.add2(sx, sy, gx, gy)
	qx, qy = curve.ScalarMult(qx, qy, rInv)

	pub := &PublicKey{Curve: curve, X: qx, Y: qy}
	if !curve.IsOnCurve(pub.X, pub.Y) {
		return nil, tomkit.ErrPKInvalidType
	}
	return pub, nil
}

// fieldRHS evaluates x³ + a·x + b mod p.
func fieldRHS(curve *Curve, x *bignum.Int) *bignum.Int {
	x3, _ := bignum.New().ExpMod(x, bignum.FromInt64(3), curve.P)
	ax, _ := bignum.New().MulMod(curve.A, x, curve.P)
	rhs, _ := bignum.New().AddMod(x3, ax, curve.P)
	rhs, _ = bignum.New().AddMod(rhs, curve.B, curve.P)
	return rhs
}

// add2 adds two affine points and returns the affine sum, a thin wrapper
// used only by key recovery (which needs a plain point add, not a scalar
// multiplication).
func (c *Curve) add2(x1, y1, x2, y2 *bignum.Int) (*bignum.Int, *bignum.Int) {
	sum := c.add(c.toJacobian(x1, y1), c.toJacobian(x2, y2))
	return c.affine(sum)
}
