package ecc

import (
	"crypto/rand"
	"io"

	"gitlab.com/yawning/tomkit.git/bignum"
)

// PublicKey is an ECC public key: a curve and a point on it.
type PublicKey struct {
	Curve *Curve
	X, Y  *bignum.Int
}

// PrivateKey is an ECC private key: the public key plus the scalar D.
type PrivateKey struct {
	PublicKey
	D *bignum.Int
}

// GenerateKey implements spec.md §4.2's ecc_make_key: draw k in
// [1, order-1] by rejection sampling, Q = k·G.
func GenerateKey(rnd io.Reader, curve *Curve) (*PrivateKey, error) {
	if rnd == nil {
		rnd = rand.Reader
	}
	d, err := bignum.RandomInRange(rnd, curve.N)
	if err != nil {
		return nil, err
	}
	x, y := curve.ScalarBaseMult(d)
	return &PrivateKey{
		PublicKey: PublicKey{Curve: curve, X: x, Y: y},
		D:         d,
	}, nil
}

// truncateHash reduces a hash to the curve order's bit length, per
// spec.md §4.2's "truncate hash to bitlength(order)".
func truncateHash(curve *Curve, hash []byte) *bignum.Int {
	orderBits := curve.N.BitLen()
	if len(hash)*8 > orderBits {
		hash = hash[:(orderBits+7)/8]
	}
	e := bignum.FromBytes(hash)
	excess := len(hash)*8 - orderBits
	if excess > 0 {
		e = bignum.New().Rsh(e, uint(excess))
	}
	return e
}
