package ecc

import (
	"crypto/rand"
	"io"

	"gitlab.com/yawning/tomkit.git"
	"gitlab.com/yawning/tomkit.git/bignum"
)

// Signature is an ECDSA signature (r, s).
type Signature struct {
	R, S *bignum.Int
}

// Sign implements spec.md §4.2's ecc_sign_hash: truncate hash to
// bitlength(order); loop: k random, (x,y) = k·G, r = x mod order (retry if
// 0), s = k⁻¹·(h + r·d) mod order (retry if 0).
func Sign(rnd io.Reader, priv *PrivateKey, hash []byte) (*Signature, error) {
	if rnd == nil {
		rnd = rand.Reader
	}
	curve := priv.Curve
	e := truncateHash(curve, hash)

	for {
		k, err := bignum.RandomInRange(rnd, curve.N)
		if err != nil {
			return nil, err
		}
		sig, ok, err := signWithNonce(curve, priv.D, e, k)
		if err != nil {
			return nil, err
		}
		if ok {
			return sig, nil
		}
	}
}

func signWithNonce(curve *Curve, d, e, k *bignum.Int) (*Signature, bool, error) {
	x, _ := curve.ScalarBaseMult(k)
	r, err := bignum.New().Mod(x, curve.N)
	if err != nil {
		return nil, false, err
	}
	if r.IsZero() {
		return nil, false, nil
	}

	kInv, err := bignum.New().InvMod(k, curve.N)
	if err != nil {
		return nil, false, nil
	}
	rd, err := bignum.New().MulMod(r, d, curve.N)
	if err != nil {
		return nil, false, err
	}
	sum, err := bignum.New().AddMod(e, rd, curve.N)
	if err != nil {
		return nil, false, err
	}
	s, err := bignum.New().MulMod(kInv, sum, curve.N)
	if err != nil {
		return nil, false, err
	}
	if s.IsZero() {
		return nil, false, nil
	}
	return &Signature{R: r, S: s}, true, nil
}

// Verify implements spec.md §4.2's ecc_verify_hash: reject if r or s out
// of range; w = s⁻¹; u1 = h·w, u2 = r·w; (x,y) = u1·G + u2·Q via
// mul2add; valid iff x mod order = r.
func Verify(pub *PublicKey, hash []byte, sig *Signature) bool {
	curve := pub.Curve
	if sig.R.Sign() <= 0 || sig.R.Cmp(curve.N) >= 0 {
		return false
	}
	if sig.S.Sign() <= 0 || sig.S.Cmp(curve.N) >= 0 {
		return false
	}
	e := truncateHash(curve, hash)

	w, err := bignum.New().InvMod(sig.S, curve.N)
	if err != nil {
		return false
	}
	u1, err := bignum.New().MulMod(e, w, curve.N)
	if err != nil {
		return false
	}
	u2, err := bignum.New().MulMod(sig.R, w, curve.N)
	if err != nil {
		return false
	}

	x, y := curve.ShamirSum(curve.Gx, curve.Gy, u1, pub.X, pub.Y, u2)
	if x.IsZero() && y.IsZero() {
		return false
	}

	v, err := bignum.New().Mod(x, curve.N)
	if err != nil {
		return false
	}
	return v.Cmp(sig.R) == 0
}

// EncodeFixed encodes a signature as RFC 7518's fixed-width r‖s
// concatenation, each half padded to the curve's byte size.
func (sig *Signature) EncodeFixed(curve *Curve) []byte {
	size := curve.ByteSize()
	out := make([]byte, 2*size)
	sig.R.FillBytes(out[:size])
	sig.S.FillBytes(out[size:])
	return out
}

// DecodeFixed reverses EncodeFixed.
func DecodeFixed(curve *Curve, b []byte) (*Signature, error) {
	size := curve.ByteSize()
	if len(b) != 2*size {
		return nil, tomkit.ErrPKInvalidSize
	}
	return &Signature{
		R: bignum.FromBytes(b[:size]),
		S: bignum.FromBytes(b[size:]),
	}, nil
}
