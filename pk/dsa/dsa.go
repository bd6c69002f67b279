// Package dsa implements spec.md §4.5's classic FIPS 186 DSA sign/verify
// directly (per spec.md §9's Open Question, resolved in SPEC_FULL.md §4:
// the upstream `dsa_sign_hash` placeholder that "returns 0 before
// implementing the signature" is legacy/superseded, so tomkit implements
// the real algorithm rather than porting the stub). No pack example
// implements classic discrete-log DSA (the retrieval pack's "dsa"-named
// hits are post-quantum ML-DSA/SLH-DSA, an unrelated algorithm family),
// so this package is built directly from FIPS 186-4 on `bignum`, in the
// same style as the sibling `pk/rsa`/`pk/ecc` packages.
package dsa

import (
	"crypto/rand"
	"io"

	"gitlab.com/yawning/tomkit.git/bignum"
)

// Parameters is a DSA domain parameter set: a large prime p, a prime
// divisor q of p-1, and a generator g of the order-q subgroup of Z*_p.
type Parameters struct {
	P, Q, G *bignum.Int
}

// PublicKey is a DSA public key: domain parameters plus Y = g^x mod p.
type PublicKey struct {
	Parameters
	Y *bignum.Int
}

// PrivateKey is a DSA private key: the public key plus the secret
// exponent X.
type PrivateKey struct {
	PublicKey
	X *bignum.Int
}

// GenerateParameters builds a domain parameter set with an N-bit q and an
// L-bit p such that q divides p-1, and a generator g of the order-q
// subgroup, per FIPS 186-4 §A.1 (simplified: probabilistic prime search
// rather than the standard's seeded/verifiable generation procedure,
// which spec.md does not require reproducing bit-for-bit).
func GenerateParameters(rnd io.Reader, l, n int) (*Parameters, error) {
	if rnd == nil {
		rnd = rand.Reader
	}
	one := bignum.FromInt64(1)
	two := bignum.FromInt64(2)

	for {
		q, err := bignum.RandomPrime(rnd, n)
		if err != nil {
			return nil, err
		}

		for attempt := 0; attempt < 4096; attempt++ {
			pCandBits := l
			x, err := bignum.RandomPrime(rnd, pCandBits)
			if err != nil {
				return nil, err
			}
			// p = x - (x mod 2q) + 1, then bump by 2q until prime and
			// correctly sized.
			twoQ := bignum.New().Mul(two, q)
			rem, err := bignum.New().Mod(x, twoQ)
			if err != nil {
				return nil, err
			}
			p := bignum.New().Sub(x, rem)
			p = bignum.New().Add(p, one)
			if p.BitLen() != l {
				continue
			}
			if !p.IsProbablePrime(0) {
				continue
			}

			g, ok := findGenerator(p, q)
			if !ok {
				continue
			}
			return &Parameters{P: p, Q: q, G: g}, nil
		}
	}
}

// findGenerator finds g = h^((p-1)/q) mod p != 1 for small trial h,
// producing a generator of the order-q subgroup.
func findGenerator(p, q *bignum.Int) (*bignum.Int, bool) {
	one := bignum.FromInt64(1)
	pMinus1 := bignum.New().Sub(p, one)
	e, err := bignum.New().Div(pMinus1, q)
	if err != nil {
		return nil, false
	}
	for h := int64(2); h < 1000; h++ {
		g, err := bignum.New().ExpMod(bignum.FromInt64(h), e, p)
		if err != nil {
			return nil, false
		}
		if g.Cmp(one) != 0 {
			return g, true
		}
	}
	return nil, false
}

// GenerateKey draws a private exponent X in [1, q) and computes
// Y = g^X mod p.
func GenerateKey(rnd io.Reader, params *Parameters) (*PrivateKey, error) {
	if rnd == nil {
		rnd = rand.Reader
	}
	x, err := bignum.RandomInRange(rnd, params.Q)
	if err != nil {
		return nil, err
	}
	y, err := bignum.New().ExpMod(params.G, x, params.P)
	if err != nil {
		return nil, err
	}
	return &PrivateKey{
		PublicKey: PublicKey{Parameters: *params, Y: y},
		X:         x,
	}, nil
}

// Signature is a DSA signature (r, s).
type Signature struct {
	R, S *bignum.Int
}

func truncate(q *bignum.Int, hash []byte) *bignum.Int {
	qBits := q.BitLen()
	if len(hash)*8 > qBits {
		hash = hash[:(qBits+7)/8]
	}
	e := bignum.FromBytes(hash)
	excess := len(hash)*8 - qBits
	if excess > 0 {
		e = bignum.New().Rsh(e, uint(excess))
	}
	return e
}

// Sign implements classic DSA signing: k random in [1, q); r = (g^k mod
// p) mod q (retry if 0); s = k⁻¹(h + x·r) mod q (retry if 0).
func Sign(rnd io.Reader, priv *PrivateKey, hash []byte) (*Signature, error) {
	if rnd == nil {
		rnd = rand.Reader
	}
	q := priv.Q
	e := truncate(q, hash)

	for {
		k, err := bignum.RandomInRange(rnd, q)
		if err != nil {
			return nil, err
		}
		gk, err := bignum.New().ExpMod(priv.G, k, priv.P)
		if err != nil {
			return nil, err
		}
		r, err := bignum.New().Mod(gk, q)
		if err != nil {
			return nil, err
		}
		if r.IsZero() {
			continue
		}

		kInv, err := bignum.New().InvMod(k, q)
		if err != nil {
			continue
		}
		xr, err := bignum.New().MulMod(priv.X, r, q)
		if err != nil {
			return nil, err
		}
		sum, err := bignum.New().AddMod(e, xr, q)
		if err != nil {
			return nil, err
		}
		s, err := bignum.New().MulMod(kInv, sum, q)
		if err != nil {
			return nil, err
		}
		if s.IsZero() {
			continue
		}
		return &Signature{R: r, S: s}, nil
	}
}

// Verify implements classic DSA verification: reject if r or s out of
// [1, q); w = s⁻¹ mod q; u1 = h·w mod q, u2 = r·w mod q; v = (g^u1 ·
// y^u2 mod p) mod q; valid iff v = r.
func Verify(pub *PublicKey, hash []byte, sig *Signature) bool {
	q := pub.Q
	if sig.R.Sign() <= 0 || sig.R.Cmp(q) >= 0 {
		return false
	}
	if sig.S.Sign() <= 0 || sig.S.Cmp(q) >= 0 {
		return false
	}
	e := truncate(q, hash)

	w, err := bignum.New().InvMod(sig.S, q)
	if err != nil {
		return false
	}
	u1, err := bignum.New().MulMod(e, w, q)
	if err != nil {
		return false
	}
	u2, err := bignum.New().MulMod(sig.R, w, q)
	if err != nil {
		return false
	}

	gu1, err := bignum.New().ExpMod(pub.G, u1, pub.P)
	if err != nil {
		return false
	}
	yu2, err := bignum.New().ExpMod(pub.Y, u2, pub.P)
	if err != nil {
		return false
	}
	v, err := bignum.New().MulMod(gu1, yu2, pub.P)
	if err != nil {
		return false
	}
	v, err = bignum.New().Mod(v, q)
	if err != nil {
		return false
	}
	return v.Cmp(sig.R) == 0
}
