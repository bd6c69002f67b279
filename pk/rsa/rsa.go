// Package rsa implements spec.md §4.5's RSA key type and the raw
// modular-exponentiation primitives beneath PKCS#1 padding: CRT private
// operations with optional blinding and CRT-hardening (re-encrypt and
// compare, a fatal mismatch signaling a fault attack), built entirely on
// bignum.Int since no arbitrary-precision package exists anywhere in the
// retrieval pack (see DESIGN.md's math-backend entry).
package rsa

import (
	"crypto/rand"
	"io"

	"gitlab.com/yawning/tomkit.git"
	"gitlab.com/yawning/tomkit.git/bignum"
)

// DefaultPublicExponent is the conventional RSA public exponent.
const DefaultPublicExponent = 65537

// PublicKey is the public half of an RSA key pair.
type PublicKey struct {
	N *bignum.Int
	E *bignum.Int
}

// PrivateKey holds spec.md §4.5's RSA struct: N, e, d plus the CRT
// parameters (dP, dQ, qInv) used for the fast private-key path.
type PrivateKey struct {
	PublicKey
	D *bignum.Int

	P, Q *bignum.Int
	DP   *bignum.Int
	DQ   *bignum.Int
	QInv *bignum.Int
}

// Size returns the key's modulus size in bytes.
func (pub *PublicKey) Size() int {
	return (pub.N.BitLen() + 7) / 8
}

// GenerateKey generates an RSA private key of the given bit size, using
// e = DefaultPublicExponent, per spec.md §4.5's key-generation recipe:
// choose primes p, q of size/2 bits each with gcd(e, p-1) = gcd(e, q-1)
// = 1, then derive d = e^-1 mod lcm(p-1, q-1) and the CRT parameters.
func GenerateKey(rnd io.Reader, bits int) (*PrivateKey, error) {
	if rnd == nil {
		rnd = rand.Reader
	}
	e := bignum.FromInt64(DefaultPublicExponent)
	one := bignum.FromInt64(1)

	for {
		p, err := bignum.RandomPrime(rnd, bits/2)
		if err != nil {
			return nil, err
		}
		q, err := bignum.RandomPrime(rnd, bits-bits/2)
		if err != nil {
			return nil, err
		}
		if p.Cmp(q) == 0 {
			continue
		}

		pMinus1 := bignum.New().Sub(p, one)
		qMinus1 := bignum.New().Sub(q, one)

		if bignum.New().GCD(e, pMinus1).Cmp(one) != 0 {
			continue
		}
		if bignum.New().GCD(e, qMinus1).Cmp(one) != 0 {
			continue
		}

		n := bignum.New().Mul(p, q)
		lambda := bignum.New().LCM(pMinus1, qMinus1)

		d, err := bignum.New().InvMod(e, lambda)
		if err != nil {
			continue
		}

		dp, err := bignum.New().Mod(d, pMinus1)
		if err != nil {
			return nil, err
		}
		dq, err := bignum.New().Mod(d, qMinus1)
		if err != nil {
			return nil, err
		}
		qInv, err := bignum.New().InvMod(q, p)
		if err != nil {
			continue
		}

		return &PrivateKey{
			PublicKey: PublicKey{N: n, E: e},
			D:         d,
			P:         p,
			Q:         q,
			DP:        dp,
			DQ:        dq,
			QInv:      qInv,
		}, nil
	}
}

// Encrypt computes m^e mod N, the raw public operation.
func Encrypt(pub *PublicKey, m *bignum.Int) (*bignum.Int, error) {
	return bignum.New().ExpMod(m, pub.E, pub.N)
}

// DecryptOptions configures the private operation's optional hardening.
type DecryptOptions struct {
	// Blind enables message blinding against timing side channels:
	// sample r in [1, N), compute c' = c * r^e mod N, decrypt c', unblind
	// with r^-1.
	Blind bool
	// CRTHardening re-encrypts the CRT result and compares against the
	// original ciphertext; a mismatch is fatal (spec.md §7: "indicates a
	// fault attack").
	CRTHardening bool
	Rand         io.Reader
}

// Decrypt computes the private RSA operation on c, using the CRT fast
// path when P/Q/DP/DQ/QInv are present, per spec.md §4.5.
func Decrypt(priv *PrivateKey, c *bignum.Int, opts DecryptOptions) (*bignum.Int, error) {
	rnd := opts.Rand
	if rnd == nil {
		rnd = rand.Reader
	}

	input := c
	var rInv *bignum.Int
	if opts.Blind {
		r, err := bignum.RandomInRange(rnd, priv.N)
		if err != nil {
			return nil, err
		}
		var errInv error
		rInv, errInv = bignum.New().InvMod(r, priv.N)
		if errInv != nil {
			return nil, errInv
		}
		rE, err := bignum.New().ExpMod(r, priv.E, priv.N)
		if err != nil {
			return nil, err
		}
		input, err = bignum.New().MulMod(c, rE, priv.N)
		if err != nil {
			return nil, err
		}
	}

	var m *bignum.Int
	var err error
	if priv.P != nil && priv.Q != nil && priv.DP != nil && priv.DQ != nil && priv.QInv != nil {
		m1, errExp := bignum.New().ExpMod(input, priv.DP, priv.P)
		if errExp != nil {
			return nil, errExp
		}
		m2, errExp := bignum.New().ExpMod(input, priv.DQ, priv.Q)
		if errExp != nil {
			return nil, errExp
		}
		diff, errSub := bignum.New().SubMod(m1, m2, priv.P)
		if errSub != nil {
			return nil, errSub
		}
		h, errMul := bignum.New().MulMod(diff, priv.QInv, priv.P)
		if errMul != nil {
			return nil, errMul
		}
		qh := bignum.New().Mul(priv.Q, h)
		m = bignum.New().Add(m2, qh)
	} else {
		m, err = bignum.New().ExpMod(input, priv.D, priv.N)
		if err != nil {
			return nil, err
		}
	}

	if opts.CRTHardening {
		check, errExp := bignum.New().ExpMod(m, priv.E, priv.N)
		if errExp != nil {
			return nil, errExp
		}
		if check.Cmp(input) != 0 {
			return nil, tomkit.ErrOverflow
		}
	}

	if opts.Blind {
		m, err = bignum.New().MulMod(m, rInv, priv.N)
		if err != nil {
			return nil, err
		}
	}
	return m, nil
}
