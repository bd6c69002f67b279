// Package dh implements spec.md §4.5's finite-field Diffie-Hellman key
// agreement on `bignum`. No pack example builds classic FFC DH (the
// retrieval pack's Diffie-Hellman-adjacent hits are all ECDH/X25519
// variants wired into pk/ecc and pk/x25519 instead); this package mirrors
// pk/dsa's direct-from-the-standard construction: safe-prime group
// generation, private/public key pair, and the raw shared-secret
// computation.
package dh

import (
	"crypto/rand"
	"io"

	"gitlab.com/yawning/tomkit.git/bignum"
)

// Group is a finite-field Diffie-Hellman group: a prime modulus P and a
// generator G.
type Group struct {
	P, G *bignum.Int
}

// GenerateSafePrimeGroup builds a group whose modulus P = 2q+1 is a safe
// prime (q itself prime), with G = 2 as generator — the classic
// "Oakley"-style construction used when no group is supplied out of band.
func GenerateSafePrimeGroup(rnd io.Reader, bits int) (*Group, error) {
	if rnd == nil {
		rnd = rand.Reader
	}
	one := bignum.FromInt64(1)
	two := bignum.FromInt64(2)

	for {
		q, err := bignum.RandomPrime(rnd, bits-1)
		if err != nil {
			return nil, err
		}
		p := bignum.New().Mul(two, q)
		p = bignum.New().Add(p, one)
		if p.BitLen() != bits {
			continue
		}
		if !p.IsProbablePrime(0) {
			continue
		}
		return &Group{P: p, G: two}, nil
	}
}

// PrivateKey is a DH private key: a group plus the secret exponent X.
type PrivateKey struct {
	Group
	X *bignum.Int
	Y *bignum.Int // public value g^x mod p
}

// GenerateKey draws a private exponent X in [1, p-1) and computes the
// public value Y = g^X mod p.
func GenerateKey(rnd io.Reader, group *Group) (*PrivateKey, error) {
	if rnd == nil {
		rnd = rand.Reader
	}
	pMinus1 := bignum.New().Sub(group.P, bignum.FromInt64(1))
	x, err := bignum.RandomInRange(rnd, pMinus1)
	if err != nil {
		return nil, err
	}
	y, err := bignum.New().ExpMod(group.G, x, group.P)
	if err != nil {
		return nil, err
	}
	return &PrivateKey{Group: *group, X: x, Y: y}, nil
}

// SharedSecret computes the raw shared secret peerY^X mod p. Callers must
// run the result through a KDF (e.g. util.HKDF) before using it as key
// material.
func SharedSecret(priv *PrivateKey, peerY *bignum.Int) (*bignum.Int, error) {
	return bignum.New().ExpMod(peerY, priv.X, priv.P)
}
