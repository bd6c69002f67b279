// Package x25519 implements spec.md §4.5's X25519 Diffie-Hellman:
// RFC 7748 scalar clamping plus the Montgomery ladder on Curve25519,
// wired to `golang.org/x/crypto/curve25519` (SPEC_FULL.md §3's domain
// stack table) — the ecosystem's constant-time, side-channel-reviewed
// ladder, not a hand-rolled one.
package x25519

import (
	"crypto/rand"
	"io"

	"golang.org/x/crypto/curve25519"

	"gitlab.com/yawning/tomkit.git"
)

// ScalarSize is the byte size of an X25519 scalar or point.
const ScalarSize = curve25519.ScalarSize

// Clamp implements RFC 7748 §5's scalar clamping: clear bits 0-2 of byte
// 0, clear the top bit of byte 31, set bit 254.
func Clamp(scalar *[ScalarSize]byte) {
	scalar[0] &= 248
	scalar[31] &= 127
	scalar[31] |= 64
}

// GenerateKey generates a clamped random X25519 private scalar and its
// corresponding public point (scalar · basepoint).
func GenerateKey(rnd io.Reader) (priv, pub [ScalarSize]byte, err error) {
	if rnd == nil {
		rnd = rand.Reader
	}
	if _, err = io.ReadFull(rnd, priv[:]); err != nil {
		return priv, pub, err
	}
	Clamp(&priv)

	pubSlice, err := curve25519.X25519(priv[:], curve25519.Basepoint)
	if err != nil {
		return priv, pub, err
	}
	copy(pub[:], pubSlice)
	return priv, pub, nil
}

// SharedSecret computes scalar · peerPublic, the raw X25519 agreement
// output. Callers must run the result through a KDF before using it as
// key material.
func SharedSecret(scalar, peerPublic [ScalarSize]byte) ([]byte, error) {
	out, err := curve25519.X25519(scalar[:], peerPublic[:])
	if err != nil {
		return nil, tomkit.ErrInvalidArg
	}
	return out, nil
}
