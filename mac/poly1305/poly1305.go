// Package poly1305 wraps golang.org/x/crypto/poly1305, the one-time
// authenticator spec.md §4.4 lists alongside the block-cipher MACs. The
// primitive itself is a single 32-byte-keyed Sum call; no incremental
// state is exposed, matching the teacher's thin-wrapper streams idiom
// (streams/chacha20.go) rather than the multi-block MACs' running state.
package poly1305

import (
	"gitlab.com/yawning/tomkit.git"

	"golang.org/x/crypto/poly1305"
)

// KeySize and TagSize are poly1305's fixed sizes.
const (
	KeySize = 32
	TagSize = 16
)

// Sum computes the Poly1305 tag of msg under the one-time key.
func Sum(key, msg []byte) ([]byte, error) {
	if len(key) != KeySize {
		return nil, tomkit.ErrInvalidKeySize
	}
	var k [KeySize]byte
	copy(k[:], key)
	var tag [TagSize]byte
	poly1305.Sum(&tag, msg, &k)
	return tag[:], nil
}

// Verify reports whether tag is the correct Poly1305 tag of msg under
// key, in constant time.
func Verify(key, msg, tag []byte) (bool, error) {
	if len(key) != KeySize {
		return false, tomkit.ErrInvalidKeySize
	}
	if len(tag) != TagSize {
		return false, nil
	}
	var k [KeySize]byte
	copy(k[:], key)
	var t [TagSize]byte
	copy(t[:], tag)
	return poly1305.Verify(&t, msg, &k), nil
}
