// Package chacha20 implements spec.md §4's ChaCha20 stream cipher
// init/IV/keystream/crypt contract, generalizing the teacher's
// chacha20.go convenience wrapper over golang.org/x/crypto/chacha20 from a
// package-private helper into a standalone streams.Cipher.
package chacha20

import (
	rtchacha20 "golang.org/x/crypto/chacha20"
)

const (
	KeySize   = rtchacha20.KeySize
	NonceSize = rtchacha20.NonceSize
)

// Cipher streams XORKeyStream calls over a ChaCha20 keystream, matching
// spec.md's "init/IV/keystream/crypt" stream-cipher contract.
type Cipher struct {
	inner *rtchacha20.Cipher
}

// New initializes a Cipher from a 32-byte key and 12-byte nonce, per RFC
// 8439, with an optional non-zero initial block counter.
func New(key, nonce []byte, initialCounter uint32) (*Cipher, error) {
	c, err := rtchacha20.NewUnauthenticatedCipher(key, nonce)
	if err != nil {
		return nil, err
	}
	c.SetCounter(initialCounter)
	return &Cipher{inner: c}, nil
}

// XORKeyStream is the crypt operation: encryption and decryption are the
// same XOR against the keystream.
func (c *Cipher) XORKeyStream(dst, src []byte) { c.inner.XORKeyStream(dst, src) }

// SetCounter reseeks the keystream to the given block counter.
func (c *Cipher) SetCounter(counter uint32) { c.inner.SetCounter(counter) }
