// Package chacha20poly1305 wraps golang.org/x/crypto/chacha20poly1305,
// the stream-cipher AEAD spec.md §4.4 lists alongside the block-cipher
// constructions. Like mac/poly1305 and streams/chacha20, this is a thin
// wrapper rather than a hand-rolled construction: the teacher's own
// chacha20.go establishes that pattern for primitives the ecosystem
// already implements correctly.
package chacha20poly1305

import (
	"gitlab.com/yawning/tomkit.git"

	rtchacha20poly1305 "golang.org/x/crypto/chacha20poly1305"
)

const (
	KeySize    = rtchacha20poly1305.KeySize
	NonceSize  = rtchacha20poly1305.NonceSize
	NonceSizeX = rtchacha20poly1305.NonceSizeX
	Overhead   = rtchacha20poly1305.Overhead
)

// AEAD wraps the underlying cipher.AEAD, exposing Seal/Open directly so
// callers don't need to import x/crypto themselves.
type AEAD struct {
	inner interface {
		Seal(dst, nonce, plaintext, additionalData []byte) []byte
		Open(dst, nonce, ciphertext, additionalData []byte) ([]byte, error)
	}
}

// New constructs an AEAD over the standard 12-byte-nonce ChaCha20-Poly1305.
func New(key []byte) (*AEAD, error) {
	if len(key) != KeySize {
		return nil, tomkit.ErrInvalidKeySize
	}
	a, err := rtchacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}
	return &AEAD{inner: a}, nil
}

// NewX constructs an AEAD over XChaCha20-Poly1305's extended 24-byte nonce.
func NewX(key []byte) (*AEAD, error) {
	if len(key) != KeySize {
		return nil, tomkit.ErrInvalidKeySize
	}
	a, err := rtchacha20poly1305.NewX(key)
	if err != nil {
		return nil, err
	}
	return &AEAD{inner: a}, nil
}

// Seal encrypts and authenticates plaintext, appending the result to dst.
func (a *AEAD) Seal(dst, nonce, plaintext, additionalData []byte) []byte {
	return a.inner.Seal(dst, nonce, plaintext, additionalData)
}

// Open decrypts and verifies ciphertext, appending the plaintext to dst.
func (a *AEAD) Open(dst, nonce, ciphertext, additionalData []byte) ([]byte, error) {
	out, err := a.inner.Open(dst, nonce, ciphertext, additionalData)
	if err != nil {
		return nil, tomkit.ErrAuthenticationFail
	}
	return out, nil
}
