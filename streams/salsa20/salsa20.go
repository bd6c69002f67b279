// Package salsa20 implements spec.md §4's Salsa20 stream cipher contract
// over golang.org/x/crypto/salsa20/salsa, in the same thin-wrapper idiom
// as streams/chacha20. The low-level salsa.XORKeyStream primitive only
// accepts 64-byte-aligned chunks and a combined nonce+counter block, so
// this type buffers one block's worth of keystream to present an
// arbitrary-length streaming interface, the way rtChacha20.Cipher does
// internally for ChaCha20.
package salsa20

import (
	"errors"

	"golang.org/x/crypto/salsa20/salsa"
)

const (
	KeySize   = 32
	NonceSize = 8
	blockSize = 64
)

var (
	errInvalidKeySize   = errors.New("salsa20: key must be 32 bytes")
	errInvalidNonceSize = errors.New("salsa20: nonce must be 8 bytes")
)

// Cipher streams XORKeyStream calls over a Salsa20/20 keystream.
type Cipher struct {
	key        [32]byte
	nonceBlock [16]byte // bytes 0-7 nonce, bytes 8-15 little-endian block counter
	counter    uint64

	pad     [blockSize]byte
	padUsed int
}

// New initializes a Cipher from a 32-byte key and 8-byte nonce.
func New(key, nonce []byte) (*Cipher, error) {
	if len(key) != KeySize {
		return nil, errInvalidKeySize
	}
	if len(nonce) != NonceSize {
		return nil, errInvalidNonceSize
	}
	c := &Cipher{padUsed: blockSize}
	copy(c.key[:], key)
	copy(c.nonceBlock[:8], nonce)
	return c, nil
}

func (c *Cipher) refill() {
	for i := 0; i < 8; i++ {
		c.nonceBlock[8+i] = byte(c.counter >> (8 * i))
	}
	var zero [blockSize]byte
	salsa.XORKeyStream(c.pad[:], zero[:], &c.nonceBlock, &c.key)
	c.counter++
	c.padUsed = 0
}

// XORKeyStream encrypts (or decrypts) src into dst.
func (c *Cipher) XORKeyStream(dst, src []byte) {
	for i := range src {
		if c.padUsed == blockSize {
			c.refill()
		}
		dst[i] = src[i] ^ c.pad[c.padUsed]
		c.padUsed++
	}
}
