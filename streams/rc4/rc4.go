// Package rc4 implements spec.md §4's RC4 stream cipher contract over
// stdlib crypto/rc4. Kept for legacy interoperability only (spec.md lists
// it among the PRNG constructions too, as prng/rc4prng's generator).
package rc4

import "crypto/rc4"

// Cipher streams XORKeyStream calls over an RC4 keystream.
type Cipher struct {
	inner *rc4.Cipher
}

// New initializes a Cipher from a 1-to-256-byte key.
func New(key []byte) (*Cipher, error) {
	c, err := rc4.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return &Cipher{inner: c}, nil
}

// XORKeyStream encrypts (or decrypts) src into dst.
func (c *Cipher) XORKeyStream(dst, src []byte) { c.inner.XORKeyStream(dst, src) }
