// Package hmac implements spec.md §4.4's HMAC construction over any
// hash.Hash: key → if longer than block, replace by hash(key), pad-right
// with zeros; inner = hash(key⊕0x36 ∥ msg); tag = hash(key⊕0x5C ∥ inner).
package hmac

import (
	"hash"

	"gitlab.com/yawning/tomkit.git/util"
)

// HMAC streams Write calls and produces the tag on Sum, the same
// init/process/done shape as any hash.Hash — this is effectively what
// stdlib's crypto/hmac already does, generalized here to accept an
// explicit block size (spec.md's hash descriptor exposes hmac_block_size
// separately from digest_size, since e.g. SHA-384/512 use a 128-byte HMAC
// block even though their own internal block size differs for some
// hashes in the C library).
type HMAC struct {
	newHash   func() hash.Hash
	blockSize int
	inner     hash.Hash
	opad      []byte
}

// New derives the HMAC construction for key over newHash, whose
// underlying block size is blockSize.
func New(newHash func() hash.Hash, key []byte, blockSize int) *HMAC {
	k := make([]byte, blockSize)
	if len(key) > blockSize {
		h := newHash()
		h.Write(key)
		copy(k, h.Sum(nil))
	} else {
		copy(k, key)
	}

	ipad := make([]byte, blockSize)
	opad := make([]byte, blockSize)
	for i := 0; i < blockSize; i++ {
		ipad[i] = k[i] ^ 0x36
		opad[i] = k[i] ^ 0x5C
	}
	util.Zeromem(k)

	inner := newHash()
	inner.Write(ipad)
	util.Zeromem(ipad)

	return &HMAC{newHash: newHash, blockSize: blockSize, inner: inner, opad: opad}
}

// Write feeds message bytes into the inner hash.
func (h *HMAC) Write(p []byte) (int, error) { return h.inner.Write(p) }

// Sum finalizes and returns the HMAC tag: hash(opad ∥ hash(ipad ∥ msg)).
func (h *HMAC) Sum() []byte {
	innerDigest := h.inner.Sum(nil)
	outer := h.newHash()
	outer.Write(h.opad)
	outer.Write(innerDigest)
	return outer.Sum(nil)
}
