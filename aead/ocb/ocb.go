// Package ocb implements OCB3 (RFC 7253): the offset-codebook AEAD mode
// spec.md §4.4 names alongside GCM/CCM/EAX/SIV. Directly grounded on
// go-crypto's ocb.go (vendored into moby), adapted from that package's
// cipher.AEAD-shaped Seal/Open over a reusable-Ktop optimized state to a
// registry.Schedule-keyed construction matching this module's other AEAD
// packages.
package ocb

import (
	"bytes"
	"math/bits"

	"gitlab.com/yawning/tomkit.git"
	"gitlab.com/yawning/tomkit.git/registry"
	"gitlab.com/yawning/tomkit.git/util"
)

const blockSize = 16

// mask holds OCB's key-dependent constants: L_*, L_$, and the doubling
// sequence L_0, L_1, ... extended lazily as longer messages need more
// entries.
type mask struct {
	lAst []byte
	lDol []byte
	l    [][]byte
}

func gfnDouble(b []byte) []byte {
	n := len(b)
	out := make([]byte, n)
	carry := byte(0)
	for i := n - 1; i >= 0; i-- {
		v := b[i]
		out[i] = (v << 1) | carry
		carry = v >> 7
	}
	if carry != 0 {
		out[n-1] ^= 0x87
	}
	return out
}

func xorBytes(dst, a, b []byte) {
	for i := range dst {
		dst[i] = a[i] ^ b[i]
	}
}

func xorInto(dst, src []byte) {
	for i := range dst {
		dst[i] ^= src[i]
	}
}

func initMask(sched registry.Schedule) mask {
	lAst := make([]byte, blockSize)
	sched.Encrypt(lAst, lAst)
	lDol := gfnDouble(lAst)
	l := make([][]byte, 1)
	l[0] = gfnDouble(lDol)
	return mask{lAst: lAst, lDol: lDol, l: l}
}

func (m *mask) extend(limit int) {
	for i := len(m.l); i <= limit; i++ {
		m.l = append(m.l, gfnDouble(m.l[i-1]))
	}
}

// OCB holds per-key state (the mask table and the last nonce's cached
// Ktop, RFC 7253 §4's documented optimization for sequential nonces).
type OCB struct {
	sched     registry.Schedule
	tagSize   int
	nonceSize int
	mask      mask

	lastPrefix []byte
	lastKtop   []byte
}

// New starts an OCB context over sched with the given nonce length (<=
// 15) and tag length (<= 16).
func New(sched registry.Schedule, nonceSize, tagSize int) (*OCB, error) {
	if sched.BlockSize() != blockSize {
		return nil, tomkit.ErrInvalidArg
	}
	if nonceSize < 1 || nonceSize >= blockSize {
		return nil, tomkit.ErrInvalidArg
	}
	if tagSize < 1 || tagSize > blockSize {
		return nil, tomkit.ErrInvalidArg
	}
	return &OCB{sched: sched, tagSize: tagSize, nonceSize: nonceSize, mask: initMask(sched)}, nil
}

func (o *OCB) ktop(nonce []byte) []byte {
	truncated := make([]byte, len(nonce))
	copy(truncated, nonce)
	truncated[len(truncated)-1] &= 192

	if bytes.Equal(truncated, o.lastPrefix) {
		return o.lastKtop
	}

	padded := append(make([]byte, blockSize-1-len(nonce)), 1)
	padded = append(padded, truncated...)
	padded[0] |= byte(((8 * o.tagSize) % (8 * blockSize)) << 1)
	padded[blockSize-1] &= 192

	ktop := padded
	o.sched.Encrypt(ktop, ktop)
	o.lastPrefix = truncated
	o.lastKtop = ktop
	return ktop
}

func shiftLeft(dst, src []byte, bits int) {
	byteShift := bits / 8
	bitShift := uint(bits % 8)
	for i := 0; i < len(dst); i++ {
		si := i + byteShift
		var cur, next byte
		if si < len(src) {
			cur = src[si]
		}
		if si+1 < len(src) {
			next = src[si+1]
		}
		if bitShift == 0 {
			dst[i] = cur
		} else {
			dst[i] = (cur << bitShift) | (next >> (8 - bitShift))
		}
	}
}

func (o *OCB) initialOffset(nonce []byte) []byte {
	kt := o.ktop(nonce)
	xorHalves := make([]byte, blockSize/2)
	xorBytes(xorHalves, kt[:blockSize/2], kt[1:1+blockSize/2])
	stretch := append(append([]byte{}, kt...), xorHalves...)
	bottom := int(nonce[len(nonce)-1] & 63)
	offset := make([]byte, len(stretch))
	shiftLeft(offset, stretch, bottom)
	return offset[:blockSize]
}

func (o *OCB) hashAAD(adata []byte) []byte {
	sum := make([]byte, blockSize)
	offset := make([]byte, blockSize)
	m := len(adata) / blockSize
	for i := 0; i < m; i++ {
		idx := bits.TrailingZeros(uint(i + 1))
		if len(o.mask.l)-1 < idx {
			o.mask.extend(idx)
		}
		xorInto(offset, o.mask.l[idx])
		chunk := append([]byte{}, adata[blockSize*i:blockSize*(i+1)]...)
		xorInto(chunk, offset)
		o.sched.Encrypt(chunk, chunk)
		xorInto(sum, chunk)
	}
	if len(adata)%blockSize != 0 {
		xorInto(offset, o.mask.lAst)
		ending := make([]byte, blockSize-len(adata)%blockSize)
		ending[0] = 0x80
		encrypted := append(append([]byte{}, adata[blockSize*m:]...), ending...)
		xorInto(encrypted, offset)
		o.sched.Encrypt(encrypted, encrypted)
		xorInto(sum, encrypted)
	}
	return sum
}

const (
	opEncrypt = iota
	opDecrypt
)

func (o *OCB) crypt(op int, y, nonce, adata, x []byte) []byte {
	offset := o.initialOffset(nonce)
	checksum := make([]byte, blockSize)

	m := len(x) / blockSize
	for i := 0; i < m; i++ {
		idx := bits.TrailingZeros(uint(i + 1))
		if len(o.mask.l)-1 < idx {
			o.mask.extend(idx)
		}
		xorInto(offset, o.mask.l[idx])
		blockX := x[i*blockSize : (i+1)*blockSize]
		blockY := y[i*blockSize : (i+1)*blockSize]
		switch op {
		case opEncrypt:
			xorInto(checksum, blockX)
			xorBytes(blockY, blockX, offset)
			o.sched.Encrypt(blockY, blockY)
			xorInto(blockY, offset)
		case opDecrypt:
			xorBytes(blockY, blockX, offset)
			o.sched.Decrypt(blockY, blockY)
			xorInto(blockY, offset)
			xorInto(checksum, blockY)
		}
	}

	tag := make([]byte, blockSize)
	if len(x)%blockSize != 0 {
		xorInto(offset, o.mask.lAst)
		pad := make([]byte, blockSize)
		o.sched.Encrypt(pad, offset)
		chunkX := x[blockSize*m:]
		chunkY := y[blockSize*m : len(x)]
		switch op {
		case opEncrypt:
			xorInto(checksum, chunkX)
			checksum[len(chunkX)] ^= 0x80
			xorBytes(chunkY, chunkX, pad[:len(chunkX)])
		case opDecrypt:
			xorBytes(chunkY, chunkX, pad[:len(chunkX)])
			xorInto(checksum, chunkY)
			checksum[len(chunkY)] ^= 0x80
		}
	}

	xorBytes(tag, checksum, offset)
	xorInto(tag, o.mask.lDol)
	o.sched.Encrypt(tag, tag)
	xorInto(tag, o.hashAAD(adata))
	return tag[:o.tagSize]
}

// Seal encrypts plaintext under nonce (<= the configured nonce size),
// authenticating adata, and returns ciphertext‖tag.
func (o *OCB) Seal(nonce, adata, plaintext []byte) []byte {
	ct := make([]byte, len(plaintext))
	tag := o.crypt(opEncrypt, ct, nonce, adata, plaintext)
	return append(ct, tag...)
}

// Open decrypts ciphertext‖tag, verifying in constant time and zeroing
// the output on failure.
func (o *OCB) Open(nonce, adata, ciphertextAndTag []byte) ([]byte, error) {
	if len(ciphertextAndTag) < o.tagSize {
		return nil, tomkit.ErrInvalidPacket
	}
	sep := len(ciphertextAndTag) - o.tagSize
	ct := ciphertextAndTag[:sep]
	wantTag := ciphertextAndTag[sep:]

	pt := make([]byte, len(ct))
	tag := o.crypt(opDecrypt, pt, nonce, adata, ct)

	if util.MemNeq(tag, wantTag) {
		util.Zeromem(pt)
		return nil, tomkit.ErrAuthenticationFail
	}
	return pt, nil
}
