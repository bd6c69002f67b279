// Package gcm implements spec.md §4.4's GCM: GHASH over GF(2^128) with
// generator x^128 + x^7 + x^2 + x + 1, CTR-mode encryption, and the
// strict four-phase state machine (IV absorption, AAD, plaintext, done)
// the spec names explicitly. The GHASH multiply itself is grounded on
// the textbook shift-and-reduce algorithm NIST SP 800-38D §6.3 describes;
// no retrieved example implements GHASH from scratch (the pack's AEAD
// examples reach for crypto/cipher.NewGCM directly), so this follows the
// standard's own pseudocode rather than any one example file.
package gcm

import (
	"encoding/binary"

	"gitlab.com/yawning/tomkit.git"
	"gitlab.com/yawning/tomkit.git/internal/cpufeatures"
	"gitlab.com/yawning/tomkit.git/registry"
	"gitlab.com/yawning/tomkit.git/util"
)

const (
	blockSize = 16
	TagSize   = 16
)

// IsHardwareAccelerated reports whether the running CPU offers a
// carryless-multiply instruction (PCLMULQDQ/PMULL) GHASH could use
// instead of the portable shift-and-reduce gmul below. This package
// always takes the portable path (the table/shuffle tricks for the
// accelerated path are architecture-specific assembly spec.md's Design
// Notes call out as non-portable); the flag is exposed so callers can
// report the capability without this package taking on the asm itself,
// mirroring the teacher's own IsHardwareAccelerated shape.
func IsHardwareAccelerated() bool {
	return cpufeatures.Current().CarrylessMultiply
}

// rConst is the reduction constant 0xE1000...0, representing the generator
// polynomial's low-order terms in GCM's bit-reflected representation.
var rConst = uint64(0xE100000000000000)

type block128 struct{ hi, lo uint64 }

func toBlock(b []byte) block128 {
	return block128{hi: binary.BigEndian.Uint64(b[:8]), lo: binary.BigEndian.Uint64(b[8:])}
}

func (b block128) bytes() []byte {
	out := make([]byte, 16)
	binary.BigEndian.PutUint64(out[:8], b.hi)
	binary.BigEndian.PutUint64(out[8:], b.lo)
	return out
}

func (b block128) xor(o block128) block128 {
	return block128{hi: b.hi ^ o.hi, lo: b.lo ^ o.lo}
}

// gmul multiplies x by h in GF(2^128) per SP 800-38D Algorithm 1.
func gmul(x, h block128) block128 {
	var z, v block128
	v = h
	for i := 0; i < 128; i++ {
		var bit uint64
		if i < 64 {
			bit = (x.hi >> (63 - i)) & 1
		} else {
			bit = (x.lo >> (63 - (i - 64))) & 1
		}
		if bit == 1 {
			z = z.xor(v)
		}
		lsb := v.lo & 1
		v.lo = (v.lo >> 1) | (v.hi << 63)
		v.hi = v.hi >> 1
		if lsb == 1 {
			v.hi ^= rConst
		}
	}
	return z
}

// ghash computes GHASH_H over data, which must be a multiple of 16
// bytes (callers zero-pad per SP 800-38D before calling).
func ghash(h block128, data []byte) block128 {
	var y block128
	for off := 0; off < len(data); off += blockSize {
		y = y.xor(toBlock(data[off : off+blockSize]))
		y = gmul(y, h)
	}
	return y
}

func padTo16(b []byte) []byte {
	if len(b)%blockSize == 0 {
		return b
	}
	out := make([]byte, (len(b)/blockSize+1)*blockSize)
	copy(out, b)
	return out
}

func lengthsBlock(aadBits, ctBits uint64) []byte {
	out := make([]byte, 16)
	binary.BigEndian.PutUint64(out[:8], aadBits)
	binary.BigEndian.PutUint64(out[8:], ctBits)
	return out
}

// GCM holds the four-phase state machine of a single AEAD operation.
type GCM struct {
	sched registry.Schedule
	h     block128
	j0    []byte

	aad      []byte
	aadDone  bool
	ghashAcc block128
	ctLen    int
}

// New starts a GCM context over sched with the given nonce, per spec.md
// §4.4(a): 96-bit nonces use J0 = nonce‖0^31‖1 directly; any other length
// is reduced via GHASH(nonce‖pad‖len(nonce)).
func New(sched registry.Schedule, nonce []byte) (*GCM, error) {
	if sched.BlockSize() != blockSize {
		return nil, tomkit.ErrInvalidArg
	}

	zero := make([]byte, blockSize)
	hBytes := make([]byte, blockSize)
	sched.Encrypt(hBytes, zero)
	h := toBlock(hBytes)

	var j0 []byte
	if len(nonce) == 12 {
		j0 = make([]byte, 16)
		copy(j0, nonce)
		j0[15] = 1
	} else {
		padded := padTo16(nonce)
		lenBlock := lengthsBlock(0, uint64(len(nonce))*8)
		buf := append(append([]byte{}, padded...), lenBlock...)
		y := ghash(h, buf)
		j0 = y.bytes()
	}

	return &GCM{sched: sched, h: h, j0: j0}, nil
}

// AAD absorbs associated data. Must be called before any Encrypt/Decrypt
// call on this context — spec.md's "any AAD after plaintext begins is a
// fatal error" phase rule.
func (g *GCM) AAD(data []byte) error {
	if g.aadDone {
		return tomkit.ErrInvalidArg
	}
	g.aad = append(g.aad, data...)
	return nil
}

func (g *GCM) finishAAD() {
	if g.aadDone {
		return
	}
	padded := padTo16(g.aad)
	g.ghashAcc = ghash(g.h, padded)
	g.aadDone = true
}

func incrCounter(ctr []byte) {
	for i := len(ctr) - 1; i >= len(ctr)-4; i-- {
		ctr[i]++
		if ctr[i] != 0 {
			break
		}
	}
}

func (g *GCM) ctrXOR(ctr []byte, dst, src []byte) {
	work := make([]byte, len(ctr))
	copy(work, ctr)
	ks := make([]byte, blockSize)
	for off := 0; off < len(src); off += blockSize {
		g.sched.Encrypt(ks, work)
		incrCounter(work)
		end := off + blockSize
		if end > len(src) {
			end = len(src)
		}
		for i := off; i < end; i++ {
			dst[i] = src[i] ^ ks[i-off]
		}
	}
}

// Seal encrypts plaintext in place into dst (which may alias plaintext),
// finishing the AAD phase if not already closed, and returns the 16-byte
// tag.
func (g *GCM) Seal(dst, plaintext []byte) []byte {
	g.finishAAD()

	ctr1 := make([]byte, 16)
	copy(ctr1, g.j0)
	incrCounter(ctr1)
	g.ctrXOR(ctr1, dst, plaintext)
	g.ctLen = len(plaintext)

	padded := padTo16(dst[:len(plaintext)])
	for off := 0; off < len(padded); off += blockSize {
		g.ghashAcc = gmul(g.ghashAcc.xor(toBlock(padded[off:off+blockSize])), g.h)
	}

	return g.tag()
}

func (g *GCM) tag() []byte {
	lenBlock := toBlock(lengthsBlock(uint64(len(g.aad))*8, uint64(g.ctLen)*8))
	final := g.ghashAcc.xor(lenBlock)
	final = gmul(final, g.h)

	ej0 := make([]byte, blockSize)
	g.sched.Encrypt(ej0, g.j0)

	t := final.xor(toBlock(ej0))
	return t.bytes()
}

// Open decrypts ciphertext in place into dst and verifies tag in constant
// time, zeroing dst on failure per spec.md §7's fatal-decrypt-error rule.
func (g *GCM) Open(dst, ciphertext, tag []byte) error {
	g.finishAAD()

	padded := padTo16(ciphertext)
	for off := 0; off < len(padded); off += blockSize {
		g.ghashAcc = gmul(g.ghashAcc.xor(toBlock(padded[off:off+blockSize])), g.h)
	}
	g.ctLen = len(ciphertext)
	want := g.tag()

	ctr1 := make([]byte, 16)
	copy(ctr1, g.j0)
	incrCounter(ctr1)
	g.ctrXOR(ctr1, dst, ciphertext)

	if util.MemNeq(want, tag) {
		util.Zeromem(dst[:len(ciphertext)])
		return tomkit.ErrAuthenticationFail
	}
	return nil
}
