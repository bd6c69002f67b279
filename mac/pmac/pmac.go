// Package pmac implements PMAC (Rogaway, "Fast and Secure CBC-type MAC
// Algorithms"), the parallelizable block-cipher MAC spec.md §4.4 names
// alongside OMAC. It shares mac/omac's GF(2^n) doubling primitive (both
// descend from the same dbl/pad idiom grounded on the absfs-encryptfs
// SIV engine), generalized here into the L(i) power-of-x masking
// sequence PMAC's parallel structure requires.
package pmac

import (
	"math/bits"

	"gitlab.com/yawning/tomkit.git/registry"
)

func rb(blockLen int) byte {
	switch blockLen {
	case 8:
		return 0x1b
	default:
		return 0x87
	}
}

func dbl(block []byte) []byte {
	n := len(block)
	out := make([]byte, n)
	carry := byte(0)
	for i := n - 1; i >= 0; i-- {
		v := block[i]
		out[i] = (v << 1) | carry
		carry = v >> 7
	}
	if carry != 0 {
		out[n-1] ^= rb(n)
	}
	return out
}

func xorInto(dst, src []byte) {
	for i := range dst {
		dst[i] ^= src[i]
	}
}

// pmacKey holds PMAC's derived constants: L (= E(0)), the final-block
// masks L * x^-1 and L($) = L * x, and a cache of L(i) = L * x^i for
// the ntz-indexed sequence full blocks use.
type pmacKey struct {
	sched   registry.Schedule
	n       int
	l       []byte
	lInv    []byte // L multiplied by x^-1, for a partial or empty final block
	lDollar []byte // L($), xored into every last-block offset
	powers  []byte // powers[i] is L(i) = L * x^i, flattened n-byte blocks
}

// xInv multiplies block by x^-1 in GF(2^(8n)), the inverse of dbl, needed
// when PMAC's message is empty or not a multiple of the block length.
func xInv(block []byte) []byte {
	n := len(block)
	out := make([]byte, n)
	carry := byte(0)
	for i := 0; i < n; i++ {
		v := block[i]
		out[i] = (v >> 1) | (carry << 7)
		carry = v & 1
	}
	if carry != 0 {
		out[0] ^= 0x80
		out[n-1] ^= rb(n) >> 1
	}
	return out
}

func newPMACKey(sched registry.Schedule, maxBlocks int) *pmacKey {
	n := sched.BlockSize()
	zero := make([]byte, n)
	l := make([]byte, n)
	sched.Encrypt(l, zero)

	pk := &pmacKey{sched: sched, n: n, l: l}
	pk.lDollar = dbl(l)
	pk.lInv = xInv(l)

	pk.powers = make([]byte, n*(maxBlocks+1))
	cur := append([]byte{}, l...)
	copy(pk.powers[0:n], cur)
	for i := 1; i <= maxBlocks; i++ {
		cur = dbl(cur)
		copy(pk.powers[i*n:(i+1)*n], cur)
	}
	return pk
}

func (pk *pmacKey) power(i int) []byte {
	return pk.powers[i*pk.n : (i+1)*pk.n]
}

// PMAC computes the PMAC tag of msg under sched.
func PMAC(sched registry.Schedule, msg []byte) []byte {
	n := sched.BlockSize()
	numBlocks := len(msg) / n
	full := numBlocks > 0 && len(msg)%n == 0
	if !full {
		numBlocks++
	}
	if numBlocks == 0 {
		numBlocks = 1
	}

	pk := newPMACKey(sched, numBlocks+1)

	sum := make([]byte, n)
	offset := make([]byte, n)

	fullBlockCount := numBlocks
	if !full {
		fullBlockCount--
	}

	for i := 0; i < fullBlockCount; i++ {
		ntz := bits.TrailingZeros(uint(i + 1))
		xorInto(offset, pk.power(ntz))

		block := msg[i*n : (i+1)*n]
		y := make([]byte, n)
		copy(y, block)
		xorInto(y, offset)

		x := make([]byte, n)
		sched.Encrypt(x, y)
		xorInto(sum, x)
	}

	last := make([]byte, n)
	if full {
		copy(last, msg[fullBlockCount*n:])
		xorInto(last, pk.lDollar)
	} else {
		tail := msg[fullBlockCount*n:]
		copy(last, tail)
		last[len(tail)] = 0x80
		xorInto(last, pk.lInv)
		xorInto(last, pk.lDollar)
	}
	xorInto(sum, last)

	tag := make([]byte, n)
	sched.Encrypt(tag, sum)
	return tag
}
