// Package xcbc implements XCBC-MAC (RFC 3566), the three-subkey
// CBC-MAC variant spec.md §4.4 lists alongside OMAC/PMAC. Subkeys K1/K2/K3
// are derived by encrypting the fixed constants 0x01.../0x02.../0x03...
// under the caller's schedule, the same "derive via encrypting a known
// constant block" idiom mac/omac uses for its GF(2^n) doubling seed.
package xcbc

import (
	"gitlab.com/yawning/tomkit.git/registry"
)

func constBlock(n int, b byte) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = b
	}
	return out
}

func xorInto(dst, src []byte) {
	for i := range dst {
		dst[i] ^= src[i]
	}
}

// XCBC computes the XCBC-MAC tag of msg under sched, using sched's own
// key only to derive K1 (a second schedule keyed on K1 performs the
// chaining); K2/K3 are the raw encrypted constants XORed into the final
// block per RFC 3566 §4.
func XCBC(sched registry.Schedule, newSchedule func(key []byte) (registry.Schedule, error), msg []byte) ([]byte, error) {
	n := sched.BlockSize()

	k1 := make([]byte, n)
	sched.Encrypt(k1, constBlock(n, 0x01))
	k2 := make([]byte, n)
	sched.Encrypt(k2, constBlock(n, 0x02))
	k3 := make([]byte, n)
	sched.Encrypt(k3, constBlock(n, 0x03))

	k1Sched, err := newSchedule(k1)
	if err != nil {
		return nil, err
	}
	defer k1Sched.Done()

	numBlocks := (len(msg) + n - 1) / n
	full := numBlocks > 0 && len(msg)%n == 0
	if numBlocks == 0 {
		numBlocks = 1
		full = false
	}

	mac := make([]byte, n)
	for i := 0; i < numBlocks-1; i++ {
		xorInto(mac, msg[i*n:(i+1)*n])
		k1Sched.Encrypt(mac, mac)
	}

	last := make([]byte, n)
	if full {
		copy(last, msg[(numBlocks-1)*n:])
		xorInto(last, k2)
	} else {
		tail := msg[(numBlocks-1)*n:]
		copy(last, tail)
		last[len(tail)] = 0x80
		xorInto(last, k3)
	}
	xorInto(mac, last)
	k1Sched.Encrypt(mac, mac)

	return mac, nil
}
