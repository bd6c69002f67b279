// Package pelican implements Pelican MAC's call shape (Daemen & Rijmen,
// "The Pelican MAC Function"): a CBC-MAC-like chain over a block cipher,
// with the chaining value whitened by one extra encryption at the end.
//
// The original Pelican MAC gets its speed from running only four AES
// rounds per block rather than the full ten/twelve/fourteen — it calls
// directly into AES's internal round function, which stdlib's crypto/aes
// does not expose and no package in the retrieval pack reimplements (the
// four-round tables are exactly the kind of embedded S-box/round-key
// material spec.md's Non-goals treat as fixed constants out of scope).
// This implementation keeps Pelican's two-pass whitened-CBC-MAC shape but
// runs the full registered cipher rather than a round-reduced variant, so
// it is not bit-exact to the original construction; see DESIGN.md.
package pelican

import (
	"gitlab.com/yawning/tomkit.git/registry"
)

func xorInto(dst, src []byte) {
	for i := range dst {
		dst[i] ^= src[i]
	}
}

// Pelican computes the Pelican-shaped tag of msg under sched.
func Pelican(sched registry.Schedule, msg []byte) []byte {
	n := sched.BlockSize()

	state := make([]byte, n)
	state[0] = 0x01
	sched.Encrypt(state, state)

	numBlocks := (len(msg) + n - 1) / n
	for i := 0; i < numBlocks; i++ {
		start := i * n
		end := start + n
		block := make([]byte, n)
		if end > len(msg) {
			copy(block, msg[start:])
			block[len(msg)-start] = 0x80
		} else {
			copy(block, msg[start:end])
		}
		xorInto(state, block)
		sched.Encrypt(state, state)
	}

	sched.Encrypt(state, state)
	return state
}
