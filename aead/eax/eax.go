// Package eax implements EAX mode (Bellare, Rogaway, Wagner), the
// nonce-based AEAD spec.md §4.4 names alongside GCM/CCM/OCB/SIV. EAX is
// three OMAC computations (over the nonce, the header, and the
// ciphertext, each with a distinct one-byte domain-separation prefix)
// combined with CTR encryption under the nonce-derived OMAC tag — built
// directly on mac/omac, the construction this package is grounded on.
package eax

import (
	"gitlab.com/yawning/tomkit.git"
	"gitlab.com/yawning/tomkit.git/mac/omac"
	"gitlab.com/yawning/tomkit.git/registry"
	"gitlab.com/yawning/tomkit.git/util"
)

const blockSize = 16

// omacT computes OMAC(0^(n-1) ‖ t ‖ msg) — EAX's domain-separated OMAC
// instance, t in {0: nonce, 1: header, 2: ciphertext}.
func omacT(sched registry.Schedule, t byte, msg []byte) []byte {
	n := sched.BlockSize()
	prefix := make([]byte, n)
	prefix[n-1] = t
	return omac.OMAC(sched, append(prefix, msg...))
}

func incrCounter(ctr []byte) {
	for i := len(ctr) - 1; i >= 0; i-- {
		ctr[i]++
		if ctr[i] != 0 {
			break
		}
	}
}

func ctrXOR(sched registry.Schedule, iv []byte, dst, src []byte) {
	n := sched.BlockSize()
	work := make([]byte, n)
	copy(work, iv)
	ks := make([]byte, n)
	for off := 0; off < len(src); off += n {
		sched.Encrypt(ks, work)
		incrCounter(work)
		end := off + n
		if end > len(src) {
			end = len(src)
		}
		for i := off; i < end; i++ {
			dst[i] = src[i] ^ ks[i-off]
		}
	}
}

func xorFull(a, b []byte) []byte {
	out := make([]byte, len(a))
	for i := range a {
		out[i] = a[i] ^ b[i]
	}
	return out
}

// Seal encrypts plaintext under sched/nonce/header, returning
// ciphertext‖tag (tag is sched.BlockSize() bytes, EAX's full tag; callers
// wanting a shorter tag should truncate per the paper's explicit note
// that truncation is acceptable).
func Seal(sched registry.Schedule, nonce, header, plaintext []byte) ([]byte, error) {
	if sched.BlockSize() != blockSize {
		return nil, tomkit.ErrInvalidArg
	}

	n := omacT(sched, 0, nonce)
	h := omacT(sched, 1, header)

	ct := make([]byte, len(plaintext))
	ctrXOR(sched, n, ct, plaintext)

	c := omacT(sched, 2, ct)

	tag := xorFull(xorFull(n, h), c)
	return append(ct, tag...), nil
}

// Open verifies the tag of ciphertext‖tag in constant time and only then
// decrypts; on failure it returns an error and decrypts nothing.
func Open(sched registry.Schedule, nonce, header, ciphertextAndTag []byte) ([]byte, error) {
	if sched.BlockSize() != blockSize {
		return nil, tomkit.ErrInvalidArg
	}
	if len(ciphertextAndTag) < blockSize {
		return nil, tomkit.ErrInvalidPacket
	}
	ct := ciphertextAndTag[:len(ciphertextAndTag)-blockSize]
	tag := ciphertextAndTag[len(ciphertextAndTag)-blockSize:]

	n := omacT(sched, 0, nonce)
	h := omacT(sched, 1, header)
	c := omacT(sched, 2, ct)
	wantTag := xorFull(xorFull(n, h), c)

	if util.MemNeq(wantTag, tag) {
		return nil, tomkit.ErrAuthenticationFail
	}

	pt := make([]byte, len(ct))
	ctrXOR(sched, n, pt, ct)
	return pt, nil
}
