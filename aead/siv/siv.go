// Package siv implements AES-SIV (RFC 5297): the S2V synthetic-IV
// derivation (a sequence of OMAC computations chained by GF(2^128)
// doubling, one per associated-data field) followed by CTR-mode
// encryption under the resulting 128-bit SIV. Grounded directly on the
// absfs-encryptfs SIVEngine (s2v/cmac/dbl/pad/xorBytes/ctrMode), adapted
// here to reuse mac/omac's CMAC rather than reimplementing it inline, and
// generalized from a fixed two-key split to any pair of schedules.
package siv

import (
	"gitlab.com/yawning/tomkit.git"
	"gitlab.com/yawning/tomkit.git/mac/omac"
	"gitlab.com/yawning/tomkit.git/registry"
	"gitlab.com/yawning/tomkit.git/util"
)

const blockSize = 16

func rb() byte { return 0x87 }

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
		out[n-1] ^= rb()
	}
	return out
}

func xorFull(a, b []byte) []byte {
	out := make([]byte, len(a))
	for i := range a {
		out[i] = a[i] ^ b[i]
	}
	return out
}

func pad(data []byte) []byte {
	out := make([]byte, blockSize)
	copy(out, data)
	out[len(data)] = 0x80
	return out
}

// s2v implements RFC 5297 §2.4: D starts as CMAC(zero block), each
// associated-data field doubles D and XORs in CMAC(field); the final
// field (the plaintext) is combined directly rather than via doubling
// when it is at least one block long.
func s2v(macSched registry.Schedule, ad [][]byte, plaintext []byte) []byte {
	d := omac.OMAC(macSched, make([]byte, blockSize))
	for _, a := range ad {
		d = xorFull(dbl(d), omac.OMAC(macSched, a))
	}

	var t []byte
	if len(plaintext) >= blockSize {
		t = append([]byte{}, plaintext...)
		tail := t[len(t)-blockSize:]
		xored := xorFull(tail, d)
		copy(tail, xored)
	} else {
		t = xorFull(dbl(d), pad(plaintext))
	}
	return omac.OMAC(macSched, t)
}

func ctrFromSIV(siv []byte) []byte {
	ctr := append([]byte{}, siv...)
	ctr[8] &= 0x7f
	ctr[12] &= 0x7f
	return ctr
}

func ctrXOR(sched registry.Schedule, ctr []byte, dst, src []byte) {
	work := append([]byte{}, ctr...)
	ks := make([]byte, blockSize)
	for off := 0; off < len(src); off += blockSize {
		sched.Encrypt(ks, work)
		for i := len(work) - 1; i >= 0; i-- {
			work[i]++
			if work[i] != 0 {
				break
			}
		}
		end := off + blockSize
		if end > len(src) {
			end = len(src)
		}
		for i := off; i < end; i++ {
			dst[i] = src[i] ^ ks[i-off]
		}
	}
}

// Seal deterministically encrypts plaintext under macSched (keyed K1, the
// S2V key) and ctrSched (keyed K2, the CTR key), authenticating ad as a
// sequence of associated-data fields, and returns SIV‖ciphertext.
func Seal(macSched, ctrSched registry.Schedule, ad [][]byte, plaintext []byte) ([]byte, error) {
	if macSched.BlockSize() != blockSize || ctrSched.BlockSize() != blockSize {
		return nil, tomkit.ErrInvalidArg
	}

	siv := s2v(macSched, ad, plaintext)
	ct := make([]byte, len(plaintext))
	ctrXOR(ctrSched, ctrFromSIV(siv), ct, plaintext)

	return append(append([]byte{}, siv...), ct...), nil
}

// Open recovers plaintext from siv‖ciphertext, recomputing S2V over the
// recovered plaintext and verifying it matches the leading SIV in
// constant time.
func Open(macSched, ctrSched registry.Schedule, ad [][]byte, sivAndCT []byte) ([]byte, error) {
	if macSched.BlockSize() != blockSize || ctrSched.BlockSize() != blockSize {
		return nil, tomkit.ErrInvalidArg
	}
	if len(sivAndCT) < blockSize {
		return nil, tomkit.ErrInvalidPacket
	}
	siv := sivAndCT[:blockSize]
	ct := sivAndCT[blockSize:]

	pt := make([]byte, len(ct))
	ctrXOR(ctrSched, ctrFromSIV(siv), pt, ct)

	want := s2v(macSched, ad, pt)
	if util.MemNeq(want, siv) {
		util.Zeromem(pt)
		return nil, tomkit.ErrAuthenticationFail
	}
	return pt, nil
}
