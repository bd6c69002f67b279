// Package ccm implements CCM (RFC 3610 / NIST SP 800-38C): CBC-MAC over
// a formatted B0‖AAD‖plaintext sequence, then CTR-mode encryption of the
// plaintext and the MAC. Grounded directly on RFC 3610's pseudocode (no
// retrieved example builds CCM from a bare block cipher; the pack's
// users reach for crypto/cipher.NewCCM).
package ccm

import (
	"gitlab.com/yawning/tomkit.git"
	"gitlab.com/yawning/tomkit.git/registry"
	"gitlab.com/yawning/tomkit.git/util"
)

const blockSize = 16

func xorInto(dst, src []byte) {
	for i := range dst {
		dst[i] ^= src[i]
	}
}

// formatB0 builds RFC 3610 §2.2's first CBC-MAC block: flags byte,
// nonce, and the message length field.
func formatB0(nonce []byte, msgLen, aadLen, tagSize int) []byte {
	q := blockSize - 1 - len(nonce)
	b0 := make([]byte, blockSize)

	flags := byte(0)
	if aadLen > 0 {
		flags |= 0x40
	}
	flags |= byte((tagSize-2)/2) << 3
	flags |= byte(q - 1)
	b0[0] = flags

	copy(b0[1:1+len(nonce)], nonce)
	ln := msgLen
	for i := blockSize - 1; i >= 1+len(nonce); i-- {
		b0[i] = byte(ln)
		ln >>= 8
	}
	return b0
}

func formatCtr0(nonce []byte) []byte {
	q := blockSize - 1 - len(nonce)
	a0 := make([]byte, blockSize)
	a0[0] = byte(q - 1)
	copy(a0[1:1+len(nonce)], nonce)
	return a0
}

func incrCounter(ctr []byte, q int) {
	for i := len(ctr) - 1; i >= len(ctr)-q; i-- {
		ctr[i]++
		if ctr[i] != 0 {
			break
		}
	}
}

func aadLengthPrefix(aadLen int) []byte {
	switch {
	case aadLen == 0:
		return nil
	case aadLen < 0xFF00:
		return []byte{byte(aadLen >> 8), byte(aadLen)}
	default:
		return []byte{0xFF, 0xFE, byte(aadLen >> 24), byte(aadLen >> 16), byte(aadLen >> 8), byte(aadLen)}
	}
}

func padTo16(b []byte) []byte {
	if len(b)%blockSize == 0 {
		return b
	}
	out := make([]byte, (len(b)/blockSize+1)*blockSize)
	copy(out, b)
	return out
}

func cbcMAC(sched registry.Schedule, b0 []byte, aad, msg []byte) []byte {
	mac := make([]byte, blockSize)
	sched.Encrypt(mac, b0)

	buf := append(append([]byte{}, aadLengthPrefix(len(aad))...), aad...)
	buf = padTo16(buf)
	for off := 0; off < len(buf); off += blockSize {
		xorInto(mac, buf[off:off+blockSize])
		sched.Encrypt(mac, mac)
	}

	padded := padTo16(msg)
	for off := 0; off < len(padded); off += blockSize {
		xorInto(mac, padded[off:off+blockSize])
		sched.Encrypt(mac, mac)
	}
	return mac
}

func ctrXOR(sched registry.Schedule, ctr0 []byte, dst, src []byte) {
	work := make([]byte, blockSize)
	copy(work, ctr0)
	ks := make([]byte, blockSize)
	counterLen := int(ctr0[0]&0x7) + 1
	for off := 0; off < len(src); off += blockSize {
		sched.Encrypt(ks, work)
		incrCounter(work, counterLen)
		end := off + blockSize
		if end > len(src) {
			end = len(src)
		}
		for i := off; i < end; i++ {
			dst[i] = src[i] ^ ks[i-off]
		}
	}
}

// Seal encrypts plaintext under sched/nonce/aad, appending a tagSize-byte
// tag (valid sizes are 4, 6, 8, 10, 12, 14, 16 per RFC 3610) and returning
// ciphertext‖tag.
func Seal(sched registry.Schedule, nonce, aad, plaintext []byte, tagSize int) ([]byte, error) {
	if sched.BlockSize() != blockSize {
		return nil, tomkit.ErrInvalidArg
	}
	if len(nonce) < 7 || len(nonce) > 13 {
		return nil, tomkit.ErrInvalidArg
	}

	b0 := formatB0(nonce, len(plaintext), len(aad), tagSize)
	mac := cbcMAC(sched, b0, aad, plaintext)

	ctr0 := formatCtr0(nonce)
	s0 := make([]byte, blockSize)
	sched.Encrypt(s0, ctr0)
	tag := make([]byte, tagSize)
	for i := 0; i < tagSize; i++ {
		tag[i] = mac[i] ^ s0[i]
	}

	ctrFirst := append([]byte{}, ctr0...)
	incrCounter(ctrFirst, int(ctr0[0]&0x7)+1)
	ct := make([]byte, len(plaintext))
	ctrXOR(sched, ctrFirst, ct, plaintext)

	return append(ct, tag...), nil
}

// Open decrypts ciphertext‖tag, verifying the tag in constant time and
// zeroing the output on failure.
func Open(sched registry.Schedule, nonce, aad, ciphertextAndTag []byte, tagSize int) ([]byte, error) {
	if sched.BlockSize() != blockSize {
		return nil, tomkit.ErrInvalidArg
	}
	if len(ciphertextAndTag) < tagSize {
		return nil, tomkit.ErrInvalidPacket
	}
	ct := ciphertextAndTag[:len(ciphertextAndTag)-tagSize]
	tag := ciphertextAndTag[len(ciphertextAndTag)-tagSize:]

	ctr0 := formatCtr0(nonce)
	ctrFirst := append([]byte{}, ctr0...)
	incrCounter(ctrFirst, int(ctr0[0]&0x7)+1)
	pt := make([]byte, len(ct))
	ctrXOR(sched, ctrFirst, pt, ct)

	b0 := formatB0(nonce, len(pt), len(aad), tagSize)
	mac := cbcMAC(sched, b0, aad, pt)
	s0 := make([]byte, blockSize)
	sched.Encrypt(s0, ctr0)
	wantTag := make([]byte, tagSize)
	for i := 0; i < tagSize; i++ {
		wantTag[i] = mac[i] ^ s0[i]
	}

	if util.MemNeq(wantTag, tag) {
		util.Zeromem(pt)
		return nil, tomkit.ErrAuthenticationFail
	}
	return pt, nil
}
