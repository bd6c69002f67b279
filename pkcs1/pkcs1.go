// Package pkcs1 implements spec.md §4.5's PKCS#1 paddings over pk/rsa's
// raw modular-exponentiation primitives: v1.5 encryption/signature
// padding, OAEP (MGF1-masked), and PSS, each built directly from the
// byte-level encodings spec.md's §4.5 paragraph spells out.
package pkcs1

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/binary"
	"hash"
	"io"

	"gitlab.com/yawning/tomkit.git"
	"gitlab.com/yawning/tomkit.git/bignum"
	"gitlab.com/yawning/tomkit.git/pk/rsa"
	"gitlab.com/yawning/tomkit.git/util"
)

// mgf1 is RFC 8017 Appendix B.2.1's mask generation function.
func mgf1(seed []byte, length int, newHash func() hash.Hash) []byte {
	h := newHash()
	out := make([]byte, 0, length+h.Size())
	var counter uint32
	for len(out) < length {
		h.Reset()
		h.Write(seed)
		var cb [4]byte
		binary.BigEndian.PutUint32(cb[:], counter)
		h.Write(cb[:])
		out = append(out, h.Sum(nil)...)
		counter++
	}
	return out[:length]
}

// PadPKCS1v15Encrypt builds `0x00 ∥ 0x02 ∥ PS (random nonzero, >= 8
// bytes) ∥ 0x00 ∥ M`, sized to k bytes (the modulus size), per spec.md
// §4.5.
func PadPKCS1v15Encrypt(rnd io.Reader, k int, msg []byte) ([]byte, error) {
	if rnd == nil {
		rnd = rand.Reader
	}
	if len(msg) > k-11 {
		return nil, tomkit.ErrInputTooLong
	}
	em := make([]byte, k)
	em[0] = 0x00
	em[1] = 0x02

	psLen := k - len(msg) - 3
	ps := em[2 : 2+psLen]
	if err := fillNonzero(rnd, ps); err != nil {
		return nil, err
	}
	em[2+psLen] = 0x00
	copy(em[3+psLen:], msg)
	return em, nil
}

func fillNonzero(rnd io.Reader, buf []byte) error {
	for i := 0; i < len(buf); {
		chunk := make([]byte, len(buf)-i)
		if _, err := io.ReadFull(rnd, chunk); err != nil {
			return err
		}
		for _, b := range chunk {
			if b != 0 {
				buf[i] = b
				i++
				if i == len(buf) {
					break
				}
			}
		}
	}
	return nil
}

// UnpadPKCS1v15Encrypt reverses PadPKCS1v15Encrypt. The separator search
// and structure check run in time independent of em's content: every byte
// is examined unconditionally (no break on the first 0x00 found) and the
// plaintext is selected with util.CopyOrZero rather than a conditional
// slice, so neither the padding length nor the overall validity decision
// shows up as a timing difference — the Bleichenbacher oracle this guards
// against.
func UnpadPKCS1v15Encrypt(em []byte) ([]byte, error) {
	if len(em) < 11 {
		return nil, tomkit.ErrPKInvalidPadding
	}

	firstZero := subtle.ConstantTimeByteEq(em[0], 0x00)
	secondTwo := subtle.ConstantTimeByteEq(em[1], 0x02)

	lookingForZero := 1
	zeroIndex := 0
	for i := 2; i < len(em); i++ {
		isZero := subtle.ConstantTimeByteEq(em[i], 0x00)
		foundHere := lookingForZero & isZero
		zeroIndex = subtle.ConstantTimeSelect(foundHere, i, zeroIndex)
		lookingForZero = subtle.ConstantTimeSelect(foundHere, 0, lookingForZero)
	}
	foundSeparator := 1 - lookingForZero
	psLenOK := subtle.ConstantTimeLessOrEq(10, zeroIndex)

	good := firstZero & secondTwo & foundSeparator & psLenOK

	msg := make([]byte, len(em))
	util.CopyOrZero(msg, em, good)

	if good != 1 {
		return nil, tomkit.ErrPKInvalidPadding
	}
	return msg[zeroIndex+1:], nil
}

// PadPKCS1v15Sign builds the `0x00 ∥ 0x01 ∥ 0xFF...∥ 0x00 ∥ DigestInfo`
// signature padding, where digestInfo is the caller-supplied DER
// DigestInfo encoding (hash OID + digest).
func PadPKCS1v15Sign(k int, digestInfo []byte) ([]byte, error) {
	if len(digestInfo)+11 > k {
		return nil, tomkit.ErrInputTooLong
	}
	em := make([]byte, k)
	em[0] = 0x00
	em[1] = 0x01
	psLen := k - len(digestInfo) - 3
	for i := 0; i < psLen; i++ {
		em[2+i] = 0xFF
	}
	em[2+psLen] = 0x00
	copy(em[3+psLen:], digestInfo)
	return em, nil
}

// VerifyPKCS1v15Sign checks em against the expected DigestInfo, in
// constant time over the fixed-size comparison.
func VerifyPKCS1v15Sign(em []byte, digestInfo []byte) bool {
	want, err := PadPKCS1v15Sign(len(em), digestInfo)
	if err != nil {
		return false
	}
	return !util.MemNeq(em, want)
}

// EncodeOAEP implements RFC 8017 §7.1.1: EM = 0x00 ∥ maskedSeed ∥
// maskedDB, DB = lHash ∥ PS ∥ 0x01 ∥ M.
func EncodeOAEP(rnd io.Reader, newHash func() hash.Hash, k int, label, msg []byte) ([]byte, error) {
	if rnd == nil {
		rnd = rand.Reader
	}
	h := newHash()
	hLen := h.Size()
	if len(msg) > k-2*hLen-2 {
		return nil, tomkit.ErrInputTooLong
	}

	h.Write(label)
	lHash := h.Sum(nil)

	psLen := k - len(msg) - 2*hLen - 2
	db := make([]byte, 0, k-hLen-1)
	db = append(db, lHash...)
	db = append(db, make([]byte, psLen)...)
	db = append(db, 0x01)
	db = append(db, msg...)

	seed := make([]byte, hLen)
	if _, err := io.ReadFull(rnd, seed); err != nil {
		return nil, err
	}

	dbMask := mgf1(seed, len(db), newHash)
	maskedDB := xorBytes(db, dbMask)

	seedMask := mgf1(maskedDB, hLen, newHash)
	maskedSeed := xorBytes(seed, seedMask)

	em := make([]byte, k)
	copy(em[1:1+hLen], maskedSeed)
	copy(em[1+hLen:], maskedDB)
	return em, nil
}

func xorBytes(a, b []byte) []byte {
	out := make([]byte, len(a))
	for i := range a {
		out[i] = a[i] ^ b[i]
	}
	return out
}

// DecodeOAEP reverses EncodeOAEP.
func DecodeOAEP(newHash func() hash.Hash, k int, label, em []byte) ([]byte, error) {
	h := newHash()
	hLen := h.Size()
	if len(em) != k || k < 2*hLen+2 {
		return nil, tomkit.ErrPKInvalidPadding
	}
	if em[0] != 0x00 {
		return nil, tomkit.ErrPKInvalidPadding
	}

	maskedSeed := em[1 : 1+hLen]
	maskedDB := em[1+hLen:]

	seedMask := mgf1(maskedDB, hLen, newHash)
	seed := xorBytes(maskedSeed, seedMask)

	dbMask := mgf1(seed, len(maskedDB), newHash)
	db := xorBytes(maskedDB, dbMask)

	h.Write(label)
	lHash := h.Sum(nil)
	if util.MemNeq(db[:hLen], lHash) {
		return nil, tomkit.ErrPKInvalidPadding
	}

	rest := db[hLen:]
	idx := -1
	for i, b := range rest {
		if b == 0x01 {
			idx = i
			break
		}
		if b != 0x00 {
			return nil, tomkit.ErrPKInvalidPadding
		}
	}
	if idx < 0 {
		return nil, tomkit.ErrPKInvalidPadding
	}
	return rest[idx+1:], nil
}

// EncodePSS implements RFC 8017 §9.1.1: M' = 8 zero bytes ∥ mHash ∥
// salt, H = Hash(M'), DB = PS ∥ 0x01 ∥ salt, maskedDB = DB xor
// MGF1(H), top bits of the leftmost byte cleared per emBits.
func EncodePSS(rnd io.Reader, newHash func() hash.Hash, emBits int, mHash, salt []byte) ([]byte, error) {
	if rnd == nil {
		rnd = rand.Reader
	}
	h := newHash()
	hLen := h.Size()
	emLen := (emBits + 7) / 8
	if emLen < hLen+len(salt)+2 {
		return nil, tomkit.ErrInputTooLong
	}

	mPrime := make([]byte, 0, 8+hLen+len(salt))
	mPrime = append(mPrime, make([]byte, 8)...)
	mPrime = append(mPrime, mHash...)
	mPrime = append(mPrime, salt...)

	h.Reset()
	h.Write(mPrime)
	hDigest := h.Sum(nil)

	psLen := emLen - len(salt) - hLen - 2
	db := make([]byte, 0, emLen-hLen-1)
	db = append(db, make([]byte, psLen)...)
	db = append(db, 0x01)
	db = append(db, salt...)

	dbMask := mgf1(hDigest, len(db), newHash)
	maskedDB := xorBytes(db, dbMask)

	unusedBits := 8*emLen - emBits
	if unusedBits > 0 {
		maskedDB[0] &= 0xFF >> uint(unusedBits)
	}

	em := make([]byte, emLen)
	copy(em, maskedDB)
	copy(em[len(maskedDB):], hDigest)
	em[emLen-1] = 0xBC
	return em, nil
}

// VerifyPSS reverses EncodePSS, reconstructing the salt from em and
// comparing H against a fresh computation.
func VerifyPSS(newHash func() hash.Hash, emBits int, mHash, em []byte, saltLen int) (bool, error) {
	h := newHash()
	hLen := h.Size()
	emLen := (emBits + 7) / 8
	if len(em) != emLen || emLen < hLen+saltLen+2 {
		return false, tomkit.ErrPKInvalidPadding
	}
	if em[emLen-1] != 0xBC {
		return false, nil
	}

	maskedDB := em[:emLen-hLen-1]
	hDigest := em[emLen-hLen-1 : emLen-1]

	unusedBits := 8*emLen - emBits
	if unusedBits > 0 && maskedDB[0]&^(0xFF>>uint(unusedBits)) != 0 {
		return false, nil
	}

	dbMask := mgf1(hDigest, len(maskedDB), newHash)
	db := xorBytes(maskedDB, dbMask)
	if unusedBits > 0 {
		db[0] &= 0xFF >> uint(unusedBits)
	}

	psLen := emLen - hLen - saltLen - 2
	for i := 0; i < psLen; i++ {
		if db[i] != 0x00 {
			return false, nil
		}
	}
	if db[psLen] != 0x01 {
		return false, nil
	}
	salt := db[psLen+1:]

	mPrime := make([]byte, 0, 8+hLen+saltLen)
	mPrime = append(mPrime, make([]byte, 8)...)
	mPrime = append(mPrime, mHash...)
	mPrime = append(mPrime, salt...)

	h.Reset()
	h.Write(mPrime)
	want := h.Sum(nil)
	return !util.MemNeq(want, hDigest), nil
}

// EncryptOAEP encrypts msg under pub using OAEP with the given hash and
// label.
func EncryptOAEP(rnd io.Reader, newHash func() hash.Hash, pub *rsa.PublicKey, label, msg []byte) ([]byte, error) {
	k := pub.Size()
	em, err := EncodeOAEP(rnd, newHash, k, label, msg)
	if err != nil {
		return nil, err
	}
	c, err := rsa.Encrypt(pub, bignum.FromBytes(em))
	if err != nil {
		return nil, err
	}
	out := make([]byte, k)
	c.FillBytes(out)
	return out, nil
}

// DecryptOAEP decrypts ct under priv using OAEP with the given hash and
// label.
func DecryptOAEP(newHash func() hash.Hash, priv *rsa.PrivateKey, label, ct []byte) ([]byte, error) {
	k := priv.Size()
	m, err := rsa.Decrypt(priv, bignum.FromBytes(ct), rsa.DecryptOptions{Blind: true})
	if err != nil {
		return nil, err
	}
	em := make([]byte, k)
	m.FillBytes(em)
	return DecodeOAEP(newHash, k, label, em)
}
