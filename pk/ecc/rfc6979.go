package ecc

import (
	"crypto/hmac"
	"hash"

	"gitlab.com/yawning/tomkit.git/bignum"
)

// SignDeterministic implements RFC 6979's deterministic ECDSA nonce
// generation (an HMAC-DRBG seeded from the private key and message hash,
// so the same (key, message) pair always signs with the same k,
// eliminating the nonce-reuse failure mode of random-k ECDSA). Present in
// the upstream C tree (src/pk/ecc/ecc_rfc6979_key.c) but not named in
// spec.md's module list; SPEC_FULL.md brings it in as an opt-in signer,
// grounded additionally by the pack's ezthinking-rfc6979 test vectors.
func SignDeterministic(priv *PrivateKey, hash []byte, newHash func() hash.Hash) (*Signature, error) {
	curve := priv.Curve
	e := truncateHash(curve, hash)

	qlen := curve.N.BitLen()
	rlen := (qlen + 7) / 8

	int2octets := func(x *bignum.Int) []byte {
		buf := make([]byte, rlen)
		x.FillBytes(buf)
		return buf
	}
	bits2octets := func(h []byte) []byte {
		z1 := truncateHash(curve, h)
		z2, _ := bignum.New().Mod(z1, curve.N)
		return int2octets(z2)
	}

	hLen := newHash().Size()
	v := make([]byte, hLen)
	for i := range v {
		v[i] = 0x01
	}
	k := make([]byte, hLen)

	dOctets := int2octets(priv.D)
	hOctets := bits2octets(hash)

	hm := func(key []byte, parts ...[]byte) []byte {
		mac := hmac.New(newHash, key)
		for _, p := range parts {
			mac.Write(p)
		}
		return mac.Sum(nil)
	}

	k = hm(k, v, []byte{0x00}, dOctets, hOctets)
	v = hm(k, v)
	k = hm(k, v, []byte{0x01}, dOctets, hOctets)
	v = hm(k, v)

	for {
		var t []byte
		for len(t) < rlen {
			v = hm(k, v)
			t = append(t, v...)
		}
		kCandidate := truncateHash(curve, t)

		if kCandidate.Sign() > 0 && kCandidate.Cmp(curve.N) < 0 {
			sig, ok, err := signWithNonce(curve, priv.D, e, kCandidate)
			if err != nil {
				return nil, err
			}
			if ok {
				return sig, nil
			}
		}

		k = hm(k, v, []byte{0x00})
		v = hm(k, v)
	}
}
