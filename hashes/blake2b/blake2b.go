// Package blake2b registers the BLAKE2b-512 hash descriptor over
// golang.org/x/crypto/blake2b, per spec.md §4.1.
package blake2b

import (
	"hash"

	"golang.org/x/crypto/blake2b"

	"gitlab.com/yawning/tomkit.git"
	"gitlab.com/yawning/tomkit.git/registry"
	"gitlab.com/yawning/tomkit.git/util"
)

const (
	Name = "blake2b"
	ID   = 22
)

func newHash() hash.Hash {
	h, _ := blake2b.New512(nil)
	return h
}

func selfTest() error {
	h := newHash()
	h.Write([]byte("abc"))
	got := h.Sum(nil)
	want := []byte{
		0xba, 0x80, 0xa5, 0x3f, 0x98, 0x1c, 0x4d, 0x0d,
		0x6a, 0x27, 0x97, 0xb6, 0x9f, 0x12, 0xf6, 0xe9,
		0x4c, 0x21, 0x2f, 0x14, 0x68, 0x5a, 0xc4, 0xb7,
		0x4b, 0x12, 0xbb, 0x6f, 0xdb, 0xff, 0xa2, 0xd1,
		0x7d, 0x87, 0xc5, 0x39, 0x2a, 0xab, 0x79, 0x2d,
		0xc2, 0x52, 0xd5, 0xde, 0x45, 0x33, 0xcc, 0x95,
		0x18, 0xd3, 0x8a, 0xa8, 0xdb, 0xf1, 0x92, 0x5a,
		0xb9, 0x23, 0x86, 0xed, 0xd4, 0x00, 0x99, 0x23,
	}
	if util.MemNeq(got, want) {
		return tomkit.ErrFailTestVector
	}
	return nil
}

func init() {
	registry.Hashes.Register(&registry.HashDescriptor{
		Name:          Name,
		ID:            ID,
		DigestSize:    64,
		BlockSize:     128,
		HMACBlockSize: 128,
		New:           newHash,
		SelfTest:      selfTest,
	})
}
