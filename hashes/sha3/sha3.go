// Package sha3 registers the SHA3-256 and SHA3-512 hash descriptors over
// golang.org/x/crypto/sha3, per spec.md §4.1.
package sha3

import (
	"hash"

	"golang.org/x/crypto/sha3"

	"gitlab.com/yawning/tomkit.git"
	"gitlab.com/yawning/tomkit.git/registry"
	"gitlab.com/yawning/tomkit.git/util"
)

const (
	Name256 = "sha3-256"
	ID256   = 20

	Name512 = "sha3-512"
	ID512   = 21
)

// OID256/OID512 are the DER object identifiers for SHA3-256/SHA3-512.
var (
	OID256 = []int{2, 16, 840, 1, 101, 3, 4, 2, 8}
	OID512 = []int{2, 16, 840, 1, 101, 3, 4, 2, 10}
)

func new256() hash.Hash { return sha3.New256() }
func new512() hash.Hash { return sha3.New512() }

func selfTest256() error {
	h := new256()
	h.Write([]byte("abc"))
	got := h.Sum(nil)
	want := []byte{
		0x3a, 0x98, 0x5d, 0xa7, 0x4f, 0xe2, 0x25, 0xb2,
		0x04, 0x5c, 0x17, 0x2d, 0x6b, 0xd3, 0x90, 0xbd,
		0x85, 0x5f, 0x08, 0x6e, 0x3e, 0x9d, 0x52, 0x5b,
		0x46, 0xbf, 0xe2, 0x45, 0x11, 0x43, 0x15, 0x32,
	}
	if util.MemNeq(got, want) {
		return tomkit.ErrFailTestVector
	}
	return nil
}

func selfTest512() error {
	h := new512()
	h.Write([]byte("abc"))
	got := h.Sum(nil)
	want := []byte{
		0xb7, 0x51, 0x85, 0x0b, 0x1a, 0x57, 0x16, 0x8a,
		0x56, 0x93, 0xcd, 0x92, 0x4b, 0x6b, 0x09, 0x6e,
		0x08, 0xf6, 0x21, 0x82, 0x74, 0x44, 0xf7, 0x0d,
		0x88, 0x4f, 0x5d, 0x02, 0x40, 0xd2, 0x71, 0x2e,
		0x10, 0xe1, 0x16, 0xe9, 0x19, 0x2a, 0xf3, 0xc9,
		0x1a, 0x7e, 0xc5, 0x76, 0x47, 0xe3, 0x93, 0x40,
		0x57, 0x34, 0x0b, 0x4c, 0xf4, 0x08, 0xd5, 0xa5,
		0x65, 0x92, 0xf8, 0x27, 0x4e, 0xec, 0x53, 0xf0,
	}
	if util.MemNeq(got, want) {
		return tomkit.ErrFailTestVector
	}
	return nil
}

func init() {
	registry.Hashes.Register(&registry.HashDescriptor{
		Name: Name256, ID: ID256,
		DigestSize: 32, BlockSize: 136, OID: OID256, HMACBlockSize: 136,
		New: new256, SelfTest: selfTest256,
	})
	registry.Hashes.Register(&registry.HashDescriptor{
		Name: Name512, ID: ID512,
		DigestSize: 64, BlockSize: 72, OID: OID512, HMACBlockSize: 72,
		New: new512, SelfTest: selfTest512,
	})
}
