// Package sha256 registers the SHA-256 hash descriptor over stdlib
// crypto/sha256, per spec.md §4.1.
package sha256

import (
	"crypto/sha256"
	"hash"

	"gitlab.com/yawning/tomkit.git"
	"gitlab.com/yawning/tomkit.git/registry"
	"gitlab.com/yawning/tomkit.git/util"
)

const (
	Name = "sha256"
	ID   = 0
)

// OID is the DER object identifier 2.16.840.1.101.3.4.2.1.
var OID = []int{2, 16, 840, 1, 101, 3, 4, 2, 1}

func newHash() hash.Hash { return sha256.New() }

func selfTest() error {
	h := newHash()
	h.Write([]byte("abc"))
	got := h.Sum(nil)
	want := []byte{
		0xba, 0x78, 0x16, 0xbf, 0x8f, 0x01, 0xcf, 0xea,
		0x41, 0x41, 0x40, 0xde, 0x5d, 0xae, 0x22, 0x23,
		0xb0, 0x03, 0x61, 0xa3, 0x96, 0x17, 0x7a, 0x9c,
		0xb4, 0x10, 0xff, 0x61, 0xf2, 0x00, 0x15, 0xad,
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
		DigestSize:    sha256.Size,
		BlockSize:     sha256.BlockSize,
		OID:           OID,
		HMACBlockSize: sha256.BlockSize,
		New:           newHash,
		SelfTest:      selfTest,
	})
}
