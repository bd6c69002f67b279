// Package sha1 registers the SHA-1 hash descriptor over stdlib
// crypto/sha1, per spec.md §4.1. Kept for legacy interoperability (PEM
// traditional-OpenSSL KDF inputs, older PKCS#8 PRFs), not recommended for
// new signatures.
package sha1

import (
	"crypto/sha1"
	"hash"

	"gitlab.com/yawning/tomkit.git"
	"gitlab.com/yawning/tomkit.git/registry"
	"gitlab.com/yawning/tomkit.git/util"
)

const (
	Name = "sha1"
	ID   = 2
)

// OID is the DER object identifier 1.3.14.3.2.26.
var OID = []int{1, 3, 14, 3, 2, 26}

func newHash() hash.Hash { return sha1.New() }

func selfTest() error {
	h := newHash()
	h.Write([]byte("abc"))
	got := h.Sum(nil)
	want := []byte{
		0xa9, 0x99, 0x3e, 0x36, 0x47, 0x06, 0x81, 0x6a,
		0xba, 0x3e, 0x25, 0x71, 0x78, 0x50, 0xc2, 0x6c,
		0x9c, 0xd0, 0xd8, 0x9d,
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
		DigestSize:    sha1.Size,
		BlockSize:     sha1.BlockSize,
		OID:           OID,
		HMACBlockSize: sha1.BlockSize,
		New:           newHash,
		SelfTest:      selfTest,
	})
}
