// Package ripemd160 registers the RIPEMD-160 hash descriptor over
// golang.org/x/crypto/ripemd160, per spec.md §4.1. Kept for legacy
// interoperability (Bitcoin-era key hashing, older PGP); not recommended
// for new designs.
package ripemd160

import (
	"hash"

	"golang.org/x/crypto/ripemd160"

	"gitlab.com/yawning/tomkit.git"
	"gitlab.com/yawning/tomkit.git/registry"
	"gitlab.com/yawning/tomkit.git/util"
)

const (
	Name = "rmd160"
	ID   = 24
)

// OID is the DER object identifier 1.3.36.3.2.1.
var OID = []int{1, 3, 36, 3, 2, 1}

func newHash() hash.Hash { return ripemd160.New() }

func selfTest() error {
	h := newHash()
	h.Write([]byte("abc"))
	got := h.Sum(nil)
	want := []byte{
		0x8e, 0xb2, 0x08, 0xf7, 0xe0, 0x5d, 0x98, 0x7a,
		0x9b, 0x04, 0x4a, 0x8e, 0x98, 0xc6, 0xb0, 0x87,
		0xf1, 0x5a, 0x0b, 0xfc,
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
		DigestSize:    ripemd160.Size,
		BlockSize:     ripemd160.BlockSize,
		OID:           OID,
		HMACBlockSize: ripemd160.BlockSize,
		New:           newHash,
		SelfTest:      selfTest,
	})
}
