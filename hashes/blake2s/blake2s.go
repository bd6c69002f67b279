// Package blake2s registers the BLAKE2s-256 hash descriptor over
// golang.org/x/crypto/blake2s, per spec.md §4.1.
package blake2s

import (
	"hash"

	"golang.org/x/crypto/blake2s"

	"gitlab.com/yawning/tomkit.git"
	"gitlab.com/yawning/tomkit.git/registry"
	"gitlab.com/yawning/tomkit.git/util"
)

const (
	Name = "blake2s"
	ID   = 23
)

func newHash() hash.Hash {
	h, _ := blake2s.New256(nil)
	return h
}

func selfTest() error {
	h := newHash()
	h.Write([]byte("abc"))
	got := h.Sum(nil)
	want := []byte{
		0x50, 0x8c, 0x5e, 0x8c, 0x32, 0x7c, 0x14, 0xe2,
		0xe1, 0xa7, 0x2b, 0xa3, 0x4e, 0xeb, 0x45, 0x2f,
		0x37, 0x45, 0x8b, 0x20, 0x9e, 0xd6, 0x3a, 0x29,
		0x4d, 0x99, 0x9b, 0x4c, 0x86, 0x67, 0x59, 0x82,
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
		DigestSize:    32,
		BlockSize:     64,
		HMACBlockSize: 64,
		New:           newHash,
		SelfTest:      selfTest,
	})
}
