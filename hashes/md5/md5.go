// Package md5 registers the MD5 hash descriptor over stdlib crypto/md5,
// per spec.md §4.1. Kept only for the traditional-OpenSSL PEM KDF
// (pkcs_5_alg1_openssl) and other legacy wire formats that name it
// explicitly; never select it for new signatures.
package md5

import (
	"crypto/md5"
	"hash"

	"gitlab.com/yawning/tomkit.git"
	"gitlab.com/yawning/tomkit.git/registry"
	"gitlab.com/yawning/tomkit.git/util"
)

const (
	Name = "md5"
	ID   = 3
)

// OID is the DER object identifier 1.2.840.113549.2.5.
var OID = []int{1, 2, 840, 113549, 2, 5}

func newHash() hash.Hash { return md5.New() }

func selfTest() error {
	h := newHash()
	h.Write([]byte("abc"))
	got := h.Sum(nil)
	want := []byte{
		0x90, 0x01, 0x50, 0x98, 0x3c, 0xd2, 0x4f, 0xb0,
		0xd6, 0x96, 0x3f, 0x7d, 0x28, 0xe1, 0x7f, 0x72,
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
		DigestSize:    md5.Size,
		BlockSize:     md5.BlockSize,
		OID:           OID,
		HMACBlockSize: md5.BlockSize,
		New:           newHash,
		SelfTest:      selfTest,
	})
}
