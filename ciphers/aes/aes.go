// Package aes registers the AES cipher descriptor (spec.md §4.1's cipher
// descriptor contract) over stdlib crypto/aes. AES's own round function is
// explicitly a black box per spec.md's scope note; only the descriptor
// wiring belongs here.
package aes

import (
	"crypto/aes"
	"crypto/cipher"

	"gitlab.com/yawning/tomkit.git"
	"gitlab.com/yawning/tomkit.git/registry"
	"gitlab.com/yawning/tomkit.git/util"
)

// Name is the descriptor name under which AES is registered.
const Name = "aes"

// ID is AES's one-byte registry ID, matching libtomcrypt's historical
// assignment.
const ID = 6

type schedule struct {
	block cipher.Block
	key   []byte
}

func (s *schedule) BlockSize() int          { return s.block.BlockSize() }
func (s *schedule) Encrypt(dst, src []byte) { s.block.Encrypt(dst, src) }
func (s *schedule) Decrypt(dst, src []byte) { s.block.Decrypt(dst, src) }

func (s *schedule) Done() {
	util.Zeromem(s.key)
}

func setup(key []byte, rounds int) (registry.Schedule, error) {
	nr := expectedRounds(len(key))
	if rounds != 0 && nr != 0 && rounds != nr {
		return nil, tomkit.ErrInvalidRounds
	}
	b, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return &schedule{block: b, key: append([]byte{}, key...)}, nil
}

func expectedRounds(keyLen int) int {
	switch keyLen {
	case 16:
		return 10
	case 24:
		return 12
	case 32:
		return 14
	default:
		return 0
	}
}

func keySize(keyLen int) (int, error) {
	switch {
	case keyLen >= 32:
		return 32, nil
	case keyLen >= 24:
		return 24, nil
	case keyLen >= 16:
		return 16, nil
	default:
		return 0, tomkit.ErrInvalidKeySize
	}
}

func selfTest() error {
	key := []byte{
		0x2b, 0x7e, 0x15, 0x16, 0x28, 0xae, 0xd2, 0xa6,
		0xab, 0xf7, 0x15, 0x88, 0x09, 0xcf, 0x4f, 0x3c,
	}
	pt := []byte{
		0x6b, 0xc1, 0xbe, 0xe2, 0x2e, 0x40, 0x9f, 0x96,
		0xe9, 0x3d, 0x7e, 0x11, 0x73, 0x93, 0x17, 0x2a,
	}
	want := []byte{
		0x3a, 0xd7, 0x7b, 0xb4, 0x0d, 0x7a, 0x36, 0x60,
		0xa8, 0x9e, 0xca, 0xf3, 0x24, 0x66, 0xef, 0x97,
	}
	sched, err := setup(key, 0)
	if err != nil {
		return err
	}
	defer sched.Done()
	got := make([]byte, 16)
	sched.Encrypt(got, pt)
	if util.MemNeq(got, want) {
		return tomkit.ErrFailTestVector
	}
	return nil
}

func init() {
	registry.Ciphers.Register(&registry.CipherDescriptor{
		Name:          Name,
		ID:            ID,
		MinKeyLen:     16,
		MaxKeyLen:     32,
		BlockLen:      16,
		DefaultRounds: 10,
		Setup:         setup,
		KeySize:       keySize,
		SelfTest:      selfTest,
	})
}
