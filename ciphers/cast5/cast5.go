// Package cast5 registers the CAST-128 (CAST5) cipher descriptor over
// golang.org/x/crypto/cast5, per spec.md §4.1. Only 16-byte (128-bit) keys
// are accepted; the shorter 40- to 120-bit CAST-128 keys are not.
package cast5

import (
	"crypto/cipher"

	"golang.org/x/crypto/cast5"

	"gitlab.com/yawning/tomkit.git"
	"gitlab.com/yawning/tomkit.git/registry"
	"gitlab.com/yawning/tomkit.git/util"
)

const (
	Name = "cast5"
	ID   = 9
)

type schedule struct {
	cipher *cast5.Cipher
	key    []byte
}

func (s *schedule) BlockSize() int          { return s.cipher.BlockSize() }
func (s *schedule) Encrypt(dst, src []byte) { s.cipher.Encrypt(dst, src) }
func (s *schedule) Decrypt(dst, src []byte) { s.cipher.Decrypt(dst, src) }
func (s *schedule) Done()                   { util.Zeromem(s.key) }

var _ cipher.Block = (*cast5.Cipher)(nil)

func setup(key []byte, rounds int) (registry.Schedule, error) {
	if rounds != 0 && rounds != 16 {
		return nil, tomkit.ErrInvalidRounds
	}
	c, err := cast5.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return &schedule{cipher: c, key: append([]byte{}, key...)}, nil
}

func keySize(keyLen int) (int, error) {
	if keyLen >= 16 {
		return 16, nil
	}
	return 0, tomkit.ErrInvalidKeySize
}

func selfTest() error {
	key := []byte{
		0x01, 0x23, 0x45, 0x67, 0x12, 0x34, 0x56, 0x78,
		0x23, 0x45, 0x67, 0x89, 0x34, 0x56, 0x78, 0x9A,
	}
	pt := []byte{0x01, 0x23, 0x45, 0x67, 0x89, 0xAB, 0xCD, 0xEF}
	want := []byte{0x23, 0x8B, 0x4F, 0xE5, 0x84, 0x7E, 0x44, 0xB2}

	sched, err := setup(key, 0)
	if err != nil {
		return err
	}
	defer sched.Done()
	got := make([]byte, 8)
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
		MaxKeyLen:     16,
		BlockLen:      8,
		DefaultRounds: 16,
		Setup:         setup,
		KeySize:       keySize,
		SelfTest:      selfTest,
	})
}
