// Package des3 registers the three-key Triple-DES cipher descriptor over
// stdlib crypto/des, per spec.md §4.1. Keys must be 24 bytes; two-key
// (16-byte) Triple-DES keys are not accepted.
package des3

import (
	"crypto/cipher"
	"crypto/des"

	"gitlab.com/yawning/tomkit.git"
	"gitlab.com/yawning/tomkit.git/registry"
	"gitlab.com/yawning/tomkit.git/util"
)

const (
	Name = "3des"
	ID   = 4
)

type schedule struct {
	block cipher.Block
	key   []byte
}

func (s *schedule) BlockSize() int          { return s.block.BlockSize() }
func (s *schedule) Encrypt(dst, src []byte) { s.block.Encrypt(dst, src) }
func (s *schedule) Decrypt(dst, src []byte) { s.block.Decrypt(dst, src) }
func (s *schedule) Done()                   { util.Zeromem(s.key) }

func setup(key []byte, rounds int) (registry.Schedule, error) {
	if rounds != 0 && rounds != 1 {
		return nil, tomkit.ErrInvalidRounds
	}
	b, err := des.NewTripleDESCipher(key)
	if err != nil {
		return nil, err
	}
	return &schedule{block: b, key: append([]byte{}, key...)}, nil
}

func keySize(keyLen int) (int, error) {
	if keyLen >= 24 {
		return 24, nil
	}
	return 0, tomkit.ErrInvalidKeySize
}

func selfTest() error {
	key := make([]byte, 24)
	for i := range key {
		key[i] = byte(i)
	}
	pt := make([]byte, 8)
	sched, err := setup(key, 0)
	if err != nil {
		return err
	}
	defer sched.Done()
	ct := make([]byte, 8)
	sched.Encrypt(ct, pt)
	back := make([]byte, 8)
	sched.Decrypt(back, ct)
	if util.MemNeq(back, pt) {
		return tomkit.ErrFailTestVector
	}
	return nil
}

func init() {
	registry.Ciphers.Register(&registry.CipherDescriptor{
		Name:          Name,
		ID:            ID,
		MinKeyLen:     24,
		MaxKeyLen:     24,
		BlockLen:      8,
		DefaultRounds: 1,
		Setup:         setup,
		KeySize:       keySize,
		SelfTest:      selfTest,
	})
}
