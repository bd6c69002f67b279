// Package blowfish registers the Blowfish cipher descriptor over
// golang.org/x/crypto/blowfish, per spec.md §4.1.
package blowfish

import (
	"crypto/cipher"

	"golang.org/x/crypto/blowfish"

	"gitlab.com/yawning/tomkit.git"
	"gitlab.com/yawning/tomkit.git/registry"
	"gitlab.com/yawning/tomkit.git/util"
)

const (
	Name = "blowfish"
	ID   = 8
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
	if rounds != 0 && rounds != 16 {
		return nil, tomkit.ErrInvalidRounds
	}
	b, err := blowfish.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return &schedule{block: b, key: append([]byte{}, key...)}, nil
}

func keySize(keyLen int) (int, error) {
	switch {
	case keyLen < 1:
		return 0, tomkit.ErrInvalidKeySize
	case keyLen > 56:
		return 56, nil
	default:
		return keyLen, nil
	}
}

func selfTest() error {
	key := []byte("testkey1testkey1")
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
		MinKeyLen:     1,
		MaxKeyLen:     56,
		BlockLen:      8,
		DefaultRounds: 16,
		Setup:         setup,
		KeySize:       keySize,
		SelfTest:      selfTest,
	})
}
