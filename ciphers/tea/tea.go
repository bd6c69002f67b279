// Package tea registers the Tiny Encryption Algorithm cipher descriptor
// over golang.org/x/crypto/tea, per spec.md §4.1.
package tea

import (
	"golang.org/x/crypto/tea"

	"gitlab.com/yawning/tomkit.git"
	"gitlab.com/yawning/tomkit.git/registry"
	"gitlab.com/yawning/tomkit.git/util"
)

const (
	Name          = "tea"
	ID            = 12
	defaultRounds = 64
)

type schedule struct {
	cipher *tea.Cipher
	key    []byte
}

func (s *schedule) BlockSize() int          { return s.cipher.BlockSize() }
func (s *schedule) Encrypt(dst, src []byte) { s.cipher.Encrypt(dst, src) }
func (s *schedule) Decrypt(dst, src []byte) { s.cipher.Decrypt(dst, src) }
func (s *schedule) Done()                   { util.Zeromem(s.key) }

func setup(key []byte, rounds int) (registry.Schedule, error) {
	if rounds == 0 {
		rounds = defaultRounds
	}
	c, err := tea.NewCipherWithRounds(key, rounds)
	if err != nil {
		return nil, err
	}
	return &schedule{cipher: c, key: append([]byte{}, key...)}, nil
}

func keySize(keyLen int) (int, error) {
	if keyLen < 16 {
		return 0, tomkit.ErrInvalidKeySize
	}
	return 16, nil
}

func selfTest() error {
	key := make([]byte, 16)
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
		MinKeyLen:     16,
		MaxKeyLen:     16,
		BlockLen:      8,
		DefaultRounds: defaultRounds,
		Setup:         setup,
		KeySize:       keySize,
		SelfTest:      selfTest,
	})
}
