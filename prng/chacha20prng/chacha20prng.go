// Package chacha20prng implements the ChaCha20-PRNG descriptor contract
// per spec.md §4.8: a 44-byte seed (32-byte key + 12-byte nonce, the sizes
// golang.org/x/crypto/chacha20 takes) XORed into state; a 40-byte seed is
// not accepted by Import. On AddEntropy, the new data is XORed into the current keystream
// output ("rekey by XORing into the current keystream output") rather
// than replacing it outright.
package chacha20prng

import (
	"crypto/sha256"

	rtchacha20 "golang.org/x/crypto/chacha20"

	"gitlab.com/yawning/tomkit.git"
	"gitlab.com/yawning/tomkit.git/registry"
	"gitlab.com/yawning/tomkit.git/util"
)

func sha256Sum(parts ...[]byte) []byte {
	h := sha256.New()
	for _, p := range parts {
		h.Write(p)
	}
	return h.Sum(nil)
}

const (
	Name = "chacha20prng"
	// ExportSize matches the 44-byte key+nonce seed.
	ExportSize = rtchacha20.KeySize + rtchacha20.NonceSize
)

type state struct {
	key    [rtchacha20.KeySize]byte
	nonce  [rtchacha20.NonceSize]byte
	cipher *rtchacha20.Cipher
	ready  bool
}

func (s *state) AddEntropy(data []byte) error {
	if !s.ready {
		// Before Ready, entropy XORs directly into the pending seed.
		for i, b := range data {
			if i < len(s.key) {
				s.key[i] ^= b
			} else if i < len(s.key)+len(s.nonce) {
				s.nonce[i-len(s.key)] ^= b
			}
		}
		return nil
	}

	// After Ready, "rekey on add_entropy by XORing into the current
	// keystream output": draw len(data) keystream bytes and XOR data into
	// them, then feed the result back into the key.
	ks := make([]byte, len(data))
	s.cipher.XORKeyStream(ks, ks)
	for i := range ks {
		ks[i] ^= data[i]
	}
	h := sha256Sum(s.key[:], ks)
	copy(s.key[:], h)
	return s.rekey()
}

func (s *state) rekey() error {
	c, err := rtchacha20.NewUnauthenticatedCipher(s.key[:], s.nonce[:])
	if err != nil {
		return err
	}
	s.cipher = c
	s.ready = true
	return nil
}

func (s *state) Ready() error {
	return s.rekey()
}

func (s *state) Read(buf []byte) (int, error) {
	if !s.ready {
		return 0, tomkit.ErrInvalidPRNG
	}
	for i := range buf {
		buf[i] = 0
	}
	s.cipher.XORKeyStream(buf, buf)
	return len(buf), nil
}

func (s *state) Done() {
	util.Zeromem(s.key[:])
	util.Zeromem(s.nonce[:])
	s.ready = false
}

func (s *state) Export() ([]byte, error) {
	out := make([]byte, ExportSize)
	copy(out, s.key[:])
	copy(out[len(s.key):], s.nonce[:])
	return out, nil
}

func (s *state) Import(data []byte) error {
	if len(data) != ExportSize {
		return tomkit.ErrInvalidPRNGSize
	}
	copy(s.key[:], data[:len(s.key)])
	copy(s.nonce[:], data[len(s.key):])
	return s.rekey()
}

func start() (registry.PRNGState, error) {
	return &state{}, nil
}

func selfTest() error {
	s := &state{}
	if err := s.AddEntropy(make([]byte, ExportSize)); err != nil {
		return err
	}
	if err := s.Ready(); err != nil {
		return err
	}
	buf := make([]byte, 32)
	if _, err := s.Read(buf); err != nil {
		return err
	}
	s.Done()
	return nil
}

func init() {
	registry.PRNGs.Register(&registry.PRNGDescriptor{
		Name:       Name,
		ExportSize: ExportSize,
		Start:      start,
		SelfTest:   selfTest,
	})
}
