// Package sober128prng implements spec.md §4.8's SOBER-128-PRNG
// descriptor: a 32-byte key plus 4-byte IV schedule streams/sober128's
// keystream generator, mirroring prng/chacha20prng's structure.
package sober128prng

import (
	"gitlab.com/yawning/tomkit.git"
	"gitlab.com/yawning/tomkit.git/registry"
	"gitlab.com/yawning/tomkit.git/streams/sober128"
	"gitlab.com/yawning/tomkit.git/util"
)

// Name is the descriptor name under which sober128prng is registered.
const Name = "sober128"

const (
	keySize = 32
	ivSize  = 4
	// ExportSize is the 36-byte key+IV seed.
	ExportSize = keySize + ivSize
)

type state struct {
	key    [keySize]byte
	iv     [ivSize]byte
	cipher *sober128.Cipher
	ready  bool
}

func (s *state) AddEntropy(data []byte) error {
	for i, b := range data {
		if i < keySize {
			s.key[i] ^= b
		} else if i < keySize+ivSize {
			s.iv[i-keySize] ^= b
		} else {
			s.key[i%keySize] ^= b
		}
	}
	s.ready = false
	return nil
}

func (s *state) Ready() error {
	c, err := sober128.New(s.key[:], s.iv[:])
	if err != nil {
		return err
	}
	s.cipher = c
	s.ready = true
	return nil
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
	util.Zeromem(s.iv[:])
	s.ready = false
}

func (s *state) Export() ([]byte, error) {
	out := make([]byte, ExportSize)
	copy(out, s.key[:])
	copy(out[keySize:], s.iv[:])
	return out, nil
}

func (s *state) Import(data []byte) error {
	if len(data) != ExportSize {
		return tomkit.ErrInvalidPRNGSize
	}
	copy(s.key[:], data[:keySize])
	copy(s.iv[:], data[keySize:])
	return s.Ready()
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
