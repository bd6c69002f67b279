// Package rc4prng implements spec.md §4.8's legacy RC4-PRNG descriptor: a
// fixed-size seed schedules streams/rc4's keystream directly, and Read
// drains it. Kept for legacy interoperability only, mirroring
// streams/rc4's own doc comment ("spec.md lists it among the PRNG
// constructions too, as prng/rc4prng's generator"); prng/chacha20prng is
// this package's structural template.
package rc4prng

import (
	"gitlab.com/yawning/tomkit.git"
	"gitlab.com/yawning/tomkit.git/registry"
	"gitlab.com/yawning/tomkit.git/streams/rc4"
	"gitlab.com/yawning/tomkit.git/util"
)

// Name is the descriptor name under which rc4prng is registered.
const Name = "rc4"

// ExportSize is the seed length: RC4 accepts 1-256 byte keys, so a fixed
// 256-byte export matches the maximum (Import accepts exactly 256 bytes
// and rejects shorter input; AddEntropy folds any excess beyond 256 bytes
// in via repeated XOR rather than truncating it).
const ExportSize = 256

type state struct {
	seed  [ExportSize]byte
	used  int
	c     *rc4.Cipher
	ready bool
}

func (s *state) AddEntropy(data []byte) error {
	for i, b := range data {
		s.seed[i%ExportSize] ^= b
	}
	s.ready = false
	return nil
}

func (s *state) Ready() error {
	c, err := rc4.New(s.seed[:])
	if err != nil {
		return err
	}
	s.c = c
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
	s.c.XORKeyStream(buf, buf)
	return len(buf), nil
}

func (s *state) Done() {
	util.Zeromem(s.seed[:])
	s.ready = false
}

func (s *state) Export() ([]byte, error) {
	return append([]byte{}, s.seed[:]...), nil
}

func (s *state) Import(data []byte) error {
	if len(data) != ExportSize {
		return tomkit.ErrInvalidPRNGSize
	}
	copy(s.seed[:], data)
	return s.Ready()
}

func start() (registry.PRNGState, error) {
	return &state{}, nil
}

func selfTest() error {
	s := &state{}
	seed := make([]byte, ExportSize)
	seed[0] = 0x01
	if err := s.AddEntropy(seed); err != nil {
		return err
	}
	if err := s.Ready(); err != nil {
		return err
	}
	buf := make([]byte, 16)
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
