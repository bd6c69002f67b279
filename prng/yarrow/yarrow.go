// Package yarrow implements the Yarrow PRNG descriptor contract: reseed
// from an entropy pool by hashing, generate by running AES in CTR mode
// seeded by the pool hash, per spec.md §4.8. Reseeds on every explicit
// AddEntropy+Ready pair, matching the C library's "reseed on add_entropy"
// behavior rather than batching entropy across calls.
package yarrow

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha256"

	"gitlab.com/yawning/tomkit.git"
	"gitlab.com/yawning/tomkit.git/registry"
	"gitlab.com/yawning/tomkit.git/util"
)

const Name = "yarrow"

// ExportSize is the serialized state size: a 32-byte key plus a 16-byte
// counter block.
const ExportSize = 32 + 16

type state struct {
	pool    [sha256.Size]byte
	poolLen int

	key     [32]byte
	counter [16]byte
	stream  cipher.Stream
	ready   bool
}

func (s *state) AddEntropy(data []byte) error {
	h := sha256.New()
	h.Write(s.pool[:])
	h.Write(data)
	copy(s.pool[:], h.Sum(nil))
	s.poolLen += len(data)
	return nil
}

func (s *state) Ready() error {
	copy(s.key[:], s.pool[:])
	for i := range s.counter {
		s.counter[i] = 0
	}
	block, err := aes.NewCipher(s.key[:])
	if err != nil {
		return err
	}
	s.stream = cipher.NewCTR(block, s.counter[:])
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
	s.stream.XORKeyStream(buf, buf)
	return len(buf), nil
}

func (s *state) Done() {
	util.Zeromem(s.key[:])
	util.Zeromem(s.pool[:])
	s.ready = false
}

func (s *state) Export() ([]byte, error) {
	out := make([]byte, ExportSize)
	copy(out[:32], s.key[:])
	copy(out[32:], s.counter[:])
	return out, nil
}

func (s *state) Import(data []byte) error {
	if len(data) != ExportSize {
		return tomkit.ErrInvalidPRNGSize
	}
	copy(s.key[:], data[:32])
	copy(s.counter[:], data[32:])
	block, err := aes.NewCipher(s.key[:])
	if err != nil {
		return err
	}
	s.stream = cipher.NewCTR(block, s.counter[:])
	s.ready = true
	return nil
}

func start() (registry.PRNGState, error) {
	return &state{}, nil
}

func selfTest() error {
	s := &state{}
	if err := s.AddEntropy([]byte("entropy")); err != nil {
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
