// Package fortuna implements the Fortuna PRNG descriptor contract per
// spec.md §4.8: 32 entropy pools, a reseed counter, and periodic reseed
// from a rotating subset of pools (pool i contributes only once every
// 2^i calls, so pool 0 feeds every reseed and pool 31 almost never does).
package fortuna

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha256"

	"gitlab.com/yawning/tomkit.git"
	"gitlab.com/yawning/tomkit.git/registry"
	"gitlab.com/yawning/tomkit.git/util"
)

const (
	Name      = "fortuna"
	numPools  = 32
	minReseed = 1 // bytes accumulated in pool 0 before a reseed may occur
)

type state struct {
	pools       [numPools][sha256.Size]byte
	poolLen     [numPools]int
	nextPool    int
	reseedCount uint32

	key     [32]byte
	counter [16]byte
	stream  cipher.Stream
	ready   bool
}

func (s *state) AddEntropy(data []byte) error {
	i := s.nextPool
	h := sha256.New()
	h.Write(s.pools[i][:])
	h.Write(data)
	copy(s.pools[i][:], h.Sum(nil))
	s.poolLen[i] += len(data)
	s.nextPool = (s.nextPool + 1) % numPools
	return nil
}

func (s *state) Ready() error {
	if s.poolLen[0] < minReseed {
		return tomkit.ErrInvalidPRNG
	}
	s.reseedCount++

	h := sha256.New()
	for i := 0; i < numPools; i++ {
		// pool i contributes once every 2^i reseeds.
		if s.reseedCount%(1<<uint(i)) != 0 {
			break
		}
		h.Write(s.pools[i][:])
	}
	digest := h.Sum(nil)

	keyHash := sha256.New()
	keyHash.Write(s.key[:])
	keyHash.Write(digest)
	copy(s.key[:], keyHash.Sum(nil))

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
	for i := range s.pools {
		util.Zeromem(s.pools[i][:])
	}
	s.ready = false
}

// ExportSize is a 32-byte key plus the reseed counter (encoded as 4
// bytes) plus a 16-byte counter block.
const ExportSize = 32 + 4 + 16

func (s *state) Export() ([]byte, error) {
	out := make([]byte, ExportSize)
	copy(out[:32], s.key[:])
	out[32] = byte(s.reseedCount >> 24)
	out[33] = byte(s.reseedCount >> 16)
	out[34] = byte(s.reseedCount >> 8)
	out[35] = byte(s.reseedCount)
	copy(out[36:], s.counter[:])
	return out, nil
}

func (s *state) Import(data []byte) error {
	if len(data) != ExportSize {
		return tomkit.ErrInvalidPRNGSize
	}
	copy(s.key[:], data[:32])
	s.reseedCount = uint32(data[32])<<24 | uint32(data[33])<<16 | uint32(data[34])<<8 | uint32(data[35])
	copy(s.counter[:], data[36:])
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
	if err := s.AddEntropy([]byte("seed")); err != nil {
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
