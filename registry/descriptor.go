// Package registry implements the process-wide descriptor tables of
// spec.md §4.1: fixed-capacity slots per algorithm class, registered once
// at process start and read-only thereafter (spec.md §5 "Shared resource
// policy").
//
// The register/lookup shape is grounded on luxfi-precompiles'
// modules/registerer.go (RegisterModule refuses a second entry with the
// same key or address, GetPrecompileModule linear-scans by key) and its
// registry/registry.go (name -> metadata table), adapted here from EVM
// precompile addresses to algorithm names and one-byte IDs.
package registry

import (
	"crypto/cipher"
	"fmt"
	"hash"
)

// DefaultCapacity is the default number of slots per table, matching
// spec.md §4.1's "fixed-capacity table (default 32 entries)".
const DefaultCapacity = 32

// Schedule is a cipher's scheduled-key handle: the ECB primitive plus the
// explicit zeroization hook spec.md §3 requires of "done". Any
// crypto/cipher.Block already exposes BlockSize/Encrypt/Decrypt; Schedule
// only adds Done().
type Schedule interface {
	cipher.Block
	// Done zeroes the schedule's key material. Safe to call more than
	// once.
	Done()
}

// AcceleratedSchedule is implemented by schedules that can offer a faster
// multi-block ECB path than calling Encrypt/Decrypt per block; the modes
// package's ECB mode consults it before falling back to the generic loop
// (CBC, CFB, OFB and CTR always call Encrypt/Decrypt per block).
type AcceleratedSchedule interface {
	Schedule
	// EncryptBlocks encrypts len(src)/BlockSize() blocks in one call.
	EncryptBlocks(dst, src []byte)
	// DecryptBlocks is the ECB-decrypt analogue of EncryptBlocks.
	DecryptBlocks(dst, src []byte)
}

// CipherDescriptor is the immutable record spec.md §3 describes for a
// cipher: name, one-byte ID, key/block-size limits, and the setup
// operation. Accelerated paths (ctr_encrypt, cbc_encrypt, ...) are not
// modeled on the descriptor itself: the modes package's ECB mode
// type-asserts a Schedule against AcceleratedSchedule instead, which is the idiomatic Go analogue of the
// C library's optional function pointers.
type CipherDescriptor struct {
	Name          string
	ID            byte
	MinKeyLen     int
	MaxKeyLen     int
	BlockLen      int
	DefaultRounds int

	// Setup schedules key for the given number of rounds (0 selects
	// DefaultRounds).
	Setup func(key []byte, rounds int) (Schedule, error)

	// KeySize rounds keyLen down to the nearest size this cipher accepts,
	// or returns an error if no such size exists at or below keyLen.
	KeySize func(keyLen int) (int, error)

	// SelfTest runs the descriptor's embedded test vector(s).
	SelfTest func() error
}

// HashDescriptor is spec.md §3's hash descriptor. New returns a fresh
// hash.Hash; init/process/done map onto Reset (implicit, since New starts
// reset)/Write/Sum respectively, which is the natural Go rendition of the
// C library's three-call contract.
type HashDescriptor struct {
	Name          string
	ID            byte
	DigestSize    int
	BlockSize     int
	OID           []int // DER OID, nil if the algorithm has none assigned
	HMACBlockSize int

	New      func() hash.Hash
	SelfTest func() error
}

// PRNGState is spec.md §3's PRNG descriptor operations bound to one
// instance, rather than passed a State parameter explicitly — the
// idiomatic Go rendition of a C "opaque State struct" is a value that owns
// its own methods.
type PRNGState interface {
	// AddEntropy mixes data into the pool. Reseeding (spec.md §4.8) occurs
	// on the next Ready call for Yarrow, or opportunistically for Fortuna.
	AddEntropy(data []byte) error
	// Ready finalizes pending entropy into the generator state.
	Ready() error
	// Read fills buf with output, returning the number of bytes produced
	// (always len(buf) on success).
	Read(buf []byte) (int, error)
	// Done zeroes all secret state. Safe to call more than once.
	Done()
	// Export serializes enough state to resume generation after a
	// restart, per spec.md §3's lifecycle.
	Export() ([]byte, error)
	// Import restores state previously produced by Export.
	Import(data []byte) error
}

// PRNGDescriptor is spec.md §3's PRNG descriptor.
type PRNGDescriptor struct {
	Name       string
	ExportSize int

	Start    func() (PRNGState, error)
	SelfTest func() error
}

// duplicateNameError and notFoundError give callers something to
// errors.Is/errors.As against without exposing table internals.
type duplicateNameError struct{ name string }

func (e *duplicateNameError) Error() string {
	return fmt.Sprintf("registry: name %q already registered", e.name)
}

type notFoundError struct{ what string }

func (e *notFoundError) Error() string {
	return fmt.Sprintf("registry: %s not found", e.what)
}
