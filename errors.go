// Package tomkit is a modular cryptographic toolkit: a registry of cipher,
// hash and PRNG descriptors; block-cipher modes and AEAD/MAC constructions;
// RSA/ECC/DSA/DH/Ed25519/X25519 public-key primitives; and an ASN.1
// DER/PEM/PKCS#8 codec.
//
// Sub-packages implement one descriptor or construction each; this file
// holds the error taxonomy shared across all of them, modeled on the
// original C library's status codes (spec.md §6).
package tomkit

import "errors"

// Error taxonomy shared across every tomkit sub-package. Callers should use
// errors.Is against these sentinels rather than comparing strings.
var (
	ErrInvalidKeySize     = errors.New("tomkit: invalid key size")
	ErrInvalidRounds      = errors.New("tomkit: invalid number of rounds")
	ErrFailTestVector     = errors.New("tomkit: self-test failed")
	ErrBufferOverflow     = errors.New("tomkit: buffer overflow")
	ErrInvalidPacket      = errors.New("tomkit: invalid packet")
	ErrInvalidPRNGSize    = errors.New("tomkit: invalid PRNG export size")
	ErrReadPRNG           = errors.New("tomkit: failed to read from PRNG")
	ErrInvalidCipher      = errors.New("tomkit: invalid cipher")
	ErrInvalidHash        = errors.New("tomkit: invalid hash")
	ErrInvalidPRNG        = errors.New("tomkit: invalid PRNG")
	ErrPKTypeMismatch     = errors.New("tomkit: public/private key type mismatch")
	ErrPKNotPrivate       = errors.New("tomkit: key is not a private key")
	ErrInvalidArg         = errors.New("tomkit: invalid argument")
	ErrPKInvalidType      = errors.New("tomkit: invalid public key type")
	ErrOverflow           = errors.New("tomkit: overflow")
	ErrPKASN1             = errors.New("tomkit: invalid ASN.1 encoding for key")
	ErrInputTooLong       = errors.New("tomkit: input too long")
	ErrPKInvalidSize      = errors.New("tomkit: invalid key size")
	ErrInvalidPrimeSize   = errors.New("tomkit: invalid prime size")
	ErrPKInvalidPadding   = errors.New("tomkit: invalid PKCS#1 padding")
	ErrHashOverflow       = errors.New("tomkit: hash state overflow")
	ErrPasswordRequired   = errors.New("tomkit: password required to decrypt")
	ErrUnknownPEM         = errors.New("tomkit: unrecognized PEM label")
	ErrAuthenticationFail = errors.New("tomkit: message authentication failed")
)
