// Package pem implements spec.md §4.6's PEM layer: line framing via
// stdlib encoding/pem (RFC 7468 base64 wrapping is pure boilerplate with
// one obvious implementation — the justified stdlib exception; no pack
// repo reimplements it, and the pack's own PEM-adjacent code,
// other_examples/c74c5ae8_sjanc-mynewt-artifact/sec-pkcs.go.go, also
// leans on crypto/x509 + stdlib pem rather than a hand-rolled framer),
// plus this module's own traditional-OpenSSL encrypted-key reader
// ("Proc-Type: 4,ENCRYPTED" / "DEK-Info: AES-128-CBC,<iv>") which stdlib
// encoding/pem exposes as raw headers but does not interpret.
package pem

import (
	"crypto/md5"
	gopem "encoding/pem"
	"encoding/hex"
	"strings"

	"gitlab.com/yawning/tomkit.git"
	"gitlab.com/yawning/tomkit.git/modes"
	"gitlab.com/yawning/tomkit.git/registry"
	"gitlab.com/yawning/tomkit.git/util"
)

// Block mirrors stdlib's pem.Block: a decoded PEM block's label, headers
// and raw (possibly still-encrypted) DER bytes.
type Block = gopem.Block

// Decode parses the first PEM block from data, returning it and any
// remaining bytes — a direct passthrough to stdlib encoding/pem.
func Decode(data []byte) (*Block, []byte) {
	return gopem.Decode(data)
}

// Encode serializes a block in PEM framing.
func Encode(b *Block) []byte {
	return gopem.EncodeToMemory(b)
}

// IsEncryptedTraditional reports whether block carries the traditional
// OpenSSL "Proc-Type: 4,ENCRYPTED" header.
func IsEncryptedTraditional(b *Block) bool {
	return strings.Contains(b.Headers["Proc-Type"], "ENCRYPTED")
}

// dekInfoSpec maps one DEK-Info algorithm token to the registry cipher
// name it schedules, the key length derived for it, and the IV length its
// CBC mode expects.
type dekInfoSpec struct {
	cipherName string
	keyLen     int
	ivLen      int
}

// dekInfoCiphers covers the DEK-Info tokens OpenSSL's own `-aes-128-cbc`
// / `-des3` flags produce; other tokens return ErrUnknownPEM.
var dekInfoCiphers = map[string]dekInfoSpec{
	"AES-128-CBC":  {cipherName: "aes", keyLen: 16, ivLen: 16},
	"AES-192-CBC":  {cipherName: "aes", keyLen: 24, ivLen: 16},
	"AES-256-CBC":  {cipherName: "aes", keyLen: 32, ivLen: 16},
	"DES-EDE3-CBC": {cipherName: "3des", keyLen: 24, ivLen: 8},
}

// DecryptTraditional decrypts a traditional-OpenSSL encrypted PEM block
// (Proc-Type 4,ENCRYPTED + DEK-Info) using OpenSSLKDF's one-iteration
// MD5-based key+IV derivation (EVP_BytesToKey), per spec.md §4.6's
// "pkcs_5_alg1_openssl" note. The block cipher comes from the registry
// so pem never imports ciphers/* directly — callers must have imported
// the relevant cipher package (for its init-time Register call) before
// this runs.
func DecryptTraditional(b *Block, password []byte) ([]byte, error) {
	dekInfo := b.Headers["DEK-Info"]
	parts := strings.SplitN(dekInfo, ",", 2)
	if len(parts) != 2 {
		return nil, tomkit.ErrUnknownPEM
	}
	spec, ok := dekInfoCiphers[parts[0]]
	if !ok {
		return nil, tomkit.ErrUnknownPEM
	}
	desc, _ := registry.Ciphers.FindByName(spec.cipherName)
	if desc == nil {
		return nil, tomkit.ErrUnknownPEM
	}

	iv, err := hex.DecodeString(parts[1])
	if err != nil || len(iv) != spec.ivLen {
		return nil, tomkit.ErrUnknownPEM
	}

	salt := iv
	if len(salt) > 8 {
		salt = salt[:8]
	}
	key, _ := util.OpenSSLKDF(md5.New, password, salt, spec.keyLen, 0)

	sched, err := desc.Setup(key, 0)
	if err != nil {
		return nil, err
	}
	defer util.Zeromem(key)

	cbc, err := modes.CBCStart(sched, iv)
	if err != nil {
		return nil, err
	}
	defer cbc.Done()

	if len(b.Bytes)%sched.BlockSize() != 0 {
		return nil, tomkit.ErrInvalidPacket
	}
	plain := make([]byte, len(b.Bytes))
	if err := cbc.Decrypt(b.Bytes, plain); err != nil {
		util.Zeromem(plain)
		return nil, err
	}

	return unpadPKCS7(plain, sched.BlockSize())
}

// unpadPKCS7 strips PKCS#7 padding, the scheme OpenSSL's traditional PEM
// encryption always applies to CBC-mode key material.
func unpadPKCS7(b []byte, blockSize int) ([]byte, error) {
	if len(b) == 0 || len(b)%blockSize != 0 {
		return nil, tomkit.ErrInvalidPacket
	}
	pad := int(b[len(b)-1])
	if pad == 0 || pad > blockSize || pad > len(b) {
		return nil, tomkit.ErrInvalidPacket
	}
	for _, c := range b[len(b)-pad:] {
		if int(c) != pad {
			return nil, tomkit.ErrInvalidPacket
		}
	}
	return b[:len(b)-pad], nil
}
