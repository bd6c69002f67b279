// Package util collects spec.md §4/Component L's small standalone
// helpers: constant-time comparison, secret-buffer zeroization, and
// base16/32/64 codecs, named after their C library counterparts
// (MEM_NEQ, zeromem, burn_stack) so callers porting familiar code find
// familiar names.
package util

import (
	"crypto/subtle"
	"encoding/base32"
	"encoding/base64"
	"encoding/hex"
)

// MemNeq reports whether a and b differ, in time depending only on
// len(a)/len(b), never on their contents — the constant-time primitive
// every AEAD tag comparison in this module is built on (spec.md §4.4:
// "Tag comparisons use constant-time XOR-OR-reduce ... never memcmp").
// Like the C MEM_NEQ (which returns nonzero on a *difference*), MemNeq
// reports true when a and b differ, as a bool rather than an int.
func MemNeq(a, b []byte) bool {
	if len(a) != len(b) {
		return true
	}
	return subtle.ConstantTimeCompare(a, b) == 0
}

// Zeromem overwrites buf with zero bytes, for spec.md §7's "fatal
// decryption errors ... cause the output buffer to be zeroed before
// return" and §3's "done ... also zeroes sensitive material."
func Zeromem(buf []byte) {
	for i := range buf {
		buf[i] = 0
	}
}

// BurnStack overwrites n bytes of stack space with zeros by way of a
// local array, approximating the C library's burn_stack mitigation
// against leaving key material in stale stack frames. The Go runtime's
// garbage collector and stack-growth copying make this a best-effort
// gesture rather than a guarantee; it exists so ports of code that called
// burn_stack have a direct analogue to call.
func BurnStack(n int) {
	if n <= 0 {
		return
	}
	var buf [256]byte
	Zeromem(buf[:])
	if n > len(buf) {
		BurnStack(n - len(buf))
	}
}

// CopyOrZero conditionally copies src into dst if cond == 1, or zeroes
// dst if cond == 0, in constant time with respect to cond — the
// copy_or_zeromem primitive spec.md's Design Notes name as required for
// side-channel discipline around secret-dependent branches (e.g. PKCS#1
// v1.5 unpadding).
func CopyOrZero(dst, src []byte, cond int) {
	mask := byte(subtle.ConstantTimeEq(int32(cond), 1)) * 0xff
	for i := range dst {
		var s byte
		if i < len(src) {
			s = src[i]
		}
		dst[i] = dst[i]&^mask | (s & mask)
	}
}

// EncodeHex and DecodeHex are the base16 codec named in spec.md's utility
// component.
func EncodeHex(b []byte) string { return hex.EncodeToString(b) }

func DecodeHex(s string) ([]byte, error) { return hex.DecodeString(s) }

// EncodeBase32 and DecodeBase32 are the base32 codec (RFC 4648, no
// padding stripped) named in spec.md's utility component.
func EncodeBase32(b []byte) string { return base32.StdEncoding.EncodeToString(b) }

func DecodeBase32(s string) ([]byte, error) { return base32.StdEncoding.DecodeString(s) }

// EncodeBase64 and DecodeBase64 are the base64 codec named in spec.md's
// utility component, used by pem for the body of every PEM block.
func EncodeBase64(b []byte) string { return base64.StdEncoding.EncodeToString(b) }

func DecodeBase64(s string) ([]byte, error) { return base64.StdEncoding.DecodeString(s) }
