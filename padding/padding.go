// Package padding implements spec.md §4.7's seven byte-padding schemes for
// block-aligned ciphers. Every Pad returns a new slice; every Depad
// validates and returns an error (never a panic) on malformed padding, per
// spec.md §7.
package padding

import (
	"crypto/rand"
	"errors"
)

// ErrInvalidPadding is returned by Depad when the trailing bytes do not
// form valid padding for the given Mode.
var ErrInvalidPadding = errors.New("padding: invalid padding")

// Mode selects one of spec.md §4.7's seven padding schemes.
type Mode int

const (
	PKCS7 Mode = iota
	ISO10126
	ANSIX923
	OneAndZero
	Zero
	ZeroAlways
	SSH
)

// Pad appends padding to data to reach a multiple of blockLen, per the
// selected Mode. blockLen must be in [1, 255].
func Pad(mode Mode, data []byte, blockLen int) ([]byte, error) {
	if blockLen <= 0 || blockLen > 255 {
		return nil, errors.New("padding: block length must be in [1, 255]")
	}

	switch mode {
	case PKCS7:
		n := blockLen - (len(data) % blockLen)
		out := append(append([]byte{}, data...), make([]byte, n)...)
		for i := len(data); i < len(out); i++ {
			out[i] = byte(n)
		}
		return out, nil

	case ISO10126:
		n := blockLen - (len(data) % blockLen)
		out := append(append([]byte{}, data...), make([]byte, n)...)
		if n > 1 {
			if _, err := rand.Read(out[len(data) : len(out)-1]); err != nil {
				return nil, err
			}
		}
		out[len(out)-1] = byte(n)
		return out, nil

	case ANSIX923:
		n := blockLen - (len(data) % blockLen)
		out := append(append([]byte{}, data...), make([]byte, n)...)
		out[len(out)-1] = byte(n)
		return out, nil

	case OneAndZero:
		rem := len(data) % blockLen
		n := blockLen - rem
		out := append(append([]byte{}, data...), make([]byte, n)...)
		out[len(data)] = 0x80
		return out, nil

	case Zero:
		rem := len(data) % blockLen
		if rem == 0 {
			return append([]byte{}, data...), nil
		}
		n := blockLen - rem
		return append(append([]byte{}, data...), make([]byte, n)...), nil

	case ZeroAlways:
		rem := len(data) % blockLen
		n := blockLen - rem
		if n == 0 {
			n = blockLen
		}
		return append(append([]byte{}, data...), make([]byte, n)...), nil

	case SSH:
		n := blockLen - (len(data) % blockLen)
		out := append(append([]byte{}, data...), make([]byte, n)...)
		for i := 0; i < n; i++ {
			out[len(data)+i] = byte(i + 1)
		}
		return out, nil

	default:
		return nil, errors.New("padding: unknown mode")
	}
}

// Depad validates and strips padding added by Pad, returning the original
// data. It returns ErrInvalidPadding (never leaking information beyond
// which block the mismatch was in, per spec.md §4.7) if the trailing
// bytes are not well-formed padding for mode.
func Depad(mode Mode, data []byte, blockLen int) ([]byte, error) {
	if blockLen <= 0 || blockLen > 255 {
		return nil, errors.New("padding: block length must be in [1, 255]")
	}
	if len(data) == 0 || len(data)%blockLen != 0 {
		return nil, ErrInvalidPadding
	}

	switch mode {
	case PKCS7, ANSIX923:
		n := int(data[len(data)-1])
		if n == 0 || n > blockLen || n > len(data) {
			return nil, ErrInvalidPadding
		}
		if mode == ANSIX923 {
			for i := len(data) - n; i < len(data)-1; i++ {
				if data[i] != 0 {
					return nil, ErrInvalidPadding
				}
			}
		} else {
			for i := len(data) - n; i < len(data); i++ {
				if data[i] != byte(n) {
					return nil, ErrInvalidPadding
				}
			}
		}
		return data[:len(data)-n], nil

	case ISO10126:
		n := int(data[len(data)-1])
		if n == 0 || n > blockLen || n > len(data) {
			return nil, ErrInvalidPadding
		}
		return data[:len(data)-n], nil

	case OneAndZero:
		i := len(data) - 1
		for i >= 0 && data[i] == 0 {
			i--
		}
		if i < 0 || data[i] != 0x80 {
			return nil, ErrInvalidPadding
		}
		if len(data)-i > blockLen {
			return nil, ErrInvalidPadding
		}
		return data[:i], nil

	case Zero, ZeroAlways:
		i := len(data)
		for i > 0 && data[i-1] == 0 {
			i--
		}
		return data[:i], nil

	case SSH:
		n := int(data[len(data)-1])
		if n == 0 || n > blockLen || n > len(data) {
			return nil, ErrInvalidPadding
		}
		for i := 0; i < n; i++ {
			if data[len(data)-n+i] != byte(i+1) {
				return nil, ErrInvalidPadding
			}
		}
		return data[:len(data)-n], nil

	default:
		return nil, errors.New("padding: unknown mode")
	}
}
