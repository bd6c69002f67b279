package chacha20poly1305

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	key := make([]byte, KeySize)
	nonce := make([]byte, NonceSize)
	pt := []byte("hello chacha20poly1305")

	a, err := New(key)
	require.NoError(t, err)

	ct := a.Seal(nil, nonce, pt, []byte("aad"))
	got, err := a.Open(nil, nonce, ct, []byte("aad"))
	require.NoError(t, err)
	require.Equal(t, pt, got)
}

func TestXRoundTrip(t *testing.T) {
	key := make([]byte, KeySize)
	nonce := make([]byte, NonceSizeX)
	pt := []byte("xchacha20poly1305 message")

	a, err := NewX(key)
	require.NoError(t, err)

	ct := a.Seal(nil, nonce, pt, nil)
	got, err := a.Open(nil, nonce, ct, nil)
	require.NoError(t, err)
	require.Equal(t, pt, got)
}

func TestOpenRejectsTamperedCiphertext(t *testing.T) {
	key := make([]byte, KeySize)
	nonce := make([]byte, NonceSize)
	a, err := New(key)
	require.NoError(t, err)

	ct := a.Seal(nil, nonce, []byte("message"), nil)
	ct[0] ^= 0xff
	_, err = a.Open(nil, nonce, ct, nil)
	require.Error(t, err)
}

func TestNewRejectsBadKeySize(t *testing.T) {
	_, err := New(make([]byte, 16))
	require.Error(t, err)
}
