package hmac

import (
	"crypto/sha256"
	stdhmac "crypto/hmac"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMatchesStdlibHMAC(t *testing.T) {
	key := []byte("key")
	msg := []byte("The quick brown fox jumps over the lazy dog")

	h := New(sha256.New, key, sha256.New().BlockSize())
	h.Write(msg)
	got := h.Sum()

	want := stdhmac.New(sha256.New, key)
	want.Write(msg)

	require.Equal(t, want.Sum(nil), got)
}

func TestRFC4231Vector2(t *testing.T) {
	key := []byte("Jefe")
	msg := []byte("what do ya want for nothing?")
	want, err := hex.DecodeString("5bdcc146bf60754e6a042426089575c75a003f089d2739839dec58b964ec3843")
	require.NoError(t, err)

	h := New(sha256.New, key, 64)
	h.Write(msg)
	require.Equal(t, want, h.Sum())
}

func TestKeyLongerThanBlockIsHashed(t *testing.T) {
	longKey := make([]byte, 200)
	for i := range longKey {
		longKey[i] = byte(i)
	}
	msg := []byte("message")

	h := New(sha256.New, longKey, sha256.New().BlockSize())
	h.Write(msg)
	got := h.Sum()

	want := stdhmac.New(sha256.New, longKey)
	want.Write(msg)
	require.Equal(t, want.Sum(nil), got)
}
