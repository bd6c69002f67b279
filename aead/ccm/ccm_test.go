package ccm

import (
	"crypto/aes"
	"crypto/cipher"
	"testing"

	"github.com/stretchr/testify/require"
)

type aesSchedule struct{ cipher.Block }

func (aesSchedule) Done() {}

func newAES(t *testing.T, key []byte) aesSchedule {
	blk, err := aes.NewCipher(key)
	require.NoError(t, err)
	return aesSchedule{blk}
}

func TestRoundTrip(t *testing.T) {
	key := make([]byte, 16)
	nonce := make([]byte, 12)
	aad := []byte("header")
	pt := []byte("this is a secret message authenticated with ccm")

	out, err := Seal(newAES(t, key), nonce, aad, pt, 16)
	require.NoError(t, err)

	got, err := Open(newAES(t, key), nonce, aad, out, 16)
	require.NoError(t, err)
	require.Equal(t, pt, got)
}

func TestOpenRejectsTamperedCiphertext(t *testing.T) {
	key := make([]byte, 16)
	nonce := make([]byte, 12)
	pt := []byte("authenticate me")

	out, err := Seal(newAES(t, key), nonce, nil, pt, 16)
	require.NoError(t, err)

	out[0] ^= 0xff
	_, err = Open(newAES(t, key), nonce, nil, out, 16)
	require.Error(t, err)
}

func TestShortTagSize(t *testing.T) {
	key := make([]byte, 16)
	nonce := make([]byte, 13)
	pt := []byte("short tag variant")

	out, err := Seal(newAES(t, key), nonce, nil, pt, 4)
	require.NoError(t, err)
	require.Len(t, out, len(pt)+4)

	got, err := Open(newAES(t, key), nonce, nil, out, 4)
	require.NoError(t, err)
	require.Equal(t, pt, got)
}
