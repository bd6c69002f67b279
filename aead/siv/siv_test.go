package siv

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
	k1 := make([]byte, 16)
	k2 := make([]byte, 16)
	for i := range k2 {
		k2[i] = 1
	}
	pt := []byte("deterministic authenticated encryption")
	ad := [][]byte{[]byte("associated field one")}

	out, err := Seal(newAES(t, k1), newAES(t, k2), ad, pt)
	require.NoError(t, err)

	got, err := Open(newAES(t, k1), newAES(t, k2), ad, out)
	require.NoError(t, err)
	require.Equal(t, pt, got)
}

func TestDeterministic(t *testing.T) {
	k1 := make([]byte, 16)
	k2 := make([]byte, 16)
	pt := []byte("same plaintext every time")

	a, err := Seal(newAES(t, k1), newAES(t, k2), nil, pt)
	require.NoError(t, err)
	b, err := Seal(newAES(t, k1), newAES(t, k2), nil, pt)
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestOpenRejectsWrongAD(t *testing.T) {
	k1 := make([]byte, 16)
	k2 := make([]byte, 16)
	pt := []byte("payload")

	out, err := Seal(newAES(t, k1), newAES(t, k2), [][]byte{[]byte("ad1")}, pt)
	require.NoError(t, err)

	_, err = Open(newAES(t, k1), newAES(t, k2), [][]byte{[]byte("ad2")}, out)
	require.Error(t, err)
}

func TestShortPlaintext(t *testing.T) {
	k1 := make([]byte, 16)
	k2 := make([]byte, 16)
	pt := []byte("hi")

	out, err := Seal(newAES(t, k1), newAES(t, k2), nil, pt)
	require.NoError(t, err)
	got, err := Open(newAES(t, k1), newAES(t, k2), nil, out)
	require.NoError(t, err)
	require.Equal(t, pt, got)
}
