package ocb

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
	nonce := []byte("nonce-12bytes")
	adata := []byte("associated data")
	pt := []byte("this message spans more than a single offset codebook block")

	o, err := New(newAES(t, key), len(nonce), 16)
	require.NoError(t, err)
	out := o.Seal(nonce, adata, pt)

	o2, err := New(newAES(t, key), len(nonce), 16)
	require.NoError(t, err)
	got, err := o2.Open(nonce, adata, out)
	require.NoError(t, err)
	require.Equal(t, pt, got)
}

func TestOpenRejectsTamperedTag(t *testing.T) {
	key := make([]byte, 16)
	nonce := []byte("nonce-12bytes")
	pt := []byte("short")

	o, err := New(newAES(t, key), len(nonce), 16)
	require.NoError(t, err)
	out := o.Seal(nonce, nil, pt)
	out[len(out)-1] ^= 0xff

	o2, err := New(newAES(t, key), len(nonce), 16)
	require.NoError(t, err)
	_, err = o2.Open(nonce, nil, out)
	require.Error(t, err)
}

func TestShortPlaintextPartialBlock(t *testing.T) {
	key := make([]byte, 16)
	nonce := []byte("nonce-12bytes")
	pt := []byte("hi")

	o, err := New(newAES(t, key), len(nonce), 16)
	require.NoError(t, err)
	out := o.Seal(nonce, nil, pt)

	o2, err := New(newAES(t, key), len(nonce), 16)
	require.NoError(t, err)
	got, err := o2.Open(nonce, nil, out)
	require.NoError(t, err)
	require.Equal(t, pt, got)
}

func TestReusesKtopForSamePrefix(t *testing.T) {
	key := make([]byte, 16)
	nonce1 := []byte("nonce-12byt\x00")
	nonce2 := []byte("nonce-12byt\x01")
	pt := []byte("message")

	o, err := New(newAES(t, key), len(nonce1), 16)
	require.NoError(t, err)
	a := o.Seal(nonce1, nil, pt)
	b := o.Seal(nonce2, nil, pt)
	require.NotEqual(t, a, b)
}
