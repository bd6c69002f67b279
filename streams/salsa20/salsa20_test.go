package salsa20

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestXORKeyStreamRoundTrip(t *testing.T) {
	key := make([]byte, KeySize)
	nonce := make([]byte, NonceSize)
	for i := range key {
		key[i] = byte(i)
	}
	pt := make([]byte, 200)
	for i := range pt {
		pt[i] = byte(i * 3)
	}

	c1, err := New(key, nonce)
	require.NoError(t, err)
	ct := make([]byte, 200)
	c1.XORKeyStream(ct, pt)

	c2, err := New(key, nonce)
	require.NoError(t, err)
	out := make([]byte, 200)
	c2.XORKeyStream(out, ct)
	require.Equal(t, pt, out)
}

func TestRejectsBadSizes(t *testing.T) {
	_, err := New(make([]byte, 10), make([]byte, NonceSize))
	require.Error(t, err)
	_, err = New(make([]byte, KeySize), make([]byte, 3))
	require.Error(t, err)
}
