package chacha20

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
	pt := []byte("chacha20 keystream roundtrip message")

	c1, err := New(key, nonce, 0)
	require.NoError(t, err)
	ct := make([]byte, len(pt))
	c1.XORKeyStream(ct, pt)

	c2, err := New(key, nonce, 0)
	require.NoError(t, err)
	out := make([]byte, len(pt))
	c2.XORKeyStream(out, ct)
	require.Equal(t, pt, out)
}
