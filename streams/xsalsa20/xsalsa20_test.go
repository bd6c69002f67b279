package xsalsa20

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
	pt := []byte("xsalsa20 message")
	ct := make([]byte, len(pt))
	require.NoError(t, XORKeyStream(ct, pt, nonce, key))

	out := make([]byte, len(pt))
	require.NoError(t, XORKeyStream(out, ct, nonce, key))
	require.Equal(t, pt, out)
}
