package sosemanuk

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestXORKeyStreamRoundTrip(t *testing.T) {
	key := []byte("sosemanuk test key material!!!!")
	iv := []byte{9, 9, 9, 9}
	pt := []byte("a message spanning more than one block of keystream material here")

	c1, err := New(key, iv)
	require.NoError(t, err)
	ct := make([]byte, len(pt))
	c1.XORKeyStream(ct, pt)

	c2, err := New(key, iv)
	require.NoError(t, err)
	out := make([]byte, len(pt))
	c2.XORKeyStream(out, ct)
	require.Equal(t, pt, out)
}
