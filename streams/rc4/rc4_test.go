package rc4

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestXORKeyStreamKnownVector(t *testing.T) {
	c1, err := New([]byte("Key"))
	require.NoError(t, err)
	pt := []byte("Plaintext")
	ct := make([]byte, len(pt))
	c1.XORKeyStream(ct, pt)
	require.Equal(t, []byte{0xBB, 0xF3, 0x16, 0xE8, 0xD9, 0x40, 0xAF, 0x0A, 0xD3}, ct)
}
