package rabbit

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestVectorSet6 reproduces original_source's rabbit_test.c "Test 1"
// (eSTREAM set 6, vector 3), the last vector in the verified eSTREAM test
// suite.
func TestVectorSet6(t *testing.T) {
	key := []byte{
		0x0F, 0x62, 0xB5, 0x08, 0x5B, 0xAE, 0x01, 0x54,
		0xA7, 0xFA, 0x4D, 0xA0, 0xF3, 0x46, 0x99, 0xEC,
	}
	iv := []byte{0x28, 0x8F, 0xF6, 0x5D, 0xC4, 0x2B, 0x92, 0xF9}
	want := []byte{
		0x61, 0x3C, 0xB0, 0xBA, 0x96, 0xAF, 0xF6, 0xCA,
		0xCF, 0x2A, 0x45, 0x9A, 0x10, 0x2A, 0x7F, 0x78,
		0xCA, 0x98, 0x5C, 0xF8, 0xFD, 0xD1, 0x47, 0x40,
		0x18, 0x75, 0x8E, 0x36, 0xAE, 0x99, 0x23, 0xF5,
		0x19, 0xD1, 0x3D, 0x71, 0x8D, 0xAF, 0x8D, 0x7C,
		0x0C, 0x10, 0x9B, 0x79, 0xD5, 0x74, 0x94, 0x39,
		0xB7, 0xEF, 0xA4, 0xC4, 0xC9, 0xC8, 0xD2, 0x9D,
		0xC5, 0xB3, 0x88, 0x83, 0x14, 0xA6, 0x81, 0x6F,
	}

	c, err := New(key, iv)
	require.NoError(t, err)
	pt := make([]byte, 64)
	ct := make([]byte, 64)
	c.XORKeyStream(ct, pt)
	require.Equal(t, want, ct)
}

func TestXORKeyStreamMatchesAcrossChunking(t *testing.T) {
	key := make([]byte, 16)
	iv := make([]byte, 8)
	pt := make([]byte, 100)
	for i := range pt {
		pt[i] = byte(i)
	}

	c1, err := New(key, iv)
	require.NoError(t, err)
	whole := make([]byte, 100)
	c1.XORKeyStream(whole, pt)

	c2, err := New(key, iv)
	require.NoError(t, err)
	split := make([]byte, 100)
	c2.XORKeyStream(split[:7], pt[:7])
	c2.XORKeyStream(split[7:50], pt[7:50])
	c2.XORKeyStream(split[50:], pt[50:])

	require.Equal(t, whole, split)
}
