package padding

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPKCS7RoundTrip(t *testing.T) {
	data := []byte("YELLOW SUBMARINE!")
	padded, err := Pad(PKCS7, data, 16)
	require.NoError(t, err)
	require.Equal(t, 0, len(padded)%16)

	out, err := Depad(PKCS7, padded, 16)
	require.NoError(t, err)
	require.Equal(t, data, out)
}

func TestPKCS7FullBlockAddsWholeBlock(t *testing.T) {
	data := make([]byte, 16)
	padded, err := Pad(PKCS7, data, 16)
	require.NoError(t, err)
	require.Len(t, padded, 32)

	out, err := Depad(PKCS7, padded, 16)
	require.NoError(t, err)
	require.Equal(t, data, out)
}

func TestPKCS7RejectsBadPadding(t *testing.T) {
	bad := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 0}
	_, err := Depad(PKCS7, bad, 16)
	require.ErrorIs(t, err, ErrInvalidPadding)
}

func TestANSIX923RoundTrip(t *testing.T) {
	data := []byte("short")
	padded, err := Pad(ANSIX923, data, 8)
	require.NoError(t, err)
	out, err := Depad(ANSIX923, padded, 8)
	require.NoError(t, err)
	require.Equal(t, data, out)
}

func TestISO10126RoundTrip(t *testing.T) {
	data := []byte("random pad body")
	padded, err := Pad(ISO10126, data, 16)
	require.NoError(t, err)
	out, err := Depad(ISO10126, padded, 16)
	require.NoError(t, err)
	require.Equal(t, data, out)
}

func TestOneAndZeroRoundTrip(t *testing.T) {
	for _, data := range [][]byte{[]byte(""), []byte("a"), []byte("exactly16bytes!!")} {
		padded, err := Pad(OneAndZero, data, 16)
		require.NoError(t, err)
		out, err := Depad(OneAndZero, padded, 16)
		require.NoError(t, err)
		require.Equal(t, data, out)
	}
}

func TestZeroRoundTripStripsTrailingZeroBytes(t *testing.T) {
	data := []byte("abc")
	padded, err := Pad(Zero, data, 8)
	require.NoError(t, err)
	require.Len(t, padded, 8)
	out, err := Depad(Zero, padded, 8)
	require.NoError(t, err)
	require.Equal(t, data, out)
}

func TestZeroAlwaysAddsPadEvenOnExactMultiple(t *testing.T) {
	data := make([]byte, 8)
	padded, err := Pad(ZeroAlways, data, 8)
	require.NoError(t, err)
	require.Len(t, padded, 16)
}

func TestSSHRoundTrip(t *testing.T) {
	data := []byte("ssh payload")
	padded, err := Pad(SSH, data, 8)
	require.NoError(t, err)
	out, err := Depad(SSH, padded, 8)
	require.NoError(t, err)
	require.Equal(t, data, out)
}

func TestDepadRejectsNonMultipleLength(t *testing.T) {
	_, err := Depad(PKCS7, []byte{1, 2, 3}, 16)
	require.ErrorIs(t, err, ErrInvalidPadding)
}
