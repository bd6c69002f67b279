package x25519

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestRFC7748Vector1 is RFC 7748 §5.2's first X25519 test vector.
func TestRFC7748Vector1(t *testing.T) {
	scalarHex := "a546e36bf0527c9d3b16154b82465edd62144c0ac1fc5a18506a2244ba449ac4"
	uHex := "e6db6867583030db3594c1a424b15f7c726624ec26b3353b10a903a6d0ab1c4c"
	wantHex := "c3da55379de9c6908e94ea4df28d084f32eccf03491c71f754b4075577a28552"

	scalarBytes, err := hex.DecodeString(scalarHex)
	require.NoError(t, err)
	uBytes, err := hex.DecodeString(uHex)
	require.NoError(t, err)
	want, err := hex.DecodeString(wantHex)
	require.NoError(t, err)

	var scalar, u [ScalarSize]byte
	copy(scalar[:], scalarBytes)
	Clamp(&scalar)
	copy(u[:], uBytes)

	got, err := SharedSecret(scalar, u)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestGenerateKeySharedSecretAgrees(t *testing.T) {
	alicePriv, alicePub, err := GenerateKey(nil)
	require.NoError(t, err)
	bobPriv, bobPub, err := GenerateKey(nil)
	require.NoError(t, err)

	aliceSecret, err := SharedSecret(alicePriv, bobPub)
	require.NoError(t, err)
	bobSecret, err := SharedSecret(bobPriv, alicePub)
	require.NoError(t, err)

	require.Equal(t, aliceSecret, bobSecret)
}
