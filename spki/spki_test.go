package spki

import (
	"bytes"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"gitlab.com/yawning/tomkit.git/bignum"
	"gitlab.com/yawning/tomkit.git/pk/ecc"
	"gitlab.com/yawning/tomkit.git/pk/rsa"
)

func TestRSAPublicKeyRoundTrip(t *testing.T) {
	pub := &rsa.PublicKey{
		N: bignum.FromBytes(bytes.Repeat([]byte{0xAB}, 256)),
		E: bignum.FromBytes([]byte{0x01, 0x00, 0x01}),
	}
	blob := MarshalRSAPublicKey(pub)

	got, err := UnmarshalRSAPublicKey(blob)
	require.NoError(t, err)
	require.Equal(t, 0, pub.N.Big().Cmp(got.N.Big()))
	require.Equal(t, 0, pub.E.Big().Cmp(got.E.Big()))
}

func TestECPublicKeyRoundTrip(t *testing.T) {
	curve := ecc.P256()
	priv, err := ecc.GenerateKey(rand.Reader, curve)
	require.NoError(t, err)

	blob := MarshalECPublicKey(&priv.PublicKey)
	got, err := UnmarshalECPublicKey(blob, curve)
	require.NoError(t, err)
	require.Equal(t, 0, priv.PublicKey.X.Big().Cmp(got.X.Big()))
	require.Equal(t, 0, priv.PublicKey.Y.Big().Cmp(got.Y.Big()))
}

func TestEd25519PublicKeyRoundTrip(t *testing.T) {
	pub := bytes.Repeat([]byte{0x42}, 32)
	blob := MarshalEd25519PublicKey(pub)

	got, err := UnmarshalEd25519PublicKey(blob)
	require.NoError(t, err)
	require.Equal(t, pub, got)

	_, err = UnmarshalX25519PublicKey(blob)
	require.Error(t, err)
}

func TestX25519PublicKeyRoundTrip(t *testing.T) {
	pub := bytes.Repeat([]byte{0x24}, 32)
	blob := MarshalX25519PublicKey(pub)

	got, err := UnmarshalX25519PublicKey(blob)
	require.NoError(t, err)
	require.Equal(t, pub, got)
}
