package rsa

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"gitlab.com/yawning/tomkit.git/bignum"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	priv, err := GenerateKey(rand.Reader, 512)
	require.NoError(t, err)

	msg := bignum.FromInt64(424242)
	ct, err := Encrypt(&priv.PublicKey, msg)
	require.NoError(t, err)

	pt, err := Decrypt(priv, ct, DecryptOptions{})
	require.NoError(t, err)
	require.Equal(t, 0, pt.Cmp(msg))
}

func TestDecryptWithBlindingRoundTrip(t *testing.T) {
	priv, err := GenerateKey(rand.Reader, 512)
	require.NoError(t, err)

	msg := bignum.FromInt64(98765)
	ct, err := Encrypt(&priv.PublicKey, msg)
	require.NoError(t, err)

	pt, err := Decrypt(priv, ct, DecryptOptions{Blind: true})
	require.NoError(t, err)
	require.Equal(t, 0, pt.Cmp(msg))
}

func TestDecryptWithCRTHardening(t *testing.T) {
	priv, err := GenerateKey(rand.Reader, 512)
	require.NoError(t, err)

	msg := bignum.FromInt64(13)
	ct, err := Encrypt(&priv.PublicKey, msg)
	require.NoError(t, err)

	pt, err := Decrypt(priv, ct, DecryptOptions{CRTHardening: true})
	require.NoError(t, err)
	require.Equal(t, 0, pt.Cmp(msg))
}

func TestNonCRTPathMatchesCRTPath(t *testing.T) {
	priv, err := GenerateKey(rand.Reader, 512)
	require.NoError(t, err)

	msg := bignum.FromInt64(555)
	ct, err := Encrypt(&priv.PublicKey, msg)
	require.NoError(t, err)

	crtResult, err := Decrypt(priv, ct, DecryptOptions{})
	require.NoError(t, err)

	nonCRT := &PrivateKey{PublicKey: priv.PublicKey, D: priv.D}
	plainResult, err := Decrypt(nonCRT, ct, DecryptOptions{})
	require.NoError(t, err)

	require.Equal(t, 0, crtResult.Cmp(plainResult))
}
