package dsa

import (
	"crypto/rand"
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/require"

	"gitlab.com/yawning/tomkit.git/bignum"
)

func testParams(t *testing.T) *Parameters {
	t.Helper()
	params, err := GenerateParameters(rand.Reader, 256, 32)
	require.NoError(t, err)
	require.Equal(t, 256, params.P.BitLen())
	return params
}

func TestSignVerifyRoundTrip(t *testing.T) {
	params := testParams(t)
	priv, err := GenerateKey(rand.Reader, params)
	require.NoError(t, err)

	h := sha256.Sum256([]byte("dsa message"))
	sig, err := Sign(rand.Reader, priv, h[:])
	require.NoError(t, err)
	require.True(t, Verify(&priv.PublicKey, h[:], sig))
}

func TestVerifyRejectsTamperedHash(t *testing.T) {
	params := testParams(t)
	priv, err := GenerateKey(rand.Reader, params)
	require.NoError(t, err)

	h := sha256.Sum256([]byte("dsa message"))
	sig, err := Sign(rand.Reader, priv, h[:])
	require.NoError(t, err)

	h2 := sha256.Sum256([]byte("different message"))
	require.False(t, Verify(&priv.PublicKey, h2[:], sig))
}

func TestVerifyRejectsOutOfRangeSignature(t *testing.T) {
	params := testParams(t)
	priv, err := GenerateKey(rand.Reader, params)
	require.NoError(t, err)

	h := sha256.Sum256([]byte("dsa message"))
	sig, err := Sign(rand.Reader, priv, h[:])
	require.NoError(t, err)

	sig.R = bignum.New().Add(priv.Q, bignum.FromInt64(1))
	require.False(t, Verify(&priv.PublicKey, h[:], sig))
}
