package ed25519

import (
	"crypto/ed25519"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestRFC8032Vector2 is RFC 8032 §7.1 test vector 2.
func TestRFC8032Vector2(t *testing.T) {
	sk, err := hex.DecodeString("4ccd089b28ff96da9db6c346ec114e0f5b8a319f35aba624da8cf6ed4fb8a6fb" +
		"3d4017c3e843895a92b70aa74d1b7ebc9c982ccf2ec4968cc0cd55f12af4660c")
	require.NoError(t, err)
	msg, err := hex.DecodeString("72")
	require.NoError(t, err)
	wantSig, err := hex.DecodeString("92a009a9f0d4cab8720e820b5f642540" +
		"a2b27b5416503f8fb3762223ebdb69da085ac1e43e15996e458f3613d0f11d8" +
		"c387b2eaeb4302aeeb00d291612bb0c00")
	require.NoError(t, err)

	priv := ed25519.PrivateKey(sk)
	sig := Sign(priv, msg)
	require.Equal(t, wantSig, sig)
	require.True(t, Verify(priv.Public().(ed25519.PublicKey), msg, sig))
}

func TestGenerateSignVerifyRoundTrip(t *testing.T) {
	pub, priv, err := GenerateKey(nil)
	require.NoError(t, err)

	msg := []byte("ed25519 round trip")
	sig := Sign(priv, msg)
	require.True(t, Verify(pub, msg, sig))

	sig[0] ^= 0xff
	require.False(t, Verify(pub, msg, sig))
}

func TestSignCtxRoundTrip(t *testing.T) {
	pub, priv, err := GenerateKey(nil)
	require.NoError(t, err)

	msg := []byte("context-bound message")
	ctx := []byte("tomkit-test-context")

	sig, err := SignCtx(priv, msg, ctx)
	require.NoError(t, err)
	require.True(t, VerifyCtx(pub, msg, ctx, sig))
	require.False(t, VerifyCtx(pub, msg, []byte("other-context"), sig))
}

func TestSignPHRoundTrip(t *testing.T) {
	pub, priv, err := GenerateKey(nil)
	require.NoError(t, err)

	msg := []byte("prehashed message")
	ctx := []byte{}

	sig, err := SignPH(priv, msg, ctx)
	require.NoError(t, err)
	require.True(t, VerifyPH(pub, msg, ctx, sig))
	require.False(t, VerifyPH(pub, []byte("different"), ctx, sig))
}
