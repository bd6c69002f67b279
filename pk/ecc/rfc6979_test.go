package ecc

import (
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"

	"gitlab.com/yawning/tomkit.git/bignum"
)

func fromHex(s string) *bignum.Int {
	b, err := hex.DecodeString(s)
	if err != nil {
		panic(err)
	}
	return bignum.FromBytes(b)
}

// TestRFC6979P224SHA256Vector is RFC 6979 Appendix A.2.4's P-224/SHA-256
// "sample" vector, also used by the pack's ezthinking-rfc6979 test file.
func TestRFC6979P224SHA256Vector(t *testing.T) {
	curve := P224()
	priv := &PrivateKey{
		PublicKey: PublicKey{
			Curve: curve,
			X:     fromHex("00CF08DA5AD719E42707FA431292DEA11244D64FC51610D94B130D6C"),
			Y:     fromHex("EEAB6F3DEBE455E3DBF85416F7030CBD94F34F2D6F232C69F3C1385A"),
		},
		D: fromHex("F220266E1105BFE3083E03EC7A3A654651F45E37167E88600BF257C1"),
	}

	h := sha256.Sum256([]byte("sample"))

	sig, err := SignDeterministic(priv, h[:], sha256.New)
	require.NoError(t, err)

	wantR := fromHex("61AA3DA010E8E8406C656BC477A7A7189895E7E840CDFE8FF42307BA")
	wantS := fromHex("BC814050DAB5D23770879494F9E0A680DC1AF7161991BDE692B10101")
	require.Equal(t, 0, sig.R.Cmp(wantR), "r mismatch")
	require.Equal(t, 0, sig.S.Cmp(wantS), "s mismatch")

	require.True(t, Verify(&priv.PublicKey, h[:], sig))
}

func TestRFC6979Deterministic(t *testing.T) {
	curve := P256()
	priv, err := GenerateKey(nil, curve)
	require.NoError(t, err)

	h := sha256.Sum256([]byte("deterministic nonce test"))

	sig1, err := SignDeterministic(priv, h[:], sha256.New)
	require.NoError(t, err)
	sig2, err := SignDeterministic(priv, h[:], sha256.New)
	require.NoError(t, err)

	require.Equal(t, 0, sig1.R.Cmp(sig2.R))
	require.Equal(t, 0, sig1.S.Cmp(sig2.S))
	require.True(t, Verify(&priv.PublicKey, h[:], sig1))
}
