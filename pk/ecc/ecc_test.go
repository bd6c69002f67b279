package ecc

import (
	"crypto/rand"
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/require"

	"gitlab.com/yawning/tomkit.git/bignum"
)

func digest(msg string) []byte {
	h := sha256.Sum256([]byte(msg))
	return h[:]
}

func TestGenerateKeyIsOnCurve(t *testing.T) {
	curve := P256()
	priv, err := GenerateKey(rand.Reader, curve)
	require.NoError(t, err)
	require.True(t, curve.IsOnCurve(priv.X, priv.Y))
}

func TestSignVerifyRoundTrip(t *testing.T) {
	curve := P256()
	priv, err := GenerateKey(rand.Reader, curve)
	require.NoError(t, err)

	h := digest("hello ecc")
	sig, err := Sign(rand.Reader, priv, h)
	require.NoError(t, err)
	require.True(t, Verify(&priv.PublicKey, h, sig))
}

func TestVerifyRejectsTamperedHash(t *testing.T) {
	curve := P256()
	priv, err := GenerateKey(rand.Reader, curve)
	require.NoError(t, err)

	h := digest("hello ecc")
	sig, err := Sign(rand.Reader, priv, h)
	require.NoError(t, err)

	h2 := digest("hello ecc!")
	require.False(t, Verify(&priv.PublicKey, h2, sig))
}

func TestVerifyRejectsTamperedSignature(t *testing.T) {
	curve := P256()
	priv, err := GenerateKey(rand.Reader, curve)
	require.NoError(t, err)

	h := digest("hello ecc")
	sig, err := Sign(rand.Reader, priv, h)
	require.NoError(t, err)

	sig.S = bignum.New().Add(sig.S, bignum.FromInt64(1))
	require.False(t, Verify(&priv.PublicKey, h, sig))
}

func TestEncodeFixedRoundTrip(t *testing.T) {
	curve := P256()
	priv, err := GenerateKey(rand.Reader, curve)
	require.NoError(t, err)

	h := digest("fixed width encoding")
	sig, err := Sign(rand.Reader, priv, h)
	require.NoError(t, err)

	enc := sig.EncodeFixed(curve)
	require.Len(t, enc, 2*curve.ByteSize())

	got, err := DecodeFixed(curve, enc)
	require.NoError(t, err)
	require.Equal(t, 0, sig.R.Cmp(got.R))
	require.Equal(t, 0, sig.S.Cmp(got.S))
}

func TestScalarBaseMultMatchesAdd(t *testing.T) {
	curve := P256()
	two := bignum.FromInt64(2)
	x2, y2 := curve.ScalarBaseMult(two)

	gJac := curve.toJacobian(curve.Gx, curve.Gy)
	doubled := curve.double(gJac)
	xAdd, yAdd := curve.affine(doubled)

	require.Equal(t, 0, x2.Cmp(xAdd))
	require.Equal(t, 0, y2.Cmp(yAdd))
}

func TestShamirSumMatchesSeparateMults(t *testing.T) {
	curve := P256()
	k1 := bignum.FromInt64(12345)
	k2 := bignum.FromInt64(67890)

	priv, err := GenerateKey(rand.Reader, curve)
	require.NoError(t, err)

	x1, y1 := curve.ScalarBaseMult(k1)
	x2, y2 := curve.ScalarMult(priv.X, priv.Y, k2)
	wantX, wantY := curve.add2(x1, y1, x2, y2)

	gotX, gotY := curve.ShamirSum(curve.Gx, curve.Gy, k1, priv.X, priv.Y, k2)
	require.Equal(t, 0, wantX.Cmp(gotX))
	require.Equal(t, 0, wantY.Cmp(gotY))
}

func TestRecoverPublicKey(t *testing.T) {
	curve := P256()
	priv, err := GenerateKey(rand.Reader, curve)
	require.NoError(t, err)

	h := digest("recoverable message")
	sig, err := Sign(rand.Reader, priv, h)
	require.NoError(t, err)

	found := false
	for recid := 0; recid < 4; recid++ {
		pub, err := RecoverPublicKey(curve, h, sig, recid)
		if err != nil {
			continue
		}
		if pub.X.Cmp(priv.X) == 0 && pub.Y.Cmp(priv.Y) == 0 {
			found = true
			break
		}
	}
	require.True(t, found, "expected one recid to recover the public key")
}
