package pkcs8

import (
	"crypto/rand"
	"crypto/sha1"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	_ "gitlab.com/yawning/tomkit.git/ciphers/aes"
	"gitlab.com/yawning/tomkit.git/der"
	"gitlab.com/yawning/tomkit.git/modes"
	"gitlab.com/yawning/tomkit.git/registry"
	"gitlab.com/yawning/tomkit.git/util"
)

// buildEncryptedPrivateKeyInfo constructs a PBES2/PBKDF2/AES-256-CBC
// EncryptedPrivateKeyInfo DER blob around plainKeyDER, as OpenSSL's
// `genpkey ... -aes-256-cbc` would emit it, so DecryptEncryptedPrivateKeyInfo
// can be exercised without a toolchain or a real OpenSSL-produced fixture.
func buildEncryptedPrivateKeyInfo(t *testing.T, password, plainKeyDER []byte, iterCount int) []byte {
	t.Helper()

	salt := make([]byte, 8)
	_, err := rand.Read(salt)
	require.NoError(t, err)
	iv := make([]byte, 16)
	_, err = rand.Read(iv)
	require.NoError(t, err)

	key := util.PBKDF2(password, salt, iterCount, 32, sha1.New)
	desc, _ := registry.Ciphers.FindByName("aes")
	require.NotNil(t, desc)
	sched, err := desc.Setup(key, 0)
	require.NoError(t, err)

	padded := pkcs7Pad(plainKeyDER, sched.BlockSize())
	cbc, err := modes.CBCStart(sched, iv)
	require.NoError(t, err)
	ct := make([]byte, len(padded))
	require.NoError(t, cbc.Encrypt(padded, ct))

	kdfParams := der.Sequence(
		der.OctetString(salt),
		der.Integer(big.NewInt(int64(iterCount))),
	)
	kdfAlgID := der.Sequence(
		der.ObjectIdentifier(oidPbkdf2),
		kdfParams,
	)
	encSchemeAlgID := der.Sequence(
		der.ObjectIdentifier(oidAes256CBC),
		der.OctetString(iv),
	)
	pbes2Params := der.Sequence(kdfAlgID, encSchemeAlgID)
	outerAlgID := der.Sequence(
		der.ObjectIdentifier(oidPbes2),
		pbes2Params,
	)
	return der.Sequence(outerAlgID, der.OctetString(ct))
}

func pkcs7Pad(b []byte, blockSize int) []byte {
	pad := blockSize - len(b)%blockSize
	out := append([]byte{}, b...)
	for i := 0; i < pad; i++ {
		out = append(out, byte(pad))
	}
	return out
}

func TestDecryptEncryptedPrivateKeyInfoRoundTrip(t *testing.T) {
	plainKeyDER := []byte("pretend this is a PrivateKeyInfo DER blob......")
	blob := buildEncryptedPrivateKeyInfo(t, []byte("hunter2"), plainKeyDER, 2000)

	got, err := DecryptEncryptedPrivateKeyInfo(blob, []byte("hunter2"))
	require.NoError(t, err)
	require.Equal(t, plainKeyDER, got)
}

func TestDecryptEncryptedPrivateKeyInfoWrongPassword(t *testing.T) {
	plainKeyDER := []byte("pretend this is a PrivateKeyInfo DER blob......")
	blob := buildEncryptedPrivateKeyInfo(t, []byte("hunter2"), plainKeyDER, 2000)

	_, err := DecryptEncryptedPrivateKeyInfo(blob, []byte("wrong password"))
	require.Error(t, err)
}
