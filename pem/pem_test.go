package pem

import (
	"crypto/md5"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"

	_ "gitlab.com/yawning/tomkit.git/ciphers/aes"
	"gitlab.com/yawning/tomkit.git/modes"
	"gitlab.com/yawning/tomkit.git/registry"
	"gitlab.com/yawning/tomkit.git/util"
)

// buildTraditionalBlock constructs a traditional-OpenSSL encrypted PEM
// block for plaintext under password, mirroring what `openssl genrsa -aes128`
// would emit, so DecryptTraditional can be tested without a toolchain.
func buildTraditionalBlock(t *testing.T, password, plaintext []byte) *Block {
	t.Helper()

	iv := make([]byte, 16)
	for i := range iv {
		iv[i] = byte(i + 1)
	}
	salt := iv[:8]
	key, _ := util.OpenSSLKDF(md5.New, password, salt, 16, 0)

	desc, _ := registry.Ciphers.FindByName("aes")
	require.NotNil(t, desc)
	sched, err := desc.Setup(key, 0)
	require.NoError(t, err)

	padded := pkcs7Pad(plaintext, sched.BlockSize())
	cbc, err := modes.CBCStart(sched, iv)
	require.NoError(t, err)
	ct := make([]byte, len(padded))
	require.NoError(t, cbc.Encrypt(padded, ct))

	return &Block{
		Type: "RSA PRIVATE KEY",
		Headers: map[string]string{
			"Proc-Type": "4,ENCRYPTED",
			"DEK-Info":  "AES-128-CBC," + hex.EncodeToString(iv),
		},
		Bytes: ct,
	}
}

func pkcs7Pad(b []byte, blockSize int) []byte {
	pad := blockSize - len(b)%blockSize
	out := append([]byte{}, b...)
	for i := 0; i < pad; i++ {
		out = append(out, byte(pad))
	}
	return out
}

func TestIsEncryptedTraditional(t *testing.T) {
	b := buildTraditionalBlock(t, []byte("hunter2"), []byte("some DER bytes padded out"))
	require.True(t, IsEncryptedTraditional(b))
}

func TestDecryptTraditionalRoundTrip(t *testing.T) {
	plaintext := []byte("a fake RSA private key DER blob................")
	b := buildTraditionalBlock(t, []byte("hunter2"), plaintext)

	got, err := DecryptTraditional(b, []byte("hunter2"))
	require.NoError(t, err)
	require.Equal(t, plaintext, got)
}

func TestDecryptTraditionalWrongPassword(t *testing.T) {
	plaintext := []byte("a fake RSA private key DER blob................")
	b := buildTraditionalBlock(t, []byte("hunter2"), plaintext)

	_, err := DecryptTraditional(b, []byte("wrong password"))
	require.Error(t, err)
}

func TestDecryptTraditionalUnknownCipher(t *testing.T) {
	b := &Block{
		Headers: map[string]string{
			"Proc-Type": "4,ENCRYPTED",
			"DEK-Info":  "BF-CBC,0102030405060708",
		},
		Bytes: []byte("irrelevant"),
	}
	_, err := DecryptTraditional(b, []byte("x"))
	require.Error(t, err)
}
