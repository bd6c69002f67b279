package omac

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

// aesSchedule adapts crypto/aes to registry.Schedule for self-contained
// testing, the same pattern modes_test.go uses.
type aesSchedule struct{ cipher.Block }

func (aesSchedule) Done() {}

func mustKey(s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		panic(err)
	}
	return b
}

// NIST SP 800-38B AES-128 CMAC test vectors.
func TestNISTVectors(t *testing.T) {
	key := mustKey("2b7e151628aed2a6abf7158809cf4f3c")
	blk, err := aes.NewCipher(key)
	require.NoError(t, err)

	cases := []struct {
		msg  string
		want string
	}{
		{"", "bb1d6929e95937287fa37d129b756746"},
		{"6bc1bee22e409f96e93d7e117393172a", "070a16b46b4d4144f79bdd9dd04a287c"},
		{
			"6bc1bee22e409f96e93d7e117393172aae2d8a571e03ac9c9eb76fac45af8e51" +
				"30c81c46a35ce411",
			"dfa66747de9ae63030ca32611497c827",
		},
		{
			"6bc1bee22e409f96e93d7e117393172aae2d8a571e03ac9c9eb76fac45af8e51" +
				"30c81c46a35ce411e5fbc1191a0a52ef" +
				"f69f2445df4f9b17ad2b417be66c3710",
			"51f0bebf7e3b9d92fc49741779363cfe",
		},
	}

	for _, c := range cases {
		msg := mustKey(c.msg)
		want := mustKey(c.want)
		got := OMAC(aesSchedule{blk}, msg)
		require.Equal(t, want, got)
	}
}
