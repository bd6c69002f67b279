package xcbc

import (
	"crypto/aes"
	"crypto/cipher"
	"testing"

	"github.com/stretchr/testify/require"

	"gitlab.com/yawning/tomkit.git/registry"
)

type aesSchedule struct{ cipher.Block }

func (aesSchedule) Done() {}

func newAES(key []byte) (registry.Schedule, error) {
	blk, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return aesSchedule{blk}, nil
}

func TestDeterministicAndLength(t *testing.T) {
	key := make([]byte, 16)
	sched, err := newAES(key)
	require.NoError(t, err)

	msg := []byte("a moderately long message spanning blocks")
	a, err := XCBC(sched, newAES, msg)
	require.NoError(t, err)
	require.Len(t, a, 16)

	sched2, err := newAES(key)
	require.NoError(t, err)
	b, err := XCBC(sched2, newAES, msg)
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestDifferentMessagesDifferentTags(t *testing.T) {
	key := make([]byte, 16)
	sched1, _ := newAES(key)
	sched2, _ := newAES(key)

	a, err := XCBC(sched1, newAES, []byte("message one"))
	require.NoError(t, err)
	b, err := XCBC(sched2, newAES, []byte("message two!"))
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}
