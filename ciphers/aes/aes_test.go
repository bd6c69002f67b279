package aes

import (
	"testing"

	"github.com/stretchr/testify/require"

	"gitlab.com/yawning/tomkit.git/registry"
)

func TestSelfTest(t *testing.T) {
	require.NoError(t, selfTest())
}

func TestRegistered(t *testing.T) {
	d, i := registry.Ciphers.FindByName(Name)
	require.NotNil(t, d)
	require.GreaterOrEqual(t, i, 0)
	require.Equal(t, 16, d.BlockLen)
}

func TestKeySize(t *testing.T) {
	n, err := keySize(20)
	require.NoError(t, err)
	require.Equal(t, 16, n)

	_, err = keySize(4)
	require.Error(t, err)
}

func TestRejectsWrongRounds(t *testing.T) {
	_, err := setup(make([]byte, 16), 9)
	require.Error(t, err)
}
