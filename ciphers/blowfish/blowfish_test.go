package blowfish

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSelfTest(t *testing.T) {
	require.NoError(t, selfTest())
}

func TestKeySizeClampsAt56(t *testing.T) {
	n, err := keySize(100)
	require.NoError(t, err)
	require.Equal(t, 56, n)
}
