package des3

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSelfTest(t *testing.T) {
	require.NoError(t, selfTest())
}

func TestKeySizeRejectsShortKeys(t *testing.T) {
	_, err := keySize(8)
	require.Error(t, err)
}
