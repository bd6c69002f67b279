package sha3

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSelfTest256(t *testing.T) {
	require.NoError(t, selfTest256())
}

func TestSelfTest512(t *testing.T) {
	require.NoError(t, selfTest512())
}
