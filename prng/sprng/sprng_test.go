package sprng

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRead(t *testing.T) {
	s := state{}
	buf := make([]byte, 32)
	n, err := s.Read(buf)
	require.NoError(t, err)
	require.Equal(t, 32, n)
}

func TestSelfTest(t *testing.T) {
	require.NoError(t, selfTest())
}
