package rc4prng

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAddEntropyReadyRead(t *testing.T) {
	s := &state{}
	require.NoError(t, s.AddEntropy([]byte("some seed material")))
	require.NoError(t, s.Ready())

	buf := make([]byte, 32)
	n, err := s.Read(buf)
	require.NoError(t, err)
	require.Equal(t, 32, n)
	require.NotEqual(t, make([]byte, 32), buf)
	s.Done()
}

func TestReadBeforeReadyFails(t *testing.T) {
	s := &state{}
	_, err := s.Read(make([]byte, 8))
	require.Error(t, err)
}

func TestExportImportReproducesStream(t *testing.T) {
	s := &state{}
	require.NoError(t, s.AddEntropy([]byte("seed")))
	require.NoError(t, s.Ready())

	exported, err := s.Export()
	require.NoError(t, err)

	s2 := &state{}
	require.NoError(t, s2.Import(exported))

	buf1 := make([]byte, 16)
	buf2 := make([]byte, 16)
	_, err = s.Read(buf1)
	require.NoError(t, err)
	_, err = s2.Read(buf2)
	require.NoError(t, err)
	require.Equal(t, buf1, buf2)
}
