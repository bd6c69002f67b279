package chacha20prng

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAddEntropyReadyRead(t *testing.T) {
	s := &state{}
	require.NoError(t, s.AddEntropy(make([]byte, ExportSize)))
	require.NoError(t, s.Ready())

	buf := make([]byte, 32)
	n, err := s.Read(buf)
	require.NoError(t, err)
	require.Equal(t, 32, n)
}

func TestAddEntropyAfterReadyRekeys(t *testing.T) {
	s := &state{}
	require.NoError(t, s.AddEntropy(make([]byte, ExportSize)))
	require.NoError(t, s.Ready())

	before := make([]byte, 16)
	_, err := s.Read(before)
	require.NoError(t, err)

	s2 := &state{}
	require.NoError(t, s2.AddEntropy(make([]byte, ExportSize)))
	require.NoError(t, s2.Ready())
	require.NoError(t, s2.AddEntropy([]byte("more entropy")))

	after := make([]byte, 16)
	_, err = s2.Read(after)
	require.NoError(t, err)
	require.NotEqual(t, before, after)
}

func TestExportImportRoundTrip(t *testing.T) {
	s := &state{}
	require.NoError(t, s.AddEntropy(make([]byte, ExportSize)))
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
