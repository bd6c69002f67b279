package yarrow

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAddEntropyReadyRead(t *testing.T) {
	s := &state{}
	require.NoError(t, s.AddEntropy([]byte("some entropy")))
	require.NoError(t, s.Ready())

	buf1 := make([]byte, 32)
	n, err := s.Read(buf1)
	require.NoError(t, err)
	require.Equal(t, 32, n)

	buf2 := make([]byte, 32)
	_, err = s.Read(buf2)
	require.NoError(t, err)
	require.NotEqual(t, buf1, buf2, "successive reads must not repeat the keystream")
}

func TestReadBeforeReadyFails(t *testing.T) {
	s := &state{}
	_, err := s.Read(make([]byte, 8))
	require.Error(t, err)
}

func TestExportImportRoundTrip(t *testing.T) {
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

func TestSelfTest(t *testing.T) {
	require.NoError(t, selfTest())
}
