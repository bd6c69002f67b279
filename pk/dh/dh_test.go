package dh

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSharedSecretAgrees(t *testing.T) {
	group, err := GenerateSafePrimeGroup(rand.Reader, 256)
	require.NoError(t, err)

	alice, err := GenerateKey(rand.Reader, group)
	require.NoError(t, err)
	bob, err := GenerateKey(rand.Reader, group)
	require.NoError(t, err)

	aliceSecret, err := SharedSecret(alice, bob.Y)
	require.NoError(t, err)
	bobSecret, err := SharedSecret(bob, alice.Y)
	require.NoError(t, err)

	require.Equal(t, 0, aliceSecret.Cmp(bobSecret))
}
