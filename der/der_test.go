package der

import (
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestIntegerRoundTrip exercises spec.md §8 scenario 6: negative, zero,
// and 257-byte values encode and decode identically.
func TestIntegerRoundTrip(t *testing.T) {
	big257 := new(big.Int).Lsh(big.NewInt(1), 257*8-1)

	cases := []*big.Int{
		big.NewInt(0),
		big.NewInt(1),
		big.NewInt(-1),
		big.NewInt(127),
		big.NewInt(128),
		big.NewInt(-128),
		big.NewInt(-129),
		big257,
		new(big.Int).Neg(big257),
	}
	for _, x := range cases {
		enc := Integer(x)
		got, rest, err := DecodeInteger(enc)
		require.NoError(t, err)
		require.Empty(t, rest)
		require.Equal(t, 0, x.Cmp(got), "value %v round trip", x)
	}
}

func TestSequenceOfIntegers(t *testing.T) {
	seq := Sequence(Integer(big.NewInt(42)), Integer(big.NewInt(-7)))

	node, rest, err := Decode(seq)
	require.NoError(t, err)
	require.Empty(t, rest)
	require.True(t, node.Constructed)
	require.Len(t, node.Children, 2)

	v1 := decodeIntegerContent(node.Children[0].Content)
	v2 := decodeIntegerContent(node.Children[1].Content)
	require.Equal(t, int64(42), v1.Int64())
	require.Equal(t, int64(-7), v2.Int64())
}

func TestOctetStringRoundTrip(t *testing.T) {
	enc := OctetString([]byte("hello der"))
	got, rest, err := DecodeOctetString(enc)
	require.NoError(t, err)
	require.Empty(t, rest)
	require.Equal(t, []byte("hello der"), got)
}

func TestBitStringRoundTrip(t *testing.T) {
	enc := BitString([]byte{0xAB, 0xC0}, 4)
	bits, unused, rest, err := DecodeBitString(enc)
	require.NoError(t, err)
	require.Empty(t, rest)
	require.Equal(t, byte(4), unused)
	require.Equal(t, []byte{0xAB, 0xC0}, bits)
}

func TestObjectIdentifierRoundTrip(t *testing.T) {
	oid := []int{1, 2, 840, 113549, 1, 1, 1} // rsaEncryption
	enc := ObjectIdentifier(oid)
	got, rest, err := DecodeObjectIdentifier(enc)
	require.NoError(t, err)
	require.Empty(t, rest)
	require.Equal(t, oid, got)
}

func TestUTCTimeRoundTrip(t *testing.T) {
	when := time.Date(2024, 3, 15, 12, 30, 0, 0, time.UTC)
	enc := UTCTime(when)
	got, rest, err := DecodeUTCTime(enc)
	require.NoError(t, err)
	require.Empty(t, rest)
	require.True(t, when.Equal(got))
}

func TestLongFormLength(t *testing.T) {
	payload := make([]byte, 300)
	for i := range payload {
		payload[i] = byte(i)
	}
	enc := OctetString(payload)
	got, rest, err := DecodeOctetString(enc)
	require.NoError(t, err)
	require.Empty(t, rest)
	require.Equal(t, payload, got)
}

func TestDecodeAllTopLevelTLVs(t *testing.T) {
	blob := append(Integer(big.NewInt(1)), Integer(big.NewInt(2))...)
	nodes, err := DecodeAll(blob)
	require.NoError(t, err)
	require.Len(t, nodes, 2)
}
