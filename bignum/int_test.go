package bignum

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestModularArithmetic(t *testing.T) {
	a := FromInt64(17)
	b := FromInt64(5)
	m := FromInt64(11)

	sum := New()
	_, err := sum.AddMod(a, b, m)
	require.NoError(t, err)
	require.Equal(t, int64(0), sum.Big().Int64()) // (17+5) mod 11 == 0

	inv := New()
	_, err = inv.InvMod(b, m)
	require.NoError(t, err)
	check := New()
	_, err = check.MulMod(b, inv, m)
	require.NoError(t, err)
	require.Equal(t, int64(1), check.Big().Int64())
}

func TestExpMod(t *testing.T) {
	base := FromInt64(4)
	exp := FromInt64(13)
	mod := FromInt64(497)

	x := New()
	_, err := x.ExpMod(base, exp, mod)
	require.NoError(t, err)
	require.Equal(t, int64(445), x.Big().Int64())
}

func TestDivideByZero(t *testing.T) {
	x := New()
	_, err := x.Mod(FromInt64(5), FromInt64(0))
	require.ErrorIs(t, err, ErrDivideByZero)
}

func TestIsProbablePrime(t *testing.T) {
	require.True(t, FromInt64(104729).IsProbablePrime(20))
	require.False(t, FromInt64(104730).IsProbablePrime(20))
}
