// Package bignum is tomkit's math backend (spec.md §4.2 Component A): the
// single installed descriptor every other package's modular arithmetic
// goes through. There is no third-party arbitrary-precision integer
// package anywhere in the retrieval pack (see DESIGN.md), so Int wraps the
// standard library's math/big — the opaque-handle contract spec.md §3
// describes maps directly onto a Go value type with its own methods,
// matching the "Bignum opaque handles" design note ("map to owned values
// of the chosen big-integer type").
package bignum

import (
	"crypto/rand"
	"errors"
	"io"
	"math/big"
)

// ErrDivideByZero is returned by modular operations when the modulus is
// zero.
var ErrDivideByZero = errors.New("bignum: division by zero")

// Int is an arbitrary-precision integer, exclusively owned by whichever
// caller created it, per spec.md §3's ownership invariant. The zero value
// is a valid representation of 0.
type Int struct {
	v big.Int
}

// New returns a new Int holding 0.
func New() *Int { return &Int{} }

// FromInt64 returns a new Int holding x.
func FromInt64(x int64) *Int {
	i := New()
	i.v.SetInt64(x)
	return i
}

// FromBytes returns a new big-endian unsigned Int.
func FromBytes(b []byte) *Int {
	i := New()
	i.v.SetBytes(b)
	return i
}

// Clone returns an independent copy of x, per spec.md §3's "copying
// requires explicit clone" invariant.
func (x *Int) Clone() *Int {
	out := New()
	out.v.Set(&x.v)
	return out
}

// Bytes returns the big-endian unsigned byte representation of x.
func (x *Int) Bytes() []byte { return x.v.Bytes() }

// FillBytes writes x as big-endian into a len(buf)-sized buffer, left
// padding with zeros, matching math/big.Int.FillBytes semantics.
func (x *Int) FillBytes(buf []byte) []byte { return x.v.FillBytes(buf) }

// BitLen returns the number of bits required to represent x.
func (x *Int) BitLen() int { return x.v.BitLen() }

// Sign returns -1, 0 or 1 depending on the sign of x.
func (x *Int) Sign() int { return x.v.Sign() }

// IsZero reports whether x == 0.
func (x *Int) IsZero() bool { return x.v.Sign() == 0 }

// Cmp compares x and y.
func (x *Int) Cmp(y *Int) int { return x.v.Cmp(&y.v) }

// Big returns the underlying *big.Int. Mutating the result mutates x;
// callers that need an independent value should Clone first.
func (x *Int) Big() *big.Int { return &x.v }

// Add sets x = a + b and returns x.
func (x *Int) Add(a, b *Int) *Int { x.v.Add(&a.v, &b.v); return x }

// Sub sets x = a - b and returns x.
func (x *Int) Sub(a, b *Int) *Int { x.v.Sub(&a.v, &b.v); return x }

// Mul sets x = a * b and returns x.
func (x *Int) Mul(a, b *Int) *Int { x.v.Mul(&a.v, &b.v); return x }

// Sqr sets x = a * a and returns x.
func (x *Int) Sqr(a *Int) *Int { x.v.Mul(&a.v, &a.v); return x }

// Div sets x = a / b (truncated) and returns x.
func (x *Int) Div(a, b *Int) (*Int, error) {
	if b.IsZero() {
		return nil, ErrDivideByZero
	}
	x.v.Div(&a.v, &b.v)
	return x, nil
}

// Mod sets x = a mod m, m > 0, result in [0, m), and returns x.
func (x *Int) Mod(a, m *Int) (*Int, error) {
	if m.IsZero() {
		return nil, ErrDivideByZero
	}
	x.v.Mod(&a.v, &m.v)
	return x, nil
}

// AddMod sets x = (a + b) mod m and returns x.
func (x *Int) AddMod(a, b, m *Int) (*Int, error) {
	var t big.Int
	t.Add(&a.v, &b.v)
	if m.IsZero() {
		return nil, ErrDivideByZero
	}
	x.v.Mod(&t, &m.v)
	return x, nil
}

// SubMod sets x = (a - b) mod m and returns x.
func (x *Int) SubMod(a, b, m *Int) (*Int, error) {
	var t big.Int
	t.Sub(&a.v, &b.v)
	if m.IsZero() {
		return nil, ErrDivideByZero
	}
	x.v.Mod(&t, &m.v)
	return x, nil
}

// MulMod sets x = (a * b) mod m and returns x.
func (x *Int) MulMod(a, b, m *Int) (*Int, error) {
	var t big.Int
	t.Mul(&a.v, &b.v)
	if m.IsZero() {
		return nil, ErrDivideByZero
	}
	x.v.Mod(&t, &m.v)
	return x, nil
}

// SqrMod sets x = (a * a) mod m and returns x.
func (x *Int) SqrMod(a, m *Int) (*Int, error) {
	return x.MulMod(a, a, m)
}

// ExpMod sets x = base^exp mod m and returns x. This is the public-key
// layer's workhorse (RSA modexp, ECC scalar field ops); math/big's
// Int.Exp already uses a constant-time Montgomery ladder for odd moduli.
func (x *Int) ExpMod(base, exp, m *Int) (*Int, error) {
	if m.IsZero() {
		return nil, ErrDivideByZero
	}
	x.v.Exp(&base.v, &exp.v, &m.v)
	return x, nil
}

// InvMod sets x = a^-1 mod m and returns x, or an error if a has no
// inverse (gcd(a, m) != 1).
func (x *Int) InvMod(a, m *Int) (*Int, error) {
	g := x.v.ModInverse(&a.v, &m.v)
	if g == nil {
		return nil, errors.New("bignum: no modular inverse exists")
	}
	return x, nil
}

// ModSqrt sets x = sqrt(a) mod p for prime p and returns (x, true) if a
// square root exists, or (nil, false) otherwise — ECC public-key recovery's
// "reconstruct a candidate R from r" step needs this to rebuild a point's
// y-coordinate from its x-coordinate.
func (x *Int) ModSqrt(a, p *Int) (*Int, bool) {
	r := x.v.ModSqrt(&a.v, &p.v)
	if r == nil {
		return nil, false
	}
	return x, true
}

// GCD sets x = gcd(a, b) and returns x.
func (x *Int) GCD(a, b *Int) *Int {
	x.v.GCD(nil, nil, &a.v, &b.v)
	return x
}

// LCM sets x = lcm(a, b) and returns x.
func (x *Int) LCM(a, b *Int) *Int {
	var g, t big.Int
	g.GCD(nil, nil, &a.v, &b.v)
	t.Div(&a.v, &g)
	x.v.Mul(&t, &b.v)
	return x
}

// Neg sets x = -a and returns x.
func (x *Int) Neg(a *Int) *Int { x.v.Neg(&a.v); return x }

// Lsh sets x = a << n and returns x.
func (x *Int) Lsh(a *Int, n uint) *Int { x.v.Lsh(&a.v, n); return x }

// Rsh sets x = a >> n and returns x.
func (x *Int) Rsh(a *Int, n uint) *Int { x.v.Rsh(&a.v, n); return x }

// Bit returns the value of the i'th bit of x.
func (x *Int) Bit(i int) uint { return x.v.Bit(i) }

// IsProbablePrime runs a Miller-Rabin/Baillie-PSW primality test
// equivalent to spec.md §3's math descriptor "primality test" operation,
// with the given number of Miller-Rabin rounds (0 selects a safe default
// via math/big).
func (x *Int) IsProbablePrime(rounds int) bool {
	return x.v.ProbablyPrime(rounds)
}

// RandomPrime returns a random probable prime of the given bit length,
// read from rnd (typically crypto/rand.Reader), for RSA/DSA key
// generation.
func RandomPrime(rnd io.Reader, bits int) (*Int, error) {
	p, err := rand.Prime(rnd, bits)
	if err != nil {
		return nil, err
	}
	return &Int{v: *p}, nil
}

// RandomInRange returns a uniformly random Int in [1, max), for ECC/DSA
// ephemeral scalar and RSA blinding-factor generation.
func RandomInRange(rnd io.Reader, max *Int) (*Int, error) {
	if max.Sign() <= 0 {
		return nil, errors.New("bignum: upper bound must be positive")
	}
	upper := new(big.Int).Sub(&max.v, big.NewInt(1))
	if upper.Sign() <= 0 {
		return nil, errors.New("bignum: range too small")
	}
	v, err := rand.Int(rnd, upper)
	if err != nil {
		return nil, err
	}
	v.Add(v, big.NewInt(1))
	return &Int{v: *v}, nil
}
