package bignum

// Montgomery caches a modulus for repeated modular exponentiation,
// standing in for spec.md §4.2's "Montgomery setup ... returns a
// per-modulus 'mp' constant to be reused." math/big's Int.Exp already
// performs Montgomery reduction internally for odd moduli, so Montgomery
// here is a thin cache of the modulus (and its known-odd-ness) rather than
// a hand-rolled reduction — re-deriving Montgomery arithmetic atop
// math/big would duplicate work the standard library already does
// correctly and in constant time.
type Montgomery struct {
	modulus *Int
	odd     bool
}

// NewMontgomery installs m as the modulus for subsequent ExpMod calls,
// mirroring the C library's mp_montgomery_setup.
func NewMontgomery(m *Int) *Montgomery {
	return &Montgomery{modulus: m, odd: m.Big().Bit(0) == 1}
}

// IsOdd reports whether the installed modulus supports Montgomery
// reduction (math/big requires an odd modulus for its internal fast
// path).
func (mm *Montgomery) IsOdd() bool { return mm.odd }

// ExpMod computes base^exp mod the installed modulus, reusing mm across
// calls the way a caller would reuse a single "mp" constant.
func (mm *Montgomery) ExpMod(x, base, exp *Int) (*Int, error) {
	return x.ExpMod(base, exp, mm.modulus)
}
