// Package spki builds and parses X.509 SubjectPublicKeyInfo DER records
// for the key types this module's pk/* packages implement: RSA,
// ECDSA/ECDH over the registered curves, Ed25519 and X25519. The wire
// shape (AlgorithmIdentifier + BIT STRING) is RFC 5280 §4.1.2.7's, built
// with der rather than encoding/asn1 per spec.md §1.
package spki

import (
	"strconv"
	"strings"

	"gitlab.com/yawning/tomkit.git"
	"gitlab.com/yawning/tomkit.git/bignum"
	"gitlab.com/yawning/tomkit.git/der"
	"gitlab.com/yawning/tomkit.git/pk/ecc"
	"gitlab.com/yawning/tomkit.git/pk/rsa"
)

var (
	oidRSAEncryption = []int{1, 2, 840, 113549, 1, 1, 1}
	oidECPublicKey   = []int{1, 2, 840, 10045, 2, 1}
	oidEd25519       = []int{1, 3, 101, 112}
	oidX25519        = []int{1, 3, 101, 110}
)

func parseOID(s string) []int {
	parts := strings.Split(s, ".")
	oid := make([]int, len(parts))
	for i, p := range parts {
		n, _ := strconv.Atoi(p)
		oid[i] = n
	}
	return oid
}

// MarshalRSAPublicKey encodes pub as a SubjectPublicKeyInfo.
func MarshalRSAPublicKey(pub *rsa.PublicKey) []byte {
	inner := der.Sequence(
		der.Integer(pub.N.Big()),
		der.Integer(pub.E.Big()),
	)
	algID := der.Sequence(
		der.ObjectIdentifier(oidRSAEncryption),
		der.Null(),
	)
	return der.Sequence(algID, der.BitString(inner, 0))
}

// UnmarshalRSAPublicKey parses a SubjectPublicKeyInfo carrying an RSA key.
func UnmarshalRSAPublicKey(blob []byte) (*rsa.PublicKey, error) {
	algOID, inner, err := unwrapSPKI(blob)
	if err != nil {
		return nil, err
	}
	if !oidEqual(algOID, oidRSAEncryption) {
		return nil, tomkit.ErrPKTypeMismatch
	}
	node, rest, err := der.Decode(inner)
	if err != nil {
		return nil, err
	}
	if !node.Constructed || len(rest) != 0 || len(node.Children) != 2 {
		return nil, tomkit.ErrPKASN1
	}
	n, _, err := der.DecodeInteger(rawTLV(node.Children[0]))
	if err != nil {
		return nil, err
	}
	e, _, err := der.DecodeInteger(rawTLV(node.Children[1]))
	if err != nil {
		return nil, err
	}
	return &rsa.PublicKey{N: bignum.FromBytes(n.Bytes()), E: bignum.FromBytes(e.Bytes())}, nil
}

// MarshalECPublicKey encodes pub as a SubjectPublicKeyInfo, with the
// uncompressed point (0x04 || X || Y) as the BIT STRING payload, per
// SEC1 §2.3.3.
func MarshalECPublicKey(pub *ecc.PublicKey) []byte {
	size := pub.Curve.ByteSize()
	point := make([]byte, 1+2*size)
	point[0] = 0x04
	pub.X.FillBytes(point[1 : 1+size])
	pub.Y.FillBytes(point[1+size:])

	algID := der.Sequence(
		der.ObjectIdentifier(oidECPublicKey),
		der.ObjectIdentifier(parseOID(pub.Curve.OID)),
	)
	return der.Sequence(algID, der.BitString(point, 0))
}

// UnmarshalECPublicKey parses a SubjectPublicKeyInfo carrying an
// uncompressed EC point on curve.
func UnmarshalECPublicKey(blob []byte, curve *ecc.Curve) (*ecc.PublicKey, error) {
	algOID, point, err := unwrapSPKI(blob)
	if err != nil {
		return nil, err
	}
	if !oidEqual(algOID, oidECPublicKey) {
		return nil, tomkit.ErrPKTypeMismatch
	}
	size := curve.ByteSize()
	if len(point) != 1+2*size || point[0] != 0x04 {
		return nil, tomkit.ErrPKASN1
	}
	x := bignum.FromBytes(point[1 : 1+size])
	y := bignum.FromBytes(point[1+size:])
	if !curve.IsOnCurve(x, y) {
		return nil, tomkit.ErrPKASN1
	}
	return &ecc.PublicKey{Curve: curve, X: x, Y: y}, nil
}

// MarshalEd25519PublicKey / MarshalX25519PublicKey encode a 32-byte raw
// key as a SubjectPublicKeyInfo with no AlgorithmIdentifier parameters,
// per RFC 8410 §4.
func MarshalEd25519PublicKey(pub []byte) []byte {
	return marshalCurve25519(oidEd25519, pub)
}

func MarshalX25519PublicKey(pub []byte) []byte {
	return marshalCurve25519(oidX25519, pub)
}

func marshalCurve25519(oid []int, pub []byte) []byte {
	algID := der.Sequence(der.ObjectIdentifier(oid))
	return der.Sequence(algID, der.BitString(pub, 0))
}

// UnmarshalEd25519PublicKey / UnmarshalX25519PublicKey parse the raw
// 32-byte key back out, checking the AlgorithmIdentifier OID matches.
func UnmarshalEd25519PublicKey(blob []byte) ([]byte, error) {
	return unmarshalCurve25519(blob, oidEd25519)
}

func UnmarshalX25519PublicKey(blob []byte) ([]byte, error) {
	return unmarshalCurve25519(blob, oidX25519)
}

func unmarshalCurve25519(blob []byte, want []int) ([]byte, error) {
	algOID, key, err := unwrapSPKI(blob)
	if err != nil {
		return nil, err
	}
	if !oidEqual(algOID, want) {
		return nil, tomkit.ErrPKTypeMismatch
	}
	if len(key) != 32 {
		return nil, tomkit.ErrPKASN1
	}
	return key, nil
}

// unwrapSPKI walks SEQUENCE{ SEQUENCE{ OID, params... }, BIT STRING }
// down to the algorithm OID and the BIT STRING payload bytes.
func unwrapSPKI(blob []byte) (algOID []int, payload []byte, err error) {
	top, rest, err := der.Decode(blob)
	if err != nil {
		return nil, nil, err
	}
	if !top.Constructed || len(rest) != 0 || len(top.Children) != 2 {
		return nil, nil, tomkit.ErrPKASN1
	}
	algID := top.Children[0]
	if !algID.Constructed || len(algID.Children) < 1 {
		return nil, nil, tomkit.ErrPKASN1
	}
	oid, _, err := der.DecodeObjectIdentifier(rawTLV(algID.Children[0]))
	if err != nil {
		return nil, nil, err
	}
	bitStr := top.Children[1]
	if bitStr.TagNumber != der.TagBitString {
		return nil, nil, tomkit.ErrPKASN1
	}
	bits, _, _, err := der.DecodeBitString(rawTLV(bitStr))
	if err != nil {
		return nil, nil, err
	}
	return oid, bits, nil
}

func rawTLV(n *der.Node) []byte {
	return der.Raw(n.RawTag, n.Content)
}

func oidEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
