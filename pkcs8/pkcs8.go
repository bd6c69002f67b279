// Package pkcs8 decodes PKCS#8 "EncryptedPrivateKeyInfo" envelopes
// (RFC 5958 / RFC 8018's PBES2), grounded on
// other_examples/c74c5ae8_sjanc-mynewt-artifact/sec-pkcs.go.go — which
// parses the same ASN.1 shape and OID table with encoding/asn1 and
// crypto/x509. This module owns its own wire codec (spec.md §1), so the
// structure below is walked with der's flexi-decoder instead.
package pkcs8

import (
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"hash"

	"gitlab.com/yawning/tomkit.git"
	"gitlab.com/yawning/tomkit.git/der"
	"gitlab.com/yawning/tomkit.git/modes"
	"gitlab.com/yawning/tomkit.git/registry"
	"gitlab.com/yawning/tomkit.git/util"
)

var (
	oidPbes2          = []int{1, 2, 840, 113549, 1, 5, 13}
	oidPbkdf2         = []int{1, 2, 840, 113549, 1, 5, 12}
	oidHmacWithSha1   = []int{1, 2, 840, 113549, 2, 7}
	oidHmacWithSha224 = []int{1, 2, 840, 113549, 2, 8}
	oidHmacWithSha256 = []int{1, 2, 840, 113549, 2, 9}
	oidHmacWithSha384 = []int{1, 2, 840, 113549, 2, 10}
	oidHmacWithSha512 = []int{1, 2, 840, 113549, 2, 11}
	oidAes128CBC      = []int{2, 16, 840, 1, 101, 3, 4, 1, 2}
	oidAes192CBC      = []int{2, 16, 840, 1, 101, 3, 4, 1, 22}
	oidAes256CBC      = []int{2, 16, 840, 1, 101, 3, 4, 1, 42}
)

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

var pbes2HashTable = []struct {
	oid     []int
	newHash func() hash.Hash
}{
	{oidHmacWithSha1, sha1.New},
	{oidHmacWithSha224, sha256.New224},
	{oidHmacWithSha256, sha256.New},
	{oidHmacWithSha384, sha512.New384},
	{oidHmacWithSha512, sha512.New},
}

var pbes2CipherTable = []struct {
	oid        []int
	cipherName string
	keyLen     int
}{
	{oidAes128CBC, "aes", 16},
	{oidAes192CBC, "aes", 24},
	{oidAes256CBC, "aes", 32},
}

// DecryptEncryptedPrivateKeyInfo parses and decrypts a PKCS#8
// EncryptedPrivateKeyInfo DER blob:
//
//	EncryptedPrivateKeyInfo ::= SEQUENCE {
//	    encryptionAlgorithm  AlgorithmIdentifier,
//	    encryptedData        OCTET STRING }
//
// Only PBES2/PBKDF2 envelopes (the only kind OpenSSL's `genpkey
// -aes-256-cbc` and friends produce) are supported; anything else
// returns ErrUnknownPEM. The result is the inner PrivateKeyInfo DER,
// still to be parsed by spki/pkcs1/ecc callers per key type.
func DecryptEncryptedPrivateKeyInfo(blob, password []byte) ([]byte, error) {
	top, rest, err := der.Decode(blob)
	if err != nil {
		return nil, err
	}
	if !top.Constructed || len(rest) != 0 || len(top.Children) != 2 {
		return nil, tomkit.ErrPKASN1
	}
	algID := top.Children[0]
	if top.Children[1].TagNumber != der.TagOctetString {
		return nil, tomkit.ErrPKASN1
	}
	encrypted := top.Children[1].Content

	if !algID.Constructed || len(algID.Children) < 2 {
		return nil, tomkit.ErrPKASN1
	}
	algOID, _, err := der.DecodeObjectIdentifier(encodeNode(algID.Children[0]))
	if err != nil {
		return nil, err
	}
	if !oidEqual(algOID, oidPbes2) {
		return nil, tomkit.ErrUnknownPEM
	}

	pbes2Params := algID.Children[1]
	if !pbes2Params.Constructed || len(pbes2Params.Children) != 2 {
		return nil, tomkit.ErrPKASN1
	}
	kdfAlgID := pbes2Params.Children[0]
	encSchemeAlgID := pbes2Params.Children[1]

	plainKey, err := decryptPBES2(kdfAlgID, encSchemeAlgID, encrypted, password)
	if err != nil {
		return nil, err
	}
	return plainKey, nil
}

func encodeNode(n *der.Node) []byte {
	return der.Raw(n.RawTag, n.Content)
}

func decryptPBES2(kdfAlgID, encSchemeAlgID *der.Node, encrypted, password []byte) ([]byte, error) {
	kdfOID, _, err := der.DecodeObjectIdentifier(encodeNode(kdfAlgID.Children[0]))
	if err != nil {
		return nil, err
	}
	if !oidEqual(kdfOID, oidPbkdf2) {
		return nil, tomkit.ErrUnknownPEM
	}

	kdfParams := kdfAlgID.Children[1]
	if !kdfParams.Constructed || len(kdfParams.Children) < 2 {
		return nil, tomkit.ErrPKASN1
	}
	salt, _, err := der.DecodeOctetString(encodeNode(kdfParams.Children[0]))
	if err != nil {
		return nil, err
	}
	iterCount, _, err := der.DecodeInteger(encodeNode(kdfParams.Children[1]))
	if err != nil {
		return nil, err
	}

	newHash := sha1.New // RFC 8018 default PRF when HMAC algorithm is omitted
	if len(kdfParams.Children) >= 3 {
		hashAlgID := kdfParams.Children[2]
		if hashAlgID.Constructed && len(hashAlgID.Children) >= 1 {
			hashOID, _, err := der.DecodeObjectIdentifier(encodeNode(hashAlgID.Children[0]))
			if err != nil {
				return nil, err
			}
			found := false
			for _, e := range pbes2HashTable {
				if oidEqual(e.oid, hashOID) {
					newHash = e.newHash
					found = true
					break
				}
			}
			if !found {
				return nil, tomkit.ErrUnknownPEM
			}
		}
	}

	encOID, _, err := der.DecodeObjectIdentifier(encodeNode(encSchemeAlgID.Children[0]))
	if err != nil {
		return nil, err
	}
	var cipherName string
	var keyLen int
	found := false
	for _, e := range pbes2CipherTable {
		if oidEqual(e.oid, encOID) {
			cipherName, keyLen, found = e.cipherName, e.keyLen, true
			break
		}
	}
	if !found {
		return nil, tomkit.ErrUnknownPEM
	}
	iv, _, err := der.DecodeOctetString(encodeNode(encSchemeAlgID.Children[1]))
	if err != nil {
		return nil, err
	}

	key := util.PBKDF2(password, salt, int(iterCount.Int64()), keyLen, newHash)
	defer util.Zeromem(key)

	desc, _ := registry.Ciphers.FindByName(cipherName)
	if desc == nil {
		return nil, tomkit.ErrUnknownPEM
	}
	sched, err := desc.Setup(key, 0)
	if err != nil {
		return nil, err
	}

	if len(encrypted) == 0 || len(encrypted)%sched.BlockSize() != 0 {
		return nil, tomkit.ErrInvalidPacket
	}
	cbc, err := modes.CBCStart(sched, iv)
	if err != nil {
		return nil, err
	}
	defer cbc.Done()

	plain := make([]byte, len(encrypted))
	if err := cbc.Decrypt(encrypted, plain); err != nil {
		util.Zeromem(plain)
		return nil, err
	}
	return unpadPKCS7(plain, sched.BlockSize())
}

// unpadPKCS7 strips PKCS#7 padding, mirroring
// sec-pkcs.go.go's checkPkcs7Padding.
func unpadPKCS7(b []byte, blockSize int) ([]byte, error) {
	if len(b) == 0 || len(b)%blockSize != 0 {
		return nil, tomkit.ErrInvalidPacket
	}
	pad := int(b[len(b)-1])
	if pad == 0 || pad > blockSize || pad > len(b) {
		return nil, tomkit.ErrInvalidPacket
	}
	for _, c := range b[len(b)-pad:] {
		if int(c) != pad {
			return nil, tomkit.ErrInvalidPacket
		}
	}
	return b[:len(b)-pad], nil
}
