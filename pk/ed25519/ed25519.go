// Package ed25519 implements spec.md §4.5's Ed25519 operations: key
// generation and the plain/ctx/ph signing variants RFC 8032 defines.
// stdlib `crypto/ed25519` already implements the base scheme
// constant-time (no ecosystem alternative is wired elsewhere in the
// retrieval pack, so this is the justified stdlib exception DESIGN.md
// records) and, since Go 1.20, exposes the ctx/ph domain-separation
// framing spec.md §4.5 describes directly through `ed25519.Options` —
// this package is a thin, named-operation wrapper over that rather than
// a hand-rolled reimplementation of Ed25519's internal scalar/point
// arithmetic.
package ed25519

import (
	"crypto"
	"crypto/ed25519"
	"crypto/sha512"
	"io"

	"gitlab.com/yawning/tomkit.git"
)

// GenerateKey generates a new Ed25519 key pair.
func GenerateKey(rnd io.Reader) (ed25519.PublicKey, ed25519.PrivateKey, error) {
	return ed25519.GenerateKey(rnd)
}

// Sign implements plain Ed25519 (no context, no prehash): signature =
// R ∥ S over the message directly.
func Sign(priv ed25519.PrivateKey, msg []byte) []byte {
	return ed25519.Sign(priv, msg)
}

// Verify implements plain Ed25519 verification.
func Verify(pub ed25519.PublicKey, msg, sig []byte) bool {
	return ed25519.Verify(pub, msg, sig)
}

// SignCtx implements the Ed25519ctx variant: "SigEd25519 no Ed25519
// collisions" ∥ 0x00 ∥ len(ctx) ∥ ctx is prepended to the hash inputs,
// per RFC 8032 §5.1.
func SignCtx(priv ed25519.PrivateKey, msg, ctx []byte) ([]byte, error) {
	if len(ctx) > 255 {
		return nil, tomkit.ErrInvalidArg
	}
	return priv.Sign(nil, msg, &ed25519.Options{Hash: crypto.Hash(0), Context: string(ctx)})
}

// VerifyCtx verifies a SignCtx signature.
func VerifyCtx(pub ed25519.PublicKey, msg, ctx, sig []byte) bool {
	if len(ctx) > 255 {
		return false
	}
	err := ed25519.VerifyWithOptions(pub, msg, sig, &ed25519.Options{Hash: crypto.Hash(0), Context: string(ctx)})
	return err == nil
}

// SignPH implements the Ed25519ph variant: the message is first hashed
// with SHA-512 (flag=1), then the prehash is signed with the ctx/ph
// domain separator.
func SignPH(priv ed25519.PrivateKey, msg, ctx []byte) ([]byte, error) {
	if len(ctx) > 255 {
		return nil, tomkit.ErrInvalidArg
	}
	digest := sha512.Sum512(msg)
	return priv.Sign(nil, digest[:], &ed25519.Options{Hash: crypto.SHA512, Context: string(ctx)})
}

// VerifyPH verifies a SignPH signature.
func VerifyPH(pub ed25519.PublicKey, msg, ctx, sig []byte) bool {
	if len(ctx) > 255 {
		return false
	}
	digest := sha512.Sum512(msg)
	err := ed25519.VerifyWithOptions(pub, digest[:], sig, &ed25519.Options{Hash: crypto.SHA512, Context: string(ctx)})
	return err == nil
}
