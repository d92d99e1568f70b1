// Package aeadcore wraps AES-256-GCM-SIV with the deterministic nonce derivation the enquo wire
// format relies on for reproducible ciphertexts: the same (key, plaintext, context) triple always
// produces the same bytes on the wire, which makes round-trip and cross-platform test vectors
// possible. The derived nonce is still returned by Seal and stored beside each ciphertext, since
// Open needs it and cannot recompute it without the plaintext.
package aeadcore

import (
	"errors"

	"github.com/agl/gcmsiv"

	"github.com/enquo-project/enquo-core-go/internal/kdf"
)

const (
	// KeySize is the required length, in bytes, of an AES-256-GCM-SIV key.
	KeySize = 32
	// NonceSize is the length, in bytes, of the deterministic nonce.
	NonceSize = 12
)

// ErrAuthentication is returned by Open when the ciphertext fails to authenticate: wrong key,
// wrong context, or the bytes were tampered with. The three cases are indistinguishable.
var ErrAuthentication = errors.New("aeadcore: message authentication failed")

// Seal derives a deterministic nonce from key, plaintext and context, then seals plaintext under
// that nonce with context as the AEAD's associated data. It returns the nonce alongside the
// ciphertext so callers can place both on the wire.
func Seal(key, plaintext, context []byte) (nonce, ciphertext []byte, err error) {
	if len(key) != KeySize {
		return nil, nil, errors.New("aeadcore: key must be 32 bytes")
	}

	nonce, err = deriveNonce(key, plaintext, context)
	if err != nil {
		return nil, nil, err
	}

	aead, err := gcmsiv.NewGCMSIV(key)
	if err != nil {
		return nil, nil, err
	}

	ciphertext = aead.Seal(nil, nonce, plaintext, context)

	return nonce, ciphertext, nil
}

// Open authenticates and decrypts ciphertext under key, nonce, and context.
func Open(key, nonce, ciphertext, context []byte) ([]byte, error) {
	if len(key) != KeySize {
		return nil, errors.New("aeadcore: key must be 32 bytes")
	}

	aead, err := gcmsiv.NewGCMSIV(key)
	if err != nil {
		return nil, err
	}

	plaintext, err := aead.Open(nil, nonce, ciphertext, context)
	if err != nil {
		return nil, ErrAuthentication
	}

	return plaintext, nil
}

// deriveNonce computes the first NonceSize bytes of KDF(key, "nonce" || plaintext || context).
//
// gcmsiv.GCMSIV.NonceSize reports 16, which does not match the 12-byte nonce the construction
// actually consumes internally (the remaining 4 bytes of its counter block are fixed). We always
// pass exactly NonceSize bytes rather than rely on that method.
func deriveNonce(key, plaintext, context []byte) ([]byte, error) {
	info := kdf.Label("nonce", plaintext, context)
	return kdf.Expand(key, info, NonceSize)
}
