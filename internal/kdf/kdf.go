// Package kdf implements the HKDF-SHA256 key expansion used to derive every secret in the
// enquo key hierarchy: field keys from root keys, purpose subkeys from field keys, and the
// deterministic AEAD nonce from plaintext and context.
package kdf

import (
	"crypto/sha256"
	"io"

	"golang.org/x/crypto/hkdf"
)

// Expand derives length bytes of key material from parentKey, bound to info. It is deterministic:
// the same (parentKey, info, length) always yields the same output.
func Expand(parentKey, info []byte, length int) ([]byte, error) {
	r := hkdf.New(sha256.New, parentKey, nil, info)

	out := make([]byte, length)
	if _, err := io.ReadFull(r, out); err != nil {
		return nil, err
	}

	return out, nil
}

// Label builds an HKDF info parameter from a purpose label and an optional suffix, matching the
// "label || suffix" convention used throughout the key hierarchy.
func Label(label string, suffix ...[]byte) []byte {
	info := []byte(label)
	for _, s := range suffix {
		info = append(info, s...)
	}

	return info
}
