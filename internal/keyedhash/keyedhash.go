// Package keyedhash provides small keyed-hash helpers used by the text datatype's hash-based
// index tokens (the equality hash, and the unsafe-mode truncated hash code). Each is an HMAC instance scoped
// by a fixed label, so a key derived for one purpose can never be replayed as another.
package keyedhash

import (
	"crypto/hmac"
	"crypto/sha256"
	"hash"
)

// New returns an HMAC-SHA256 instance keyed by key and scoped by label, so that two callers
// holding the same key but hashing for different purposes never produce colliding digests.
func New(key []byte, label string) hash.Hash {
	h := hmac.New(sha256.New, key)
	_, _ = h.Write([]byte(label))

	return h
}

// Sum hashes message under key, scoped by label, and returns the full digest.
func Sum(key []byte, label string, message []byte) []byte {
	h := New(key, label)
	_, _ = h.Write(message)

	return h.Sum(nil)
}
