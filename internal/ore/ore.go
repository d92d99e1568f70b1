// Package ore implements a block-wise order-revealing encryption scheme in the style of Lewi and
// Wu's comparison-revealing encryption: a plaintext is split into fixed-radix blocks, and each
// block is sealed into a "right" ciphertext (a permuted digit) and, optionally, a "left"
// ciphertext (a full comparison table against every digit in the alphabet). Comparing a
// left-bearing token against a right-bearing token reveals the order of the two plaintexts one
// block at a time, leaking nothing else about either value.
//
// No Go package implementing this construction exists in the ecosystem; this one is grounded
// directly in the scheme's published description rather than ported from any reference source.
package ore

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"errors"
)

// Radix is the alphabet size of every block in this implementation. Plaintexts are always
// decomposed into bytes (or bias-encoded byte sequences), so 256 covers every digit and keeps the
// comparison table for a "left" block to a single page of memory.
const Radix = 256

// Ordering is the result of comparing two plaintexts via their tokens.
type Ordering int8

const (
	Less    Ordering = -1
	Equal   Ordering = 0
	Greater Ordering = 1
)

// Token is a comparison-revealing ciphertext over a fixed-length sequence of blocks.
//
// Right holds one permuted digit per block and is always present. Left, when present, holds a
// full comparison table per block and lets this token be compared against any other token's
// Right side. A token with only a Right side can still be compared, but only against a token that
// carries a Left side.
type Token struct {
	Right []byte
	Left  [][Radix]int8
}

// ErrIncomparable is returned by Compare when the two tokens have different block counts, or when
// neither token carries a Left side. Tokens produced under different keys are not detected: Compare
// returns an ordering for them that says nothing about the plaintexts.
var ErrIncomparable = errors.New("ore: tokens are not comparable")

// Encrypt builds a Token over blocks (each in [0, Radix)) keyed by oreKey. When withLeft is false,
// the returned token omits its comparison table and can only ever be compared against another
// token that carries one. The datatypes always build their stored tokens with a Left side; the
// standalone text-length query token is the one built without it.
func Encrypt(oreKey []byte, blocks []byte, withLeft bool) (*Token, error) {
	right := make([]byte, len(blocks))

	var left [][Radix]int8
	if withLeft {
		left = make([][Radix]int8, len(blocks))
	}

	prefix := make([]byte, 0, len(blocks))

	for i, b := range blocks {
		perm := permutation(blockKey(oreKey, i, prefix))
		right[i] = perm[b]

		if withLeft {
			for w := 0; w < Radix; w++ {
				left[i][perm[w]] = sign(int(b) - w)
			}
		}

		prefix = append(prefix, b)
	}

	return &Token{Right: right, Left: left}, nil
}

// Compare reveals the order of the two plaintexts a and b encrypted into a and b's tokens. At
// least one of the two must carry a Left side.
func Compare(a, b *Token) (Ordering, error) {
	if len(a.Right) != len(b.Right) {
		return Equal, ErrIncomparable
	}

	switch {
	case a.Left != nil:
		return compareUsing(a.Left, b.Right)
	case b.Left != nil:
		o, err := compareUsing(b.Left, a.Right)
		if err != nil {
			return Equal, err
		}

		return -o, nil
	default:
		return Equal, ErrIncomparable
	}
}

func compareUsing(left [][Radix]int8, right []byte) (Ordering, error) {
	if len(left) != len(right) {
		return Equal, ErrIncomparable
	}

	for i, r := range right {
		if tag := left[i][r]; tag != 0 {
			return Ordering(tag), nil
		}
	}

	return Equal, nil
}

func sign(x int) int8 {
	switch {
	case x < 0:
		return -1
	case x > 0:
		return 1
	default:
		return 0
	}
}

// blockKey derives the per-block key from oreKey, the block's position, and every plaintext digit
// that precedes it. Binding the key to the prefix is what makes each block's permutation
// independent of the others: two plaintexts that share a prefix still get unrelated tables for the
// blocks that follow it.
func blockKey(oreKey []byte, index int, prefix []byte) []byte {
	mac := hmac.New(sha256.New, oreKey)
	_, _ = mac.Write([]byte{byte(index)})
	_, _ = mac.Write(prefix)

	return mac.Sum(nil)
}

// permutation deterministically generates a permutation of [0, Radix) from key via a
// Fisher-Yates shuffle driven by an HMAC-SHA256 counter-mode stream.
func permutation(key []byte) [Radix]byte {
	var p [Radix]byte
	for i := range p {
		p[i] = byte(i)
	}

	rng := prng{key: key}
	for i := Radix - 1; i > 0; i-- {
		j := rng.intn(i + 1)
		p[i], p[j] = p[j], p[i]
	}

	return p
}

// prng is a keyed, deterministic source of uniform integers built from an HMAC-SHA256
// counter-mode stream with rejection sampling to remove modulo bias.
type prng struct {
	key     []byte
	counter uint64
}

func (p *prng) intn(n int) int {
	limit := (uint32(1<<32-1) / uint32(n)) * uint32(n)

	for {
		var ctr [8]byte
		binary.BigEndian.PutUint64(ctr[:], p.counter)
		p.counter++

		mac := hmac.New(sha256.New, p.key)
		_, _ = mac.Write(ctr[:])
		sum := mac.Sum(nil)

		v := binary.BigEndian.Uint32(sum[:4])
		if v < limit {
			return int(v % uint32(n))
		}
	}
}
