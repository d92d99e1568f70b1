package enquo

import (
	"encoding/binary"
	"fmt"

	"github.com/enquo-project/enquo-core-go/internal/aeadcore"
	"github.com/enquo-project/enquo-core-go/internal/ore"
	"github.com/enquo-project/enquo-core-go/internal/wire"
)

const oreLabelI64 = "i64"

// i64Bias flips the sign bit of a two's-complement int64, which is equivalent to adding 2**63
// modulo 2**64: the resulting unsigned value sorts, byte for byte, in the same order as the
// signed value it came from.
const i64Bias = uint64(1) << 63

type i64Body struct {
	A sealedPayload `cbor:"a"`
	K []byte        `cbor:"k"`
	O *oreWire      `cbor:"o,omitempty"`
}

var i64Fields = map[string]bool{"a": true, "k": true, "o": true}

// EncryptI64 seals a 64-bit signed integer, optionally alongside a range-query token.
//
// int64's own range exactly matches the datatype's supported domain, so there is no runtime
// bounds check to perform here: a value the type system accepts is, by construction, in range.
func (f *Field) EncryptI64(v int64, context []byte, mode Mode) ([]byte, error) {
	if mode.emitsOrder() {
		return nil, newError(BadArgument, "Field.EncryptI64", errOrderNotSupported)
	}

	aeadKey, err := f.subkey(labelAEAD, aeadcore.KeySize)
	if err != nil {
		return nil, err
	}

	var plaintext [8]byte
	binary.BigEndian.PutUint64(plaintext[:], uint64(v))

	nonce, ct, err := aeadcore.Seal(aeadKey, plaintext[:], context)
	if err != nil {
		return nil, newError(Internal, "Field.EncryptI64", err)
	}

	body := i64Body{A: sealedPayload{IV: nonce, CT: ct}, K: f.keyID[:]}

	if mode.emitsEquality() {
		oreKey, err := f.subkey(labelORE, 32, []byte(oreLabelI64))
		if err != nil {
			return nil, err
		}

		var blocks [8]byte
		binary.BigEndian.PutUint64(blocks[:], uint64(v)^i64Bias)

		tok, err := ore.Encrypt(oreKey, blocks[:], true)
		if err != nil {
			return nil, newError(Internal, "Field.EncryptI64", err)
		}

		body.O = wireFromToken(tok)
	}

	return wire.Envelope(body)
}

// DecryptI64 opens an i64 ciphertext produced by EncryptI64.
func (f *Field) DecryptI64(ciphertext, context []byte) (int64, error) {
	raw, err := wire.Unwrap(ciphertext)
	if err != nil {
		return 0, wireError("Field.DecryptI64", err)
	}

	if _, err := wire.Fields(raw, i64Fields); err != nil {
		return 0, wireError("Field.DecryptI64", err)
	}

	var body i64Body
	if err := wire.Decode(raw, &body); err != nil {
		return 0, wireError("Field.DecryptI64", err)
	}

	aeadKey, err := f.subkey(labelAEAD, aeadcore.KeySize)
	if err != nil {
		return 0, err
	}

	plaintext, err := aeadcore.Open(aeadKey, body.A.IV, body.A.CT, context)
	if err != nil {
		return 0, newError(Decryption, "Field.DecryptI64", err)
	}

	if len(plaintext) != 8 {
		return 0, newError(Format, "Field.DecryptI64", fmt.Errorf("unexpected i64 payload length %d", len(plaintext)))
	}

	return int64(binary.BigEndian.Uint64(plaintext)), nil
}

// CompareI64 reveals the order of the two plaintexts sealed into a and b's range-query tokens,
// without decrypting either. Both ciphertexts must carry an "o" token (i.e. not have been
// produced under ModeNoQuery) and share the same Field's key ID.
func CompareI64(a, b []byte) (int, error) {
	ta, ka, err := i64OreToken(a)
	if err != nil {
		return 0, err
	}

	tb, kb, err := i64OreToken(b)
	if err != nil {
		return 0, err
	}

	if string(ka) != string(kb) {
		return 0, newError(BadArgument, "CompareI64", fmt.Errorf("ciphertexts were sealed under different keys"))
	}

	o, err := ore.Compare(ta, tb)
	if err != nil {
		return 0, newError(BadArgument, "CompareI64", err)
	}

	return int(o), nil
}

func i64OreToken(ciphertext []byte) (*ore.Token, []byte, error) {
	raw, err := wire.Unwrap(ciphertext)
	if err != nil {
		return nil, nil, wireError("CompareI64", err)
	}

	if _, err := wire.Fields(raw, i64Fields); err != nil {
		return nil, nil, wireError("CompareI64", err)
	}

	var body i64Body
	if err := wire.Decode(raw, &body); err != nil {
		return nil, nil, wireError("CompareI64", err)
	}

	if body.O == nil {
		return nil, nil, newError(BadArgument, "CompareI64", fmt.Errorf("ciphertext carries no range-query token"))
	}

	tok, err := tokenFromWire(body.O)
	if err != nil {
		return nil, nil, err
	}

	return tok, body.K, nil
}
