package enquo

import (
	"encoding/binary"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/enquo-project/enquo-core-go/internal/aeadcore"
	"github.com/enquo-project/enquo-core-go/internal/collate"
	"github.com/enquo-project/enquo-core-go/internal/keyedhash"
	"github.com/enquo-project/enquo-core-go/internal/ore"
	"github.com/enquo-project/enquo-core-go/internal/wire"
)

const (
	labelTextEquality = "text.eq"
	labelTextLength   = "text.len"
	labelTextHash     = "text.hash"
	labelTextOrder    = "text.order"
)

const maxTextLength = uint64(1)<<32 - 1

type textBody struct {
	A sealedPayload `cbor:"a"`
	K []byte        `cbor:"k"`
	E []byte        `cbor:"e,omitempty"`
	L *oreWire      `cbor:"l,omitempty"`
	H []byte        `cbor:"h,omitempty"`
	O *oreWire      `cbor:"o,omitempty"`
}

var textFields = map[string]bool{"a": true, "k": true, "e": true, "l": true, "h": true, "o": true}

// defaultCollator is used whenever a Field is asked to encrypt text in an orderable mode. EncryptText
// has no option to select a different Collator, so ordering indexes always follow the lexicographic
// sort key.
var defaultCollator = collate.Lexicographic()

// EncryptText seals a UTF-8 string, optionally alongside equality, length, and ordering tokens.
//
// The AEAD payload is the value's NFC-normalized UTF-8 bytes: two strings that differ only by
// normalization form encrypt to the same ciphertext given the same nonce inputs, and always
// decrypt back to the normalized form rather than the caller's original bytes.
func (f *Field) EncryptText(v string, context []byte, mode Mode) ([]byte, error) {
	if !utf8.ValidString(v) {
		return nil, newError(Encoding, "Field.EncryptText", fmt.Errorf("value is not valid UTF-8"))
	}

	if count := uint64(utf8.RuneCountInString(v)); count > maxTextLength {
		return nil, newError(OutOfRange, "Field.EncryptText", fmt.Errorf("text is too long to encrypt"))
	}

	normalized := norm.NFC.String(v)

	aeadKey, err := f.subkey(labelAEAD, aeadcore.KeySize)
	if err != nil {
		return nil, err
	}

	nonce, ct, err := aeadcore.Seal(aeadKey, []byte(normalized), context)
	if err != nil {
		return nil, newError(Internal, "Field.EncryptText", err)
	}

	body := textBody{A: sealedPayload{IV: nonce, CT: ct}, K: f.keyID[:]}

	if mode.emitsEquality() {
		eqKey, err := f.subkey(labelEquality, 32, []byte(labelTextEquality))
		if err != nil {
			return nil, err
		}

		body.E = keyedhash.Sum(eqKey, labelTextEquality, []byte(normalized))[:16]

		lenTok, err := f.textLengthToken(uint32(utf8.RuneCountInString(normalized)), true)
		if err != nil {
			return nil, err
		}

		body.L = wireFromToken(lenTok)
	}

	if mode.emitsHashCode() {
		hashKey, err := f.subkey(labelEquality, 32, []byte(labelTextHash))
		if err != nil {
			return nil, err
		}

		body.H = keyedhash.Sum(hashKey, labelTextHash, []byte(normalized))[:2]
	}

	if mode.emitsOrder() {
		orderKey, err := f.subkey(labelOrder, 32, []byte(labelTextOrder))
		if err != nil {
			return nil, err
		}

		sortKey := defaultCollator.SortKey(normalized)
		blocks := paddedPrefix(sortKey, mode.orderPrefixLength)

		tok, err := ore.Encrypt(orderKey, blocks, true)
		if err != nil {
			return nil, newError(Internal, "Field.EncryptText", err)
		}

		body.O = wireFromToken(tok)
	}

	return wire.Envelope(body)
}

// paddedPrefix truncates or zero-pads key to exactly n bytes.
func paddedPrefix(key []byte, n int) []byte {
	out := make([]byte, n)
	copy(out, key)

	return out
}

// DecryptText opens a text ciphertext produced by EncryptText.
func (f *Field) DecryptText(ciphertext, context []byte) (string, error) {
	body, err := decodeTextBody(ciphertext)
	if err != nil {
		return "", err
	}

	aeadKey, err := f.subkey(labelAEAD, aeadcore.KeySize)
	if err != nil {
		return "", err
	}

	plaintext, err := aeadcore.Open(aeadKey, body.A.IV, body.A.CT, context)
	if err != nil {
		return "", newError(Decryption, "Field.DecryptText", err)
	}

	return string(plaintext), nil
}

func decodeTextBody(ciphertext []byte) (*textBody, error) {
	raw, err := wire.Unwrap(ciphertext)
	if err != nil {
		return nil, wireError("Field.DecryptText", err)
	}

	if _, err := wire.Fields(raw, textFields); err != nil {
		return nil, wireError("Field.DecryptText", err)
	}

	var body textBody
	if err := wire.Decode(raw, &body); err != nil {
		return nil, wireError("Field.DecryptText", err)
	}

	return &body, nil
}

// EncryptTextLengthQuery builds a standalone length-query token for n, without sealing any
// actual text value. A caller can use the result to ask a store "is there a row whose text
// length equals/precedes/follows n" without needing a plaintext value to encrypt.
func (f *Field) EncryptTextLengthQuery(n uint32) ([]byte, error) {
	tok, err := f.textLengthToken(n, false)
	if err != nil {
		return nil, err
	}

	return wire.Marshal(wireFromToken(tok))
}

func (f *Field) textLengthToken(n uint32, withLeft bool) (*ore.Token, error) {
	key, err := f.subkey(labelLength, 32, []byte(labelTextLength))
	if err != nil {
		return nil, err
	}

	var blocks [4]byte
	binary.BigEndian.PutUint32(blocks[:], n)

	return ore.Encrypt(key, blocks[:], withLeft)
}

// CompareTextLength reveals the order of the two lengths sealed into a and b's length tokens,
// where each token came from EncryptText's "l" field or EncryptTextLengthQuery.
func CompareTextLength(a, b []byte) (int, error) {
	var wa, wb oreWire
	if err := wire.Decode(a, &wa); err != nil {
		return 0, wireError("CompareTextLength", err)
	}

	if err := wire.Decode(b, &wb); err != nil {
		return 0, wireError("CompareTextLength", err)
	}

	ta, err := tokenFromWire(&wa)
	if err != nil {
		return 0, err
	}

	tb, err := tokenFromWire(&wb)
	if err != nil {
		return 0, err
	}

	o, err := ore.Compare(ta, tb)
	if err != nil {
		return 0, newError(BadArgument, "CompareTextLength", err)
	}

	return int(o), nil
}
