package enquo

import (
	"fmt"

	"github.com/enquo-project/enquo-core-go/internal/aeadcore"
	"github.com/enquo-project/enquo-core-go/internal/ore"
	"github.com/enquo-project/enquo-core-go/internal/wire"
)

const oreLabelBool = "bool"

type boolBody struct {
	A sealedPayload `cbor:"a"`
	K []byte        `cbor:"k"`
	O *oreWire      `cbor:"o,omitempty"`
}

var boolFields = map[string]bool{"a": true, "k": true, "o": true}

// EncryptBool seals a boolean value, optionally alongside an equality/ordering token.
func (f *Field) EncryptBool(v bool, context []byte, mode Mode) ([]byte, error) {
	if mode.emitsOrder() {
		return nil, newError(BadArgument, "Field.EncryptBool", errOrderNotSupported)
	}

	aeadKey, err := f.subkey(labelAEAD, aeadcore.KeySize)
	if err != nil {
		return nil, err
	}

	plaintext := []byte{0}
	if v {
		plaintext[0] = 1
	}

	nonce, ct, err := aeadcore.Seal(aeadKey, plaintext, context)
	if err != nil {
		return nil, newError(Internal, "Field.EncryptBool", err)
	}

	body := boolBody{A: sealedPayload{IV: nonce, CT: ct}, K: f.keyID[:]}

	if mode.emitsEquality() {
		oreKey, err := f.subkey(labelORE, 32, []byte(oreLabelBool))
		if err != nil {
			return nil, err
		}

		block := byte(0)
		if v {
			block = 1
		}

		tok, err := ore.Encrypt(oreKey, []byte{block}, true)
		if err != nil {
			return nil, newError(Internal, "Field.EncryptBool", err)
		}

		body.O = wireFromToken(tok)
	}

	return wire.Envelope(body)
}

// DecryptBool opens a boolean ciphertext produced by EncryptBool.
func (f *Field) DecryptBool(ciphertext, context []byte) (bool, error) {
	body, err := decodeBoolBody(ciphertext)
	if err != nil {
		return false, err
	}

	aeadKey, err := f.subkey(labelAEAD, aeadcore.KeySize)
	if err != nil {
		return false, err
	}

	plaintext, err := aeadcore.Open(aeadKey, body.A.IV, body.A.CT, context)
	if err != nil {
		return false, newError(Decryption, "Field.DecryptBool", err)
	}

	if len(plaintext) != 1 || plaintext[0] > 1 {
		return false, newError(Format, "Field.DecryptBool", fmt.Errorf("unexpected boolean payload"))
	}

	return plaintext[0] == 1, nil
}

func decodeBoolBody(ciphertext []byte) (*boolBody, error) {
	raw, err := wire.Unwrap(ciphertext)
	if err != nil {
		return nil, wireError("Field.DecryptBool", err)
	}

	if _, err := wire.Fields(raw, boolFields); err != nil {
		return nil, wireError("Field.DecryptBool", err)
	}

	var body boolBody
	if err := wire.Decode(raw, &body); err != nil {
		return nil, wireError("Field.DecryptBool", err)
	}

	return &body, nil
}
