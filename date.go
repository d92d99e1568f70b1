package enquo

import (
	"encoding/binary"
	"fmt"

	"github.com/enquo-project/enquo-core-go/internal/aeadcore"
	"github.com/enquo-project/enquo-core-go/internal/ore"
	"github.com/enquo-project/enquo-core-go/internal/wire"
)

const (
	oreLabelDateYear  = "date.year"
	oreLabelDateMonth = "date.month"
	oreLabelDateDay   = "date.day"
)

// yearBias flips the sign bit of a two's-complement int16 year, for the same reason i64Bias does
// for EncryptI64.
const yearBias = uint16(1) << 15

type dateBody struct {
	A sealedPayload `cbor:"a"`
	K []byte        `cbor:"k"`
	Y *oreWire      `cbor:"y,omitempty"`
	M *oreWire      `cbor:"m,omitempty"`
	D *oreWire      `cbor:"d,omitempty"`
}

var dateFields = map[string]bool{"a": true, "k": true, "y": true, "m": true, "d": true}

// EncryptDate seals a calendar date, optionally alongside range-query tokens for each of its
// three components.
//
// The core does not validate calendar correctness: month and day are accepted and round-tripped
// as whatever byte value is given, not checked against [1,12] or [1,31]. A host binding that
// wants that validation performs it before calling in.
func (f *Field) EncryptDate(year int16, month, day uint8, context []byte, mode Mode) ([]byte, error) {
	if mode.emitsOrder() {
		return nil, newError(BadArgument, "Field.EncryptDate", errOrderNotSupported)
	}

	aeadKey, err := f.subkey(labelAEAD, aeadcore.KeySize)
	if err != nil {
		return nil, err
	}

	var plaintext [4]byte
	binary.BigEndian.PutUint16(plaintext[0:2], uint16(year))
	plaintext[2] = month
	plaintext[3] = day

	nonce, ct, err := aeadcore.Seal(aeadKey, plaintext[:], context)
	if err != nil {
		return nil, newError(Internal, "Field.EncryptDate", err)
	}

	body := dateBody{A: sealedPayload{IV: nonce, CT: ct}, K: f.keyID[:]}

	if mode.emitsEquality() {
		yTok, err := f.dateComponentToken(oreLabelDateYear, yearBlocks(year))
		if err != nil {
			return nil, err
		}

		mTok, err := f.dateComponentToken(oreLabelDateMonth, []byte{month})
		if err != nil {
			return nil, err
		}

		dTok, err := f.dateComponentToken(oreLabelDateDay, []byte{day})
		if err != nil {
			return nil, err
		}

		body.Y, body.M, body.D = wireFromToken(yTok), wireFromToken(mTok), wireFromToken(dTok)
	}

	return wire.Envelope(body)
}

func (f *Field) dateComponentToken(label string, blocks []byte) (*ore.Token, error) {
	key, err := f.subkey(labelORE, 32, []byte(label))
	if err != nil {
		return nil, err
	}

	return ore.Encrypt(key, blocks, true)
}

func yearBlocks(year int16) []byte {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], uint16(year)^yearBias)

	return b[:]
}

func decodeDateBody(ciphertext []byte) (*dateBody, error) {
	raw, err := wire.Unwrap(ciphertext)
	if err != nil {
		return nil, wireError("Field.DecryptDate", err)
	}

	if _, err := wire.Fields(raw, dateFields); err != nil {
		return nil, wireError("Field.DecryptDate", err)
	}

	var body dateBody
	if err := wire.Decode(raw, &body); err != nil {
		return nil, wireError("Field.DecryptDate", err)
	}

	return &body, nil
}

// DecryptDate opens a date ciphertext produced by EncryptDate, returning its year, month, and day.
func (f *Field) DecryptDate(ciphertext, context []byte) (year int16, month, day uint8, err error) {
	body, err := decodeDateBody(ciphertext)
	if err != nil {
		return 0, 0, 0, err
	}

	aeadKey, err := f.subkey(labelAEAD, aeadcore.KeySize)
	if err != nil {
		return 0, 0, 0, err
	}

	plaintext, err := aeadcore.Open(aeadKey, body.A.IV, body.A.CT, context)
	if err != nil {
		return 0, 0, 0, newError(Decryption, "Field.DecryptDate", err)
	}

	if len(plaintext) != 4 {
		return 0, 0, 0, newError(Format, "Field.DecryptDate", fmt.Errorf("unexpected date payload length %d", len(plaintext)))
	}

	year = int16(binary.BigEndian.Uint16(plaintext[0:2]))
	month = plaintext[2]
	day = plaintext[3]

	return year, month, day, nil
}
