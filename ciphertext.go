package enquo

import (
	"errors"

	"github.com/enquo-project/enquo-core-go/internal/ore"
)

var errMalformedOreToken = errors.New("ore token has the wrong radix")

// sealedPayload is the AEAD output embedded under the "a" field of every datatype body: the
// deterministic nonce and the ciphertext (which, per the AEAD interface, already carries its
// authentication tag appended to the end).
type sealedPayload struct {
	IV []byte `cbor:"iv"`
	CT []byte `cbor:"ct"`
}

// oreWire is the wire representation of an internal/ore.Token. R is always present; L is present
// only when the token carries a comparison table, i.e. when the encrypting mode permits ordering.
type oreWire struct {
	R []byte   `cbor:"r"`
	L [][]int8 `cbor:"l,omitempty"`
}

func wireFromToken(t *ore.Token) *oreWire {
	w := &oreWire{R: t.Right}

	if t.Left != nil {
		w.L = make([][]int8, len(t.Left))
		for i, row := range t.Left {
			r := make([]int8, ore.Radix)
			copy(r, row[:])
			w.L[i] = r
		}
	}

	return w
}

func tokenFromWire(w *oreWire) (*ore.Token, error) {
	t := &ore.Token{Right: w.R}

	if w.L != nil {
		t.Left = make([][ore.Radix]int8, len(w.L))
		for i, row := range w.L {
			if len(row) != ore.Radix {
				return nil, newError(Format, "tokenFromWire", errMalformedOreToken)
			}
			copy(t.Left[i][:], row)
		}
	}

	return t, nil
}
