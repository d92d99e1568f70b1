package enquo

import (
	"errors"

	"github.com/enquo-project/enquo-core-go/internal/wire"
)

var errOrderNotSupported = errors.New("ordering mode is only supported for Text")

// wireError maps a wire package sentinel to the Kind the spec promises: an unknown version and an
// unrecognized field both surface as Format, never as Decryption, so a caller can tell "this isn't
// a ciphertext I understand" apart from "this failed to authenticate".
func wireError(op string, err error) *Error {
	switch {
	case errors.Is(err, wire.ErrVersion), errors.Is(err, wire.ErrFormat):
		return newError(Format, op, err)
	default:
		return newError(Internal, op, err)
	}
}
