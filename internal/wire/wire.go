// Package wire implements the self-describing binary envelope every ciphertext is wrapped in: a
// single-key tagged map whose key names the format version, and whose value is a version-specific
// body. The body's own keys are single ASCII letters, one per optional or required field, encoded
// in canonical (sorted) form so that re-encoding a decoded value always reproduces the same bytes.
package wire

import (
	"errors"
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// ErrFormat is returned when a ciphertext cannot be parsed at all: malformed CBOR, a body that
// isn't a map, or a body carrying a field name the target datatype doesn't recognize.
var ErrFormat = errors.New("wire: malformed ciphertext")

// ErrVersion is returned when a ciphertext's top-level key names a format version this
// implementation does not support.
var ErrVersion = errors.New("wire: unsupported ciphertext version")

var encMode = mustEncMode()

func mustEncMode() cbor.EncMode {
	opts := cbor.CanonicalEncOptions()

	m, err := opts.EncMode()
	if err != nil {
		panic(err)
	}

	return m
}

// Version is the only format version this implementation produces or accepts.
const Version = "v1"

// Envelope wraps body under the version tag and encodes it in canonical CBOR.
func Envelope(body interface{}) ([]byte, error) {
	return encMode.Marshal(map[string]interface{}{Version: body})
}

// Unwrap parses the top-level envelope and returns the raw bytes of its body, which the caller
// then decodes with the version-specific struct.
func Unwrap(data []byte) (cbor.RawMessage, error) {
	var outer map[string]cbor.RawMessage
	if err := cbor.Unmarshal(data, &outer); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}

	if len(outer) != 1 {
		return nil, ErrFormat
	}

	body, ok := outer[Version]
	if !ok {
		return nil, ErrVersion
	}

	return body, nil
}

// Fields decodes body into a raw field map and rejects any key not present in allowed.
func Fields(body cbor.RawMessage, allowed map[string]bool) (map[string]cbor.RawMessage, error) {
	var fields map[string]cbor.RawMessage
	if err := cbor.Unmarshal(body, &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}

	for k := range fields {
		if !allowed[k] {
			return nil, fmt.Errorf("%w: unrecognized field %q", ErrFormat, k)
		}
	}

	return fields, nil
}

// Decode unmarshals a raw field into v, wrapping any error as ErrFormat.
func Decode(raw cbor.RawMessage, v interface{}) error {
	if err := cbor.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("%w: %v", ErrFormat, err)
	}

	return nil
}

// Marshal encodes v in the same canonical mode used for envelopes, for building nested body
// values (sealed payloads, ORE tokens) independently of the top-level Envelope call.
func Marshal(v interface{}) ([]byte, error) {
	return encMode.Marshal(v)
}
