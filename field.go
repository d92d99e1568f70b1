package enquo

import (
	"errors"
	"fmt"

	"github.com/mr-tron/base58"

	"github.com/enquo-project/enquo-core-go/internal/kdf"
)

var errNilKeyProvider = errors.New("key provider must not be nil")

const fieldKeySize = 32

// Subkey purpose labels. Each is expanded from the field key via HKDF, so a subkey leaking never
// exposes the field key or any sibling subkey.
const (
	labelFieldKeyID = "key_id"
	labelAEAD       = "aead"
	labelORE        = "ore"
	labelEquality   = "eq"
	labelLength     = "len"
	labelOrder      = "order"
)

// Field holds the key material scoped to a single (relation, name) pair. Every ciphertext
// produced by a Field's Encrypt methods carries the Field's 4-byte key ID. The Decrypt methods do
// not check that key ID; a Decrypt call against the wrong Field fails with an authentication error
// because that Field's AEAD subkey differs.
type Field struct {
	key   []byte
	keyID [4]byte
}

func newField(root *Root, relation, name []byte) (*Field, error) {
	rootKey, err := root.provider.RootKey()
	if err != nil {
		return nil, newError(InvalidKey, "Root.Field", err)
	}

	if len(rootKey) != rootKeySize {
		return nil, newError(InvalidKey, "Root.Field",
			fmt.Errorf("root key must be %d bytes, got %d", rootKeySize, len(rootKey)))
	}

	id := make([]byte, 0, len(relation)+1+len(name))
	id = append(id, relation...)
	id = append(id, 0)
	id = append(id, name...)

	fieldKey, err := kdf.Expand(rootKey, kdf.Label("field", id), fieldKeySize)
	if err != nil {
		return nil, newError(Internal, "Root.Field", err)
	}

	keyID, err := kdf.Expand(fieldKey, kdf.Label(labelFieldKeyID), 4)
	if err != nil {
		return nil, newError(Internal, "Root.Field", err)
	}

	f := &Field{key: fieldKey}
	copy(f.keyID[:], keyID)

	return f, nil
}

// KeyID returns the field's 4-byte key ID, base58-encoded for display. Every ciphertext this
// Field produces carries the same key ID, letting a store or operator tell at a glance which
// field a ciphertext belongs to without decrypting it.
func (f *Field) KeyID() string {
	return base58.Encode(f.keyID[:])
}

// KeyIDBytes returns the field's raw 4-byte key ID, as embedded in the "k" field of every
// ciphertext this Field produces.
func (f *Field) KeyIDBytes() [4]byte {
	return f.keyID
}

// subkey derives a length-byte purpose subkey from the field key.
func (f *Field) subkey(label string, length int, suffix ...[]byte) ([]byte, error) {
	key, err := kdf.Expand(f.key, kdf.Label(label, suffix...), length)
	if err != nil {
		return nil, newError(Internal, "Field.subkey", err)
	}

	return key, nil
}
