package enquo

import (
	"fmt"

	"golang.org/x/crypto/argon2"
)

// rootKeySize is the required length, in bytes, of a root key.
const rootKeySize = 32

// KeyProvider supplies the 32-byte root key a Root derives every field key from. It exists so
// that where the root key comes from — a static byte string, an environment variable, a
// passphrase, eventually an HSM or KMS — is decoupled from the derivation hierarchy itself.
//
// A KeyProvider is not a key management or rotation facility: it answers exactly one question,
// "what is the root key right now", and is called each time a Root derives a Field.
type KeyProvider interface {
	RootKey() ([]byte, error)
}

// StaticKeyProvider is a KeyProvider that always returns the same, caller-supplied root key.
type StaticKeyProvider struct {
	key []byte
}

// NewStaticKeyProvider wraps a 32-byte root key for use by a Root.
func NewStaticKeyProvider(key []byte) (*StaticKeyProvider, error) {
	if len(key) != rootKeySize {
		return nil, newError(InvalidKey, "NewStaticKeyProvider",
			fmt.Errorf("root key must be %d bytes, got %d", rootKeySize, len(key)))
	}

	return &StaticKeyProvider{key: key}, nil
}

// RootKey returns the key the provider was constructed with.
func (p *StaticKeyProvider) RootKey() ([]byte, error) {
	return p.key, nil
}

// PassphraseKeyProvider derives a root key from a passphrase and salt via Argon2id. It is a pure,
// deterministic function of its inputs: calling RootKey twice on the same provider, or
// constructing two providers with the same passphrase and salt, always yields the same root key.
// It does not store, wrap, or rotate anything; those remain a concern for whatever sits above the
// provider.
type PassphraseKeyProvider struct {
	key []byte
}

// Argon2idParams controls the cost of the Argon2id passphrase hash. The zero value is not valid;
// use DefaultArgon2idParams for a reasonable starting point.
type Argon2idParams struct {
	Time, Memory uint32
	Parallelism  uint8
}

// DefaultArgon2idParams returns parameters in line with the RFC 9106 recommendation for
// interactive use: one pass over 1GiB, four lanes.
func DefaultArgon2idParams() Argon2idParams {
	return Argon2idParams{Time: 1, Memory: 1 * 1024 * 1024, Parallelism: 4}
}

// NewPassphraseKeyProvider derives a 32-byte root key from passphrase and salt under params. The
// same three inputs always yield the same provider; salt should be unique per deployment but need
// not be secret.
func NewPassphraseKeyProvider(passphrase, salt []byte, params Argon2idParams) (*PassphraseKeyProvider, error) {
	if len(salt) == 0 {
		return nil, newError(BadArgument, "NewPassphraseKeyProvider", fmt.Errorf("salt must not be empty"))
	}

	key := argon2.IDKey(passphrase, salt, params.Time, params.Memory, params.Parallelism, rootKeySize)

	return &PassphraseKeyProvider{key: key}, nil
}

// RootKey returns the key derived at construction time.
func (p *PassphraseKeyProvider) RootKey() ([]byte, error) {
	return p.key, nil
}
