package main

import (
	"fmt"
	"os"

	"github.com/enquo-project/enquo-core-go"
)

// keyFlags is embedded into every subcommand that needs a Root: it derives the root key either
// from a raw key file or from an interactively-entered passphrase plus a salt file.
type keyFlags struct {
	KeyFile  string `help:"Path to a 32-byte raw root key file." xor:"key"`
	Salt     string `help:"Path to a salt file, for passphrase-derived root keys." xor:"key"`
	Relation string `arg:"" help:"The relation (table) name the field belongs to."`
	Name     string `arg:"" help:"The field (column) name."`
}

func (k *keyFlags) root() (*enquo.Root, error) {
	var provider enquo.KeyProvider

	switch {
	case k.KeyFile != "":
		key, err := os.ReadFile(k.KeyFile)
		if err != nil {
			return nil, err
		}

		provider, err = enquo.NewStaticKeyProvider(key)
		if err != nil {
			return nil, err
		}
	case k.Salt != "":
		salt, err := os.ReadFile(k.Salt)
		if err != nil {
			return nil, err
		}

		pass, err := askPassphrase("Enter passphrase: ")
		if err != nil {
			return nil, err
		}

		provider, err = enquo.NewPassphraseKeyProvider(pass, salt, enquo.DefaultArgon2idParams())
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("one of --key-file or --salt is required")
	}

	return enquo.NewRoot(provider)
}

func (k *keyFlags) field() (*enquo.Field, error) {
	root, err := k.root()
	if err != nil {
		return nil, err
	}

	return root.Field(k.Relation, k.Name)
}
