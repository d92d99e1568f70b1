package main

import (
	"fmt"

	"github.com/alecthomas/kong"
)

type decryptCmd struct {
	keyFlags

	Type       string `help:"One of bool, i64, date, text." enum:"bool,i64,date,text" required:""`
	Ciphertext string `arg:"" help:"The base64-encoded ciphertext to decrypt."`
	Context    string `help:"The binding context, as raw bytes."`
}

func (cmd *decryptCmd) Run(_ *kong.Context) error {
	field, err := cmd.field()
	if err != nil {
		return err
	}

	ciphertext, err := decodeCiphertext(cmd.Ciphertext)
	if err != nil {
		return err
	}

	context := []byte(cmd.Context)

	switch cmd.Type {
	case "bool":
		v, err := field.DecryptBool(ciphertext, context)
		if err != nil {
			return err
		}

		fmt.Println(v)
	case "i64":
		v, err := field.DecryptI64(ciphertext, context)
		if err != nil {
			return err
		}

		fmt.Println(v)
	case "date":
		year, month, day, err := field.DecryptDate(ciphertext, context)
		if err != nil {
			return err
		}

		fmt.Printf("%04d-%02d-%02d\n", year, month, day)
	case "text":
		v, err := field.DecryptText(ciphertext, context)
		if err != nil {
			return err
		}

		fmt.Println(v)
	default:
		return fmt.Errorf("unknown type %q", cmd.Type)
	}

	return nil
}
