package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/alecthomas/kong"

	"github.com/enquo-project/enquo-core-go"
)

type encryptCmd struct {
	keyFlags

	Type    string `help:"One of bool, i64, date, text." enum:"bool,i64,date,text" required:""`
	Value   string `arg:"" help:"The value to encrypt."`
	Context string `help:"The binding context, as raw bytes."`

	Unsafe            bool `help:"Emit the unsafe-mode index tokens."`
	NoQuery           bool `help:"Emit no index tokens."`
	OrderPrefixLength *int `help:"Emit an ordering index over this many bytes of a Text value's sort key."`
}

func (cmd *encryptCmd) Run(_ *kong.Context) error {
	field, err := cmd.field()
	if err != nil {
		return err
	}

	mode, err := enquo.NewMode(cmd.Unsafe, cmd.NoQuery, cmd.OrderPrefixLength)
	if err != nil {
		return err
	}

	context := []byte(cmd.Context)

	var ciphertext []byte

	switch cmd.Type {
	case "bool":
		v, err := strconv.ParseBool(cmd.Value)
		if err != nil {
			return err
		}

		ciphertext, err = field.EncryptBool(v, context, mode)
		if err != nil {
			return err
		}
	case "i64":
		v, err := strconv.ParseInt(cmd.Value, 10, 64)
		if err != nil {
			return err
		}

		ciphertext, err = field.EncryptI64(v, context, mode)
		if err != nil {
			return err
		}
	case "date":
		year, month, day, err := parseDate(cmd.Value)
		if err != nil {
			return err
		}

		ciphertext, err = field.EncryptDate(year, month, day, context, mode)
		if err != nil {
			return err
		}
	case "text":
		ciphertext, err = field.EncryptText(cmd.Value, context, mode)
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown type %q", cmd.Type)
	}

	fmt.Fprintf(os.Stderr, "field key ID: %s\n", field.KeyID())
	fmt.Println(encodeCiphertext(ciphertext))

	return nil
}

func parseDate(s string) (year int16, month, day uint8, err error) {
	var y, m, d int

	if _, err := fmt.Sscanf(s, "%d-%d-%d", &y, &m, &d); err != nil {
		return 0, 0, 0, fmt.Errorf("date must be YYYY-MM-DD: %w", err)
	}

	return int16(y), uint8(m), uint8(d), nil
}
