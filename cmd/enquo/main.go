package main

import (
	"encoding/base64"
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"golang.org/x/term"
)

type cli struct {
	Encrypt encryptCmd `cmd:"" help:"Encrypt a value for a field."`
	Decrypt decryptCmd `cmd:"" help:"Decrypt a value for a field."`
}

func main() {
	var cli cli

	ctx := kong.Parse(&cli)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}

func askPassphrase(prompt string) ([]byte, error) {
	defer func() { _, _ = fmt.Fprintln(os.Stderr) }()

	_, _ = fmt.Fprint(os.Stderr, prompt)

	return term.ReadPassword(int(os.Stdin.Fd()))
}

func encodeCiphertext(b []byte) string {
	return base64.StdEncoding.EncodeToString(b)
}

func decodeCiphertext(s string) ([]byte, error) {
	return base64.StdEncoding.DecodeString(s)
}
