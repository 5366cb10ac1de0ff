package commands

import (
	"fmt"

	"github.com/yamlcrypt/yamlcrypt"
)

type KeygenCmd struct {
	Algorithm string `help:"Algorithm to generate a key for (${algorithms})" short:"a" default:"fernet"`
}

func (c *KeygenCmd) Run(ctx *cliCtx) error {
	ctx.Logger.Debug("generating key", "algorithm", c.Algorithm)

	key, err := yamlcrypt.GenerateKey(c.Algorithm)
	if err != nil {
		return err
	}

	// Only the key on stdout, so it can be piped straight into a key file.
	fmt.Println(key)
	return nil
}
