package commands

import (
	"fmt"
	"os"

	"github.com/yamlcrypt/yamlcrypt"
	"github.com/yamlcrypt/yamlcrypt/pkg/keys"
)

type DecryptCmd struct {
	KeyFlags       `embed:""`
	TransformFlags `embed:""`

	Files           []string `arg:"" optional:"" help:"Files to decrypt in place (app.yaml-crypt -> app.yaml); stdin to stdout when omitted" type:"path"`
	Stdout          bool     `help:"Print the plaintext instead of writing a file" short:"o"`
	Keep            bool     `help:"Keep the encrypted original"`
	Force           bool     `help:"Overwrite an existing output file"`
	ContinueOnError bool     `help:"Keep processing remaining files after a failure"`
}

func (c *DecryptCmd) Run(ctx *cliCtx) error {
	opts, err := c.options()
	if err != nil {
		return err
	}
	set, _, err := c.keySet(ctx.Logger)
	if err != nil {
		return err
	}

	if len(c.Files) == 0 {
		_, err := yamlcrypt.Decrypt(os.Stdin, os.Stdout, set, opts)
		return err
	}

	var failed int
	for _, file := range c.Files {
		err := c.decryptOne(file, set, opts)
		if err != nil {
			if !c.ContinueOnError {
				return fmt.Errorf("decrypting %q: %w", file, err)
			}
			ctx.Logger.Error("decrypting file failed", "file", file, "error", err)
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d file(s) failed", failed)
	}
	return nil
}

func (c *DecryptCmd) decryptOne(file string, set *keys.Set, opts yamlcrypt.Options) error {
	if c.Stdout {
		return yamlcrypt.DecryptFileTo(os.Stdout, file, set, opts)
	}
	out, err := yamlcrypt.DecryptFile(file, set, yamlcrypt.FileOptions{
		Options: opts,
		Keep:    c.Keep,
		Force:   c.Force,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Decrypted %s\n", out)
	return nil
}
