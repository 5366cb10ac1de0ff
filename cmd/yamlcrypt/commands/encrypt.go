package commands

import (
	"fmt"
	"os"

	"github.com/yamlcrypt/yamlcrypt"
)

type EncryptCmd struct {
	KeyFlags       `embed:""`
	TransformFlags `embed:""`

	Files           []string `arg:"" optional:"" help:"Files to encrypt in place (app.yaml -> app.yaml-crypt); stdin to stdout when omitted" type:"path"`
	Keep            bool     `help:"Keep the plaintext original"`
	Force           bool     `help:"Overwrite an existing output file"`
	ContinueOnError bool     `help:"Keep processing remaining files after a failure"`
}

func (c *EncryptCmd) Run(ctx *cliCtx) error {
	opts, err := c.options()
	if err != nil {
		return err
	}
	set, _, err := c.keySet(ctx.Logger)
	if err != nil {
		return err
	}

	if len(c.Files) == 0 {
		_, err := yamlcrypt.Encrypt(os.Stdin, os.Stdout, set, opts)
		return err
	}

	var failed int
	for _, file := range c.Files {
		out, err := yamlcrypt.EncryptFile(file, set, yamlcrypt.FileOptions{
			Options: opts,
			Keep:    c.Keep,
			Force:   c.Force,
		})
		if err != nil {
			if !c.ContinueOnError {
				return fmt.Errorf("encrypting %q: %w", file, err)
			}
			ctx.Logger.Error("encrypting file failed", "file", file, "error", err)
			failed++
			continue
		}
		fmt.Printf("Encrypted %s\n", out)
	}
	if failed > 0 {
		return fmt.Errorf("%d file(s) failed", failed)
	}
	return nil
}
