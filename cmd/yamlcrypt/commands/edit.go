package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/yamlcrypt/yamlcrypt"
)

type EditCmd struct {
	KeyFlags       `embed:""`
	TransformFlags `embed:""`

	File   string `arg:"" help:"Encrypted file to edit" type:"path"`
	Editor string `help:"Editor command override (default: config, $VISUAL, $EDITOR, vi)"`
}

func (c *EditCmd) Run(ctx *cliCtx) error {
	opts, err := c.options()
	if err != nil {
		return err
	}
	if opts.Raw {
		return fmt.Errorf("%w: --raw cannot be combined with edit", yamlcrypt.ErrUsage)
	}
	set, configEditor, err := c.keySet(ctx.Logger)
	if err != nil {
		return err
	}
	// Fail before launching the editor if re-encryption could not succeed.
	if _, err := set.EncryptionKey(); err != nil {
		return err
	}

	command := resolveEditor(c.Editor, configEditor)
	ctx.Logger.Debug("starting editor", "command", command, "file", c.File)

	return yamlcrypt.Edit(ctx.Context, c.File, set, yamlcrypt.EditOptions{
		Options: opts,
		Editor:  command,
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
	})
}

// resolveEditor picks the editor command: flag, config file, $VISUAL,
// $EDITOR, then vi. The command may carry arguments, split on spaces.
func resolveEditor(flag, configured string) []string {
	for _, candidate := range []string{flag, configured, os.Getenv("VISUAL"), os.Getenv("EDITOR")} {
		if strings.TrimSpace(candidate) != "" {
			return strings.Fields(candidate)
		}
	}
	return []string{"vi"}
}
