package commands

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/yamlcrypt/yamlcrypt"
	"github.com/yamlcrypt/yamlcrypt/pkg/config"
)

type cliCtx struct {
	Logger *slog.Logger
	context.Context
}

type cli struct {
	Keygen  KeygenCmd  `cmd:"" help:"Generate a new key"`
	Encrypt EncryptCmd `cmd:"" help:"Encrypt YAML files or stdin"`
	Decrypt DecryptCmd `cmd:"" help:"Decrypt encrypted files or stdin"`
	Edit    EditCmd    `cmd:"" help:"Decrypt a file into an editor and re-encrypt it on exit"`

	Debug   bool             `help:"Enable debug logging"`
	Version kong.VersionFlag `help:"Show version"`
}

func Execute(version string) {
	var cli cli
	ctx := kong.Parse(&cli,
		kong.UsageOnError(),
		kong.Name("yamlcrypt"),
		kong.Description("yamlcrypt encrypts and decrypts scalar values inside YAML documents"),
		kong.Vars{
			"version":    version,
			"keyring":    config.DefaultKeyringFilename,
			"algorithms": strings.Join(yamlcrypt.Algorithms(), ", "),
		},
	)

	level := slog.LevelInfo
	if cli.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	err := ctx.Run(&cliCtx{Logger: logger, Context: context.Background()})
	ctx.FatalIfErrorf(err)
}
