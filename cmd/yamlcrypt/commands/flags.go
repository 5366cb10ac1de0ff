package commands

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/yamlcrypt/yamlcrypt"
	"github.com/yamlcrypt/yamlcrypt/pkg/config"
	"github.com/yamlcrypt/yamlcrypt/pkg/keys"
)

// KeyFlags are the key-source flags shared by every transforming command.
type KeyFlags struct {
	Key           []string `help:"Decryption key specifier (c:NAME, e:VAR, fd:N, f:PATH, or a bare path); repeatable, tried in order" short:"k"`
	EncryptionKey string   `help:"Key specifier for encryption; defaults to the sole decryption key" short:"K"`
	Keydir        string   `help:"Directory containing the '${keyring}' file" default:"." type:"path"`
	Config        string   `help:"Config file path (default: ~/.config/yamlcrypt/config.yaml)" type:"path"`
}

// keySet builds the key set for one invocation: explicit --key specifiers
// in order, or every configured key when none are given. It also returns
// the config file's editor override.
func (f *KeyFlags) keySet(logger *slog.Logger) (*keys.Set, string, error) {
	cfg, err := config.Load(f.Config)
	if err != nil {
		return nil, "", err
	}
	named := cfg.NamedKeys()
	if err := cfg.MergeKeyring(logger, f.Keydir, named); err != nil {
		return nil, "", err
	}
	logger.Debug("loaded named keys", "count", len(named))

	var set *keys.Set
	if len(f.Key) > 0 {
		set, err = keys.ResolveAll(f.Key, named)
		if err != nil {
			return nil, "", err
		}
	} else {
		// No explicit specifiers: use every configured key, config-file
		// order first, then keyring entries sorted by name so trial order
		// is deterministic.
		set = &keys.Set{}
		fromConfig := make(map[string]bool, len(cfg.Keys))
		for _, entry := range cfg.Keys {
			set.Add(keys.Key{Name: entry.Name, Material: strings.TrimSpace(entry.Key)})
			fromConfig[entry.Name] = true
		}
		var rest []string
		for name := range named {
			if !fromConfig[name] {
				rest = append(rest, name)
			}
		}
		sort.Strings(rest)
		for _, name := range rest {
			set.Add(keys.Key{Name: name, Material: strings.TrimSpace(named[name])})
		}
	}

	if f.EncryptionKey != "" {
		k, err := keys.Resolve(f.EncryptionKey, named)
		if err != nil {
			return nil, "", fmt.Errorf("resolving encryption key %q: %w", f.EncryptionKey, err)
		}
		set.SetEncryptionKey(k)
	}
	return set, cfg.Editor, nil
}

// TransformFlags are the transform options shared by encrypt and decrypt.
type TransformFlags struct {
	Algorithm string `help:"Algorithm identifier, name or name:ttl (${algorithms})" short:"a"`
	Base64    bool   `help:"Base64-wrap values before encryption / after decryption" short:"b"`
	Path      string `help:"Dotted path scoping which values are transformed" short:"p"`
	Raw       bool   `help:"Treat the whole input as one opaque value, no YAML parsing" short:"r"`
}

func (f *TransformFlags) options() (yamlcrypt.Options, error) {
	if f.Raw && f.Path != "" {
		return yamlcrypt.Options{}, fmt.Errorf("%w: --raw and --path cannot be combined", yamlcrypt.ErrUsage)
	}
	return yamlcrypt.Options{
		Algorithm: f.Algorithm,
		Base64:    f.Base64,
		Path:      f.Path,
		Raw:       f.Raw,
	}, nil
}
