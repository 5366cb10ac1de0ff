// Package config loads the optional yamlcrypt configuration file and
// keyring files holding named keys.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultKeyringFilename is the default name for the dotenv-style file
// holding named keys next to the documents they unlock.
const DefaultKeyringFilename = ".yamlcrypt-keyring"

// ErrConfiguration indicates a malformed key configuration: a key entry
// without material, a blank name, or a duplicate name.
var ErrConfiguration = errors.New("invalid configuration")

// KeyEntry is one named key in the configuration file.
type KeyEntry struct {
	Name string `yaml:"name"`
	Key  string `yaml:"key"`
}

// Config is the on-disk configuration: named keys plus an optional editor
// command override for the edit workflow.
type Config struct {
	Keys   []KeyEntry `yaml:"keys"`
	Editor string     `yaml:"editor"`
}

// DefaultPath returns the default config file location,
// $XDG_CONFIG_HOME/yamlcrypt/config.yaml or its ~/.config equivalent.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "yamlcrypt", "config.yaml")
}

// Load reads and validates the config file at path. A missing file is not
// an error; it yields an empty configuration.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading config %q: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: parsing %q: %v", ErrConfiguration, path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%w in %q: %v", ErrConfiguration, path, err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	seen := make(map[string]bool, len(c.Keys))
	for i, entry := range c.Keys {
		if entry.Key == "" {
			return fmt.Errorf("key entry %d has no key material", i)
		}
		if entry.Name == "" {
			return fmt.Errorf("key entry %d has no name", i)
		}
		if seen[entry.Name] {
			return fmt.Errorf("duplicate key name %q", entry.Name)
		}
		seen[entry.Name] = true
	}
	return nil
}

// NamedKeys returns the configured keys as a name to material mapping.
func (c *Config) NamedKeys() map[string]string {
	out := make(map[string]string, len(c.Keys))
	for _, entry := range c.Keys {
		out[entry.Name] = entry.Key
	}
	return out
}

// MergeKeyring parses a dotenv-style keyring file (NAME=key lines) from
// keydir and merges its entries into the named key set. A missing keyring
// file is not an error. A name that collides with a configured key is
// ErrConfiguration, not a silent shadow.
func (c *Config) MergeKeyring(logger *slog.Logger, keydir string, named map[string]string) error {
	path := filepath.Join(keydir, DefaultKeyringFilename)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading keyring %q: %w", path, err)
	}
	checkKeyringPermissions(logger, path)
	entries, err := godotenv.Parse(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("%w: parsing keyring %q: %v", ErrConfiguration, path, err)
	}
	for name, material := range entries {
		if _, exists := named[name]; exists {
			return fmt.Errorf("%w: key %q defined in both config and keyring %q", ErrConfiguration, name, path)
		}
		named[name] = material
	}
	return nil
}

// checkKeyringPermissions warns if the keyring file is readable by group or
// other on non-Windows systems.
func checkKeyringPermissions(logger *slog.Logger, path string) {
	if runtime.GOOS == "windows" {
		return
	}
	info, err := os.Stat(path)
	if err != nil {
		return
	}
	mode := info.Mode().Perm()
	if mode&0077 != 0 {
		logger.Warn("keyring file has insecure permissions",
			"path", path, "mode", fmt.Sprintf("%04o", mode), "recommended", "0600")
	}
}
