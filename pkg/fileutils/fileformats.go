// Package fileutils provides the naming convention for encrypted files.
package fileutils

import (
	"fmt"
	"strings"
)

// Suffix marks a file as an encrypted artifact.
type Suffix string

// Recognized encrypted-file suffixes.
const (
	// YamlCrypt is the suffix for encrypted .yaml files.
	YamlCrypt Suffix = ".yaml-crypt"
	// YmlCrypt is the suffix for encrypted .yml files.
	YmlCrypt Suffix = ".yml-crypt"
)

// ValidSuffixes returns all recognized encrypted-file suffixes.
func ValidSuffixes() []Suffix {
	return []Suffix{YamlCrypt, YmlCrypt}
}

// IsEncryptedName reports whether path carries a recognized encrypted-file
// suffix.
func IsEncryptedName(path string) bool {
	for _, s := range ValidSuffixes() {
		if strings.HasSuffix(path, string(s)) {
			return true
		}
	}
	return false
}

// EncryptedName maps a plaintext filename to its encrypted counterpart:
// "app.yaml" becomes "app.yaml-crypt", "app.yml" becomes "app.yml-crypt",
// and any other name gets ".yaml-crypt" appended.
func EncryptedName(path string) string {
	switch {
	case strings.HasSuffix(path, ".yaml"), strings.HasSuffix(path, ".yml"):
		return path + "-crypt"
	default:
		return path + string(YamlCrypt)
	}
}

// DecryptedName inverts EncryptedName. It fails if path does not carry a
// recognized encrypted-file suffix.
func DecryptedName(path string) (string, error) {
	if !IsEncryptedName(path) {
		return "", fmt.Errorf("not a recognized encrypted file: %s", path)
	}
	return strings.TrimSuffix(path, "-crypt"), nil
}
