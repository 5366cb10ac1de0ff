// Package yamlcrypt selectively encrypts and decrypts scalar values inside
// YAML documents using self-describing authenticated tokens, so secrets can
// live inline in otherwise-plaintext configuration files.
package yamlcrypt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/yamlcrypt/yamlcrypt/pkg/algorithm"
	"github.com/yamlcrypt/yamlcrypt/pkg/editor"
	"github.com/yamlcrypt/yamlcrypt/pkg/fileutils"
	"github.com/yamlcrypt/yamlcrypt/pkg/keys"
	"github.com/yamlcrypt/yamlcrypt/pkg/tree"
)

// ErrUsage indicates a caller contract violation: an unrecognized file
// name, an output that already exists, or options that cannot be combined.
var ErrUsage = errors.New("usage error")

// Options configures a transform. Path and Raw are mutually exclusive;
// enforcing that is the CLI layer's job.
type Options struct {
	// Algorithm pins a scheme identifier ("fernet", "branca:3600", ...).
	// Empty selects the registry default for encryption and tries every
	// scheme during decryption.
	Algorithm string
	// Base64 wraps values before encryption and unwraps after decryption.
	Base64 bool
	// Path scopes the transform to a dotted location in the document.
	Path string
	// Raw treats the whole input as one opaque string, skipping YAML.
	Raw bool
}

func (o Options) treeOptions() tree.Options {
	return tree.Options{
		Algorithm: o.Algorithm,
		Base64:    o.Base64,
		Path:      tree.ParsePath(o.Path),
	}
}

// GenerateKey returns fresh key material for the identified algorithm.
func GenerateKey(id string) (string, error) {
	return algorithm.GenerateKey(id)
}

// Algorithms returns the registered algorithm names in registry order.
func Algorithms() []string {
	return algorithm.Names()
}

// Encrypt reads a document stream from in, encrypts it, and writes the
// result to out. Returns the number of bytes written.
func Encrypt(in io.Reader, out io.Writer, ks *keys.Set, opts Options) (int, error) {
	return transformStream(in, out, tree.Encrypt, ks, opts)
}

// Decrypt reads an encrypted document stream from in, decrypts it, and
// writes the result to out. Returns the number of bytes written.
func Decrypt(in io.Reader, out io.Writer, ks *keys.Set, opts Options) (int, error) {
	return transformStream(in, out, tree.Decrypt, ks, opts)
}

func transformStream(in io.Reader, out io.Writer, dir tree.Direction, ks *keys.Set, opts Options) (int, error) {
	data, err := io.ReadAll(in)
	if err != nil {
		return -1, err
	}
	transformed, err := transformData(data, dir, ks, opts)
	if err != nil {
		return -1, err
	}
	return out.Write(transformed)
}

func transformData(data []byte, dir tree.Direction, ks *keys.Set, opts Options) ([]byte, error) {
	if opts.Raw {
		return tree.TransformRaw(data, dir, ks, opts.treeOptions())
	}
	return tree.Transform(data, dir, ks, opts.treeOptions())
}

// FileOptions configures the in-place file operations.
type FileOptions struct {
	Options
	// Keep leaves the input file in place instead of removing it.
	Keep bool
	// Force overwrites an output file that already exists.
	Force bool
}

// EncryptFile encrypts path into its encrypted counterpart (app.yaml ->
// app.yaml-crypt), preserving the file's permission bits, and removes the
// plaintext original unless Keep is set. Returns the output path. The
// output is fully computed in memory and lands via an atomic rename.
func EncryptFile(path string, ks *keys.Set, o FileOptions) (string, error) {
	if fileutils.IsEncryptedName(path) {
		return "", fmt.Errorf("%w: %q is already an encrypted file", ErrUsage, path)
	}
	outPath := fileutils.EncryptedName(path)
	return transformFile(path, outPath, tree.Encrypt, ks, o)
}

// DecryptFile decrypts path into its plaintext counterpart (app.yaml-crypt
// -> app.yaml) and removes the encrypted original unless Keep is set.
// Returns the output path.
func DecryptFile(path string, ks *keys.Set, o FileOptions) (string, error) {
	outPath, err := fileutils.DecryptedName(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUsage, err)
	}
	return transformFile(path, outPath, tree.Decrypt, ks, o)
}

// DecryptFileTo decrypts path and writes the plaintext to out, leaving the
// encrypted file untouched.
func DecryptFileTo(out io.Writer, path string, ks *keys.Set, opts Options) error {
	if !fileutils.IsEncryptedName(path) {
		return fmt.Errorf("%w: %q is not a recognized encrypted file", ErrUsage, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	transformed, err := transformData(data, tree.Decrypt, ks, opts)
	if err != nil {
		return err
	}
	_, err = out.Write(transformed)
	return err
}

func transformFile(path, outPath string, dir tree.Direction, ks *keys.Set, o FileOptions) (string, error) {
	if !o.Force {
		if _, err := os.Stat(outPath); err == nil {
			return "", fmt.Errorf("%w: output file %q already exists", ErrUsage, outPath)
		}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	transformed, err := transformData(data, dir, ks, o.Options)
	if err != nil {
		return "", err
	}
	if err := writeFileAtomic(outPath, transformed, info.Mode().Perm()); err != nil {
		return "", err
	}
	if !o.Keep && outPath != path {
		if err := os.Remove(path); err != nil {
			return "", err
		}
	}
	return outPath, nil
}

// writeFileAtomic writes data to a uniquely named sibling of path and
// renames it into place, so path is never observed half-written.
func writeFileAtomic(path string, data []byte, mode os.FileMode) error {
	dir, base := filepath.Split(path)
	tmp := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", base, uuid.NewString()))
	if err := os.WriteFile(tmp, data, mode); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

// EditOptions configures the edit workflow.
type EditOptions struct {
	Options
	// Editor is the editor argv; the temp file path is appended.
	Editor []string
	// Editor stdio, typically the process's own terminal.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Edit decrypts path into a temporary sibling file, runs the external
// editor on it, re-encrypts the result with the set's encryption key, and
// atomically replaces path. A failure at any step leaves path unchanged
// and the temporary file removed.
func Edit(ctx context.Context, path string, ks *keys.Set, o EditOptions) error {
	if !fileutils.IsEncryptedName(path) {
		return fmt.Errorf("%w: %q is not a recognized encrypted file", ErrUsage, path)
	}
	return editor.Edit(ctx, path, editor.Config{
		Command: o.Editor,
		Decrypt: func(data []byte) ([]byte, error) {
			return transformData(data, tree.Decrypt, ks, o.Options)
		},
		Encrypt: func(data []byte) ([]byte, error) {
			return transformData(data, tree.Encrypt, ks, o.Options)
		},
		Stdin:  o.Stdin,
		Stdout: o.Stdout,
		Stderr: o.Stderr,
	})
}
