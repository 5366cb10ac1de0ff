// Package editor implements the transactional edit workflow: decrypt a
// file to a temporary sibling, hand it to an external editor, re-encrypt
// the result, and atomically replace the original. The temporary file is
// removed on every exit path.
package editor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/google/uuid"
)

// Config wires the edit workflow to its collaborators. Decrypt and Encrypt
// are the transform engine; Command is the editor argv, with the temp file
// path appended as the final argument.
type Config struct {
	Command []string
	Decrypt func([]byte) ([]byte, error)
	Encrypt func([]byte) ([]byte, error)

	// Editor stdio. The edit step blocks until the editor exits.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Edit runs the full workflow against target. The original file is only
// ever replaced by a rename within its own directory, so a failure at any
// step leaves it byte-for-byte unchanged.
func Edit(ctx context.Context, target string, cfg Config) (err error) {
	if len(cfg.Command) == 0 {
		return fmt.Errorf("no editor command configured")
	}

	data, err := os.ReadFile(target)
	if err != nil {
		return err
	}
	info, err := os.Stat(target)
	if err != nil {
		return err
	}

	plaintext, err := cfg.Decrypt(data)
	if err != nil {
		return err
	}

	// The temp file lives in the target's directory so the final rename is
	// same-filesystem and atomic.
	dir, base := filepath.Split(target)
	tmp := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", base, uuid.NewString()))
	if err := os.WriteFile(tmp, plaintext, 0o600); err != nil {
		return err
	}
	defer func() {
		if rmErr := os.Remove(tmp); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) && err == nil {
			err = rmErr
		}
	}()

	if err := runEditor(ctx, cfg, tmp); err != nil {
		return fmt.Errorf("editor failed: %w", err)
	}

	edited, err := os.ReadFile(tmp)
	if err != nil {
		return err
	}
	ciphertext, err := cfg.Encrypt(edited)
	if err != nil {
		return err
	}

	if err := os.WriteFile(tmp, ciphertext, 0o600); err != nil {
		return err
	}
	// WriteFile's perm only applies on creation and the temp file already
	// exists, so restore the target's mode explicitly before the rename.
	if err := os.Chmod(tmp, info.Mode().Perm()); err != nil {
		return err
	}
	return os.Rename(tmp, target)
}

// runEditor invokes the external editor synchronously on path. This is the
// single suspension point in the system; there is no timeout beyond what
// the context carries.
func runEditor(ctx context.Context, cfg Config, path string) error {
	args := append(append([]string{}, cfg.Command[1:]...), path)
	cmd := exec.CommandContext(ctx, cfg.Command[0], args...)
	cmd.Stdin = cfg.Stdin
	cmd.Stdout = cfg.Stdout
	cmd.Stderr = cfg.Stderr
	return cmd.Run()
}
