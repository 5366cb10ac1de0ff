package commands

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/yamlcrypt/yamlcrypt"
)

func testCtx() *cliCtx {
	return &cliCtx{Logger: slog.New(slog.NewTextHandler(io.Discard, nil)), Context: context.Background()}
}

// writeKeyFile generates a fernet key and stores it where the key flags can
// pick it up as a bare file specifier.
func writeKeyFile(t *testing.T, dir string) string {
	t.Helper()
	key, err := yamlcrypt.GenerateKey("fernet")
	assert.NoError(t, err)
	path := filepath.Join(dir, "keyfile")
	assert.NoError(t, os.WriteFile(path, []byte(key+"\n"), 0o600))
	return path
}

func TestKeygenCmd(t *testing.T) {
	cmd := &KeygenCmd{Algorithm: "fernet"}

	out, errString := captureOutput(func() error {
		return cmd.Run(testCtx())
	})
	assert.Equal(t, errString, "")

	// Exactly the key and a newline, pipeable into a key file.
	key := strings.TrimSuffix(out, "\n")
	assert.NotContains(t, key, "\n")
	assert.NotEqual(t, "", key)
}

func TestKeygenCmdUnknownAlgorithm(t *testing.T) {
	cmd := &KeygenCmd{Algorithm: "rot13"}
	err := cmd.Run(testCtx())
	assert.Error(t, err)
}

func TestEncryptDecryptCmd(t *testing.T) {
	dir := t.TempDir()
	keyPath := writeKeyFile(t, dir)

	file := filepath.Join(dir, "app.yaml")
	assert.NoError(t, os.WriteFile(file, []byte("secret: test123\n"), 0o600))

	enc := &EncryptCmd{Files: []string{file}}
	enc.Key = []string{keyPath}
	enc.Keydir = dir

	out, errString := captureOutput(func() error {
		return enc.Run(testCtx())
	})
	assert.Equal(t, errString, "")
	assert.Contains(t, out, "Encrypted "+file+"-crypt")

	encrypted, err := os.ReadFile(file + "-crypt")
	assert.NoError(t, err)
	assert.NotContains(t, string(encrypted), "test123")

	dec := &DecryptCmd{Files: []string{file + "-crypt"}}
	dec.Key = []string{keyPath}
	dec.Keydir = dir

	out, errString = captureOutput(func() error {
		return dec.Run(testCtx())
	})
	assert.Equal(t, errString, "")
	assert.Contains(t, out, "Decrypted "+file)

	plain, err := os.ReadFile(file)
	assert.NoError(t, err)
	assert.Equal(t, "secret: test123\n", string(plain))
}

func TestEncryptCmdContinueOnError(t *testing.T) {
	dir := t.TempDir()
	keyPath := writeKeyFile(t, dir)

	good := filepath.Join(dir, "good.yaml")
	assert.NoError(t, os.WriteFile(good, []byte("a: b\n"), 0o600))
	missing := filepath.Join(dir, "missing.yaml")

	cmd := &EncryptCmd{Files: []string{missing, good}, ContinueOnError: true}
	cmd.Key = []string{keyPath}
	cmd.Keydir = dir

	err := cmd.Run(testCtx())
	assert.Error(t, err)

	// The good file was still processed.
	_, statErr := os.Stat(good + "-crypt")
	assert.NoError(t, statErr)
}

func TestTransformFlagsExclusion(t *testing.T) {
	f := &TransformFlags{Raw: true, Path: "a.b"}
	_, err := f.options()
	assert.IsError(t, err, yamlcrypt.ErrUsage)
}

func TestEditCmdRejectsRaw(t *testing.T) {
	cmd := &EditCmd{File: "app.yaml-crypt"}
	cmd.Raw = true
	err := cmd.Run(testCtx())
	assert.IsError(t, err, yamlcrypt.ErrUsage)
}

func TestResolveEditor(t *testing.T) {
	t.Setenv("VISUAL", "")
	t.Setenv("EDITOR", "")

	assert.Equal(t, []string{"code", "--wait"}, resolveEditor("code --wait", "nano"))
	assert.Equal(t, []string{"nano"}, resolveEditor("", "nano"))
	assert.Equal(t, []string{"vi"}, resolveEditor("", ""))

	t.Setenv("EDITOR", "emacs -nw")
	assert.Equal(t, []string{"emacs", "-nw"}, resolveEditor("", ""))
}

func TestKeySetFromConfig(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	assert.NoError(t, os.WriteFile(cfgPath, []byte("keys:\n  - name: main\n    key: material\neditor: nano\n"), 0o600))

	var f KeyFlags
	f.Config = cfgPath
	f.Keydir = dir

	set, editor, err := f.keySet(testCtx().Logger)
	assert.NoError(t, err)
	assert.Equal(t, "nano", editor)
	assert.Equal(t, []string{"material"}, set.Materials())

	// With exactly one key, it also serves as the encryption key.
	k, err := set.EncryptionKey()
	assert.NoError(t, err)
	assert.Equal(t, "material", k.Material)
}

func TestKeySetExplicitSpecifiers(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	assert.NoError(t, os.WriteFile(cfgPath, []byte("keys:\n  - name: main\n    key: config-material\n"), 0o600))
	keyPath := filepath.Join(dir, "other")
	assert.NoError(t, os.WriteFile(keyPath, []byte("file-material"), 0o600))

	var f KeyFlags
	f.Config = cfgPath
	f.Keydir = dir
	f.Key = []string{keyPath, "c:main"}

	set, _, err := f.keySet(testCtx().Logger)
	assert.NoError(t, err)
	assert.Equal(t, []string{"file-material", "config-material"}, set.Materials())
}

func captureOutput(f func() error) (string, string) {
	// Save original stdout and stderr
	oldOut := os.Stdout
	oldErr := os.Stderr

	// Create new pipes to capture output
	rOut, wOut, _ := os.Pipe()
	rErr, wErr, _ := os.Pipe()

	os.Stdout = wOut
	os.Stderr = wErr

	// Run function while capturing output
	err := f()
	if err != nil {
		os.Stdout = oldOut
		os.Stderr = oldErr
		return "", err.Error()
	}
	// Close writers
	wOut.Close()
	wErr.Close()

	// Read output from pipes
	var outBuf, errBuf bytes.Buffer
	io.Copy(&outBuf, rOut)
	io.Copy(&errBuf, rErr)

	// Restore original stdout and stderr
	os.Stdout = oldOut
	os.Stderr = oldErr

	return outBuf.String(), errBuf.String()
}
