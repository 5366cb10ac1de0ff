package tree

import (
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/yamlcrypt/yamlcrypt/pkg/algorithm"
)

func TestRawRoundTrip(t *testing.T) {
	key := newKey(t)
	set := newSet(key)

	// Raw mode must not care that the input is not YAML.
	input := []byte("{not: yaml: at all\n\tjust bytes")

	token, err := TransformRaw(input, Encrypt, set, Options{})
	assert.NoError(t, err)
	assert.NotEqual(t, string(input), string(token))

	plain, err := TransformRaw(token, Decrypt, set, Options{})
	assert.NoError(t, err)
	assert.Equal(t, string(input), string(plain))
}

func TestRawBase64(t *testing.T) {
	key := newKey(t)
	set := newSet(key)

	token, err := TransformRaw([]byte("secret123"), Encrypt, set, Options{Base64: true})
	assert.NoError(t, err)

	plain, err := TransformRaw(token, Decrypt, set, Options{Base64: true})
	assert.NoError(t, err)
	assert.Equal(t, "secret123", string(plain))
}

func TestRawTrailingNewline(t *testing.T) {
	key := newKey(t)
	set := newSet(key)

	token, err := TransformRaw([]byte("blob"), Encrypt, set, Options{})
	assert.NoError(t, err)

	// Token files commonly gain a trailing newline; decryption tolerates it.
	plain, err := TransformRaw(append(token, '\n'), Decrypt, set, Options{})
	assert.NoError(t, err)
	assert.Equal(t, "blob", string(plain))
}

func TestRawWrongKey(t *testing.T) {
	token, err := TransformRaw([]byte("blob"), Encrypt, newSet(newKey(t)), Options{})
	assert.NoError(t, err)

	_, err = TransformRaw(token, Decrypt, newSet(newKey(t)), Options{})
	assert.IsError(t, err, algorithm.ErrDecryptionFailed)
}
