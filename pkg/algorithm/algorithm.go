// Package algorithm implements the token schemes used to encrypt scalar
// values: Fernet and Branca. Both produce self-describing authenticated
// tokens, so a decryption attempt either recovers the exact plaintext or
// fails; it never returns garbage.
package algorithm

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrUnknownAlgorithm indicates that an algorithm identifier does not name
// a registered scheme, or carries a parameter the scheme cannot parse.
var ErrUnknownAlgorithm = errors.New("unknown algorithm")

// ErrInvalidKey indicates that key material does not have the shape the
// scheme requires (wrong length or encoding).
var ErrInvalidKey = errors.New("invalid key")

// ErrInvalidToken is returned for any token that cannot be decrypted:
// malformed encoding, unsupported version, expired, or failed
// authentication. Callers are deliberately not told which.
var ErrInvalidToken = errors.New("invalid token")

// Algorithm is a symmetric token scheme. Implementations are stateless and
// safe for concurrent use.
type Algorithm interface {
	// Name returns the scheme's registry name (no parameter).
	Name() string
	// GenerateKey returns fresh key material in the scheme's textual key
	// format, suitable for storing in a key file.
	GenerateKey() (string, error)
	// Encrypt produces a token for plaintext under key.
	Encrypt(key string, plaintext []byte) (string, error)
	// Decrypt recovers the plaintext from token, or fails with
	// ErrInvalidToken. Key shape problems fail with ErrInvalidKey.
	Decrypt(key string, token string) ([]byte, error)
	// Recognize reports whether token is structurally plausible for this
	// scheme. A false result means decryption is guaranteed to fail; a true
	// result guarantees nothing.
	Recognize(token string) bool
}

// List returns the registered schemes with their default parameterization,
// in registry order. The first entry is the default for encryption.
func List() []Algorithm {
	return []Algorithm{
		&Fernet{},
		&Branca{},
	}
}

// Names returns the registry names in registry order, for help text.
func Names() []string {
	algs := List()
	names := make([]string, len(algs))
	for i, a := range algs {
		names[i] = a.Name()
	}
	return names
}

// Resolve maps an identifier of the form "name" or "name:param" to a
// configured scheme. Matching is prefix-based on "name:", so a bare name
// selects the scheme's default parameterization. The only supported
// parameter is a decryption TTL in whole seconds.
func Resolve(id string) (Algorithm, error) {
	for _, a := range List() {
		if id == a.Name() {
			return a, nil
		}
		if !strings.HasPrefix(id, a.Name()+":") {
			continue
		}
		param := strings.TrimPrefix(id, a.Name()+":")
		ttl, err := parseTTL(param)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrUnknownAlgorithm, id, err)
		}
		switch alg := a.(type) {
		case *Fernet:
			alg.TTL = ttl
			return alg, nil
		case *Branca:
			alg.TTL = ttl
			return alg, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, id)
}

func parseTTL(param string) (int, error) {
	ttl, err := strconv.Atoi(param)
	if err != nil {
		return 0, fmt.Errorf("ttl must be an integer number of seconds")
	}
	if ttl < 0 {
		return 0, fmt.Errorf("ttl must not be negative")
	}
	return ttl, nil
}

// GenerateKey returns fresh key material for the identified scheme.
func GenerateKey(id string) (string, error) {
	alg, err := Resolve(id)
	if err != nil {
		return "", err
	}
	return alg.GenerateKey()
}
