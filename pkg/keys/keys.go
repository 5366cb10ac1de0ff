// Package keys resolves key specifiers into key material and tracks the
// ordered key set used for trial decryption plus the single designated
// encryption key.
package keys

import "errors"

// ErrMissingEncryptionKey indicates that an encrypting operation was asked
// for but no encryption key was designated and the decryption key list does
// not contain exactly one key to fall back on.
var ErrMissingEncryptionKey = errors.New("no encryption key available")

// Key is opaque key material with an optional human-readable name. Only
// keys loaded from configuration carry names; keys resolved from files,
// environment variables, descriptors, or literals are anonymous.
type Key struct {
	Name     string
	Material string
}

// Set is the ordered list of decryption keys plus at most one designated
// encryption key. Decryption trial order is exactly insertion order.
type Set struct {
	keys       []Key
	encryption *Key
}

// Add appends a decryption key. Order is significant.
func (s *Set) Add(k Key) {
	s.keys = append(s.keys, k)
}

// SetEncryptionKey designates the key used for all encryption in this set.
func (s *Set) SetEncryptionKey(k Key) {
	s.encryption = &k
}

// Keys returns the decryption keys in trial order.
func (s *Set) Keys() []Key {
	return s.keys
}

// Materials returns the decryption key material in trial order.
func (s *Set) Materials() []string {
	out := make([]string, len(s.keys))
	for i, k := range s.keys {
		out[i] = k.Material
	}
	return out
}

// Len returns the number of decryption keys.
func (s *Set) Len() int {
	return len(s.keys)
}

// EncryptionKey returns the designated encryption key. Without an explicit
// designation, a set holding exactly one decryption key uses that key;
// anything else is ErrMissingEncryptionKey.
func (s *Set) EncryptionKey() (Key, error) {
	if s.encryption != nil {
		return *s.encryption, nil
	}
	if len(s.keys) == 1 {
		return s.keys[0], nil
	}
	return Key{}, ErrMissingEncryptionKey
}
