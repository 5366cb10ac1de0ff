package algorithm

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/hako/branca"
)

const base62Alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// Branca implements the Branca token spec: XChaCha20-Poly1305 with the
// timestamp bound into the authenticated header, encoded as base62. Keys
// are 32 bytes of hex (64 characters). A non-zero TTL rejects tokens older
// than that many seconds during decryption.
type Branca struct {
	TTL int
}

func (b *Branca) Name() string { return "branca" }

func (b *Branca) GenerateKey() (string, error) {
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return "", err
	}
	return hex.EncodeToString(key), nil
}

// parseBrancaKey decodes the 64-character hex key format into the raw
// 32-byte key the cipher wants.
func parseBrancaKey(key string) (string, error) {
	if len(key) != 64 {
		return "", fmt.Errorf("%w: branca key must be 64 hex characters", ErrInvalidKey)
	}
	raw, err := hex.DecodeString(key)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	return string(raw), nil
}

func (b *Branca) Encrypt(key string, plaintext []byte) (string, error) {
	raw, err := parseBrancaKey(key)
	if err != nil {
		return "", err
	}
	return branca.NewBranca(raw).EncodeToString(string(plaintext))
}

func (b *Branca) Decrypt(key string, token string) ([]byte, error) {
	raw, err := parseBrancaKey(key)
	if err != nil {
		return nil, err
	}
	codec := branca.NewBranca(raw)
	if b.TTL > 0 {
		codec.SetTTL(uint32(b.TTL))
	}
	msg, err := codec.DecodeToString(token)
	if err != nil {
		return nil, ErrInvalidToken
	}
	return []byte(msg), nil
}

func (b *Branca) Recognize(token string) bool {
	if token == "" {
		return false
	}
	for _, r := range token {
		if !strings.ContainsRune(base62Alphabet, r) {
			return false
		}
	}
	return true
}
