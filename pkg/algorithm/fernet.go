package algorithm

import (
	"encoding/base64"
	"fmt"
	"time"

	"github.com/fernet/fernet-go"
)

// fernetVersion is the version byte every Fernet token starts with.
const fernetVersion = 0x80

// minFernetTokenLen is version (1) + timestamp (8) + IV (16) + one AES-CBC
// block (16) + HMAC (32).
const minFernetTokenLen = 73

// Fernet implements the Fernet token spec: AES-128-CBC with an HMAC-SHA256
// tag, encoded as URL-safe base64. Keys are the 32-byte base64 strings
// produced by fernet key generation. A non-zero TTL rejects tokens older
// than that many seconds during decryption.
type Fernet struct {
	TTL int
}

func (f *Fernet) Name() string { return "fernet" }

func (f *Fernet) GenerateKey() (string, error) {
	var key fernet.Key
	if err := key.Generate(); err != nil {
		return "", err
	}
	return key.Encode(), nil
}

func (f *Fernet) Encrypt(key string, plaintext []byte) (string, error) {
	k, err := fernet.DecodeKey(key)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	tok, err := fernet.EncryptAndSign(plaintext, k)
	if err != nil {
		return "", err
	}
	return string(tok), nil
}

func (f *Fernet) Decrypt(key string, token string) ([]byte, error) {
	k, err := fernet.DecodeKey(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	ttl := time.Duration(f.TTL) * time.Second
	msg := fernet.VerifyAndDecrypt([]byte(token), ttl, []*fernet.Key{k})
	if msg == nil {
		return nil, ErrInvalidToken
	}
	return msg, nil
}

func (f *Fernet) Recognize(token string) bool {
	raw, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return false
	}
	return len(raw) >= minFernetTokenLen && raw[0] == fernetVersion
}
