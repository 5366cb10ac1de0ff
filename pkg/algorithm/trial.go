package algorithm

import "errors"

// ErrDecryptionFailed indicates that no (key, algorithm) pair decrypted a
// token. It deliberately carries no detail about which combination came
// closest.
var ErrDecryptionFailed = errors.New("decryption failed")

// TryDecrypt attempts to decrypt token with each key in the order supplied,
// trying each algorithm in the given order for every key. The first
// successful decryption wins. This is a linear search on purpose: the key
// list is small and operator-controlled, and trial order is part of the
// contract.
func TryDecrypt(algs []Algorithm, keys []string, token string) ([]byte, error) {
	if len(algs) == 0 {
		algs = List()
	}
	for _, key := range keys {
		for _, alg := range algs {
			if !alg.Recognize(token) {
				continue
			}
			msg, err := alg.Decrypt(key, token)
			if err != nil {
				continue
			}
			return msg, nil
		}
	}
	return nil, ErrDecryptionFailed
}
