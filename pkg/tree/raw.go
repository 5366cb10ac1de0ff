package tree

import (
	"strings"

	"github.com/yamlcrypt/yamlcrypt/pkg/keys"
)

// TransformRaw applies the leaf pipeline to an entire buffer as one opaque
// string, with no YAML parsing. Path scoping does not apply. Decryption
// tolerates surrounding whitespace so token files may end with a newline.
func TransformRaw(data []byte, dir Direction, ks *keys.Set, opts Options) ([]byte, error) {
	tf, err := newTransformer(dir, ks, opts)
	if err != nil {
		return nil, err
	}
	value := string(data)
	if dir == Decrypt {
		value = strings.TrimSpace(value)
	}
	out, err := tf.transformValue(value)
	if err != nil {
		return nil, err
	}
	return []byte(out), nil
}
