// Package tree transforms scalar values inside parsed YAML documents,
// encrypting or decrypting the leaves under a chosen path while leaving the
// document's structure, key order, and non-string values untouched.
package tree

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/yamlcrypt/yamlcrypt/pkg/algorithm"
	"github.com/yamlcrypt/yamlcrypt/pkg/keys"
)

// Direction selects which way a transform runs.
type Direction int

const (
	Encrypt Direction = iota
	Decrypt
)

// Options configures one transform pass.
type Options struct {
	// Algorithm pins a scheme by identifier. Empty means the registry
	// default for encryption and all registered schemes for decryption.
	Algorithm string
	// Base64 wraps values in base64 before encryption and unwraps after
	// decryption.
	Base64 bool
	// Path scopes the transform; nil means every scalar.
	Path Path
}

// Transform parses data as a multi-document YAML stream and applies the
// transform to every in-scope string scalar of every document. The output
// stream preserves document order and count. A single in-scope scalar that
// fails to decrypt fails the whole call; there is no partial output.
func Transform(data []byte, dir Direction, ks *keys.Set, opts Options) ([]byte, error) {
	tf, err := newTransformer(dir, ks, opts)
	if err != nil {
		return nil, err
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	var documents []*yaml.Node
	for {
		var node yaml.Node
		err := decoder.Decode(&node)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("invalid yaml: %v", err)
		}
		documents = append(documents, &node)
	}
	if len(documents) == 0 {
		return nil, fmt.Errorf("invalid yaml: empty document")
	}

	for _, doc := range documents {
		if err := tf.walk(doc, nil); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	for _, doc := range documents {
		if err := encoder.Encode(doc); err != nil {
			return nil, fmt.Errorf("failed to encode yaml: %v", err)
		}
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("failed to close yaml encoder: %v", err)
	}
	return buf.Bytes(), nil
}

// transformer carries the per-pass state: the resolved scheme and key for
// encryption, or the trial lists for decryption.
type transformer struct {
	dir  Direction
	opts Options

	encAlg algorithm.Algorithm
	encKey string

	algs     []algorithm.Algorithm
	trialKey []string
}

func newTransformer(dir Direction, ks *keys.Set, opts Options) (*transformer, error) {
	tf := &transformer{dir: dir, opts: opts}
	switch dir {
	case Encrypt:
		alg := algorithm.List()[0]
		if opts.Algorithm != "" {
			var err error
			alg, err = algorithm.Resolve(opts.Algorithm)
			if err != nil {
				return nil, err
			}
		}
		key, err := ks.EncryptionKey()
		if err != nil {
			return nil, err
		}
		tf.encAlg = alg
		tf.encKey = key.Material
	case Decrypt:
		if opts.Algorithm != "" {
			alg, err := algorithm.Resolve(opts.Algorithm)
			if err != nil {
				return nil, err
			}
			tf.algs = []algorithm.Algorithm{alg}
		}
		tf.trialKey = ks.Materials()
	default:
		return nil, fmt.Errorf("unknown transform direction %d", dir)
	}
	return tf, nil
}

// walk recursively visits node, carrying the accumulated mapping-key path.
// Only string scalar values in scope are transformed; mapping keys and
// non-string scalars pass through unchanged.
func (tf *transformer) walk(node *yaml.Node, current []string) error {
	switch node.Kind {
	case yaml.DocumentNode:
		for _, child := range node.Content {
			if err := tf.walk(child, current); err != nil {
				return err
			}
		}

	case yaml.MappingNode:
		for i := 0; i < len(node.Content); i += 2 {
			keyNode := node.Content[i]
			valueNode := node.Content[i+1]
			if err := tf.walk(valueNode, append(current, keyNode.Value)); err != nil {
				return err
			}
		}

	case yaml.SequenceNode:
		// Sequence indices are transparent to path expressions.
		for _, child := range node.Content {
			if err := tf.walk(child, current); err != nil {
				return err
			}
		}

	case yaml.ScalarNode:
		if node.Tag != "!!str" || !tf.opts.Path.Matches(current) {
			return nil
		}
		transformed, err := tf.transformValue(node.Value)
		if err != nil {
			return err
		}
		node.Value = transformed
		if tf.dir == Encrypt {
			// Double-quote tokens so the encoder cannot reinterpret them.
			node.Style = yaml.DoubleQuotedStyle
		} else {
			node.Style = 0
		}

	case yaml.AliasNode:
		return fmt.Errorf("invalid yaml: anchors and aliases are not supported (breaks authentication)")
	}
	return nil
}

// transformValue applies the leaf pipeline to a single string value:
// base64-then-encrypt one way, decrypt-then-base64 the other.
func (tf *transformer) transformValue(value string) (string, error) {
	switch tf.dir {
	case Encrypt:
		if tf.opts.Base64 {
			value = base64.StdEncoding.EncodeToString([]byte(value))
		}
		return tf.encAlg.Encrypt(tf.encKey, []byte(value))
	default:
		plaintext, err := algorithm.TryDecrypt(tf.algs, tf.trialKey, value)
		if err != nil {
			return "", err
		}
		if tf.opts.Base64 {
			decoded, err := base64.StdEncoding.DecodeString(string(plaintext))
			if err != nil {
				return "", fmt.Errorf("decrypted value is not valid base64: %w", err)
			}
			plaintext = decoded
		}
		return string(plaintext), nil
	}
}
