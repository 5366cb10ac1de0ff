package keys

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ErrKeyNotFound indicates that a named config key or environment variable
// lookup found nothing usable.
var ErrKeyNotFound = errors.New("key not found")

// ErrInvalidArgument indicates a malformed specifier argument, e.g. a file
// descriptor that is not a non-negative integer.
var ErrInvalidArgument = errors.New("invalid key specifier argument")

// ErrFileNotFound indicates that a key file path does not exist.
var ErrFileNotFound = errors.New("key file not found")

// Resolve turns a key specifier into key material. Specifiers are
// "prefix:argument"; a bare argument has file semantics. Supported
// prefixes:
//
//	c: / config:  look up by name among the named keys
//	e: / env:     read an environment variable
//	fd:           read all bytes from an open file descriptor
//	f: / file:    read a file (the default)
//
// Resolved material is trimmed of surrounding whitespace before use.
func Resolve(spec string, named map[string]string) (Key, error) {
	prefix, arg, ok := strings.Cut(spec, ":")
	if !ok {
		return resolveFile(spec)
	}
	switch prefix {
	case "c", "config":
		return resolveConfig(arg, named)
	case "e", "env":
		return resolveEnv(arg)
	case "fd":
		return resolveFd(arg)
	case "f", "file":
		return resolveFile(arg)
	default:
		// Unknown prefixes fall back to file semantics so paths containing
		// a colon still work.
		return resolveFile(spec)
	}
}

// ResolveAll resolves each specifier in order into a decryption key set.
func ResolveAll(specs []string, named map[string]string) (*Set, error) {
	var set Set
	for _, spec := range specs {
		k, err := Resolve(spec, named)
		if err != nil {
			return nil, fmt.Errorf("resolving key %q: %w", spec, err)
		}
		set.Add(k)
	}
	return &set, nil
}

func resolveConfig(name string, named map[string]string) (Key, error) {
	material, ok := named[name]
	if !ok {
		return Key{}, fmt.Errorf("%w: no configured key named %q", ErrKeyNotFound, name)
	}
	return Key{Name: name, Material: strings.TrimSpace(material)}, nil
}

func resolveEnv(name string) (Key, error) {
	value, ok := os.LookupEnv(name)
	if !ok || strings.TrimSpace(value) == "" {
		return Key{}, fmt.Errorf("%w: environment variable %q is unset or blank", ErrKeyNotFound, name)
	}
	return Key{Material: strings.TrimSpace(value)}, nil
}

func resolveFd(arg string) (Key, error) {
	fd, err := strconv.ParseUint(arg, 10, 31)
	if err != nil {
		return Key{}, fmt.Errorf("%w: %q is not a non-negative file descriptor", ErrInvalidArgument, arg)
	}
	f := os.NewFile(uintptr(fd), fmt.Sprintf("fd:%d", fd))
	if f == nil {
		return Key{}, fmt.Errorf("%w: descriptor %d is not open", ErrInvalidArgument, fd)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return Key{}, fmt.Errorf("reading fd %d: %w", fd, err)
	}
	return Key{Material: strings.TrimSpace(string(data))}, nil
}

func resolveFile(path string) (Key, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Key{}, fmt.Errorf("%w: %q", ErrFileNotFound, path)
		}
		return Key{}, err
	}
	return Key{Material: strings.TrimSpace(string(data))}, nil
}
