package fileutils

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestEncryptedName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"app.yaml", "app.yaml-crypt"},
		{"app.yml", "app.yml-crypt"},
		{"dir/app.yaml", "dir/app.yaml-crypt"},
		{"blob", "blob.yaml-crypt"},
		{"notes.txt", "notes.txt.yaml-crypt"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := EncryptedName(tt.input)
			if got != tt.expected {
				t.Errorf("EncryptedName(%q) = %q; want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestDecryptedName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"app.yaml-crypt", "app.yaml"},
		{"app.yml-crypt", "app.yml"},
		{"dir/app.yaml-crypt", "dir/app.yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := DecryptedName(tt.input)
			assert.NoError(t, err)
			if got != tt.expected {
				t.Errorf("DecryptedName(%q) = %q; want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestDecryptedName_Unrecognized(t *testing.T) {
	for _, input := range []string{"app.yaml", "app.yml", "blob", "app.crypt"} {
		t.Run(input, func(t *testing.T) {
			_, err := DecryptedName(input)
			assert.Error(t, err)
		})
	}
}

func TestIsEncryptedName(t *testing.T) {
	assert.True(t, IsEncryptedName("app.yaml-crypt"))
	assert.True(t, IsEncryptedName("app.yml-crypt"))
	assert.False(t, IsEncryptedName("app.yaml"))
	assert.False(t, IsEncryptedName("app"))
}

func TestRoundTrip(t *testing.T) {
	for _, name := range []string{"app.yaml", "config.yml"} {
		got, err := DecryptedName(EncryptedName(name))
		assert.NoError(t, err)
		assert.Equal(t, name, got)
	}
}
