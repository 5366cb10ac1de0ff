package tree

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestParsePath(t *testing.T) {
	assert.Equal(t, Path(nil), ParsePath(""))
	assert.Equal(t, Path{"a"}, ParsePath("a"))
	assert.Equal(t, Path{"a", "b", "c"}, ParsePath("a.b.c"))
}

func TestPathMatches(t *testing.T) {
	tests := []struct {
		name    string
		target  string
		current []string
		want    bool
	}{
		{"empty matches root", "", nil, true},
		{"empty matches anything", "", []string{"a", "b"}, true},
		{"exact match", "a.b", []string{"a", "b"}, true},
		{"descendant matches", "a.b", []string{"a", "b", "c"}, true},
		{"ancestor does not match", "a.b", []string{"a"}, false},
		{"sibling does not match", "a.b", []string{"a", "c"}, false},
		{"disjoint does not match", "a.b", []string{"x", "b"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParsePath(tt.target).Matches(tt.current))
		})
	}
}

func TestPathString(t *testing.T) {
	assert.Equal(t, "a.b", ParsePath("a.b").String())
}
