package tree

import "strings"

// Path is an ordered sequence of mapping keys scoping which scalars are
// subject to transformation. An empty Path matches everything. Sequence
// indices do not participate; sequences are traversed transparently.
type Path []string

// ParsePath splits a dotted path expression into its components. The empty
// string yields a nil Path.
func ParsePath(expr string) Path {
	if expr == "" {
		return nil
	}
	return Path(strings.Split(expr, "."))
}

// Matches reports whether the position identified by current is at or
// beneath this path. A path addressing a non-leaf node therefore scopes
// every scalar in that subtree.
func (p Path) Matches(current []string) bool {
	if len(current) < len(p) {
		return false
	}
	for i, component := range p {
		if current[i] != component {
			return false
		}
	}
	return true
}

// String returns the dotted form of the path.
func (p Path) String() string {
	return strings.Join(p, ".")
}
