// internal/pkgname/name.go
package pkgname

import (
	"slices"
	"strings"
)

// String serializes the Name into its canonical dotted form.
func (n *Name) String() string {
	if n == nil {
		return ""
	}
	return strings.Join(n.Segments, ".")
}

// Equal reports whether both names have identical segments.
func (n *Name) Equal(other *Name) bool {
	if n == nil || other == nil {
		return n == other
	}
	return slices.Equal(n.Segments, other.Segments)
}

// Namespace returns every segment but the last, or "" for single-segment names.
func (n *Name) Namespace() string {
	if n == nil || len(n.Segments) < 2 {
		return ""
	}
	return strings.Join(n.Segments[:len(n.Segments)-1], ".")
}

// HasPrefix reports whether prefix is a proper, segment-aligned prefix of n.
// "FslBase" is a prefix of "FslBase.UnitTest" but not of "FslBaseX".
func (n *Name) HasPrefix(prefix *Name) bool {
	if n == nil || prefix == nil || len(prefix.Segments) >= len(n.Segments) {
		return false
	}
	return slices.Equal(n.Segments[:len(prefix.Segments)], prefix.Segments)
}

// Key returns the sort key for a raw package name.
func Key(raw string) string {
	return strings.ToLower(raw)
}

// Compare orders raw names case-insensitively, falling back to the raw name
// so that names differing only by case still have a stable order.
func Compare(a, b string) int {
	if c := strings.Compare(Key(a), Key(b)); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}

// Less is the boolean form of Compare.
func Less(a, b string) bool {
	return Compare(a, b) < 0
}

// Sort sorts names in place using Compare.
func Sort(names []string) {
	slices.SortFunc(names, Compare)
}

// Sorted returns a sorted copy of names.
func Sorted(names []string) []string {
	out := slices.Clone(names)
	Sort(out)
	return out
}
