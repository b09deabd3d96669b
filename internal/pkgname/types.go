// internal/pkgname/types.go
package pkgname

// Name is the structured representation of a package name.
type Name struct {
	Segments []string
}

// New creates a Name from already validated segments.
func New(segments ...string) *Name {
	return &Name{Segments: append([]string(nil), segments...)}
}
