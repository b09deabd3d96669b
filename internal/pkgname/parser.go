// internal/pkgname/parser.go
package pkgname

import (
	"fmt"
	"regexp"
	"strings"
)

// segmentRegex matches a single segment of a package name.
var segmentRegex = regexp.MustCompile(`^[A-Za-z0-9_+-]+$`)

// isValidSegment rejects names that match the regex but are meaningless.
func isValidSegment(segment string) bool {
	return strings.Trim(segment, "-") != ""
}

// Parse creates a new Name by parsing its canonical string representation.
func Parse(raw string) (*Name, error) {
	if raw == "" {
		return nil, fmt.Errorf("package name cannot be empty")
	}

	name := &Name{}
	for _, segment := range strings.Split(raw, ".") {
		if segment == "" {
			return nil, fmt.Errorf("package name %q contains empty segment", raw)
		}
		if !segmentRegex.MatchString(segment) {
			return nil, fmt.Errorf("invalid package name segment %q in %q", segment, raw)
		}
		if !isValidSegment(segment) {
			return nil, fmt.Errorf("invalid package name segment %q in %q", segment, raw)
		}
		name.Segments = append(name.Segments, segment)
	}
	return name, nil
}

// MustParse is like Parse but panics on error. Intended for constants and tests.
func MustParse(raw string) *Name {
	name, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return name
}
