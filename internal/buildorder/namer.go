package buildorder

import "fmt"

const (
	// TopLevelName names the virtual package that depends on every root.
	TopLevelName = "SYS_TOPLEVEL"

	constraintNamePrefix = "SYS_EXTERNAL_FLAVOR_CONSTRAINT_ON_"
)

// Namer hands out names for synthetic packages. A run owns its namer so
// concurrent resolutions never share a counter.
type Namer interface {
	SyntheticName(base string) string
}

// localNamer is used when the caller does not supply a namer.
type localNamer struct {
	used map[string]int
}

func newLocalNamer() *localNamer {
	return &localNamer{used: make(map[string]int)}
}

func (n *localNamer) SyntheticName(base string) string {
	n.used[base]++
	if count := n.used[base]; count > 1 {
		return fmt.Sprintf("%s_%d", base, count)
	}
	return base
}
