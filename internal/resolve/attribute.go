package resolve

import (
	"slices"

	"github.com/nxp-imx/gtec-demo-framework-sub000/internal/buildorder"
	"github.com/nxp-imx/gtec-demo-framework-sub000/internal/model"
	"github.com/nxp-imx/gtec-demo-framework-sub000/internal/pkgname"
)

// Entry is one attribute as seen from one package.
type Entry[T any] struct {
	Name  string
	Value T
	// IntroducedBy is the package that declared the attribute.
	IntroducedBy string
	// Access is the level at which the attribute is visible here.
	Access model.AccessType
	// ConsumedBy is the first non-virtual package in build order that pulled
	// the attribute in.
	ConsumedBy string
	// IsFirstActualUse is set only on the copy held by ConsumedBy.
	IsFirstActualUse bool
}

// AttributeSet holds one family of attributes of one package. Every slice is
// sorted by lowercase name.
type AttributeSet[T any] struct {
	// Direct holds the package's own declarations.
	Direct []Entry[T]
	// All holds direct and inherited entries.
	All []Entry[T]
	// Public and Private split All by access. Public is what dependents
	// inherit.
	Public  []Entry[T]
	Private []Entry[T]
	// Link holds entries that only pass through to the final link step.
	Link []Entry[T]
}

// Names returns the names of all entries.
func (s AttributeSet[T]) Names() []string {
	names := make([]string, 0, len(s.All))
	for _, e := range s.All {
		names = append(names, e.Name)
	}
	return names
}

// Get looks up an entry of All by name.
func (s AttributeSet[T]) Get(name string) (Entry[T], bool) {
	for _, e := range s.All {
		if e.Name == name {
			return e, true
		}
	}
	return Entry[T]{}, false
}

// merger folds the entries reaching one package.
type merger[T any] struct {
	family  string
	pkg     string
	virtual bool
	direct  map[string]*Entry[T]
	entries map[string]*Entry[T]
}

func newMerger[T any](family string, p *buildorder.OrderedPackage) *merger[T] {
	return &merger[T]{
		family:  family,
		pkg:     p.Name,
		virtual: p.Package.IsVirtual(),
		direct:  make(map[string]*Entry[T]),
		entries: make(map[string]*Entry[T]),
	}
}

// declare adds one of the package's own attributes.
func (m *merger[T]) declare(name string, value T, access model.AccessType) error {
	if existing, ok := m.entries[name]; ok {
		return &AttributeCollisionError{Family: m.family, Name: name, Package: m.pkg, Existing: existing.IntroducedBy, Incoming: m.pkg, Direct: true}
	}
	e := &Entry[T]{Name: name, Value: value, IntroducedBy: m.pkg, Access: access}
	if !m.virtual {
		e.ConsumedBy = m.pkg
		e.IsFirstActualUse = true
	}
	m.direct[name] = e
	m.entries[name] = e
	return nil
}

// fold merges entries inherited over an edge with the given access.
func (m *merger[T]) fold(inherited []Entry[T], access model.AccessType) error {
	for _, in := range inherited {
		arriving := &Entry[T]{
			Name:         in.Name,
			Value:        in.Value,
			IntroducedBy: in.IntroducedBy,
			Access:       access,
			ConsumedBy:   in.ConsumedBy,
		}
		if arriving.ConsumedBy == "" && !m.virtual {
			arriving.ConsumedBy = m.pkg
			arriving.IsFirstActualUse = true
		}

		existing, ok := m.entries[in.Name]
		switch {
		case !ok:
			m.entries[in.Name] = arriving
		case existing.IntroducedBy != arriving.IntroducedBy:
			_, direct := m.direct[in.Name]
			return &AttributeCollisionError{
				Family:   m.family,
				Name:     in.Name,
				Package:  m.pkg,
				Existing: existing.IntroducedBy,
				Incoming: arriving.IntroducedBy,
				Direct:   direct,
			}
		case arriving.Access.MoreOpenThan(existing.Access):
			m.entries[in.Name] = arriving
		}
	}
	return nil
}

func (m *merger[T]) set() AttributeSet[T] {
	var s AttributeSet[T]
	s.Direct = sortedEntries(m.direct)
	s.All = sortedEntries(m.entries)
	for _, e := range s.All {
		switch e.Access {
		case model.AccessPublic:
			s.Public = append(s.Public, e)
		case model.AccessPrivate:
			s.Private = append(s.Private, e)
		default:
			s.Link = append(s.Link, e)
		}
	}
	return s
}

func sortedEntries[T any](m map[string]*Entry[T]) []Entry[T] {
	out := make([]Entry[T], 0, len(m))
	for _, e := range m {
		out = append(out, *e)
	}
	slices.SortFunc(out, func(a, b Entry[T]) int { return pkgname.Compare(a.Name, b.Name) })
	return out
}
