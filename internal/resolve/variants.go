package resolve

import (
	"slices"
	"strings"

	"github.com/nxp-imx/gtec-demo-framework-sub000/internal/buildorder"
	"github.com/nxp-imx/gtec-demo-framework-sub000/internal/model"
	"github.com/nxp-imx/gtec-demo-framework-sub000/internal/pkgname"
)

// VariantEntry is a variant as merged over a package's build order.
type VariantEntry struct {
	Variant      model.Variant
	IntroducedBy string
	// ExtendedBy lists the packages whose extensions were merged in, in
	// build order.
	ExtendedBy []string
	// ConsumedBy is the first non-virtual package in build order that pulls
	// the introducer in. It stays empty while only virtual packages do.
	ConsumedBy string
	// IsFirstActualUse is set only on the copy held by ConsumedBy.
	IsFirstActualUse bool
}

// VariantSet holds the variants of one package, sorted by lowercase name.
type VariantSet struct {
	// Direct holds the merged form of the variants the package declares.
	Direct []VariantEntry
	// All holds every variant in the package's build order.
	All []VariantEntry
}

// Get looks up a merged variant by name.
func (s VariantSet) Get(name string) (VariantEntry, bool) {
	for _, e := range s.All {
		if e.Variant.Name == name {
			return e, true
		}
	}
	return VariantEntry{}, false
}

// resolveVariants merges, for every package, the variants declared anywhere
// in its build order. A later declaration of a known variant is an
// extension and must be marked for extend.
func resolveVariants(packages []*buildorder.OrderedPackage, order *buildorder.Order) (map[string]VariantSet, error) {
	sets := make(map[string]VariantSet, len(packages))
	for _, p := range packages {
		merged := make(map[string]*VariantEntry)
		lowercase := make(map[string]string)
		for _, name := range p.BuildOrder {
			member, _ := order.Package(name)
			for _, variant := range member.Package.Variants {
				existing, ok := merged[variant.Name]
				if !ok {
					if other, clash := lowercase[strings.ToLower(variant.Name)]; clash {
						return nil, &NameCaseCollisionError{Family: "variant", Package: member.Name, Name: variant.Name, Other: other}
					}
					lowercase[strings.ToLower(variant.Name)] = variant.Name
					merged[variant.Name] = &VariantEntry{Variant: variant, IntroducedBy: member.Name}
					continue
				}
				extended, err := existing.Variant.Extend(existing.IntroducedBy, member.Name, variant)
				if err != nil {
					return nil, err
				}
				existing.Variant = extended
				existing.ExtendedBy = append(existing.ExtendedBy, member.Name)
			}
		}

		for _, e := range merged {
			e.ConsumedBy = firstConsumer(p, order, e.IntroducedBy)
			e.IsFirstActualUse = e.ConsumedBy == p.Name
		}

		var set VariantSet
		for _, e := range merged {
			set.All = append(set.All, cloneVariantEntry(*e))
		}
		slices.SortFunc(set.All, compareVariantEntries)
		for _, declared := range p.Package.Variants {
			set.Direct = append(set.Direct, cloneVariantEntry(*merged[declared.Name]))
		}
		slices.SortFunc(set.Direct, compareVariantEntries)
		sets[p.Name] = set
	}
	return sets, nil
}

// firstConsumer returns the first non-virtual member of p's build order that
// is the introducer or depends on it.
func firstConsumer(p *buildorder.OrderedPackage, order *buildorder.Order, introducer string) string {
	for _, name := range p.BuildOrder {
		member, ok := order.Package(name)
		if !ok || member.Package.IsVirtual() {
			continue
		}
		if name == introducer || slices.Contains(member.AllDependencies, introducer) {
			return name
		}
	}
	return ""
}

func cloneVariantEntry(e VariantEntry) VariantEntry {
	e.ExtendedBy = slices.Clone(e.ExtendedBy)
	return e
}

func compareVariantEntries(a, b VariantEntry) int {
	return pkgname.Compare(a.Variant.Name, b.Variant.Name)
}
