package resolve

import (
	"context"
	"slices"
	"strings"

	"go.uber.org/multierr"

	"github.com/nxp-imx/gtec-demo-framework-sub000/internal/buildorder"
	"github.com/nxp-imx/gtec-demo-framework-sub000/internal/ctxlog"
	"github.com/nxp-imx/gtec-demo-framework-sub000/internal/model"
	"github.com/nxp-imx/gtec-demo-framework-sub000/internal/pkgname"
)

// RequirementEntry is a requirement together with every package that
// declared it.
type RequirementEntry struct {
	Requirement  model.Requirement
	IntroducedBy []string
}

// RequirementSet holds the requirements of one package, sorted by
// lowercase name.
type RequirementSet struct {
	Direct []RequirementEntry
	All    []RequirementEntry
}

// Features returns the names of every feature requirement in All.
func (s RequirementSet) Features() []string {
	var names []string
	for _, e := range s.All {
		if e.Requirement.Type == model.RequirementFeature {
			names = append(names, e.Requirement.Name)
		}
	}
	return names
}

// resolveRequirements collects the requirements of every package and of
// everything it depends on. Requirements travel over every edge, Link
// included.
func resolveRequirements(ctx context.Context, packages []*buildorder.OrderedPackage, narrowed bool) (map[string]RequirementSet, error) {
	sets := make(map[string]RequirementSet, len(packages))
	var unknown error
	for _, p := range packages {
		var set RequirementSet
		seen := make(map[string]struct{})
		for _, req := range p.Package.Requirements {
			key := strings.ToLower(req.Name)
			if _, dup := seen[key]; dup {
				return nil, &AttributeCollisionError{Family: "requirement", Name: req.Name, Package: p.Name, Existing: p.Name, Incoming: p.Name, Direct: true}
			}
			seen[key] = struct{}{}
			set.Direct = append(set.Direct, RequirementEntry{Requirement: req, IntroducedBy: []string{p.Name}})
		}

		all := make(map[string]*RequirementEntry)
		lowercase := make(map[string]string)
		merge := func(entries []RequirementEntry, owner string) error {
			for _, e := range entries {
				if existing, ok := all[e.Requirement.Name]; ok {
					for _, intro := range e.IntroducedBy {
						if !slices.Contains(existing.IntroducedBy, intro) {
							existing.IntroducedBy = append(existing.IntroducedBy, intro)
						}
					}
					continue
				}
				key := strings.ToLower(e.Requirement.Name)
				if other, clash := lowercase[key]; clash {
					return &NameCaseCollisionError{Family: "requirement", Package: owner, Name: e.Requirement.Name, Other: other}
				}
				lowercase[key] = e.Requirement.Name
				all[e.Requirement.Name] = &RequirementEntry{Requirement: e.Requirement, IntroducedBy: slices.Clone(e.IntroducedBy)}
			}
			return nil
		}
		for _, dep := range p.DirectDependencies {
			if err := merge(sets[dep].All, dep); err != nil {
				return nil, err
			}
		}
		if err := merge(set.Direct, p.Name); err != nil {
			return nil, err
		}

		for _, e := range all {
			pkgname.Sort(e.IntroducedBy)
			set.All = append(set.All, *e)
		}
		sortRequirements(set.Direct)
		sortRequirements(set.All)
		sets[p.Name] = set

		unknown = multierr.Append(unknown, checkExtensions(p.Name, set))
	}

	if unknown != nil {
		if !narrowed {
			return nil, unknown
		}
		for _, err := range multierr.Errors(unknown) {
			ctxlog.FromContext(ctx).Warn("Resolve: Extension of unknown feature ignored for requested subset.", "error", err)
		}
	}
	return sets, nil
}

// checkExtensions verifies that every extension declared by the package
// extends a feature it actually uses.
func checkExtensions(pkg string, set RequirementSet) error {
	features := set.Features()
	var errs error
	for _, e := range set.Direct {
		req := e.Requirement
		if req.Type != model.RequirementExtension || slices.Contains(features, req.Extends) {
			continue
		}
		errs = multierr.Append(errs, &UnknownFeatureError{
			Package:    pkg,
			Extension:  req.Name,
			Feature:    req.Extends,
			Candidates: buildorder.Suggest(req.Extends, features),
		})
	}
	return errs
}

func sortRequirements(entries []RequirementEntry) {
	slices.SortFunc(entries, func(a, b RequirementEntry) int {
		return pkgname.Compare(a.Requirement.Name, b.Requirement.Name)
	})
}
