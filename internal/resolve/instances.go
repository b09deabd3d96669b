package resolve

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/nxp-imx/gtec-demo-framework-sub000/internal/buildorder"
	"github.com/nxp-imx/gtec-demo-framework-sub000/internal/ctxlog"
	"github.com/nxp-imx/gtec-demo-framework-sub000/internal/model"
	"github.com/nxp-imx/gtec-demo-framework-sub000/internal/node"
	"github.com/nxp-imx/gtec-demo-framework-sub000/internal/pkgname"
)

// MaxInstancesPerPackage bounds the flavor configurations of one package.
const MaxInstancesPerPackage = 4096

// Instance is one buildable configuration of a package: exactly one option
// for every flavor reachable from it.
type Instance struct {
	// Selections holds the chosen option of every reachable flavor, sorted
	// by owner and flavor name. Owner is always set.
	Selections []model.FlavorSelection
	// Dependencies are the direct dependencies of the configuration: the
	// plain edges followed by the edges of the selected flavor options.
	Dependencies []InstanceDependency
	// Defines and ExternalDependencies are contributed by the selected
	// options of the package's own flavors and flavor extensions.
	Defines              []model.Define
	ExternalDependencies []model.ExternalDependency
	// NotSupported is set when the package or any instance it combines is
	// unsupported on the platform.
	NotSupported bool
}

// InstanceDependency is one edge of an instance, bound to the instance of
// the target that was combined in.
type InstanceDependency struct {
	Target string
	Access model.AccessType
	// Flavor is nil for plain edges.
	Flavor *node.FlavorTag
	// Selections identify the instance of Target.
	Selections []model.FlavorSelection
}

// Selection returns the option chosen for the flavor.
func (i Instance) Selection(id model.FlavorID) (string, bool) {
	for _, sel := range i.Selections {
		if sel.Owner == id.Owner && sel.Flavor == id.Name {
			return sel.Option, true
		}
	}
	return "", false
}

// Description renders the selections as "Owner/Flavor=Option, ...".
func (i Instance) Description() string {
	return describeSelections(i.Selections)
}

func describeSelections(selections []model.FlavorSelection) string {
	parts := make([]string, 0, len(selections))
	for _, sel := range selections {
		parts = append(parts, fmt.Sprintf("%s/%s=%s", sel.Owner, sel.Flavor, sel.Option))
	}
	return strings.Join(parts, ", ")
}

// instanceState is a partial configuration while the choices of one package
// are enumerated. Every step works on its own copy.
type instanceState struct {
	selections   map[model.FlavorID]string
	pins         map[model.FlavorID]string
	deps         []InstanceDependency
	defines      []model.Define
	externals    []model.ExternalDependency
	notSupported bool
}

func (s instanceState) clone() instanceState {
	return instanceState{
		selections:   maps.Clone(s.selections),
		pins:         maps.Clone(s.pins),
		deps:         slices.Clone(s.deps),
		defines:      slices.Clone(s.defines),
		externals:    slices.Clone(s.externals),
		notSupported: s.notSupported,
	}
}

// merge adds the entries of src to dst and reports false on the first flavor
// that already holds a different option.
func merge(dst map[model.FlavorID]string, src map[model.FlavorID]string) bool {
	for id, option := range src {
		if existing, ok := dst[id]; ok && existing != option {
			return false
		}
		dst[id] = option
	}
	return true
}

// satisfies reports whether no selection contradicts a pin.
func (s instanceState) satisfies() bool {
	for id, option := range s.pins {
		if selected, ok := s.selections[id]; ok && selected != option {
			return false
		}
	}
	return true
}

// flavorChoice is one flavor the package itself selects an option of: one of
// its own flavors or a flavor it extends.
type flavorChoice struct {
	id      model.FlavorID
	options []model.FlavorOption
}

type instanceBuilder struct {
	pkg       *buildorder.OrderedPackage
	choices   []flavorChoice
	instances map[string][]Instance
	out       []Instance
}

// resolveInstances enumerates the flavor configurations of every package in
// build order. A package combines one instance of each plain dependency,
// then picks an option for each of its flavors and extended flavors and
// combines one instance of each dependency of the picked option. Candidates
// whose selections disagree or that violate a pin are dropped.
func resolveInstances(ctx context.Context, packages []*buildorder.OrderedPackage, order *buildorder.Order) (map[string][]Instance, error) {
	logger := ctxlog.FromContext(ctx)
	instances := make(map[string][]Instance, len(packages))
	for _, p := range packages {
		if p.IsTopLevel() {
			continue
		}
		b := &instanceBuilder{pkg: p, choices: flavorChoices(p, order), instances: instances}
		out, err := b.build()
		if err != nil {
			return nil, err
		}
		instances[p.Name] = out
		if len(out) > 1 {
			logger.Debug("Resolve: Flavor instances generated.", "package", p.Name, "instance_count", len(out))
		}
	}
	return instances, nil
}

func flavorChoices(p *buildorder.OrderedPackage, order *buildorder.Order) []flavorChoice {
	var choices []flavorChoice
	for _, flavor := range p.Package.Flavors {
		choices = append(choices, flavorChoice{
			id:      model.FlavorID{Owner: p.Name, Name: flavor.Name},
			options: flavor.Options,
		})
	}
	for _, ext := range p.Package.FlavorExtensions {
		merged, ok := order.Flavor(ext.ID())
		if !ok {
			continue
		}
		choice := flavorChoice{id: ext.ID()}
		for _, name := range merged.OptionNames() {
			option := model.FlavorOption{Name: name}
			for _, extOption := range ext.Options {
				if extOption.Name == name {
					option = extOption
				}
			}
			choice.options = append(choice.options, option)
		}
		choices = append(choices, choice)
	}
	return choices
}

func (b *instanceBuilder) build() ([]Instance, error) {
	start := instanceState{
		selections:   make(map[model.FlavorID]string),
		pins:         make(map[model.FlavorID]string),
		notSupported: b.pkg.Package.NotSupported,
	}
	err := b.combine(start, b.pkg.PlainDependencies, func(s instanceState) error {
		return b.choose(s, 0)
	})
	if err != nil {
		return nil, err
	}
	if len(b.out) == 0 {
		return nil, &NoInstanceError{Package: b.pkg.Name}
	}
	return b.out, nil
}

// combine binds deps[0] to each compatible instance of its target in turn and
// continues with the rest.
func (b *instanceBuilder) combine(s instanceState, deps []node.Dependency, next func(instanceState) error) error {
	if len(deps) == 0 {
		return next(s)
	}
	dep := deps[0]
	pins := make(map[model.FlavorID]string, len(dep.Constraints))
	for _, sel := range dep.Constraints {
		pins[model.FlavorID{Owner: sel.Owner, Name: sel.Flavor}] = sel.Option
	}

	for _, candidate := range b.instances[dep.Target] {
		st := s.clone()
		if !merge(st.pins, pins) {
			continue
		}
		if !merge(st.selections, selectionMap(candidate.Selections)) {
			continue
		}
		if !st.satisfies() {
			continue
		}
		st.deps = append(st.deps, InstanceDependency{
			Target:     dep.Target,
			Access:     dep.Access,
			Flavor:     dep.Flavor,
			Selections: candidate.Selections,
		})
		st.notSupported = st.notSupported || candidate.NotSupported
		if err := b.combine(st, deps[1:], next); err != nil {
			return err
		}
	}
	return nil
}

// choose picks an option for choice i. A flavor already fixed by a combined
// dependency only allows that option.
func (b *instanceBuilder) choose(s instanceState, i int) error {
	if i == len(b.choices) {
		return b.emit(s)
	}
	choice := b.choices[i]
	fixed, isFixed := s.selections[choice.id]
	for _, option := range choice.options {
		if isFixed && option.Name != fixed {
			continue
		}
		if pinned, ok := s.pins[choice.id]; ok && pinned != option.Name {
			continue
		}
		st := s.clone()
		st.selections[choice.id] = option.Name
		st.defines = append(st.defines, option.Defines...)
		st.externals = append(st.externals, option.ExternalDependencies...)
		deps := b.optionDependencies(choice.id, option.Name)
		if err := b.combine(st, deps, func(next instanceState) error {
			return b.choose(next, i+1)
		}); err != nil {
			return err
		}
	}
	return nil
}

func (b *instanceBuilder) optionDependencies(id model.FlavorID, option string) []node.Dependency {
	var deps []node.Dependency
	for _, dep := range b.pkg.Dependencies {
		if dep.Flavor != nil && dep.Flavor.Flavor == id && dep.Flavor.Option == option {
			deps = append(deps, dep)
		}
	}
	return deps
}

func (b *instanceBuilder) emit(s instanceState) error {
	if !s.satisfies() {
		return nil
	}
	if len(b.out) >= MaxInstancesPerPackage {
		return &InstanceLimitError{Package: b.pkg.Name, Limit: MaxInstancesPerPackage}
	}
	b.out = append(b.out, Instance{
		Selections:           sortedSelections(s.selections),
		Dependencies:         s.deps,
		Defines:              s.defines,
		ExternalDependencies: s.externals,
		NotSupported:         s.notSupported,
	})
	return nil
}

func selectionMap(selections []model.FlavorSelection) map[model.FlavorID]string {
	m := make(map[model.FlavorID]string, len(selections))
	for _, sel := range selections {
		m[model.FlavorID{Owner: sel.Owner, Name: sel.Flavor}] = sel.Option
	}
	return m
}

func sortedSelections(m map[model.FlavorID]string) []model.FlavorSelection {
	out := make([]model.FlavorSelection, 0, len(m))
	for id, option := range m {
		out = append(out, model.FlavorSelection{Owner: id.Owner, Flavor: id.Name, Option: option})
	}
	slices.SortFunc(out, func(a, b model.FlavorSelection) int {
		if c := pkgname.Compare(a.Owner, b.Owner); c != 0 {
			return c
		}
		return pkgname.Compare(a.Flavor, b.Flavor)
	})
	return out
}
