package buildorder

import (
	"context"
	"fmt"
	"slices"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/multierr"

	"github.com/nxp-imx/gtec-demo-framework-sub000/internal/ctxlog"
	"github.com/nxp-imx/gtec-demo-framework-sub000/internal/graph"
	"github.com/nxp-imx/gtec-demo-framework-sub000/internal/inmemorytopology"
	"github.com/nxp-imx/gtec-demo-framework-sub000/internal/model"
	"github.com/nxp-imx/gtec-demo-framework-sub000/internal/node"
	"github.com/nxp-imx/gtec-demo-framework-sub000/internal/pkgname"
)

var tracer = otel.Tracer("buildorder")

// Options tune a single Resolve call.
type Options struct {
	// ExternalConstraints pins flavor options on root packages.
	ExternalConstraints model.ExternalConstraints
	// Narrowed marks a deliberately requested subset of packages.
	Narrowed bool
	// Namer names synthetic packages. A private namer is used when nil.
	Namer Namer
	// Graph receives the nodes. An in-memory graph is used when nil.
	Graph graph.Graph
}

// Resolve computes the global build order of packages. The context must
// carry a logger.
func Resolve(ctx context.Context, packages []*model.RawPackage, opts Options) (*Order, error) {
	ctx, span := tracer.Start(ctx, "buildorder.Resolve",
		trace.WithAttributes(
			attribute.Int("buildorder.package_count", len(packages)),
			attribute.Bool("buildorder.narrowed", opts.Narrowed),
		),
	)
	defer span.End()

	order, err := newResolver(packages, opts).run(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Int("buildorder.ordered_count", len(order.packages)))
	span.SetStatus(codes.Ok, "")
	return order, nil
}

type resolver struct {
	packages []*model.RawPackage
	opts     Options
	graph    graph.Graph
	namer    Namer
	lookup   map[string]*model.RawPackage
}

func newResolver(packages []*model.RawPackage, opts Options) *resolver {
	r := &resolver{
		packages: slices.Clone(packages),
		opts:     opts,
		graph:    opts.Graph,
		namer:    opts.Namer,
		lookup:   make(map[string]*model.RawPackage, len(packages)+1),
	}
	if r.graph == nil {
		r.graph = graph.New(inmemorytopology.New())
	}
	if r.namer == nil {
		r.namer = newLocalNamer()
	}
	slices.SortStableFunc(r.packages, func(a, b *model.RawPackage) int {
		return pkgname.Compare(a.Name, b.Name)
	})
	return r
}

func (r *resolver) run(ctx context.Context) (*Order, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("BuildOrder: Resolving build order.", "package_count", len(r.packages))

	if err := r.createNodes(ctx); err != nil {
		return nil, err
	}
	nodes := r.graph.AllNodes(ctx)
	for _, n := range nodes {
		if err := r.graph.Link(ctx, n.Name()); err != nil {
			return nil, err
		}
	}

	if err := r.checkLocalCycles(ctx, nodes); err != nil {
		return nil, err
	}

	if err := r.addTopLevel(ctx); err != nil {
		return nil, err
	}

	names, err := r.graph.BuildOrder(ctx)
	if err != nil {
		return nil, err
	}
	order, err := r.assemble(ctx, names)
	if err != nil {
		return nil, err
	}
	logger.Debug("BuildOrder: Global order computed.", "package_count", len(names))

	flavors, err := checkFlavors(order.packages)
	if err != nil {
		return nil, err
	}
	order.flavors = flavors

	if err := validateConstraints(order); err != nil {
		return nil, err
	}

	order.complete = true
	logger.Info("BuildOrder: Build order resolved.", "package_count", len(order.packages), "flavor_count", len(flavors))
	return order, nil
}

// createNodes registers one sealed node per input package. Every lookup
// failure is collected before returning.
func (r *resolver) createNodes(ctx context.Context) error {
	var errs error
	var nodes []*node.Node
	for _, pkg := range r.packages {
		if pkg.Name == TopLevelName || pkg.Type.IsSynthetic() {
			errs = multierr.Append(errs, &ReservedNameError{Package: pkg.Name, Type: pkg.Type})
			continue
		}
		if _, err := pkgname.Parse(pkg.Name); err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		n := node.New(pkg)
		if err := r.graph.Add(ctx, n); err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		r.lookup[pkg.Name] = pkg
		nodes = append(nodes, n)
	}

	for _, n := range nodes {
		errs = multierr.Append(errs, r.resolveDependencies(n))
		n.Seal()
	}
	return errs
}

func (r *resolver) resolveDependencies(n *node.Node) error {
	pkg := n.Package()
	var errs error
	add := func(dep model.Dependency, tag *node.FlavorTag) {
		if err := r.checkTarget(pkg.Name, dep.Name, tag); err != nil {
			errs = multierr.Append(errs, err)
			return
		}
		errs = multierr.Append(errs, n.AddDependency(node.Dependency{
			Target:      dep.Name,
			Access:      dep.Access,
			Flavor:      tag,
			Constraints: normalizeSelections(dep),
		}))
	}

	for _, dep := range pkg.Dependencies {
		add(dep, nil)
	}
	for _, flavor := range pkg.Flavors {
		id := model.FlavorID{Owner: pkg.Name, Name: flavor.Name}
		for _, option := range flavor.Options {
			for _, dep := range option.Dependencies {
				add(dep, &node.FlavorTag{Flavor: id, Option: option.Name})
			}
		}
	}
	for _, ext := range pkg.FlavorExtensions {
		for _, option := range ext.Options {
			for _, dep := range option.Dependencies {
				add(dep, &node.FlavorTag{Flavor: ext.ID(), Option: option.Name})
			}
		}
	}
	return errs
}

func (r *resolver) checkTarget(from, target string, tag *node.FlavorTag) error {
	dep, ok := r.lookup[target]
	if !ok {
		err := &DependencyNotFoundError{
			Package:    from,
			Target:     target,
			Candidates: Suggest(target, r.knownNames()),
		}
		if tag != nil {
			err.Flavor = tag.Flavor.Name
			err.Option = tag.Option
		}
		return err
	}
	if !dep.Type.CanBeDependedOn() {
		return &InvalidDependencyTargetError{Package: from, Target: target, TargetType: dep.Type}
	}
	return nil
}

func (r *resolver) knownNames() []string {
	names := make([]string, 0, len(r.lookup))
	for name := range r.lookup {
		names = append(names, name)
	}
	pkgname.Sort(names)
	return names
}

// normalizeSelections fills in the owner of every pin on dep.
func normalizeSelections(dep model.Dependency) []model.FlavorSelection {
	if len(dep.Constraints) == 0 {
		return nil
	}
	out := make([]model.FlavorSelection, 0, len(dep.Constraints))
	for _, sel := range dep.Constraints {
		sel.Owner = sel.ID(dep.Name).Owner
		out = append(out, sel)
	}
	return out
}

func (r *resolver) checkLocalCycles(ctx context.Context, nodes []*node.Node) error {
	for _, n := range nodes {
		if _, err := r.graph.LocalBuildOrder(ctx, n.Name()); err != nil {
			return fmt.Errorf("checking dependencies of '%s': %w", n.Name(), err)
		}
	}
	return nil
}

// addTopLevel attaches every root to the virtual top level, inserting a
// constraint package in front of each root the caller pinned flavors on.
func (r *resolver) addTopLevel(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	roots := r.graph.Roots(ctx)
	if len(roots) == 0 && len(r.lookup) > 0 {
		// Every package has a dependent, so the graph must be cyclic.
		err := r.graph.DetectCycles(ctx)
		if err == nil {
			err = fmt.Errorf("no root packages found among %d packages", len(r.lookup))
		}
		return err
	}

	if r.opts.ExternalConstraints.HasConstraints() {
		for name := range r.opts.ExternalConstraints {
			if !slices.Contains(roots, name) {
				logger.Warn("BuildOrder: External flavor constraint ignored, package is not a root.", "package", name)
			}
		}
	}

	top := &model.RawPackage{Name: TopLevelName, Type: model.PackageTypeTopLevel, Virtual: true}
	topNode := node.New(top)
	for _, root := range roots {
		target := root
		if selections := r.opts.ExternalConstraints[root]; len(selections) > 0 {
			constraint, err := r.addConstraintPackage(ctx, root, selections)
			if err != nil {
				return err
			}
			target = constraint
		}
		top.Dependencies = append(top.Dependencies, model.Dependency{Name: target, Access: model.AccessPublic})
		if err := topNode.AddDependency(node.Dependency{Target: target, Access: model.AccessPublic}); err != nil {
			return err
		}
	}
	topNode.Seal()
	if err := r.graph.Add(ctx, topNode); err != nil {
		return err
	}
	r.lookup[TopLevelName] = top
	logger.Debug("BuildOrder: Virtual top level created.", "root_count", len(roots))
	return r.graph.Link(ctx, TopLevelName)
}

func (r *resolver) addConstraintPackage(ctx context.Context, root string, selections []model.FlavorSelection) (string, error) {
	name := r.namer.SyntheticName(constraintNamePrefix + root)
	for r.lookup[name] != nil {
		name = r.namer.SyntheticName(constraintNamePrefix + root)
	}
	dep := model.Dependency{Name: root, Access: model.AccessPublic, Constraints: slices.Clone(selections)}
	pkg := &model.RawPackage{
		Name:         name,
		Type:         model.PackageTypeExternalFlavorConstraint,
		Virtual:      true,
		Dependencies: []model.Dependency{dep},
	}
	n := node.New(pkg)
	if err := n.AddDependency(node.Dependency{Target: root, Access: model.AccessPublic, Constraints: normalizeSelections(dep)}); err != nil {
		return "", err
	}
	n.Seal()
	if err := r.graph.Add(ctx, n); err != nil {
		return "", err
	}
	r.lookup[name] = pkg
	ctxlog.FromContext(ctx).Debug("BuildOrder: External flavor constraint applied.", "package", root, "constraint_package", name, "selection_count", len(selections))
	return name, r.graph.Link(ctx, name)
}

// assemble turns the sorted names into ordered packages.
func (r *resolver) assemble(ctx context.Context, names []string) (*Order, error) {
	order := &Order{
		packages: make([]*OrderedPackage, 0, len(names)),
		index:    make(map[string]*OrderedPackage, len(names)),
		narrowed: r.opts.Narrowed,
	}
	position := make(map[string]int, len(names))
	for i, name := range names {
		position[name] = i
	}
	byPosition := func(a, b string) int { return position[a] - position[b] }

	for i, name := range names {
		n, ok := r.graph.Node(ctx, name)
		if !ok {
			return nil, fmt.Errorf("internal inconsistency: ordered package '%s' missing from graph", name)
		}
		closure, err := r.graph.ClosureOrder(ctx, name)
		if err != nil {
			return nil, err
		}
		slices.SortFunc(closure, byPosition)
		depNodes, err := r.graph.DependenciesOf(ctx, name)
		if err != nil {
			return nil, err
		}
		direct := make([]string, 0, len(depNodes))
		for _, dep := range depNodes {
			direct = append(direct, dep.Name())
		}
		slices.SortFunc(direct, byPosition)

		p := &OrderedPackage{
			Name:               name,
			Package:            n.Package(),
			BuildIndex:         i,
			Dependencies:       n.Dependencies(),
			PlainDependencies:  n.PlainDependencies(),
			DirectDependencies: direct,
			AllDependencies:    slices.Clone(closure[:len(closure)-1]),
			BuildOrder:         closure,
		}
		order.packages = append(order.packages, p)
		order.index[name] = p
	}
	return order, nil
}
