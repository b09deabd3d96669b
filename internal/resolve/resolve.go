package resolve

import (
	"context"
	"fmt"
	"slices"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/nxp-imx/gtec-demo-framework-sub000/internal/buildorder"
	"github.com/nxp-imx/gtec-demo-framework-sub000/internal/ctxlog"
	"github.com/nxp-imx/gtec-demo-framework-sub000/internal/model"
)

var tracer = otel.Tracer("resolve")

// ResolvedPackage is the final, read-only view of one package. The embedded
// OrderedPackage provides the build order and dependency lists.
type ResolvedPackage struct {
	*buildorder.OrderedPackage

	Defines              AttributeSet[model.Define]
	ExternalDependencies AttributeSet[model.ExternalDependency]
	IncludeDirs          AttributeSet[string]
	Variants             VariantSet
	Requirements         RequirementSet
	// Instances are the flavor configurations of the package. The top level
	// has none.
	Instances []Instance

	// DirectNotSupported is the package's own platform flag. NotSupported
	// also covers the plain dependencies and is set when every instance is
	// unsupported.
	DirectNotSupported bool
	NotSupported       bool
}

// Result holds every resolved package of one order.
type Result struct {
	order    *buildorder.Order
	packages []*ResolvedPackage
	index    map[string]*ResolvedPackage
}

// Order returns the build order the result was computed from.
func (r *Result) Order() *buildorder.Order {
	return r.order
}

// Packages returns the resolved packages in build order.
func (r *Result) Packages() []*ResolvedPackage {
	return slices.Clone(r.packages)
}

// Package looks up a resolved package by name.
func (r *Result) Package(name string) (*ResolvedPackage, bool) {
	p, ok := r.index[name]
	return p, ok
}

// Resolve runs every attribute pass over a completed order. An order that
// was not produced by a successful buildorder.Resolve is rejected with
// buildorder.ErrUsage.
func Resolve(ctx context.Context, order *buildorder.Order) (*Result, error) {
	if !order.Complete() {
		return nil, fmt.Errorf("resolving attributes before the build order is complete: %w", buildorder.ErrUsage)
	}

	packages := order.Packages()
	ctx, span := tracer.Start(ctx, "resolve.Resolve",
		trace.WithAttributes(attribute.Int("resolve.package_count", len(packages))),
	)
	defer span.End()

	result, err := resolveAll(ctx, order, packages)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetStatus(codes.Ok, "")
	return result, nil
}

func resolveAll(ctx context.Context, order *buildorder.Order, packages []*buildorder.OrderedPackage) (*Result, error) {
	logger := ctxlog.FromContext(ctx)

	defines, err := resolveDefines(packages)
	if err != nil {
		return nil, err
	}
	logger.Debug("Resolve: Defines propagated.")

	externals, err := resolveExternalDependencies(packages)
	if err != nil {
		return nil, err
	}
	logger.Debug("Resolve: External dependencies propagated.")

	includes, err := resolveIncludeDirs(packages, order)
	if err != nil {
		return nil, err
	}
	logger.Debug("Resolve: Include directories propagated.")

	variants, err := resolveVariants(packages, order)
	if err != nil {
		return nil, err
	}
	logger.Debug("Resolve: Variants merged.")

	requirements, err := resolveRequirements(ctx, packages, order.Narrowed())
	if err != nil {
		return nil, err
	}

	instances, err := resolveInstances(ctx, packages, order)
	if err != nil {
		return nil, err
	}

	result := &Result{
		order:    order,
		packages: make([]*ResolvedPackage, 0, len(packages)),
		index:    make(map[string]*ResolvedPackage, len(packages)),
	}
	for _, p := range packages {
		notSupported := p.Package.NotSupported
		for _, dep := range p.PlainDependencies {
			if result.index[dep.Target].NotSupported {
				notSupported = true
			}
		}
		if len(instances[p.Name]) > 0 && !slices.ContainsFunc(instances[p.Name], func(i Instance) bool { return !i.NotSupported }) {
			notSupported = true
		}
		rp := &ResolvedPackage{
			OrderedPackage:       p,
			Defines:              defines[p.Name],
			ExternalDependencies: externals[p.Name],
			IncludeDirs:          includes[p.Name],
			Variants:             variants[p.Name],
			Requirements:         requirements[p.Name],
			Instances:            instances[p.Name],
			DirectNotSupported:   p.Package.NotSupported,
			NotSupported:         notSupported,
		}
		result.packages = append(result.packages, rp)
		result.index[p.Name] = rp
	}

	logger.Info("Resolve: Attributes resolved.", "package_count", len(result.packages))
	return result, nil
}
