// This file translates the HCL schema structs into the format-agnostic
// descriptor model of the config package.

package hcl_adapter

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/Masterminds/semver/v3"
	"go.uber.org/multierr"

	"github.com/nxp-imx/gtec-demo-framework-sub000/internal/config"
	"github.com/nxp-imx/gtec-demo-framework-sub000/internal/ctxlog"
	"github.com/nxp-imx/gtec-demo-framework-sub000/internal/model"
)

// translatePackage converts one package block. Every invalid value in the
// block is reported, not just the first.
func (l *Loader) translatePackage(ctx context.Context, file string, b *packageBlock) (*config.PackageDescriptor, error) {
	logger := ctxlog.FromContext(ctx).With("package", b.Name)
	ctx = ctxlog.WithLogger(ctx, logger)
	logger.Debug("HCL: Translating package block.")

	var errs error
	pkgType, err := model.ParsePackageType(b.Type)
	errs = multierr.Append(errs, err)

	common, err := translateSection(ctx, b.section())
	errs = multierr.Append(errs, err)
	dir := filepath.Dir(file)
	anchorSection(dir, &common)

	desc := &config.PackageDescriptor{
		Name:        b.Name,
		Type:        pkgType,
		Namespace:   b.Namespace,
		Virtual:     b.Virtual,
		UnitTest:    b.UnitTest,
		IncludePath: anchorPath(dir, b.IncludePath),
		SourcePath:  anchorPath(dir, b.SourcePath),
		File:        file,
		Common:      common,
		Platforms:   make(map[string]*config.PlatformSection, len(b.Platforms)),
	}
	for _, platform := range b.Platforms {
		if _, ok := desc.Platforms[platform.Name]; ok {
			errs = multierr.Append(errs, fmt.Errorf("platform '%s' declared more than once", platform.Name))
			continue
		}
		section, err := translateSection(ctx, platform.section())
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("platform '%s': %w", platform.Name, err))
		}
		anchorSection(dir, &section)
		desc.Platforms[platform.Name] = &config.PlatformSection{Section: section, NotSupported: platform.NotSupported}
	}

	if errs != nil {
		return nil, fmt.Errorf("%s: package '%s': %w", file, b.Name, errs)
	}
	return desc, nil
}

func translateSection(ctx context.Context, s sectionBlocks) (config.Section, error) {
	var section config.Section
	var errs error

	deps, err := translateDependencies(s.Dependencies)
	errs = multierr.Append(errs, err)
	section.Dependencies = deps

	defines, err := translateDefines(ctx, s.Defines)
	errs = multierr.Append(errs, err)
	section.Defines = defines

	externals, err := translateExternals(s.Externals)
	errs = multierr.Append(errs, err)
	section.ExternalDependencies = externals

	for _, v := range s.Variants {
		variant, err := translateVariant(ctx, v)
		errs = multierr.Append(errs, err)
		section.Variants = append(section.Variants, variant)
	}
	for _, f := range s.Flavors {
		flavor, err := translateFlavor(ctx, f)
		errs = multierr.Append(errs, err)
		section.Flavors = append(section.Flavors, flavor)
	}
	for _, e := range s.FlavorExtensions {
		options, err := translateFlavorOptions(ctx, e.Options)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("extend_flavor '%s/%s': %w", e.Owner, e.Name, err))
		}
		section.FlavorExtensions = append(section.FlavorExtensions, model.FlavorExtension{Owner: e.Owner, Name: e.Name, Options: options})
	}
	for _, r := range s.Requirements {
		reqType, err := model.ParseRequirementType(r.Type)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("requirement '%s': %w", r.Name, err))
		}
		section.Requirements = append(section.Requirements, model.Requirement{Name: r.Name, Type: reqType, Extends: r.Extends})
	}
	return section, errs
}

func translateDependencies(blocks []*dependencyBlock) ([]model.Dependency, error) {
	var deps []model.Dependency
	var errs error
	for _, b := range blocks {
		access, err := model.ParseAccessType(b.Access)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("dependency '%s': %w", b.Name, err))
		}
		dep := model.Dependency{Name: b.Name, Access: access}
		for _, c := range b.Constraints {
			dep.Constraints = append(dep.Constraints, model.FlavorSelection{Owner: c.Owner, Flavor: c.Flavor, Option: c.Option})
		}
		deps = append(deps, dep)
	}
	return deps, errs
}

func translateDefines(ctx context.Context, blocks []*defineBlock) ([]model.Define, error) {
	var defines []model.Define
	var errs error
	for _, b := range blocks {
		access, err := model.ParseAccessType(b.Access)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("define '%s': %w", b.Name, err))
		}
		value, err := primitiveString(ctx, b.Value, "value")
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("define '%s': %w", b.Name, err))
		}
		defines = append(defines, model.Define{Name: b.Name, Value: value, Access: access})
	}
	return defines, errs
}

func translateExternals(blocks []*externalBlock) ([]model.ExternalDependency, error) {
	var externals []model.ExternalDependency
	var errs error
	for _, b := range blocks {
		extType, err := model.ParseExternalDependencyType(b.Type)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("external '%s': %w", b.Name, err))
		}
		access, err := model.ParseAccessType(b.Access)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("external '%s': %w", b.Name, err))
		}
		ext := model.ExternalDependency{
			Name:     b.Name,
			Type:     extType,
			Include:  b.Include,
			Location: b.Location,
			Access:   access,
		}
		if b.Version != "" {
			version, err := semver.NewVersion(b.Version)
			if err != nil {
				errs = multierr.Append(errs, fmt.Errorf("external '%s': invalid version '%s': %w", b.Name, b.Version, err))
			}
			ext.Version = version
		}
		externals = append(externals, ext)
	}
	return externals, errs
}

func translateVariant(ctx context.Context, b *variantBlock) (model.Variant, error) {
	var errs error
	groupType, err := model.ParseOptionGroupType(b.Type)
	errs = multierr.Append(errs, err)

	variant := model.Variant{Name: b.Name, Type: groupType, AllowExtend: b.AllowExtend}
	for _, o := range b.Options {
		defines, err := translateDefines(ctx, o.Defines)
		errs = multierr.Append(errs, err)
		externals, err := translateExternals(o.Externals)
		errs = multierr.Append(errs, err)
		variant.Options = append(variant.Options, model.VariantOption{Name: o.Name, Defines: defines, ExternalDependencies: externals})
	}
	if errs != nil {
		return variant, fmt.Errorf("variant '%s': %w", b.Name, errs)
	}
	return variant, nil
}

func translateFlavor(ctx context.Context, b *flavorBlock) (model.Flavor, error) {
	var errs error
	groupType, err := model.ParseOptionGroupType(b.Type)
	errs = multierr.Append(errs, err)
	options, err := translateFlavorOptions(ctx, b.Options)
	errs = multierr.Append(errs, err)

	flavor := model.Flavor{Name: b.Name, Type: groupType, AllowExtend: b.AllowExtend, Options: options}
	if errs != nil {
		return flavor, fmt.Errorf("flavor '%s': %w", b.Name, errs)
	}
	return flavor, nil
}

func translateFlavorOptions(ctx context.Context, blocks []*flavorOptionBlock) ([]model.FlavorOption, error) {
	var options []model.FlavorOption
	var errs error
	for _, b := range blocks {
		deps, err := translateDependencies(b.Dependencies)
		errs = multierr.Append(errs, err)
		defines, err := translateDefines(ctx, b.Defines)
		errs = multierr.Append(errs, err)
		externals, err := translateExternals(b.Externals)
		errs = multierr.Append(errs, err)
		options = append(options, model.FlavorOption{
			Name:                 b.Name,
			Dependencies:         deps,
			Defines:              defines,
			ExternalDependencies: externals,
		})
	}
	return options, errs
}

// anchorPath resolves a relative descriptor path against the directory of
// the descriptor file.
func anchorPath(dir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	joined := filepath.Join(dir, path)
	if abs, err := filepath.Abs(joined); err == nil {
		return abs
	}
	return joined
}

// anchorSection rewrites the external include paths of a section in place.
func anchorSection(dir string, s *config.Section) {
	anchorExternals := func(externals []model.ExternalDependency) {
		for i := range externals {
			externals[i].Include = anchorPath(dir, externals[i].Include)
		}
	}
	anchorExternals(s.ExternalDependencies)
	for _, variant := range s.Variants {
		for _, option := range variant.Options {
			anchorExternals(option.ExternalDependencies)
		}
	}
	for _, flavor := range s.Flavors {
		for _, option := range flavor.Options {
			anchorExternals(option.ExternalDependencies)
		}
	}
	for _, ext := range s.FlavorExtensions {
		for _, option := range ext.Options {
			anchorExternals(option.ExternalDependencies)
		}
	}
}
