package buildorder

import (
	"fmt"

	"go.uber.org/multierr"

	"github.com/nxp-imx/gtec-demo-framework-sub000/internal/model"
)

// checkFlavors validates every flavor definition and extension in build
// order and returns the definitions with their extensions merged in. All
// violations are collected.
func checkFlavors(packages []*OrderedPackage) (map[model.FlavorID]model.Flavor, error) {
	var errs error
	defined := make(map[model.FlavorID]model.Flavor)
	for _, p := range packages {
		for _, flavor := range p.Package.Flavors {
			id := model.FlavorID{Owner: p.Name, Name: flavor.Name}
			if _, exists := defined[id]; exists {
				errs = multierr.Append(errs, &FlavorError{Kind: FlavorCollision, Package: p.Name, Flavor: id})
				continue
			}
			if err := flavor.Validate(); err != nil {
				errs = multierr.Append(errs, fmt.Errorf("package '%s': %w", p.Name, err))
				continue
			}
			defined[id] = flavor
		}
	}

	merged := make(map[model.FlavorID]model.Flavor, len(defined))
	for id, flavor := range defined {
		merged[id] = flavor
	}
	for _, p := range packages {
		for _, ext := range p.Package.FlavorExtensions {
			id := ext.ID()
			base, ok := defined[id]
			switch {
			case !ok:
				errs = multierr.Append(errs, &FlavorError{Kind: FlavorUndefined, Package: p.Name, Flavor: id})
			case !base.AllowExtend:
				errs = multierr.Append(errs, &FlavorError{Kind: FlavorNotExtensible, Package: p.Name, Flavor: id})
			default:
				if invalid := base.InvalidExtensionOptions(ext); len(invalid) > 0 {
					errs = multierr.Append(errs, &FlavorError{Kind: FlavorNewOptions, Package: p.Name, Flavor: id, Options: invalid})
					continue
				}
				extended, err := merged[id].Extend(id.Owner, p.Name, ext)
				if err != nil {
					errs = multierr.Append(errs, err)
					continue
				}
				merged[id] = extended
			}
		}
	}
	if errs != nil {
		return nil, errs
	}
	return merged, nil
}
