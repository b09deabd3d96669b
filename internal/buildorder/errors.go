package buildorder

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nxp-imx/gtec-demo-framework-sub000/internal/model"
)

// ErrUsage is returned when a stage is driven out of sequence, for example
// resolving attributes of an order that was never produced by Resolve.
var ErrUsage = errors.New("usage error")

// DependencyNotFoundError reports a dependency on a package that does not
// exist. Flavor and Option are set when the dependency was declared inside a
// flavor option.
type DependencyNotFoundError struct {
	Package    string
	Flavor     string
	Option     string
	Target     string
	Candidates []string
}

func (e *DependencyNotFoundError) Error() string {
	candidates := strings.Join(e.Candidates, ", ")
	if e.Flavor != "" {
		return fmt.Sprintf("package '%s' flavor '%s' option '%s' dependency to '%s' not found, did you mean '%s'",
			e.Package, e.Flavor, e.Option, e.Target, candidates)
	}
	return fmt.Sprintf("package '%s' dependency to '%s' not found, did you mean '%s'", e.Package, e.Target, candidates)
}

// InvalidDependencyTargetError reports a dependency on a package whose type
// can not be depended upon.
type InvalidDependencyTargetError struct {
	Package    string
	Target     string
	TargetType model.PackageType
}

func (e *InvalidDependencyTargetError) Error() string {
	return fmt.Sprintf("package '%s' can not depend on '%s' of type %s", e.Package, e.Target, e.TargetType)
}

// ReservedNameError reports an input package that uses a name or type the
// orchestrator keeps for its synthetic packages.
type ReservedNameError struct {
	Package string
	Type    model.PackageType
}

func (e *ReservedNameError) Error() string {
	if e.Type.IsSynthetic() {
		return fmt.Sprintf("package '%s' uses reserved type %s", e.Package, e.Type)
	}
	return fmt.Sprintf("package name '%s' is reserved", e.Package)
}

// FlavorErrorKind classifies a flavor legality violation.
type FlavorErrorKind int

const (
	FlavorCollision FlavorErrorKind = iota
	FlavorUndefined
	FlavorNotExtensible
	FlavorNewOptions
)

// FlavorError reports one flavor legality violation found by the legality
// pass.
type FlavorError struct {
	Kind    FlavorErrorKind
	Package string
	Flavor  model.FlavorID
	Options []string
}

func (e *FlavorError) Error() string {
	switch e.Kind {
	case FlavorCollision:
		return fmt.Sprintf("flavor '%s' defined by '%s' collides with an earlier definition", e.Flavor.Name, e.Package)
	case FlavorUndefined:
		return fmt.Sprintf("package '%s' extends undefined flavor '%s'", e.Package, e.Flavor)
	case FlavorNotExtensible:
		return fmt.Sprintf("package '%s' extends flavor '%s' which is not marked for extend", e.Package, e.Flavor)
	default:
		return fmt.Sprintf("package '%s' extending flavor '%s' can not introduce new options: %s",
			e.Package, e.Flavor, strings.Join(e.Options, ", "))
	}
}

// ConstraintTargetError reports a flavor pin that names an unknown package,
// flavor or option.
type ConstraintTargetError struct {
	Package   string
	Selection model.FlavorSelection
	// Unknown is "package", "flavor" or "option".
	Unknown string
	// ValidOptions is set when only the option was unknown.
	ValidOptions []string
}

func (e *ConstraintTargetError) Error() string {
	id := e.Selection.ID("")
	switch e.Unknown {
	case "package":
		return fmt.Sprintf("package '%s' constrains unknown package '%s'", e.Package, id.Owner)
	case "flavor":
		return fmt.Sprintf("package '%s' constrains unknown flavor '%s'", e.Package, id)
	default:
		return fmt.Sprintf("package '%s' constrains flavor '%s' to unknown option '%s', valid options: %s",
			e.Package, id, e.Selection.Option, strings.Join(e.ValidOptions, ", "))
	}
}

// ConstraintPin is one flavor pin met while walking a dependency path.
type ConstraintPin struct {
	Option string
	// Path runs from the package being checked to the pinned package.
	Path []string
}

// ConstraintConflict lists every pin on one flavor that disagreed.
type ConstraintConflict struct {
	Flavor model.FlavorID
	Pins   []ConstraintPin
}

// ConstraintConflictError reports a package whose dependency paths pin
// different options of the same flavor.
type ConstraintConflictError struct {
	Package   string
	Conflicts []ConstraintConflict
}

func (e *ConstraintConflictError) Error() string {
	var locations []string
	for _, conflict := range e.Conflicts {
		for _, pin := range conflict.Pins {
			locations = append(locations, fmt.Sprintf("'%s'='%s' at %s", conflict.Flavor.Name, pin.Option, strings.Join(pin.Path, "->")))
		}
	}
	return fmt.Sprintf("Mutually exclusive constraints encountered while resolving '%s' constraints=(%s)",
		e.Package, strings.Join(locations, ", "))
}
