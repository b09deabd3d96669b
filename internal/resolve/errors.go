package resolve

import (
	"fmt"
	"strings"
)

// AttributeCollisionError reports a name that reaches a package from two
// different introducers.
type AttributeCollisionError struct {
	Family  string
	Name    string
	Package string
	// Existing and Incoming are the two introducing packages.
	Existing string
	Incoming string
	// Direct is set when the package declares the name itself.
	Direct bool
}

func (e *AttributeCollisionError) Error() string {
	if e.Direct {
		return fmt.Sprintf("%s '%s' was already defined by '%s'", e.Family, e.Name, e.Package)
	}
	return fmt.Sprintf("%s '%s' in '%s' introduced by both '%s' and '%s'", e.Family, e.Name, e.Package, e.Existing, e.Incoming)
}

// NameCaseCollisionError reports two names that differ only in casing.
type NameCaseCollisionError struct {
	Family  string
	Package string
	Name    string
	Other   string
}

func (e *NameCaseCollisionError) Error() string {
	return fmt.Sprintf("%s '%s' in '%s' collides with '%s' when casing is ignored", e.Family, e.Name, e.Package, e.Other)
}

// UnknownFeatureError reports extension requirements whose feature is not
// used by the package or any of its dependencies.
type UnknownFeatureError struct {
	Package    string
	Extension  string
	Feature    string
	Candidates []string
}

func (e *UnknownFeatureError) Error() string {
	msg := fmt.Sprintf("package '%s' extension '%s' extends unknown feature '%s'", e.Package, e.Extension, e.Feature)
	if len(e.Candidates) > 0 {
		msg += fmt.Sprintf(", did you mean '%s'", strings.Join(e.Candidates, ", "))
	}
	return msg
}

// NoInstanceError reports a package for which every flavor configuration was
// rejected by a selection conflict or a pin.
type NoInstanceError struct {
	Package string
}

func (e *NoInstanceError) Error() string {
	return fmt.Sprintf("package '%s' has no valid flavor configuration", e.Package)
}

// InstanceLimitError reports a package whose flavor configurations exceed
// MaxInstancesPerPackage.
type InstanceLimitError struct {
	Package string
	Limit   int
}

func (e *InstanceLimitError) Error() string {
	return fmt.Sprintf("package '%s' has more than %d flavor configurations", e.Package, e.Limit)
}
