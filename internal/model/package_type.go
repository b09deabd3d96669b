// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the closed set of package types.
package model

import (
	"fmt"
	"strings"
)

// PackageType classifies a package.
type PackageType int

const (
	PackageTypeTopLevel PackageType = iota
	PackageTypeLibrary
	PackageTypeExecutable
	PackageTypeExternalLibrary
	PackageTypeHeaderLibrary
	PackageTypeToolRecipe
	// PackageTypeExternalFlavorConstraint is synthesized by the build-order
	// orchestrator and never produced by a loader.
	PackageTypeExternalFlavorConstraint
)

var packageTypeNames = map[PackageType]string{
	PackageTypeTopLevel:                 "top_level",
	PackageTypeLibrary:                  "library",
	PackageTypeExecutable:               "executable",
	PackageTypeExternalLibrary:          "external_library",
	PackageTypeHeaderLibrary:            "header_library",
	PackageTypeToolRecipe:               "tool_recipe",
	PackageTypeExternalFlavorConstraint: "external_flavor_constraint",
}

// String returns the descriptor spelling of the type.
func (t PackageType) String() string {
	if name, ok := packageTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("PackageType(%d)", int(t))
}

// CanBeDependedOn reports whether other packages may declare a dependency on
// a package of this type.
func (t PackageType) CanBeDependedOn() bool {
	switch t {
	case PackageTypeLibrary, PackageTypeExternalLibrary, PackageTypeHeaderLibrary, PackageTypeToolRecipe:
		return true
	default:
		return false
	}
}

// IsSynthetic reports whether the type only exists inside the orchestrator.
func (t PackageType) IsSynthetic() bool {
	return t == PackageTypeTopLevel || t == PackageTypeExternalFlavorConstraint
}

// ParsePackageType parses the descriptor spelling of a package type. The
// synthetic types can not be declared.
func ParsePackageType(s string) (PackageType, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for t, name := range packageTypeNames {
		if name == key && !t.IsSynthetic() {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown package type %q", s)
}
