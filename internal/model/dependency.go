// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines dependency edges and the flavor selections they may carry.
package model

import "fmt"

// FlavorID identifies a flavor by the package that defines it and its name.
type FlavorID struct {
	Owner string
	Name  string
}

// String renders the id as "Owner/Name".
func (id FlavorID) String() string {
	return fmt.Sprintf("%s/%s", id.Owner, id.Name)
}

// FlavorSelection pins one option of a flavor. An empty Owner refers to the
// target package of the dependency edge carrying the selection.
type FlavorSelection struct {
	Owner  string
	Flavor string
	Option string
}

// ID returns the flavor id of the selection, defaulting the owner.
func (s FlavorSelection) ID(defaultOwner string) FlavorID {
	owner := s.Owner
	if owner == "" {
		owner = defaultOwner
	}
	return FlavorID{Owner: owner, Name: s.Flavor}
}

// String renders the selection the way constraint errors print it.
func (s FlavorSelection) String() string {
	return fmt.Sprintf("'%s'='%s'", s.Flavor, s.Option)
}

// Dependency is a declared edge to another package.
type Dependency struct {
	Name        string
	Access      AccessType
	Constraints []FlavorSelection
}

// ExternalConstraints maps a root package name to the flavor selections an
// outside caller requires for it.
type ExternalConstraints map[string][]FlavorSelection

// HasConstraints reports whether any root is constrained.
func (c ExternalConstraints) HasConstraints() bool {
	for _, selections := range c {
		if len(selections) > 0 {
			return true
		}
	}
	return false
}
