// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines package requirements. A feature requirement states that a
// package uses a named feature (e.g. "OpenGLES"); an extension requirement
// refines a feature that must be in use somewhere below the package.
package model

import "fmt"

// RequirementType is the kind of a requirement.
type RequirementType int

const (
	RequirementFeature RequirementType = iota
	RequirementExtension
)

// String returns the descriptor spelling.
func (t RequirementType) String() string {
	if t == RequirementExtension {
		return "extension"
	}
	return "feature"
}

// ParseRequirementType parses "feature" (default) or "extension".
func ParseRequirementType(s string) (RequirementType, error) {
	switch s {
	case "", "feature":
		return RequirementFeature, nil
	case "extension":
		return RequirementExtension, nil
	default:
		return 0, fmt.Errorf("unknown requirement type %q", s)
	}
}

// Requirement is a feature used by a package or an extension of one.
type Requirement struct {
	Name    string
	Type    RequirementType
	Extends string
}
