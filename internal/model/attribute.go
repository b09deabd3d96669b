// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the per-package attributes that are propagated along the
// build order: preprocessor defines and external library references.
package model

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Define is a preprocessor define declared by a package.
type Define struct {
	Name   string
	Value  string
	Access AccessType
}

// ExternalDependencyType describes what an external dependency provides.
type ExternalDependencyType int

const (
	ExternalStaticLib ExternalDependencyType = iota
	ExternalDynamicLib
	ExternalHeaders
	ExternalAssembly
	ExternalFind
)

var externalDependencyTypeNames = map[ExternalDependencyType]string{
	ExternalStaticLib:  "static_lib",
	ExternalDynamicLib: "dynamic_lib",
	ExternalHeaders:    "headers",
	ExternalAssembly:   "assembly",
	ExternalFind:       "find",
}

// String returns the descriptor spelling.
func (t ExternalDependencyType) String() string {
	if name, ok := externalDependencyTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("ExternalDependencyType(%d)", int(t))
}

// ParseExternalDependencyType parses the descriptor spelling; empty means static_lib.
func ParseExternalDependencyType(s string) (ExternalDependencyType, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if key == "" {
		return ExternalStaticLib, nil
	}
	for t, name := range externalDependencyTypeNames {
		if name == key {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown external dependency type %q", s)
}

// ExternalDependency references a library that is not built from a package
// of its own.
type ExternalDependency struct {
	Name     string
	Type     ExternalDependencyType
	Include  string
	Location string
	Access   AccessType
	// Version is optional.
	Version *semver.Version
}

// ProducesDynamicLib reports whether the reference is a shared library that
// must reach the final link step even through Link-access edges.
func (e ExternalDependency) ProducesDynamicLib() bool {
	return e.Type == ExternalDynamicLib
}

// VersionString returns the version or "" when none was declared.
func (e ExternalDependency) VersionString() string {
	if e.Version == nil {
		return ""
	}
	return e.Version.String()
}
