// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the errors returned when merging extensions into flavors
// and variants.
package model

import (
	"fmt"
	"strings"
)

// NotExtensibleError is returned when an extension targets an option group
// that was not declared with AllowExtend.
type NotExtensibleError struct {
	Kind     string // "flavor" or "variant"
	Name     string
	Owner    string
	Extender string
}

func (e *NotExtensibleError) Error() string {
	return fmt.Sprintf("%s '%s' introduced by '%s' is not marked for extend (extended by '%s')", e.Kind, e.Name, e.Owner, e.Extender)
}

// NewOptionsError is returned when an extension names options that the base
// definition does not have.
type NewOptionsError struct {
	Kind     string
	Name     string
	Extender string
	Options  []string
}

func (e *NewOptionsError) Error() string {
	return fmt.Sprintf("%s '%s' extension by '%s' can not introduce new options: %s", e.Kind, e.Name, e.Extender, strings.Join(e.Options, ", "))
}

// OverwriteError is returned when a variant extension redefines a define or
// external dependency the base option already owns.
type OverwriteError struct {
	Variant   string
	Option    string
	Extender  string
	Attribute string // "define" or "external dependency"
	Name      string
}

func (e *OverwriteError) Error() string {
	return fmt.Sprintf("variant '%s' option '%s' extension by '%s' can not overwrite %s '%s'", e.Variant, e.Option, e.Extender, e.Attribute, e.Name)
}
