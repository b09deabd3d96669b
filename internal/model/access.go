// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines access levels of dependency edges and propagated attributes.
package model

import (
	"fmt"
	"strings"
)

// AccessType is the visibility of a dependency or attribute. Lower values are
// more open: Public < Private < Link.
type AccessType int

const (
	AccessPublic AccessType = iota
	AccessPrivate
	// AccessLink marks pass-through linkage; the dependency is linked but its
	// headers and defines are not visible.
	AccessLink
)

// String returns the descriptor spelling of the access level.
func (a AccessType) String() string {
	switch a {
	case AccessPublic:
		return "public"
	case AccessPrivate:
		return "private"
	case AccessLink:
		return "link"
	default:
		return fmt.Sprintf("AccessType(%d)", int(a))
	}
}

// MoreOpenThan reports whether a is strictly more open than other.
func (a AccessType) MoreOpenThan(other AccessType) bool {
	return a < other
}

// ParseAccessType parses an access level. An empty string means public.
func ParseAccessType(s string) (AccessType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "public":
		return AccessPublic, nil
	case "private":
		return AccessPrivate, nil
	case "link":
		return AccessLink, nil
	default:
		return 0, fmt.Errorf("unknown access type %q", s)
	}
}
