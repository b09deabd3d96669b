// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package model provides the raw, format-agnostic representation of package
// descriptors. It is the first stage of the resolution pipeline:
//
//	RawPackage -> node.Node (sealed) -> buildorder.OrderedPackage -> resolve.ResolvedPackage
//
// # Core Concepts
//
//   - RawPackage: one package as declared by its descriptor, already flattened
//     for a single platform. It names its dependencies, flavors, flavor
//     extensions, defines, external dependencies, variants and requirements.
//
//   - Dependency: an edge to another package with an access level and an
//     optional list of flavor selections that pin options for the subgraph
//     reached through the edge.
//
//   - Flavor: a named, package-scoped group of mutually exclusive options. A
//     flavor marked AllowExtend may be extended by other packages, which may
//     add dependencies and defines to existing options but never new options.
//
//   - Variant: a named option group that travels with the attribute sets and
//     is merged along the build order.
//
// Values of this package are built once by a loader and are read-only
// afterwards. Later stages never mutate them; they derive new stage types.
package model
