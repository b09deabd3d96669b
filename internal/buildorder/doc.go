// Package buildorder turns a set of raw packages into one deterministic
// global build order.
//
// Resolve runs a fixed sequence of passes over one package set:
//
//  1. Lookup. Every package becomes a node; duplicate names and dependencies
//     on unknown or non-dependable packages are collected and reported
//     together. Unknown names carry the five closest existing names.
//  2. Flavor edges. Dependencies declared inside flavor options and flavor
//     extension options become edges tagged with their flavor option.
//  3. Local cycle check. Each package's own closure is sorted on its own, so
//     a cycle is reported next to the package that introduces it.
//  4. Virtual top level. All root packages become dependencies of the
//     synthetic SYS_TOPLEVEL package. Roots with external flavor constraints
//     are reached through a synthetic constraint package carrying the pins.
//  5. Global sort over the complete graph.
//  6. Flavor legality. Collisions, extensions of unknown or closed flavors
//     and extensions that invent options are collected and reported together.
//  7. Constraint consistency. Every dependency path of every package is
//     walked; two paths pinning different options of one flavor abort the run.
//
// The returned Order is immutable and is the input of the resolve package.
package buildorder
