// Package dag is a small directed graph of string ids used to order packages.
// An edge runs from a dependency to its dependent. The package provides
// reachability (closures), root discovery and a deterministic, explicit-stack
// topological sort that reports the exact cycle path when the graph is not
// acyclic.
//
// Every list returned by this package is ordered with pkgname.Compare, so the
// same graph always yields the same order regardless of insertion order.
package dag
