// Package resolve propagates per-package attributes along a finished build
// order.
//
// Each attribute family (defines, external dependencies, include directories,
// variants) is one pass that visits the packages strictly in build order, so
// every dependency is complete before its dependents read it. Within a
// package the own declarations are folded together with the public set of
// each direct dependency, arriving at the access level of the edge:
//
//   - a new name is added;
//   - the same introducer arriving at a more open level replaces the entry;
//   - the same introducer at an equal or narrower level is ignored;
//   - a different introducer is a collision.
//
// Link edges carry nothing except dynamic libraries of the external
// dependency family, which must still reach the final link step.
//
// Requirements and platform support are resolved the same way in two extra
// passes. The result is a read-only ResolvedPackage per ordered package.
package resolve
