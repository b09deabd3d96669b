// Package report renders a resolved package set for downstream consumers:
// a structured document written as YAML or JSON, and a Graphviz DOT view of
// the package graph.
package report
