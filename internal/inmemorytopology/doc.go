// Package inmemorytopology provides a thread-safe, in-memory implementation
// of the topologystore.Store interface. One store holds the package graph of
// a single resolution run.
package inmemorytopology
