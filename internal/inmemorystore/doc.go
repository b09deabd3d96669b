// Package inmemorystore provides an ephemeral, thread-safe, in-memory
// implementation of the runstore.Store interface.
//
// Platform runs write their state concurrently and every key belongs to one
// goroutine, so the store uses sync.Map instead of a global lock.
package inmemorystore
