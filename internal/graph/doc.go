// Package graph provides a single facade over the two structures that make up
// a package graph during one resolution run:
//
//   - the topology store (topologystore.Store), which owns the sealed nodes
//     and answers name lookups;
//   - the dag.Graph, which owns ordering and cycle detection.
//
// The build-order pass adds every node first, seals it, and then links it,
// so the two structures never disagree about which edges exist.
//
//	┌─────────────────────────────────────┐
//	│            graph.Manager            │
//	└──────────┬────────────┬─────────────┘
//	           │            │
//	           ▼            ▼
//	  ┌────────────┐  ┌────────────┐
//	  │  Topology  │  │    DAG     │
//	  │   Store    │  │  (ordering)│
//	  └────────────┘  └────────────┘
package graph
