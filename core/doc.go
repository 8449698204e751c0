// Package core provides the immutable in-memory model used by every kernel
// in graphkke: graphs, rooted trees and ordered datasets of them.
//
// A Graph G = (V,E) is assembled with a Builder and validated once, at
// Build time. After that it never changes:
//
//   - Node IDs are caller-supplied integers; internally every node gets a
//     dense index 0..n-1 in insertion order (arena layout).
//   - Adjacency is stored as CSR arrays (offsets/targets/weights) with every
//     neighbor segment sorted by index, so HasEdge is O(log d) and all
//     iteration orders are deterministic.
//   - Undirected edges are mirrored into both endpoints' segments.
//   - Any "edit" (for example WithRoot) returns a new *Graph that shares the
//     immutable arrays of the original.
//
// Because nothing mutates after validation, a *Graph or *Dataset may be read
// from any number of goroutines without locks.
//
// Construction options (GraphOption):
//
//	– WithDirected()                 one-way edges (default: undirected)
//	– WithLoops()                    permit self-loops (never in trees)
//	– WithDuplicatePolicy(p)         DuplicateReject (default) | Sum | Min | Max
//
// Edge options (EdgeOption):
//
//	– WithWeight(w)                  scalar weight, default 1.0
//	– WithEdgeLabel(s)               optional edge type
//
// Trees:
//
//	b.BuildTree(rootID) validates one root, |E| = |V|-1, no cycle and full
//	connectivity, then attaches a Tree view (parent, children, post-order,
//	depth). g.Tree() returns (view, true) for such graphs.
//
// Errors:
//
// Every failure is a *Error carrying a Kind from the shared taxonomy
// (MalformedStructure, NegativeWeight, IncompatibleStructure,
// InvalidDimension, NumericalInstability) and, where known, the index of the
// offending structure inside a Dataset. Match with errors.Is against
// ErrMalformedStructure, ErrNegativeWeight, ErrIncompatibleStructure or
// ErrInvalidDimension. Cancellation is reported separately through
// ErrCancelled so callers can tell an abort from a failure.
package core
