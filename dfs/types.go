// Package dfs implements iterative depth-first search on core.Graph:
// pre/post-order traversal, cycle detection and topological sorting.
//
// All traversals use an explicit stack, so deep chains and trees never
// exhaust the goroutine stack. Neighbors are visited in ascending index
// order, which makes every output deterministic.
//
// Complexity:
//
//   - Time:   O(V + E)
//   - Memory: O(V)
package dfs

import "errors"

// Visitation states.
const (
	White = iota // not visited yet
	Gray         // on the current DFS path
	Black        // fully explored
)

var (
	// ErrGraphNil is returned when a nil *core.Graph is passed.
	ErrGraphNil = errors.New("dfs: graph is nil")

	// ErrStartNotFound indicates a start index outside 0..Order()-1.
	ErrStartNotFound = errors.New("dfs: start node not found")

	// ErrCycleDetected indicates that TopologicalSort met a cycle.
	ErrCycleDetected = errors.New("dfs: cycle detected")

	// ErrUndirected indicates that TopologicalSort was called on an undirected graph.
	ErrUndirected = errors.New("dfs: TopologicalSort requires a directed graph")
)

// Result holds one traversal.
//   - PreOrder:  nodes in discovery order.
//   - PostOrder: nodes in finish order (descendants before ancestors).
//   - Parent:    DFS-tree predecessor, -1 for roots and unvisited nodes.
type Result struct {
	PreOrder  []int
	PostOrder []int
	Parent    []int
}
