// SPDX-License-Identifier: MIT
//
// File: methods.go
// Role: Read-only queries on an immutable Graph.
// Policy:
//   - Index-based accessors take node indices (0..Order()-1) and panic on an
//     out-of-range index, like slice indexing; ID-based lookups go through Index.
//   - Slices documented as read-only alias internal storage.

package core

import "sort"

// Order returns the number of nodes.
func (g *Graph) Order() int { return len(g.ids) }

// Size returns the number of edges after duplicate aggregation.
func (g *Graph) Size() int { return len(g.edges) }

// Directed reports whether edges are one-way.
func (g *Graph) Directed() bool { return g.cfg.directed }

// Weighted reports whether any edge weight differs from DefaultWeight.
func (g *Graph) Weighted() bool { return g.weighted }

// AllowsLoops reports the self-loop policy the graph was built with.
func (g *Graph) AllowsLoops() bool { return g.cfg.allowLoops }

// LoopCount returns the number of self-loops.
func (g *Graph) LoopCount() int { return g.loops }

// DuplicatePolicy returns the policy applied at build time.
func (g *Graph) DuplicatePolicy() DuplicatePolicy { return g.cfg.duplicates }

// IsTree reports whether g carries a validated rooted Tree view.
func (g *Graph) IsTree() bool { return g.tree != nil }

// Tree returns the rooted view of g, if any.
func (g *Graph) Tree() (*Tree, bool) { return g.tree, g.tree != nil }

// NodeID returns the caller ID of node index i.
func (g *Graph) NodeID(i int) int { return g.ids[i] }

// Index returns the node index of caller ID id.
func (g *Graph) Index(id int) (int, bool) {
	i, ok := g.index[id]

	return i, ok
}

// Label returns the label of node index i ("" when unlabeled).
func (g *Graph) Label(i int) string { return g.labels[i] }

// Labels returns a copy of all node labels in index order.
func (g *Graph) Labels() []string { return append([]string(nil), g.labels...) }

// HasLabels reports whether at least one node carries a non-empty label.
func (g *Graph) HasLabels() bool {
	for _, l := range g.labels {
		if l != "" {
			return true
		}
	}

	return false
}

// Features returns a copy of the feature vector of node index i (nil if none).
func (g *Graph) Features(i int) []float64 {
	if g.features[i] == nil {
		return nil
	}

	return append([]float64(nil), g.features[i]...)
}

// Node returns the Node record of index i.
func (g *Graph) Node(i int) Node {
	return Node{ID: g.ids[i], Label: g.labels[i], Features: g.Features(i)}
}

// Nodes returns all nodes in index order.
func (g *Graph) Nodes() []Node {
	out := make([]Node, len(g.ids))
	for i := range g.ids {
		out[i] = g.Node(i)
	}

	return out
}

// Neighbors returns the sorted out-neighbor indices of node i.
// The slice is read-only.
func (g *Graph) Neighbors(i int) []int {
	lo, hi := g.offsets[i], g.offsets[i+1]

	return g.targets[lo:hi:hi]
}

// Arcs returns the sorted out-neighbor indices of node i with the matching
// arc weights. Both slices are read-only.
func (g *Graph) Arcs(i int) ([]int, []float64) {
	lo, hi := g.offsets[i], g.offsets[i+1]

	return g.targets[lo:hi:hi], g.weights[lo:hi:hi]
}

// OutDegree returns the number of outgoing arcs of node i.
// For undirected graphs this is the number of incident neighbors
// (a self-loop counts once).
func (g *Graph) OutDegree(i int) int { return g.offsets[i+1] - g.offsets[i] }

// InDegree returns the number of incoming arcs of node i.
func (g *Graph) InDegree(i int) int { return g.inDegree[i] }

// Degree returns the number of incident edges of node i:
// in+out for directed graphs, OutDegree otherwise.
func (g *Graph) Degree(i int) int {
	if g.cfg.directed {
		return g.OutDegree(i) + g.inDegree[i]
	}

	return g.OutDegree(i)
}

// arcIndex locates the arc u->v by binary search; -1 when absent.
func (g *Graph) arcIndex(u, v int) int {
	lo, hi := g.offsets[u], g.offsets[u+1]
	seg := g.targets[lo:hi]
	k := sort.SearchInts(seg, v)
	if k < len(seg) && seg[k] == v {
		return lo + k
	}

	return -1
}

// HasEdge reports whether an arc u->v exists (indices). O(log deg(u)).
func (g *Graph) HasEdge(u, v int) bool { return g.arcIndex(u, v) >= 0 }

// EdgeWeight returns the weight of arc u->v (indices) and whether it exists.
func (g *Graph) EdgeWeight(u, v int) (float64, bool) {
	k := g.arcIndex(u, v)
	if k < 0 {
		return 0, false
	}

	return g.weights[k], true
}

// EdgeLabel returns the label of arc u->v (indices) and whether it exists.
func (g *Graph) EdgeLabel(u, v int) (string, bool) {
	k := g.arcIndex(u, v)
	if k < 0 {
		return "", false
	}

	return g.arcLabels[k], true
}

// Edges returns a copy of the canonical edge list (caller IDs, insertion order).
func (g *Graph) Edges() []Edge { return append([]Edge(nil), g.edges...) }

// Stats is a compact summary used for logging and diagnostics.
type Stats struct {
	Nodes, Edges int
	Directed     bool
	Weighted     bool
	Tree         bool
	Loops        int
}

// Stats returns a summary of g.
func (g *Graph) Stats() Stats {
	return Stats{
		Nodes:    g.Order(),
		Edges:    g.Size(),
		Directed: g.cfg.directed,
		Weighted: g.weighted,
		Tree:     g.tree != nil,
		Loops:    g.loops,
	}
}
