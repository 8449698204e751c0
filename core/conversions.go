// SPDX-License-Identifier: MIT
//
// File: conversions.go
// Role: Edge-list and adjacency-matrix constructors and exporters.

package core

import "math"

const opFromAdjacency = "FromAdjacency"

// FromEdgeList builds a graph over nodes 0..n-1 from unweighted index pairs.
// Without WithDirected the pairs are undirected.
func FromEdgeList(n int, pairs [][2]int, opts ...GraphOption) (*Graph, error) {
	if n < 0 {
		return nil, Errorf(KindMalformedStructure, opBuild, "negative node count %d", n)
	}
	b := NewBuilder(opts...)
	for i := 0; i < n; i++ {
		b.AddNode(i)
	}
	for _, p := range pairs {
		b.AddEdge(p[0], p[1])
	}

	return b.Build()
}

// FromAdjacency builds a graph over nodes 0..n-1 from a square weight matrix.
// A non-zero entry adj[i][j] is an edge i->j with weight adj[i][j].
//
// Behavior highlights:
//   - An asymmetric matrix produces a directed graph; a symmetric one is read
//     from its upper triangle as an undirected graph unless WithDirected is given.
//   - Non-zero diagonal entries become self-loops (loops are enabled for them).
//
// Errors:
//   - KindMalformedStructure for ragged/non-square input or non-finite entries.
func FromAdjacency(adj [][]float64, opts ...GraphOption) (*Graph, error) {
	n := len(adj)
	symmetric, loops := true, false
	for i, row := range adj {
		if len(row) != n {
			return nil, Errorf(KindMalformedStructure, opFromAdjacency,
				"row %d has %d entries, want %d", i, len(row), n)
		}
		for j, w := range row {
			if math.IsNaN(w) || math.IsInf(w, 0) {
				return nil, Errorf(KindMalformedStructure, opFromAdjacency, "entry (%d,%d) is not finite", i, j)
			}
			if j < i && w != adj[j][i] {
				symmetric = false
			}
			if i == j && w != 0 {
				loops = true
			}
		}
	}

	var cfg graphConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	if !symmetric {
		opts = append(opts, WithDirected())
		cfg.directed = true
	}
	if loops {
		opts = append(opts, WithLoops())
	}

	b := NewBuilder(opts...)
	for i := 0; i < n; i++ {
		b.AddNode(i)
	}
	for i := 0; i < n; i++ {
		from := 0
		if !cfg.directed {
			from = i
		}
		for j := from; j < n; j++ {
			if adj[i][j] != 0 {
				b.AddEdge(i, j, WithWeight(adj[i][j]))
			}
		}
	}

	return b.Build()
}

// AdjacencyMatrix returns the dense weight matrix indexed by node index.
// Undirected graphs yield a symmetric matrix; absent edges are 0.
func (g *Graph) AdjacencyMatrix() [][]float64 {
	n := g.Order()
	out := make([][]float64, n)
	for i := range out {
		out[i] = make([]float64, n)
		targets, weights := g.Arcs(i)
		for k, j := range targets {
			out[i][j] = weights[k]
		}
	}

	return out
}

// EdgePairs returns the canonical edges as caller-ID pairs.
func (g *Graph) EdgePairs() [][2]int {
	out := make([][2]int, len(g.edges))
	for k, e := range g.edges {
		out[k] = [2]int{e.From, e.To}
	}

	return out
}
