// SPDX-License-Identifier: MIT
//
// File: builder.go
// Role: The only mutation surface. Builder stages nodes and edges and
// Build validates them into an immutable *Graph.
// Determinism:
//   - Node indices follow insertion order.
//   - Arc segments are sorted by target index.
//   - Duplicate aggregation keeps the position of the first occurrence.

package core

import (
	"errors"
	"math"
	"slices"
)

const (
	opBuild     = "Build"
	opBuildTree = "BuildTree"
)

// Builder accumulates nodes and edges for one structure.
//
// Builder methods never fail; every invariant is checked by Build, which
// reports the first violation found. A Builder is not safe for concurrent
// use, but the graphs it produces are.
type Builder struct {
	cfg    graphConfig
	nodes  []Node
	edges  []Edge
	labels []string

	rooted bool
	rootID int
}

// NewBuilder returns an empty Builder configured by opts.
// By default graphs are undirected, loop-free and reject duplicate edges.
func NewBuilder(opts ...GraphOption) *Builder {
	b := &Builder{}
	for _, opt := range opts {
		opt(&b.cfg)
	}

	return b
}

// AddNode stages a node with caller ID id.
func (b *Builder) AddNode(id int, opts ...NodeOption) *Builder {
	n := Node{ID: id}
	for _, opt := range opts {
		opt(&n)
	}
	b.nodes = append(b.nodes, n)

	return b
}

// AddNodes stages unlabeled nodes in the given order.
func (b *Builder) AddNodes(ids ...int) *Builder {
	for _, id := range ids {
		b.nodes = append(b.nodes, Node{ID: id})
	}

	return b
}

// SetLabels assigns labels to the staged nodes in insertion order,
// overriding per-node WithLabel values. The length is checked by Build.
func (b *Builder) SetLabels(labels []string) *Builder {
	b.labels = append([]string(nil), labels...)

	return b
}

// Root marks the structure as a rooted tree; BuildDataset then builds it
// with BuildTree(id).
func (b *Builder) Root(id int) *Builder {
	b.rooted, b.rootID = true, id

	return b
}

// AddEdge stages an edge between node IDs from and to.
func (b *Builder) AddEdge(from, to int, opts ...EdgeOption) *Builder {
	e := Edge{From: from, To: to, Weight: DefaultWeight}
	for _, opt := range opts {
		opt(&e)
	}
	b.edges = append(b.edges, e)

	return b
}

// Build validates the staged structure and returns an immutable Graph.
//
// Implementation:
//   - Stage 1: index nodes; reject duplicate IDs and non-finite features.
//   - Stage 2: resolve edges; reject dangling references, non-finite weights,
//     forbidden self-loops; apply the duplicate policy.
//   - Stage 3: lay out sorted CSR arcs (mirrored for undirected graphs).
//
// Errors:
//   - *Error with KindMalformedStructure naming the first violated invariant.
//
// Complexity:
//   - Time O(V + E log E), Space O(V + E).
func (b *Builder) Build() (*Graph, error) {
	n := len(b.nodes)
	if b.labels != nil && len(b.labels) != n {
		return nil, Errorf(KindMalformedStructure, opBuild,
			"%d labels supplied for %d nodes", len(b.labels), n)
	}

	// Stage 1: nodes.
	g := &Graph{
		cfg:      b.cfg,
		ids:      make([]int, n),
		index:    make(map[int]int, n),
		labels:   make([]string, n),
		features: make([][]float64, n),
	}
	for i, nd := range b.nodes {
		if _, dup := g.index[nd.ID]; dup {
			return nil, Errorf(KindMalformedStructure, opBuild, "duplicate node id %d", nd.ID)
		}
		for _, f := range nd.Features {
			if math.IsNaN(f) || math.IsInf(f, 0) {
				return nil, Errorf(KindMalformedStructure, opBuild, "node %d has a non-finite feature", nd.ID)
			}
		}
		g.index[nd.ID] = i
		g.ids[i] = nd.ID
		g.labels[i] = nd.Label
		if b.labels != nil {
			g.labels[i] = b.labels[i]
		}
		if len(nd.Features) > 0 {
			g.features[i] = append([]float64(nil), nd.Features...)
		}
	}

	// Stage 2: edges.
	canon, err := b.resolveEdges(g.index)
	if err != nil {
		return nil, err
	}
	g.edges = canon

	// Stage 3: arcs.
	g.layoutArcs()

	return g, nil
}

// BuildTree builds the structure and attaches a rooted Tree view.
// See Graph.WithRoot for the tree invariants.
func (b *Builder) BuildTree(rootID int) (*Graph, error) {
	g, err := b.Build()
	if err != nil {
		return nil, err
	}
	t, err := g.WithRoot(rootID)
	if err != nil {
		var ce *Error
		if errors.As(err, &ce) && ce.Op == opWithRoot {
			cp := *ce
			cp.Op = opBuildTree

			return nil, &cp
		}

		return nil, err
	}

	return t, nil
}

// finish builds a tree when Root was called, a general graph otherwise.
func (b *Builder) finish() (*Graph, error) {
	if b.rooted {
		return b.BuildTree(b.rootID)
	}

	return b.Build()
}

// pairKey identifies an endpoint pair by node index.
type pairKey struct{ u, v int }

// resolveEdges maps edge endpoints to indices and applies the duplicate policy.
func (b *Builder) resolveEdges(index map[int]int) ([]Edge, error) {
	seen := make(map[pairKey]int, len(b.edges))
	canon := make([]Edge, 0, len(b.edges))
	for k, e := range b.edges {
		u, ok := index[e.From]
		if !ok {
			return nil, Errorf(KindMalformedStructure, opBuild, "edge #%d references unknown node %d", k, e.From)
		}
		v, ok := index[e.To]
		if !ok {
			return nil, Errorf(KindMalformedStructure, opBuild, "edge #%d references unknown node %d", k, e.To)
		}
		if math.IsNaN(e.Weight) || math.IsInf(e.Weight, 0) {
			return nil, Errorf(KindMalformedStructure, opBuild, "edge #%d (%d-%d) has a non-finite weight", k, e.From, e.To)
		}
		if u == v && !b.cfg.allowLoops {
			return nil, Errorf(KindMalformedStructure, opBuild, "edge #%d is a self-loop on node %d", k, e.From)
		}

		key := pairKey{u, v}
		if !b.cfg.directed && u > v {
			key = pairKey{v, u}
		}
		pos, dup := seen[key]
		if !dup {
			seen[key] = len(canon)
			canon = append(canon, e)
			continue
		}
		switch b.cfg.duplicates {
		case DuplicateSum:
			canon[pos].Weight += e.Weight
		case DuplicateMin:
			canon[pos].Weight = math.Min(canon[pos].Weight, e.Weight)
		case DuplicateMax:
			canon[pos].Weight = math.Max(canon[pos].Weight, e.Weight)
		default:
			return nil, Errorf(KindMalformedStructure, opBuild, "duplicate edge %d-%d (edge #%d)", e.From, e.To, k)
		}
	}

	return canon, nil
}

// arc is one directed CSR entry.
type arc struct {
	src, dst int
	w        float64
	label    string
}

// layoutArcs fills the CSR arrays from g.edges.
func (g *Graph) layoutArcs() {
	n := len(g.ids)
	arcs := make([]arc, 0, 2*len(g.edges))
	for _, e := range g.edges {
		u, v := g.index[e.From], g.index[e.To]
		arcs = append(arcs, arc{src: u, dst: v, w: e.Weight, label: e.Label})
		if !g.cfg.directed && u != v {
			arcs = append(arcs, arc{src: v, dst: u, w: e.Weight, label: e.Label})
		}
		if u == v {
			g.loops++
		}
		if e.Weight != DefaultWeight {
			g.weighted = true
		}
	}
	slices.SortFunc(arcs, func(a, b arc) int {
		if a.src != b.src {
			return a.src - b.src
		}

		return a.dst - b.dst
	})

	g.offsets = make([]int, n+1)
	g.targets = make([]int, len(arcs))
	g.weights = make([]float64, len(arcs))
	g.arcLabels = make([]string, len(arcs))
	g.inDegree = make([]int, n)
	for k, a := range arcs {
		g.offsets[a.src+1]++
		g.targets[k] = a.dst
		g.weights[k] = a.w
		g.arcLabels[k] = a.label
		g.inDegree[a.dst]++
	}
	for i := 0; i < n; i++ {
		g.offsets[i+1] += g.offsets[i]
	}
}
