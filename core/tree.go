// SPDX-License-Identifier: MIT
//
// File: tree.go
// Role: Rooted tree validation (WithRoot) and the read-only Tree view.
// Invariants checked, in order:
//   - non-empty, root exists, no self-loops;
//   - no cycle (union-find over canonical edges, first closing edge reported);
//   - connected (|E| = |V| - 1 once acyclic);
//   - directed trees: every edge points away from the root.

package core

const opWithRoot = "WithRoot"

// WithRoot returns a new Graph sharing g's storage with a rooted Tree view
// attached. g itself is left untouched.
//
// Errors:
//   - *Error KindMalformedStructure naming the first violated tree invariant.
//
// Complexity:
//   - Time O(V + E·α(V)), Space O(V).
func (g *Graph) WithRoot(rootID int) (*Graph, error) {
	n := g.Order()
	if n == 0 {
		return nil, Errorf(KindMalformedStructure, opWithRoot, "empty tree")
	}
	root, ok := g.index[rootID]
	if !ok {
		return nil, Errorf(KindMalformedStructure, opWithRoot, "root %d is not a node", rootID)
	}
	if g.loops > 0 {
		for _, e := range g.edges {
			if e.From == e.To {
				return nil, Errorf(KindMalformedStructure, opWithRoot, "cycle: self-loop on node %d", e.From)
			}
		}
	}

	ds := newDisjointSet(n)
	for _, e := range g.edges {
		if !ds.union(g.index[e.From], g.index[e.To]) {
			return nil, Errorf(KindMalformedStructure, opWithRoot, "cycle closed by edge %d-%d", e.From, e.To)
		}
	}
	if len(g.edges) != n-1 {
		return nil, Errorf(KindMalformedStructure, opWithRoot,
			"disconnected: %d components", n-len(g.edges))
	}
	if g.cfg.directed {
		if g.inDegree[root] != 0 {
			return nil, Errorf(KindMalformedStructure, opWithRoot, "root %d has an incoming edge", rootID)
		}
		for i, d := range g.inDegree {
			if i != root && d != 1 {
				return nil, Errorf(KindMalformedStructure, opWithRoot,
					"node %d has %d parents", g.ids[i], d)
			}
		}
	}

	cp := *g
	cp.tree = buildTreeView(&cp, root)

	return &cp, nil
}

// buildTreeView orients g away from root and records parent, depth,
// children and post-order. g must already satisfy the tree invariants.
func buildTreeView(g *Graph, root int) *Tree {
	n := g.Order()
	t := &Tree{
		g:         g,
		root:      root,
		parent:    make([]int, n),
		depth:     make([]int, n),
		childOff:  make([]int, n+1),
		childIdx:  make([]int, 0, n-1),
		postOrder: make([]int, 0, n),
	}
	for i := range t.parent {
		t.parent[i] = -1
	}

	// BFS from root; neighbor segments are sorted, so children are too.
	order := make([]int, 0, n)
	order = append(order, root)
	seen := make([]bool, n)
	seen[root] = true
	for head := 0; head < len(order); head++ {
		u := order[head]
		for _, v := range g.Neighbors(u) {
			if seen[v] {
				continue
			}
			seen[v] = true
			t.parent[v] = u
			t.depth[v] = t.depth[u] + 1
			order = append(order, v)
		}
	}

	// Children CSR in node-index order.
	for _, p := range t.parent {
		if p >= 0 {
			t.childOff[p+1]++
		}
	}
	for i := 0; i < n; i++ {
		t.childOff[i+1] += t.childOff[i]
	}
	t.childIdx = t.childIdx[:n-1]
	fill := append([]int(nil), t.childOff[:n]...)
	for v, p := range t.parent {
		if p >= 0 {
			t.childIdx[fill[p]] = v
			fill[p]++
		}
	}

	// Iterative post-order: children (ascending) before parent.
	type frame struct{ node, next int }
	stack := []frame{{node: root}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		kids := t.Children(top.node)
		if top.next < len(kids) {
			c := kids[top.next]
			top.next++
			stack = append(stack, frame{node: c})
			continue
		}
		t.postOrder = append(t.postOrder, top.node)
		stack = stack[:len(stack)-1]
	}

	return t
}

// Graph returns the graph this view belongs to.
func (t *Tree) Graph() *Graph { return t.g }

// Root returns the node index of the root.
func (t *Tree) Root() int { return t.root }

// RootID returns the caller ID of the root.
func (t *Tree) RootID() int { return t.g.ids[t.root] }

// Parent returns the parent index of node i (-1 for the root).
func (t *Tree) Parent(i int) int { return t.parent[i] }

// Depth returns the number of edges between the root and node i.
func (t *Tree) Depth(i int) int { return t.depth[i] }

// Children returns the child indices of node i in ascending order (read-only).
func (t *Tree) Children(i int) []int {
	lo, hi := t.childOff[i], t.childOff[i+1]

	return t.childIdx[lo:hi:hi]
}

// IsLeaf reports whether node i has no children.
func (t *Tree) IsLeaf(i int) bool { return t.childOff[i] == t.childOff[i+1] }

// PostOrder returns a copy of the post-order (children first, root last).
func (t *Tree) PostOrder() []int { return append([]int(nil), t.postOrder...) }

// Height returns the maximum depth over all nodes.
func (t *Tree) Height() int {
	h := 0
	for _, d := range t.depth {
		if d > h {
			h = d
		}
	}

	return h
}

// disjointSet is a union-find with path halving and union by size.
type disjointSet struct {
	parent []int
	size   []int
}

func newDisjointSet(n int) *disjointSet {
	ds := &disjointSet{parent: make([]int, n), size: make([]int, n)}
	for i := range ds.parent {
		ds.parent[i] = i
		ds.size[i] = 1
	}

	return ds
}

func (ds *disjointSet) find(x int) int {
	for ds.parent[x] != x {
		ds.parent[x] = ds.parent[ds.parent[x]]
		x = ds.parent[x]
	}

	return x
}

// union merges the sets of a and b; false when they were already joined.
func (ds *disjointSet) union(a, b int) bool {
	ra, rb := ds.find(a), ds.find(b)
	if ra == rb {
		return false
	}
	if ds.size[ra] < ds.size[rb] {
		ra, rb = rb, ra
	}
	ds.parent[rb] = ra
	ds.size[ra] += ds.size[rb]

	return true
}
