// SPDX-License-Identifier: MIT

// Package subtree counts common tree fragments between two rooted trees.
//
// Prepare puts a tree into canonical order: every node gets an AHU-style
// code (its label followed by the sorted codes of its children) hashed with
// BLAKE3. Children are ordered by label first and by that hash among equal
// labels, so nodes with the same label and the same multiset of child labels
// share a production, and two isomorphic labelled trees end up with
// identical orderings.
//
// Match evaluates the Collins-Duffy recursion over the canonical orderings:
//
//	C(u, v) = 0                              if prod(u) != prod(v)
//	C(u, v) = λ                              if u and v are leaves
//	C(u, v) = λ · Π_j (1 + C(ch_j(u), ch_j(v)))   otherwise
//	k(a, b) = Σ_{u ∈ a, v ∈ b} C(u, v)
//
// where prod(u) is the label of u together with the ordered labels of its
// children. With λ = 1, k counts the common subtree fragments.
package subtree

import (
	"bytes"
	"context"
	"encoding/binary"
	"slices"
	"strings"

	"lukechampine.com/blake3"

	"github.com/katalvlaran/graphkke/core"
	"github.com/katalvlaran/graphkke/dfs"
)

const (
	opPrepare = "SubtreePrepare"
	opMatch   = "SubtreeMatch"
)

// Digest is a BLAKE3-256 hash.
type Digest [32]byte

// Prepared is the canonical form of one tree.
type Prepared struct {
	// order lists node indices children-first.
	order []int
	// children holds each node's children in canonical order.
	children [][]int
	// prod identifies the production rooted at each node.
	prod []Digest
	// code identifies the full subtree rooted at each node.
	code []Digest
	root int
}

// Prepare canonicalizes g, which must carry a Tree view, with one label per
// node.
//
// Errors:
//   - *core.Error KindIncompatibleStructure when g is not a tree.
//   - *core.Error KindMalformedStructure when len(labels) != g.Order().
func Prepare(ctx context.Context, g *core.Graph, labels []string) (*Prepared, error) {
	tr, ok := g.Tree()
	if !ok {
		if dfs.HasCycle(g) {
			return nil, core.Errorf(core.KindIncompatibleStructure, opPrepare,
				"subtree matching needs a rooted tree, got a graph with a cycle (%d nodes)", g.Order())
		}
		return nil, core.Errorf(core.KindIncompatibleStructure, opPrepare,
			"subtree matching needs a rooted tree, got an unrooted acyclic graph (%d nodes); build it with BuildTree or WithRoot", g.Order())
	}
	n := g.Order()
	if len(labels) != n {
		return nil, core.Errorf(core.KindMalformedStructure, opPrepare, "%d labels for %d nodes", len(labels), n)
	}

	order, err := dfs.PostOrder(ctx, g, tr.Root())
	if err != nil {
		return nil, err
	}
	p := &Prepared{
		order:    order,
		children: make([][]int, n),
		prod:     make([]Digest, n),
		code:     make([]Digest, n),
		root:     tr.Root(),
	}
	for _, u := range order {
		kids := slices.Clone(tr.Children(u))
		slices.SortStableFunc(kids, func(x, y int) int {
			if c := strings.Compare(labels[x], labels[y]); c != 0 {
				return c
			}
			return bytes.Compare(p.code[x][:], p.code[y][:])
		})
		p.children[u] = kids
		p.code[u] = digest('c', labels[u], kids, func(c int) []byte { return p.code[c][:] })
		p.prod[u] = digest('p', labels[u], kids, func(c int) []byte { return []byte(labels[c]) })
	}

	return p, nil
}

// digest hashes a tag, the node label and one length-prefixed part per child.
func digest(tag byte, label string, kids []int, part func(int) []byte) Digest {
	h := blake3.New(32, nil)
	var lenBuf [binary.MaxVarintLen64]byte
	write := func(b []byte) {
		n := binary.PutUvarint(lenBuf[:], uint64(len(b)))
		_, _ = h.Write(lenBuf[:n])
		_, _ = h.Write(b)
	}
	_, _ = h.Write([]byte{tag})
	write([]byte(label))
	for _, c := range kids {
		write(part(c))
	}
	var d Digest
	h.Sum(d[:0])

	return d
}

// Order returns the number of nodes.
func (p *Prepared) Order() int { return len(p.order) }

// Code returns the canonical digest of the whole tree. Equal codes mean the
// trees are isomorphic as labelled rooted trees (up to hash collisions).
func (p *Prepared) Code() Digest {
	if len(p.order) == 0 {
		return Digest{}
	}

	return p.code[p.root]
}

// Match returns k(a, b) for decay λ in (0, 1]. The memo table is n_a × n_b
// and is filled bottom-up; ctx is checked once per node of a.
//
// Complexity: O(n_a · n_b) time and space.
func Match(ctx context.Context, a, b *Prepared, decay float64) (float64, error) {
	if !(decay > 0 && decay <= 1) {
		return 0, core.Errorf(core.KindInvalidDimension, opMatch, "decay %g outside (0, 1]", decay)
	}
	na, nb := a.Order(), b.Order()
	memo := make([]float64, na*nb)
	total := 0.0
	for _, u := range a.order {
		if err := core.CheckContext(ctx); err != nil {
			return 0, err
		}
		ku := a.children[u]
		for _, v := range b.order {
			if a.prod[u] != b.prod[v] {
				continue
			}
			c := decay
			for j, cu := range ku {
				c *= 1 + memo[cu*nb+b.children[v][j]]
			}
			memo[u*nb+v] = c
			total += c
		}
	}

	return total, nil
}
