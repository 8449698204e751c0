// SPDX-License-Identifier: MIT

// Package randomwalk builds row-stochastic transition matrices and evaluates
// truncated geometric random walks on the direct product of two graphs.
//
// A walk on the product graph visits node pairs (u, v) whose labels match.
// With P_a, P_b the transition matrices and M the label-match mask,
//
//	X_0     = M / (n_a · n_b)
//	X_{l+1} = M ∘ (P_aᵀ · X_l · P_b)
//	k(a, b) = Σ_{l=0..L} decay^l · sum(X_l)
//
// X_l[u,v] is the probability that two independent uniform-start walks of
// length l end in u and v with matching labels at every step, so k is an
// inner product of walk-label-sequence distributions and therefore PSD.
package randomwalk

import (
	"context"
	"fmt"

	"github.com/katalvlaran/graphkke/core"
	"github.com/katalvlaran/graphkke/matrix"
)

const (
	opTransition  = "Transition"
	opProductWalk = "ProductWalk"
)

// Transition returns the row-normalized weighted adjacency of g.
// A row with no outgoing mass (sink or isolated node) gets a self-loop of
// probability 1, so every row sums to 1.
//
// Errors:
//   - *core.Error KindNegativeWeight for any negative arc weight.
func Transition(g *core.Graph) (*matrix.Dense, error) {
	n := g.Order()
	p, err := matrix.NewDense(n, n)
	if err != nil {
		return nil, err
	}
	data := p.Data()
	for u := 0; u < n; u++ {
		targets, weights := g.Arcs(u)
		mass := 0.0
		for k, w := range weights {
			if w < 0 {
				return nil, core.Errorf(core.KindNegativeWeight, opTransition,
					"arc %d->%d has weight %g", g.NodeID(u), g.NodeID(targets[k]), w)
			}
			mass += w
		}
		if mass == 0 {
			data[u*n+u] = 1
			continue
		}
		for k, v := range targets {
			data[u*n+v] += weights[k] / mass
		}
	}

	return p, nil
}

// Walk is the per-graph state reused across every pair a graph takes part in.
type Walk struct {
	n      int
	pt     *matrix.Dense // P transposed
	p      *matrix.Dense
	labels []string
}

// Prepare computes the transition matrix of g and binds one label per node.
func Prepare(g *core.Graph, labels []string) (*Walk, error) {
	if len(labels) != g.Order() {
		return nil, core.Errorf(core.KindMalformedStructure, opProductWalk,
			"%d labels for %d nodes", len(labels), g.Order())
	}
	p, err := Transition(g)
	if err != nil {
		return nil, err
	}

	return &Walk{n: g.Order(), p: p, pt: matrix.Transpose(p), labels: labels}, nil
}

// Order returns the number of nodes of the prepared graph.
func (w *Walk) Order() int { return w.n }

// ProductWalk evaluates the truncated geometric walk kernel between a and b.
// steps is L (>= 0) and decay must lie in (0, 1]. The context is checked
// before every step. Either graph being empty yields 0.
//
// Complexity: O(L · (n_a² n_b + n_a n_b²)).
func ProductWalk(ctx context.Context, a, b *Walk, steps int, decay float64) (float64, error) {
	if steps < 0 {
		return 0, core.Errorf(core.KindInvalidDimension, opProductWalk, "walk length %d < 0", steps)
	}
	if !(decay > 0 && decay <= 1) {
		return 0, core.Errorf(core.KindInvalidDimension, opProductWalk, "decay %g outside (0, 1]", decay)
	}
	if a.n == 0 || b.n == 0 {
		return 0, nil
	}

	mask, _ := matrix.NewDense(a.n, b.n)
	x, _ := matrix.NewDense(a.n, b.n)
	md, xd := mask.Data(), x.Data()
	start := 1 / float64(a.n*b.n)
	for u := 0; u < a.n; u++ {
		for v := 0; v < b.n; v++ {
			if a.labels[u] == b.labels[v] {
				md[u*b.n+v] = 1
				xd[u*b.n+v] = start
			}
		}
	}

	k := x.Sum()
	weight := 1.0
	for l := 1; l <= steps; l++ {
		if err := core.CheckContext(ctx); err != nil {
			return 0, err
		}
		left, err := matrix.Mul(a.pt, x)
		if err != nil {
			return 0, fmt.Errorf("%s: %w", opProductWalk, err)
		}
		moved, err := matrix.Mul(left, b.p)
		if err != nil {
			return 0, fmt.Errorf("%s: %w", opProductWalk, err)
		}
		if x, err = matrix.Hadamard(mask, moved); err != nil {
			return 0, fmt.Errorf("%s: %w", opProductWalk, err)
		}
		weight *= decay
		k += weight * x.Sum()
	}

	return k, nil
}
