// SPDX-License-Identifier: MIT
//
// File: dijkstra.go
// Role: Single-source Dijkstra with a lazy decrease-key binary heap and the
// errgroup-backed all-pairs driver.

package dijkstra

import (
	"container/heap"
	"context"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/graphkke/core"
)

const (
	opDijkstra = "Dijkstra"
	opAllPairs = "AllPairs"

	// ctxStride is the number of heap pops between two context checks.
	ctxStride = 1024
)

// Dijkstra computes shortest distances from node index source to every node
// of g.
//
// Preconditions and validation (in order):
//  1. g must be non-nil (ErrNilGraph).
//  2. source must be a valid node index (ErrSourceNotFound).
//  3. No arc may carry a negative weight unless WithUnitWeights is set
//     (*core.Error KindNegativeWeight).
//
// Complexity:
//   - Time:  O((V + E) log V)
//   - Space: O(V + E) (lazy decrease-key keeps stale heap entries).
func Dijkstra(ctx context.Context, g *core.Graph, source int, opts ...Option) (*Result, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := validate(g, &cfg, opDijkstra); err != nil {
		return nil, err
	}
	if source < 0 || source >= g.Order() {
		return nil, ErrSourceNotFound
	}

	r := newRunner(g, cfg)
	if err := r.run(ctx, source); err != nil {
		return nil, err
	}

	return r.result(source), nil
}

// AllPairs returns the V×V distance table, row s holding Dijkstra(s).
// Sources are distributed over Options.Workers goroutines; every row is
// written by exactly one goroutine, so the table is identical for any worker
// count. The first failure (or cancellation) aborts the remaining sources.
func AllPairs(ctx context.Context, g *core.Graph, opts ...Option) ([][]float64, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := validate(g, &cfg, opAllPairs); err != nil {
		return nil, err
	}
	cfg.ReturnPath = false

	n := g.Order()
	out := make([][]float64, n)
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(cfg.Workers)
	for s := 0; s < n; s++ {
		if egCtx.Err() != nil {
			break
		}
		eg.Go(func() error {
			if err := core.CheckContext(egCtx); err != nil {
				return err
			}
			r := newRunner(g, cfg)
			if err := r.run(egCtx, s); err != nil {
				return err
			}
			out[s] = r.dist

			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	// The group context is cancelled by Wait; only the caller's ctx matters here.
	if err := core.CheckContext(ctx); err != nil {
		return nil, err
	}

	return out, nil
}

// validate checks the graph and pre-scans weights once per call.
func validate(g *core.Graph, cfg *Options, op string) error {
	if g == nil {
		return ErrNilGraph
	}
	if cfg.MaxDistance < 0 || math.IsNaN(cfg.MaxDistance) {
		return ErrBadMaxDistance
	}
	if !(cfg.InfEdgeThreshold > 0) {
		return ErrBadInfThreshold
	}
	if cfg.UnitWeights {
		return nil
	}
	for u := 0; u < g.Order(); u++ {
		targets, weights := g.Arcs(u)
		for k, w := range weights {
			if w < 0 {
				return core.Errorf(core.KindNegativeWeight, op,
					"arc %d->%d has weight %g", g.NodeID(u), g.NodeID(targets[k]), w)
			}
		}
	}

	return nil
}

// runner holds the mutable state for one single-source execution.
type runner struct {
	g       *core.Graph
	options Options
	dist    []float64
	prev    []int
	settled []bool
	pq      nodePQ
}

func newRunner(g *core.Graph, cfg Options) *runner {
	n := g.Order()
	r := &runner{
		g:       g,
		options: cfg,
		dist:    make([]float64, n),
		settled: make([]bool, n),
		pq:      make(nodePQ, 0, n),
	}
	if cfg.ReturnPath {
		r.prev = make([]int, n)
	}

	return r
}

// run initialises the tables and drains the heap.
func (r *runner) run(ctx context.Context, source int) error {
	for v := range r.dist {
		r.dist[v] = math.Inf(1)
		if r.prev != nil {
			r.prev[v] = -1
		}
	}
	r.dist[source] = 0
	heap.Push(&r.pq, nodeItem{idx: source, dist: 0})

	for pops := 0; r.pq.Len() > 0; pops++ {
		if pops%ctxStride == 0 {
			if err := core.CheckContext(ctx); err != nil {
				return err
			}
		}
		item := heap.Pop(&r.pq).(nodeItem)
		u := item.idx
		if r.settled[u] || item.dist > r.dist[u] {
			continue // stale entry
		}
		if item.dist > r.options.MaxDistance {
			break
		}
		r.settled[u] = true
		r.relax(u)
	}

	return nil
}

// relax improves the distances of u's out-neighbors through u.
func (r *runner) relax(u int) {
	targets, weights := r.g.Arcs(u)
	du := r.dist[u]
	for k, v := range targets {
		if r.settled[v] {
			continue
		}
		w := weights[k]
		if r.options.UnitWeights {
			w = 1
		} else if w >= r.options.InfEdgeThreshold {
			continue
		}
		nd := du + w
		if nd > r.options.MaxDistance || nd >= r.dist[v] {
			continue
		}
		r.dist[v] = nd
		if r.prev != nil {
			r.prev[v] = u
		}
		heap.Push(&r.pq, nodeItem{idx: v, dist: nd})
	}
}

// result packages the tables. Nodes beyond MaxDistance are reset to +Inf.
func (r *runner) result(source int) *Result {
	for v, d := range r.dist {
		if !r.settled[v] && !math.IsInf(d, 1) {
			r.dist[v] = math.Inf(1)
			if r.prev != nil {
				r.prev[v] = -1
			}
		}
	}

	return &Result{Source: source, Dist: r.dist, Prev: r.prev}
}

// nodeItem is one heap entry.
type nodeItem struct {
	idx  int
	dist float64
}

// nodePQ is a min-heap ordered by (dist, idx).
type nodePQ []nodeItem

func (pq nodePQ) Len() int { return len(pq) }

func (pq nodePQ) Less(i, j int) bool {
	if pq[i].dist != pq[j].dist {
		return pq[i].dist < pq[j].dist
	}

	return pq[i].idx < pq[j].idx
}

func (pq nodePQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *nodePQ) Push(x any) { *pq = append(*pq, x.(nodeItem)) }

func (pq *nodePQ) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]

	return item
}
