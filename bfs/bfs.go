package bfs

import (
	"context"
	"fmt"

	"github.com/katalvlaran/graphkke/core"
)

// walker encapsulates mutable BFS state.
type walker struct {
	graph *core.Graph
	opts  Options
	ctx   context.Context
	queue []int
	res   *Result
}

// BFS runs breadth-first search on g from node index start.
// Returns ErrGraphNil, ErrStartNotFound, ErrOptionViolation, a cancellation
// outcome (core.ErrCancelled), or the error returned by OnVisit.
//
// Complexity: O(V + E) time, O(V) space.
func BFS(ctx context.Context, g *core.Graph, start int, opts ...Option) (*Result, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	n := g.Order()
	if start < 0 || start >= n {
		return nil, ErrStartNotFound
	}

	w := &walker{
		graph: g,
		opts:  o,
		ctx:   ctx,
		queue: make([]int, 0, n),
		res: &Result{
			Start:  start,
			Order:  make([]int, 0, n),
			Depth:  make([]int, n),
			Parent: make([]int, n),
		},
	}
	for i := 0; i < n; i++ {
		w.res.Depth[i] = Unreached
		w.res.Parent[i] = -1
	}
	w.enqueue(start, 0, -1)

	return w.res, w.loop()
}

func (w *walker) enqueue(v, d, parent int) {
	w.res.Depth[v] = d
	w.res.Parent[v] = parent
	w.queue = append(w.queue, v)
}

// loop processes the queue until empty, error, or cancellation.
func (w *walker) loop() error {
	for head := 0; head < len(w.queue); head++ {
		if err := core.CheckContext(w.ctx); err != nil {
			return err
		}
		u := w.queue[head]
		d := w.res.Depth[u]
		w.res.Order = append(w.res.Order, u)
		if err := w.opts.OnVisit(u, d); err != nil {
			return fmt.Errorf("bfs: OnVisit error at node %d: %w", u, err)
		}
		if w.opts.MaxDepth > 0 && d+1 > w.opts.MaxDepth {
			continue
		}
		for _, v := range w.graph.Neighbors(u) {
			if w.res.Depth[v] != Unreached || !w.opts.FilterNeighbor(u, v) {
				continue
			}
			w.enqueue(v, d+1, u)
		}
	}

	return nil
}

// HopMatrix returns the all-pairs hop distances of g, -1 for unreachable
// pairs. One BFS runs per source.
func HopMatrix(ctx context.Context, g *core.Graph) ([][]int, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	out := make([][]int, g.Order())
	for s := range out {
		res, err := BFS(ctx, g, s)
		if err != nil {
			return nil, err
		}
		out[s] = res.Depth
	}

	return out, nil
}
