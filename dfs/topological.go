package dfs

import (
	"context"
	"fmt"
	"slices"

	"github.com/katalvlaran/graphkke/core"
)

// TopologicalSort returns the node indices of a directed acyclic graph so that
// for every arc u->v, u comes before v. Ties follow ascending index order of
// DFS roots and neighbors.
//
// Errors: ErrGraphNil, ErrUndirected, ErrCycleDetected (wrapped with the node
// closing the cycle), or a cancellation outcome.
func TopologicalSort(ctx context.Context, g *core.Graph) ([]int, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	if !g.Directed() {
		return nil, ErrUndirected
	}

	n := g.Order()
	state := make([]int, n)
	order := make([]int, 0, n)
	for s := 0; s < n; s++ {
		if state[s] != White {
			continue
		}
		state[s] = Gray
		stack := []frame{{u: s}}
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			nbrs := g.Neighbors(top.u)
			if top.next >= len(nbrs) {
				state[top.u] = Black
				order = append(order, top.u)
				stack = stack[:len(stack)-1]
				continue
			}
			v := nbrs[top.next]
			top.next++
			switch state[v] {
			case Gray:
				return nil, fmt.Errorf("%w: at node %d", ErrCycleDetected, g.NodeID(v))
			case White:
				if err := core.CheckContext(ctx); err != nil {
					return nil, err
				}
				state[v] = Gray
				stack = append(stack, frame{u: v})
			}
		}
	}
	slices.Reverse(order)

	return order, nil
}
