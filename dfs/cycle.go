package dfs

import "github.com/katalvlaran/graphkke/core"

// HasCycle reports whether g contains a cycle.
//
// Directed graphs use three-colour marking: an arc into a Gray node is a back
// edge. Undirected graphs skip the single arc back to the DFS parent, so an
// edge is never mistaken for a 2-cycle. Self-loops always count as cycles.
// A nil graph is treated as acyclic.
func HasCycle(g *core.Graph) bool {
	if g == nil {
		return false
	}
	if g.LoopCount() > 0 {
		return true
	}
	n := g.Order()
	state := make([]int, n)
	parent := make([]int, n)
	for s := 0; s < n; s++ {
		if state[s] != White {
			continue
		}
		parent[s] = -1
		state[s] = Gray
		stack := []frame{{u: s}}
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			nbrs := g.Neighbors(top.u)
			if top.next >= len(nbrs) {
				state[top.u] = Black
				stack = stack[:len(stack)-1]
				continue
			}
			v := nbrs[top.next]
			top.next++
			switch state[v] {
			case White:
				parent[v] = top.u
				state[v] = Gray
				stack = append(stack, frame{u: v})
			case Gray:
				if g.Directed() || v != parent[top.u] {
					return true
				}
			case Black:
				// Undirected: a finished child. Directed: a forward or cross arc.
			}
		}
	}

	return false
}
