package bfs

import "github.com/katalvlaran/graphkke/core"

// Components labels every node with the index of its (weakly) connected
// component. Components are numbered in order of their smallest node index.
// Arc direction is ignored, so directed graphs yield weak components.
func Components(g *core.Graph) (labels []int, count int) {
	n := g.Order()
	labels = make([]int, n)
	for i := range labels {
		labels[i] = -1
	}

	// Undirected view: out-arcs plus reversed in-arcs for directed graphs.
	adj := undirectedView(g)
	queue := make([]int, 0, n)
	for s := 0; s < n; s++ {
		if labels[s] != -1 {
			continue
		}
		labels[s] = count
		queue = append(queue[:0], s)
		for head := 0; head < len(queue); head++ {
			u := queue[head]
			for _, v := range adj(u) {
				if labels[v] == -1 {
					labels[v] = count
					queue = append(queue, v)
				}
			}
		}
		count++
	}

	return labels, count
}

// Connected reports whether g has at most one (weak) component.
func Connected(g *core.Graph) bool {
	_, c := Components(g)

	return c <= 1
}

func undirectedView(g *core.Graph) func(int) []int {
	if !g.Directed() {
		return g.Neighbors
	}
	n := g.Order()
	both := make([][]int, n)
	for u := 0; u < n; u++ {
		for _, v := range g.Neighbors(u) {
			both[u] = append(both[u], v)
			both[v] = append(both[v], u)
		}
	}

	return func(u int) []int { return both[u] }
}
