// SPDX-License-Identifier: MIT

package kernel

import (
	"context"
	"math"
	"strings"

	"github.com/tidwall/btree"

	"github.com/katalvlaran/graphkke/bfs"
	"github.com/katalvlaran/graphkke/core"
	"github.com/katalvlaran/graphkke/dijkstra"
)

// spEntry is one histogram bucket: the endpoint labels and the quantized
// distance between them. d is a whole number of resolution steps kept as a
// float64 so that long distances never wrap around.
type spEntry struct {
	la, lb string
	d      float64
	count  float64
}

func spLess(x, y spEntry) bool {
	if c := strings.Compare(x.la, y.la); c != 0 {
		return c < 0
	}
	if c := strings.Compare(x.lb, y.lb); c != 0 {
		return c < 0
	}

	return x.d < y.d
}

// spHistogram is the frozen, key-sorted histogram of one structure.
type spHistogram []spEntry

// buildHistogram counts reachable node pairs u != v by (label, label,
// distance). Directed graphs count ordered pairs; undirected graphs count
// each unordered pair once with the label pair sorted.
func buildHistogram(ctx context.Context, g *core.Graph, labels []string, cfg *Options) (spHistogram, error) {
	dist, err := pairDistances(ctx, g, cfg)
	if err != nil {
		return nil, err
	}

	tr := btree.NewBTreeGOptions(spLess, btree.Options{NoLocks: true})
	n := g.Order()
	directed := g.Directed()
	for u := 0; u < n; u++ {
		v0 := 0
		if !directed {
			v0 = u + 1
		}
		for v := v0; v < n; v++ {
			d, ok := dist(u, v)
			if u == v || !ok {
				continue
			}
			key := spEntry{la: labels[u], lb: labels[v], d: d}
			if !directed && key.lb < key.la {
				key.la, key.lb = key.lb, key.la
			}
			if cur, found := tr.Get(key); found {
				key.count = cur.count
			}
			key.count++
			tr.Set(key)
		}
	}

	h := make(spHistogram, 0, tr.Len())
	tr.Scan(func(e spEntry) bool {
		h = append(h, e)
		return true
	})

	return h, nil
}

// pairDistances returns a lookup of quantized distances under cfg.Distance.
func pairDistances(ctx context.Context, g *core.Graph, cfg *Options) (func(u, v int) (float64, bool), error) {
	if cfg.Distance == DistanceHops {
		hops, err := bfs.HopMatrix(ctx, g)
		if err != nil {
			return nil, err
		}

		return func(u, v int) (float64, bool) {
			return float64(hops[u][v]), hops[u][v] != bfs.Unreached
		}, nil
	}

	// Matrix already runs one structure per worker.
	dist, err := dijkstra.AllPairs(ctx, g, dijkstra.WithWorkers(1))
	if err != nil {
		return nil, err
	}
	res := cfg.DistanceResolution

	return func(u, v int) (float64, bool) {
		d := dist[u][v]
		if math.IsInf(d, 1) {
			return 0, false
		}

		return math.Round(d / res), true
	}, nil
}

// intersect returns Σ_key min(a[key], b[key]) by merging the sorted buckets.
func intersect(a, b spHistogram) float64 {
	total := 0.0
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case spLess(a[i], b[j]):
			i++
		case spLess(b[j], a[i]):
			j++
		default:
			total += math.Min(a[i].count, b[j].count)
			i++
			j++
		}
	}

	return total
}
