// SPDX-License-Identifier: MIT
package dijkstra_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/graphkke/core"
	"github.com/katalvlaran/graphkke/dijkstra"
)

// weightedDiamond:
//
//	0 --1-- 1
//	|       |
//	4       1
//	|       |
//	2 --1-- 3      plus an isolated node 4
func weightedDiamond(t *testing.T, opts ...core.GraphOption) *core.Graph {
	t.Helper()
	g, err := core.NewBuilder(opts...).
		AddNodes(0, 1, 2, 3, 4).
		AddEdge(0, 1, core.WithWeight(1)).
		AddEdge(0, 2, core.WithWeight(4)).
		AddEdge(1, 3, core.WithWeight(1)).
		AddEdge(2, 3, core.WithWeight(1)).
		Build()
	require.NoError(t, err)

	return g
}

func TestDijkstra_Validation(t *testing.T) {
	ctx := context.Background()
	_, err := dijkstra.Dijkstra(ctx, nil, 0)
	assert.ErrorIs(t, err, dijkstra.ErrNilGraph)

	g := weightedDiamond(t)
	_, err = dijkstra.Dijkstra(ctx, g, 9)
	assert.ErrorIs(t, err, dijkstra.ErrSourceNotFound)

	assert.Panics(t, func() { dijkstra.WithMaxDistance(-1) })
	assert.Panics(t, func() { dijkstra.WithInfEdgeThreshold(0) })
}

func TestDijkstra_NegativeWeight(t *testing.T) {
	g, err := core.NewBuilder().AddNodes(0, 1).AddEdge(0, 1, core.WithWeight(-2)).Build()
	require.NoError(t, err)

	_, err = dijkstra.Dijkstra(context.Background(), g, 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrNegativeWeight))
	assert.Contains(t, err.Error(), "weight -2")

	// Hop metric ignores weights entirely.
	res, err := dijkstra.Dijkstra(context.Background(), g, 0, dijkstra.WithUnitWeights())
	require.NoError(t, err)
	assert.Equal(t, 1.0, res.Dist[1])
}

func TestDijkstra_Distances(t *testing.T) {
	g := weightedDiamond(t)
	res, err := dijkstra.Dijkstra(context.Background(), g, 0, dijkstra.WithReturnPath())
	require.NoError(t, err)

	assert.Equal(t, []float64{0, 1, 3, 2, math.Inf(1)}, res.Dist)
	assert.False(t, res.Reachable(4))

	path, ok := res.PathTo(2)
	require.True(t, ok)
	assert.Equal(t, []int{0, 1, 3, 2}, path)

	_, ok = res.PathTo(4)
	assert.False(t, ok)
	assert.Equal(t, -1, res.Prev[0])
}

func TestDijkstra_UnitWeightsAndTies(t *testing.T) {
	g := weightedDiamond(t)
	res, err := dijkstra.Dijkstra(context.Background(), g, 0, dijkstra.WithUnitWeights(), dijkstra.WithReturnPath())
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1, 1, 2, math.Inf(1)}, res.Dist)
	// 3 is two hops away through 1 or 2; the lower index is settled first.
	assert.Equal(t, 1, res.Prev[3])
}

func TestDijkstra_Directed(t *testing.T) {
	g := weightedDiamond(t, core.WithDirected())
	res, err := dijkstra.Dijkstra(context.Background(), g, 3)
	require.NoError(t, err)
	for v := 0; v < 5; v++ {
		if v != 3 {
			assert.False(t, res.Reachable(v))
		}
	}
	assert.Nil(t, res.Prev)
}

func TestDijkstra_MaxDistanceAndThreshold(t *testing.T) {
	g := weightedDiamond(t)

	res, err := dijkstra.Dijkstra(context.Background(), g, 0, dijkstra.WithMaxDistance(2))
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1, math.Inf(1), 2, math.Inf(1)}, res.Dist)

	res, err = dijkstra.Dijkstra(context.Background(), g, 0, dijkstra.WithInfEdgeThreshold(1))
	require.NoError(t, err)
	for v := 1; v < 5; v++ {
		assert.False(t, res.Reachable(v), "every arc weighs >= 1")
	}
}

func TestAllPairs_DeterministicAcrossWorkers(t *testing.T) {
	g := weightedDiamond(t)
	ref, err := dijkstra.AllPairs(context.Background(), g, dijkstra.WithWorkers(1))
	require.NoError(t, err)

	for _, w := range []int{2, 3, 8} {
		got, err := dijkstra.AllPairs(context.Background(), g, dijkstra.WithWorkers(w))
		require.NoError(t, err)
		assert.Equal(t, ref, got)
	}

	for i := range ref {
		for j := range ref {
			assert.Equal(t, ref[i][j], ref[j][i], "undirected distances are symmetric")
		}
	}
	assert.True(t, math.IsInf(ref[0][4], 1))
}

func TestAllPairs_Cancelled(t *testing.T) {
	g := weightedDiamond(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := dijkstra.AllPairs(ctx, g)
	require.Error(t, err)
	assert.True(t, core.IsCancelled(err))
	assert.Equal(t, core.Kind(0), core.KindOf(err))
}
