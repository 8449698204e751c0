package dfs_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/graphkke/core"
	"github.com/katalvlaran/graphkke/dfs"
)

func mustEdges(t *testing.T, n int, pairs [][2]int, opts ...core.GraphOption) *core.Graph {
	t.Helper()
	g, err := core.FromEdgeList(n, pairs, opts...)
	require.NoError(t, err)

	return g
}

func TestDFS_Orders(t *testing.T) {
	//	0
	//	├── 1 ── 3
	//	└── 2
	g := mustEdges(t, 5, [][2]int{{0, 1}, {0, 2}, {1, 3}})
	res, err := dfs.DFS(context.Background(), g, 0)
	require.NoError(t, err)

	assert.Equal(t, []int{0, 1, 3, 2}, res.PreOrder)
	assert.Equal(t, []int{3, 1, 2, 0}, res.PostOrder)
	assert.Equal(t, []int{-1, 0, 0, 1, -1}, res.Parent)

	_, err = dfs.DFS(context.Background(), g, 5)
	assert.ErrorIs(t, err, dfs.ErrStartNotFound)
	_, err = dfs.DFS(context.Background(), nil, 0)
	assert.ErrorIs(t, err, dfs.ErrGraphNil)
}

func TestPostOrder_MatchesTreeView(t *testing.T) {
	g, err := core.NewBuilder().
		AddNodes(0, 1, 2, 3, 4).
		AddEdge(0, 1).AddEdge(0, 2).AddEdge(2, 3).AddEdge(2, 4).
		BuildTree(0)
	require.NoError(t, err)
	tr, _ := g.Tree()

	got, err := dfs.PostOrder(context.Background(), g, tr.Root())
	require.NoError(t, err)
	assert.Equal(t, tr.PostOrder(), got)
}

func TestForest_CoversComponents(t *testing.T) {
	g := mustEdges(t, 4, [][2]int{{0, 1}, {2, 3}})
	res, err := dfs.Forest(context.Background(), g)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3}, res.PreOrder)
	assert.Equal(t, -1, res.Parent[2])
}

func TestHasCycle(t *testing.T) {
	cases := []struct {
		name string
		g    *core.Graph
		want bool
	}{
		{"undirected path", mustEdges(t, 3, [][2]int{{0, 1}, {1, 2}}), false},
		{"undirected triangle", mustEdges(t, 3, [][2]int{{0, 1}, {1, 2}, {2, 0}}), true},
		{"directed DAG diamond", mustEdges(t, 4, [][2]int{{0, 1}, {0, 2}, {1, 3}, {2, 3}}, core.WithDirected()), false},
		{"directed 2-cycle", mustEdges(t, 2, [][2]int{{0, 1}, {1, 0}}, core.WithDirected()), true},
		{"self-loop", mustEdges(t, 1, [][2]int{{0, 0}}, core.WithLoops()), true},
		{"empty", mustEdges(t, 0, nil), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, dfs.HasCycle(tc.g))
		})
	}
	assert.False(t, dfs.HasCycle(nil))
}

func TestTopologicalSort(t *testing.T) {
	g := mustEdges(t, 4, [][2]int{{0, 1}, {0, 2}, {1, 3}, {2, 3}}, core.WithDirected())
	order, err := dfs.TopologicalSort(context.Background(), g)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2, 1, 3}, order)

	_, err = dfs.TopologicalSort(context.Background(), mustEdges(t, 2, [][2]int{{0, 1}, {1, 0}}, core.WithDirected()))
	assert.ErrorIs(t, err, dfs.ErrCycleDetected)

	_, err = dfs.TopologicalSort(context.Background(), mustEdges(t, 2, [][2]int{{0, 1}}))
	assert.ErrorIs(t, err, dfs.ErrUndirected)
}

func TestTopologicalSort_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	g := mustEdges(t, 2, [][2]int{{0, 1}}, core.WithDirected())
	_, err := dfs.TopologicalSort(ctx, g)
	assert.True(t, core.IsCancelled(err))
}
