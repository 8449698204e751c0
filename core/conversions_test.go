package core_test

import (
	"errors"
	"testing"

	"github.com/katalvlaran/graphkke/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEdgeList(t *testing.T) {
	g, err := core.FromEdgeList(4, [][2]int{{0, 1}, {1, 2}, {2, 3}})
	require.NoError(t, err)
	assert.Equal(t, 4, g.Order())
	assert.Equal(t, [][2]int{{0, 1}, {1, 2}, {2, 3}}, g.EdgePairs())
	assert.True(t, g.HasEdge(3, 2))

	_, err = core.FromEdgeList(2, [][2]int{{0, 2}})
	assert.True(t, errors.Is(err, core.ErrMalformedStructure))
}

func TestFromAdjacency_RoundTrip(t *testing.T) {
	adj := [][]float64{
		{0, 2, 0},
		{2, 0, 1},
		{0, 1, 0},
	}
	g, err := core.FromAdjacency(adj)
	require.NoError(t, err)
	assert.False(t, g.Directed())
	assert.Equal(t, 2, g.Size())
	assert.Equal(t, adj, g.AdjacencyMatrix())
}

func TestFromAdjacency_AsymmetricIsDirected(t *testing.T) {
	g, err := core.FromAdjacency([][]float64{
		{0, 1},
		{0, 0},
	})
	require.NoError(t, err)
	assert.True(t, g.Directed())
	assert.True(t, g.HasEdge(0, 1))
	assert.False(t, g.HasEdge(1, 0))
}

func TestFromAdjacency_Invalid(t *testing.T) {
	_, err := core.FromAdjacency([][]float64{{0, 1}, {1}})
	assert.True(t, errors.Is(err, core.ErrMalformedStructure))
}

func TestFromAdjacency_DiagonalLoops(t *testing.T) {
	g, err := core.FromAdjacency([][]float64{{3}})
	require.NoError(t, err)
	assert.Equal(t, 1, g.LoopCount())
}
