package subtree_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/graphkke/core"
	"github.com/katalvlaran/graphkke/subtree"
)

func buildTree(t *testing.T, n, root int, pairs [][2]int) *core.Graph {
	t.Helper()
	b := core.NewBuilder()
	for i := 0; i < n; i++ {
		b.AddNode(i)
	}
	for _, p := range pairs {
		b.AddEdge(p[0], p[1])
	}
	g, err := b.BuildTree(root)
	require.NoError(t, err)

	return g
}

func prepare(t *testing.T, g *core.Graph, labels []string) *subtree.Prepared {
	t.Helper()
	if labels == nil {
		labels = make([]string, g.Order())
	}
	p, err := subtree.Prepare(context.Background(), g, labels)
	require.NoError(t, err)

	return p
}

func TestMatch_SingleEdge(t *testing.T) {
	p := prepare(t, buildTree(t, 2, 0, [][2]int{{0, 1}}), nil)
	// leaf×leaf = 1, root×root = 1·(1+1) = 2, root×leaf = 0.
	k, err := subtree.Match(context.Background(), p, p, 1)
	require.NoError(t, err)
	assert.Equal(t, 3.0, k)
}

func TestMatch_IsomorphismInvariant(t *testing.T) {
	// Same labelled tree, children added in a different order and with
	// different node numbering.
	labelsA := []string{"r", "x", "y", "z"}
	a := prepare(t, buildTree(t, 4, 0, [][2]int{{0, 1}, {0, 2}, {2, 3}}), labelsA)
	labelsB := []string{"y", "r", "z", "x"}
	b := prepare(t, buildTree(t, 4, 1, [][2]int{{1, 0}, {0, 2}, {1, 3}}), labelsB)

	assert.Equal(t, a.Code(), b.Code())

	ctx := context.Background()
	kab, err := subtree.Match(ctx, a, b, 0.5)
	require.NoError(t, err)
	kaa, err := subtree.Match(ctx, a, a, 0.5)
	require.NoError(t, err)
	kba, err := subtree.Match(ctx, b, a, 0.5)
	require.NoError(t, err)
	assert.InDelta(t, kaa, kab, 1e-12)
	assert.InDelta(t, kab, kba, 1e-12)
}

func TestMatch_DifferentLabelsShareNothing(t *testing.T) {
	g := buildTree(t, 2, 0, [][2]int{{0, 1}})
	a := prepare(t, g, []string{"a", "a"})
	b := prepare(t, g, []string{"b", "b"})
	k, err := subtree.Match(context.Background(), a, b, 1)
	require.NoError(t, err)
	assert.Zero(t, k)
	assert.NotEqual(t, a.Code(), b.Code())
}

func TestPrepare_RejectsGeneralGraph(t *testing.T) {
	g, err := core.FromEdgeList(3, [][2]int{{0, 1}, {1, 2}, {2, 0}})
	require.NoError(t, err)
	_, err = subtree.Prepare(context.Background(), g, make([]string, 3))
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrIncompatibleStructure))
	assert.Contains(t, err.Error(), "cycle")

	path, err := core.FromEdgeList(3, [][2]int{{0, 1}, {1, 2}})
	require.NoError(t, err)
	_, err = subtree.Prepare(context.Background(), path, make([]string, 3))
	assert.True(t, errors.Is(err, core.ErrIncompatibleStructure))
	assert.Contains(t, err.Error(), "WithRoot")
}

func TestMatch_SharedRootProduction(t *testing.T) {
	// a = R{A, B{x}}, b = R{A, B}: the roots share production R(A, B) while
	// the B nodes differ, so k = C(A, A) + C(R, R) = 1 + (1+1)(1+0) = 3 for
	// every grandchild label x.
	b := prepare(t, buildTree(t, 3, 0, [][2]int{{0, 1}, {0, 2}}), []string{"R", "A", "B"})
	for _, x := range []string{"C", "D", "E", "F", "G", "H", "I", "J", "0", "zz"} {
		t.Run(x, func(t *testing.T) {
			a := prepare(t, buildTree(t, 4, 0, [][2]int{{0, 1}, {0, 2}, {2, 3}}), []string{"R", "A", "B", x})
			k, err := subtree.Match(context.Background(), a, b, 1)
			require.NoError(t, err)
			assert.Equal(t, 3.0, k)
		})
	}
}

func TestMatch_SharedProductionWithRepeatedLabels(t *testing.T) {
	// a = R{B{x}, B}, b = R{B, B{x}} are isomorphic regardless of how the
	// equal-label children are ordered.
	a := prepare(t, buildTree(t, 4, 0, [][2]int{{0, 1}, {0, 2}, {1, 3}}), []string{"R", "B", "B", "x"})
	b := prepare(t, buildTree(t, 4, 0, [][2]int{{0, 1}, {0, 2}, {2, 3}}), []string{"R", "B", "B", "x"})
	assert.Equal(t, a.Code(), b.Code())

	ctx := context.Background()
	kab, err := subtree.Match(ctx, a, b, 1)
	require.NoError(t, err)
	kaa, err := subtree.Match(ctx, a, a, 1)
	require.NoError(t, err)
	assert.Equal(t, kaa, kab)
}

func TestMatch_Validation(t *testing.T) {
	p := prepare(t, buildTree(t, 1, 0, nil), nil)
	_, err := subtree.Match(context.Background(), p, p, 1.5)
	assert.True(t, errors.Is(err, core.ErrInvalidDimension))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = subtree.Match(ctx, p, p, 1)
	assert.True(t, core.IsCancelled(err))
}
