package builder_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/graphkke/bfs"
	"github.com/katalvlaran/graphkke/builder"
	"github.com/katalvlaran/graphkke/dfs"
)

func TestShapes_Counts(t *testing.T) {
	cases := []struct {
		name         string
		cons         builder.Constructor
		nodes, edges int
		cyclic       bool
	}{
		{"path", builder.Path(5), 5, 4, false},
		{"cycle", builder.Cycle(5), 5, 5, true},
		{"star", builder.Star(5), 5, 4, false},
		{"complete", builder.Complete(5), 5, 10, true},
		{"wheel", builder.Wheel(5), 5, 8, true},
		{"grid", builder.Grid(3, 4), 12, 17, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g, err := builder.Build(tc.cons)
			require.NoError(t, err)
			assert.Equal(t, tc.nodes, g.Order())
			assert.Equal(t, tc.edges, g.Size())
			assert.Equal(t, tc.cyclic, dfs.HasCycle(g))
			assert.True(t, bfs.Connected(g))
		})
	}
}

func TestShapes_TooFew(t *testing.T) {
	for _, cons := range []builder.Constructor{
		builder.Path(0), builder.Cycle(2), builder.Star(1), builder.Complete(0), builder.Wheel(3), builder.Grid(0, 3),
		builder.RandomSparse(0, 0.5), builder.RandomTree(0),
	} {
		_, err := builder.Build(cons, builder.WithSeed(1))
		assert.True(t, errors.Is(err, builder.ErrTooFewVertices))
	}
	_, err := builder.Build(nil)
	assert.True(t, errors.Is(err, builder.ErrNilConstructor))
}

func TestLabelsAndWeights(t *testing.T) {
	g, err := builder.Build(builder.Cycle(4),
		builder.WithLabels(builder.Alternating("A", "B")),
		builder.WithWeights(builder.UniformWeights(2, 2)))
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "A", "B"}, g.Labels())
	w, ok := g.EdgeWeight(3, 0)
	require.True(t, ok)
	assert.Equal(t, 2.0, w)
}

func TestRandom_DeterministicPerSeed(t *testing.T) {
	a, err := builder.Build(builder.RandomSparse(12, 0.3), builder.WithSeed(7),
		builder.WithWeights(builder.UniformWeights(1, 5)))
	require.NoError(t, err)
	b, err := builder.Build(builder.RandomSparse(12, 0.3), builder.WithSeed(7),
		builder.WithWeights(builder.UniformWeights(1, 5)))
	require.NoError(t, err)
	assert.Equal(t, a.Edges(), b.Edges())

	_, err = builder.Build(builder.RandomSparse(4, 0.5))
	assert.True(t, errors.Is(err, builder.ErrNeedRandSource))
	_, err = builder.Build(builder.RandomSparse(4, 1.5), builder.WithSeed(1))
	assert.True(t, errors.Is(err, builder.ErrInvalidProbability))

	full, err := builder.Build(builder.RandomSparse(4, 1), builder.WithDirected())
	require.NoError(t, err)
	assert.Equal(t, 12, full.Size())
}

func TestRandomTree(t *testing.T) {
	g, err := builder.BuildTree(builder.RandomTree(20), 0, builder.WithSeed(3))
	require.NoError(t, err)
	assert.True(t, g.IsTree())
	assert.Equal(t, 19, g.Size())

	_, err = builder.Build(builder.RandomTree(5))
	assert.True(t, errors.Is(err, builder.ErrNeedRandSource))
}
