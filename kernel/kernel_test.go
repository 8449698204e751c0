package kernel_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/graphkke/builder"
	"github.com/katalvlaran/graphkke/core"
	"github.com/katalvlaran/graphkke/kernel"
)

func triangle(t *testing.T) *core.Graph {
	t.Helper()
	g, err := core.FromEdgeList(3, [][2]int{{0, 1}, {1, 2}, {2, 0}})
	require.NoError(t, err)

	return g
}

func labelled(t *testing.T, ids []int, labels []string, pairs [][2]int, weights []float64) *core.Graph {
	t.Helper()
	b := core.NewBuilder()
	for k, id := range ids {
		b.AddNode(id, core.WithLabel(labels[k]))
	}
	for k, p := range pairs {
		w := 1.0
		if weights != nil {
			w = weights[k]
		}
		b.AddEdge(p[0], p[1], core.WithWeight(w))
	}
	g, err := b.Build()
	require.NoError(t, err)

	return g
}

func tree(t *testing.T, labels []string, root int, pairs [][2]int) *core.Graph {
	t.Helper()
	b := core.NewBuilder()
	for i, l := range labels {
		b.AddNode(i, core.WithLabel(l))
	}
	for _, p := range pairs {
		b.AddEdge(p[0], p[1])
	}
	g, err := b.BuildTree(root)
	require.NoError(t, err)

	return g
}

// mixed returns a small heterogeneous dataset of general graphs.
func mixed(t *testing.T) *core.Dataset {
	t.Helper()
	ds, err := core.NewDataset(
		triangle(t),
		labelled(t, []int{0, 1, 2, 3}, []string{"A", "B", "A", "B"},
			[][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}}, []float64{1, 2, 1, 2}),
		labelled(t, []int{0, 1, 2}, []string{"A", "A", "B"},
			[][2]int{{0, 1}, {1, 2}}, nil),
		labelled(t, []int{0, 1, 2, 3, 4}, []string{"B", "A", "A", "C", "A"},
			[][2]int{{0, 1}, {0, 2}, {0, 3}, {3, 4}}, []float64{0.5, 1, 1.5, 2}),
		labelled(t, []int{7, 8}, []string{"A", "B"}, [][2]int{{7, 8}}, nil),
	)
	require.NoError(t, err)

	return ds
}

func assertPSD(t *testing.T, r *kernel.Result) {
	t.Helper()
	var es mat.EigenSym
	require.True(t, es.Factorize(mat.NewSymDense(r.N, append([]float64(nil), r.Data...)), false))
	for _, v := range es.Values(nil) {
		assert.GreaterOrEqual(t, v, -1e-9)
	}
}

func TestMatrix_TriangleScenario(t *testing.T) {
	ds, err := core.NewDataset(triangle(t), triangle(t))
	require.NoError(t, err)

	res, err := kernel.Matrix(context.Background(), ds, kernel.WithVariant(kernel.ShortestPath))
	require.NoError(t, err)
	assert.Equal(t, 2, res.N)
	assert.Equal(t, []float64{3, 3, 3, 3}, res.Data)
	assert.False(t, res.Normalized)
	assert.Empty(t, res.Warnings)

	norm, err := kernel.Matrix(context.Background(), ds, kernel.WithNormalize(true))
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 1, 1, 1}, norm.Data)
	assert.True(t, norm.Normalized)
}

func TestMatrix_SubtreeOnGraphs(t *testing.T) {
	ds, err := core.NewDataset(
		tree(t, []string{"a", "b"}, 0, [][2]int{{0, 1}}),
		triangle(t),
	)
	require.NoError(t, err)

	_, err = kernel.Matrix(context.Background(), ds, kernel.WithVariant(kernel.Subtree))
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrIncompatibleStructure))
	var ce *core.Error
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, 1, ce.Index)
}

func TestMatrix_Properties(t *testing.T) {
	ds := mixed(t)
	cases := []struct {
		name string
		opts []kernel.Option
	}{
		{"sp-weighted", []kernel.Option{kernel.WithVariant(kernel.ShortestPath)}},
		{"sp-hops", []kernel.Option{kernel.WithDistance(kernel.DistanceHops)}},
		{"sp-degree", []kernel.Option{kernel.WithLabelPolicy(kernel.LabelsDegree)}},
		{"rw", []kernel.Option{kernel.WithVariant(kernel.RandomWalk)}},
		{"rw-unlabeled", []kernel.Option{kernel.WithVariant(kernel.RandomWalk), kernel.WithLabelPolicy(kernel.LabelsNone)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := kernel.Matrix(context.Background(), ds, tc.opts...)
			require.NoError(t, err)
			require.Equal(t, ds.Len(), res.N)
			for i := 0; i < res.N; i++ {
				assert.GreaterOrEqual(t, res.At(i, i), 0.0)
				for j := 0; j < res.N; j++ {
					assert.Equal(t, res.At(i, j), res.At(j, i))
				}
			}
			assertPSD(t, res)

			norm, err := kernel.Matrix(context.Background(), ds, append(tc.opts, kernel.WithNormalize(true))...)
			require.NoError(t, err)
			for _, v := range norm.Data {
				assert.GreaterOrEqual(t, v, -1.0)
				assert.LessOrEqual(t, v, 1.0)
			}
		})
	}
}

func TestMatrix_DeterministicAcrossWorkers(t *testing.T) {
	ds := mixed(t)
	for _, v := range []kernel.Variant{kernel.ShortestPath, kernel.RandomWalk} {
		base, err := kernel.Matrix(context.Background(), ds, kernel.WithVariant(v), kernel.WithWorkers(1))
		require.NoError(t, err)
		for _, w := range []int{2, 3, 16} {
			got, err := kernel.Matrix(context.Background(), ds, kernel.WithVariant(v), kernel.WithWorkers(w))
			require.NoError(t, err)
			assert.Equal(t, base.Data, got.Data, "variant %s workers %d", v, w)
		}
	}
}

func TestCompute_RelabelingInvariance(t *testing.T) {
	a := labelled(t, []int{0, 1, 2, 3}, []string{"A", "B", "C", "A"},
		[][2]int{{0, 1}, {1, 2}, {2, 3}}, []float64{1, 2, 3})
	// Same graph, nodes inserted in another order under other IDs.
	b := labelled(t, []int{40, 30, 20, 10}, []string{"A", "C", "B", "A"},
		[][2]int{{20, 30}, {40, 30}, {10, 20}}, []float64{2, 3, 1})
	c := labelled(t, []int{0, 1, 2}, []string{"A", "B", "C"},
		[][2]int{{0, 1}, {1, 2}}, []float64{1, 2})

	ctx := context.Background()
	for _, v := range []kernel.Variant{kernel.ShortestPath, kernel.RandomWalk} {
		kac, err := kernel.Compute(ctx, a, c, kernel.WithVariant(v))
		require.NoError(t, err)
		kbc, err := kernel.Compute(ctx, b, c, kernel.WithVariant(v))
		require.NoError(t, err)
		assert.InDelta(t, kac, kbc, 1e-12, v.String())

		kab, err := kernel.Compute(ctx, a, b, kernel.WithVariant(v), kernel.WithNormalize(true))
		require.NoError(t, err)
		assert.InDelta(t, 1, kab, 1e-12, v.String())
	}
}

func TestMatrix_SubtreeKernel(t *testing.T) {
	ds, err := core.NewDataset(
		tree(t, []string{"r", "x", "y"}, 0, [][2]int{{0, 1}, {0, 2}}),
		tree(t, []string{"y", "r", "x"}, 1, [][2]int{{1, 2}, {1, 0}}),
		tree(t, []string{"r", "x"}, 0, [][2]int{{0, 1}}),
	)
	require.NoError(t, err)

	res, err := kernel.Matrix(context.Background(), ds, kernel.WithVariant(kernel.Subtree))
	require.NoError(t, err)
	// Isomorphic trees: identical rows.
	assert.Equal(t, res.At(0, 0), res.At(0, 1))
	assert.Equal(t, res.At(0, 0), res.At(1, 1))
	// r(x) shares only its leaves with r(x, y): the productions differ.
	assert.Equal(t, 1.0, res.At(0, 2))
	assertPSD(t, res)
}

func TestMatrix_NormalizationWarning(t *testing.T) {
	single, err := core.FromEdgeList(1, nil)
	require.NoError(t, err)
	ds, err := core.NewDataset(triangle(t), single)
	require.NoError(t, err)

	res, err := kernel.Matrix(context.Background(), ds, kernel.WithNormalize(true))
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 0, 0, 0}, res.Data)
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, core.KindNumericalInstability, res.Warnings[0].Kind)
	assert.Equal(t, 1, res.Warnings[0].Index)
}

func TestCompute_NormalizedZeroSelfSimilarity(t *testing.T) {
	single, err := core.FromEdgeList(1, nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	v, err := kernel.Compute(context.Background(), triangle(t), single,
		kernel.WithNormalize(true), kernel.WithLogger(logger))
	require.NoError(t, err)
	assert.Zero(t, v)
	assert.Contains(t, buf.String(), "self-similarity is not positive")

	buf.Reset()
	v, err = kernel.Compute(context.Background(), triangle(t), triangle(t),
		kernel.WithNormalize(true), kernel.WithLogger(logger))
	require.NoError(t, err)
	assert.Equal(t, 1.0, v)
	assert.Empty(t, buf.String())
}

func TestCompute_LongWeightedDistances(t *testing.T) {
	// 1e13 and 5e13 are far beyond 2^63 resolution steps of 1e-6.
	edge := func(w float64) *core.Graph {
		return labelled(t, []int{0, 1}, []string{"", ""}, [][2]int{{0, 1}}, []float64{w})
	}
	ctx := context.Background()

	k, err := kernel.Compute(ctx, edge(1e13), edge(5e13))
	require.NoError(t, err)
	assert.Zero(t, k)

	k, err = kernel.Compute(ctx, edge(1e13), edge(1e13))
	require.NoError(t, err)
	assert.Equal(t, 1.0, k)

	k, err = kernel.Compute(ctx, edge(2e13), edge(3e13))
	require.NoError(t, err)
	assert.Zero(t, k)
}

func TestMatrix_Errors(t *testing.T) {
	ctx := context.Background()
	ds, err := core.NewDataset(triangle(t))
	require.NoError(t, err)

	_, err = kernel.Matrix(ctx, ds, kernel.WithWalkDecay(0))
	assert.True(t, errors.Is(err, core.ErrInvalidDimension))
	_, err = kernel.Matrix(ctx, ds, kernel.WithWalkLength(-1))
	assert.True(t, errors.Is(err, core.ErrInvalidDimension))
	_, err = kernel.Matrix(ctx, ds, kernel.WithDistanceResolution(math.NaN()))
	assert.True(t, errors.Is(err, core.ErrInvalidDimension))

	neg := labelled(t, []int{0, 1}, []string{"", ""}, [][2]int{{0, 1}}, []float64{-2})
	_, err = kernel.Compute(ctx, triangle(t), neg)
	assert.True(t, errors.Is(err, core.ErrNegativeWeight))
	var ce *core.Error
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, 1, ce.Index)

	cctx, cancel := context.WithCancel(ctx)
	cancel()
	_, err = kernel.Matrix(cctx, mixed(t))
	assert.True(t, core.IsCancelled(err))
}

func TestMatrix_EmptyDataset(t *testing.T) {
	ds, err := core.NewDataset()
	require.NoError(t, err)
	res, err := kernel.Matrix(context.Background(), ds)
	require.NoError(t, err)
	assert.Zero(t, res.N)
	assert.Empty(t, res.Data)
}

func TestMatrix_Span(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	defer func() { _ = tp.Shutdown(context.Background()) }()

	_, err := kernel.Matrix(context.Background(), mixed(t),
		kernel.WithVariant(kernel.RandomWalk), kernel.WithTracerProvider(tp))
	require.NoError(t, err)

	spans := rec.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "kernel.Matrix", spans[0].Name())
}

func TestResult_Dense(t *testing.T) {
	ds, err := core.NewDataset(triangle(t), triangle(t))
	require.NoError(t, err)
	res, err := kernel.Matrix(context.Background(), ds)
	require.NoError(t, err)

	d, err := res.Dense()
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{3, 3}, {3, 3}}, d.Rows2D())
}

func TestParse(t *testing.T) {
	v, err := kernel.ParseVariant("Random-Walk")
	require.NoError(t, err)
	assert.Equal(t, kernel.RandomWalk, v)
	_, err = kernel.ParseVariant("wl")
	assert.True(t, errors.Is(err, core.ErrInvalidDimension))

	p, err := kernel.ParseLabelPolicy("degree")
	require.NoError(t, err)
	assert.Equal(t, kernel.LabelsDegree, p)

	d, err := kernel.ParseDistance("HOPS")
	require.NoError(t, err)
	assert.Equal(t, kernel.DistanceHops, d)
	assert.Equal(t, "hops", d.String())
}

// randomDataset mixes seeded random graphs and trees.
func randomDataset(tb testing.TB, graphs, trees bool) *core.Dataset {
	tb.Helper()
	var gs []*core.Graph
	for seed := int64(1); seed <= 6; seed++ {
		opts := []builder.Option{
			builder.WithSeed(seed),
			builder.WithLabels(builder.Alternating("A", "B", "C")),
			builder.WithWeights(builder.UniformWeights(0.5, 3)),
		}
		if graphs {
			g, err := builder.Build(builder.RandomSparse(6+int(seed), 0.35), opts...)
			require.NoError(tb, err)
			gs = append(gs, g)
		}
		if trees {
			tr, err := builder.BuildTree(builder.RandomTree(4+int(seed)), 0, opts...)
			require.NoError(tb, err)
			gs = append(gs, tr)
		}
	}
	ds, err := core.NewDataset(gs...)
	require.NoError(tb, err)

	return ds
}

func TestMatrix_RandomDatasets(t *testing.T) {
	cases := []struct {
		name    string
		ds      *core.Dataset
		variant kernel.Variant
	}{
		{"sp", randomDataset(t, true, true), kernel.ShortestPath},
		{"rw", randomDataset(t, true, true), kernel.RandomWalk},
		{"subtree", randomDataset(t, false, true), kernel.Subtree},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			one, err := kernel.Matrix(context.Background(), tc.ds,
				kernel.WithVariant(tc.variant), kernel.WithWorkers(1))
			require.NoError(t, err)
			many, err := kernel.Matrix(context.Background(), tc.ds,
				kernel.WithVariant(tc.variant), kernel.WithWorkers(8))
			require.NoError(t, err)
			assert.Equal(t, one.Data, many.Data)
			assertPSD(t, one)
		})
	}
}

func BenchmarkMatrix(b *testing.B) {
	ds := randomDataset(b, true, true)
	for _, v := range []kernel.Variant{kernel.ShortestPath, kernel.RandomWalk} {
		b.Run(v.String(), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				if _, err := kernel.Matrix(context.Background(), ds, kernel.WithVariant(v)); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
