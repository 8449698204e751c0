package pipeline_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/graphkke/config"
	"github.com/katalvlaran/graphkke/core"
	"github.com/katalvlaran/graphkke/pipeline"
)

func triangles(t *testing.T) *core.Dataset {
	t.Helper()
	tri := core.NewBuilder().AddNodes(0, 1, 2).AddEdge(0, 1).AddEdge(1, 2).AddEdge(2, 0)
	ds, err := core.BuildDataset(tri, tri)
	require.NoError(t, err)

	return ds
}

func TestRun_KernelOnly(t *testing.T) {
	out, err := pipeline.Run(context.Background(), triangles(t), config.Default())
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 3, 3, 3}, out.Kernel.Data)
	assert.Nil(t, out.Embedding)
	assert.Empty(t, out.Warnings)

	// Dimension 0 switches the embedding off instead of failing.
	cfg := config.Default()
	cfg.Embedding.Dimension = 0
	out, err = pipeline.Run(context.Background(), triangles(t), cfg)
	require.NoError(t, err)
	assert.Nil(t, out.Embedding)
}

func TestRun_WithEmbedding(t *testing.T) {
	cfg := config.Default()
	cfg.Embedding.Dimension = 1

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	out, err := pipeline.Run(context.Background(), triangles(t), cfg, pipeline.WithLogger(logger))
	require.NoError(t, err)
	require.NotNil(t, out.Embedding)
	assert.Equal(t, 2, out.Embedding.N)
	assert.Equal(t, 1, out.Embedding.K)
	// Identical structures embed onto the same point.
	assert.InDelta(t, out.Embedding.At(0, 0), out.Embedding.At(1, 0), 1e-12)

	logs := buf.String()
	assert.Contains(t, logs, "msg=structure")
	assert.Contains(t, logs, "cyclic=true")
	assert.Contains(t, logs, "pipeline finished")
	assert.Contains(t, logs, "run_id="+out.RunID)
	assert.Len(t, out.RunID, 36)
}

func TestRun_Errors(t *testing.T) {
	ctx := context.Background()

	cfg := config.Default()
	cfg.Embedding.Dimension = 3
	_, err := pipeline.Run(ctx, triangles(t), cfg)
	assert.True(t, errors.Is(err, core.ErrInvalidDimension))

	cfg = config.Default()
	cfg.Kernel.Variant = "subtree"
	single := core.NewBuilder().AddNode(0)
	pair := core.NewBuilder().AddNodes(0, 1).AddEdge(0, 1)
	ds, err := core.BuildDataset(single, pair)
	require.NoError(t, err)
	_, err = pipeline.Run(ctx, ds, cfg)
	assert.True(t, errors.Is(err, core.ErrIncompatibleStructure))

	cfg = config.Default()
	cfg.Kernel.WalkDecay = 2
	_, err = pipeline.Run(ctx, triangles(t), cfg)
	assert.True(t, errors.Is(err, config.ErrInvalidConfig))

	cctx, cancel := context.WithCancel(ctx)
	cancel()
	_, err = pipeline.Run(cctx, triangles(t), config.Default())
	assert.True(t, core.IsCancelled(err))
}
