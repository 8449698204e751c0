// SPDX-License-Identifier: MIT

// Package pipeline runs the full analysis for a Dataset: kernel matrix,
// then an optional kernel-PCA embedding, driven by a config.Config.
package pipeline

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/katalvlaran/graphkke/bfs"
	"github.com/katalvlaran/graphkke/config"
	"github.com/katalvlaran/graphkke/core"
	"github.com/katalvlaran/graphkke/dfs"
	"github.com/katalvlaran/graphkke/embed"
	"github.com/katalvlaran/graphkke/kernel"
)

// Output holds the derived artifacts. Embedding is nil when
// Config.Embedding.Dimension is 0. Warnings merges kernel and embedding
// warnings in that order.
type Output struct {
	// RunID tags every log line of the run.
	RunID     string
	Kernel    *kernel.Result
	Embedding *embed.Embedding
	Warnings  []core.Warning
}

// Option customizes Run.
type Option func(*runOptions)

type runOptions struct {
	logger *slog.Logger
}

// WithLogger routes diagnostics to l.
func WithLogger(l *slog.Logger) Option { return func(o *runOptions) { o.logger = l } }

// Run computes the kernel matrix of ds under cfg and, when requested, its
// embedding. Config.Embedding.Dimension == 0 disables the embedding stage
// rather than requesting a zero-dimensional one; use embed.KernelPCA directly
// to get InvalidDimension for k = 0. Any error aborts the run; a caller abort
// surfaces as a core.ErrCancelled outcome.
func Run(ctx context.Context, ds *core.Dataset, cfg config.Config, opts ...Option) (*Output, error) {
	ro := runOptions{}
	for _, opt := range opts {
		opt(&ro)
	}
	if ro.logger == nil {
		ro.logger = slog.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if ds == nil {
		return nil, core.Errorf(core.KindMalformedStructure, "Pipeline", "nil dataset")
	}
	runID := uuid.NewString()
	logger := ro.logger.With("run_id", runID)

	describe(ctx, logger, ds)

	kopts, err := cfg.KernelOptions(logger)
	if err != nil {
		return nil, err
	}
	km, err := kernel.Matrix(ctx, ds, kopts...)
	if err != nil {
		return nil, err
	}
	out := &Output{RunID: runID, Kernel: km, Warnings: append([]core.Warning(nil), km.Warnings...)}

	if cfg.Embedding.Dimension == 0 {
		return out, nil
	}
	k, err := km.Dense()
	if err != nil {
		return nil, err
	}
	eopts, err := cfg.EmbedOptions(logger)
	if err != nil {
		return nil, err
	}
	emb, err := embed.KernelPCA(ctx, k, cfg.Embedding.Dimension, eopts...)
	if err != nil {
		return nil, err
	}
	out.Embedding = emb
	out.Warnings = append(out.Warnings, emb.Warnings...)

	logger.Info("pipeline finished",
		"structures", ds.Len(),
		"variant", km.Variant.String(),
		"dimension", emb.K,
		"warnings", len(out.Warnings),
	)

	return out, nil
}

// describe logs one debug line per structure. It is skipped entirely unless
// debug logging is enabled.
func describe(ctx context.Context, logger *slog.Logger, ds *core.Dataset) {
	if !logger.Enabled(ctx, slog.LevelDebug) {
		return
	}
	for i, g := range ds.Graphs() {
		st := g.Stats()
		_, components := bfs.Components(g)
		logger.Debug("structure",
			"index", i,
			"nodes", st.Nodes,
			"edges", st.Edges,
			"directed", st.Directed,
			"tree", st.Tree,
			"components", components,
			"cyclic", dfs.HasCycle(g),
		)
	}
}
