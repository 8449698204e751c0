// SPDX-License-Identifier: MIT
//
// File: kernel.go
// Role: Pairwise and batch kernel evaluation.
// Policy:
//   - Per-structure features are prepared once; pair evaluation only reads them.
//   - Every matrix cell is written by exactly one goroutine with a fixed
//     operation order, so Data is bit-identical for any worker count.
//   - Fail fast: the first error cancels the batch and no partial matrix
//     is returned.

package kernel

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/graphkke/core"
)

const (
	opParse   = "ParseKernel"
	opPrepare = "KernelPrepare"
	opCompute = "KernelCompute"
	opMatrix  = "KernelMatrix"
)

// Compute returns k(a, b) for a single pair. With WithNormalize(true) the
// value is k(a,b)/sqrt(k(a,a)·k(b,b)), or 0 when either self-similarity is
// not positive. That case is logged at Warn level only; Compute has no
// Warnings slice, so callers that need the core.Warning should use Matrix.
//
// Errors:
//   - *core.Error KindIncompatibleStructure for Subtree on a non-tree
//     (Index 0 or 1 names the offending argument).
//   - *core.Error KindNegativeWeight for a negative edge weight.
//   - *core.Error KindInvalidDimension for out-of-range options.
//   - a core.ErrCancelled outcome when ctx is done.
func Compute(ctx context.Context, a, b *core.Graph, opts ...Option) (float64, error) {
	cfg, err := resolve(opCompute, opts)
	if err != nil {
		return 0, err
	}
	fa, err := prepare(ctx, a, &cfg)
	if err != nil {
		return 0, core.AtIndex(err, 0)
	}
	fb, err := prepare(ctx, b, &cfg)
	if err != nil {
		return 0, core.AtIndex(err, 1)
	}

	kab, err := pair(ctx, fa, fb, &cfg)
	if err != nil || !cfg.Normalize {
		return kab, err
	}
	kaa, err := pair(ctx, fa, fa, &cfg)
	if err != nil {
		return 0, err
	}
	kbb, err := pair(ctx, fb, fb, &cfg)
	if err != nil {
		return 0, err
	}
	v, ok := cosine(kab, kaa, kbb)
	if !ok {
		cfg.Logger.Warn("self-similarity is not positive; normalized value set to 0",
			"variant", cfg.Variant.String(), "k_aa", kaa, "k_bb", kbb)
	}

	return v, nil
}

// Matrix computes the N×N kernel matrix of ds.
//
// Implementation:
//   - Stage 1: prepare features for every structure over the worker pool.
//   - Stage 2: evaluate the upper triangle including the diagonal, one task
//     per cell, and mirror it into the lower triangle.
//   - Stage 3: optionally cosine-normalize; structures whose self-similarity
//     is not positive get a zero row/column and a NumericalInstability warning.
//
// Errors carry the index of the offending structure where one exists.
// Cancellation is checked before every cell.
//
// Complexity: O(N·P + N²·C) where P is the per-structure preparation cost
// and C the per-pair cost of the variant.
func Matrix(ctx context.Context, ds *core.Dataset, opts ...Option) (res *Result, err error) {
	cfg, err := resolve(opMatrix, opts)
	if err != nil {
		return nil, err
	}
	if ds == nil {
		return nil, core.Errorf(core.KindMalformedStructure, opMatrix, "nil dataset")
	}
	variant := cfg.Variant.String()
	n := ds.Len()

	ctx, span := cfg.TracerProvider.Tracer(tracerName).Start(ctx, "kernel.Matrix",
		trace.WithAttributes(
			attribute.String("variant", variant),
			attribute.Int("structures", n),
			attribute.Int("workers", cfg.Workers),
			attribute.Bool("normalize", cfg.Normalize),
		),
	)
	defer span.End()
	start := time.Now()
	defer func() {
		if err != nil {
			matrixErrors.WithLabelValues(variant, errorKind(err)).Inc()
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			cfg.Logger.Debug("kernel matrix failed",
				"variant", variant, "structures", n, "error", err)
		}
	}()

	feats, err := prepareAll(ctx, ds, &cfg)
	if err != nil {
		return nil, err
	}

	data := make([]float64, n*n)
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(cfg.Workers)
	for i := 0; i < n && egCtx.Err() == nil; i++ {
		for j := i; j < n && egCtx.Err() == nil; j++ {
			eg.Go(func() error {
				if err := core.CheckContext(egCtx); err != nil {
					return err
				}
				v, err := pair(egCtx, feats[i], feats[j], &cfg)
				if err != nil {
					return err
				}
				data[i*n+j] = v
				data[j*n+i] = v

				return nil
			})
		}
	}
	if err = eg.Wait(); err != nil {
		return nil, err
	}
	if err = core.CheckContext(ctx); err != nil {
		return nil, err
	}
	pairsTotal.WithLabelValues(variant).Add(float64(n * (n + 1) / 2))

	res = &Result{N: n, Data: data, Variant: cfg.Variant}
	if cfg.Normalize {
		normalize(res)
		for _, w := range res.Warnings {
			cfg.Logger.Warn("kernel normalization", "warning", w.String())
		}
	}

	elapsed := time.Since(start)
	matrixSeconds.WithLabelValues(variant).Observe(elapsed.Seconds())
	span.SetAttributes(attribute.Int("warnings", len(res.Warnings)))
	span.SetStatus(codes.Ok, "")
	cfg.Logger.Debug("kernel matrix computed",
		"variant", variant,
		"structures", n,
		"normalized", res.Normalized,
		"elapsed", elapsed,
	)

	return res, nil
}

// prepareAll computes features for every structure of ds in parallel.
func prepareAll(ctx context.Context, ds *core.Dataset, cfg *Options) ([]*features, error) {
	n := ds.Len()
	feats := make([]*features, n)
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(cfg.Workers)
	for i := 0; i < n && egCtx.Err() == nil; i++ {
		eg.Go(func() error {
			if err := core.CheckContext(egCtx); err != nil {
				return err
			}
			f, err := prepare(egCtx, ds.At(i), cfg)
			if err != nil {
				return core.AtIndex(err, i)
			}
			feats[i] = f

			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	if err := core.CheckContext(ctx); err != nil {
		return nil, err
	}

	return feats, nil
}

// normalize rewrites r in place to k(i,j)/sqrt(k(i,i)·k(j,j)).
func normalize(r *Result) {
	n := r.N
	diag := make([]float64, n)
	for i := range diag {
		diag[i] = r.Data[i*n+i]
		if !(diag[i] > 0) {
			r.Warnings = append(r.Warnings, core.Warning{
				Kind:  core.KindNumericalInstability,
				Index: i,
				Op:    opMatrix,
				Msg:   fmt.Sprintf("self-similarity %g is not positive; row and column set to 0", diag[i]),
			})
		}
	}
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			v, _ := cosine(r.Data[i*n+j], diag[i], diag[j])
			r.Data[i*n+j] = v
			r.Data[j*n+i] = v
		}
	}
	r.Normalized = true
}

// errorKind labels err for metrics.
func errorKind(err error) string {
	if core.IsCancelled(err) {
		return "Cancelled"
	}
	if k := core.KindOf(err); k != 0 {
		return k.String()
	}

	return "Other"
}
