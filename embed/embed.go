// SPDX-License-Identifier: MIT

// Package embed reduces a kernel matrix to a low-dimensional embedding with
// kernel PCA.
//
// The (optionally double-centered) kernel matrix is eigendecomposed, the
// eigenvalues are sorted in descending order and the top-K eigenvectors are
// scaled by the square roots of their eigenvalues, so that row i of the
// embedding is the projection of structure i onto the leading principal
// axes in feature space. With centering off and K = n, Y·Yᵀ reproduces the
// kernel matrix.
//
// Mildly negative eigenvalues from numerical noise are clipped to zero and
// reported as core.Warning values instead of failing the call.
package embed

import (
	"context"
	"fmt"
	"math"
	"slices"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/katalvlaran/graphkke/core"
	"github.com/katalvlaran/graphkke/matrix"
)

const (
	opKernelPCA    = "KernelPCA"
	opFromFeatures = "FromFeatures"
)

// Embedding is an N×K matrix in row-major order; row i belongs to
// structure i. Eigenvalues holds the K retained (clipped) eigenvalues in
// descending order.
type Embedding struct {
	N, K        int
	Data        []float64
	Eigenvalues []float64
	Warnings    []core.Warning
}

// At returns coordinate j of row i.
func (e *Embedding) At(i, j int) float64 { return e.Data[i*e.K+j] }

// Row returns a copy of row i.
func (e *Embedding) Row(i int) []float64 {
	return append([]float64(nil), e.Data[i*e.K:(i+1)*e.K]...)
}

// KernelPCA embeds the n×n kernel matrix k into dim dimensions.
//
// Implementation:
//   - Stage 1: validate shape, finiteness and symmetry; symmetrize exactly.
//   - Stage 2: double-center when Options.Center is set.
//   - Stage 3: eigendecompose, then stable-sort descending so that equal
//     eigenvalues keep the solver's order.
//   - Stage 4: clip negatives, fix each eigenvector's sign so that its
//     largest-magnitude entry (first one on ties) is positive, and scale by
//     sqrt(λ).
//
// Errors:
//   - *core.Error KindInvalidDimension for a nil or non-square k, or dim
//     outside 1..n.
//   - *core.Error KindMalformedStructure for NaN/Inf entries or an
//     asymmetric k.
//   - *core.Error KindNumericalInstability when the eigensolver fails.
//   - a core.ErrCancelled outcome when ctx is done.
func KernelPCA(ctx context.Context, k *matrix.Dense, dim int, opts ...Option) (e *Embedding, err error) {
	cfg, err := resolve(opts)
	if err != nil {
		return nil, err
	}
	if err = matrix.ValidateSquare(k); err != nil {
		return nil, &core.Error{Kind: core.KindInvalidDimension, Index: core.NoIndex, Op: opKernelPCA,
			Msg: "kernel matrix must be square", Err: err}
	}
	n := k.Rows()
	if dim < 1 || dim > n {
		return nil, core.Errorf(core.KindInvalidDimension, opKernelPCA,
			"target dimension %d outside [1, %d]", dim, n)
	}
	if err = core.CheckContext(ctx); err != nil {
		return nil, err
	}

	ctx, span := cfg.TracerProvider.Tracer(tracerName).Start(ctx, "embed.KernelPCA",
		trace.WithAttributes(
			attribute.Int("n", n),
			attribute.Int("dim", dim),
			attribute.String("solver", cfg.Solver.String()),
			attribute.Bool("center", cfg.Center),
		),
	)
	defer span.End()
	start := time.Now()
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
	}()

	sym, scale, err := prepareKernel(k, &cfg)
	if err != nil {
		return nil, err
	}
	vals, vecs, err := eigenpairs(ctx, sym, scale, &cfg)
	if err != nil {
		return nil, err
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		switch {
		case vals[a] > vals[b]:
			return -1
		case vals[a] < vals[b]:
			return 1
		}
		return 0
	})

	e = &Embedding{N: n, K: dim, Data: make([]float64, n*dim), Eigenvalues: make([]float64, dim)}
	clipped, most := 0, 0.0
	for _, v := range vals {
		if v < -cfg.Epsilon {
			clipped++
			most = math.Min(most, v)
		}
	}
	if clipped > 0 {
		e.Warnings = append(e.Warnings, core.Warning{
			Kind:  core.KindNumericalInstability,
			Index: core.NoIndex,
			Op:    opKernelPCA,
			Msg:   fmt.Sprintf("clipped %d eigenvalue(s) below -%g to 0 (most negative %g)", clipped, cfg.Epsilon, most),
		})
		clippedTotal.Add(float64(clipped))
		cfg.Logger.Warn("kernel matrix is not positive semi-definite",
			"clipped", clipped, "most_negative", most, "epsilon", cfg.Epsilon)
	}

	for j := 0; j < dim; j++ {
		col := order[j]
		lambda := math.Max(vals[col], 0)
		e.Eigenvalues[j] = lambda
		s := math.Sqrt(lambda)
		if signOf(vecs, n, col) < 0 {
			s = -s
		}
		for i := 0; i < n; i++ {
			e.Data[i*dim+j] = vecs[i*n+col] * s
		}
	}

	elapsed := time.Since(start)
	embedSeconds.WithLabelValues(cfg.Solver.String()).Observe(elapsed.Seconds())
	span.SetAttributes(attribute.Int("clipped", clipped))
	span.SetStatus(codes.Ok, "")
	cfg.Logger.Debug("kernel PCA computed",
		"n", n, "dim", dim, "solver", cfg.Solver.String(), "elapsed", elapsed)

	return e, nil
}

// prepareKernel validates k and returns the exactly symmetric, optionally
// centered matrix to decompose together with max|k| (at least 1).
func prepareKernel(k *matrix.Dense, cfg *Options) (*matrix.Dense, float64, error) {
	if err := matrix.ValidateFinite(k); err != nil {
		return nil, 0, &core.Error{Kind: core.KindMalformedStructure, Index: core.NoIndex, Op: opKernelPCA,
			Msg: "kernel matrix has non-finite entries", Err: err}
	}
	scale := 1.0
	for _, v := range k.Data() {
		scale = math.Max(scale, math.Abs(v))
	}
	if err := matrix.ValidateSymmetric(k, cfg.SymmetryTol*scale); err != nil {
		return nil, 0, &core.Error{Kind: core.KindMalformedStructure, Index: core.NoIndex, Op: opKernelPCA,
			Msg: "kernel matrix is not symmetric", Err: err}
	}
	sym, err := matrix.Symmetrize(k)
	if err != nil {
		return nil, 0, err
	}
	if !cfg.Center {
		return sym, scale, nil
	}
	centered, err := matrix.DoubleCenter(sym)

	return centered, scale, err
}

// signOf returns the sign of the largest-magnitude entry of column col.
func signOf(vecs []float64, n, col int) float64 {
	best := 0.0
	for i := 0; i < n; i++ {
		if v := vecs[i*n+col]; math.Abs(v) > math.Abs(best) {
			best = v
		}
	}
	if best < 0 {
		return -1
	}

	return 1
}

// FromFeatures embeds the rows of the n×d feature matrix x using the linear
// kernel X·Xᵀ.
func FromFeatures(ctx context.Context, x *matrix.Dense, dim int, opts ...Option) (*Embedding, error) {
	if err := matrix.ValidateNotNil(x); err != nil {
		return nil, &core.Error{Kind: core.KindInvalidDimension, Index: core.NoIndex, Op: opFromFeatures,
			Msg: "nil feature matrix", Err: err}
	}
	if err := matrix.ValidateFinite(x); err != nil {
		return nil, &core.Error{Kind: core.KindMalformedStructure, Index: core.NoIndex, Op: opFromFeatures,
			Msg: "feature matrix has non-finite entries", Err: err}
	}
	g, err := matrix.Gram(x)
	if err != nil {
		return nil, err
	}

	return KernelPCA(ctx, g, dim, opts...)
}
