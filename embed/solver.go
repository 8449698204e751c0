// SPDX-License-Identifier: MIT

package embed

import (
	"context"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/graphkke/core"
	"github.com/katalvlaran/graphkke/matrix"
)

// eigenpairs returns eigenvalues in solver order and the matching unit
// eigenvectors as columns of an n×n row-major slice.
func eigenpairs(ctx context.Context, k *matrix.Dense, scale float64, cfg *Options) ([]float64, []float64, error) {
	n := k.Rows()
	if cfg.Solver == SolverGonum {
		return gonumEigen(ctx, k)
	}

	maxIter := cfg.MaxIter
	if maxIter == 0 {
		maxIter = 20*n*n + 100
	}
	vals, vecs, err := matrix.EigenCtx(ctx, k, cfg.Tol*scale, maxIter)
	if err != nil {
		if core.IsCancelled(err) {
			return nil, nil, err
		}

		return nil, nil, &core.Error{
			Kind: core.KindNumericalInstability, Index: core.NoIndex, Op: opKernelPCA,
			Msg: "jacobi eigensolver did not converge", Err: err,
		}
	}

	return vals, vecs.Data(), nil
}

// gonumEigen factorizes k with mat.EigenSym. Values come back ascending.
func gonumEigen(ctx context.Context, k *matrix.Dense) ([]float64, []float64, error) {
	if err := core.CheckContext(ctx); err != nil {
		return nil, nil, err
	}
	n := k.Rows()
	var es mat.EigenSym
	if ok := es.Factorize(mat.NewSymDense(n, append([]float64(nil), k.Data()...)), true); !ok {
		return nil, nil, core.Errorf(core.KindNumericalInstability, opKernelPCA,
			"gonum eigensolver failed to converge")
	}
	if err := core.CheckContext(ctx); err != nil {
		return nil, nil, err
	}

	var ev mat.Dense
	es.VectorsTo(&ev)
	vecs := make([]float64, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			vecs[i*n+j] = ev.At(i, j)
		}
	}

	return es.Values(nil), vecs, nil
}
