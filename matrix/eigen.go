// SPDX-License-Identifier: MIT

package matrix

import (
	"context"
	"math"

	"github.com/katalvlaran/graphkke/core"
)

// Eigen computes eigenvalues and eigenvectors of a symmetric matrix via
// Jacobi rotations. It is EigenCtx without cancellation.
func Eigen(m *Dense, tol float64, maxIter int) ([]float64, *Dense, error) {
	return EigenCtx(context.Background(), m, tol, maxIter)
}

// EigenCtx computes eigenvalues and eigenvectors of a symmetric matrix via
// Jacobi rotations, checking ctx before every rotation.
//
// Implementation:
//   - Stage 1: Validate symmetric square input within tol.
//   - Stage 2: Repeatedly pick (p,q) with the largest |A[p,q]| in i→j order
//     and apply a Jacobi rotation, accumulating it into Q.
//   - Stage 3: Verify convergence; eigenvalues are the diagonal of A.
//
// Behavior highlights:
//   - Eigenvalues are returned in diagonal order (unsorted); column j of Q
//     is the unit eigenvector of value j.
//   - Fixed pivot scan and update order produce stable results.
//
// Inputs:
//   - m: symmetric matrix (within tol). Not modified.
//   - tol: convergence threshold on the largest off-diagonal magnitude.
//   - maxIter: rotation budget.
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare, ErrAsymmetry (validation).
//   - ErrMatrixEigenFailed when max off-diagonal >= tol after maxIter rotations.
//   - core.ErrCancelled once ctx is done.
//
// Complexity:
//   - Time O(maxIter · n), the pivot scan adds O(n²) per rotation.
//   - Space O(n²).
//
// AI-Hints:
//   - Good defaults: tol≈1e-10, maxIter≈10·n²+100.
//   - Symmetrize inputs that come from numerically noisy pipelines.
func EigenCtx(ctx context.Context, m *Dense, tol float64, maxIter int) ([]float64, *Dense, error) {
	if err := ValidateSymmetric(m, tol); err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}
	n := m.r
	a := m.Clone().data
	qm, _ := NewIdentity(n)
	q := qm.data

	var (
		p, r        int
		maxOff, off float64
	)
	for iter := 0; iter < maxIter; iter++ {
		if err := core.CheckContext(ctx); err != nil {
			return nil, nil, matrixErrorf(opEigen, err)
		}

		// J.1: pivot (p,r) maximizing |A[p,r]|.
		maxOff = 0
		for i := 0; i < n; i++ {
			base := i * n
			for j := i + 1; j < n; j++ {
				off = math.Abs(a[base+j])
				if off > maxOff {
					maxOff, p, r = off, i, j
				}
			}
		}
		// J.2: convergence.
		if maxOff < tol || maxOff == 0 {
			break
		}

		// J.3: rotation parameters.
		app, arr, apr := a[p*n+p], a[r*n+r], a[p*n+r]
		theta := (arr - app) / (2 * apr)
		t := math.Copysign(1.0/(math.Abs(theta)+math.Hypot(theta, 1)), theta)
		c := 1.0 / math.Sqrt(t*t+1)
		s := t * c

		// J.4: rotate A symmetrically.
		for i := 0; i < n; i++ {
			if i == p || i == r {
				continue
			}
			aip, air := a[i*n+p], a[i*n+r]
			nip := c*aip - s*air
			nir := s*aip + c*air
			a[i*n+p], a[p*n+i] = nip, nip
			a[i*n+r], a[r*n+i] = nir, nir
		}
		a[p*n+p] = c*c*app - 2*c*s*apr + s*s*arr
		a[r*n+r] = s*s*app + 2*c*s*apr + c*c*arr
		a[p*n+r], a[r*n+p] = 0, 0

		// J.5: accumulate into Q.
		for i := 0; i < n; i++ {
			qip, qir := q[i*n+p], q[i*n+r]
			q[i*n+p] = c*qip - s*qir
			q[i*n+r] = s*qip + c*qir
		}
	}

	maxOff = 0
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			maxOff = math.Max(maxOff, math.Abs(a[i*n+j]))
		}
	}
	if maxOff > 0 && maxOff >= tol {
		return nil, nil, matrixErrorf(opEigen, ErrMatrixEigenFailed)
	}

	vals := make([]float64, n)
	for i := 0; i < n; i++ {
		vals[i] = a[i*n+i]
	}

	return vals, qm, nil
}
