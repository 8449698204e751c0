// SPDX-License-Identifier: MIT
// Package matrix: products, transposition and kernel-matrix transforms.
//
// All kernels allocate a fresh result, never mutate their inputs and walk the
// flat buffers in fixed order.

package matrix

import "fmt"

// ZeroSum is the initial value of every accumulator.
const ZeroSum = 0.0

// Mul returns a·b.
//
// Implementation:
//   - i→k→j loop order so the inner loop streams rows of b and the result.
//   - Zero a[i,k] entries are skipped, which helps sparse transition matrices.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (a.Cols != b.Rows), wrapped with "Mul".
//
// Complexity:
//   - Time O(r·k·c), Space O(r·c).
func Mul(a, b *Dense) (*Dense, error) {
	if a == nil || b == nil {
		return nil, matrixErrorf(opMul, ErrNilMatrix)
	}
	if a.c != b.r {
		return nil, matrixErrorf(opMul, fmt.Errorf("%dx%d · %dx%d: %w", a.r, a.c, b.r, b.c, ErrDimensionMismatch))
	}
	out := &Dense{r: a.r, c: b.c, data: make([]float64, a.r*b.c)}
	for i := 0; i < a.r; i++ {
		rowOut := out.data[i*b.c : (i+1)*b.c]
		for k := 0; k < a.c; k++ {
			aik := a.data[i*a.c+k]
			if aik == 0 {
				continue
			}
			rowB := b.data[k*b.c : (k+1)*b.c]
			for j, bkj := range rowB {
				rowOut[j] += aik * bkj
			}
		}
	}

	return out, nil
}

// Transpose returns mᵀ.
func Transpose(m *Dense) *Dense {
	out := &Dense{r: m.c, c: m.r, data: make([]float64, len(m.data))}
	for i := 0; i < m.r; i++ {
		for j := 0; j < m.c; j++ {
			out.data[j*m.r+i] = m.data[i*m.c+j]
		}
	}

	return out
}

// Hadamard returns the element-wise product a∘b.
func Hadamard(a, b *Dense) (*Dense, error) {
	if err := ValidateSameShape(a, b); err != nil {
		return nil, matrixErrorf(opHadamard, err)
	}
	out := &Dense{r: a.r, c: a.c, data: make([]float64, len(a.data))}
	for k := range a.data {
		out.data[k] = a.data[k] * b.data[k]
	}

	return out, nil
}

// Sum returns the sum of all entries.
func (m *Dense) Sum() float64 {
	s := ZeroSum
	for _, v := range m.data {
		s += v
	}

	return s
}

// RowSums returns the vector of row totals.
func RowSums(m *Dense) []float64 {
	out := make([]float64, m.r)
	for i := 0; i < m.r; i++ {
		s := ZeroSum
		for _, v := range m.data[i*m.c : (i+1)*m.c] {
			s += v
		}
		out[i] = s
	}

	return out
}

// Gram returns the linear kernel X·Xᵀ of the row vectors of x (n×d -> n×n).
// The result is exactly symmetric: each pair is computed once and mirrored.
func Gram(x *Dense) (*Dense, error) {
	if err := ValidateNotNil(x); err != nil {
		return nil, matrixErrorf(opGram, err)
	}
	n, d := x.r, x.c
	out := &Dense{r: n, c: n, data: make([]float64, n*n)}
	for i := 0; i < n; i++ {
		ri := x.data[i*d : (i+1)*d]
		for j := i; j < n; j++ {
			rj := x.data[j*d : (j+1)*d]
			s := ZeroSum
			for k := range ri {
				s += ri[k] * rj[k]
			}
			out.data[i*n+j] = s
			out.data[j*n+i] = s
		}
	}

	return out, nil
}

// Symmetrize returns (m + mᵀ)/2 for a square m.
func Symmetrize(m *Dense) (*Dense, error) {
	if err := ValidateSquare(m); err != nil {
		return nil, matrixErrorf(opSymmetrize, err)
	}
	n := m.r
	out := m.Clone()
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			v := 0.5 * (m.data[i*n+j] + m.data[j*n+i])
			out.data[i*n+j], out.data[j*n+i] = v, v
		}
	}

	return out, nil
}

// DoubleCenter returns H·K·H with H = I - (1/n)·11ᵀ, i.e.
// K[i,j] - mean(row i) - mean(col j) + mean(K).
//
// Behavior highlights:
//   - Centering a kernel matrix centers the implicit feature vectors, which
//     is the first step of kernel PCA.
//   - Symmetric input yields symmetric output.
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare wrapped with "DoubleCenter".
//
// Complexity:
//   - Time O(n²), Space O(n²).
func DoubleCenter(k *Dense) (*Dense, error) {
	if err := ValidateSquare(k); err != nil {
		return nil, matrixErrorf(opDoubleCenter, err)
	}
	n := k.r
	out := &Dense{r: n, c: n, data: make([]float64, n*n)}
	if n == 0 {
		return out, nil
	}
	inv := 1 / float64(n)
	rowMean := make([]float64, n)
	colMean := make([]float64, n)
	total := ZeroSum
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			v := k.data[i*n+j]
			rowMean[i] += v
			colMean[j] += v
			total += v
		}
	}
	for i := range rowMean {
		rowMean[i] *= inv
		colMean[i] *= inv
	}
	grand := total * inv * inv
	sym := ValidateSymmetric(k, 0) == nil
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if sym && j < i {
				// exact mirror keeps the output bit-symmetric
				out.data[i*n+j] = out.data[j*n+i]
				continue
			}
			out.data[i*n+j] = k.data[i*n+j] - rowMean[i] - colMean[j] + grand
		}
	}

	return out, nil
}
