// Package matrix provides the dense linear-algebra primitives behind the
// kernel and embedding engines.
//
// The package offers:
//
//   - Dense: a row-major float64 matrix over one flat slice (offset i*cols + j).
//   - Validators for shape, symmetry and finiteness that return sentinels.
//   - Eigen/EigenCtx: a deterministic cyclic-pivot Jacobi eigensolver for
//     symmetric matrices, with cooperative cancellation.
//   - Kernel helpers: DoubleCenter, Symmetrize, Mul, Transpose, Hadamard,
//     RowSums and the Gram product X·Xᵀ.
//
// All loops run in a fixed i→j order, so identical inputs always produce
// bit-identical outputs.
package matrix
