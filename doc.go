// Package graphkke is a structural-analysis library: it compares graphs and
// trees with graph kernels and embeds the resulting similarity matrices
// into a few dimensions with kernel PCA.
//
// 🚀 What is inside?
//
//   - core/       - immutable Graph / Tree / Dataset model and the error taxonomy
//   - dijkstra/   - single-source and all-pairs shortest paths
//   - bfs/, dfs/  - hop distances, components, post-order, cycles, topological order
//   - randomwalk/ - transition matrices and product-graph walks
//   - subtree/    - canonical tree encodings and common-fragment matching
//   - matrix/     - dense row-major matrices, centering, Jacobi eigensolver
//   - kernel/     - shortest-path, random-walk and subtree kernel matrices
//   - embed/      - kernel PCA with eigenvalue clipping
//   - config/     - YAML + GRAPHKKE_ environment configuration
//   - pipeline/   - kernel matrix then embedding in one call
//   - builder/    - deterministic graph and tree fixtures
//
// Data flow:
//
//	node/edge lists → core.Builder → core.Dataset → kernel.Matrix → embed.KernelPCA
//
// Every long computation takes a context.Context and checks it at each
// kernel pair and each Jacobi rotation; a cancelled run returns an error
// matching core.ErrCancelled. Results do not
// depend on the number of worker goroutines.
//
// Quick example:
//
//	ds, _ := core.BuildDataset(b1, b2, b3)
//	out, err := pipeline.Run(ctx, ds, config.Default())
//	// out.Kernel.Data is the 3×3 row-major kernel matrix.
package graphkke
