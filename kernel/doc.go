// Package kernel computes graph kernels: symmetric positive semi-definite
// similarity functions between two structures, and dense kernel matrices
// over a core.Dataset.
//
// Three variants are available, selected with WithVariant:
//
//   - ShortestPath: each structure becomes a histogram over
//     (label(u), label(v), d(u, v)) for every reachable pair u != v, where d
//     is the weighted (Dijkstra) or hop (BFS) distance. Directed graphs count
//     ordered pairs, undirected graphs unordered ones. The kernel is the
//     histogram intersection Σ min(h_a, h_b). Two unit-weight triangles score 3.
//   - RandomWalk: the truncated geometric walk kernel on the direct product
//     graph, see package randomwalk.
//   - Subtree: the Collins-Duffy common-fragment count on rooted trees, see
//     package subtree. Non-tree inputs fail with IncompatibleStructure.
//
// Node labels come from the node labels themselves (LabelsNode), from the
// node degree (LabelsDegree) or are ignored (LabelsNone).
//
// Matrix prepares per-structure state once, evaluates the upper triangle
// over a bounded worker pool and mirrors it. The output does not depend on
// the number of workers. With WithNormalize(true) entries become
// k(i,j)/sqrt(k(i,i)·k(j,j)) and lie in [-1, 1].
//
// Every Matrix call emits an OpenTelemetry span ("kernel.Matrix") and feeds
// the graphkke_kernel_* Prometheus metrics.
package kernel
