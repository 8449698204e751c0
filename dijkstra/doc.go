// Package dijkstra computes single-source and all-pairs shortest path lengths
// on core graphs with non-negative edge weights.
//
// Overview:
//
//   - Dijkstra expands the next-closest node from a binary min-heap and relaxes
//     its outgoing arcs, in O((V + E) log V) time.
//   - AllPairs runs one Dijkstra per source over a bounded errgroup worker pool;
//     rows are written to disjoint slots, so the result does not depend on the
//     number of workers.
//   - The same priority-queue algorithm is used for every graph shape. There is
//     no switch to Floyd-Warshall on dense inputs.
//
// Determinism:
//
//   - The heap orders entries by (distance, node index), so among equally
//     distant nodes the lowest index is settled first. Predecessors therefore
//     always describe the same shortest-path tree.
//
// Options:
//
//   - WithReturnPath():         keep predecessor indices in Result.Prev.
//   - WithMaxDistance(d):       do not settle nodes farther than d.
//   - WithInfEdgeThreshold(t):  treat arcs with weight >= t as impassable.
//   - WithUnitWeights():        ignore weights and count hops.
//   - WithWorkers(n):           AllPairs concurrency (default GOMAXPROCS).
//
// Errors:
//
//   - ErrNilGraph, ErrSourceNotFound for invalid calls.
//   - *core.Error of kind NegativeWeight when any arc weight is < 0
//     (detected by an O(E) pre-scan before any work is done).
//   - core.ErrCancelled once the context is done.
//
// Unreachable nodes have distance +Inf and predecessor -1.
package dijkstra
