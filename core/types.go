// SPDX-License-Identifier: MIT
//
// File: types.go
// Role: Node/Edge value types, Graph arena layout, construction options.
// Policy:
//   - Graph fields are written exactly once, inside Builder.Build.
//   - No exported method mutates a Graph; read-only slices returned by
//     Arcs/Neighbors alias internal storage and must not be modified.

package core

// Node is a vertex as supplied by the caller.
//
// ID is a stable caller-chosen integer; Label and Features are optional.
type Node struct {
	ID       int
	Label    string
	Features []float64
}

// Edge is a connection between two node IDs.
//
// For undirected graphs the pair is unordered; Weight defaults to 1.0 when
// the edge is added without WithWeight.
type Edge struct {
	From   int
	To     int
	Weight float64
	Label  string
}

// DefaultWeight is the weight of an edge added without WithWeight.
const DefaultWeight = 1.0

// DuplicatePolicy fixes what happens when the same endpoint pair is added twice.
type DuplicatePolicy uint8

const (
	// DuplicateReject fails the build with a MalformedStructure error.
	DuplicateReject DuplicatePolicy = iota

	// DuplicateSum keeps one edge whose weight is the sum of all duplicates.
	DuplicateSum

	// DuplicateMin keeps one edge with the smallest weight.
	DuplicateMin

	// DuplicateMax keeps one edge with the largest weight.
	DuplicateMax
)

// String returns the policy name.
func (p DuplicatePolicy) String() string {
	switch p {
	case DuplicateReject:
		return "reject"
	case DuplicateSum:
		return "sum"
	case DuplicateMin:
		return "min"
	case DuplicateMax:
		return "max"
	default:
		return "unknown"
	}
}

// graphConfig holds construction flags shared by Builder and Graph.
type graphConfig struct {
	directed   bool
	allowLoops bool
	duplicates DuplicatePolicy
}

// GraphOption configures a Builder before any node is added.
type GraphOption func(*graphConfig)

// WithDirected makes every edge one-way (From -> To).
func WithDirected() GraphOption {
	return func(c *graphConfig) { c.directed = true }
}

// WithLoops permits self-loops (edges from a node to itself).
func WithLoops() GraphOption {
	return func(c *graphConfig) { c.allowLoops = true }
}

// WithDuplicatePolicy selects how duplicate endpoint pairs are handled.
func WithDuplicatePolicy(p DuplicatePolicy) GraphOption {
	return func(c *graphConfig) { c.duplicates = p }
}

// NodeOption configures a node when it is added.
type NodeOption func(*Node)

// WithLabel attaches a categorical label to the node.
func WithLabel(label string) NodeOption {
	return func(n *Node) { n.Label = label }
}

// WithFeatures attaches a feature vector (copied) to the node.
func WithFeatures(f []float64) NodeOption {
	return func(n *Node) { n.Features = append([]float64(nil), f...) }
}

// EdgeOption configures an edge when it is added.
type EdgeOption func(*Edge)

// WithWeight sets the scalar weight of the edge.
func WithWeight(w float64) EdgeOption {
	return func(e *Edge) { e.Weight = w }
}

// WithEdgeLabel sets the optional type/label of the edge.
func WithEdgeLabel(label string) EdgeOption {
	return func(e *Edge) { e.Label = label }
}

// Graph is the immutable, validated structure consumed by all kernels.
//
// Layout (n = number of nodes):
//
//	ids[i]                 caller ID of node index i
//	index[id]              node index of caller ID
//	offsets[i]..offsets[i+1]  CSR segment of outgoing arcs of i,
//	                       targets sorted ascending
//	targets/weights/arcLabels  arc payloads
//	inDegree[i]            number of incoming arcs (directed graphs)
//	edges                  canonical edge list (after duplicate aggregation)
//
// tree is non-nil only for graphs produced by BuildTree or WithRoot.
type Graph struct {
	cfg graphConfig

	ids      []int
	index    map[int]int
	labels   []string
	features [][]float64

	offsets   []int
	targets   []int
	weights   []float64
	arcLabels []string
	inDegree  []int

	edges    []Edge
	weighted bool
	loops    int

	tree *Tree
}

// Tree is the rooted view of a Graph that satisfies the tree invariants.
//
// All slices are indexed by node index and are read-only.
type Tree struct {
	g         *Graph
	root      int
	parent    []int // parent[root] == -1
	depth     []int
	childOff  []int // CSR over children, ordered by node index
	childIdx  []int
	postOrder []int // children before parents; root last
}
