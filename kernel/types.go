// SPDX-License-Identifier: MIT
//
// File: types.go
// Role: Closed enumerations selecting the kernel variant, the node label
// source and the distance metric, plus the Result container.

package kernel

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/graphkke/core"
	"github.com/katalvlaran/graphkke/matrix"
)

// Variant selects the kernel formula. The set is closed; dispatch is a switch.
type Variant uint8

const (
	// ShortestPath compares histograms of (label, label, distance) triples.
	ShortestPath Variant = iota
	// RandomWalk counts label-matching walks on the direct product graph.
	RandomWalk
	// Subtree counts common subtree fragments; both inputs must be trees.
	Subtree
)

var variantNames = [...]string{"shortest_path", "random_walk", "subtree"}

// String returns the canonical snake_case name of v.
func (v Variant) String() string {
	if int(v) < len(variantNames) {
		return variantNames[v]
	}

	return fmt.Sprintf("Variant(%d)", uint8(v))
}

// ParseVariant accepts the canonical names and a few spellings callers use
// ("shortest-path", "sp", "rw", "tree").
func ParseVariant(s string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "shortest_path", "shortest-path", "shortestpath", "sp":
		return ShortestPath, nil
	case "random_walk", "random-walk", "randomwalk", "rw":
		return RandomWalk, nil
	case "subtree", "tree":
		return Subtree, nil
	}

	return 0, core.Errorf(core.KindInvalidDimension, opParse, "unknown kernel variant %q", s)
}

// LabelPolicy decides which string each node contributes to label matching.
type LabelPolicy uint8

const (
	// LabelsNode uses node labels; unlabeled nodes share the empty label.
	LabelsNode LabelPolicy = iota
	// LabelsDegree uses the decimal node degree.
	LabelsDegree
	// LabelsNone treats every node alike.
	LabelsNone
)

var labelPolicyNames = [...]string{"node", "degree", "none"}

func (p LabelPolicy) String() string {
	if int(p) < len(labelPolicyNames) {
		return labelPolicyNames[p]
	}

	return fmt.Sprintf("LabelPolicy(%d)", uint8(p))
}

// ParseLabelPolicy parses "node", "degree" or "none".
func ParseLabelPolicy(s string) (LabelPolicy, error) {
	for i, name := range labelPolicyNames {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return LabelPolicy(i), nil
		}
	}

	return 0, core.Errorf(core.KindInvalidDimension, opParse, "unknown label policy %q", s)
}

// Distance is the metric of the shortest-path kernel.
type Distance uint8

const (
	// DistanceWeighted sums edge weights (Dijkstra).
	DistanceWeighted Distance = iota
	// DistanceHops counts edges (BFS).
	DistanceHops
)

var distanceNames = [...]string{"weighted", "hops"}

func (d Distance) String() string {
	if int(d) < len(distanceNames) {
		return distanceNames[d]
	}

	return fmt.Sprintf("Distance(%d)", uint8(d))
}

// ParseDistance parses "weighted" or "hops".
func ParseDistance(s string) (Distance, error) {
	for i, name := range distanceNames {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return Distance(i), nil
		}
	}

	return 0, core.Errorf(core.KindInvalidDimension, opParse, "unknown distance metric %q", s)
}

// Result is a dense symmetric N×N kernel matrix in row-major order.
// Row and column i belong to structure i of the input Dataset.
type Result struct {
	N          int
	Data       []float64
	Variant    Variant
	Normalized bool
	Warnings   []core.Warning
}

// At returns K[i][j]. It panics on out-of-range indices like slice access.
func (r *Result) At(i, j int) float64 { return r.Data[i*r.N+j] }

// Dense copies the matrix into a *matrix.Dense, ready for embedding.
func (r *Result) Dense() (*matrix.Dense, error) {
	return matrix.NewDenseFrom(r.N, r.N, r.Data)
}
