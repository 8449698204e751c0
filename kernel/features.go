// SPDX-License-Identifier: MIT

package kernel

import (
	"context"
	"math"
	"strconv"

	"github.com/katalvlaran/graphkke/core"
	"github.com/katalvlaran/graphkke/randomwalk"
	"github.com/katalvlaran/graphkke/subtree"
)

// features is the per-structure state a variant needs, computed once and
// reused for every pair the structure takes part in. Exactly one field is set.
type features struct {
	sp   spHistogram
	walk *randomwalk.Walk
	tree *subtree.Prepared
}

// nodeLabels returns the matching label of every node under policy p.
func nodeLabels(g *core.Graph, p LabelPolicy) []string {
	out := make([]string, g.Order())
	switch p {
	case LabelsNode:
		for i := range out {
			out[i] = g.Label(i)
		}
	case LabelsDegree:
		for i := range out {
			out[i] = strconv.Itoa(g.Degree(i))
		}
	}

	return out
}

// prepare computes the features of g for cfg.Variant.
func prepare(ctx context.Context, g *core.Graph, cfg *Options) (*features, error) {
	if g == nil {
		return nil, core.Errorf(core.KindMalformedStructure, opPrepare, "nil structure")
	}
	labels := nodeLabels(g, cfg.Labels)

	switch cfg.Variant {
	case ShortestPath:
		h, err := buildHistogram(ctx, g, labels, cfg)
		if err != nil {
			return nil, err
		}

		return &features{sp: h}, nil
	case RandomWalk:
		w, err := randomwalk.Prepare(g, labels)
		if err != nil {
			return nil, err
		}

		return &features{walk: w}, nil
	default:
		t, err := subtree.Prepare(ctx, g, labels)
		if err != nil {
			return nil, err
		}

		return &features{tree: t}, nil
	}
}

// pair evaluates the raw kernel between two prepared structures.
func pair(ctx context.Context, a, b *features, cfg *Options) (float64, error) {
	switch cfg.Variant {
	case ShortestPath:
		if err := core.CheckContext(ctx); err != nil {
			return 0, err
		}

		return intersect(a.sp, b.sp), nil
	case RandomWalk:
		return randomwalk.ProductWalk(ctx, a.walk, b.walk, cfg.WalkLength, cfg.WalkDecay)
	default:
		return subtree.Match(ctx, a.tree, b.tree, cfg.SubtreeDecay)
	}
}

// cosine returns kab / sqrt(kaa·kbb) clamped to [-1, 1], or 0 with ok=false
// when either self-similarity is not positive.
func cosine(kab, kaa, kbb float64) (v float64, ok bool) {
	if !(kaa > 0 && kbb > 0) {
		return 0, false
	}
	v = kab / math.Sqrt(kaa*kbb)

	return math.Max(-1, math.Min(1, v)), true
}
