// SPDX-License-Identifier: MIT

package builder

import (
	"fmt"

	"github.com/katalvlaran/graphkke/core"
)

// RandomSparse emits an Erdős–Rényi G(n, p) graph: every pair (i, j), i < j,
// is kept with probability p (every ordered pair i != j when directed).
// p strictly between 0 and 1 needs WithSeed.
func RandomSparse(n int, p float64) Constructor {
	return func(b *core.Builder, cfg *config) error {
		if n < 1 {
			return tooFew(methodRandomSparse, n, 1)
		}
		if !(p >= 0 && p <= 1) {
			return fmt.Errorf("%s: p=%g not in [0,1]: %w", methodRandomSparse, p, ErrInvalidProbability)
		}
		if cfg.rng == nil && p > 0 && p < 1 {
			return fmt.Errorf("%s: %w", methodRandomSparse, ErrNeedRandSource)
		}
		cfg.nodes(b, n)
		keep := func() bool {
			if p == 0 || p == 1 {
				return p == 1
			}
			return cfg.rng.Float64() < p
		}
		for i := 0; i < n; i++ {
			j0 := i + 1
			if cfg.directed {
				j0 = 0
			}
			for j := j0; j < n; j++ {
				if i != j && keep() {
					cfg.edge(b, i, j)
				}
			}
		}

		return nil
	}
}

// RandomTree emits a random recursive tree: node i > 0 attaches to a parent
// drawn uniformly from 0..i-1. Root it at 0. Needs WithSeed for n > 2.
func RandomTree(n int) Constructor {
	return func(b *core.Builder, cfg *config) error {
		if n < 1 {
			return tooFew(methodRandomTree, n, 1)
		}
		if cfg.rng == nil && n > 2 {
			return fmt.Errorf("%s: %w", methodRandomTree, ErrNeedRandSource)
		}
		cfg.nodes(b, n)
		for i := 1; i < n; i++ {
			parent := 0
			if i > 1 {
				parent = cfg.rng.Intn(i)
			}
			cfg.edge(b, parent, i)
		}

		return nil
	}
}
