// SPDX-License-Identifier: MIT

package builder

import (
	"fmt"

	"github.com/katalvlaran/graphkke/core"
)

const (
	methodPath         = "Path"
	methodCycle        = "Cycle"
	methodStar         = "Star"
	methodComplete     = "Complete"
	methodWheel        = "Wheel"
	methodGrid         = "Grid"
	methodRandomSparse = "RandomSparse"
	methodRandomTree   = "RandomTree"
)

func tooFew(method string, n, minN int) error {
	return fmt.Errorf("%s: n=%d < min=%d: %w", method, n, minN, ErrTooFewVertices)
}

// Path emits P_n: 0-1-...-(n-1). n >= 1. A path is a tree rooted at 0.
func Path(n int) Constructor {
	return func(b *core.Builder, cfg *config) error {
		if n < 1 {
			return tooFew(methodPath, n, 1)
		}
		cfg.nodes(b, n)
		for i := 0; i+1 < n; i++ {
			cfg.edge(b, i, i+1)
		}

		return nil
	}
}

// Cycle emits C_n. n >= 3.
func Cycle(n int) Constructor {
	return func(b *core.Builder, cfg *config) error {
		if n < 3 {
			return tooFew(methodCycle, n, 3)
		}
		cfg.nodes(b, n)
		for i := 0; i < n; i++ {
			cfg.edge(b, i, (i+1)%n)
		}

		return nil
	}
}

// Star emits a hub 0 with leaves 1..n-1. n >= 2.
func Star(n int) Constructor {
	return func(b *core.Builder, cfg *config) error {
		if n < 2 {
			return tooFew(methodStar, n, 2)
		}
		cfg.nodes(b, n)
		for i := 1; i < n; i++ {
			cfg.edge(b, 0, i)
		}

		return nil
	}
}

// Complete emits K_n with edges in (i, j), i < j, lexicographic order. n >= 1.
func Complete(n int) Constructor {
	return func(b *core.Builder, cfg *config) error {
		if n < 1 {
			return tooFew(methodComplete, n, 1)
		}
		cfg.nodes(b, n)
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				cfg.edge(b, i, j)
			}
		}

		return nil
	}
}

// Wheel emits W_n: a ring 0..n-2 plus hub n-1 joined to every ring node. n >= 4.
func Wheel(n int) Constructor {
	return func(b *core.Builder, cfg *config) error {
		if n < 4 {
			return tooFew(methodWheel, n, 4)
		}
		if err := Cycle(n-1)(b, cfg); err != nil {
			return err
		}
		hub := n - 1
		b.AddNode(hub, core.WithLabel(cfg.labelFn(hub)))
		for i := 0; i < hub; i++ {
			cfg.edge(b, i, hub)
		}

		return nil
	}
}

// Grid emits a rows×cols 4-connected lattice; node r*cols+c sits at (r, c).
// rows, cols >= 1.
func Grid(rows, cols int) Constructor {
	return func(b *core.Builder, cfg *config) error {
		if rows < 1 || cols < 1 {
			return fmt.Errorf("%s: %dx%d: %w", methodGrid, rows, cols, ErrTooFewVertices)
		}
		cfg.nodes(b, rows*cols)
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				u := r*cols + c
				if c+1 < cols {
					cfg.edge(b, u, u+1)
				}
				if r+1 < rows {
					cfg.edge(b, u, u+cols)
				}
			}
		}

		return nil
	}
}
