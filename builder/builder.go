// SPDX-License-Identifier: MIT
//
// Package builder generates deterministic graph and tree fixtures.
//
// A Constructor adds nodes 0..n-1 and the edges of one topology to a
// core.Builder; Build and BuildTree resolve the options and freeze the
// result. Labels and weights come from pluggable functions, and stochastic
// constructors draw from a seeded *rand.Rand, so the same inputs always
// produce the same graph.
//
//	g, err := builder.Build(builder.Cycle(6), builder.WithLabels(builder.Alternating("A", "B")))
//
// Error policy: constructors never panic; they return the sentinels below
// wrapped with the constructor name.
package builder

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/katalvlaran/graphkke/core"
)

// Sentinel errors.
var (
	// ErrTooFewVertices: n is below the constructor's minimum.
	ErrTooFewVertices = errors.New("builder: parameter too small")

	// ErrInvalidProbability: p outside [0, 1].
	ErrInvalidProbability = errors.New("builder: probability out of range")

	// ErrNeedRandSource: a stochastic constructor ran without WithSeed.
	ErrNeedRandSource = errors.New("builder: rng is required")

	// ErrNilConstructor: Build received a nil Constructor.
	ErrNilConstructor = errors.New("builder: nil constructor")
)

// Constructor emits one topology into b.
type Constructor func(b *core.Builder, cfg *config) error

type config struct {
	rng      *rand.Rand
	labelFn  func(i int) string
	weightFn func(rng *rand.Rand) float64
	directed bool
}

// Option configures Build.
type Option func(*config)

// WithSeed enables stochastic constructors with a deterministic source.
func WithSeed(seed int64) Option {
	return func(c *config) { c.rng = rand.New(rand.NewSource(seed)) }
}

// WithLabels labels node i with fn(i).
func WithLabels(fn func(i int) string) Option { return func(c *config) { c.labelFn = fn } }

// WithWeights weights every edge with fn(rng); rng is nil without WithSeed.
func WithWeights(fn func(rng *rand.Rand) float64) Option {
	return func(c *config) { c.weightFn = fn }
}

// WithDirected builds a directed graph. Edges keep the constructor's
// emission direction (low index to high index for symmetric shapes).
func WithDirected() Option { return func(c *config) { c.directed = true } }

// Alternating returns a label function cycling through labels.
func Alternating(labels ...string) func(int) string {
	return func(i int) string { return labels[i%len(labels)] }
}

// UniformWeights returns a weight function drawing from [lo, hi).
// It falls back to lo without a random source.
func UniformWeights(lo, hi float64) func(*rand.Rand) float64 {
	return func(rng *rand.Rand) float64 {
		if rng == nil {
			return lo
		}
		return lo + rng.Float64()*(hi-lo)
	}
}

// Build applies cons to a fresh core.Builder and returns the general graph.
func Build(cons Constructor, opts ...Option) (*core.Graph, error) {
	b, err := prepare(cons, opts)
	if err != nil {
		return nil, err
	}

	return b.Build()
}

// BuildTree is Build with a validated tree view rooted at rootID.
func BuildTree(cons Constructor, rootID int, opts ...Option) (*core.Graph, error) {
	b, err := prepare(cons, opts)
	if err != nil {
		return nil, err
	}

	return b.BuildTree(rootID)
}

func prepare(cons Constructor, opts []Option) (*core.Builder, error) {
	if cons == nil {
		return nil, ErrNilConstructor
	}
	cfg := &config{
		labelFn:  func(int) string { return "" },
		weightFn: func(*rand.Rand) float64 { return core.DefaultWeight },
	}
	for _, opt := range opts {
		opt(cfg)
	}
	var gopts []core.GraphOption
	if cfg.directed {
		gopts = append(gopts, core.WithDirected())
	}
	b := core.NewBuilder(gopts...)
	if err := cons(b, cfg); err != nil {
		return nil, fmt.Errorf("Build: %w", err)
	}

	return b, nil
}

// nodes adds 0..n-1 with their labels.
func (c *config) nodes(b *core.Builder, n int) {
	for i := 0; i < n; i++ {
		b.AddNode(i, core.WithLabel(c.labelFn(i)))
	}
}

// edge adds u-v with the configured weight.
func (c *config) edge(b *core.Builder, u, v int) {
	b.AddEdge(u, v, core.WithWeight(c.weightFn(c.rng)))
}
