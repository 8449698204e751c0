// SPDX-License-Identifier: MIT
//
// File: options.go
// Role: Functional options for Compute and Matrix.
// Policy:
//   - Option constructors never panic: kernel settings usually come from a
//     config file, so range problems are reported by Compute/Matrix as
//     *core.Error KindInvalidDimension.

package kernel

import (
	"log/slog"
	"math"
	"runtime"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/katalvlaran/graphkke/core"
)

// Defaults applied by DefaultOptions.
const (
	DefaultWalkLength         = 3
	DefaultWalkDecay          = 0.1
	DefaultSubtreeDecay       = 1.0
	DefaultDistanceResolution = 1e-6
)

// Options configures a kernel computation.
//
// Variant            – kernel formula.
// Labels             – node label source for matching.
// Distance           – shortest-path metric.
// DistanceResolution – weighted distances are bucketed to multiples of this.
// WalkLength         – L of the random-walk kernel (>= 0).
// WalkDecay          – per-step decay of the random-walk kernel, in (0, 1].
// SubtreeDecay       – λ of the subtree kernel, in (0, 1].
// Normalize          – cosine-normalize the matrix.
// Workers            – goroutines used by Matrix; values < 1 mean GOMAXPROCS.
type Options struct {
	Variant            Variant
	Labels             LabelPolicy
	Distance           Distance
	DistanceResolution float64
	WalkLength         int
	WalkDecay          float64
	SubtreeDecay       float64
	Normalize          bool
	Workers            int

	Logger         *slog.Logger
	TracerProvider trace.TracerProvider
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns the shortest-path kernel over node labels with
// weighted distances, unnormalized, on GOMAXPROCS workers.
func DefaultOptions() Options {
	return Options{
		Variant:            ShortestPath,
		Labels:             LabelsNode,
		Distance:           DistanceWeighted,
		DistanceResolution: DefaultDistanceResolution,
		WalkLength:         DefaultWalkLength,
		WalkDecay:          DefaultWalkDecay,
		SubtreeDecay:       DefaultSubtreeDecay,
		Workers:            runtime.GOMAXPROCS(0),
	}
}

// WithVariant selects the kernel formula.
func WithVariant(v Variant) Option { return func(o *Options) { o.Variant = v } }

// WithLabelPolicy selects where node labels come from.
func WithLabelPolicy(p LabelPolicy) Option { return func(o *Options) { o.Labels = p } }

// WithDistance selects the shortest-path metric.
func WithDistance(d Distance) Option { return func(o *Options) { o.Distance = d } }

// WithDistanceResolution sets the bucket width for weighted distances.
func WithDistanceResolution(r float64) Option {
	return func(o *Options) { o.DistanceResolution = r }
}

// WithWalkLength sets the number of random-walk steps.
func WithWalkLength(l int) Option { return func(o *Options) { o.WalkLength = l } }

// WithWalkDecay sets the random-walk step decay.
func WithWalkDecay(d float64) Option { return func(o *Options) { o.WalkDecay = d } }

// WithSubtreeDecay sets the subtree fragment decay.
func WithSubtreeDecay(d float64) Option { return func(o *Options) { o.SubtreeDecay = d } }

// WithNormalize toggles cosine normalization.
func WithNormalize(on bool) Option { return func(o *Options) { o.Normalize = on } }

// WithWorkers bounds the Matrix worker pool; n < 1 restores the default.
func WithWorkers(n int) Option {
	return func(o *Options) {
		if n < 1 {
			n = runtime.GOMAXPROCS(0)
		}
		o.Workers = n
	}
}

// WithLogger routes diagnostics to l. A nil l restores slog.Default().
func WithLogger(l *slog.Logger) Option { return func(o *Options) { o.Logger = l } }

// WithTracerProvider overrides the global otel provider for Matrix spans.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *Options) { o.TracerProvider = tp }
}

// resolve applies opts on top of the defaults and validates the ranges.
func resolve(op string, opts []Option) (Options, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.TracerProvider == nil {
		cfg.TracerProvider = otel.GetTracerProvider()
	}

	switch {
	case int(cfg.Variant) >= len(variantNames):
		return cfg, core.Errorf(core.KindInvalidDimension, op, "unknown variant %s", cfg.Variant)
	case int(cfg.Labels) >= len(labelPolicyNames):
		return cfg, core.Errorf(core.KindInvalidDimension, op, "unknown label policy %s", cfg.Labels)
	case int(cfg.Distance) >= len(distanceNames):
		return cfg, core.Errorf(core.KindInvalidDimension, op, "unknown distance %s", cfg.Distance)
	case !(cfg.DistanceResolution > 0) || math.IsInf(cfg.DistanceResolution, 1):
		return cfg, core.Errorf(core.KindInvalidDimension, op, "distance resolution %g must be positive", cfg.DistanceResolution)
	case cfg.WalkLength < 0:
		return cfg, core.Errorf(core.KindInvalidDimension, op, "walk length %d < 0", cfg.WalkLength)
	case !(cfg.WalkDecay > 0 && cfg.WalkDecay <= 1):
		return cfg, core.Errorf(core.KindInvalidDimension, op, "walk decay %g outside (0, 1]", cfg.WalkDecay)
	case !(cfg.SubtreeDecay > 0 && cfg.SubtreeDecay <= 1):
		return cfg, core.Errorf(core.KindInvalidDimension, op, "subtree decay %g outside (0, 1]", cfg.SubtreeDecay)
	}

	return cfg, nil
}
