// SPDX-License-Identifier: MIT

package embed

import (
	"fmt"
	"log/slog"
	"math"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/katalvlaran/graphkke/core"
)

// Solver selects the symmetric eigensolver.
type Solver uint8

const (
	// SolverJacobi runs cyclic-pivot Jacobi rotations and checks the context
	// before every rotation.
	SolverJacobi Solver = iota
	// SolverGonum delegates to gonum's LAPACK-backed mat.EigenSym. The
	// context is only checked before and after the call.
	SolverGonum
)

var solverNames = [...]string{"jacobi", "gonum"}

func (s Solver) String() string {
	if int(s) < len(solverNames) {
		return solverNames[s]
	}

	return fmt.Sprintf("Solver(%d)", uint8(s))
}

// ParseSolver parses "jacobi" or "gonum".
func ParseSolver(s string) (Solver, error) {
	for i, name := range solverNames {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return Solver(i), nil
		}
	}

	return 0, core.Errorf(core.KindInvalidDimension, opKernelPCA, "unknown eigensolver %q", s)
}

// Defaults applied by DefaultOptions.
const (
	DefaultEpsilon     = 1e-9
	DefaultTol         = 1e-12
	DefaultSymmetryTol = 1e-9
)

// Options configures KernelPCA.
//
// Center      – double-center the kernel matrix first (feature-space mean removal).
// Epsilon     – eigenvalues below -Epsilon are clipped with a warning;
// values in [-Epsilon, 0) are zeroed silently.
// Solver      – eigensolver backend.
// Tol         – Jacobi convergence threshold, relative to max|K|.
// MaxIter     – Jacobi rotation budget; 0 means 20·n²+100.
// SymmetryTol – accepted |K[i,j]-K[j,i]|, relative to max|K|.
type Options struct {
	Center      bool
	Epsilon     float64
	Solver      Solver
	Tol         float64
	MaxIter     int
	SymmetryTol float64

	Logger         *slog.Logger
	TracerProvider trace.TracerProvider
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns centered Jacobi kernel PCA.
func DefaultOptions() Options {
	return Options{
		Center:      true,
		Epsilon:     DefaultEpsilon,
		Solver:      SolverJacobi,
		Tol:         DefaultTol,
		SymmetryTol: DefaultSymmetryTol,
	}
}

// WithCenter toggles double-centering.
func WithCenter(on bool) Option { return func(o *Options) { o.Center = on } }

// WithEpsilon sets the clipping tolerance.
func WithEpsilon(eps float64) Option { return func(o *Options) { o.Epsilon = eps } }

// WithSolver picks the eigensolver.
func WithSolver(s Solver) Option { return func(o *Options) { o.Solver = s } }

// WithTolerance sets the Jacobi convergence threshold.
func WithTolerance(tol float64) Option { return func(o *Options) { o.Tol = tol } }

// WithMaxIter caps Jacobi rotations; 0 restores the size-based default.
func WithMaxIter(n int) Option { return func(o *Options) { o.MaxIter = n } }

// WithSymmetryTolerance sets how asymmetric an input may be.
func WithSymmetryTolerance(tol float64) Option { return func(o *Options) { o.SymmetryTol = tol } }

// WithLogger routes diagnostics to l. A nil l restores slog.Default().
func WithLogger(l *slog.Logger) Option { return func(o *Options) { o.Logger = l } }

// WithTracerProvider overrides the global otel provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *Options) { o.TracerProvider = tp }
}

func resolve(opts []Option) (Options, error) {
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
	case int(cfg.Solver) >= len(solverNames):
		return cfg, core.Errorf(core.KindInvalidDimension, opKernelPCA, "unknown solver %s", cfg.Solver)
	case !(cfg.Epsilon >= 0) || math.IsInf(cfg.Epsilon, 1):
		return cfg, core.Errorf(core.KindInvalidDimension, opKernelPCA, "epsilon %g must be finite and >= 0", cfg.Epsilon)
	case !(cfg.Tol >= 0) || math.IsInf(cfg.Tol, 1):
		return cfg, core.Errorf(core.KindInvalidDimension, opKernelPCA, "tolerance %g must be finite and >= 0", cfg.Tol)
	case !(cfg.SymmetryTol >= 0):
		return cfg, core.Errorf(core.KindInvalidDimension, opKernelPCA, "symmetry tolerance %g must be >= 0", cfg.SymmetryTol)
	case cfg.MaxIter < 0:
		return cfg, core.Errorf(core.KindInvalidDimension, opKernelPCA, "max iterations %d < 0", cfg.MaxIter)
	}

	return cfg, nil
}
