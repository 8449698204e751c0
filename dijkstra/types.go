// SPDX-License-Identifier: MIT
//
// File: types.go
// Role: Sentinel errors, Options and Result for shortest-path queries.

package dijkstra

import (
	"errors"
	"math"
	"runtime"
)

// Sentinel errors returned by the dijkstra package.
var (
	// ErrNilGraph indicates that a nil *core.Graph was passed.
	ErrNilGraph = errors.New("dijkstra: graph is nil")

	// ErrSourceNotFound indicates that the source index is outside 0..Order()-1.
	ErrSourceNotFound = errors.New("dijkstra: source node not found in graph")

	// ErrBadMaxDistance indicates a negative or NaN MaxDistance.
	ErrBadMaxDistance = errors.New("dijkstra: MaxDistance must be non-negative")

	// ErrBadInfThreshold indicates a zero, negative or NaN InfEdgeThreshold,
	// which would make every arc impassable.
	ErrBadInfThreshold = errors.New("dijkstra: InfEdgeThreshold must be positive")
)

// Options configures Dijkstra and AllPairs.
//
// MaxDistance      – nodes whose distance would exceed this value stay unreached.
// InfEdgeThreshold – arcs with weight >= threshold are skipped.
// ReturnPath       – when true Result.Prev is filled.
// UnitWeights      – every arc costs 1 (hop distance).
// Workers          – AllPairs fan-out; values < 1 mean GOMAXPROCS.
type Options struct {
	MaxDistance      float64
	InfEdgeThreshold float64
	ReturnPath       bool
	UnitWeights      bool
	Workers          int
}

// Option is a functional option for Dijkstra and AllPairs.
type Option func(*Options)

// DefaultOptions returns Options with no distance cap, no impassable arcs,
// weighted distances, no predecessors and GOMAXPROCS workers.
func DefaultOptions() Options {
	return Options{
		MaxDistance:      math.Inf(1),
		InfEdgeThreshold: math.Inf(1),
		Workers:          runtime.GOMAXPROCS(0),
	}
}

// WithReturnPath enables predecessor tracking.
func WithReturnPath() Option {
	return func(o *Options) { o.ReturnPath = true }
}

// WithMaxDistance caps exploration at d. Panics on a negative or NaN d,
// mirroring the other option constructors that reject nonsense eagerly.
func WithMaxDistance(d float64) Option {
	if d < 0 || math.IsNaN(d) {
		panic(ErrBadMaxDistance.Error())
	}

	return func(o *Options) { o.MaxDistance = d }
}

// WithInfEdgeThreshold marks arcs with weight >= t as impassable.
// Panics when t <= 0 or NaN.
func WithInfEdgeThreshold(t float64) Option {
	if !(t > 0) {
		panic(ErrBadInfThreshold.Error())
	}

	return func(o *Options) { o.InfEdgeThreshold = t }
}

// WithUnitWeights makes every arc cost 1.
func WithUnitWeights() Option {
	return func(o *Options) { o.UnitWeights = true }
}

// WithWorkers bounds AllPairs concurrency; n < 1 restores the default.
func WithWorkers(n int) Option {
	return func(o *Options) {
		if n < 1 {
			n = runtime.GOMAXPROCS(0)
		}
		o.Workers = n
	}
}

// Result holds single-source distances indexed by node index.
type Result struct {
	// Source is the node index the search started from.
	Source int

	// Dist[v] is the shortest distance from Source to v (+Inf if unreachable).
	Dist []float64

	// Prev[v] is the predecessor of v on the shortest-path tree, -1 for the
	// source and unreachable nodes. Nil unless WithReturnPath was given.
	Prev []int
}

// Reachable reports whether v was reached from the source.
func (r *Result) Reachable(v int) bool { return !math.IsInf(r.Dist[v], 1) }

// PathTo rebuilds the node sequence Source..v. It returns false when v is
// unreachable or predecessors were not recorded.
func (r *Result) PathTo(v int) ([]int, bool) {
	if r.Prev == nil || !r.Reachable(v) {
		return nil, false
	}
	var path []int
	for u := v; u != -1; u = r.Prev[u] {
		path = append(path, u)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path, true
}
