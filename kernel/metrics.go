// SPDX-License-Identifier: MIT

package kernel

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const tracerName = "graphkke.kernel"

var (
	// pairsTotal counts evaluated kernel cells (upper triangle plus diagonal).
	pairsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "graphkke_kernel_pairs_total",
		Help: "Kernel pair evaluations by variant",
	}, []string{"variant"})

	// matrixSeconds tracks end-to-end Matrix latency.
	matrixSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "graphkke_kernel_matrix_seconds",
		Help:    "Kernel matrix computation time in seconds",
		Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10), // 0.1ms to ~26s
	}, []string{"variant"})

	// matrixErrors counts failed Matrix calls by error kind.
	matrixErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "graphkke_kernel_errors_total",
		Help: "Failed kernel matrix computations by kind",
	}, []string{"variant", "kind"})
)
