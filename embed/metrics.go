// SPDX-License-Identifier: MIT

package embed

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const tracerName = "graphkke.embed"

var (
	// clippedTotal counts eigenvalues clipped below -Epsilon.
	clippedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "graphkke_embed_clipped_eigenvalues_total",
		Help: "Negative eigenvalues clipped to zero during kernel PCA",
	})

	// embedSeconds tracks KernelPCA latency per solver.
	embedSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "graphkke_embed_seconds",
		Help:    "Kernel PCA duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
	}, []string{"solver"})
)
