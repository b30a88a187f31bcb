// Package metrics holds the terminal's prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "pos_terminal"

var (
	// CartRejections counts cart commands refused for stock reasons.
	CartRejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cart_rejections_total",
		Help:      "Cart commands rejected, by reason.",
	}, []string{"reason"})

	CartLines = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "cart_lines",
		Help:      "Number of lines in the open cart.",
	})

	// Checkouts counts payment completions by result: ok, failed, rejected.
	Checkouts = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "checkouts_total",
		Help:      "Checkout submissions, by result.",
	}, []string{"result"})

	CheckoutDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "checkout_submit_seconds",
		Help:      "Time spent submitting a sale to the backend.",
		Buckets:   prometheus.DefBuckets,
	})

	BackendRequests = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "backend_request_seconds",
		Help:      "Backend request latency, by endpoint and outcome.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"endpoint", "outcome"})

	CatalogRefreshes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "catalog_refreshes_total",
		Help:      "Catalog refreshes, by result.",
	}, []string{"result"})
)
