package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type CheckoutMetrics struct {
	Checkouts  *prometheus.CounterVec
	LatencyMS  *prometheus.HistogramVec
	OrderTotal prometheus.Histogram
}

func NewCheckoutMetrics(service string) *CheckoutMetrics {
	checkouts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "shop",
		Subsystem: service,
		Name:      "checkouts_total",
		Help:      "Total number of checkout attempts by outcome.",
	}, []string{"status"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "shop",
		Subsystem: service,
		Name:      "request_duration_ms",
		Help:      "HTTP request latency in milliseconds.",
		Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
	}, []string{"handler"})
	orderTotal := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "shop",
		Subsystem: service,
		Name:      "order_total",
		Help:      "Grand totals of successful checkouts.",
		Buckets:   prometheus.ExponentialBuckets(10, 2.5, 10),
	})

	prometheus.MustRegister(checkouts, latency, orderTotal)
	return &CheckoutMetrics{Checkouts: checkouts, LatencyMS: latency, OrderTotal: orderTotal}
}

func Handler() http.Handler {
	return promhttp.Handler()
}
