// Package metrics exposes Prometheus collectors for the price widget.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Fetch outcomes.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// Metrics holds the widget collectors.
type Metrics struct {
	fetchTotal    *prometheus.CounterVec
	fetchDuration prometheus.Histogram
	priceUSD      prometheus.Gauge
	gatherer      prometheus.Gatherer
}

// New creates the collectors and registers them on reg.
func New(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		fetchTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "btc_widget",
			Name:      "fetch_total",
			Help:      "Number of upstream price fetches by outcome",
		}, []string{"outcome"}),
		fetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "btc_widget",
			Name:      "fetch_duration_seconds",
			Help:      "Time spent fetching the upstream price",
			Buckets:   prometheus.DefBuckets,
		}),
		priceUSD: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "btc_widget",
			Name:      "price_usd",
			Help:      "Last successfully fetched price of 1 BTC in USD",
		}),
		gatherer: reg,
	}
	reg.MustRegister(m.fetchTotal, m.fetchDuration, m.priceUSD)
	return m
}

// ObserveFetch records one fetch. A nil receiver is a no-op.
func (m *Metrics) ObserveFetch(outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.fetchTotal.WithLabelValues(outcome).Inc()
	m.fetchDuration.Observe(d.Seconds())
}

// SetPrice records the last fetched price.
func (m *Metrics) SetPrice(rate float64) {
	if m == nil {
		return
	}
	m.priceUSD.Set(rate)
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
