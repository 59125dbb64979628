package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveFetch(OutcomeSuccess, 10*time.Millisecond)
	m.ObserveFetch(OutcomeSuccess, 20*time.Millisecond)
	m.ObserveFetch(OutcomeError, time.Millisecond)
	m.SetPrice(30000)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.fetchTotal.WithLabelValues(OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.fetchTotal.WithLabelValues(OutcomeError)))
	assert.Equal(t, 30000.0, testutil.ToFloat64(m.priceUSD))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "btc_widget_price_usd 30000")
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveFetch(OutcomeError, time.Second)
		m.SetPrice(1)
	})
}
