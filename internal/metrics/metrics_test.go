package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/venue-finder/internal/metrics"
)

func TestCollector_ObserveQuery(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := metrics.New(reg)
	require.NoError(t, err)

	c.ObserveQuery(120, 3, 250*time.Microsecond)
	c.ObserveQuery(80, 0, 100*time.Microsecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.Queries))
	assert.Equal(t, 2, testutil.CollectAndCount(c.QueryCandidates))
}

func TestCollector_VenueCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := metrics.New(reg)
	require.NoError(t, err)

	c.VenueAdded(1, 1)
	c.VenueAdded(2, 1)
	c.VenueRejected("EMPTY_NAME")

	assert.Equal(t, 2.0, testutil.ToFloat64(c.VenuesAdded))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.IndexPoints))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.IndexCells))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.VenuesRejected.WithLabelValues("EMPTY_NAME")))
}

func TestCollector_ReRegisterReusesCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := metrics.New(reg)
	require.NoError(t, err)
	second, err := metrics.New(reg)
	require.NoError(t, err)

	first.VenueAdded(1, 1)
	assert.Equal(t, 1.0, testutil.ToFloat64(second.VenuesAdded))
}

func TestCollector_NilSafe(t *testing.T) {
	var c *metrics.Collector

	assert.NotPanics(t, func() {
		c.ObserveQuery(1, 1, time.Millisecond)
		c.VenueAdded(1, 1)
		c.VenueRejected("X")
		c.SetIndexSize(0, 0)
		c.ObserveHTTP(http.MethodGet, "/", http.StatusOK, time.Millisecond)
	})
}

func TestCollector_Handler(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := metrics.New(reg)
	require.NoError(t, err)
	c.ObserveHTTP(http.MethodGet, "/api/v1/venues/nearby", http.StatusOK, 2*time.Millisecond)

	rr := httptest.NewRecorder()
	c.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	body, err := io.ReadAll(rr.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `http_requests_total{method="GET",route="/api/v1/venues/nearby",status="200"} 1`)
	assert.Contains(t, string(body), "venue_index_points")
}
