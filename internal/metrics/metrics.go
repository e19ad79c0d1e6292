// Package metrics bundles the Prometheus collectors for the index, the
// registry and the HTTP gateway.
package metrics

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector - набор метрик сервиса. Все методы безопасны для nil-получателя.
type Collector struct {
	gatherer prometheus.Gatherer

	Queries         prometheus.Counter
	QueryCandidates prometheus.Histogram
	QueryResults    prometheus.Histogram
	QueryDuration   prometheus.Histogram
	VenuesAdded     prometheus.Counter
	VenuesRejected  *prometheus.CounterVec
	IndexPoints     prometheus.Gauge
	IndexCells      prometheus.Gauge
	HTTPRequests    *prometheus.CounterVec
	HTTPDurations   *prometheus.HistogramVec
}

// New регистрирует метрики в reg; при nil используется глобальный реестр.
func New(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	c := &Collector{gatherer: gatherer}
	var err error

	if c.Queries, err = registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "venue_queries_total",
		Help: "Total number of radius queries served by the index.",
	}), "venue_queries_total"); err != nil {
		return nil, err
	}
	if c.QueryCandidates, err = registerHistogram(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "venue_query_candidates",
		Help:    "Number of stored points examined per radius query.",
		Buckets: prometheus.ExponentialBuckets(1, 4, 10),
	}), "venue_query_candidates"); err != nil {
		return nil, err
	}
	if c.QueryResults, err = registerHistogram(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "venue_query_results",
		Help:    "Number of names returned per radius query.",
		Buckets: prometheus.ExponentialBuckets(1, 4, 10),
	}), "venue_query_results"); err != nil {
		return nil, err
	}
	if c.QueryDuration, err = registerHistogram(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "venue_query_duration_seconds",
		Help:    "Radius query latency inside the index in seconds.",
		Buckets: []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
	}), "venue_query_duration_seconds"); err != nil {
		return nil, err
	}
	if c.VenuesAdded, err = registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "venue_added_total",
		Help: "Total number of venues inserted into the index.",
	}), "venue_added_total"); err != nil {
		return nil, err
	}
	if c.VenuesRejected, err = registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "venue_rejected_total",
		Help: "Total number of rejected venue inserts, labeled by error code.",
	}, []string{"code"}), "venue_rejected_total"); err != nil {
		return nil, err
	}
	if c.IndexPoints, err = registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "venue_index_points",
		Help: "Current number of points in the index.",
	}), "venue_index_points"); err != nil {
		return nil, err
	}
	if c.IndexCells, err = registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "venue_index_cells",
		Help: "Current number of non-empty index cells.",
	}), "venue_index_cells"); err != nil {
		return nil, err
	}
	if c.HTTPRequests, err = registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of handled HTTP requests, labeled by method, route and status.",
	}, []string{"method", "route", "status"}), "http_requests_total"); err != nil {
		return nil, err
	}
	if c.HTTPDurations, err = registerHistogramVec(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency in seconds.",
		Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2},
	}, []string{"method", "route"}), "http_request_duration_seconds"); err != nil {
		return nil, err
	}

	return c, nil
}

// ObserveQuery записывает результат одного радиусного запроса.
func (c *Collector) ObserveQuery(candidates, results int, elapsed time.Duration) {
	if c == nil {
		return
	}
	c.Queries.Inc()
	c.QueryCandidates.Observe(float64(candidates))
	c.QueryResults.Observe(float64(results))
	c.QueryDuration.Observe(elapsed.Seconds())
}

// VenueAdded учитывает успешную вставку и обновляет размер индекса.
func (c *Collector) VenueAdded(points, cells int) {
	if c == nil {
		return
	}
	c.VenuesAdded.Inc()
	c.SetIndexSize(points, cells)
}

// VenueRejected учитывает отклонённую вставку.
func (c *Collector) VenueRejected(code string) {
	if c == nil {
		return
	}
	c.VenuesRejected.WithLabelValues(code).Inc()
}

// SetIndexSize выставляет gauges размера индекса.
func (c *Collector) SetIndexSize(points, cells int) {
	if c == nil {
		return
	}
	c.IndexPoints.Set(float64(points))
	c.IndexCells.Set(float64(cells))
}

// ObserveHTTP записывает один обработанный HTTP запрос.
func (c *Collector) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if c == nil {
		return
	}
	c.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.HTTPDurations.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// Handler exposes a ready-to-use /metrics handler.
func (c *Collector) Handler() http.Handler {
	gatherer := prometheus.DefaultGatherer
	if c != nil && c.gatherer != nil {
		gatherer = c.gatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

func registerCounter(reg prometheus.Registerer, counter prometheus.Counter, name string) (prometheus.Counter, error) {
	if err := reg.Register(counter); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return counter, nil
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogram(reg prometheus.Registerer, h prometheus.Histogram, name string) (prometheus.Histogram, error) {
	if err := reg.Register(h); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Histogram); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return h, nil
}

func registerHistogramVec(reg prometheus.Registerer, vec *prometheus.HistogramVec, name string) (*prometheus.HistogramVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.HistogramVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerGauge(reg prometheus.Registerer, gauge prometheus.Gauge, name string) (prometheus.Gauge, error) {
	if err := reg.Register(gauge); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return gauge, nil
}
