package loadgen

import (
	"context"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/venue-finder/internal/domain"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat"
)

// Doer выполняет один запрос к шлюзу
type Doer interface {
	Do(ctx context.Context, lat, lon float64) (status int, err error)
}

// Report - итог прогона
type Report struct {
	Requests int
	Errors   int
	Dropped  int
	Statuses map[int]int
	Elapsed  time.Duration

	P50 time.Duration
	P95 time.Duration
	P99 time.Duration
	Max time.Duration
}

// Runner запускает план нагрузки
type Runner struct {
	doer        Doer
	bounds      domain.BoundingBox
	rand        *rand.Rand
	maxInFlight int
	logger      *zap.Logger
}

// NewRunner создает Runner. Запросы сверх maxInFlight одновременно не отправляются и считаются Dropped.
func NewRunner(doer Doer, bounds domain.BoundingBox, seed int64, maxInFlight int, logger *zap.Logger) *Runner {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if maxInFlight <= 0 {
		maxInFlight = 512
	}
	return &Runner{
		doer:        doer,
		bounds:      bounds,
		rand:        rand.New(rand.NewSource(seed)),
		maxInFlight: maxInFlight,
		logger:      logger,
	}
}

type collector struct {
	mu        sync.Mutex
	latencies []float64
	statuses  map[int]int
	errors    int
}

func (c *collector) record(status int, err error, d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.latencies = append(c.latencies, d.Seconds())
	if err != nil {
		c.errors++
		return
	}
	c.statuses[status]++
	if status >= 400 {
		c.errors++
	}
}

// Run выполняет стадии по очереди. Отмена ctx прекращает запуск новых запросов,
// уже отправленные дожидаются ответа.
func (r *Runner) Run(ctx context.Context, stages []Stage) (*Report, error) {
	col := &collector{statuses: make(map[int]int)}
	sem := make(chan struct{}, r.maxInFlight)
	var wg sync.WaitGroup

	start := time.Now()
	dropped := 0
	sent := 0

	for i, st := range stages {
		r.logger.Info("Stage started",
			zap.Int("stage", i+1),
			zap.Int("requests", st.Requests),
			zap.Duration("duration", st.Duration),
			zap.Float64("rate", st.Rate()))

		stageStart := time.Now()
		interval := st.Interval()

		for n := 0; n < st.Requests; n++ {
			lat, lon := r.point()

			select {
			case sem <- struct{}{}:
				sent++
				wg.Add(1)
				go func() {
					defer wg.Done()
					defer func() { <-sem }()

					t := time.Now()
					status, err := r.doer.Do(ctx, lat, lon)
					col.record(status, err, time.Since(t))
				}()
			default:
				dropped++
			}

			if !sleepUntil(ctx, stageStart.Add(time.Duration(n+1)*interval)) {
				wg.Wait()
				return r.report(col, sent, dropped, time.Since(start)), ctx.Err()
			}
		}

		// стадия без запросов просто выдерживает паузу
		if st.Requests == 0 && !sleepUntil(ctx, stageStart.Add(st.Duration)) {
			wg.Wait()
			return r.report(col, sent, dropped, time.Since(start)), ctx.Err()
		}
	}

	wg.Wait()
	return r.report(col, sent, dropped, time.Since(start)), nil
}

func (r *Runner) point() (lat, lon float64) {
	lat = r.bounds.MinLat + r.rand.Float64()*(r.bounds.MaxLat-r.bounds.MinLat)
	lon = r.bounds.MinLon + r.rand.Float64()*(r.bounds.MaxLon-r.bounds.MinLon)
	return lat, lon
}

func (r *Runner) report(col *collector, sent, dropped int, elapsed time.Duration) *Report {
	col.mu.Lock()
	defer col.mu.Unlock()

	rep := &Report{
		Requests: sent,
		Errors:   col.errors,
		Dropped:  dropped,
		Statuses: col.statuses,
		Elapsed:  elapsed,
	}
	if len(col.latencies) == 0 {
		return rep
	}

	sorted := append([]float64(nil), col.latencies...)
	sort.Float64s(sorted)

	rep.P50 = seconds(stat.Quantile(0.50, stat.Empirical, sorted, nil))
	rep.P95 = seconds(stat.Quantile(0.95, stat.Empirical, sorted, nil))
	rep.P99 = seconds(stat.Quantile(0.99, stat.Empirical, sorted, nil))
	rep.Max = seconds(sorted[len(sorted)-1])
	return rep
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

func sleepUntil(ctx context.Context, t time.Time) bool {
	d := time.Until(t)
	if d <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return true
	case <-ctx.Done():
		return false
	}
}
