package usecase

import (
	"context"
	stderrors "errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/venue-finder/internal/domain"
	"github.com/venue-finder/internal/domain/repository"
	"github.com/venue-finder/internal/pkg/errors"
	"github.com/venue-finder/internal/usecase/dto"
	"go.uber.org/zap"
)

const (
	// ctx проверяется раз в cancelCheckEvery точек
	cancelCheckEvery = 1000

	progressLogEvery = 100000
)

// BulkLoader - массовая загрузка точек из источника в реестр
type BulkLoader struct {
	registry *VenueRegistry
	logger   *zap.Logger

	running atomic.Bool
	wg      sync.WaitGroup
}

// NewBulkLoader создает новый BulkLoader
func NewBulkLoader(registry *VenueRegistry, logger *zap.Logger) *BulkLoader {
	return &BulkLoader{
		registry: registry,
		logger:   logger,
	}
}

// Load синхронно загружает все точки источника.
// Точки с пустым именем или неверными координатами пропускаются и учитываются в Skipped.
// Ошибка источника или отмена ctx прерывают загрузку; уже добавленные точки остаются в индексе.
func (l *BulkLoader) Load(ctx context.Context, src repository.VenueSource) (*dto.LoadReport, error) {
	start := time.Now()
	report := &dto.LoadReport{}
	seen := 0

	err := src.Stream(ctx, func(v domain.Venue) error {
		seen++
		if seen%cancelCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}

		if err := l.registry.Add(v.Name, v.Lat, v.Lon); err != nil {
			if stderrors.Is(err, errors.ErrEmptyName) || stderrors.Is(err, errors.ErrInvalidCoordinates) {
				report.Skipped++
				return nil
			}
			return err
		}

		report.Loaded++
		if report.Loaded%progressLogEvery == 0 {
			l.logger.Info("Bulk load progress", zap.Int("loaded", report.Loaded))
		}
		return nil
	})
	report.DurationMs = float64(time.Since(start).Microseconds()) / 1000

	if err != nil {
		l.logger.Warn("Bulk load aborted",
			zap.Int("loaded", report.Loaded),
			zap.Int("skipped", report.Skipped),
			zap.Error(err))
		return report, fmt.Errorf("bulk load: %w", err)
	}

	l.logger.Info("Bulk load completed",
		zap.Int("loaded", report.Loaded),
		zap.Int("skipped", report.Skipped),
		zap.Float64("duration_ms", report.DurationMs),
		zap.Int("index_size", l.registry.Len()))

	return report, nil
}

// Start запускает Load в фоне. Пока предыдущая загрузка не завершена, возвращает ErrSeedInProgress.
// При replace индекс очищается перед загрузкой.
func (l *BulkLoader) Start(ctx context.Context, src repository.VenueSource, replace bool) error {
	if !l.running.CompareAndSwap(false, true) {
		return errors.ErrSeedInProgress
	}

	if replace {
		l.registry.Reset()
	}

	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		defer l.running.Store(false)

		if _, err := l.Load(ctx, src); err != nil {
			l.logger.Error("Background bulk load failed", zap.Error(err))
		}
	}()

	return nil
}

// Running сообщает, идёт ли фоновая загрузка
func (l *BulkLoader) Running() bool {
	return l.running.Load()
}

// Wait ждёт завершения фоновой загрузки
func (l *BulkLoader) Wait() {
	l.wg.Wait()
}
