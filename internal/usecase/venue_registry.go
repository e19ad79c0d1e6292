package usecase

import (
	stderrors "errors"
	"time"

	"github.com/venue-finder/internal/geo"
	"github.com/venue-finder/internal/geoindex"
	"github.com/venue-finder/internal/metrics"
	"github.com/venue-finder/internal/pkg/errors"
	"github.com/venue-finder/internal/usecase/dto"
	"go.uber.org/zap"
)

// VenueRegistry - регистрация точек и поиск по радиусу поверх пространственного индекса
type VenueRegistry struct {
	index   *geoindex.Index
	metrics *metrics.Collector
	logger  *zap.Logger
}

// NewVenueRegistry создает новый VenueRegistry. metrics может быть nil.
func NewVenueRegistry(
	index *geoindex.Index,
	collector *metrics.Collector,
	logger *zap.Logger,
) *VenueRegistry {
	return &VenueRegistry{
		index:   index,
		metrics: collector,
		logger:  logger,
	}
}

// Add регистрирует точку. Имена не уникальны: повторный вызов добавляет вторую запись.
func (r *VenueRegistry) Add(name string, lat, lon float64) error {
	if name == "" {
		r.metrics.VenueRejected(errors.ErrEmptyName.Code)
		return errors.ErrEmptyName
	}

	err := r.index.Insert(geoindex.Point{Name: name, Lat: lat, Lon: lon})
	if err != nil {
		appErr := mapIndexError(err)
		r.metrics.VenueRejected(appErr.Code)
		return appErr
	}

	r.metrics.VenueAdded(r.index.Len(), r.index.Cells())
	return nil
}

// NearBy возвращает имена точек не дальше radiusMeters от (lat, lon).
// Результат никогда не nil.
func (r *VenueRegistry) NearBy(lat, lon, radiusMeters float64) ([]string, error) {
	res, err := r.Search(lat, lon, radiusMeters)
	if err != nil {
		return nil, err
	}
	return res.Names, nil
}

// Search - NearBy со статистикой просмотра индекса
func (r *VenueRegistry) Search(lat, lon, radiusMeters float64) (geoindex.Result, error) {
	start := time.Now()

	res, err := r.index.Search(geo.Point{Lat: lat, Lon: lon}, radiusMeters)
	if err != nil {
		return geoindex.Result{}, mapIndexError(err)
	}

	r.metrics.ObserveQuery(res.Candidates, len(res.Names), time.Since(start))
	return res, nil
}

// Stats возвращает состояние индекса
func (r *VenueRegistry) Stats() dto.IndexStatsResponse {
	st := r.index.Stats()
	return dto.IndexStatsResponse{
		Points:       st.Points,
		Cells:        st.Cells,
		Step:         st.Step,
		Shards:       st.Shards,
		LargestCell:  st.LargestCell,
		CellHeightKm: st.CellHeightKm,
	}
}

// Reset удаляет все точки из индекса
func (r *VenueRegistry) Reset() {
	r.index.Reset()
	r.metrics.SetIndexSize(0, 0)
	r.logger.Info("Venue index reset")
}

// Len возвращает число точек в индексе
func (r *VenueRegistry) Len() int {
	return r.index.Len()
}

func mapIndexError(err error) *errors.AppError {
	switch {
	case stderrors.Is(err, geo.ErrInvalidCoordinate):
		return errors.ErrInvalidCoordinates
	case stderrors.Is(err, geoindex.ErrInvalidRadius):
		return errors.ErrInvalidRadius
	default:
		return errors.ErrInternalServer
	}
}
