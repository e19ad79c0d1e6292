package usecase_test

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/venue-finder/internal/domain"
	"github.com/venue-finder/internal/geoindex"
	"github.com/venue-finder/internal/pkg/errors"
	"github.com/venue-finder/internal/usecase"
)

// sliceSource отдаёт заранее заданные точки, затем err
type sliceSource struct {
	venues []domain.Venue
	err    error
	gate   chan struct{}
}

func (s *sliceSource) Stream(ctx context.Context, fn func(domain.Venue) error) error {
	if s.gate != nil {
		<-s.gate
	}
	for _, v := range s.venues {
		if err := fn(v); err != nil {
			return err
		}
	}
	return s.err
}

func TestBulkLoader_Load_SkipsInvalid(t *testing.T) {
	reg := usecase.NewVenueRegistry(geoindex.New(), nil, zap.NewNop())
	loader := usecase.NewBulkLoader(reg, zap.NewNop())

	src := &sliceSource{venues: []domain.Venue{
		{Name: "Paris", Lat: 48.8566, Lon: 2.3522},
		{Name: "", Lat: 45.7640, Lon: 4.8357},
		{Name: "Nowhere", Lat: 200, Lon: 10},
		{Name: "Lyon", Lat: 45.7640, Lon: 4.8357},
	}}

	report, err := loader.Load(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Loaded)
	assert.Equal(t, 2, report.Skipped)
	assert.Equal(t, 2, reg.Len())
}

func TestBulkLoader_Load_SourceError(t *testing.T) {
	reg := usecase.NewVenueRegistry(geoindex.New(), nil, zap.NewNop())
	loader := usecase.NewBulkLoader(reg, zap.NewNop())

	boom := stderrors.New("connection reset")
	src := &sliceSource{
		venues: []domain.Venue{{Name: "Paris", Lat: 48.8566, Lon: 2.3522}},
		err:    boom,
	}

	report, err := loader.Load(context.Background(), src)
	assert.ErrorIs(t, err, boom)
	require.NotNil(t, report)
	assert.Equal(t, 1, report.Loaded)
}

func TestBulkLoader_Load_Cancelled(t *testing.T) {
	reg := usecase.NewVenueRegistry(geoindex.New(), nil, zap.NewNop())
	loader := usecase.NewBulkLoader(reg, zap.NewNop())

	venues := make([]domain.Venue, 5000)
	for i := range venues {
		venues[i] = domain.Venue{Name: "v", Lat: 46, Lon: 2}
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := loader.Load(ctx, &sliceSource{venues: venues})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, report.Loaded, len(venues))
}

func TestBulkLoader_Start(t *testing.T) {
	reg := usecase.NewVenueRegistry(geoindex.New(), nil, zap.NewNop())
	require.NoError(t, reg.Add("stale", 10, 10))
	loader := usecase.NewBulkLoader(reg, zap.NewNop())

	gate := make(chan struct{})
	src := &sliceSource{
		venues: []domain.Venue{{Name: "Paris", Lat: 48.8566, Lon: 2.3522}},
		gate:   gate,
	}

	require.NoError(t, loader.Start(context.Background(), src, true))
	assert.True(t, loader.Running())

	err := loader.Start(context.Background(), src, false)
	assert.ErrorIs(t, err, errors.ErrSeedInProgress)

	close(gate)
	loader.Wait()

	assert.False(t, loader.Running())
	names, err := reg.NearBy(48.8566, 2.3522, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"Paris"}, names)
	assert.Equal(t, 1, reg.Len())
}

func TestBulkLoader_Start_AfterCompletion(t *testing.T) {
	reg := usecase.NewVenueRegistry(geoindex.New(), nil, zap.NewNop())
	loader := usecase.NewBulkLoader(reg, zap.NewNop())

	require.NoError(t, loader.Start(context.Background(), &sliceSource{}, false))
	loader.Wait()

	assert.Eventually(t, func() bool { return !loader.Running() }, time.Second, 10*time.Millisecond)
	assert.NoError(t, loader.Start(context.Background(), &sliceSource{}, false))
	loader.Wait()
}
