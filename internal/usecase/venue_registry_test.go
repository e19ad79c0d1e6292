package usecase_test

import (
	"math"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/venue-finder/internal/geoindex"
	"github.com/venue-finder/internal/metrics"
	"github.com/venue-finder/internal/pkg/errors"
	"github.com/venue-finder/internal/usecase"
)

func newRegistry(t *testing.T) (*usecase.VenueRegistry, *metrics.Collector) {
	t.Helper()
	collector, err := metrics.New(prometheus.NewRegistry())
	require.NoError(t, err)
	return usecase.NewVenueRegistry(geoindex.New(), collector, zap.NewNop()), collector
}

func TestVenueRegistry_NearBy_Cities(t *testing.T) {
	reg, _ := newRegistry(t)

	require.NoError(t, reg.Add("Paris", 48.8566, 2.3522))
	require.NoError(t, reg.Add("Lyon", 45.7640, 4.8357))
	require.NoError(t, reg.Add("Berlin", 52.5200, 13.4050))

	names, err := reg.NearBy(48.8566, 2.3522, 500000)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Paris", "Lyon"}, names)
}

func TestVenueRegistry_NearBy_ZeroRadiusMiss(t *testing.T) {
	reg, _ := newRegistry(t)
	require.NoError(t, reg.Add("Paris", 48.8566, 2.3522))

	names, err := reg.NearBy(48.8567, 2.3522, 0)
	require.NoError(t, err)
	assert.NotNil(t, names)
	assert.Empty(t, names)
}

func TestVenueRegistry_NearBy_EmptyIndex(t *testing.T) {
	reg, _ := newRegistry(t)

	names, err := reg.NearBy(0, 0, 1000)
	require.NoError(t, err)
	assert.NotNil(t, names)
	assert.Empty(t, names)
}

func TestVenueRegistry_Add_Errors(t *testing.T) {
	reg, collector := newRegistry(t)

	err := reg.Add("", 48.8566, 2.3522)
	assert.ErrorIs(t, err, errors.ErrEmptyName)

	err = reg.Add("X", 200, 10)
	assert.ErrorIs(t, err, errors.ErrInvalidCoordinates)

	err = reg.Add("X", math.NaN(), 10)
	assert.ErrorIs(t, err, errors.ErrInvalidCoordinates)

	assert.Equal(t, 0, reg.Len())
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.VenuesRejected.WithLabelValues("EMPTY_NAME")))
	assert.Equal(t, 2.0, testutil.ToFloat64(collector.VenuesRejected.WithLabelValues("INVALID_COORDINATES")))
}

func TestVenueRegistry_NearBy_Errors(t *testing.T) {
	reg, _ := newRegistry(t)

	_, err := reg.NearBy(91, 0, 10)
	assert.ErrorIs(t, err, errors.ErrInvalidCoordinates)

	_, err = reg.NearBy(0, 0, math.NaN())
	assert.ErrorIs(t, err, errors.ErrInvalidRadius)
}

func TestVenueRegistry_DuplicateNames(t *testing.T) {
	reg, _ := newRegistry(t)
	require.NoError(t, reg.Add("Cafe", 48.85, 2.35))
	require.NoError(t, reg.Add("Cafe", 48.85, 2.35))

	names, err := reg.NearBy(48.85, 2.35, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"Cafe", "Cafe"}, names)
}

func TestVenueRegistry_StatsAndMetrics(t *testing.T) {
	reg, collector := newRegistry(t)
	require.NoError(t, reg.Add("Paris", 48.8566, 2.3522))
	require.NoError(t, reg.Add("Berlin", 52.5200, 13.4050))

	res, err := reg.Search(48.8566, 2.3522, 1000)
	require.NoError(t, err)
	assert.Equal(t, []string{"Paris"}, res.Names)
	assert.GreaterOrEqual(t, res.Candidates, 1)

	st := reg.Stats()
	assert.Equal(t, 2, st.Points)
	assert.Equal(t, 2, st.Cells)
	assert.Equal(t, geoindex.DefaultStep, st.Step)

	assert.Equal(t, 2.0, testutil.ToFloat64(collector.VenuesAdded))
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.Queries))

	reg.Reset()
	assert.Equal(t, 0, reg.Len())
	assert.Equal(t, 0.0, testutil.ToFloat64(collector.IndexPoints))
}

func TestVenueRegistry_NilMetrics(t *testing.T) {
	reg := usecase.NewVenueRegistry(geoindex.New(), nil, zap.NewNop())

	require.NoError(t, reg.Add("Paris", 48.8566, 2.3522))
	names, err := reg.NearBy(48.8566, 2.3522, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"Paris"}, names)
}
