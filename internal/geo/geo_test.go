package geo_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/venue-finder/internal/geo"
)

var (
	paris  = geo.Point{Lat: 48.8566, Lon: 2.3522}
	lyon   = geo.Point{Lat: 45.7640, Lon: 4.8357}
	berlin = geo.Point{Lat: 52.5200, Lon: 13.4050}
)

func TestDistance_KnownCities(t *testing.T) {
	assert.InDelta(t, 392000, geo.Distance(paris, lyon), 5000)
	assert.InDelta(t, 878000, geo.Distance(paris, berlin), 10000)
}

func TestDistance_SymmetricAndZero(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 1000; i++ {
		a := geo.Point{Lat: rng.Float64()*180 - 90, Lon: rng.Float64()*360 - 180}
		b := geo.Point{Lat: rng.Float64()*180 - 90, Lon: rng.Float64()*360 - 180}

		assert.Equal(t, geo.Distance(a, b), geo.Distance(b, a))
		assert.Equal(t, 0.0, geo.Distance(a, a))
	}
}

func TestDistance_MonotonicInSeparation(t *testing.T) {
	origin := geo.Point{Lat: 0, Lon: 0}
	prev := 0.0
	for lat := 0.5; lat <= 90; lat += 0.5 {
		d := geo.Distance(origin, geo.Point{Lat: lat, Lon: 0})
		assert.Greater(t, d, prev)
		prev = d
	}
	// quarter meridian
	assert.InDelta(t, math.Pi/2*geo.EarthRadiusMeters, prev, 1e-6)
}

func TestValidateCoordinates(t *testing.T) {
	tests := []struct {
		name    string
		lat     float64
		lon     float64
		wantErr bool
	}{
		{"origin", 0, 0, false},
		{"corners", 90, -180, false},
		{"other corner", -90, 180, false},
		{"latitude too large", 90.0001, 0, true},
		{"longitude too small", 0, -180.5, true},
		{"latitude 200", 200, 10, true},
		{"NaN latitude", math.NaN(), 0, true},
		{"NaN longitude", 0, math.NaN(), true},
		{"infinite longitude", 0, math.Inf(1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := geo.ValidateCoordinates(tt.lat, tt.lon)
			if tt.wantErr {
				assert.ErrorIs(t, err, geo.ErrInvalidCoordinate)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestEncodeCell_Deterministic(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for i := 0; i < 1000; i++ {
		lat := rng.Float64()*180 - 90
		lon := rng.Float64()*360 - 180
		step := uint8(1 + rng.Intn(int(geo.MaxStep)))

		assert.Equal(t, geo.EncodeCell(lat, lon, step), geo.EncodeCell(lat, lon, step))
	}
}

func TestEncodeCell_PointInsideBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(13))
	for i := 0; i < 1000; i++ {
		lat := rng.Float64()*180 - 90
		lon := rng.Float64()*360 - 180

		b := geo.EncodeCell(lat, lon, 9).Bounds()
		assert.True(t, lat >= b.MinLat && lat < b.MaxLat, "lat %v not in %+v", lat, b)
		assert.True(t, lon >= b.MinLon && lon < b.MaxLon, "lon %v not in %+v", lon, b)
	}
}

func TestEncodeCell_Extremes(t *testing.T) {
	top := geo.EncodeCell(90, 180, 4)
	x, y := top.Decode()
	assert.Equal(t, uint32(15), x)
	assert.Equal(t, uint32(15), y)

	bottom := geo.EncodeCell(-90, -180, 4)
	assert.Equal(t, uint64(0), bottom.Bits)

	// out of range input is clamped rather than rejected
	assert.Equal(t, top, geo.EncodeCell(500, 500, 4))
	assert.Equal(t, bottom, geo.EncodeCell(math.NaN(), -500, 4))
}

func TestEncodeCell_InterleavesLongitudeFirst(t *testing.T) {
	// step 1: lon >= 0 sets bit 1, lat >= 0 sets bit 0
	assert.Equal(t, uint64(0b10), geo.EncodeCell(-10, 10, 1).Bits)
	assert.Equal(t, uint64(0b01), geo.EncodeCell(10, -10, 1).Bits)
	assert.Equal(t, uint64(0b11), geo.EncodeCell(10, 10, 1).Bits)
}

func TestNeighborCells(t *testing.T) {
	t.Run("interior cell has eight neighbors", func(t *testing.T) {
		key := geo.EncodeCell(paris.Lat, paris.Lon, 9)
		cells := geo.NeighborCells(key)

		require.Len(t, cells, 9)
		assert.Equal(t, key, cells[0])

		cx, cy := key.Decode()
		for _, c := range cells {
			x, y := c.Decode()
			assert.LessOrEqual(t, absDiff(x, cx), uint32(1))
			assert.LessOrEqual(t, absDiff(y, cy), uint32(1))
			assert.Equal(t, key.Step, c.Step)
		}
	})

	t.Run("longitude wraps at the antimeridian", func(t *testing.T) {
		key := geo.EncodeCell(0, 179.99, 9)
		cells := geo.NeighborCells(key)

		require.Len(t, cells, 9)
		var wrapped bool
		for _, c := range cells {
			if x, _ := c.Decode(); x == 0 {
				wrapped = true
			}
		}
		assert.True(t, wrapped)
	})

	t.Run("rows beyond the pole are dropped", func(t *testing.T) {
		cells := geo.NeighborCells(geo.EncodeCell(89.99, 0, 9))
		assert.Len(t, cells, 6)
	})

	t.Run("coarse precision de-duplicates", func(t *testing.T) {
		cells := geo.NeighborCells(geo.EncodeCell(10, 10, 1))
		assert.Len(t, cells, 4)
	})
}

func TestBoundingBox_ContainsCircle(t *testing.T) {
	rng := rand.New(rand.NewSource(17))
	for i := 0; i < 200; i++ {
		center := geo.Point{Lat: rng.Float64()*170 - 85, Lon: rng.Float64()*360 - 180}
		radius := rng.Float64() * 2000000
		box := geo.BoundingBox(center, radius)

		for j := 0; j < 50; j++ {
			p := geo.Point{Lat: rng.Float64()*180 - 90, Lon: rng.Float64()*360 - 180}
			if geo.Distance(center, p) > radius {
				continue
			}
			inside := geo.Area{MinLat: p.Lat, MaxLat: p.Lat, MinLon: p.Lon, MaxLon: p.Lon}
			assert.True(t, box.Intersects(inside), "point %+v within %v m of %+v escapes %+v", p, radius, center, box)
		}
	}
}

func TestBoundingBox_PoleAndHugeRadius(t *testing.T) {
	box := geo.BoundingBox(geo.Point{Lat: 89, Lon: 0}, 200000)
	assert.Equal(t, -180.0, box.MinLon)
	assert.Equal(t, 180.0, box.MaxLon)
	assert.Equal(t, 90.0, box.MaxLat)

	world := geo.BoundingBox(geo.Point{Lat: 0, Lon: 0}, math.Pi*geo.EarthRadiusMeters)
	assert.Equal(t, -90.0, world.MinLat)
	assert.Equal(t, 90.0, world.MaxLat)
}

func TestCoverRange(t *testing.T) {
	t.Run("small radius stays inside the neighborhood", func(t *testing.T) {
		box := geo.BoundingBox(paris, 10000)
		r := geo.CoverRange(box, 9)
		assert.True(t, r.WithinNeighborhood(geo.EncodeCell(paris.Lat, paris.Lon, 9)))
	})

	t.Run("large radius leaves the neighborhood", func(t *testing.T) {
		box := geo.BoundingBox(paris, 500000)
		r := geo.CoverRange(box, 9)
		assert.False(t, r.WithinNeighborhood(geo.EncodeCell(paris.Lat, paris.Lon, 9)))
		assert.Equal(t, r.Count(), len(r.Cells()))
	})

	t.Run("antimeridian range wraps", func(t *testing.T) {
		box := geo.BoundingBox(geo.Point{Lat: 0, Lon: 179.9}, 100000)
		r := geo.CoverRange(box, 9)
		assert.False(t, r.FullLon)

		var sawEast, sawWest bool
		for _, c := range r.Cells() {
			x, _ := c.Decode()
			sawEast = sawEast || x == 511
			sawWest = sawWest || x == 0
		}
		assert.True(t, sawEast)
		assert.True(t, sawWest)
	})

	t.Run("full longitude", func(t *testing.T) {
		r := geo.CoverRange(geo.Area{MinLat: -1, MaxLat: 1, MinLon: -180, MaxLon: 180}, 4)
		assert.True(t, r.FullLon)
		assert.Equal(t, int64(16), r.MaxX-r.MinX+1)
	})
}

func TestArea_Intersects(t *testing.T) {
	a := geo.Area{MinLat: 0, MaxLat: 10, MinLon: 170, MaxLon: 185}
	b := geo.Area{MinLat: 5, MaxLat: 6, MinLon: -179, MaxLon: -178}
	assert.True(t, a.Intersects(b))

	c := geo.Area{MinLat: 20, MaxLat: 30, MinLon: 170, MaxLon: 175}
	assert.False(t, a.Intersects(c))
}

func absDiff(a, b uint32) uint32 {
	if a > b {
		return a - b
	}
	return b - a
}
