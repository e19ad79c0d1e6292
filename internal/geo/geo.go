package geo

import (
	"errors"
	"fmt"
	"math"
)

// EarthRadiusMeters - средний радиус Земли (сферическая модель)
const EarthRadiusMeters = 6371000.0

const (
	MinLatitude  = -90.0
	MaxLatitude  = 90.0
	MinLongitude = -180.0
	MaxLongitude = 180.0

	degToRad = math.Pi / 180.0
	radToDeg = 180.0 / math.Pi
)

// ErrInvalidCoordinate is returned for NaN, infinite or out-of-range coordinates.
var ErrInvalidCoordinate = errors.New("invalid coordinate")

// Point - координаты точки в градусах
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// ValidateCoordinates проверяет, что широта и долгота конечны и лежат в допустимых диапазонах
func ValidateCoordinates(lat, lon float64) error {
	if math.IsNaN(lat) || lat < MinLatitude || lat > MaxLatitude {
		return fmt.Errorf("%w: latitude %v outside [-90, 90]", ErrInvalidCoordinate, lat)
	}
	if math.IsNaN(lon) || lon < MinLongitude || lon > MaxLongitude {
		return fmt.Errorf("%w: longitude %v outside [-180, 180]", ErrInvalidCoordinate, lon)
	}
	return nil
}

// Distance вычисляет расстояние между двумя точками по формуле гаверсинусов, в метрах
func Distance(a, b Point) float64 {
	lat1 := a.Lat * degToRad
	lat2 := b.Lat * degToRad
	dLat := (b.Lat - a.Lat) * degToRad
	dLon := (b.Lon - a.Lon) * degToRad

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)

	h := sinLat*sinLat + math.Cos(lat1)*math.Cos(lat2)*sinLon*sinLon
	if h > 1 {
		h = 1
	}

	return 2 * EarthRadiusMeters * math.Asin(math.Sqrt(h))
}
