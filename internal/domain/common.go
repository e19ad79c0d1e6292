package domain

type Point struct {
	Lat float64 `json:"lat" db:"lat"`
	Lon float64 `json:"lon" db:"lon"`
}

type BoundingBox struct {
	MinLat float64 `json:"min_lat" db:"min_lat"`
	MinLon float64 `json:"min_lon" db:"min_lon"`
	MaxLat float64 `json:"max_lat" db:"max_lat"`
	MaxLon float64 `json:"max_lon" db:"max_lon"`
}

// FranceBounds - область генерации синтетических данных по умолчанию
var FranceBounds = BoundingBox{
	MinLat: 41.303,
	MinLon: -5.725,
	MaxLat: 51.124,
	MaxLon: 9.562,
}

// Contains проверяет, лежит ли точка внутри области (границы включительно)
func (b BoundingBox) Contains(p Point) bool {
	return p.Lat >= b.MinLat && p.Lat <= b.MaxLat && p.Lon >= b.MinLon && p.Lon <= b.MaxLon
}
