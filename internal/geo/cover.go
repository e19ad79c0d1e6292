package geo

import "math"

// boxSlackDegrees widens bounding boxes by about a centimeter so that rounding in
// the haversine filter can never accept a point the box excluded.
const boxSlackDegrees = 1e-7

// BoundingBox возвращает область, гарантированно содержащую все точки на расстоянии
// не больше radiusMeters от center. Если круг накрывает полюс или радиус не меньше
// половины окружности Земли, область занимает все долготы.
func BoundingBox(center Point, radiusMeters float64) Area {
	if radiusMeters < 0 || math.IsNaN(radiusMeters) {
		radiusMeters = 0
	}

	angular := radiusMeters / EarthRadiusMeters
	latDelta := angular*radToDeg + boxSlackDegrees

	minLat := center.Lat - latDelta
	maxLat := center.Lat + latDelta

	if angular >= math.Pi || minLat <= MinLatitude || maxLat >= MaxLatitude {
		return Area{
			MinLat: math.Max(minLat, MinLatitude),
			MaxLat: math.Min(maxLat, MaxLatitude),
			MinLon: MinLongitude,
			MaxLon: MaxLongitude,
		}
	}

	ratio := math.Sin(angular) / math.Cos(center.Lat*degToRad)
	if ratio >= 1 {
		return Area{MinLat: minLat, MaxLat: maxLat, MinLon: MinLongitude, MaxLon: MaxLongitude}
	}
	lonDelta := math.Asin(ratio)*radToDeg + boxSlackDegrees

	return Area{
		MinLat: minLat,
		MaxLat: maxLat,
		MinLon: center.Lon - lonDelta,
		MaxLon: center.Lon + lonDelta,
	}
}

// CellRange - прямоугольный диапазон ячеек одной точности.
// MinX/MaxX не нормализованы: значения вне [0, 2^Step) замыкаются по модулю.
type CellRange struct {
	MinX, MaxX int64
	MinY, MaxY int64
	Step       uint8
	FullLon    bool
}

// CoverRange возвращает диапазон ячеек, покрывающий область
func CoverRange(box Area, step uint8) CellRange {
	step = clampStep(step)
	n := int64(1) << step

	r := CellRange{Step: step}
	r.MinY = clampSlot(int64(math.Floor(slot(box.MinLat, MinLatitude, MaxLatitude, step))), n)
	r.MaxY = clampSlot(int64(math.Floor(slot(box.MaxLat, MinLatitude, MaxLatitude, step))), n)

	r.MinX = int64(math.Floor(slot(box.MinLon, MinLongitude, MaxLongitude, step)))
	r.MaxX = int64(math.Floor(slot(box.MaxLon, MinLongitude, MaxLongitude, step)))
	if r.MaxX-r.MinX+1 >= n {
		r.MinX, r.MaxX, r.FullLon = 0, n-1, true
	}

	return r
}

// Count returns the number of distinct cells in the range.
func (r CellRange) Count() int {
	return int((r.MaxX - r.MinX + 1) * (r.MaxY - r.MinY + 1))
}

// WithinNeighborhood reports whether every cell of the range is one of NeighborCells(key).
func (r CellRange) WithinNeighborhood(key CellKey) bool {
	if r.FullLon || key.Step != r.Step {
		return false
	}
	x, y := key.Decode()
	cx, cy := int64(x), int64(y)
	return r.MinX >= cx-1 && r.MaxX <= cx+1 && r.MinY >= cy-1 && r.MaxY <= cy+1
}

// Cells перечисляет ключи всех ячеек диапазона
func (r CellRange) Cells() []CellKey {
	n := int64(1) << r.Step
	cells := make([]CellKey, 0, r.Count())
	for y := r.MinY; y <= r.MaxY; y++ {
		for x := r.MinX; x <= r.MaxX; x++ {
			wrapped := (x%n + n) % n
			cells = append(cells, cellFromXY(uint32(wrapped), uint32(y), r.Step))
		}
	}
	return cells
}

func clampSlot(v, n int64) int64 {
	if v < 0 {
		return 0
	}
	if v >= n {
		return n - 1
	}
	return v
}
