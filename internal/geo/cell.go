package geo

import (
	"fmt"
	"math"
)

// MaxStep is the finest supported precision: 26 bits per axis, 52 bits total.
const MaxStep uint8 = 26

// CellKey - ключ ячейки пространственного индекса.
// Bits хранит чередующиеся биты долготы и широты (долгота старшая в каждой паре),
// Step - число бит на ось.
type CellKey struct {
	Bits uint64
	Step uint8
}

// Area - прямоугольная область в градусах.
// Долгота может выходить за пределы [-180, 180], если область пересекает антимеридиан.
type Area struct {
	MinLat float64 `json:"min_lat"`
	MaxLat float64 `json:"max_lat"`
	MinLon float64 `json:"min_lon"`
	MaxLon float64 `json:"max_lon"`
}

// EncodeCell кодирует координаты в ключ ячейки заданной точности.
// Значения вне диапазона прижимаются к границам, NaN трактуется как минимум диапазона.
func EncodeCell(lat, lon float64, step uint8) CellKey {
	step = clampStep(step)
	x := quantize(lon, MinLongitude, MaxLongitude, step)
	y := quantize(lat, MinLatitude, MaxLatitude, step)
	return cellFromXY(x, y, step)
}

// Decode returns the longitude (x) and latitude (y) slot indices of the cell.
func (k CellKey) Decode() (x, y uint32) {
	return squash(k.Bits >> 1), squash(k.Bits)
}

// Bounds возвращает географические границы ячейки
func (k CellKey) Bounds() Area {
	x, y := k.Decode()
	n := float64(uint64(1) << k.Step)
	lonWidth := (MaxLongitude - MinLongitude) / n
	latHeight := (MaxLatitude - MinLatitude) / n

	return Area{
		MinLat: MinLatitude + float64(y)*latHeight,
		MaxLat: MinLatitude + float64(y+1)*latHeight,
		MinLon: MinLongitude + float64(x)*lonWidth,
		MaxLon: MinLongitude + float64(x+1)*lonWidth,
	}
}

func (k CellKey) String() string {
	return fmt.Sprintf("%d:%0*x", k.Step, (int(k.Step)+1)/2, k.Bits)
}

// NeighborCells возвращает ячейку и её соседей (до 8) той же точности.
// По долготе соседи замыкаются через антимеридиан, строки за полюсами отбрасываются.
func NeighborCells(key CellKey) []CellKey {
	x, y := key.Decode()
	n := int64(1) << key.Step

	cells := make([]CellKey, 0, 9)
	cells = append(cells, key)
	seen := map[uint64]struct{}{key.Bits: {}}

	for dy := int64(-1); dy <= 1; dy++ {
		ny := int64(y) + dy
		if ny < 0 || ny >= n {
			continue
		}
		for dx := int64(-1); dx <= 1; dx++ {
			nx := ((int64(x)+dx)%n + n) % n
			cell := cellFromXY(uint32(nx), uint32(ny), key.Step)
			if _, ok := seen[cell.Bits]; ok {
				continue
			}
			seen[cell.Bits] = struct{}{}
			cells = append(cells, cell)
		}
	}

	return cells
}

// Intersects reports whether two areas overlap, taking longitude wrap into account.
func (a Area) Intersects(b Area) bool {
	if a.MaxLat < b.MinLat || b.MaxLat < a.MinLat {
		return false
	}
	for _, shift := range [...]float64{0, -360, 360} {
		if a.MinLon <= b.MaxLon+shift && b.MinLon+shift <= a.MaxLon {
			return true
		}
	}
	return false
}

func clampStep(step uint8) uint8 {
	if step < 1 {
		return 1
	}
	if step > MaxStep {
		return MaxStep
	}
	return step
}

// slot maps v onto [0, 2^step) without clamping. CoverRange relies on it being
// the exact expression quantize uses, so box edges and stored points agree.
func slot(v, min, max float64, step uint8) float64 {
	return (v - min) / (max - min) * float64(uint64(1)<<step)
}

func quantize(v, min, max float64, step uint8) uint32 {
	n := uint64(1) << step
	if math.IsNaN(v) || v <= min {
		return 0
	}
	if v >= max {
		return uint32(n - 1)
	}
	s := uint64(slot(v, min, max, step))
	if s >= n {
		s = n - 1
	}
	return uint32(s)
}

func cellFromXY(x, y uint32, step uint8) CellKey {
	return CellKey{Bits: spread(x)<<1 | spread(y), Step: step}
}

// spread moves the low 32 bits of v to the even bit positions of the result.
func spread(v uint32) uint64 {
	x := uint64(v)
	x = (x | x<<16) & 0x0000FFFF0000FFFF
	x = (x | x<<8) & 0x00FF00FF00FF00FF
	x = (x | x<<4) & 0x0F0F0F0F0F0F0F0F
	x = (x | x<<2) & 0x3333333333333333
	x = (x | x<<1) & 0x5555555555555555
	return x
}

func squash(v uint64) uint32 {
	x := v & 0x5555555555555555
	x = (x | x>>1) & 0x3333333333333333
	x = (x | x>>2) & 0x0F0F0F0F0F0F0F0F
	x = (x | x>>4) & 0x00FF00FF00FF00FF
	x = (x | x>>8) & 0x0000FFFF0000FFFF
	x = (x | x>>16) & 0x00000000FFFFFFFF
	return uint32(x)
}
