// Package geoindex implements an in-memory spatial index of named points with
// radius queries. Points are bucketed by a fixed-precision interleaved geohash
// cell; a query gathers the cells covering the circle's bounding box and filters
// the candidates by exact haversine distance.
//
// Concurrency: the cell map is split into shards, each guarded by its own
// RWMutex, and every cell bucket carries its own RWMutex. Writers to one cell
// never block readers of another, so a bulk load can run while queries are served.
package geoindex

import (
	"errors"
	"fmt"
	"math"
	"math/bits"
	"sync"
	"sync/atomic"

	"github.com/venue-finder/internal/geo"
)

const (
	// DefaultStep gives cells of 0.35° latitude (~39 km) by 0.70° longitude.
	DefaultStep uint8 = 9

	DefaultShards = 64
)

// ErrInvalidRadius is returned when the query radius is NaN.
var ErrInvalidRadius = errors.New("invalid radius")

// Point - именованная точка индекса
type Point struct {
	Name string
	Lat  float64
	Lon  float64
}

// Location returns the point's coordinates.
func (p Point) Location() geo.Point {
	return geo.Point{Lat: p.Lat, Lon: p.Lon}
}

// Result - результат радиусного запроса.
// Candidates - число просмотренных точек, Cells - число посещённых непустых ячеек.
type Result struct {
	Names      []string
	Candidates int
	Cells      int
}

// Stats - состояние индекса
type Stats struct {
	Points       int     `json:"points"`
	Cells        int     `json:"cells"`
	Step         uint8   `json:"step"`
	Shards       int     `json:"shards"`
	LargestCell  int     `json:"largest_cell"`
	CellHeightKm float64 `json:"cell_height_km"`
}

type bucket struct {
	mu     sync.RWMutex
	points []Point
}

type shard struct {
	mu    sync.RWMutex
	cells map[uint64]*bucket
}

// Index - пространственный индекс точек
type Index struct {
	step      uint8
	shards    []shard
	shardBits uint

	size  atomic.Int64
	cells atomic.Int64
}

// Option configures an Index.
type Option func(*Index)

// WithStep sets the cell precision in bits per axis (1..26).
func WithStep(step uint8) Option {
	return func(ix *Index) {
		ix.step = step
	}
}

// WithShards sets the number of lock shards, rounded up to a power of two.
func WithShards(n int) Option {
	return func(ix *Index) {
		if n < 1 {
			n = 1
		}
		ix.shardBits = uint(bits.Len(uint(n - 1)))
	}
}

// New создает пустой индекс
func New(opts ...Option) *Index {
	ix := &Index{
		step:      DefaultStep,
		shardBits: uint(bits.Len(uint(DefaultShards - 1))),
	}
	for _, opt := range opts {
		opt(ix)
	}

	if ix.step < 1 {
		ix.step = 1
	}
	if ix.step > geo.MaxStep {
		ix.step = geo.MaxStep
	}

	ix.shards = make([]shard, 1<<ix.shardBits)
	for i := range ix.shards {
		ix.shards[i].cells = make(map[uint64]*bucket)
	}

	return ix
}

// Insert добавляет точку в ячейку, определяемую её координатами.
// Уникальность имени не проверяется.
func (ix *Index) Insert(p Point) error {
	if err := geo.ValidateCoordinates(p.Lat, p.Lon); err != nil {
		return err
	}

	key := geo.EncodeCell(p.Lat, p.Lon, ix.step)
	s := ix.shardFor(key.Bits)

	// The shard lock is held (shared) across the append so Reset, which takes
	// every shard exclusively, never races with an in-flight insert.
	s.mu.RLock()
	b := s.cells[key.Bits]
	if b != nil {
		b.append(p)
		ix.size.Add(1)
		s.mu.RUnlock()
		return nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if b = s.cells[key.Bits]; b == nil {
		b = &bucket{}
		s.cells[key.Bits] = b
		ix.cells.Add(1)
	}
	b.append(p)
	ix.size.Add(1)

	return nil
}

// QueryRadius возвращает имена точек на расстоянии не больше radiusMeters от center.
// Порядок не гарантируется.
func (ix *Index) QueryRadius(center geo.Point, radiusMeters float64) ([]string, error) {
	res, err := ix.Search(center, radiusMeters)
	if err != nil {
		return nil, err
	}
	return res.Names, nil
}

// Search выполняет радиусный запрос и возвращает статистику просмотра.
// Отрицательный радиус трактуется как 0: возвращаются только точки с теми же координатами.
func (ix *Index) Search(center geo.Point, radiusMeters float64) (Result, error) {
	if err := geo.ValidateCoordinates(center.Lat, center.Lon); err != nil {
		return Result{}, err
	}
	if math.IsNaN(radiusMeters) {
		return Result{}, fmt.Errorf("%w: radius is NaN", ErrInvalidRadius)
	}
	if radiusMeters < 0 {
		radiusMeters = 0
	}

	res := Result{Names: make([]string, 0)}
	box := geo.BoundingBox(center, radiusMeters)

	for _, key := range ix.candidateCells(center, box) {
		b := ix.lookup(key.Bits)
		if b == nil {
			continue
		}
		res.Cells++

		b.mu.RLock()
		res.Candidates += len(b.points)
		for _, p := range b.points {
			if geo.Distance(center, p.Location()) <= radiusMeters {
				res.Names = append(res.Names, p.Name)
			}
		}
		b.mu.RUnlock()
	}

	return res, nil
}

// candidateCells picks the cheapest complete cover: the 3x3 neighborhood when the
// circle fits in it, the covering range when it is smaller than the set of
// occupied cells, otherwise the occupied cells that intersect the box.
func (ix *Index) candidateCells(center geo.Point, box geo.Area) []geo.CellKey {
	key := geo.EncodeCell(center.Lat, center.Lon, ix.step)
	rng := geo.CoverRange(box, ix.step)

	if rng.WithinNeighborhood(key) {
		return geo.NeighborCells(key)
	}
	if rng.Count() <= int(ix.cells.Load()) {
		return rng.Cells()
	}
	return ix.occupiedCells(box)
}

func (ix *Index) occupiedCells(box geo.Area) []geo.CellKey {
	var keys []geo.CellKey
	for i := range ix.shards {
		s := &ix.shards[i]
		s.mu.RLock()
		for cellBits := range s.cells {
			key := geo.CellKey{Bits: cellBits, Step: ix.step}
			if key.Bounds().Intersects(box) {
				keys = append(keys, key)
			}
		}
		s.mu.RUnlock()
	}
	return keys
}

// Len returns the number of stored points.
func (ix *Index) Len() int {
	return int(ix.size.Load())
}

// Cells returns the number of non-empty cells.
func (ix *Index) Cells() int {
	return int(ix.cells.Load())
}

// Step returns the cell precision.
func (ix *Index) Step() uint8 {
	return ix.step
}

// Stats собирает статистику по индексу
func (ix *Index) Stats() Stats {
	st := Stats{
		Step:         ix.step,
		Shards:       len(ix.shards),
		CellHeightKm: (geo.MaxLatitude - geo.MinLatitude) / float64(uint64(1)<<ix.step) * math.Pi / 180 * geo.EarthRadiusMeters / 1000,
	}

	for i := range ix.shards {
		s := &ix.shards[i]
		s.mu.RLock()
		st.Cells += len(s.cells)
		for _, b := range s.cells {
			b.mu.RLock()
			n := len(b.points)
			b.mu.RUnlock()
			st.Points += n
			if n > st.LargestCell {
				st.LargestCell = n
			}
		}
		s.mu.RUnlock()
	}

	return st
}

// Reset удаляет все точки
func (ix *Index) Reset() {
	for i := range ix.shards {
		ix.shards[i].mu.Lock()
	}
	for i := range ix.shards {
		ix.shards[i].cells = make(map[uint64]*bucket)
	}
	ix.size.Store(0)
	ix.cells.Store(0)
	for i := range ix.shards {
		ix.shards[i].mu.Unlock()
	}
}

func (ix *Index) lookup(cellBits uint64) *bucket {
	s := ix.shardFor(cellBits)
	s.mu.RLock()
	b := s.cells[cellBits]
	s.mu.RUnlock()
	return b
}

func (ix *Index) shardFor(cellBits uint64) *shard {
	if ix.shardBits == 0 {
		return &ix.shards[0]
	}
	// Fibonacci hashing spreads neighboring cells across shards.
	h := cellBits * 0x9E3779B97F4A7C15
	return &ix.shards[h>>(64-ix.shardBits)]
}

func (b *bucket) append(p Point) {
	b.mu.Lock()
	b.points = append(b.points, p)
	b.mu.Unlock()
}
