// Package seed generates synthetic venues for bulk loading.
package seed

import (
	"context"
	"math/rand"

	"github.com/venue-finder/internal/domain"
)

const (
	DefaultCount      = 500000
	DefaultNameLength = 7

	letters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// Generator - источник случайных точек, равномерно распределённых в Bounds.
// Не безопасен для одновременного использования из нескольких горутин.
type Generator struct {
	Bounds     domain.BoundingBox
	Count      int
	NameLength int
	Rand       *rand.Rand
}

// NewGenerator создает генератор; seed 0 означает случайное зерно.
func NewGenerator(bounds domain.BoundingBox, count, nameLength int, seed int64) *Generator {
	if seed == 0 {
		seed = rand.Int63()
	}
	return &Generator{
		Bounds:     bounds,
		Count:      count,
		NameLength: nameLength,
		Rand:       rand.New(rand.NewSource(seed)),
	}
}

// Stream вызывает fn для Count случайных точек
func (g *Generator) Stream(ctx context.Context, fn func(domain.Venue) error) error {
	for i := 0; i < g.Count; i++ {
		if err := fn(g.Next()); err != nil {
			return err
		}
	}
	return ctx.Err()
}

// Next возвращает одну случайную точку
func (g *Generator) Next() domain.Venue {
	return domain.Venue{
		Name: g.name(),
		Lat:  g.Bounds.MinLat + g.Rand.Float64()*(g.Bounds.MaxLat-g.Bounds.MinLat),
		Lon:  g.Bounds.MinLon + g.Rand.Float64()*(g.Bounds.MaxLon-g.Bounds.MinLon),
	}
}

func (g *Generator) name() string {
	b := make([]byte, g.NameLength)
	for i := range b {
		b[i] = letters[g.Rand.Intn(len(letters))]
	}
	return string(b)
}
