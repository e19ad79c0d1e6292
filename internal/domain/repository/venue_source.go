package repository

import (
	"context"

	"github.com/venue-finder/internal/domain"
)

// VenueSource - источник точек для массовой загрузки.
// Stream вызывает fn для каждой точки; ошибка fn прерывает обход и возвращается вызывающему.
type VenueSource interface {
	Stream(ctx context.Context, fn func(domain.Venue) error) error
}
