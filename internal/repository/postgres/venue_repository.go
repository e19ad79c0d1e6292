package postgres

import (
	"context"
	"fmt"

	"github.com/venue-finder/internal/domain"
	"github.com/venue-finder/internal/domain/repository"
	"go.uber.org/zap"
)

const selectVenuesQuery = `SELECT name, lat, lon FROM venues ORDER BY id`

type venueRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewVenueRepository создает источник точек поверх таблицы venues
func NewVenueRepository(db *DB) repository.VenueSource {
	return &venueRepository{
		db:     db,
		logger: db.logger,
	}
}

// Stream построчно читает таблицу venues, не загружая её в память целиком
func (r *venueRepository) Stream(ctx context.Context, fn func(domain.Venue) error) error {
	rows, err := r.db.QueryxContext(ctx, selectVenuesQuery)
	if err != nil {
		r.logger.Error("failed to query venues", zap.Error(err))
		return fmt.Errorf("query venues: %w", err)
	}
	defer rows.Close()

	count := 0
	for rows.Next() {
		var v domain.Venue
		if err := rows.StructScan(&v); err != nil {
			return fmt.Errorf("scan venue: %w", err)
		}
		if err := fn(v); err != nil {
			return err
		}
		count++
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate venues: %w", err)
	}

	r.logger.Debug("venues streamed", zap.Int("count", count))
	return nil
}
