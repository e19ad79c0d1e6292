package testhelpers

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/venue-finder/internal/domain"
)

// InsertVenues вставляет точки в таблицу venues в заданном порядке
func InsertVenues(ctx context.Context, db *sqlx.DB, venues []domain.Venue) error {
	for _, v := range venues {
		_, err := db.NamedExecContext(ctx,
			`INSERT INTO venues (name, lat, lon) VALUES (:name, :lat, :lon)`, v)
		if err != nil {
			return fmt.Errorf("insert venue %q: %w", v.Name, err)
		}
	}
	return nil
}
