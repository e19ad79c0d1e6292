package testhelpers

import (
	"github.com/jmoiron/sqlx"
	"github.com/venue-finder/internal/domain/repository"
	"github.com/venue-finder/internal/repository/postgres"
	"go.uber.org/zap"
)

// NewDBForTest creates a postgres.DB with test database and logger
func NewDBForTest(db *sqlx.DB, logger *zap.Logger) *postgres.DB {
	return postgres.NewDBForTest(db, logger)
}

// NewVenueRepositoryForTest creates a venue source with test database and logger
func NewVenueRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.VenueSource {
	return postgres.NewVenueRepository(NewDBForTest(db, logger))
}
