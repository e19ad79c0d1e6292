package postgres_test

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/venue-finder/internal/domain"
	"github.com/venue-finder/internal/domain/repository"
	"github.com/venue-finder/internal/repository/postgres/testhelpers"
)

// VenueRepositoryTestSuite тестирует чтение таблицы venues
type VenueRepositoryTestSuite struct {
	suite.Suite
	testDB *testhelpers.TestDB
	repo   repository.VenueSource
	ctx    context.Context
}

var fixtureVenues = []domain.Venue{
	{Name: "Paris", Lat: 48.8566, Lon: 2.3522},
	{Name: "Lyon", Lat: 45.7640, Lon: 4.8357},
	{Name: "Berlin", Lat: 52.5200, Lon: 13.4050},
}

func (s *VenueRepositoryTestSuite) SetupSuite() {
	s.ctx = context.Background()
	s.testDB = testhelpers.SetupTestDB(s.T())

	err := testhelpers.ApplyMigrations(s.testDB.DB.DB, "../../../migrations")
	s.Require().NoError(err, "Failed to apply migrations")

	s.repo = testhelpers.NewVenueRepositoryForTest(s.testDB.DB, s.testDB.Logger)
}

func (s *VenueRepositoryTestSuite) SetupTest() {
	s.Require().NoError(s.testDB.Cleanup(s.ctx))
	s.Require().NoError(testhelpers.InsertVenues(s.ctx, s.testDB.DB, fixtureVenues))
}

func (s *VenueRepositoryTestSuite) TearDownSuite() {
	if s.testDB != nil {
		s.testDB.Close()
	}
}

func (s *VenueRepositoryTestSuite) TestStream_AllRowsInOrder() {
	var got []domain.Venue
	err := s.repo.Stream(s.ctx, func(v domain.Venue) error {
		got = append(got, v)
		return nil
	})

	s.Require().NoError(err)
	s.Equal(fixtureVenues, got)
}

func (s *VenueRepositoryTestSuite) TestStream_CallbackErrorStops() {
	stop := stderrors.New("stop")
	calls := 0

	err := s.repo.Stream(s.ctx, func(domain.Venue) error {
		calls++
		return stop
	})

	s.ErrorIs(err, stop)
	s.Equal(1, calls)
}

func (s *VenueRepositoryTestSuite) TestStream_Empty() {
	s.Require().NoError(s.testDB.Cleanup(s.ctx))

	calls := 0
	err := s.repo.Stream(s.ctx, func(domain.Venue) error {
		calls++
		return nil
	})

	s.NoError(err)
	s.Zero(calls)
}

func TestVenueRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(VenueRepositoryTestSuite))
}
