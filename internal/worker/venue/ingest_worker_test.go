package venue_test

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/venue-finder/internal/domain"
	"github.com/venue-finder/internal/geoindex"
	"github.com/venue-finder/internal/usecase"
	"github.com/venue-finder/internal/worker/venue"
)

// MockStreamRepository is a mock of StreamRepository
type MockStreamRepository struct {
	mock.Mock
}

func (m *MockStreamRepository) ConsumeBatch(ctx context.Context, stream, group, consumer string, maxCount int) ([]domain.StreamMessage, error) {
	args := m.Called(ctx, stream, group, consumer, maxCount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StreamMessage), args.Error(1)
}

func (m *MockStreamRepository) AckMessages(ctx context.Context, stream, group string, messageIDs []string) error {
	args := m.Called(ctx, stream, group, messageIDs)
	return args.Error(0)
}

func (m *MockStreamRepository) CreateConsumerGroup(ctx context.Context, stream, group string) error {
	args := m.Called(ctx, stream, group)
	return args.Error(0)
}

func (m *MockStreamRepository) PublishToStream(ctx context.Context, stream string, data interface{}) error {
	args := m.Called(ctx, stream, data)
	return args.Error(0)
}

func addMessage(t *testing.T, id string, event domain.VenueAddEvent) domain.StreamMessage {
	t.Helper()
	data, err := json.Marshal(event)
	require.NoError(t, err)
	return domain.StreamMessage{ID: id, Data: string(data)}
}

func newRegistry() *usecase.VenueRegistry {
	return usecase.NewVenueRegistry(geoindex.New(), nil, zap.NewNop())
}

func TestIngestWorker_Name(t *testing.T) {
	w := venue.NewIngestWorker(&MockStreamRepository{}, newRegistry(), "test-group", 10, zap.NewNop())
	assert.Equal(t, "venue-ingest", w.Name())
	assert.Equal(t, "test-group", w.ConsumerGroup())
}

func TestIngestWorker_ProcessBatch(t *testing.T) {
	ctx := context.Background()
	stream := &MockStreamRepository{}
	registry := newRegistry()
	w := venue.NewIngestWorker(stream, registry, "test-group", 10, zap.NewNop())

	parisID := uuid.New()
	badID := uuid.New()
	messages := []domain.StreamMessage{
		addMessage(t, "1-0", domain.VenueAddEvent{ID: parisID, Name: "Paris", Lat: 48.8566, Lon: 2.3522}),
		addMessage(t, "2-0", domain.VenueAddEvent{ID: badID, Name: "X", Lat: 200, Lon: 10}),
		{ID: "3-0", Data: "{not json"},
	}

	stream.On("ConsumeBatch", ctx, domain.StreamVenueAdd, "test-group", mock.AnythingOfType("string"), 10).
		Return(messages, nil).Once()
	stream.On("PublishToStream", ctx, domain.StreamVenueDone, domain.VenueDoneEvent{ID: parisID, Name: "Paris"}).
		Return(nil).Once()
	stream.On("PublishToStream", ctx, domain.StreamVenueDone, mock.MatchedBy(func(e domain.VenueDoneEvent) bool {
		return e.ID == badID && e.Error != ""
	})).Return(nil).Once()
	stream.On("AckMessages", ctx, domain.StreamVenueAdd, "test-group", []string{"1-0", "2-0", "3-0"}).
		Return(nil).Once()

	processed, err := w.ProcessBatch(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, processed)

	names, err := registry.NearBy(48.8566, 2.3522, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"Paris"}, names)
	assert.Equal(t, 1, registry.Len())

	stream.AssertExpectations(t)
}

func TestIngestWorker_ProcessBatch_Empty(t *testing.T) {
	ctx := context.Background()
	stream := &MockStreamRepository{}
	w := venue.NewIngestWorker(stream, newRegistry(), "test-group", 0, zap.NewNop())

	stream.On("ConsumeBatch", ctx, domain.StreamVenueAdd, "test-group", mock.Anything, 50).
		Return(nil, nil).Once()

	processed, err := w.ProcessBatch(ctx)
	require.NoError(t, err)
	assert.Zero(t, processed)
	stream.AssertNotCalled(t, "AckMessages", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestIngestWorker_ProcessBatch_ConsumeError(t *testing.T) {
	ctx := context.Background()
	stream := &MockStreamRepository{}
	w := venue.NewIngestWorker(stream, newRegistry(), "test-group", 5, zap.NewNop())

	stream.On("ConsumeBatch", ctx, domain.StreamVenueAdd, "test-group", mock.Anything, 5).
		Return(nil, stderrors.New("connection refused")).Once()

	_, err := w.ProcessBatch(ctx)
	assert.Error(t, err)
}

func TestIngestWorker_StartStop(t *testing.T) {
	stream := &MockStreamRepository{}
	w := venue.NewIngestWorker(stream, newRegistry(), "test-group", 10, zap.NewNop())

	stream.On("CreateConsumerGroup", mock.Anything, domain.StreamVenueAdd, "test-group").Return(nil)
	stream.On("ConsumeBatch", mock.Anything, domain.StreamVenueAdd, "test-group", mock.Anything, 10).
		Return(nil, nil)

	done := make(chan error, 1)
	go func() {
		done <- w.Start(context.Background())
	}()

	time.Sleep(50 * time.Millisecond)
	require.NoError(t, w.Stop())

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop")
	}
}

func TestIngestWorker_ContextCancellation(t *testing.T) {
	stream := &MockStreamRepository{}
	w := venue.NewIngestWorker(stream, newRegistry(), "test-group", 10, zap.NewNop())

	stream.On("CreateConsumerGroup", mock.Anything, domain.StreamVenueAdd, "test-group").Return(nil)
	stream.On("ConsumeBatch", mock.Anything, domain.StreamVenueAdd, "test-group", mock.Anything, 10).
		Return(nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- w.Start(ctx)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop")
	}
}

func TestIngestWorker_CreateGroupError(t *testing.T) {
	stream := &MockStreamRepository{}
	w := venue.NewIngestWorker(stream, newRegistry(), "test-group", 10, zap.NewNop())

	stream.On("CreateConsumerGroup", mock.Anything, domain.StreamVenueAdd, "test-group").
		Return(stderrors.New("NOAUTH"))

	assert.Error(t, w.Start(context.Background()))
}
