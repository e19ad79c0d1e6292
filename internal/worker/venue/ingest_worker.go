package venue

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/venue-finder/internal/domain"
	"github.com/venue-finder/internal/domain/repository"
	"github.com/venue-finder/internal/worker"
	"go.uber.org/zap"
)

const (
	maxBatchSize    = 50                     // максимум сообщений за раз
	emptyQueueSleep = 100 * time.Millisecond // пауза если очередь пуста
	errorSleep      = time.Second
)

// VenueAdder - то, во что воркер добавляет точки (VenueRegistry)
type VenueAdder interface {
	Add(name string, lat, lon float64) error
}

// IngestWorker читает stream:venue:add и регистрирует точки в индексе
type IngestWorker struct {
	*worker.BaseWorker
	streamRepo   repository.StreamRepository
	registry     VenueAdder
	consumerName string
	batchSize    int
}

// NewIngestWorker создает новый IngestWorker
func NewIngestWorker(
	streamRepo repository.StreamRepository,
	registry VenueAdder,
	consumerGroup string,
	batchSize int,
	logger *zap.Logger,
) *IngestWorker {
	hostname, _ := os.Hostname()
	consumerName := fmt.Sprintf("%s-%s", hostname, uuid.NewString()[:8])

	if batchSize <= 0 || batchSize > maxBatchSize {
		batchSize = maxBatchSize
	}

	return &IngestWorker{
		BaseWorker:   worker.NewBaseWorker("venue-ingest", consumerGroup, logger),
		streamRepo:   streamRepo,
		registry:     registry,
		consumerName: consumerName,
		batchSize:    batchSize,
	}
}

// Start запускает воркер
func (w *IngestWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting IngestWorker",
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.String("consumer_name", w.consumerName),
		zap.Int("batch_size", w.batchSize))

	if err := w.streamRepo.CreateConsumerGroup(ctx, domain.StreamVenueAdd, w.ConsumerGroup()); err != nil {
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil

		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()

		default:
			processed, err := w.ProcessBatch(ctx)
			if err != nil {
				logger.Error("Failed to process batch", zap.Error(err))
				w.Pause(ctx, errorSleep)
				continue
			}

			if processed == 0 {
				w.Pause(ctx, emptyQueueSleep)
			}
		}
	}
}

// ProcessBatch читает и обрабатывает один batch сообщений.
// Возвращает количество прочитанных сообщений, включая битые.
func (w *IngestWorker) ProcessBatch(ctx context.Context) (int, error) {
	logger := w.Logger()

	messages, err := w.streamRepo.ConsumeBatch(
		ctx,
		domain.StreamVenueAdd,
		w.ConsumerGroup(),
		w.consumerName,
		w.batchSize,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to consume batch: %w", err)
	}
	if len(messages) == 0 {
		return 0, nil
	}

	messageIDs := make([]string, 0, len(messages))
	added, rejected := 0, 0

	for _, msg := range messages {
		// Битое сообщение тоже подтверждаем, чтобы оно не застревало в pending
		messageIDs = append(messageIDs, msg.ID)

		var event domain.VenueAddEvent
		if err := json.Unmarshal([]byte(msg.Data), &event); err != nil {
			logger.Warn("Failed to parse message, skipping",
				zap.String("message_id", msg.ID),
				zap.Error(err))
			continue
		}

		done := domain.VenueDoneEvent{ID: event.ID, Name: event.Name}
		if err := w.registry.Add(event.Name, event.Lat, event.Lon); err != nil {
			done.Error = err.Error()
			rejected++
		} else {
			added++
		}

		if err := w.streamRepo.PublishToStream(ctx, domain.StreamVenueDone, done); err != nil {
			logger.Error("Failed to publish done event",
				zap.String("id", event.ID.String()),
				zap.Error(err))
		}
	}

	if err := w.streamRepo.AckMessages(ctx, domain.StreamVenueAdd, w.ConsumerGroup(), messageIDs); err != nil {
		// сообщения будут переданы повторно
		logger.Error("Failed to ack messages", zap.Error(err))
	}

	logger.Debug("Batch processed",
		zap.Int("messages", len(messages)),
		zap.Int("added", added),
		zap.Int("rejected", rejected))

	return len(messages), nil
}
