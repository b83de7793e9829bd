package selection

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/address-search/internal/domain"
	"github.com/address-search/internal/domain/repository"
	"github.com/address-search/internal/pkg/metrics"
	"github.com/address-search/internal/worker"
	"go.uber.org/zap"
)

const (
	defaultBatchSize = 20
	errorBackoff     = time.Second
)

// HandleFunc обрабатывает одно событие выбора. Ошибка оставляет сообщение в pending.
type HandleFunc func(ctx context.Context, event *domain.SelectionEvent) error

// SelectionWorker читает stream:location:selected и передает события обработчику
type SelectionWorker struct {
	*worker.BaseWorker
	streamRepo repository.StreamRepository
	batchSize  int
	handle     HandleFunc
}

// NewSelectionWorker создает воркер; handle == nil только логирует события
func NewSelectionWorker(
	streamRepo repository.StreamRepository,
	stream string,
	consumerGroup string,
	batchSize int,
	handle HandleFunc,
	logger *zap.Logger,
) *SelectionWorker {
	if stream == "" {
		stream = domain.StreamLocationSelected
	}
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}

	w := &SelectionWorker{
		BaseWorker: worker.NewBaseWorker("location-selection", stream, consumerGroup, logger),
		streamRepo: streamRepo,
		batchSize:  batchSize,
		handle:     handle,
	}
	if w.handle == nil {
		w.handle = w.logEvent
	}
	return w
}

// Start запускает воркер
func (w *SelectionWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting SelectionWorker",
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.Int("batch_size", w.batchSize))

	if err := w.streamRepo.CreateConsumerGroup(ctx, w.Stream(), w.ConsumerGroup()); err != nil {
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	for {
		select {
		case <-w.Stopping():
			logger.Info("Worker stopped")
			return nil
		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()
		default:
		}

		if _, err := w.ProcessBatch(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			logger.Error("Failed to process batch", zap.Error(err))
			w.sleep(ctx, errorBackoff)
		}
	}
}

// ProcessBatch читает и обрабатывает одну пачку сообщений.
// ConsumeBatch сам ждет новых сообщений, поэтому пустая пачка не требует паузы.
func (w *SelectionWorker) ProcessBatch(ctx context.Context) (int, error) {
	logger := w.Logger()

	messages, err := w.streamRepo.ConsumeBatch(ctx, w.Stream(), w.ConsumerGroup(), w.ConsumerName(), w.batchSize)
	if err != nil {
		return 0, fmt.Errorf("failed to consume batch: %w", err)
	}
	if len(messages) == 0 {
		return 0, nil
	}

	ack := make([]string, 0, len(messages))
	for _, msg := range messages {
		var event domain.SelectionEvent
		if err := json.Unmarshal([]byte(msg.Data), &event); err != nil {
			// битое сообщение подтверждаем, чтобы не застревало в группе
			logger.Warn("Failed to parse selection event, skipping",
				zap.String("message_id", msg.ID),
				zap.Error(err))
			metrics.ConsumedEventsTotal.WithLabelValues("malformed").Inc()
			ack = append(ack, msg.ID)
			continue
		}

		if err := w.handle(ctx, &event); err != nil {
			logger.Error("Failed to handle selection event",
				zap.String("message_id", msg.ID),
				zap.String("event_id", event.EventID.String()),
				zap.Error(err))
			metrics.ConsumedEventsTotal.WithLabelValues("failed").Inc()
			continue
		}

		metrics.ConsumedEventsTotal.WithLabelValues("processed").Inc()
		ack = append(ack, msg.ID)
	}

	if err := w.streamRepo.AckMessages(ctx, w.Stream(), w.ConsumerGroup(), ack); err != nil {
		// не критично: сообщения будут переобработаны
		logger.Error("Failed to ack messages", zap.Error(err))
	}

	logger.Debug("Batch processed",
		zap.Int("received", len(messages)),
		zap.Int("acked", len(ack)))

	return len(messages), nil
}

func (w *SelectionWorker) logEvent(_ context.Context, event *domain.SelectionEvent) error {
	fields := []zap.Field{
		zap.String("event_id", event.EventID.String()),
		zap.String("session_id", event.SessionID),
		zap.String("kind", event.Kind()),
		zap.Time("occurred_at", event.OccurredAt),
	}
	if event.Candidate != nil {
		fields = append(fields,
			zap.String("candidate_id", event.Candidate.ID),
			zap.String("label", event.Candidate.Label),
			zap.String("category", event.Candidate.Category),
			zap.String("lat", event.Candidate.Coordinates.Lat),
			zap.String("lon", event.Candidate.Coordinates.Lon))
	}
	w.Logger().Info("Location selection received", fields...)
	return nil
}

func (w *SelectionWorker) sleep(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-ctx.Done():
	case <-w.Stopping():
	}
}
