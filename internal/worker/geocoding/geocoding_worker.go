package geocoding

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/innovation-atlas/internal/domain"
	"github.com/innovation-atlas/internal/domain/repository"
	"github.com/innovation-atlas/internal/usecase"
	"github.com/innovation-atlas/internal/worker"
)

const (
	maxBatchSize = 20
	readBlock    = 2 * time.Second
	errorBackoff = time.Second
	// сообщение без ack дольше этого срока забирается повторно
	claimMinIdle = time.Minute
)

// ObjectGeocoder - часть GeocodingUseCase, нужная воркеру
type ObjectGeocoder interface {
	GeocodeObject(ctx context.Context, id int64) (usecase.GeocodeOutcome, error)
	MarkFailed(ctx context.Context, id int64) error
}

// GeocodingWorker читает stream:objects:geocode и определяет координаты объектов
type GeocodingWorker struct {
	*worker.BaseWorker
	streamRepo    repository.StreamRepository
	geocoder      ObjectGeocoder
	consumerGroup string
	consumerName  string
	maxRetries    int
	claimMinIdle  time.Duration
	now           func() time.Time
}

func NewGeocodingWorker(
	streamRepo repository.StreamRepository,
	geocoder ObjectGeocoder,
	consumerGroup string,
	maxRetries int,
	logger *zap.Logger,
) *GeocodingWorker {
	hostname, _ := os.Hostname()
	if maxRetries <= 0 {
		maxRetries = 1
	}

	return &GeocodingWorker{
		BaseWorker:    worker.NewBaseWorker("object-geocoding", logger),
		streamRepo:    streamRepo,
		geocoder:      geocoder,
		consumerGroup: consumerGroup,
		consumerName:  fmt.Sprintf("%s-%s", hostname, uuid.NewString()[:8]),
		maxRetries:    maxRetries,
		claimMinIdle:  claimMinIdle,
		now:           time.Now,
	}
}

func (w *GeocodingWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting geocoding worker",
		zap.String("consumer_group", w.consumerGroup),
		zap.String("consumer_name", w.consumerName),
		zap.Int("max_retries", w.maxRetries),
	)

	if err := w.streamRepo.CreateConsumerGroup(ctx, domain.StreamObjectGeocode, w.consumerGroup); err != nil {
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	for {
		select {
		case <-w.StopChan():
			return nil
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if _, err := w.processBatch(ctx); err != nil {
			logger.Error("Failed to process batch", zap.Error(err))
			if !w.Wait(ctx, errorBackoff) {
				return nil
			}
		}
	}
}

// processBatch обрабатывает до maxBatchSize сообщений и возвращает их число.
// Зависшие в pending сообщения обрабатываются раньше новых.
func (w *GeocodingWorker) processBatch(ctx context.Context) (int, error) {
	messages, err := w.streamRepo.ClaimStale(
		ctx,
		domain.StreamObjectGeocode,
		w.consumerGroup,
		w.consumerName,
		w.claimMinIdle,
		maxBatchSize,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to claim pending messages: %w", err)
	}
	if len(messages) > 0 {
		return w.handleAll(ctx, messages), nil
	}

	messages, err = w.streamRepo.ConsumeBatch(
		ctx,
		domain.StreamObjectGeocode,
		w.consumerGroup,
		w.consumerName,
		maxBatchSize,
		readBlock,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to consume batch: %w", err)
	}
	if len(messages) == 0 {
		return 0, nil
	}

	return w.handleAll(ctx, messages), nil
}

// handleAll подтверждает только успешно обработанные сообщения,
// остальные остаются в pending до ClaimStale
func (w *GeocodingWorker) handleAll(ctx context.Context, messages []domain.StreamMessage) int {
	ack := make([]string, 0, len(messages))
	for _, msg := range messages {
		if w.handle(ctx, msg) {
			ack = append(ack, msg.ID)
		}
	}

	if err := w.streamRepo.AckMessages(ctx, domain.StreamObjectGeocode, w.consumerGroup, ack...); err != nil {
		w.Logger().Error("Failed to ack messages", zap.Error(err))
	}

	return len(messages)
}

// handle возвращает true, если сообщение можно подтвердить
func (w *GeocodingWorker) handle(ctx context.Context, msg domain.StreamMessage) bool {
	logger := w.Logger().With(zap.String("message_id", msg.ID))

	var event domain.GeocodeRequestedEvent
	if err := json.Unmarshal([]byte(msg.Data), &event); err != nil || event.ObjectID <= 0 {
		logger.Warn("Skipping malformed geocode request", zap.String("data", msg.Data), zap.Error(err))
		return true
	}
	logger = logger.With(zap.Int64("object_id", event.ObjectID), zap.Int("attempt", event.Attempt))

	outcome, err := w.geocoder.GeocodeObject(ctx, event.ObjectID)
	if err == nil {
		logger.Info("Object geocoded", zap.String("outcome", string(outcome)))
		return true
	}

	if event.Exhausted(w.maxRetries) {
		logger.Warn("Geocoding attempts exhausted", zap.Error(err))
		if err := w.geocoder.MarkFailed(ctx, event.ObjectID); err != nil {
			logger.Error("Failed to mark object as FAILED", zap.Error(err))
			return false
		}
		return true
	}

	logger.Warn("Geocoding failed, retrying", zap.Error(err))
	if err := w.streamRepo.PublishToStream(ctx, domain.StreamObjectGeocode, event.Retry(w.now().UTC())); err != nil {
		logger.Error("Failed to requeue geocode request", zap.Error(err))
		return false
	}
	return true
}
