package cleanup

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/innovation-atlas/internal/worker"
)

// SessionPurger удаляет истёкшие сессии и возвращает их число
type SessionPurger interface {
	PurgeExpiredSessions(ctx context.Context) (int64, error)
}

// SessionCleanupWorker периодически чистит таблицу сессий
type SessionCleanupWorker struct {
	*worker.BaseWorker
	purger   SessionPurger
	interval time.Duration
}

func NewSessionCleanupWorker(purger SessionPurger, interval time.Duration, logger *zap.Logger) *SessionCleanupWorker {
	if interval <= 0 {
		interval = time.Hour
	}
	return &SessionCleanupWorker{
		BaseWorker: worker.NewBaseWorker("session-cleanup", logger),
		purger:     purger,
		interval:   interval,
	}
}

// Start чистит сессии сразу и затем раз в interval
func (w *SessionCleanupWorker) Start(ctx context.Context) error {
	w.Logger().Info("Starting session cleanup worker", zap.Duration("interval", w.interval))

	for {
		w.purge(ctx)
		if !w.Wait(ctx, w.interval) {
			return nil
		}
	}
}

func (w *SessionCleanupWorker) purge(ctx context.Context) {
	deleted, err := w.purger.PurgeExpiredSessions(ctx)
	if err != nil {
		w.Logger().Error("Failed to purge expired sessions", zap.Error(err))
		return
	}
	if deleted > 0 {
		w.Logger().Info("Expired sessions purged", zap.Int64("deleted", deleted))
	}
}
