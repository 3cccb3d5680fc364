package worker

import (
	"context"
)

// Worker - фоновый процесс под управлением WorkerManager
type Worker interface {
	// Start блокируется до остановки воркера или отмены ctx
	Start(ctx context.Context) error

	Stop() error

	Name() string
}
