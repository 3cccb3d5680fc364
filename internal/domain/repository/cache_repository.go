package repository

import (
	"context"
	"time"
)

// CacheRepository определяет методы для работы с кешем
type CacheRepository interface {
	// Get получает значение из кеша по ключу. nil без ошибки при промахе
	Get(ctx context.Context, key string) ([]byte, error)

	// Set сохраняет значение в кеше с TTL
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// DeleteByPrefix удаляет все ключи с префиксом, возвращает число удалённых
	DeleteByPrefix(ctx context.Context, prefix string) (int64, error)
}
