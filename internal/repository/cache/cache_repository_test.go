package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/innovation-atlas/internal/domain/repository"
	apperrors "github.com/innovation-atlas/internal/pkg/errors"
	"github.com/innovation-atlas/internal/repository/cache"
)

func setupCache(t *testing.T) (*miniredis.Miniredis, repository.CacheRepository) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return mr, cache.NewCacheRepository(cache.NewRedisFromClient(client, zap.NewNop()))
}

func TestCacheRepository_GetSet(t *testing.T) {
	mr, repo := setupCache(t)
	ctx := context.Background()

	val, err := repo.Get(ctx, "dict:types:ru")
	require.NoError(t, err)
	assert.Nil(t, val, "miss returns nil without error")

	require.NoError(t, repo.Set(ctx, "dict:types:ru", []byte(`[{"id":1}]`), time.Minute))

	val, err = repo.Get(ctx, "dict:types:ru")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":1}]`, string(val))

	mr.FastForward(2 * time.Minute)

	assert.False(t, mr.Exists("dict:types:ru"))
}

func TestCacheRepository_DeleteByPrefix(t *testing.T) {
	mr, repo := setupCache(t)
	ctx := context.Background()

	for _, key := range []string{"dict:types:ru", "dict:types:kz", "dict:regions:ru", "session:other"} {
		require.NoError(t, mr.Set(key, "x"))
	}

	deleted, err := repo.DeleteByPrefix(ctx, "dict:")

	require.NoError(t, err)
	assert.Equal(t, int64(3), deleted)
	assert.True(t, mr.Exists("session:other"))
	assert.False(t, mr.Exists("dict:types:ru"))
}

func TestCacheRepository_ErrorsWhenRedisDown(t *testing.T) {
	mr, repo := setupCache(t)
	mr.Close()

	_, err := repo.Get(context.Background(), "dict:types:ru")
	assert.ErrorIs(t, err, apperrors.ErrCacheError)

	err = repo.Set(context.Background(), "dict:types:ru", []byte("x"), time.Minute)
	assert.ErrorIs(t, err, apperrors.ErrCacheError)
}
