// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tableconfig

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/configurable-tables/pkg/pointer"
)

// countingRepository counts reads and can act between a read and its return.
type countingRepository struct {
	Repository
	reads     int
	afterRead func()
}

func (repository *countingRepository) GetOrCreate(ctx context.Context, seed *Configuration) (*Configuration, bool, error) {
	repository.reads++
	configuration, created, err := repository.Repository.GetOrCreate(ctx, seed)
	if repository.afterRead != nil {
		repository.afterRead()
	}
	return configuration, created, err
}

func newCached(t *testing.T) (*CachedRepository, *countingRepository, *miniredis.Miniredis) {
	t.Helper()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	next := &countingRepository{Repository: NewMemoryRepository()}
	return NewCachedRepository(next, client, time.Minute), next, server
}

func customerSeed() *Configuration {
	return &Configuration{
		UserID:     "user-1",
		Name:       "customer",
		TableClass: "CustomerTable",
		Columns:    []string{"first_name", "last_name"},
	}
}

func TestCacheKey(t *testing.T) {
	assert.Equal(t, "tables:configuration:user-1:customer", cacheKey("user-1", "customer"))
	assert.Equal(t, "tables:configuration:user-1:customer:version", versionKey(cacheKey("user-1", "customer")))
}

func TestCachedRepository_CreatedRowIsNotCached(t *testing.T) {
	cache, _, server := newCached(t)

	_, created, err := cache.GetOrCreate(context.Background(), customerSeed())
	require.NoError(t, err)
	assert.True(t, created)
	assert.False(t, server.Exists(cacheKey("user-1", "customer")))
}

func TestCachedRepository_ReadThrough(t *testing.T) {
	cache, next, server := newCached(t)
	ctx := context.Background()

	created, _, err := cache.GetOrCreate(ctx, customerSeed())
	require.NoError(t, err)

	stored, isNew, err := cache.GetOrCreate(ctx, customerSeed())
	require.NoError(t, err)
	assert.False(t, isNew)
	assert.True(t, server.Exists(cacheKey("user-1", "customer")))

	cached, isNew, err := cache.GetOrCreate(ctx, customerSeed())
	require.NoError(t, err)
	assert.False(t, isNew)
	assert.Equal(t, created.ID, cached.ID)
	assert.Equal(t, stored.Columns, cached.Columns)
	assert.Equal(t, 2, next.reads)

	assert.Equal(t, time.Minute, server.TTL(cacheKey("user-1", "customer")))
}

func TestCachedRepository_UpdateEvicts(t *testing.T) {
	cache, next, server := newCached(t)
	ctx := context.Background()

	configuration, _, err := cache.GetOrCreate(ctx, customerSeed())
	require.NoError(t, err)
	_, _, err = cache.GetOrCreate(ctx, customerSeed())
	require.NoError(t, err)
	require.True(t, server.Exists(cacheKey("user-1", "customer")))

	configuration.Limit = pointer.To(50)
	require.NoError(t, cache.UpdateFields(ctx, configuration, FieldLimit))
	assert.False(t, server.Exists(cacheKey("user-1", "customer")))

	fresh, _, err := cache.GetOrCreate(ctx, customerSeed())
	require.NoError(t, err)
	assert.Equal(t, 50, *fresh.Limit)
	assert.Equal(t, 3, next.reads)
}

/*
TestCachedRepository_UpdateDuringFill updates the row while a cache miss is
reading it; the row read before the update must not be cached.
*/
func TestCachedRepository_UpdateDuringFill(t *testing.T) {
	cache, next, server := newCached(t)
	ctx := context.Background()

	configuration, _, err := cache.GetOrCreate(ctx, customerSeed())
	require.NoError(t, err)

	next.afterRead = func() {
		next.afterRead = nil
		update := configuration.Clone()
		update.Limit = pointer.To(10)
		require.NoError(t, cache.UpdateFields(ctx, update, FieldLimit))
	}

	stale, _, err := cache.GetOrCreate(ctx, customerSeed())
	require.NoError(t, err)
	assert.Nil(t, stale.Limit)
	assert.False(t, server.Exists(cacheKey("user-1", "customer")))

	fresh, _, err := cache.GetOrCreate(ctx, customerSeed())
	require.NoError(t, err)
	assert.Equal(t, 10, *fresh.Limit)
}

func TestCachedRepository_CorruptEntry(t *testing.T) {
	cache, next, server := newCached(t)
	ctx := context.Background()

	created, _, err := cache.GetOrCreate(ctx, customerSeed())
	require.NoError(t, err)
	require.NoError(t, server.Set(cacheKey("user-1", "customer"), "{not json"))

	configuration, _, err := cache.GetOrCreate(ctx, customerSeed())
	require.NoError(t, err)
	assert.Equal(t, created.ID, configuration.ID)
	assert.Equal(t, 2, next.reads)

	// The entry is replaced by a valid one.
	raw, err := server.Get(cacheKey("user-1", "customer"))
	require.NoError(t, err)
	var cached Configuration
	assert.NoError(t, json.Unmarshal([]byte(raw), &cached))
}

func TestCachedRepository_RedisUnavailable(t *testing.T) {
	cache, next, server := newCached(t)
	ctx := context.Background()

	created, _, err := cache.GetOrCreate(ctx, customerSeed())
	require.NoError(t, err)

	server.Close()

	configuration, isNew, err := cache.GetOrCreate(ctx, customerSeed())
	require.NoError(t, err)
	assert.False(t, isNew)
	assert.Equal(t, created.ID, configuration.ID)
	assert.Equal(t, 2, next.reads)

	configuration.Limit = pointer.To(30)
	assert.Error(t, cache.UpdateFields(ctx, configuration, FieldLimit))
}
