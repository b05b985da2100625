// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tableconfig

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/configurable-tables/internal/platform/constants"
	"github.com/taibuivan/configurable-tables/internal/platform/ctxutil"
)

// CachedRepository is a Redis read-through cache in front of another [Repository].
//
// Only existing configurations are cached. Every update bumps a per-entry
// version and deletes the cached entry; a fill whose version changed while the
// underlying repository was read is dropped, so a concurrent update can never
// be shadowed by the row it replaced.
type CachedRepository struct {
	next   Repository
	client *redis.Client
	ttl    time.Duration
}

// NewCachedRepository wraps next with a cache whose entries expire after ttl.
func NewCachedRepository(next Repository, client *redis.Client, ttl time.Duration) *CachedRepository {
	return &CachedRepository{next: next, client: client, ttl: ttl}
}

/*
GetOrCreate serves the configuration from Redis when cached.

Description: Cache failures are logged and fall through to the underlying
repository; they never fail the request.

Parameters:
  - context: context.Context
  - seed: *Configuration

Returns:
  - *Configuration: The stored configuration
  - bool: true when the underlying repository created it
  - error: Errors of the underlying repository
*/
func (repository *CachedRepository) GetOrCreate(context context.Context, seed *Configuration) (*Configuration, bool, error) {
	key := cacheKey(seed.UserID, seed.Name)
	logger := ctxutil.GetLogger(context)

	version, err := repository.version(context, key)
	if err != nil {
		logger.Warn("table_configuration_cache_read_failed", "key", key, "error", err)
		return repository.next.GetOrCreate(context, seed)
	}

	raw, err := repository.client.Get(context, key).Bytes()
	switch {
	case err == nil:
		cached := &Configuration{}
		if err := json.Unmarshal(raw, cached); err == nil {
			return cached, false, nil
		}
		logger.Warn("table_configuration_cache_corrupt", "key", key)
	case !errors.Is(err, redis.Nil):
		logger.Warn("table_configuration_cache_read_failed", "key", key, "error", err)
	}

	configuration, created, err := repository.next.GetOrCreate(context, seed)
	if err != nil {
		return nil, false, err
	}

	// Created rows are backfilled by the caller right away.
	if !created {
		repository.store(context, key, version, configuration)
	}

	return configuration, created, nil
}

/*
UpdateFields updates the underlying repository and evicts the cache entry.

Returns:
  - error: Update failures, or a failed eviction (the entry would be stale)
*/
func (repository *CachedRepository) UpdateFields(context context.Context, configuration *Configuration, fields ...string) error {
	if err := repository.next.UpdateFields(context, configuration, fields...); err != nil {
		return err
	}

	key := cacheKey(configuration.UserID, configuration.Name)
	_, err := repository.client.TxPipelined(context, func(pipe redis.Pipeliner) error {
		pipe.Incr(context, versionKey(key))
		if repository.ttl > 0 {
			// Outlives every entry filled under the previous version.
			pipe.Expire(context, versionKey(key), 2*repository.ttl)
		}
		pipe.Del(context, key)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis_table_configuration_evict_failed: %w", err)
	}

	return nil
}

// version reads the eviction counter of key; a missing counter is version 0.
func (repository *CachedRepository) version(context context.Context, key string) (int64, error) {
	version, err := repository.client.Get(context, versionKey(key)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return version, err
}

// store caches configuration unless key was evicted since version was read.
func (repository *CachedRepository) store(context context.Context, key string, version int64, configuration *Configuration) {
	payload, err := json.Marshal(configuration)
	if err != nil {
		return
	}

	err = repository.client.Watch(context, func(tx *redis.Tx) error {
		current, err := tx.Get(context, versionKey(key)).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != version {
			return errStaleFill
		}

		_, err = tx.TxPipelined(context, func(pipe redis.Pipeliner) error {
			pipe.Set(context, key, payload, repository.ttl)
			return nil
		})
		return err
	}, versionKey(key))

	switch {
	case err == nil:
	case errors.Is(err, errStaleFill), errors.Is(err, redis.TxFailedErr):
		ctxutil.GetLogger(context).Debug("table_configuration_cache_fill_skipped", "key", key)
	default:
		ctxutil.GetLogger(context).Warn("table_configuration_cache_write_failed", "key", key, "error", err)
	}
}

var errStaleFill = errors.New("table configuration evicted during fill")

func cacheKey(userID, name string) string {
	return constants.RedisPrefixTableConfiguration + userID + ":" + name
}

func versionKey(key string) string {
	return key + ":version"
}
