// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tableconfig_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/configurable-tables/internal/platform/apperr"
	"github.com/taibuivan/configurable-tables/internal/tableconfig"
	"github.com/taibuivan/configurable-tables/pkg/pointer"
)

func seed() *tableconfig.Configuration {
	return &tableconfig.Configuration{
		UserID:     "user-1",
		Name:       "customer",
		TableClass: "CustomerTable",
		Columns:    []string{"first_name", "last_name"},
	}
}

func TestMemoryRepository_GetOrCreate(t *testing.T) {
	repository := tableconfig.NewMemoryRepository()
	ctx := context.Background()

	created, isNew, err := repository.GetOrCreate(ctx, seed())
	require.NoError(t, err)
	assert.True(t, isNew)
	assert.True(t, created.IsPersisted())

	again, isNew, err := repository.GetOrCreate(ctx, seed())
	require.NoError(t, err)
	assert.False(t, isNew)
	assert.Equal(t, created.ID, again.ID)
	assert.Equal(t, 1, repository.Len())
}

func TestMemoryRepository_ConcurrentFirstAccess(t *testing.T) {
	repository := tableconfig.NewMemoryRepository()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		ids     = make(map[string]bool)
		creates int
	)

	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			configuration, isNew, err := repository.GetOrCreate(context.Background(), seed())
			assert.NoError(t, err)

			mu.Lock()
			defer mu.Unlock()
			ids[configuration.ID] = true
			if isNew {
				creates++
			}
		}()
	}
	wg.Wait()

	assert.Len(t, ids, 1)
	assert.Equal(t, 1, creates)
}

func TestMemoryRepository_UpdateFields(t *testing.T) {
	repository := tableconfig.NewMemoryRepository()
	ctx := context.Background()

	configuration, _, err := repository.GetOrCreate(ctx, seed())
	require.NoError(t, err)

	configuration.Limit = pointer.To(50)
	configuration.Columns = []string{"email_address"}

	// Only the limit is written.
	require.NoError(t, repository.UpdateFields(ctx, configuration, tableconfig.FieldLimit))

	stored, ok := repository.Find("user-1", "customer")
	require.True(t, ok)
	assert.Equal(t, 50, *stored.Limit)
	assert.Equal(t, []string{"first_name", "last_name"}, stored.Columns)
	assert.Equal(t, 1, repository.Updates())

	t.Run("unknown_field", func(t *testing.T) {
		assert.Error(t, repository.UpdateFields(ctx, configuration, "name"))
	})

	t.Run("not_persisted", func(t *testing.T) {
		err := repository.UpdateFields(ctx, &tableconfig.Configuration{UserID: "nobody"}, tableconfig.FieldLimit)
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "NOT_FOUND", ae.Code)
	})
}
