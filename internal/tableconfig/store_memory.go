// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tableconfig

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/taibuivan/configurable-tables/internal/platform/dberr"
	"github.com/taibuivan/configurable-tables/pkg/uuidv7"
)

type memoryKey struct {
	userID string
	name   string
}

// MemoryRepository implements [Repository] in process memory.
type MemoryRepository struct {
	mu      sync.Mutex
	rows    map[memoryKey]*Configuration
	updates int
}

// NewMemoryRepository returns an empty repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{rows: make(map[memoryKey]*Configuration)}
}

func (repository *MemoryRepository) GetOrCreate(_ context.Context, seed *Configuration) (*Configuration, bool, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	key := memoryKey{seed.UserID, seed.Name}
	if existing, ok := repository.rows[key]; ok {
		return existing.Clone(), false, nil
	}

	now := time.Now()
	created := seed.Clone()
	created.ID = uuidv7.New()
	created.CreatedAt = now
	created.UpdatedAt = now

	repository.rows[key] = created
	return created.Clone(), true, nil
}

func (repository *MemoryRepository) UpdateFields(_ context.Context, configuration *Configuration, fields ...string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	stored, ok := repository.rows[memoryKey{configuration.UserID, configuration.Name}]
	if !ok || stored.ID != configuration.ID {
		return dberr.ErrNotFound
	}

	for _, field := range fields {
		switch field {
		case FieldColumns:
			stored.Columns = append([]string(nil), configuration.Columns...)
		case FieldOrderBy:
			stored.OrderBy = configuration.Clone().OrderBy
		case FieldLimit:
			stored.Limit = configuration.Clone().Limit
		default:
			return fmt.Errorf("tableconfig: unknown field %q", field)
		}
	}

	stored.UpdatedAt = time.Now()
	configuration.UpdatedAt = stored.UpdatedAt
	if len(fields) > 0 {
		repository.updates++
	}

	return nil
}

// Find returns a copy of the stored configuration of (userID, name).
func (repository *MemoryRepository) Find(userID, name string) (*Configuration, bool) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	stored, ok := repository.rows[memoryKey{userID, name}]
	if !ok {
		return nil, false
	}
	return stored.Clone(), true
}

// Len returns the number of stored configurations.
func (repository *MemoryRepository) Len() int {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	return len(repository.rows)
}

// Updates returns the number of non-empty UpdateFields calls.
func (repository *MemoryRepository) Updates() int {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	return repository.updates
}
