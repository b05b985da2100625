// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package tableconfig persists per-user table configurations.

A configuration remembers, for one user and one table identity, which columns
are visible, the default sort token and the page size. Rows are created lazily
on the first visit of a table and updated field by field afterwards; they are
never deleted by the application.

Storage:
  - PostgresRepository: system of record (tables.configuration).
  - CachedRepository: Redis read-through cache in front of any repository.
  - MemoryRepository: process-local, used by tests and local tooling.
*/
package tableconfig

import (
	"slices"
	"time"

	"github.com/taibuivan/configurable-tables/pkg/pointer"
)

// # Updatable Fields

const (
	FieldColumns = "columns"
	FieldOrderBy = "order_by"
	FieldLimit   = "limit"
)

// # Domain Entity

// Configuration is the stored display preference of one user for one table.
type Configuration struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	Name       string    `json:"name"`
	TableClass string    `json:"table_class"`
	Columns    []string  `json:"columns"`
	OrderBy    *string   `json:"order_by"`
	Limit      *int      `json:"limit"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// IsPersisted reports whether the configuration has a stored row.
// Configurations built for anonymous requesters never do.
func (c *Configuration) IsPersisted() bool {
	return c.ID != ""
}

// Clone returns a deep copy.
func (c *Configuration) Clone() *Configuration {
	clone := *c
	clone.Columns = slices.Clone(c.Columns)
	if c.OrderBy != nil {
		clone.OrderBy = pointer.To(*c.OrderBy)
	}
	if c.Limit != nil {
		clone.Limit = pointer.To(*c.Limit)
	}
	return &clone
}

// Update carries validated values submitted through the configuration form.
type Update struct {
	Columns []string
	OrderBy *string
	Limit   *int
}

// Apply writes every value of update onto the configuration and returns the
// names of the fields whose value changed.
func (c *Configuration) Apply(update Update) []string {
	var changed []string

	if !slices.Equal(c.Columns, update.Columns) {
		changed = append(changed, FieldColumns)
	}
	c.Columns = slices.Clone(update.Columns)

	if !pointer.Equal(c.OrderBy, update.OrderBy) {
		changed = append(changed, FieldOrderBy)
	}
	c.OrderBy = update.OrderBy

	if !pointer.Equal(c.Limit, update.Limit) {
		changed = append(changed, FieldLimit)
	}
	c.Limit = update.Limit

	return changed
}
