// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tableconfig

import (
	"context"
)

// # Repository Interface

// Repository defines the persistence contract of table configurations.
type Repository interface {

	// GetOrCreate returns the configuration of (seed.UserID, seed.Name), creating
	// it from seed when none exists. The boolean reports a creation.
	// Concurrent first calls for the same key return the same row.
	GetOrCreate(context context.Context, seed *Configuration) (*Configuration, bool, error)

	// UpdateFields persists only the named fields of configuration
	// ([FieldColumns], [FieldOrderBy], [FieldLimit]).
	UpdateFields(context context.Context, configuration *Configuration, fields ...string) error
}
