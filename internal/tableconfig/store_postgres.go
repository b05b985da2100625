// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tableconfig

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/configurable-tables/internal/platform/database/schema"
	"github.com/taibuivan/configurable-tables/internal/platform/dberr"
	"github.com/taibuivan/configurable-tables/pkg/uuidv7"
)

// PostgresRepository implements [Repository] on tables.configuration.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new Postgres implementation.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// columnOf maps updatable fields to their SQL column.
var columnOf = map[string]string{
	FieldColumns: schema.TablesConfiguration.Columns,
	FieldOrderBy: schema.TablesConfiguration.OrderBy,
	FieldLimit:   schema.TablesConfiguration.Limit,
}

/*
GetOrCreate fetches the configuration of (userid, name) or inserts seed.

Description: The insert relies on the (userid, name) unique constraint with
ON CONFLICT DO NOTHING; when it returns no row another writer won the race
(or the row already existed) and the stored row is selected instead.

Parameters:
  - context: context.Context
  - seed: *Configuration (UserID, Name, TableClass, Columns)

Returns:
  - *Configuration: The stored configuration
  - bool: true when this call inserted it
  - error: Database failures
*/
func (repository *PostgresRepository) GetOrCreate(context context.Context, seed *Configuration) (*Configuration, bool, error) {
	table := schema.TablesConfiguration
	columns := strings.Join(table.All(), ", ")

	insert := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (%s, %s) DO NOTHING
		RETURNING %s`,
		table.Table,
		table.ID, table.UserID, table.Name, table.TableClass, table.Columns, table.OrderBy, table.Limit,
		table.UserID, table.Name,
		columns,
	)

	columnsValue := seed.Columns
	if columnsValue == nil {
		columnsValue = []string{}
	}

	created, err := scan(repository.pool.QueryRow(context, insert,
		uuidv7.New(), seed.UserID, seed.Name, seed.TableClass, columnsValue, seed.OrderBy, seed.Limit,
	))
	if err == nil {
		return created, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, dberr.Wrap(err, "tableconfig: insert configuration")
	}

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s = $2`,
		columns, table.Table, table.UserID, table.Name)

	existing, err := scan(repository.pool.QueryRow(context, query, seed.UserID, seed.Name))
	if err != nil {
		return nil, false, dberr.Wrap(err, "tableconfig: select configuration")
	}

	return existing, false, nil
}

/*
UpdateFields writes the named fields and refreshes updatedat.

Parameters:
  - context: context.Context
  - configuration: *Configuration (must be persisted)
  - fields: Field names ([FieldColumns], [FieldOrderBy], [FieldLimit])

Returns:
  - error: dberr.ErrNotFound, unknown field names or database failures
*/
func (repository *PostgresRepository) UpdateFields(context context.Context, configuration *Configuration, fields ...string) error {
	if len(fields) == 0 {
		return nil
	}

	table := schema.TablesConfiguration
	assignments := make([]string, 0, len(fields)+1)
	args := []any{configuration.ID}

	for _, field := range fields {
		column, ok := columnOf[field]
		if !ok {
			return fmt.Errorf("tableconfig: unknown field %q", field)
		}

		args = append(args, valueOf(configuration, field))
		assignments = append(assignments, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	assignments = append(assignments, table.UpdatedAt+" = NOW()")

	query := fmt.Sprintf(`UPDATE %s SET %s WHERE %s = $1 RETURNING %s`,
		table.Table, strings.Join(assignments, ", "), table.ID, table.UpdatedAt)

	if err := repository.pool.QueryRow(context, query, args...).Scan(&configuration.UpdatedAt); err != nil {
		return dberr.Wrap(err, "tableconfig: update configuration")
	}

	return nil
}

func valueOf(configuration *Configuration, field string) any {
	switch field {
	case FieldColumns:
		if configuration.Columns == nil {
			return []string{}
		}
		return configuration.Columns
	case FieldOrderBy:
		return configuration.OrderBy
	default:
		return configuration.Limit
	}
}

// scan hydrates a configuration in [schema.TablesConfigurationTable.All] order.
func scan(row pgx.Row) (*Configuration, error) {
	configuration := &Configuration{}
	err := row.Scan(
		&configuration.ID,
		&configuration.UserID,
		&configuration.Name,
		&configuration.TableClass,
		&configuration.Columns,
		&configuration.OrderBy,
		&configuration.Limit,
		&configuration.CreatedAt,
		&configuration.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return configuration, nil
}
