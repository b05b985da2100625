// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package customer

import (
	"context"
	"fmt"
	"maps"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/configurable-tables/internal/platform/database/schema"
	"github.com/taibuivan/configurable-tables/internal/platform/dberr"
	"github.com/taibuivan/configurable-tables/internal/tableview"
)

// sortColumns whitelists the fields a collection may be ordered by.
var sortColumns = map[string]string{
	"id":         schema.DemoCustomer.ID,
	"first_name": schema.DemoCustomer.FirstName,
	"last_name":  schema.DemoCustomer.LastName,
	"status":     schema.DemoCustomer.Status,
	"is_active":  schema.DemoCustomer.IsActive,
	"created_at": schema.DemoCustomer.CreatedAt,
}

// PostgresCollection is a [tableview.Collection] over demo.customer.
//
// Every method returns a new collection; the query runs on Count and Slice.
type PostgresCollection struct {
	pool       *pgxpool.Pool
	filters    map[string]any
	order      string
	descending bool
}

// NewPostgresCollection returns the unfiltered, unordered collection.
func NewPostgresCollection(pool *pgxpool.Pool) *PostgresCollection {
	return &PostgresCollection{pool: pool, filters: map[string]any{}}
}

// Source adapts pool into the per-request source of a table view.
func Source(pool *pgxpool.Pool) tableview.Source {
	return func(*http.Request) tableview.Collection {
		return NewPostgresCollection(pool)
	}
}

// Filter adds filters. Unknown keys are ignored.
func (c *PostgresCollection) Filter(filters map[string]any) tableview.Collection {
	next := c.clone()
	maps.Copy(next.filters, filters)
	return next
}

// OrderBy replaces the ordering. Fields outside the whitelist leave the
// collection unchanged.
func (c *PostgresCollection) OrderBy(field string, descending bool) tableview.Collection {
	if _, ok := sortColumns[field]; !ok {
		return c
	}
	next := c.clone()
	next.order, next.descending = field, descending
	return next
}

// Count returns the number of matching customers.
func (c *PostgresCollection) Count(context context.Context) (int, error) {
	where, args := c.where()
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s%s`, schema.DemoCustomer.Table, where)

	var total int
	if err := c.pool.QueryRow(context, query, args...).Scan(&total); err != nil {
		return 0, dberr.Wrap(err, "customer: count")
	}
	return total, nil
}

// Slice returns at most limit customers starting at offset, as *Customer records.
func (c *PostgresCollection) Slice(context context.Context, offset, limit int) ([]any, error) {
	table := schema.DemoCustomer
	where, args := c.where()

	var queryBuilder strings.Builder
	queryBuilder.WriteString(fmt.Sprintf(`SELECT %s, %s, %s, %s, %s, %s, %s FROM %s%s`,
		table.ID, table.FirstName, table.LastName, table.EmailAddress, table.Status, table.IsActive, table.CreatedAt,
		table.Table, where,
	))

	// Apply Sorting (id keeps pages stable between requests)
	if column, ok := sortColumns[c.order]; ok {
		direction := "ASC"
		if c.descending {
			direction = "DESC"
		}
		queryBuilder.WriteString(fmt.Sprintf(" ORDER BY %s %s, %s", column, direction, table.ID))
	} else {
		queryBuilder.WriteString(" ORDER BY " + table.ID)
	}

	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2))
	args = append(args, limit, offset)

	rows, err := c.pool.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, dberr.Wrap(err, "customer: list")
	}
	defer rows.Close()

	records := make([]any, 0, limit)
	for rows.Next() {
		customer := &Customer{}
		if err := rows.Scan(
			&customer.ID,
			&customer.FirstName,
			&customer.LastName,
			&customer.Email,
			&customer.Status,
			&customer.IsActive,
			&customer.CreatedAt,
		); err != nil {
			return nil, dberr.Wrap(err, "customer: scan")
		}
		records = append(records, customer)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "customer: iterate")
	}

	return records, nil
}

// where builds the WHERE clause of the current filters.
func (c *PostgresCollection) where() (string, []any) {
	table := schema.DemoCustomer
	var conditions []string
	var args []any

	// Search Query Filtering
	if query, ok := c.filters[FilterQuery].(string); ok && query != "" {
		args = append(args, "%"+escapeLike(query)+"%")
		conditions = append(conditions, fmt.Sprintf("(%s ILIKE $%d OR %s ILIKE $%d OR %s ILIKE $%d)",
			table.FirstName, len(args), table.LastName, len(args), table.EmailAddress, len(args)))
	}

	// Activity Filtering
	if active, ok := c.filters[FilterIsActive].(*bool); ok && active != nil {
		args = append(args, *active)
		conditions = append(conditions, fmt.Sprintf("%s = $%d", table.IsActive, len(args)))
	}

	// Status Filtering
	if status, ok := c.filters[FilterStatus].(string); ok && status != "" {
		args = append(args, status)
		conditions = append(conditions, fmt.Sprintf("%s = $%d", table.Status, len(args)))
	}

	if len(conditions) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

func (c *PostgresCollection) clone() *PostgresCollection {
	return &PostgresCollection{
		pool:       c.pool,
		filters:    maps.Clone(c.filters),
		order:      c.order,
		descending: c.descending,
	}
}

func escapeLike(value string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(value)
}
