// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/configurable-tables/internal/platform/database/schema"
	"github.com/taibuivan/configurable-tables/internal/platform/dberr"
)

// PostgresUserRepository implements [UserRepository] on users.account.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new PostgreSQL implementation of the UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

// FindByLogin retrieves an account by username or email, ignoring soft-deleted rows.
func (repository *PostgresUserRepository) FindByLogin(context context.Context, login string) (*User, error) {
	table := schema.UserAccount
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE (%s = $1 OR %s = $1) AND %s IS NULL
		LIMIT 1`,
		table.ID, table.Username, table.Email, table.Password, table.DisplayName, table.CreatedAt, table.UpdatedAt,
		table.Table,
		table.Username, table.Email, table.DeletedAt,
	)

	user := &User{}
	err := repository.pool.QueryRow(context, query, login).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.DisplayName,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "auth: find user by login")
	}

	return user, nil
}

// Create inserts a new account. Timestamps default to now.
func (repository *PostgresUserRepository) Create(context context.Context, user *User) error {
	table := schema.UserAccount
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		table.Table,
		table.ID, table.Username, table.Email, table.Password, table.DisplayName, table.CreatedAt, table.UpdatedAt,
	)

	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	_, err := repository.pool.Exec(context, query,
		user.ID,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.DisplayName,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "auth: create user")
	}

	return nil
}
