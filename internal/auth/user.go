// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth identifies the owners of table configurations.

Accounts live in users.account. A successful login issues an RS256 access
token (see [sec.TokenService]) both in the JSON body and in the access token
cookie, so browsers rendering HTML tables are identified by
[middleware.Authenticate] without further client work.
*/
package auth

import (
	"context"
	"time"
)

// User is a registered account.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	DisplayName  string    `json:"display_name"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UserRepository defines the data access contract for user accounts.
type UserRepository interface {
	// FindByLogin returns the active account whose username or email equals login.
	//
	// Returns [dberr.ErrNotFound] if no account matches.
	FindByLogin(context context.Context, login string) (*User, error)

	// Create persists a new account.
	//
	// Returns an [apperr.AppError] with code CONFLICT if the username or email is taken.
	Create(context context.Context, user *User) error
}
