// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/taibuivan/configurable-tables/internal/platform/apperr"
	"github.com/taibuivan/configurable-tables/internal/platform/constants"
	"github.com/taibuivan/configurable-tables/internal/platform/dberr"
	"github.com/taibuivan/configurable-tables/internal/platform/sec"
	"github.com/taibuivan/configurable-tables/pkg/uuidv7"
)

// TokenProvider defines the contract for generating access tokens.
type TokenProvider interface {
	GenerateAccessToken(userID, username, role string, timeToLive time.Duration) (string, error)
}

// Service implements account registration and login.
type Service struct {
	userRepository UserRepository
	tokenProvider  TokenProvider
	passwords      *sec.PasswordHasher
}

// NewService constructs a new [Service].
func NewService(userRepository UserRepository, tokenProvider TokenProvider, passwords *sec.PasswordHasher) *Service {
	return &Service{userRepository: userRepository, tokenProvider: tokenProvider, passwords: passwords}
}

// RegisterInput holds the data required to create an account.
type RegisterInput struct {
	Username    string
	Email       string
	Password    string
	DisplayName string
}

/*
Register hashes the password and persists a new account.

Returns:
  - *User: The stored account
  - error: apperr.Conflict when the username or email is taken
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*User, error) {
	hashedPassword, err := service.passwords.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	displayName := strings.TrimSpace(input.DisplayName)
	if displayName == "" {
		displayName = input.Username
	}

	user := &User{
		ID:           uuidv7.New(),
		Username:     input.Username,
		Email:        strings.ToLower(input.Email),
		PasswordHash: hashedPassword,
		DisplayName:  displayName,
	}

	if err := service.userRepository.Create(context, user); err != nil {
		if ae := apperr.As(err); ae != nil && ae.Code == "CONFLICT" {
			return nil, apperr.Conflict("Username or email is already registered")
		}
		return nil, err
	}

	return user, nil
}

// LoginSession is the result of a successful login.
type LoginSession struct {
	AccessToken string
	ExpiresAt   time.Time
	User        *User
}

/*
Login verifies credentials and issues an access token.

Parameters:
  - context: context.Context
  - login: Username or email
  - password: Plain-text password

Returns:
  - *LoginSession: The token and its expiry
  - error: apperr.Unauthorized for unknown accounts and wrong passwords alike
*/
func (service *Service) Login(context context.Context, login, password string) (*LoginSession, error) {
	user, err := service.userRepository.FindByLogin(context, strings.TrimSpace(login))
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return nil, apperr.Unauthorized("Invalid login credentials")
		}
		return nil, err
	}

	if !service.passwords.Check(password, user.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	accessToken, err := service.tokenProvider.GenerateAccessToken(user.ID, user.Username, constants.DefaultUserRole, constants.AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	return &LoginSession{
		AccessToken: accessToken,
		ExpiresAt:   time.Now().Add(constants.AccessTokenTTL),
		User:        user,
	}, nil
}
