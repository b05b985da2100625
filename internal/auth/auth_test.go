// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/taibuivan/configurable-tables/internal/auth"
	"github.com/taibuivan/configurable-tables/internal/platform/apperr"
	"github.com/taibuivan/configurable-tables/internal/platform/constants"
	"github.com/taibuivan/configurable-tables/internal/platform/dberr"
	"github.com/taibuivan/configurable-tables/internal/platform/sec"
)

// # Fakes

type memoryUsers struct {
	mu    sync.Mutex
	users []*auth.User
}

func (m *memoryUsers) FindByLogin(_ context.Context, login string) (*auth.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, user := range m.users {
		if user.Username == login || user.Email == login {
			return user, nil
		}
	}
	return nil, dberr.ErrNotFound
}

func (m *memoryUsers) Create(_ context.Context, user *auth.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Username == user.Username || existing.Email == user.Email {
			return apperr.Conflict("Resource already exists")
		}
	}
	m.users = append(m.users, user)
	return nil
}

type fakeTokens struct {
	issued []string
}

func (f *fakeTokens) GenerateAccessToken(userID, _, _ string, _ time.Duration) (string, error) {
	f.issued = append(f.issued, userID)
	return "token-" + userID, nil
}

func newService(t *testing.T) (*auth.Service, *fakeTokens) {
	t.Helper()
	tokens := &fakeTokens{}
	hasher, err := sec.NewPasswordHasher(bcrypt.MinCost)
	require.NoError(t, err)
	service := auth.NewService(&memoryUsers{}, tokens, hasher)

	_, err = service.Register(t.Context(), auth.RegisterInput{
		Username: "ada",
		Email:    "Ada@Example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	return service, tokens
}

// # Service

func TestService_Register(t *testing.T) {
	service, _ := newService(t)

	user, err := service.Register(t.Context(), auth.RegisterInput{Username: "bea", Email: "bea@example.com", Password: "password1"})
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "bea", user.DisplayName)
	assert.NotEqual(t, "password1", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("password1")))

	_, err = service.Register(t.Context(), auth.RegisterInput{Username: "ada", Email: "other@example.com", Password: "password1"})
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, http.StatusConflict, ae.HTTPStatus)
}

func TestService_Login(t *testing.T) {
	tests := []struct {
		name     string
		login    string
		password string
		wantErr  bool
	}{
		{"username", "ada", "correct-horse", false},
		{"lower cased email", "ada@example.com", "correct-horse", false},
		{"wrong password", "ada", "battery-staple", true},
		{"unknown account", "cy", "correct-horse", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, tokens := newService(t)

			session, err := service.Login(t.Context(), tt.login, tt.password)
			if tt.wantErr {
				ae := apperr.As(err)
				require.NotNil(t, ae)
				assert.Equal(t, http.StatusUnauthorized, ae.HTTPStatus)
				assert.Empty(t, tokens.issued)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "token-"+session.User.ID, session.AccessToken)
			assert.WithinDuration(t, time.Now().Add(constants.AccessTokenTTL), session.ExpiresAt, time.Minute)
		})
	}
}

// # HTTP

func TestHandler_Login(t *testing.T) {
	service, _ := newService(t)
	router := auth.NewHandler(service, true).Routes()

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"login":"ada","password":"correct-horse"}`))
	router.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"access_token":"token-`)

	cookies := recorder.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, constants.AccessTokenCookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	assert.True(t, cookies[0].Secure)
}

func TestHandler_LoginRejected(t *testing.T) {
	service, _ := newService(t)
	router := auth.NewHandler(service, false).Routes()

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"malformed json", `{`, http.StatusBadRequest},
		{"missing password", `{"login":"ada"}`, http.StatusBadRequest},
		{"bad credentials", `{"login":"ada","password":"nope"}`, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(tt.body)))

			assert.Equal(t, tt.status, recorder.Code)
			assert.Empty(t, recorder.Result().Cookies())
		})
	}
}

func TestHandler_Register(t *testing.T) {
	service, _ := newService(t)
	router := auth.NewHandler(service, false).Routes()

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/register",
		strings.NewReader(`{"username":"cy","email":"not-an-email","password":"short"}`)))

	require.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"field":"email"`)
	assert.Contains(t, recorder.Body.String(), `"field":"password"`)

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/register",
		strings.NewReader(`{"username":"cy","email":"cy@example.com","password":"long-enough"}`)))
	assert.Equal(t, http.StatusCreated, recorder.Code)
}

func TestHandler_Logout(t *testing.T) {
	service, _ := newService(t)
	router := auth.NewHandler(service, false).Routes()

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/logout", nil))

	assert.Equal(t, http.StatusNoContent, recorder.Code)
	cookies := recorder.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, -1, cookies[0].MaxAge)
}
