// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api_test

import (
	"errors"
	"html"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/configurable-tables/internal/api"
	"github.com/taibuivan/configurable-tables/internal/auth"
	"github.com/taibuivan/configurable-tables/internal/customer"
	"github.com/taibuivan/configurable-tables/internal/platform/config"
	"github.com/taibuivan/configurable-tables/internal/platform/constants"
	"github.com/taibuivan/configurable-tables/internal/platform/render"
	"github.com/taibuivan/configurable-tables/internal/platform/sec"
	"github.com/taibuivan/configurable-tables/internal/table"
	"github.com/taibuivan/configurable-tables/internal/tableconfig"
	"github.com/taibuivan/configurable-tables/internal/tableview"
)

// verifier accepts any token and uses it as the user id.
type verifier struct{}

func (verifier) VerifyToken(token string) (*sec.AuthClaims, error) {
	if token == "" || token == "invalid" {
		return nil, errors.New("invalid token")
	}
	return &sec.AuthClaims{UserID: token, Username: token}, nil
}

var csrfField = regexp.MustCompile(`name="csrf_token" value="([^"]+)"`)

func newServer(t *testing.T) (*api.Server, *tableconfig.MemoryRepository) {
	t.Helper()

	renderer, err := render.New("")
	require.NoError(t, err)

	store := tableconfig.NewMemoryRepository()
	source := func(*http.Request) tableview.Collection {
		return tableview.NewSliceCollection([]any{
			&customer.Customer{ID: 1, FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", Status: customer.StatusActive},
		}).WithMatcher(customer.Match)
	}

	registry := table.NewRegistry()
	require.NoError(t, customer.Register(registry))

	view := tableview.NewView(customer.CustomerTable, source, store, renderer, tableview.Settings{Filters: customer.Filters()})
	directory, err := tableview.NewDirectory(view)
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error { return nil },
		CheckCache:    func() error { return errors.New("redis down") },
	}, logger)

	cfg := &config.Config{ServerPort: "0", Environment: "test"}
	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      auth.NewHandler(auth.NewService(nil, nil, nil), false),
		Tables:    directory,
		Catalog:   tableview.CatalogHandler(registry, api.TablesPrefix),
	}

	return api.NewServer(t.Context(), cfg, logger, verifier{}, handlers), store
}

func serve(server *api.Server, request *http.Request) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	server.Handler().ServeHTTP(recorder, request)
	return recorder
}

func TestServer_Health(t *testing.T) {
	server, _ := newServer(t)

	recorder := serve(server, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.NotEmpty(t, recorder.Header().Get(constants.HeaderXRequestID))

	recorder = serve(server, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"degraded"`)
}

func TestServer_Catalog(t *testing.T) {
	server, _ := newServer(t)

	recorder := serve(server, httptest.NewRequest(http.MethodGet, "/api/v1/tables", nil))
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"url":"/tables/customer"`)
}

func TestServer_TableJSON(t *testing.T) {
	server, _ := newServer(t)

	recorder := serve(server, httptest.NewRequest(http.MethodGet, "/api/v1/tables/customer", nil))
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"full_name":"Ada Lovelace"`)

	recorder = serve(server, httptest.NewRequest(http.MethodGet, "/api/v1/tables/orders", nil))
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

/*
TestServer_ConfigurationRoundTrip renders the form for a signed in user, then
posts it back with the CSRF token and cookie.
*/
func TestServer_ConfigurationRoundTrip(t *testing.T) {
	server, store := newServer(t)
	session := &http.Cookie{Name: constants.AccessTokenCookieName, Value: "user-1"}

	request := httptest.NewRequest(http.MethodGet, "/tables/customer", nil)
	request.AddCookie(session)
	recorder := serve(server, request)
	require.Equal(t, http.StatusOK, recorder.Code)

	match := csrfField.FindStringSubmatch(recorder.Body.String())
	require.Len(t, match, 2)
	token := html.UnescapeString(match[1])

	var csrfCookie *http.Cookie
	for _, cookie := range recorder.Result().Cookies() {
		if cookie.Name == "csrf_token" {
			csrfCookie = cookie
		}
	}
	require.NotNil(t, csrfCookie)

	form := url.Values{
		"csrf_token": {token},
		"name":       {"customer"},
		"columns":    {"full_name", "is_active"},
		"order_by":   {"-created_at"},
		"limit":      {"50"},
	}
	request = httptest.NewRequest(http.MethodPost, "/tables/customer", strings.NewReader(form.Encode()))
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	request.AddCookie(session)
	request.AddCookie(csrfCookie)

	recorder = serve(server, request)
	require.Equal(t, http.StatusFound, recorder.Code)

	stored, ok := store.Find("user-1", "customer")
	require.True(t, ok)
	assert.Equal(t, []string{"full_name", "is_active"}, stored.Columns)
	assert.Equal(t, "-created_at", *stored.OrderBy)
	assert.Equal(t, 50, *stored.Limit)
}

func TestServer_ConfigurationRequiresCSRF(t *testing.T) {
	server, store := newServer(t)

	form := url.Values{"name": {"customer"}, "columns": {"full_name"}, "order_by": {"last_name"}, "limit": {"10"}}
	request := httptest.NewRequest(http.MethodPost, "/tables/customer", strings.NewReader(form.Encode()))
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	request.AddCookie(&http.Cookie{Name: constants.AccessTokenCookieName, Value: "user-1"})

	recorder := serve(server, request)
	assert.Equal(t, http.StatusForbidden, recorder.Code)
	assert.Equal(t, 0, store.Len())
}
