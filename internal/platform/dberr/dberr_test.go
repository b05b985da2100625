// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dberr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/configurable-tables/internal/platform/apperr"
	"github.com/taibuivan/configurable-tables/internal/platform/dberr"
)

/*
TestWrap classifies storage errors into application errors.
*/
func TestWrap(t *testing.T) {
	assert.NoError(t, dberr.Wrap(nil, "noop"))

	notFound := dberr.Wrap(fmt.Errorf("scan: %w", pgx.ErrNoRows), "get_configuration")
	assert.Equal(t, dberr.ErrNotFound, notFound)

	conflict := apperr.As(dberr.Wrap(&pgconn.PgError{Code: "23505"}, "insert_configuration"))
	require.NotNil(t, conflict)
	assert.Equal(t, http.StatusConflict, conflict.HTTPStatus)
	assert.True(t, dberr.IsUniqueViolation(conflict))

	internal := apperr.As(dberr.Wrap(errors.New("boom"), "update_configuration"))
	require.NotNil(t, internal)
	assert.Equal(t, http.StatusInternalServerError, internal.HTTPStatus)
	assert.ErrorContains(t, internal.Cause, "update_configuration")
}
