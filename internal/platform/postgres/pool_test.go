// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/configurable-tables/internal/platform/constants"
)

func TestPoolConfig(t *testing.T) {
	config, err := poolConfig("postgres://u:p@db:5432/tables", Options{
		MaxConns:         8,
		MinConns:         12,
		StatementTimeout: 3 * time.Second,
	})
	require.NoError(t, err)

	assert.Equal(t, int32(8), config.MaxConns)
	assert.Equal(t, int32(8), config.MinConns)
	assert.Equal(t, connectTimeout, config.ConnConfig.ConnectTimeout)
	assert.Equal(t, "3000", config.ConnConfig.RuntimeParams["statement_timeout"])
	assert.Equal(t, constants.AppName, config.ConnConfig.RuntimeParams["application_name"])
}

func TestPoolConfig_KeepsDSNParameters(t *testing.T) {
	config, err := poolConfig("postgres://db/tables?application_name=reports&pool_max_conns=4", Options{})
	require.NoError(t, err)

	assert.Equal(t, int32(4), config.MaxConns)
	assert.Equal(t, "reports", config.ConnConfig.RuntimeParams["application_name"])
	_, hasTimeout := config.ConnConfig.RuntimeParams["statement_timeout"]
	assert.False(t, hasTimeout)
}

func TestPoolConfig_InvalidDSN(t *testing.T) {
	_, err := poolConfig("postgres://db:notaport/tables", Options{})
	assert.Error(t, err)
}
