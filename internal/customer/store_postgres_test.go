// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package customer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/configurable-tables/pkg/pointer"
)

func TestPostgresCollection_Where(t *testing.T) {
	base := NewPostgresCollection(nil)

	where, args := base.where()
	assert.Empty(t, where)
	assert.Empty(t, args)

	filtered := base.Filter(map[string]any{
		FilterQuery:    "50%_off",
		FilterIsActive: pointer.To(false),
	}).Filter(map[string]any{FilterStatus: "active"}).(*PostgresCollection)

	where, args = filtered.where()
	assert.Equal(t,
		" WHERE (firstname ILIKE $1 OR lastname ILIKE $1 OR emailaddress ILIKE $1) AND isactive = $2 AND status = $3",
		where)
	assert.Equal(t, []any{`%50\%\_off%`, false, "active"}, args)

	// The base collection is untouched.
	where, _ = base.where()
	assert.Empty(t, where)
}

func TestPostgresCollection_OrderBy(t *testing.T) {
	base := NewPostgresCollection(nil)

	ordered := base.OrderBy("last_name", true).(*PostgresCollection)
	assert.Equal(t, "last_name", ordered.order)
	assert.True(t, ordered.descending)
	assert.Empty(t, base.order)

	assert.Same(t, ordered, ordered.OrderBy("password", false), "unknown fields are ignored")
}
