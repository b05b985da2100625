// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package customer_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/configurable-tables/internal/customer"
	"github.com/taibuivan/configurable-tables/internal/platform/render"
	"github.com/taibuivan/configurable-tables/internal/table"
	"github.com/taibuivan/configurable-tables/internal/tableconfig"
	"github.com/taibuivan/configurable-tables/internal/tableview"
	"github.com/taibuivan/configurable-tables/pkg/pointer"
)

func customers() []any {
	created := time.Now().Add(-3 * time.Hour)
	return []any{
		&customer.Customer{ID: 1, FirstName: "Bea", LastName: "Brown", Email: "bea@example.com", Status: customer.StatusSuspended, CreatedAt: created},
		&customer.Customer{ID: 2, FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", Status: customer.StatusActive, IsActive: true, CreatedAt: created},
		&customer.Customer{ID: 3, FirstName: "Cy", LastName: "Young", Email: "cy@example.com", Status: customer.StatusArchived, CreatedAt: created},
	}
}

func TestCustomerTable_Columns(t *testing.T) {
	var names []string
	for _, column := range customer.CustomerTable.Columns() {
		names = append(names, column.Name)
	}

	assert.Equal(t, []string{"created_at", "first_name", "last_name", "full_name", "email_address", "status", "is_active"}, names)

	_, ok := customer.CustomerTable.Lookup("id")
	assert.False(t, ok, "id is removed from the base table")

	fullName, ok := customer.CustomerTable.Lookup("full_name")
	require.True(t, ok)
	assert.Equal(t, "Full name", fullName.Label)
	assert.Equal(t, "last_name", fullName.SortKey())

	assert.Equal(t, "tables/customer", customer.CustomerTable.TemplateDirectory())
	assert.Equal(t, "customer", tableview.TableIdentity(customer.CustomerTable))
}

func TestCustomerTable_Values(t *testing.T) {
	record := customers()[1]

	tests := []struct {
		column string
		want   any
	}{
		{"full_name", "Ada Lovelace"},
		{"status", "Active"},
		{"email_address", "ada@example.com"},
		{"is_active", true},
	}

	for _, tt := range tests {
		t.Run(tt.column, func(t *testing.T) {
			column, ok := customer.CustomerTable.Lookup(tt.column)
			require.True(t, ok)

			value, ok := column.Extract(record)
			require.True(t, ok)
			assert.Equal(t, tt.want, value)
		})
	}

	column, _ := customer.CustomerTable.Lookup("full_name")
	_, ok := column.Extract(struct{}{})
	assert.False(t, ok)
}

func TestRegister(t *testing.T) {
	registry := table.NewRegistry()
	require.NoError(t, customer.Register(registry))

	definition, ok := registry.ForModel("customer")
	require.True(t, ok)
	assert.Same(t, customer.CustomerTable, definition)

	assert.Error(t, customer.Register(registry))
}

func TestFilterForm_Clean(t *testing.T) {
	form := customer.FilterForm{}

	t.Run("typed values", func(t *testing.T) {
		cleaned, err := form.Clean(url.Values{"q": {"  ada "}, "is_active": {"true"}, "status": {"active"}})
		require.NoError(t, err)
		assert.Equal(t, "ada", cleaned[customer.FilterQuery])
		assert.Equal(t, pointer.To(true), cleaned[customer.FilterIsActive])
		assert.Equal(t, "active", cleaned[customer.FilterStatus])
	})

	t.Run("malformed boolean is unset", func(t *testing.T) {
		cleaned, err := form.Clean(url.Values{"is_active": {"maybe"}})
		require.NoError(t, err)
		assert.Nil(t, cleaned[customer.FilterIsActive])
	})

	t.Run("unknown status", func(t *testing.T) {
		_, err := form.Clean(url.Values{"status": {"deleted"}})
		assert.Error(t, err)
	})
}

func TestMatch(t *testing.T) {
	records := customers()

	tests := []struct {
		name    string
		filters map[string]any
		want    []string
	}{
		{"no filters", map[string]any{}, []string{"Bea", "Ada", "Cy"}},
		{"search is case insensitive", map[string]any{"q": "LOVE"}, []string{"Ada"}},
		{"search covers email", map[string]any{"q": "cy@"}, []string{"Cy"}},
		{"inactive", map[string]any{"is_active": pointer.To(false)}, []string{"Bea", "Cy"}},
		{"status", map[string]any{"status": "archived"}, []string{"Cy"}},
		{"combined", map[string]any{"q": "b", "is_active": pointer.To(true)}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, record := range records {
				if customer.Match(record, tt.filters) {
					got = append(got, record.(*customer.Customer).FirstName)
				}
			}
			assert.Equal(t, tt.want, got)
		})
	}

	assert.False(t, customer.Match("not a customer", nil))
}

/*
TestCustomerView renders the customer table end to end with the embedded
templates and the in-memory collection.
*/
func TestCustomerView(t *testing.T) {
	renderer, err := render.New("")
	require.NoError(t, err)

	source := func(*http.Request) tableview.Collection {
		return tableview.NewSliceCollection(customers()).WithMatcher(customer.Match)
	}
	view := tableview.NewView(customer.CustomerTable, source, tableconfig.NewMemoryRepository(), renderer,
		tableview.Settings{Title: "Customers", Filters: customer.Filters()})

	recorder := httptest.NewRecorder()
	view.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/tables/customer?q=ada", nil))
	require.Equal(t, http.StatusOK, recorder.Code)

	body := recorder.Body.String()
	assert.Contains(t, body, "<strong>Ada Lovelace</strong>")
	assert.Contains(t, body, "<small>ada@example.com</small>")
	assert.Contains(t, body, `name="is_active"`)
	assert.NotContains(t, body, "Brown")
}
