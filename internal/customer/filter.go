// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package customer

import (
	"net/url"
	"strings"

	"github.com/taibuivan/configurable-tables/internal/platform/validate"
	"github.com/taibuivan/configurable-tables/internal/tableview"
	"github.com/taibuivan/configurable-tables/pkg/convert"
	"github.com/taibuivan/configurable-tables/pkg/slice"
)

// Filter parameters of the customer list.
const (
	FilterQuery    = "q"
	FilterIsActive = "is_active"
	FilterStatus   = "status"
)

// maxQueryLength bounds the free text search.
const maxQueryLength = 128

// FilterForm cleans the customer list filters.
type FilterForm struct{}

// Fields implements [tableview.FilterForm].
func (FilterForm) Fields() []string {
	return []string{FilterQuery, FilterIsActive, FilterStatus}
}

/*
Clean implements [tableview.FilterForm].

Returns:
  - "q": trimmed search text
  - "is_active": *bool, nil when absent or not a boolean
  - "status": one of [Statuses]
  - error: an unknown status or an oversized search text
*/
func (FilterForm) Clean(values url.Values) (map[string]any, error) {
	query := strings.TrimSpace(values.Get(FilterQuery))
	status := strings.TrimSpace(values.Get(FilterStatus))

	v := &validate.Validator{}
	v.MaxLen(FilterQuery, query, maxQueryLength)
	if status != "" {
		v.OneOf(FilterStatus, status, slice.Map(Statuses, func(s Status) string { return string(s) })...)
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	return map[string]any{
		FilterQuery:    query,
		FilterIsActive: convert.ToBoolP(values.Get(FilterIsActive)),
		FilterStatus:   status,
	}, nil
}

// Filters is the filter set of the customer table view.
func Filters() tableview.FilterSet {
	return tableview.FilterSet{Form: FilterForm{}}
}

// Match applies cleaned filters to an in-memory *Customer, mirroring
// [PostgresCollection] so both sources page through the same rows.
func Match(record any, filters map[string]any) bool {
	customer, ok := record.(*Customer)
	if !ok || customer == nil {
		return false
	}

	if query, ok := filters[FilterQuery].(string); ok && query != "" {
		needle := strings.ToLower(query)
		haystack := strings.ToLower(customer.FirstName + "\n" + customer.LastName + "\n" + customer.Email)
		if !strings.Contains(haystack, needle) {
			return false
		}
	}

	if active, ok := filters[FilterIsActive].(*bool); ok && active != nil && customer.IsActive != *active {
		return false
	}

	if status, ok := filters[FilterStatus].(string); ok && status != "" && string(customer.Status) != status {
		return false
	}

	return true
}
