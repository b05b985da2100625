// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tableview

import (
	"strings"

	"github.com/taibuivan/configurable-tables/internal/table"
)

// ParseSortToken splits "-name" into ("name", true).
func ParseSortToken(token string) (string, bool) {
	token = strings.TrimSpace(token)
	if field, ok := strings.CutPrefix(token, "-"); ok {
		return field, true
	}
	return token, false
}

/*
ApplyOrdering orders collection by token when it names a sortable column.

The token names a column ("first_name", "-first_name"); the collection is
ordered by that column's sort key. Anything else (unknown or unsortable
columns) leaves the collection unchanged.
*/
func ApplyOrdering(definition *table.Definition, collection Collection, token string) Collection {
	field, descending := ParseSortToken(token)
	if field == "" {
		return collection
	}

	if column, ok := definition.Lookup(field); ok && column.Sortable {
		return collection.OrderBy(column.SortKey(), descending)
	}

	return collection
}

// ApplyStoredOrdering orders collection by a token that [Resolver.SortOrder]
// translated from a stored configuration. Besides sortable column names it
// accepts the sort key of a sortable column.
func ApplyStoredOrdering(definition *table.Definition, collection Collection, token string) Collection {
	field, descending := ParseSortToken(token)
	if field == "" {
		return collection
	}

	if column, ok := definition.Lookup(field); ok && column.Sortable {
		return collection.OrderBy(column.SortKey(), descending)
	}

	for _, column := range definition.SortableColumns() {
		if column.SortKey() == field {
			return collection.OrderBy(field, descending)
		}
	}

	return collection
}
