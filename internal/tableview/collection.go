// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tableview

import (
	"cmp"
	"context"
	"fmt"
	"net/http"
	"reflect"
	"slices"
	"strings"
	"time"

	"github.com/taibuivan/configurable-tables/internal/table"
)

// Collection is an immutable, lazily evaluated record source.
type Collection interface {
	Filter(filters map[string]any) Collection
	OrderBy(field string, descending bool) Collection
	Count(ctx context.Context) (int, error)
	Slice(ctx context.Context, offset, limit int) ([]any, error)
}

// Source returns the base collection of a request.
type Source func(request *http.Request) Collection

// # In-Memory Collection

// Matcher reports whether record satisfies filters.
type Matcher func(record any, filters map[string]any) bool

// SliceCollection is a [Collection] over records held in memory.
type SliceCollection struct {
	records []any
	match   Matcher
}

// NewSliceCollection wraps records. The default matcher requires every
// filter to equal the record field of the same name.
func NewSliceCollection(records []any) *SliceCollection {
	return &SliceCollection{records: records, match: matchFields}
}

// WithMatcher replaces the filter predicate.
func (c *SliceCollection) WithMatcher(match Matcher) *SliceCollection {
	return &SliceCollection{records: c.records, match: match}
}

func (c *SliceCollection) Filter(filters map[string]any) Collection {
	var kept []any
	for _, record := range c.records {
		if c.match(record, filters) {
			kept = append(kept, record)
		}
	}
	return &SliceCollection{records: kept, match: c.match}
}

// OrderBy sorts a copy by field. Records lacking the field come first.
func (c *SliceCollection) OrderBy(field string, descending bool) Collection {
	sorted := slices.Clone(c.records)
	slices.SortStableFunc(sorted, func(a, b any) int {
		left, leftOK := table.Extract(a, field)
		right, rightOK := table.Extract(b, field)

		var result int
		switch {
		case !leftOK && !rightOK:
			result = 0
		case !leftOK:
			result = -1
		case !rightOK:
			result = 1
		default:
			result = compareValues(left, right)
		}

		if descending {
			return -result
		}
		return result
	})
	return &SliceCollection{records: sorted, match: c.match}
}

func (c *SliceCollection) Count(_ context.Context) (int, error) {
	return len(c.records), nil
}

func (c *SliceCollection) Slice(_ context.Context, offset, limit int) ([]any, error) {
	if offset >= len(c.records) {
		return []any{}, nil
	}
	end := min(offset+limit, len(c.records))
	return slices.Clone(c.records[offset:end]), nil
}

func matchFields(record any, filters map[string]any) bool {
	for field, expected := range filters {
		actual, ok := table.Extract(record, field)
		if !ok || fmt.Sprint(indirect(actual)) != fmt.Sprint(indirect(expected)) {
			return false
		}
	}
	return true
}

func indirect(value any) any {
	reflected := reflect.ValueOf(value)
	for reflected.Kind() == reflect.Pointer {
		if reflected.IsNil() {
			return nil
		}
		reflected = reflected.Elem()
	}
	if !reflected.IsValid() {
		return nil
	}
	return reflected.Interface()
}

func compareValues(a, b any) int {
	a, b = indirect(a), indirect(b)
	if a == nil || b == nil {
		switch {
		case a == nil && b == nil:
			return 0
		case a == nil:
			return -1
		default:
			return 1
		}
	}

	if left, ok := a.(time.Time); ok {
		if right, ok := b.(time.Time); ok {
			return left.Compare(right)
		}
	}

	left, right := reflect.ValueOf(a), reflect.ValueOf(b)
	switch {
	case left.CanInt() && right.CanInt():
		return cmp.Compare(left.Int(), right.Int())
	case left.CanUint() && right.CanUint():
		return cmp.Compare(left.Uint(), right.Uint())
	case left.CanFloat() && right.CanFloat():
		return cmp.Compare(left.Float(), right.Float())
	case left.Kind() == reflect.Bool && right.Kind() == reflect.Bool:
		return cmp.Compare(boolRank(left.Bool()), boolRank(right.Bool()))
	}

	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

func boolRank(value bool) int {
	if value {
		return 1
	}
	return 0
}
