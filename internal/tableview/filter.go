// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tableview

import (
	"net/url"
	"reflect"
)

// FilterForm validates filter query parameters.
type FilterForm interface {
	// Fields lists the query parameters the form reads.
	Fields() []string

	// Clean returns the typed filter values. An error discards every filter.
	Clean(values url.Values) (map[string]any, error)
}

// FilterSet turns query parameters into collection filters.
type FilterSet struct {
	Form FilterForm

	// Refine post-processes the kept filters.
	Refine func(filters map[string]any) map[string]any
}

// Filters returns the cleaned, non-blank filter values of query.
// Numbers and booleans are kept even when zero or false.
func (f FilterSet) Filters(query url.Values) map[string]any {
	filters := make(map[string]any)
	if f.Form == nil || len(query) == 0 {
		return filters
	}

	cleaned, err := f.Form.Clean(query)
	if err != nil {
		return filters
	}

	for key, value := range cleaned {
		if !isBlank(value) {
			filters[key] = value
		}
	}

	if f.Refine != nil {
		return f.Refine(filters)
	}
	return filters
}

// Active reports whether query carries any parameter of the filter form.
func (f FilterSet) Active(query url.Values) bool {
	if f.Form == nil {
		return false
	}
	for _, field := range f.Form.Fields() {
		if query.Has(field) {
			return true
		}
	}
	return false
}

func isBlank(value any) bool {
	if value == nil {
		return true
	}

	reflected := reflect.ValueOf(value)
	switch reflected.Kind() {
	case reflect.String, reflect.Slice, reflect.Map, reflect.Array:
		return reflected.Len() == 0
	case reflect.Pointer, reflect.Interface:
		return reflected.IsNil()
	default:
		return false
	}
}
