// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tableview_test

import (
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/configurable-tables/internal/tableview"
)

// stubForm returns a fixed cleaned map.
type stubForm struct {
	cleaned map[string]any
	err     error
}

func (s stubForm) Fields() []string { return []string{"q", "is_active", "age"} }

func (s stubForm) Clean(url.Values) (map[string]any, error) { return s.cleaned, s.err }

func TestFilterSet_Filters(t *testing.T) {
	form := stubForm{cleaned: map[string]any{
		"q":         "",
		"is_active": false,
		"age":       0,
		"tags":      []string{},
		"owner":     (*string)(nil),
		"name":      "ada",
	}}

	t.Run("keeps_numbers_and_booleans", func(t *testing.T) {
		filters := tableview.FilterSet{Form: form}.Filters(url.Values{"q": {""}})
		assert.Equal(t, map[string]any{"is_active": false, "age": 0, "name": "ada"}, filters)
	})

	t.Run("no_query", func(t *testing.T) {
		assert.Empty(t, tableview.FilterSet{Form: form}.Filters(url.Values{}))
	})

	t.Run("no_form", func(t *testing.T) {
		assert.Empty(t, tableview.FilterSet{}.Filters(url.Values{"q": {"a"}}))
	})

	t.Run("invalid_form", func(t *testing.T) {
		invalid := stubForm{err: errors.New("bad")}
		assert.Empty(t, tableview.FilterSet{Form: invalid}.Filters(url.Values{"q": {"a"}}))
	})

	t.Run("refine", func(t *testing.T) {
		set := tableview.FilterSet{Form: form, Refine: func(filters map[string]any) map[string]any {
			delete(filters, "age")
			return filters
		}}
		assert.NotContains(t, set.Filters(url.Values{"q": {""}}), "age")
	})
}

func TestFilterSet_Active(t *testing.T) {
	set := tableview.FilterSet{Form: stubForm{}}

	assert.True(t, set.Active(url.Values{"q": {""}}))
	assert.False(t, set.Active(url.Values{"page": {"2"}}))
	assert.False(t, tableview.FilterSet{}.Active(url.Values{"q": {"a"}}))
}
