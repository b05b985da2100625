// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tableview

import (
	"net/url"
	"strconv"

	"github.com/taibuivan/configurable-tables/internal/platform/apperr"
	"github.com/taibuivan/configurable-tables/internal/platform/validate"
	"github.com/taibuivan/configurable-tables/internal/table"
	"github.com/taibuivan/configurable-tables/internal/tableconfig"
	"github.com/taibuivan/configurable-tables/pkg/convert"
	"github.com/taibuivan/configurable-tables/pkg/pointer"
	"github.com/taibuivan/configurable-tables/pkg/slice"
)

// LimitChoices are the page sizes offered by the configuration form.
var LimitChoices = []int{10, 20, 30, 40, 50, 100}

// Form field names.
const (
	FieldName    = "name"
	FieldColumns = "columns"
	FieldOrderBy = "order_by"
	FieldLimit   = "limit"
)

// Choice is one option of a form field.
type Choice struct {
	Value    string
	Label    string
	Selected bool
}

// ConfigurationForm edits a table configuration.
type ConfigurationForm struct {
	// Name is the table identity, submitted back as a hidden field.
	Name string

	// Columns offers every column that is not always visible.
	Columns []Choice

	// OrderBy offers each sortable column ascending and descending.
	OrderBy []Choice

	Limit []Choice

	Errors []apperr.FieldError
}

// NewConfigurationForm builds the form of definition, pre-populated from configuration.
func NewConfigurationForm(definition *table.Definition, name string, configuration *tableconfig.Configuration) *ConfigurationForm {
	selected := make(map[string]bool, len(configuration.Columns))
	for _, column := range configuration.Columns {
		selected[column] = true
	}
	orderBy := pointer.Fallback(configuration.OrderBy, "")
	limit := pointer.Fallback(configuration.Limit, 0)

	form := &ConfigurationForm{Name: name}

	for _, column := range definition.Columns() {
		if column.AlwaysVisible {
			continue
		}
		form.Columns = append(form.Columns, Choice{
			Value:    column.Name,
			Label:    column.Label,
			Selected: selected[column.Name],
		})
	}

	for _, column := range definition.SortableColumns() {
		form.OrderBy = append(form.OrderBy,
			Choice{Value: column.Name, Label: column.Label + " ↧", Selected: orderBy == column.Name},
			Choice{Value: "-" + column.Name, Label: column.Label + " ↥", Selected: orderBy == "-"+column.Name},
		)
	}

	for _, choice := range LimitChoices {
		value := strconv.Itoa(choice)
		form.Limit = append(form.Limit, Choice{Value: value, Label: value, Selected: limit == choice})
	}

	return form
}

/*
Bind validates a submission.

Parameters:
  - values: The url-encoded form body

Returns:
  - tableconfig.Update: The validated values
  - error: apperr.ValidationError listing every failing field; the details
    are also kept in [ConfigurationForm.Errors]
*/
func (f *ConfigurationForm) Bind(values url.Values) (tableconfig.Update, error) {
	name := values.Get(FieldName)
	columns := unique(values[FieldColumns])
	orderBy := values.Get(FieldOrderBy)
	limit := values.Get(FieldLimit)

	v := &validate.Validator{}
	v.Required(FieldName, name).
		Custom(FieldName, name != "" && name != f.Name, "Does not match the submitted table").
		SubsetOf(FieldColumns, columns, choiceValues(f.Columns)...).
		Required(FieldLimit, limit)

	if len(f.Columns) > 0 {
		v.Custom(FieldColumns, len(columns) == 0, "Select at least one column")
	}

	if limit != "" {
		v.OneOf(FieldLimit, limit, choiceValues(f.Limit)...)
	}

	switch {
	case len(f.OrderBy) == 0:
		v.Custom(FieldOrderBy, orderBy != "", "This table cannot be sorted")
	case orderBy == "":
		v.Required(FieldOrderBy, orderBy)
	default:
		v.OneOf(FieldOrderBy, orderBy, choiceValues(f.OrderBy)...)
	}

	if err := v.Err(); err != nil {
		f.Errors = v.Errors()
		return tableconfig.Update{}, err
	}

	update := tableconfig.Update{
		Columns: columns,
		Limit:   pointer.To(convert.ToIntD(limit, 0)),
	}
	if orderBy != "" {
		update.OrderBy = pointer.To(orderBy)
	}

	return update, nil
}

func choiceValues(choices []Choice) []string {
	return slice.Map(choices, func(choice Choice) string { return choice.Value })
}

func unique(values []string) []string {
	seen := make(map[string]bool, len(values))
	return slice.Filter(values, func(value string) bool {
		if seen[value] {
			return false
		}
		seen[value] = true
		return true
	})
}
