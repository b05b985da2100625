// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package table

import (
	"reflect"
	"strings"
)

// # Record Conventions

// Displayer is implemented by records that format some of their fields for
// display. Returning false falls through to the raw field.
type Displayer interface {
	DisplayValue(field string) (any, bool)
}

// FieldValuer is implemented by records that expose their fields by name
// without relying on reflection.
type FieldValuer interface {
	FieldValue(field string) (any, bool)
}

// # Extraction Chain

/*
Extract returns the value of the named field of record.

The attempts are made in order, the first success wins:

 1. A display accessor: [Displayer.DisplayValue], or a zero-argument method
    named "Display" + the camel-cased field ("status" → DisplayStatus).
 2. A plain field: [FieldValuer.FieldValue], or an exported struct field
    tagged `table:"<field>"` or `json:"<field>"`, or named after the
    camel-cased field.
 3. A key lookup when the record is a map with string keys.

Returns:
  - any: The extracted value
  - bool: false when every attempt failed ("no value", not an error)
*/
func Extract(record any, field string) (any, bool) {
	if record == nil || field == "" {
		return nil, false
	}

	if value := reflect.ValueOf(record); value.Kind() == reflect.Pointer && value.IsNil() {
		return nil, false
	}

	if value, ok := display(record, field); ok {
		return value, true
	}

	if valuer, ok := record.(FieldValuer); ok {
		if value, found := valuer.FieldValue(field); found {
			return value, true
		}
	}

	if values, ok := record.(map[string]any); ok {
		value, found := values[field]
		return value, found
	}

	return reflectValue(reflect.ValueOf(record), field)
}

func display(record any, field string) (any, bool) {
	if displayer, ok := record.(Displayer); ok {
		if value, found := displayer.DisplayValue(field); found {
			return value, true
		}
	}

	method := reflect.ValueOf(record).MethodByName("Display" + camelCase(field))
	if !method.IsValid() {
		return nil, false
	}

	kind := method.Type()
	if kind.NumIn() != 0 || kind.NumOut() != 1 {
		return nil, false
	}

	return method.Call(nil)[0].Interface(), true
}

func reflectValue(value reflect.Value, field string) (any, bool) {
	for value.Kind() == reflect.Pointer || value.Kind() == reflect.Interface {
		if value.IsNil() {
			return nil, false
		}
		value = value.Elem()
	}

	switch value.Kind() {
	case reflect.Struct:
		index, ok := structField(value.Type(), field)
		if !ok {
			return nil, false
		}
		found, err := value.FieldByIndexErr(index)
		if err != nil {
			return nil, false
		}
		return found.Interface(), true

	case reflect.Map:
		if value.Type().Key().Kind() != reflect.String {
			return nil, false
		}
		entry := value.MapIndex(reflect.ValueOf(field).Convert(value.Type().Key()))
		if !entry.IsValid() {
			return nil, false
		}
		return entry.Interface(), true
	}

	return nil, false
}

// structField resolves field against the exported fields of kind.
// Tags take precedence over names.
func structField(kind reflect.Type, field string) ([]int, bool) {
	var byName []int

	for _, candidate := range reflect.VisibleFields(kind) {
		if !candidate.IsExported() || candidate.Anonymous {
			continue
		}

		if tagName(candidate.Tag.Get("table")) == field || tagName(candidate.Tag.Get("json")) == field {
			return candidate.Index, true
		}

		if byName == nil && strings.EqualFold(candidate.Name, strings.ReplaceAll(field, "_", "")) {
			byName = candidate.Index
		}
	}

	return byName, byName != nil
}

func tagName(tag string) string {
	name, _, _ := strings.Cut(tag, ",")
	if name == "-" {
		return ""
	}
	return name
}

// camelCase turns "email_address" into "EmailAddress".
func camelCase(field string) string {
	var builder strings.Builder
	for _, part := range strings.Split(field, "_") {
		if part == "" {
			continue
		}
		builder.WriteString(Humanize(part))
	}
	return builder.String()
}
