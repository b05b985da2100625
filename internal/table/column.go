// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package table implements declarative, configurable HTML tables.

A table [Definition] is an ordered set of [Column] descriptors assembled by a
[Builder]: columns are inherited from base definitions, overridden by name, or
removed (shadowed) explicitly. A per-request [Table] binds a definition to the
records of the current page and the requester's visible columns, and projects
every record into [Row] and [Cell] values ready for template rendering.

Architecture:

  - Column: naming, labels, sortability and value extraction.
  - Definition/Builder: hierarchy merge, performed once at build time.
  - Table/Row/Cell: per-request projection; nothing here is persisted.

Nothing in this package performs I/O. Template lookup and rendering are
delegated to a [Renderer].
*/
package table

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// # Column Kinds

// Kind selects the fallback template used when no column-specific template exists.
type Kind int

const (
	// KindDefault renders the raw value.
	KindDefault Kind = iota
	// KindText renders the value as escaped text.
	KindText
	// KindDate renders time values in a human readable form.
	KindDate
	// KindBoolean renders a yes/no marker.
	KindBoolean
)

// DefaultTemplate returns the fallback template name of the kind.
func (k Kind) DefaultTemplate() string {
	switch k {
	case KindText:
		return "tables/columns/text.html"
	case KindDate:
		return "tables/columns/date.html"
	case KindBoolean:
		return "tables/columns/boolean.html"
	default:
		return "tables/columns/default.html"
	}
}

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindDate:
		return "date"
	case KindBoolean:
		return "boolean"
	default:
		return "default"
	}
}

// # Column Descriptor

// ValueFunc extracts the value of the named column from a record.
// Returning false marks the value as absent.
type ValueFunc func(record any, name string) (any, bool)

// Column describes one displayable field of a table.
//
// Columns are declared as struct literals and handed to [Builder.Add], which
// assigns the name and the declaration ordinal:
//
//	table.Define("CustomerTable").
//	    Add("first_name", &table.Column{Kind: table.KindText, Sortable: true})
type Column struct {
	// Name is assigned by the builder from the declared name.
	Name string `json:"name"`

	// Label defaults to the humanized name ("first_name" → "First name").
	Label string `json:"label"`

	Kind Kind `json:"-"`

	// Template is an explicit template name, bypassing the lookup convention.
	Template string `json:"-"`

	// TemplateName replaces "<name>.html" inside the table's template directory.
	TemplateName string `json:"-"`

	Sortable bool `json:"sortable"`

	// OrderBy overrides the collection field used when sorting by this column.
	// Sortable columns without an override sort by their own name.
	OrderBy string `json:"-"`

	// Value overrides the default extraction chain (see [Extract]).
	Value ValueFunc `json:"-"`

	// AlwaysVisible columns ignore the requester's column selection.
	AlwaysVisible bool `json:"always_visible"`

	// Ordinal is the declaration position inside the owning definition.
	Ordinal int `json:"-"`
}

// bind names the column and derives the defaults that depend on the name.
func (c *Column) bind(name string) {
	c.Name = name

	if c.Label == "" {
		c.Label = Humanize(name)
	}

	if c.Sortable && c.OrderBy == "" {
		c.OrderBy = name
	}
}

// SortKey returns the collection field used to sort by this column.
func (c *Column) SortKey() string {
	if c.OrderBy != "" {
		return c.OrderBy
	}
	return c.Name
}

// DefaultTemplate returns the fallback template of the column kind.
func (c *Column) DefaultTemplate() string {
	return c.Kind.DefaultTemplate()
}

// Extract returns the column value of record.
//
// The custom [ValueFunc] wins when set; otherwise the default chain of
// [Extract] applies. A false result means "no value" and is not an error.
func (c *Column) Extract(record any) (any, bool) {
	if c.Value != nil {
		return c.Value(record, c.Name)
	}
	return Extract(record, c.Name)
}

// Humanize upper-cases the first letter of name and replaces underscores with spaces.
func Humanize(name string) string {
	if name == "" {
		return ""
	}

	first, size := utf8.DecodeRuneInString(name)
	return string(unicode.ToUpper(first)) + strings.ReplaceAll(name[size:], "_", " ")
}
