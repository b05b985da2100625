// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package table

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/taibuivan/configurable-tables/internal/platform/constants"
)

// # Options

// Options are the per-definition settings. Zero values mean "not set": the
// builder then inherits the value from the closest base that sets it.
type Options struct {
	// EmptyMessage is displayed when the table has no rows.
	EmptyMessage string

	// TemplateDirectory overrides the "tables/<context name>" convention.
	TemplateDirectory string

	// DefaultColumns are the columns shown to requesters without a stored choice.
	// A nil slice inherits; all columns are shown when nothing sets it.
	DefaultColumns []string

	// ContextName names the table inside templates and template directories.
	ContextName string

	// DefaultOrderBy is a sort token ("first_name", "-created_at").
	DefaultOrderBy string

	// Model is the registry key of the records the table lists.
	Model string
}

// # Definition

// Definition is an immutable, merged table declaration.
type Definition struct {
	name    string
	columns []*Column
	index   map[string]*Column
	options Options
}

// Name returns the declared definition name, e.g. "CustomerTable".
func (d *Definition) Name() string { return d.name }

// Columns returns the merged columns in declaration order.
func (d *Definition) Columns() []*Column { return slices.Clone(d.columns) }

// Lookup returns the merged column registered under name.
func (d *Definition) Lookup(name string) (*Column, bool) {
	column, ok := d.index[name]
	return column, ok
}

// Options returns a copy of the resolved options.
func (d *Definition) Options() Options {
	options := d.options
	options.DefaultColumns = slices.Clone(d.options.DefaultColumns)
	return options
}

func (d *Definition) DefaultColumns() []string { return slices.Clone(d.options.DefaultColumns) }
func (d *Definition) DefaultOrderBy() string   { return d.options.DefaultOrderBy }
func (d *Definition) EmptyMessage() string     { return d.options.EmptyMessage }
func (d *Definition) ContextName() string      { return d.options.ContextName }
func (d *Definition) Model() string            { return d.options.Model }

// TemplateDirectory returns the directory searched for column templates.
func (d *Definition) TemplateDirectory() string {
	if d.options.TemplateDirectory != "" {
		return d.options.TemplateDirectory
	}
	return constants.DefaultTemplateRoot + "/" + d.options.ContextName
}

// AlwaysVisible returns the names of the always-visible columns in declaration order.
func (d *Definition) AlwaysVisible() []string {
	var names []string
	for _, column := range d.columns {
		if column.AlwaysVisible {
			names = append(names, column.Name)
		}
	}
	return names
}

// SortableColumns returns the sortable columns in declaration order.
func (d *Definition) SortableColumns() []*Column {
	var columns []*Column
	for _, column := range d.columns {
		if column.Sortable {
			columns = append(columns, column)
		}
	}
	return columns
}

// # Builder

type entry struct {
	name   string
	column *Column // nil removes the inherited column
}

/*
Builder assembles a [Definition] from base definitions and local entries.

Merge rules:
  - Bases are applied in the order given to [Builder.Extends]; a later base
    overrides an earlier one on name collision.
  - Local entries are applied last, in call order. [Builder.Remove] shadows an
    inherited column.
  - Every merged column is a copy, so definitions never share descriptors.
  - Ordinals are scoped to the builder: an overriding column takes the
    position of the override, not the position of the column it replaces.

Usage:

	var CustomerTable = table.Define("CustomerTable").
	    Extends(BaseTable).
	    Remove("id").
	    Add("first_name", &table.Column{Kind: table.KindText, Sortable: true}).
	    Options(table.Options{DefaultColumns: []string{"first_name"}}).
	    MustBuild()
*/
type Builder struct {
	name    string
	bases   []*Definition
	entries []entry
	options Options
}

// Define starts a definition named name.
func Define(name string) *Builder {
	return &Builder{name: name}
}

// Extends appends base definitions.
func (b *Builder) Extends(bases ...*Definition) *Builder {
	b.bases = append(b.bases, bases...)
	return b
}

// Add declares (or overrides) the column registered under name.
func (b *Builder) Add(name string, column *Column) *Builder {
	if column == nil {
		column = &Column{}
	}
	b.entries = append(b.entries, entry{name: name, column: column})
	return b
}

// Remove shadows inherited columns.
func (b *Builder) Remove(names ...string) *Builder {
	for _, name := range names {
		b.entries = append(b.entries, entry{name: name})
	}
	return b
}

// Options sets the local options.
func (b *Builder) Options(options Options) *Builder {
	b.options = options
	return b
}

// Build merges the bases and local entries.
func (b *Builder) Build() (*Definition, error) {
	if strings.TrimSpace(b.name) == "" {
		return nil, errors.New("table: definition name is required")
	}

	merged := make(map[string]*Column)
	ordinal := 0

	put := func(name string, column *Column) {
		clone := *column
		clone.bind(name)
		clone.Ordinal = ordinal
		ordinal++
		merged[name] = &clone
	}

	for _, base := range b.bases {
		if base == nil {
			return nil, fmt.Errorf("table: %s: nil base definition", b.name)
		}
		for _, column := range base.columns {
			put(column.Name, column)
		}
	}

	declared := make(map[string]bool)
	for _, item := range b.entries {
		if item.name == "" {
			return nil, fmt.Errorf("table: %s: column name is required", b.name)
		}

		if item.column == nil {
			delete(merged, item.name)
			continue
		}

		if declared[item.name] {
			return nil, fmt.Errorf("table: %s: column %q declared twice", b.name, item.name)
		}
		declared[item.name] = true

		put(item.name, item.column)
	}

	columns := make([]*Column, 0, len(merged))
	for _, column := range merged {
		columns = append(columns, column)
	}
	slices.SortFunc(columns, func(a, b *Column) int { return a.Ordinal - b.Ordinal })

	definition := &Definition{
		name:    b.name,
		columns: columns,
		index:   merged,
		options: b.resolveOptions(),
	}

	if definition.options.DefaultColumns == nil {
		for _, column := range columns {
			definition.options.DefaultColumns = append(definition.options.DefaultColumns, column.Name)
		}
	}

	for _, name := range definition.options.DefaultColumns {
		if _, ok := merged[name]; !ok {
			return nil, fmt.Errorf("table: %s: default column %q is not declared", b.name, name)
		}
	}

	if order := strings.TrimPrefix(definition.options.DefaultOrderBy, "-"); order != "" {
		if _, ok := merged[order]; !ok {
			return nil, fmt.Errorf("table: %s: default order %q is not declared", b.name, order)
		}
	}

	return definition, nil
}

// MustBuild is like [Builder.Build] but panics on error. It is meant for
// package-level definitions.
func (b *Builder) MustBuild() *Definition {
	definition, err := b.Build()
	if err != nil {
		panic(err)
	}
	return definition
}

// resolveOptions applies local options, then the closest base, then defaults.
func (b *Builder) resolveOptions() Options {
	resolved := b.options
	resolved.DefaultColumns = slices.Clone(b.options.DefaultColumns)

	for _, base := range slices.Backward(b.bases) {
		inherited := base.options
		if resolved.EmptyMessage == "" {
			resolved.EmptyMessage = inherited.EmptyMessage
		}
		if resolved.TemplateDirectory == "" {
			resolved.TemplateDirectory = inherited.TemplateDirectory
		}
		if resolved.DefaultColumns == nil {
			resolved.DefaultColumns = slices.Clone(inherited.DefaultColumns)
		}
		if resolved.ContextName == "" {
			resolved.ContextName = inherited.ContextName
		}
		if resolved.DefaultOrderBy == "" {
			resolved.DefaultOrderBy = inherited.DefaultOrderBy
		}
		if resolved.Model == "" {
			resolved.Model = inherited.Model
		}
	}

	if resolved.EmptyMessage == "" {
		resolved.EmptyMessage = constants.DefaultEmptyMessage
	}
	if resolved.ContextName == "" {
		resolved.ContextName = "table"
	}

	return resolved
}
