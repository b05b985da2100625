// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package table

import (
	"iter"
	"maps"
	"slices"
)

// # Rendering Collaborators

// TemplateFinder reports whether a template exists.
type TemplateFinder interface {
	Exists(name string) bool
}

// Renderer renders a named template with a data map.
type Renderer interface {
	TemplateFinder
	RenderString(name string, data map[string]any) (string, error)
}

// # Table

// Table is the per-request projection of a [Definition] over a page of records.
type Table struct {
	definition *Definition
	selected   map[string]bool
	records    []any
}

/*
NewTable binds definition to records.

Parameters:
  - columns: The requester's selected columns; always-visible columns are added
  - records: The records of the current page, already filtered and ordered
*/
func (d *Definition) NewTable(columns []string, records []any) *Table {
	selected := make(map[string]bool, len(columns))
	for _, name := range columns {
		selected[name] = true
	}

	return &Table{
		definition: d,
		selected:   selected,
		records:    records,
	}
}

func (t *Table) Definition() *Definition { return t.definition }
func (t *Table) ContextName() string     { return t.definition.ContextName() }
func (t *Table) EmptyMessage() string    { return t.definition.EmptyMessage() }
func (t *Table) Records() []any          { return t.records }
func (t *Table) Len() int                { return len(t.records) }
func (t *Table) IsEmpty() bool           { return len(t.records) == 0 }

// VisibleColumns yields the selected and always-visible columns in
// declaration order. The sequence is restartable.
func (t *Table) VisibleColumns() iter.Seq[*Column] {
	return func(yield func(*Column) bool) {
		for _, column := range t.definition.columns {
			if !column.AlwaysVisible && !t.selected[column.Name] {
				continue
			}
			if !yield(column) {
				return
			}
		}
	}
}

// Columns returns [Table.VisibleColumns] as a slice.
func (t *Table) Columns() []*Column {
	return slices.Collect(t.VisibleColumns())
}

// ColumnsCount returns the number of visible columns.
func (t *Table) ColumnsCount() int {
	count := 0
	for range t.VisibleColumns() {
		count++
	}
	return count
}

// Rows projects every record into a [Row].
func (t *Table) Rows() []*Row {
	rows := make([]*Row, len(t.records))
	for i, record := range t.records {
		rows[i] = &Row{table: t, record: record}
	}
	return rows
}

// # Row

// Row is one record of a table.
type Row struct {
	table  *Table
	record any
}

func (r *Row) Record() any { return r.record }

// Cells returns one cell per visible column.
func (r *Row) Cells() []*Cell {
	var cells []*Cell
	for column := range r.table.VisibleColumns() {
		cells = append(cells, &Cell{table: r.table, column: column, record: r.record})
	}
	return cells
}

// # Cell

// Cell is the intersection of a row and a visible column.
type Cell struct {
	table  *Table
	column *Column
	record any
}

func (c *Cell) Column() *Column { return c.column }
func (c *Cell) Record() any     { return c.record }

// Value returns the extracted value; false means absent.
func (c *Cell) Value() (any, bool) {
	return c.column.Extract(c.record)
}

/*
TemplateName resolves the template rendering the cell.

Lookup order:
 1. The column's explicit template.
 2. "<template directory>/<column name>.html", or the column's TemplateName
    inside the template directory, when finder knows it.
 3. The default template of the column kind.
*/
func (c *Cell) TemplateName(finder TemplateFinder) string {
	if c.column.Template != "" {
		return c.column.Template
	}

	file := c.column.Name + ".html"
	if c.column.TemplateName != "" {
		file = c.column.TemplateName
	}

	candidate := c.table.definition.TemplateDirectory() + "/" + file
	if finder != nil && finder.Exists(candidate) {
		return candidate
	}

	return c.column.DefaultTemplate()
}

// Render renders the cell with a copy of data augmented with "object" and,
// when present, "value". An absent value removes any "value" inherited from
// data. data itself is never modified.
func (c *Cell) Render(renderer Renderer, data map[string]any) (string, error) {
	scope := maps.Clone(data)
	if scope == nil {
		scope = make(map[string]any, 2)
	}

	scope["object"] = c.record
	if value, ok := c.Value(); ok {
		scope["value"] = value
	} else {
		delete(scope, "value")
	}

	return renderer.RenderString(c.TemplateName(renderer), scope)
}
