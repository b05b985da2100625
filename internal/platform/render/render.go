// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package render provides the HTML template engine used by table views.

Templates are embedded into the binary and addressed by their path relative to
the templates directory ("tables/columns/text.html"). An optional directory on
disk can override or extend them without rebuilding.

Template Functions:

  - renderTable: renders "tables/table.html" for a [table.Table].
  - renderCell: renders one [table.Cell] through its resolved template.
  - include: renders a template when it exists, nothing otherwise.
  - naturaltime, comma: human readable values (go-humanize).
  - display: prints a value, nil and nil pointers as an empty string.
  - sortQuery, pageQuery: query strings for sort headers and pagination links.
*/
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/url"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/taibuivan/configurable-tables/internal/platform/constants"
	"github.com/taibuivan/configurable-tables/internal/table"
)

//go:embed templates
var embedded embed.FS

// TableTemplate is rendered by the renderTable template function.
const TableTemplate = "tables/table.html"

// PageTemplate is the default full page of a table view.
const PageTemplate = "pages/table.html"

// HTMLRenderer renders named templates. It is safe for concurrent use once built.
type HTMLRenderer struct {
	templates *template.Template
}

/*
New parses the embedded templates, then the files of overrideDir (if any).

Parameters:
  - overrideDir: Optional directory whose files replace embedded templates of the same path

Returns:
  - *HTMLRenderer: Ready to render
  - error: Parse or filesystem failures
*/
func New(overrideDir string) (*HTMLRenderer, error) {
	renderer := &HTMLRenderer{}
	renderer.templates = template.New("").Funcs(renderer.funcs())

	root, err := fs.Sub(embedded, "templates")
	if err != nil {
		return nil, fmt.Errorf("render: open embedded templates: %w", err)
	}

	if err := renderer.parse(root); err != nil {
		return nil, err
	}

	if overrideDir != "" {
		if err := renderer.parse(os.DirFS(overrideDir)); err != nil {
			return nil, err
		}
	}

	return renderer, nil
}

// parse registers every .html file of fsys under its slash separated path.
func (r *HTMLRenderer) parse(fsys fs.FS) error {
	return fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() || !strings.HasSuffix(path, ".html") {
			return nil
		}

		content, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("render: read %s: %w", path, err)
		}

		if _, err := r.templates.New(path).Parse(string(content)); err != nil {
			return fmt.Errorf("render: parse %s: %w", path, err)
		}
		return nil
	})
}

// Exists reports whether a template is registered under name.
func (r *HTMLRenderer) Exists(name string) bool {
	return r.templates.Lookup(name) != nil
}

// RenderString executes the named template into a string.
func (r *HTMLRenderer) RenderString(name string, data map[string]any) (string, error) {
	var buffer bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buffer, name, data); err != nil {
		return "", fmt.Errorf("render: %s: %w", name, err)
	}
	return buffer.String(), nil
}

// # Template Functions

func (r *HTMLRenderer) funcs() template.FuncMap {
	return template.FuncMap{
		"renderTable": r.renderTable,
		"renderCell":  r.renderCell,
		"include":     r.include,
		"naturaltime": naturalTime,
		"comma":       comma,
		"display":     display,
		"sortQuery":   sortQuery,
		"pageQuery":   pageQuery,
	}
}

// renderTable renders the table with a copy of data holding it as "table".
func (r *HTMLRenderer) renderTable(instance *table.Table, data map[string]any) (template.HTML, error) {
	scope := make(map[string]any, len(data)+1)
	for key, value := range data {
		scope[key] = value
	}
	scope["table"] = instance

	out, err := r.RenderString(TableTemplate, scope)
	return template.HTML(out), err
}

func (r *HTMLRenderer) renderCell(cell *table.Cell, data map[string]any) (template.HTML, error) {
	out, err := cell.Render(r, data)
	return template.HTML(out), err
}

func (r *HTMLRenderer) include(name string, data map[string]any) (template.HTML, error) {
	if !r.Exists(name) {
		return "", nil
	}
	out, err := r.RenderString(name, data)
	return template.HTML(out), err
}

func naturalTime(value any) string {
	switch moment := value.(type) {
	case time.Time:
		return humanize.Time(moment)
	case *time.Time:
		if moment == nil {
			return ""
		}
		return humanize.Time(*moment)
	default:
		return display(value)
	}
}

func comma(value any) string {
	switch number := value.(type) {
	case int:
		return humanize.Comma(int64(number))
	case int32:
		return humanize.Comma(int64(number))
	case int64:
		return humanize.Comma(number)
	case float64:
		return humanize.Commaf(number)
	default:
		return display(value)
	}
}

func display(value any) string {
	if value == nil {
		return ""
	}

	reflected := reflect.ValueOf(value)
	for reflected.Kind() == reflect.Pointer {
		if reflected.IsNil() {
			return ""
		}
		reflected = reflected.Elem()
	}

	return fmt.Sprint(reflected.Interface())
}

// sortQuery returns the query string sorting by column, flipping the direction
// when the table is already sorted by it. The page is reset.
func sortQuery(query url.Values, column string, current any) string {
	next := url.Values{}
	for key, values := range query {
		next[key] = values
	}

	token := column
	if display(current) == column {
		token = "-" + column
	}

	next.Set(constants.ParamOrderBy, token)
	next.Del(constants.ParamPage)
	return "?" + next.Encode()
}

func pageQuery(query url.Values, page int) string {
	next := url.Values{}
	for key, values := range query {
		next[key] = values
	}

	next.Set(constants.ParamPage, fmt.Sprint(page))
	return "?" + next.Encode()
}
