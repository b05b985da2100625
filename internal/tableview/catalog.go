// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tableview

import (
	"fmt"
	"net/http"

	"github.com/taibuivan/configurable-tables/internal/platform/apperr"
	requestutil "github.com/taibuivan/configurable-tables/internal/platform/request"
	"github.com/taibuivan/configurable-tables/internal/platform/respond"
	"github.com/taibuivan/configurable-tables/internal/table"
)

// ParamName is the route parameter holding the table identity.
const ParamName = "name"

// # View Directory

// Directory dispatches requests to the view named by the route parameter.
type Directory struct {
	views map[string]*View
}

// NewDirectory indexes views by [View.TableName]. Two views sharing a name
// are rejected.
func NewDirectory(views ...*View) (*Directory, error) {
	directory := &Directory{views: make(map[string]*View, len(views))}
	for _, view := range views {
		if _, exists := directory.views[view.TableName()]; exists {
			return nil, fmt.Errorf("tableview: duplicate table name %q", view.TableName())
		}
		directory.views[view.TableName()] = view
	}
	return directory, nil
}

// Lookup returns the view registered under name.
func (d *Directory) Lookup(name string) (*View, bool) {
	view, ok := d.views[name]
	return view, ok
}

// ServeHTTP answers 404 for unknown tables.
func (d *Directory) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	view, ok := d.Lookup(requestutil.Param(request, ParamName))
	if !ok {
		respond.Error(writer, request, apperr.NotFound("Table"))
		return
	}
	view.ServeHTTP(writer, request)
}

// # Catalog

// CatalogEntry describes a registered table to API clients.
type CatalogEntry struct {
	Class          string          `json:"class"`
	Name           string          `json:"name"`
	Model          string          `json:"model,omitempty"`
	URL            string          `json:"url"`
	Columns        []*table.Column `json:"columns"`
	DefaultColumns []string        `json:"default_columns"`
	DefaultOrderBy string          `json:"default_order_by,omitempty"`
}

// CatalogHandler lists the tables of registry, served under prefix.
func CatalogHandler(registry *table.Registry, prefix string) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		definitions := registry.All()
		entries := make([]CatalogEntry, 0, len(definitions))

		for _, definition := range definitions {
			name := TableIdentity(definition)
			entries = append(entries, CatalogEntry{
				Class:          definition.Name(),
				Name:           name,
				Model:          definition.Model(),
				URL:            prefix + "/" + name,
				Columns:        definition.Columns(),
				DefaultColumns: definition.DefaultColumns(),
				DefaultOrderBy: definition.DefaultOrderBy(),
			})
		}

		respond.OK(writer, entries)
	}
}
