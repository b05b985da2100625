// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tableview_test

import (
	"net/http"

	"github.com/taibuivan/configurable-tables/internal/platform/ctxutil"
	"github.com/taibuivan/configurable-tables/internal/platform/sec"
	"github.com/taibuivan/configurable-tables/internal/table"
	"github.com/taibuivan/configurable-tables/internal/tableconfig"
	"github.com/taibuivan/configurable-tables/internal/tableview"
)

type contact struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email_address"`
	Active    bool   `json:"is_active"`
}

func contactTable() *table.Definition {
	return table.Define("CustomerTable").
		Add("first_name", &table.Column{Kind: table.KindText, Sortable: true}).
		Add("last_name", &table.Column{Kind: table.KindText}).
		Add("email_address", &table.Column{}).
		Options(table.Options{
			ContextName:    "customer",
			DefaultColumns: []string{"first_name", "last_name"},
			DefaultOrderBy: "first_name",
		}).
		MustBuild()
}

func contacts() []any {
	return []any{
		&contact{FirstName: "Bea", LastName: "Brown", Email: "bea@example.com", Active: true},
		&contact{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", Active: true},
		&contact{FirstName: "Cy", LastName: "Young", Email: "cy@example.com"},
	}
}

func source(records []any) tableview.Source {
	return func(*http.Request) tableview.Collection {
		return tableview.NewSliceCollection(records)
	}
}

// captureRenderer keeps the data of the last render.
type captureRenderer struct {
	name string
	data map[string]any
}

func (c *captureRenderer) Exists(string) bool { return false }

func (c *captureRenderer) RenderString(name string, data map[string]any) (string, error) {
	c.name, c.data = name, data
	return "rendered", nil
}

func (c *captureRenderer) table() *table.Table {
	instance, _ := c.data["table"].(*table.Table)
	return instance
}

func newView(definition *table.Definition, store tableconfig.Repository, settings tableview.Settings) (*tableview.View, *captureRenderer) {
	renderer := &captureRenderer{}
	return tableview.NewView(definition, source(contacts()), store, renderer, settings), renderer
}

func authenticated(request *http.Request, userID string) *http.Request {
	claims := &sec.AuthClaims{UserID: userID, Username: userID}
	return request.WithContext(ctxutil.WithAuthUser(request.Context(), claims))
}

func columnNames(instance *table.Table) []string {
	var names []string
	for column := range instance.VisibleColumns() {
		names = append(names, column.Name)
	}
	return names
}

func firstNames(instance *table.Table) []string {
	var names []string
	for _, record := range instance.Records() {
		names = append(names, record.(*contact).FirstName)
	}
	return names
}
