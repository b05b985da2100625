// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package customer

import (
	"github.com/taibuivan/configurable-tables/internal/table"
)

// # Table Definitions

// BaseTable holds the columns shared by every demo table.
var BaseTable = table.Define("BaseTable").
	Add("id", &table.Column{Label: "ID", Sortable: true}).
	Add("created_at", &table.Column{Label: "Created", Kind: table.KindDate, Sortable: true}).
	MustBuild()

/*
CustomerTable lists customers.

It inherits "created_at" from [BaseTable] and hides the numeric id. The
"full_name" column has no field of its own: its value comes from
[Customer.FullName] and it sorts by the last name.
*/
var CustomerTable = table.Define("CustomerTable").
	Extends(BaseTable).
	Remove("id").
	Add("first_name", &table.Column{Kind: table.KindText, Sortable: true}).
	Add("last_name", &table.Column{Kind: table.KindText, Sortable: true}).
	Add("full_name", &table.Column{
		Sortable: true,
		OrderBy:  "last_name",
		Value:    fullName,
	}).
	Add("email_address", &table.Column{Label: "Email"}).
	Add("status", &table.Column{}).
	Add("is_active", &table.Column{Label: "Active", Kind: table.KindBoolean}).
	Options(table.Options{
		ContextName:    "customer",
		Model:          "customer",
		EmptyMessage:   "No customers match your filters",
		DefaultColumns: []string{"full_name", "email_address", "status"},
		DefaultOrderBy: "last_name",
	}).
	MustBuild()

func fullName(record any, _ string) (any, bool) {
	customer, ok := record.(*Customer)
	if !ok || customer == nil {
		return nil, false
	}
	return customer.FullName(), true
}

// Register adds the customer tables to registry.
func Register(registry *table.Registry) error {
	return registry.Register(CustomerTable)
}
